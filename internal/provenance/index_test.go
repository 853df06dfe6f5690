package provenance

import (
	"errors"
	"sort"
	"testing"
)

func TestIndexLinkPaymentOrderIdempotent(t *testing.T) {
	t.Parallel()
	ix := NewIndex()

	ix.LinkPaymentOrder("PAY-1", "ORD-1")
	ix.LinkPaymentOrder("PAY-1", "ORD-1")
	ix.LinkPaymentOrder("PAY-1", "ORD-2")

	got := ix.OrdersOfPayment("PAY-1")
	sort.Strings(got)
	want := []string{"ORD-1", "ORD-2"}
	if len(got) != len(want) {
		t.Fatalf("unexpected order set size: got=%d want=%d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected order set: got=%v want=%v", got, want)
		}
	}
}

func TestIndexLookupsOnAbsentKeys(t *testing.T) {
	t.Parallel()
	ix := NewIndex()

	if got := ix.OrdersOfPayment("PAY-missing"); len(got) != 0 {
		t.Fatalf("expected empty order set, got %v", got)
	}
	if _, ok := ix.EnterpriseTotalOfPayment("PAY-missing"); ok {
		t.Fatal("expected no enterprise total for unknown payment")
	}
	if got := ix.PaymentsOfEnterpriseTotal("ENT-missing"); len(got) != 0 {
		t.Fatalf("expected empty payment set, got %v", got)
	}
	if _, ok := ix.TotalOfEnterpriseTotal("ENT-missing"); ok {
		t.Fatal("expected no total for unknown enterprise total")
	}
	if got := ix.EnterpriseTotalsOfTotal("TOT-missing"); len(got) != 0 {
		t.Fatalf("expected empty enterprise total set, got %v", got)
	}
}

func TestIndexBidirectionalConsistency(t *testing.T) {
	t.Parallel()
	ix := NewIndex()

	if err := ix.LinkPaymentToEnterpriseTotal("PAY-1", "ENT-1"); err != nil {
		t.Fatalf("link payment: %v", err)
	}
	if err := ix.LinkPaymentToEnterpriseTotal("PAY-2", "ENT-1"); err != nil {
		t.Fatalf("link payment: %v", err)
	}
	if err := ix.LinkEnterpriseTotalToTotal("ENT-1", "TOT-1"); err != nil {
		t.Fatalf("link enterprise total: %v", err)
	}

	// Forward implies inverse membership.
	for _, paymentID := range []string{"PAY-1", "PAY-2"} {
		etID, ok := ix.EnterpriseTotalOfPayment(paymentID)
		if !ok || etID != "ENT-1" {
			t.Fatalf("forward link missing for %s: got=%q ok=%v", paymentID, etID, ok)
		}
		if !containsID(ix.PaymentsOfEnterpriseTotal(etID), paymentID) {
			t.Fatalf("inverse set of %s missing %s", etID, paymentID)
		}
	}
	totalID, ok := ix.TotalOfEnterpriseTotal("ENT-1")
	if !ok || totalID != "TOT-1" {
		t.Fatalf("forward link missing for ENT-1: got=%q ok=%v", totalID, ok)
	}
	if !containsID(ix.EnterpriseTotalsOfTotal("TOT-1"), "ENT-1") {
		t.Fatal("inverse set of TOT-1 missing ENT-1")
	}

	// Inverse implies forward.
	for _, paymentID := range ix.PaymentsOfEnterpriseTotal("ENT-1") {
		if etID, ok := ix.EnterpriseTotalOfPayment(paymentID); !ok || etID != "ENT-1" {
			t.Fatalf("inverse member %s has no matching forward link", paymentID)
		}
	}
}

func TestIndexRejectsRelinkToDifferentParent(t *testing.T) {
	t.Parallel()
	ix := NewIndex()

	if err := ix.LinkPaymentToEnterpriseTotal("PAY-1", "ENT-1"); err != nil {
		t.Fatalf("first link: %v", err)
	}
	// Same parent is an idempotent no-op.
	if err := ix.LinkPaymentToEnterpriseTotal("PAY-1", "ENT-1"); err != nil {
		t.Fatalf("idempotent relink: %v", err)
	}
	if err := ix.LinkPaymentToEnterpriseTotal("PAY-1", "ENT-2"); !errors.Is(err, ErrAlreadyLinked) {
		t.Fatalf("expected ErrAlreadyLinked, got %v", err)
	}

	if err := ix.LinkEnterpriseTotalToTotal("ENT-1", "TOT-1"); err != nil {
		t.Fatalf("first link: %v", err)
	}
	if err := ix.LinkEnterpriseTotalToTotal("ENT-1", "TOT-2"); !errors.Is(err, ErrAlreadyLinked) {
		t.Fatalf("expected ErrAlreadyLinked, got %v", err)
	}
}

func containsID(ids []string, want string) bool {
	for _, id := range ids {
		if id == want {
			return true
		}
	}
	return false
}
