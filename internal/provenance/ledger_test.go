package provenance

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/fintrace/fintrace-backend/internal/types"
)

func mustOrder(t *testing.T, l *Ledger, amount int64, enterpriseID string) types.Order {
	t.Helper()
	order, err := l.CreateOrder(decimal.NewFromInt(amount), enterpriseID)
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	return order
}

func mustPayment(t *testing.T, l *Ledger, orderIDs []string, enterpriseID string) types.Payment {
	t.Helper()
	payment, err := l.CreatePayment(orderIDs, enterpriseID)
	if err != nil {
		t.Fatalf("create payment: %v", err)
	}
	return payment
}

func TestFullRollupChain(t *testing.T) {
	t.Parallel()
	l := NewLedger()

	a := mustOrder(t, l, 100, "E1")
	b := mustOrder(t, l, 200, "E1")

	p1 := mustPayment(t, l, []string{a.ID, b.ID}, "E1")
	if !p1.Amount.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("payment amount: got=%s want=300", p1.Amount)
	}

	et1, err := l.CreateEnterpriseTotal([]string{p1.ID})
	if err != nil {
		t.Fatalf("create enterprise total: %v", err)
	}
	if !et1.TotalAmount.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("enterprise total amount: got=%s want=300", et1.TotalAmount)
	}
	if et1.EnterpriseID != "E1" {
		t.Fatalf("enterprise total enterprise: got=%s want=E1", et1.EnterpriseID)
	}

	t1, err := l.CreateTotalAmount([]string{et1.ID})
	if err != nil {
		t.Fatalf("create total amount: %v", err)
	}
	if !t1.TotalAmount.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("total amount: got=%s want=300", t1.TotalAmount)
	}

	forward, err := l.TraceForward(p1.ID)
	if err != nil {
		t.Fatalf("trace forward: %v", err)
	}
	if len(forward.Orders) != 2 {
		t.Fatalf("forward orders: got=%d want=2", len(forward.Orders))
	}
	if forward.EnterpriseTotal == nil || forward.EnterpriseTotal.ID != et1.ID {
		t.Fatalf("forward enterprise total: got=%+v want=%s", forward.EnterpriseTotal, et1.ID)
	}
	if forward.TotalAmount == nil || forward.TotalAmount.ID != t1.ID {
		t.Fatalf("forward total amount: got=%+v want=%s", forward.TotalAmount, t1.ID)
	}

	backward, err := l.TraceBackward(t1.ID)
	if err != nil {
		t.Fatalf("trace backward: %v", err)
	}
	if len(backward.EnterpriseTotals) != 1 || backward.EnterpriseTotals[0].ID != et1.ID {
		t.Fatalf("backward enterprise totals: got=%+v", backward.EnterpriseTotals)
	}
	if len(backward.Payments) != 1 || backward.Payments[0].ID != p1.ID {
		t.Fatalf("backward payments: got=%+v", backward.Payments)
	}
	if len(backward.Orders) != 2 {
		t.Fatalf("backward orders: got=%d want=2", len(backward.Orders))
	}

	mid, err := l.TraceEnterpriseBackward(et1.ID)
	if err != nil {
		t.Fatalf("trace enterprise backward: %v", err)
	}
	if len(mid.Payments) != 1 || len(mid.Orders) != 2 {
		t.Fatalf("enterprise backward fan-out: payments=%d orders=%d", len(mid.Payments), len(mid.Orders))
	}
}

func TestIncompleteChainShortCircuits(t *testing.T) {
	t.Parallel()
	l := NewLedger()

	order := mustOrder(t, l, 150, "E2")
	p2 := mustPayment(t, l, []string{order.ID}, "E2")

	forward, err := l.TraceForward(p2.ID)
	if err != nil {
		t.Fatalf("trace forward: %v", err)
	}
	if forward.EnterpriseTotal != nil {
		t.Fatalf("expected absent enterprise total, got %+v", forward.EnterpriseTotal)
	}
	if forward.TotalAmount != nil {
		t.Fatalf("expected absent total amount, got %+v", forward.TotalAmount)
	}
	if len(forward.Orders) != 1 || forward.Orders[0].ID != order.ID {
		t.Fatalf("forward orders: got=%+v", forward.Orders)
	}
}

func TestAmountConservation(t *testing.T) {
	t.Parallel()
	l := NewLedger()

	// Fractional amounts must sum exactly.
	o1, err := l.CreateOrder(decimal.RequireFromString("0.10"), "E1")
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	o2, err := l.CreateOrder(decimal.RequireFromString("0.20"), "E1")
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	o3, err := l.CreateOrder(decimal.RequireFromString("0.30"), "E1")
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	payment := mustPayment(t, l, []string{o1.ID, o2.ID, o3.ID}, "E1")
	if !payment.Amount.Equal(decimal.RequireFromString("0.60")) {
		t.Fatalf("payment amount drift: got=%s want=0.60", payment.Amount)
	}

	et, err := l.CreateEnterpriseTotal([]string{payment.ID})
	if err != nil {
		t.Fatalf("create enterprise total: %v", err)
	}
	if !et.TotalAmount.Equal(payment.Amount) {
		t.Fatalf("enterprise total drift: got=%s want=%s", et.TotalAmount, payment.Amount)
	}
}

func TestCreatePaymentValidation(t *testing.T) {
	t.Parallel()
	l := NewLedger()

	e1Order := mustOrder(t, l, 100, "E1")
	e2Order := mustOrder(t, l, 200, "E2")

	t.Run("missing order", func(t *testing.T) {
		if _, err := l.CreatePayment([]string{"ORD-missing"}, "E1"); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("foreign order", func(t *testing.T) {
		if _, err := l.CreatePayment([]string{e1Order.ID, e2Order.ID}, "E1"); !errors.Is(err, ErrEnterpriseMismatch) {
			t.Fatalf("expected ErrEnterpriseMismatch, got %v", err)
		}
	})

	t.Run("all or nothing", func(t *testing.T) {
		// The failed creation above must not have linked the valid order.
		payment := mustPayment(t, l, []string{e1Order.ID}, "E1")
		forward, err := l.TraceForward(payment.ID)
		if err != nil {
			t.Fatalf("trace forward: %v", err)
		}
		if len(forward.Orders) != 1 {
			t.Fatalf("expected exactly one linked order, got %d", len(forward.Orders))
		}
	})
}

func TestCreateEnterpriseTotalValidation(t *testing.T) {
	t.Parallel()
	l := NewLedger()

	e1Order := mustOrder(t, l, 100, "E1")
	e2Order := mustOrder(t, l, 200, "E2")
	e1Payment := mustPayment(t, l, []string{e1Order.ID}, "E1")
	e2Payment := mustPayment(t, l, []string{e2Order.ID}, "E2")

	if _, err := l.CreateEnterpriseTotal(nil); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
	if _, err := l.CreateEnterpriseTotal([]string{"PAY-missing"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := l.CreateEnterpriseTotal([]string{e1Payment.ID, e2Payment.ID}); !errors.Is(err, ErrEnterpriseMismatch) {
		t.Fatalf("expected ErrEnterpriseMismatch, got %v", err)
	}

	if _, err := l.CreateEnterpriseTotal([]string{e1Payment.ID}); err != nil {
		t.Fatalf("create enterprise total: %v", err)
	}
	// A payment can only be rolled up once.
	if _, err := l.CreateEnterpriseTotal([]string{e1Payment.ID}); !errors.Is(err, ErrAlreadyLinked) {
		t.Fatalf("expected ErrAlreadyLinked, got %v", err)
	}
}

func TestCreateTotalAmountValidation(t *testing.T) {
	t.Parallel()
	l := NewLedger()

	order := mustOrder(t, l, 100, "E1")
	payment := mustPayment(t, l, []string{order.ID}, "E1")
	et, err := l.CreateEnterpriseTotal([]string{payment.ID})
	if err != nil {
		t.Fatalf("create enterprise total: %v", err)
	}

	if _, err := l.CreateTotalAmount(nil); !errors.Is(err, ErrEmptyInput) {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
	if _, err := l.CreateTotalAmount([]string{"ENT-missing"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	if _, err := l.CreateTotalAmount([]string{et.ID}); err != nil {
		t.Fatalf("create total amount: %v", err)
	}
	if _, err := l.CreateTotalAmount([]string{et.ID}); !errors.Is(err, ErrAlreadyLinked) {
		t.Fatalf("expected ErrAlreadyLinked, got %v", err)
	}
}

func TestCreateOrderRejectsNegativeAmount(t *testing.T) {
	t.Parallel()
	l := NewLedger()

	if _, err := l.CreateOrder(decimal.NewFromInt(-1), "E1"); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}
	if _, err := l.CreateOrder(decimal.Zero, "E1"); err != nil {
		t.Fatalf("zero amount should be allowed: %v", err)
	}
}

func TestTraceRootNotFound(t *testing.T) {
	t.Parallel()
	l := NewLedger()

	if _, err := l.TraceForward("PAY-missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := l.TraceBackward("TOT-missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := l.TraceEnterpriseBackward("ENT-missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestQueriesAreIdempotent(t *testing.T) {
	t.Parallel()
	l := NewLedger()

	order := mustOrder(t, l, 100, "E1")
	payment := mustPayment(t, l, []string{order.ID}, "E1")

	first, err := l.TraceForward(payment.ID)
	if err != nil {
		t.Fatalf("trace forward: %v", err)
	}
	second, err := l.TraceForward(payment.ID)
	if err != nil {
		t.Fatalf("trace forward: %v", err)
	}
	if len(first.Orders) != len(second.Orders) || first.Payment.ID != second.Payment.ID {
		t.Fatalf("trace results differ on unchanged state: %+v vs %+v", first, second)
	}

	s1 := l.CompletenessSummary()
	s2 := l.CompletenessSummary()
	if s1 != s2 {
		t.Fatalf("summaries differ on unchanged state: %+v vs %+v", s1, s2)
	}
}

func TestReplayReconstructsState(t *testing.T) {
	t.Parallel()
	source := NewLedger()

	a := mustOrder(t, source, 100, "E1")
	b := mustOrder(t, source, 200, "E1")
	payment := mustPayment(t, source, []string{a.ID, b.ID}, "E1")
	et, err := source.CreateEnterpriseTotal([]string{payment.ID})
	if err != nil {
		t.Fatalf("create enterprise total: %v", err)
	}
	total, err := source.CreateTotalAmount([]string{et.ID})
	if err != nil {
		t.Fatalf("create total amount: %v", err)
	}

	restored := NewLedger()
	if err := restored.RestoreOrder(a); err != nil {
		t.Fatalf("restore order: %v", err)
	}
	if err := restored.RestoreOrder(b); err != nil {
		t.Fatalf("restore order: %v", err)
	}
	if err := restored.RestorePayment(payment, []string{a.ID, b.ID}); err != nil {
		t.Fatalf("restore payment: %v", err)
	}
	if err := restored.RestoreEnterpriseTotal(et, []string{payment.ID}); err != nil {
		t.Fatalf("restore enterprise total: %v", err)
	}
	if err := restored.RestoreTotalAmount(total, []string{et.ID}); err != nil {
		t.Fatalf("restore total amount: %v", err)
	}

	forward, err := restored.TraceForward(payment.ID)
	if err != nil {
		t.Fatalf("trace forward on restored ledger: %v", err)
	}
	if forward.TotalAmount == nil || forward.TotalAmount.ID != total.ID {
		t.Fatalf("restored chain incomplete: %+v", forward)
	}
	if !forward.Payment.Amount.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("restored payment amount: got=%s want=300", forward.Payment.Amount)
	}
}
