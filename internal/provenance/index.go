package provenance

import "fmt"

// Index records the links between tiers, independent of the entity data.
// Five mappings encode the four link types; every forward mapping is kept
// consistent with its inverse on every write. Entries are never removed.
//
// The index does no entity validation — that is the Ledger's job. It is not
// safe for concurrent use on its own; the Ledger's lock guards it.
type Index struct {
	paymentToOrders           map[string]map[string]struct{}
	paymentToEnterpriseTotal  map[string]string
	enterpriseTotalToPayments map[string]map[string]struct{}
	enterpriseTotalToTotal    map[string]string
	totalToEnterpriseTotals   map[string]map[string]struct{}
}

func NewIndex() *Index {
	return &Index{
		paymentToOrders:           make(map[string]map[string]struct{}),
		paymentToEnterpriseTotal:  make(map[string]string),
		enterpriseTotalToPayments: make(map[string]map[string]struct{}),
		enterpriseTotalToTotal:    make(map[string]string),
		totalToEnterpriseTotals:   make(map[string]map[string]struct{}),
	}
}

// LinkPaymentOrder adds orderID to the payment's order set. Idempotent.
func (ix *Index) LinkPaymentOrder(paymentID, orderID string) {
	set, ok := ix.paymentToOrders[paymentID]
	if !ok {
		set = make(map[string]struct{})
		ix.paymentToOrders[paymentID] = set
	}
	set[orderID] = struct{}{}
}

// LinkPaymentToEnterpriseTotal sets the payment's forward link and inserts
// the payment into the enterprise total's inverse set. A payment already
// linked to a different enterprise total fails with ErrAlreadyLinked:
// silently overwriting the forward link would leave the old inverse set
// pointing at a payment that no longer points back. Re-linking to the same
// parent is a no-op.
func (ix *Index) LinkPaymentToEnterpriseTotal(paymentID, enterpriseTotalID string) error {
	if existing, ok := ix.paymentToEnterpriseTotal[paymentID]; ok {
		if existing == enterpriseTotalID {
			return nil
		}
		return fmt.Errorf("payment %s -> %s: %w", paymentID, existing, ErrAlreadyLinked)
	}
	ix.paymentToEnterpriseTotal[paymentID] = enterpriseTotalID

	set, ok := ix.enterpriseTotalToPayments[enterpriseTotalID]
	if !ok {
		set = make(map[string]struct{})
		ix.enterpriseTotalToPayments[enterpriseTotalID] = set
	}
	set[paymentID] = struct{}{}
	return nil
}

// LinkEnterpriseTotalToTotal is the same contract one tier up.
func (ix *Index) LinkEnterpriseTotalToTotal(enterpriseTotalID, totalID string) error {
	if existing, ok := ix.enterpriseTotalToTotal[enterpriseTotalID]; ok {
		if existing == totalID {
			return nil
		}
		return fmt.Errorf("enterprise total %s -> %s: %w", enterpriseTotalID, existing, ErrAlreadyLinked)
	}
	ix.enterpriseTotalToTotal[enterpriseTotalID] = totalID

	set, ok := ix.totalToEnterpriseTotals[totalID]
	if !ok {
		set = make(map[string]struct{})
		ix.totalToEnterpriseTotals[totalID] = set
	}
	set[enterpriseTotalID] = struct{}{}
	return nil
}

// OrdersOfPayment returns the ids of the orders the payment aggregates.
// Empty slice when the payment is unknown.
func (ix *Index) OrdersOfPayment(paymentID string) []string {
	return setToSlice(ix.paymentToOrders[paymentID])
}

// EnterpriseTotalOfPayment returns the payment's forward link, if any.
func (ix *Index) EnterpriseTotalOfPayment(paymentID string) (string, bool) {
	id, ok := ix.paymentToEnterpriseTotal[paymentID]
	return id, ok
}

// PaymentsOfEnterpriseTotal returns the ids of the payments rolled into the
// enterprise total. Empty slice when the id is unknown.
func (ix *Index) PaymentsOfEnterpriseTotal(enterpriseTotalID string) []string {
	return setToSlice(ix.enterpriseTotalToPayments[enterpriseTotalID])
}

// TotalOfEnterpriseTotal returns the enterprise total's forward link, if any.
func (ix *Index) TotalOfEnterpriseTotal(enterpriseTotalID string) (string, bool) {
	id, ok := ix.enterpriseTotalToTotal[enterpriseTotalID]
	return id, ok
}

// EnterpriseTotalsOfTotal returns the ids of the enterprise totals rolled
// into the total amount. Empty slice when the id is unknown.
func (ix *Index) EnterpriseTotalsOfTotal(totalID string) []string {
	return setToSlice(ix.totalToEnterpriseTotals[totalID])
}

// LinkCounts reports the number of keys in each mapping, in chain order:
// payment->orders, payment->enterpriseTotal, enterpriseTotal->payments,
// enterpriseTotal->total, total->enterpriseTotals.
func (ix *Index) LinkCounts() (int, int, int, int, int) {
	return len(ix.paymentToOrders),
		len(ix.paymentToEnterpriseTotal),
		len(ix.enterpriseTotalToPayments),
		len(ix.enterpriseTotalToTotal),
		len(ix.totalToEnterpriseTotals)
}

func setToSlice(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	return out
}
