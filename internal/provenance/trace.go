package provenance

import (
	"fmt"
	"sort"

	"github.com/fintrace/fintrace-backend/internal/types"
)

// ForwardTrace is everything a payment rolled up into. EnterpriseTotal and
// TotalAmount are nil while the chain is incomplete; that is an expected
// steady state, not an error.
type ForwardTrace struct {
	Payment         types.Payment          `json:"payment"`
	Orders          []types.Order          `json:"orders"`
	EnterpriseTotal *types.EnterpriseTotal `json:"enterprise_total,omitempty"`
	TotalAmount     *types.TotalAmount     `json:"total_amount,omitempty"`
}

// BackwardTrace is every record that contributed to a total amount,
// transitively down to the leaves. Payments and orders are flattened
// across branches.
type BackwardTrace struct {
	TotalAmount      types.TotalAmount       `json:"total_amount"`
	EnterpriseTotals []types.EnterpriseTotal `json:"enterprise_totals"`
	Payments         []types.Payment         `json:"payments"`
	Orders           []types.Order           `json:"orders"`
}

// EnterpriseBackwardTrace is one level of the backward fan-out, starting
// mid-chain at an enterprise total.
type EnterpriseBackwardTrace struct {
	EnterpriseTotal types.EnterpriseTotal `json:"enterprise_total"`
	Payments        []types.Payment       `json:"payments"`
	Orders          []types.Order         `json:"orders"`
}

// TraceForward follows the chain Payment -> Orders -> EnterpriseTotal ->
// TotalAmount. Only a missing root fails; a missing intermediate link
// short-circuits the rest of the resolution.
func (l *Ledger) TraceForward(paymentID string) (ForwardTrace, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	payment, ok := l.store.Payment(paymentID)
	if !ok {
		return ForwardTrace{}, fmt.Errorf("payment %s: %w", paymentID, ErrNotFound)
	}

	trace := ForwardTrace{
		Payment: payment,
		Orders:  l.ordersOf(paymentID),
	}

	etID, ok := l.index.EnterpriseTotalOfPayment(paymentID)
	if !ok {
		return trace, nil
	}
	if et, ok := l.store.EnterpriseTotal(etID); ok {
		trace.EnterpriseTotal = &et
	}

	totalID, ok := l.index.TotalOfEnterpriseTotal(etID)
	if !ok {
		return trace, nil
	}
	if ta, ok := l.store.TotalAmount(totalID); ok {
		trace.TotalAmount = &ta
	}
	return trace, nil
}

// TraceBackward fans out from a total amount to every contributing record.
func (l *Ledger) TraceBackward(totalID string) (BackwardTrace, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	ta, ok := l.store.TotalAmount(totalID)
	if !ok {
		return BackwardTrace{}, fmt.Errorf("total amount %s: %w", totalID, ErrNotFound)
	}

	trace := BackwardTrace{
		TotalAmount:      ta,
		EnterpriseTotals: []types.EnterpriseTotal{},
		Payments:         []types.Payment{},
		Orders:           []types.Order{},
	}

	etIDs := l.index.EnterpriseTotalsOfTotal(totalID)
	sort.Strings(etIDs)
	for _, etID := range etIDs {
		et, ok := l.store.EnterpriseTotal(etID)
		if !ok {
			continue
		}
		trace.EnterpriseTotals = append(trace.EnterpriseTotals, et)

		paymentIDs := l.index.PaymentsOfEnterpriseTotal(etID)
		sort.Strings(paymentIDs)
		for _, paymentID := range paymentIDs {
			payment, ok := l.store.Payment(paymentID)
			if !ok {
				continue
			}
			trace.Payments = append(trace.Payments, payment)
			trace.Orders = append(trace.Orders, l.ordersOf(paymentID)...)
		}
	}
	return trace, nil
}

// TraceEnterpriseBackward fans out from an enterprise total to its payments
// and their orders.
func (l *Ledger) TraceEnterpriseBackward(enterpriseTotalID string) (EnterpriseBackwardTrace, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	et, ok := l.store.EnterpriseTotal(enterpriseTotalID)
	if !ok {
		return EnterpriseBackwardTrace{}, fmt.Errorf("enterprise total %s: %w", enterpriseTotalID, ErrNotFound)
	}

	trace := EnterpriseBackwardTrace{
		EnterpriseTotal: et,
		Payments:        []types.Payment{},
		Orders:          []types.Order{},
	}

	paymentIDs := l.index.PaymentsOfEnterpriseTotal(enterpriseTotalID)
	sort.Strings(paymentIDs)
	for _, paymentID := range paymentIDs {
		payment, ok := l.store.Payment(paymentID)
		if !ok {
			continue
		}
		trace.Payments = append(trace.Payments, payment)
		trace.Orders = append(trace.Orders, l.ordersOf(paymentID)...)
	}
	return trace, nil
}

// ordersOf dereferences a payment's order ids in sorted order. Caller holds
// at least the shared lock.
func (l *Ledger) ordersOf(paymentID string) []types.Order {
	orderIDs := l.index.OrdersOfPayment(paymentID)
	sort.Strings(orderIDs)
	orders := make([]types.Order, 0, len(orderIDs))
	for _, orderID := range orderIDs {
		if order, ok := l.store.Order(orderID); ok {
			orders = append(orders, order)
		}
	}
	return orders
}
