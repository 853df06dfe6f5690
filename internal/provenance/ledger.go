package provenance

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/fintrace/fintrace-backend/internal/types"
)

// ID prefixes, one per tier.
const (
	orderIDPrefix           = "ORD"
	paymentIDPrefix         = "PAY"
	enterpriseTotalIDPrefix = "ENT"
	totalAmountIDPrefix     = "TOT"
)

// Ledger owns one Store and one Index and is the only way to mutate them.
// Creation operations validate, insert the entity, then record links, all
// under a single exclusive lock, so concurrent readers never observe a
// partially linked chain. Queries (trace, completeness) hold the shared
// lock for their whole multi-hop read.
//
// A Ledger is constructed per service instance or per test; there is no
// process-wide instance.
type Ledger struct {
	mu    sync.RWMutex
	store *Store
	index *Index

	now   func() time.Time
	newID func(prefix string) string
}

func NewLedger() *Ledger {
	return &Ledger{
		store: NewStore(),
		index: NewIndex(),
		now:   time.Now,
		newID: randomID,
	}
}

func randomID(prefix string) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "-" + hex[:8]
}

// CreateOrder inserts a standalone leaf record. Orders carry no links until
// a payment aggregates them.
func (l *Ledger) CreateOrder(amount decimal.Decimal, enterpriseID string) (types.Order, error) {
	if amount.IsNegative() {
		return types.Order{}, fmt.Errorf("order amount %s: %w", amount, ErrInvalidAmount)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	order := types.Order{
		ID:           l.newID(orderIDPrefix),
		Amount:       amount,
		EnterpriseID: enterpriseID,
		CreatedAt:    l.now(),
	}
	l.store.InsertOrder(order)
	return order, nil
}

// CreatePayment aggregates the given orders into a new payment for the
// enterprise. Every order must exist and belong to enterpriseID; the
// payment amount is the exact sum of the orders' amounts. All-or-nothing:
// any validation failure leaves the ledger untouched.
func (l *Ledger) CreatePayment(orderIDs []string, enterpriseID string) (types.Payment, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	amount := decimal.Zero
	for _, orderID := range orderIDs {
		order, ok := l.store.Order(orderID)
		if !ok {
			return types.Payment{}, fmt.Errorf("order %s: %w", orderID, ErrNotFound)
		}
		if order.EnterpriseID != enterpriseID {
			return types.Payment{}, fmt.Errorf("order %s belongs to %s, not %s: %w",
				orderID, order.EnterpriseID, enterpriseID, ErrEnterpriseMismatch)
		}
		amount = amount.Add(order.Amount)
	}

	payment := types.Payment{
		ID:           l.newID(paymentIDPrefix),
		EnterpriseID: enterpriseID,
		Amount:       amount,
		CreatedAt:    l.now(),
	}
	l.store.InsertPayment(payment)
	for _, orderID := range orderIDs {
		l.index.LinkPaymentOrder(payment.ID, orderID)
	}
	return payment, nil
}

// CreateEnterpriseTotal rolls the given payments into a new enterprise
// total. The enterprise identity is taken from the first payment and every
// other payment must match it. Payments already rolled into another
// enterprise total are rejected, keeping aggregation append-only.
func (l *Ledger) CreateEnterpriseTotal(paymentIDs []string) (types.EnterpriseTotal, error) {
	if len(paymentIDs) == 0 {
		return types.EnterpriseTotal{}, fmt.Errorf("enterprise total needs at least one payment: %w", ErrEmptyInput)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	et, err := l.buildEnterpriseTotal(l.newID(enterpriseTotalIDPrefix), l.now(), paymentIDs)
	if err != nil {
		return types.EnterpriseTotal{}, err
	}
	return et, nil
}

// buildEnterpriseTotal validates, inserts and links under an already-held
// exclusive lock. Shared by the create and restore paths.
func (l *Ledger) buildEnterpriseTotal(id string, createdAt time.Time, paymentIDs []string) (types.EnterpriseTotal, error) {
	var enterpriseID string
	total := decimal.Zero
	for i, paymentID := range paymentIDs {
		payment, ok := l.store.Payment(paymentID)
		if !ok {
			return types.EnterpriseTotal{}, fmt.Errorf("payment %s: %w", paymentID, ErrNotFound)
		}
		if i == 0 {
			enterpriseID = payment.EnterpriseID
		} else if payment.EnterpriseID != enterpriseID {
			return types.EnterpriseTotal{}, fmt.Errorf("payment %s belongs to %s, not %s: %w",
				paymentID, payment.EnterpriseID, enterpriseID, ErrEnterpriseMismatch)
		}
		if linked, ok := l.index.EnterpriseTotalOfPayment(paymentID); ok && linked != id {
			return types.EnterpriseTotal{}, fmt.Errorf("payment %s -> %s: %w", paymentID, linked, ErrAlreadyLinked)
		}
		total = total.Add(payment.Amount)
	}

	et := types.EnterpriseTotal{
		ID:           id,
		EnterpriseID: enterpriseID,
		TotalAmount:  total,
		CreatedAt:    createdAt,
	}
	l.store.InsertEnterpriseTotal(et)
	for _, paymentID := range paymentIDs {
		if err := l.index.LinkPaymentToEnterpriseTotal(paymentID, et.ID); err != nil {
			// Unreachable: every payment was checked above under the same lock.
			return types.EnterpriseTotal{}, err
		}
	}
	return et, nil
}

// CreateTotalAmount rolls the given enterprise totals into a new top-tier
// total. Enterprise totals already rolled up are rejected.
func (l *Ledger) CreateTotalAmount(enterpriseTotalIDs []string) (types.TotalAmount, error) {
	if len(enterpriseTotalIDs) == 0 {
		return types.TotalAmount{}, fmt.Errorf("total amount needs at least one enterprise total: %w", ErrEmptyInput)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	ta, err := l.buildTotalAmount(l.newID(totalAmountIDPrefix), l.now(), enterpriseTotalIDs)
	if err != nil {
		return types.TotalAmount{}, err
	}
	return ta, nil
}

func (l *Ledger) buildTotalAmount(id string, createdAt time.Time, enterpriseTotalIDs []string) (types.TotalAmount, error) {
	total := decimal.Zero
	for _, etID := range enterpriseTotalIDs {
		et, ok := l.store.EnterpriseTotal(etID)
		if !ok {
			return types.TotalAmount{}, fmt.Errorf("enterprise total %s: %w", etID, ErrNotFound)
		}
		if linked, ok := l.index.TotalOfEnterpriseTotal(etID); ok && linked != id {
			return types.TotalAmount{}, fmt.Errorf("enterprise total %s -> %s: %w", etID, linked, ErrAlreadyLinked)
		}
		total = total.Add(et.TotalAmount)
	}

	ta := types.TotalAmount{
		ID:          id,
		TotalAmount: total,
		CreatedAt:   createdAt,
	}
	l.store.InsertTotalAmount(ta)
	for _, etID := range enterpriseTotalIDs {
		if err := l.index.LinkEnterpriseTotalToTotal(etID, ta.ID); err != nil {
			return types.TotalAmount{}, err
		}
	}
	return ta, nil
}

// Restore* replay journal events through the same validation and linking
// path as the creation operations, keeping id and timestamp from the
// journal. They are only called during startup replay, before the HTTP
// surface is up.

func (l *Ledger) RestoreOrder(order types.Order) error {
	if order.Amount.IsNegative() {
		return fmt.Errorf("order amount %s: %w", order.Amount, ErrInvalidAmount)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.store.InsertOrder(order)
	return nil
}

func (l *Ledger) RestorePayment(payment types.Payment, orderIDs []string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, orderID := range orderIDs {
		order, ok := l.store.Order(orderID)
		if !ok {
			return fmt.Errorf("order %s: %w", orderID, ErrNotFound)
		}
		if order.EnterpriseID != payment.EnterpriseID {
			return fmt.Errorf("order %s belongs to %s, not %s: %w",
				orderID, order.EnterpriseID, payment.EnterpriseID, ErrEnterpriseMismatch)
		}
	}
	l.store.InsertPayment(payment)
	for _, orderID := range orderIDs {
		l.index.LinkPaymentOrder(payment.ID, orderID)
	}
	return nil
}

func (l *Ledger) RestoreEnterpriseTotal(et types.EnterpriseTotal, paymentIDs []string) error {
	if len(paymentIDs) == 0 {
		return fmt.Errorf("enterprise total %s without payments: %w", et.ID, ErrEmptyInput)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_, err := l.buildEnterpriseTotal(et.ID, et.CreatedAt, paymentIDs)
	return err
}

func (l *Ledger) RestoreTotalAmount(ta types.TotalAmount, enterpriseTotalIDs []string) error {
	if len(enterpriseTotalIDs) == 0 {
		return fmt.Errorf("total amount %s without enterprise totals: %w", ta.ID, ErrEmptyInput)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_, err := l.buildTotalAmount(ta.ID, ta.CreatedAt, enterpriseTotalIDs)
	return err
}

// Order returns the stored record for id.
func (l *Ledger) Order(id string) (types.Order, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.store.Order(id)
}

// Payment returns the stored record for id.
func (l *Ledger) Payment(id string) (types.Payment, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.store.Payment(id)
}

// EnterpriseTotal returns the stored record for id.
func (l *Ledger) EnterpriseTotal(id string) (types.EnterpriseTotal, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.store.EnterpriseTotal(id)
}

// TotalAmount returns the stored record for id.
func (l *Ledger) TotalAmount(id string) (types.TotalAmount, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.store.TotalAmount(id)
}
