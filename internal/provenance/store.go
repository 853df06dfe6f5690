package provenance

import "github.com/fintrace/fintrace-backend/internal/types"

// Store holds the canonical immutable entity records, one mapping per tier.
// Records never reference each other; the Index is the only place links
// exist. Not internally locked — the Ledger's lock guards it.
type Store struct {
	orders           map[string]types.Order
	payments         map[string]types.Payment
	enterpriseTotals map[string]types.EnterpriseTotal
	totalAmounts     map[string]types.TotalAmount
}

func NewStore() *Store {
	return &Store{
		orders:           make(map[string]types.Order),
		payments:         make(map[string]types.Payment),
		enterpriseTotals: make(map[string]types.EnterpriseTotal),
		totalAmounts:     make(map[string]types.TotalAmount),
	}
}

func (s *Store) InsertOrder(o types.Order)                    { s.orders[o.ID] = o }
func (s *Store) InsertPayment(p types.Payment)                { s.payments[p.ID] = p }
func (s *Store) InsertEnterpriseTotal(et types.EnterpriseTotal) { s.enterpriseTotals[et.ID] = et }
func (s *Store) InsertTotalAmount(t types.TotalAmount)        { s.totalAmounts[t.ID] = t }

func (s *Store) Order(id string) (types.Order, bool) {
	o, ok := s.orders[id]
	return o, ok
}

func (s *Store) Payment(id string) (types.Payment, bool) {
	p, ok := s.payments[id]
	return p, ok
}

func (s *Store) EnterpriseTotal(id string) (types.EnterpriseTotal, bool) {
	et, ok := s.enterpriseTotals[id]
	return et, ok
}

func (s *Store) TotalAmount(id string) (types.TotalAmount, bool) {
	t, ok := s.totalAmounts[id]
	return t, ok
}

// AllPaymentIDs is the authoritative payment universe. Completeness queries
// use it when the caller does not supply their own universe, so payments
// that were never rolled up still show as incomplete.
func (s *Store) AllPaymentIDs() []string {
	out := make([]string, 0, len(s.payments))
	for id := range s.payments {
		out = append(out, id)
	}
	return out
}

// AllEnterpriseTotalIDs is the authoritative enterprise-total universe.
func (s *Store) AllEnterpriseTotalIDs() []string {
	out := make([]string, 0, len(s.enterpriseTotals))
	for id := range s.enterpriseTotals {
		out = append(out, id)
	}
	return out
}

// Counts returns the number of records per tier, leaf first.
func (s *Store) Counts() (orders, payments, enterpriseTotals, totalAmounts int) {
	return len(s.orders), len(s.payments), len(s.enterpriseTotals), len(s.totalAmounts)
}
