package provenance

import (
	"fmt"
	"sort"
)

// IncompletePayments classifies payments that have not reached the top
// tier. CompletelyMissing always equals MissingEnterpriseTotal: a payment
// without an enterprise total cannot have a total amount either.
type IncompletePayments struct {
	MissingEnterpriseTotal []string `json:"missing_enterprise_total"`
	MissingTotal           []string `json:"missing_total"`
	CompletelyMissing      []string `json:"completely_missing"`
}

// CompletenessSummary reports per-tier record counts and rollup rates.
// Rates are rendered as percentages with one decimal; a zero denominator
// renders as "0%".
type CompletenessSummary struct {
	TotalPayments                int    `json:"total_payments"`
	PaymentsWithEnterprise       int    `json:"payments_with_enterprise"`
	PaymentsWithoutEnterprise    int    `json:"payments_without_enterprise"`
	TotalEnterpriseTotals        int    `json:"total_enterprise_totals"`
	EnterpriseTotalsWithTotal    int    `json:"enterprise_totals_with_total"`
	EnterpriseTotalsWithoutTotal int    `json:"enterprise_totals_without_total"`
	TotalAmounts                 int    `json:"total_amounts"`
	PaymentToEnterpriseRate      string `json:"payment_to_enterprise_rate"`
	EnterpriseToTotalRate        string `json:"enterprise_to_total_rate"`
}

// PaymentsWithoutEnterpriseTotal returns the payments in universe that have
// no forward link to an enterprise total. A nil universe means the entity
// store's full payment set — never just "ids the index has seen", which
// would silently hide payments that were never considered for rollup.
func (l *Ledger) PaymentsWithoutEnterpriseTotal(universe []string) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if universe == nil {
		universe = l.store.AllPaymentIDs()
	}
	missing := make([]string, 0, len(universe))
	for _, paymentID := range universe {
		if _, ok := l.index.EnterpriseTotalOfPayment(paymentID); !ok {
			missing = append(missing, paymentID)
		}
	}
	sort.Strings(missing)
	return missing
}

// EnterpriseTotalsWithoutTotal is the same question one tier up; a nil
// universe defaults to the store's full enterprise-total set.
func (l *Ledger) EnterpriseTotalsWithoutTotal(universe []string) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if universe == nil {
		universe = l.store.AllEnterpriseTotalIDs()
	}
	missing := make([]string, 0, len(universe))
	for _, etID := range universe {
		if _, ok := l.index.TotalOfEnterpriseTotal(etID); !ok {
			missing = append(missing, etID)
		}
	}
	sort.Strings(missing)
	return missing
}

// IncompletePayments classifies every payment in universe (nil = all known
// payments) by how far up the chain it has been rolled.
func (l *Ledger) IncompletePayments(universe []string) IncompletePayments {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if universe == nil {
		universe = l.store.AllPaymentIDs()
	}

	result := IncompletePayments{
		MissingEnterpriseTotal: []string{},
		MissingTotal:           []string{},
		CompletelyMissing:      []string{},
	}
	for _, paymentID := range universe {
		etID, ok := l.index.EnterpriseTotalOfPayment(paymentID)
		if !ok {
			result.MissingEnterpriseTotal = append(result.MissingEnterpriseTotal, paymentID)
			result.CompletelyMissing = append(result.CompletelyMissing, paymentID)
			continue
		}
		if _, ok := l.index.TotalOfEnterpriseTotal(etID); !ok {
			result.MissingTotal = append(result.MissingTotal, paymentID)
		}
	}
	sort.Strings(result.MissingEnterpriseTotal)
	sort.Strings(result.MissingTotal)
	sort.Strings(result.CompletelyMissing)
	return result
}

// CompletenessSummary derives the rollup rates from the entity store's
// counts and the index's forward links.
func (l *Ledger) CompletenessSummary() CompletenessSummary {
	l.mu.RLock()
	defer l.mu.RUnlock()

	_, payments, enterpriseTotals, totalAmounts := l.store.Counts()
	_, paymentsWithEnterprise, _, enterpriseTotalsWithTotal, _ := l.index.LinkCounts()

	return CompletenessSummary{
		TotalPayments:                payments,
		PaymentsWithEnterprise:       paymentsWithEnterprise,
		PaymentsWithoutEnterprise:    payments - paymentsWithEnterprise,
		TotalEnterpriseTotals:        enterpriseTotals,
		EnterpriseTotalsWithTotal:    enterpriseTotalsWithTotal,
		EnterpriseTotalsWithoutTotal: enterpriseTotals - enterpriseTotalsWithTotal,
		TotalAmounts:                 totalAmounts,
		PaymentToEnterpriseRate:      rate(paymentsWithEnterprise, payments),
		EnterpriseToTotalRate:        rate(enterpriseTotalsWithTotal, enterpriseTotals),
	}
}

func rate(numerator, denominator int) string {
	if denominator == 0 {
		return "0%"
	}
	return fmt.Sprintf("%.1f%%", float64(numerator)/float64(denominator)*100)
}
