package services

import (
	"context"

	"github.com/fintrace/fintrace-backend/internal/platform/logger"
	"github.com/fintrace/fintrace-backend/internal/provenance"
)

// CompletenessService answers "what has not been rolled up yet" from the
// relationship index. A nil universe means every id the entity store knows.
type CompletenessService interface {
	Summary(ctx context.Context) provenance.CompletenessSummary
	IncompletePayments(ctx context.Context, universe []string) provenance.IncompletePayments
	PaymentsWithoutEnterpriseTotal(ctx context.Context, universe []string) []string
	EnterpriseTotalsWithoutTotal(ctx context.Context, universe []string) []string
}

type completenessService struct {
	ledger *provenance.Ledger
	log    *logger.Logger
}

func NewCompletenessService(ledger *provenance.Ledger, baseLog *logger.Logger) CompletenessService {
	return &completenessService{ledger: ledger, log: baseLog.With("service", "CompletenessService")}
}

func (s *completenessService) Summary(ctx context.Context) provenance.CompletenessSummary {
	return s.ledger.CompletenessSummary()
}

func (s *completenessService) IncompletePayments(ctx context.Context, universe []string) provenance.IncompletePayments {
	return s.ledger.IncompletePayments(universe)
}

func (s *completenessService) PaymentsWithoutEnterpriseTotal(ctx context.Context, universe []string) []string {
	return s.ledger.PaymentsWithoutEnterpriseTotal(universe)
}

func (s *completenessService) EnterpriseTotalsWithoutTotal(ctx context.Context, universe []string) []string {
	return s.ledger.EnterpriseTotalsWithoutTotal(universe)
}
