package services

import (
	"context"

	"github.com/fintrace/fintrace-backend/internal/platform/logger"
	"github.com/fintrace/fintrace-backend/internal/provenance"
)

// TraceService exposes the multi-hop provenance queries. Pure reads; the
// ledger takes its shared lock for each full traversal.
type TraceService interface {
	TraceForward(ctx context.Context, paymentID string) (provenance.ForwardTrace, error)
	TraceBackward(ctx context.Context, totalID string) (provenance.BackwardTrace, error)
	TraceEnterpriseBackward(ctx context.Context, enterpriseTotalID string) (provenance.EnterpriseBackwardTrace, error)
}

type traceService struct {
	ledger *provenance.Ledger
	log    *logger.Logger
}

func NewTraceService(ledger *provenance.Ledger, baseLog *logger.Logger) TraceService {
	return &traceService{ledger: ledger, log: baseLog.With("service", "TraceService")}
}

func (s *traceService) TraceForward(ctx context.Context, paymentID string) (provenance.ForwardTrace, error) {
	trace, err := s.ledger.TraceForward(paymentID)
	if err != nil {
		s.log.Warn("TraceForward failed", "error", err, "payment_id", paymentID)
		return provenance.ForwardTrace{}, err
	}
	return trace, nil
}

func (s *traceService) TraceBackward(ctx context.Context, totalID string) (provenance.BackwardTrace, error) {
	trace, err := s.ledger.TraceBackward(totalID)
	if err != nil {
		s.log.Warn("TraceBackward failed", "error", err, "total_id", totalID)
		return provenance.BackwardTrace{}, err
	}
	return trace, nil
}

func (s *traceService) TraceEnterpriseBackward(ctx context.Context, enterpriseTotalID string) (provenance.EnterpriseBackwardTrace, error) {
	trace, err := s.ledger.TraceEnterpriseBackward(enterpriseTotalID)
	if err != nil {
		s.log.Warn("TraceEnterpriseBackward failed", "error", err, "enterprise_total_id", enterpriseTotalID)
		return provenance.EnterpriseBackwardTrace{}, err
	}
	return trace, nil
}
