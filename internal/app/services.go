package app

import (
	"github.com/fintrace/fintrace-backend/internal/platform/logger"
	"github.com/fintrace/fintrace-backend/internal/provenance"
	"github.com/fintrace/fintrace-backend/internal/services"
)

type Services struct {
	Ledger       services.LedgerService
	Trace        services.TraceService
	Completeness services.CompletenessService
}

func wireServices(ledger *provenance.Ledger, reposet Repos, log *logger.Logger) Services {
	log.Info("Wiring services...")
	return Services{
		Ledger:       services.NewLedgerService(ledger, reposet.LedgerEvent, log),
		Trace:        services.NewTraceService(ledger, log),
		Completeness: services.NewCompletenessService(ledger, log),
	}
}
