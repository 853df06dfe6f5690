package app

import (
	"github.com/gin-gonic/gin"

	"github.com/fintrace/fintrace-backend/internal/http"
	httpH "github.com/fintrace/fintrace-backend/internal/http/handlers"
	"github.com/fintrace/fintrace-backend/internal/platform/logger"
)

type Handlers struct {
	Health       *httpH.HealthHandler
	Ledger       *httpH.LedgerHandler
	Trace        *httpH.TraceHandler
	Completeness *httpH.CompletenessHandler
}

func wireHandlers(services Services, log *logger.Logger) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Health:       httpH.NewHealthHandler(),
		Ledger:       httpH.NewLedgerHandler(services.Ledger),
		Trace:        httpH.NewTraceHandler(services.Trace),
		Completeness: httpH.NewCompletenessHandler(services.Completeness),
	}
}

func wireRouter(handlers Handlers, log *logger.Logger) *gin.Engine {
	return http.NewRouter(http.RouterConfig{
		Log:                 log,
		HealthHandler:       handlers.Health,
		LedgerHandler:       handlers.Ledger,
		TraceHandler:        handlers.Trace,
		CompletenessHandler: handlers.Completeness,
	})
}
