package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/fintrace/fintrace-backend/internal/http/handlers"
	httpMW "github.com/fintrace/fintrace-backend/internal/http/middleware"
	"github.com/fintrace/fintrace-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	HealthHandler       *httpH.HealthHandler
	LedgerHandler       *httpH.LedgerHandler
	TraceHandler        *httpH.TraceHandler
	CompletenessHandler *httpH.CompletenessHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware("fintrace"))
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Creation operations
		if cfg.LedgerHandler != nil {
			api.POST("/orders", cfg.LedgerHandler.CreateOrder)
			api.POST("/payments", cfg.LedgerHandler.CreatePayment)
			api.POST("/enterprise-totals", cfg.LedgerHandler.CreateEnterpriseTotal)
			api.POST("/total-amounts", cfg.LedgerHandler.CreateTotalAmount)
		}

		// Provenance traces
		if cfg.TraceHandler != nil {
			api.GET("/trace/forward/:paymentId", cfg.TraceHandler.TraceForward)
			api.GET("/trace/backward/:totalId", cfg.TraceHandler.TraceBackward)
			api.GET("/trace/enterprise/:enterpriseTotalId", cfg.TraceHandler.TraceEnterpriseBackward)
		}

		// Completeness
		if cfg.CompletenessHandler != nil {
			api.GET("/completeness/summary", cfg.CompletenessHandler.Summary)
			api.GET("/completeness/incomplete-payments", cfg.CompletenessHandler.IncompletePayments)
			api.GET("/completeness/unrolled-payments", cfg.CompletenessHandler.PaymentsWithoutEnterpriseTotal)
			api.GET("/completeness/unrolled-enterprise-totals", cfg.CompletenessHandler.EnterpriseTotalsWithoutTotal)
		}
	}

	return r
}
