package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fintrace/fintrace-backend/internal/http/response"
	"github.com/fintrace/fintrace-backend/internal/services"
)

type TraceHandler struct {
	traces services.TraceService
}

func NewTraceHandler(traces services.TraceService) *TraceHandler {
	return &TraceHandler{traces: traces}
}

// GET /api/trace/forward/:paymentId
func (h *TraceHandler) TraceForward(c *gin.Context) {
	paymentID := c.Param("paymentId")
	if paymentID == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_payment_id", nil)
		return
	}
	trace, err := h.traces.TraceForward(c.Request.Context(), paymentID)
	if err != nil {
		respondLedgerError(c, "trace_forward_failed", err)
		return
	}
	response.RespondOK(c, trace)
}

// GET /api/trace/backward/:totalId
func (h *TraceHandler) TraceBackward(c *gin.Context) {
	totalID := c.Param("totalId")
	if totalID == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_total_id", nil)
		return
	}
	trace, err := h.traces.TraceBackward(c.Request.Context(), totalID)
	if err != nil {
		respondLedgerError(c, "trace_backward_failed", err)
		return
	}
	response.RespondOK(c, trace)
}

// GET /api/trace/enterprise/:enterpriseTotalId
func (h *TraceHandler) TraceEnterpriseBackward(c *gin.Context) {
	etID := c.Param("enterpriseTotalId")
	if etID == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_enterprise_total_id", nil)
		return
	}
	trace, err := h.traces.TraceEnterpriseBackward(c.Request.Context(), etID)
	if err != nil {
		respondLedgerError(c, "trace_enterprise_backward_failed", err)
		return
	}
	response.RespondOK(c, trace)
}
