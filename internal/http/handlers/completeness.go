package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fintrace/fintrace-backend/internal/http/response"
	"github.com/fintrace/fintrace-backend/internal/services"
)

type CompletenessHandler struct {
	completeness services.CompletenessService
}

func NewCompletenessHandler(completeness services.CompletenessService) *CompletenessHandler {
	return &CompletenessHandler{completeness: completeness}
}

// GET /api/completeness/summary
func (h *CompletenessHandler) Summary(c *gin.Context) {
	response.RespondOK(c, h.completeness.Summary(c.Request.Context()))
}

// GET /api/completeness/incomplete-payments?ids=PAY-1,PAY-2
// Without ids the universe is every payment the store knows.
func (h *CompletenessHandler) IncompletePayments(c *gin.Context) {
	universe := parseIDList(c.Query("ids"))
	response.RespondOK(c, h.completeness.IncompletePayments(c.Request.Context(), universe))
}

// GET /api/completeness/unrolled-payments?ids=...
func (h *CompletenessHandler) PaymentsWithoutEnterpriseTotal(c *gin.Context) {
	universe := parseIDList(c.Query("ids"))
	missing := h.completeness.PaymentsWithoutEnterpriseTotal(c.Request.Context(), universe)
	response.RespondOK(c, gin.H{"payment_ids": missing})
}

// GET /api/completeness/unrolled-enterprise-totals?ids=...
func (h *CompletenessHandler) EnterpriseTotalsWithoutTotal(c *gin.Context) {
	universe := parseIDList(c.Query("ids"))
	missing := h.completeness.EnterpriseTotalsWithoutTotal(c.Request.Context(), universe)
	response.RespondOK(c, gin.H{"enterprise_total_ids": missing})
}

func parseIDList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			ids = append(ids, p)
		}
	}
	return ids
}
