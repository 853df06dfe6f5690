package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/fintrace/fintrace-backend/internal/http/response"
	"github.com/fintrace/fintrace-backend/internal/services"
)

// LedgerHandler exposes the four creation operations.
type LedgerHandler struct {
	ledger services.LedgerService
}

func NewLedgerHandler(ledger services.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledger: ledger}
}

type createOrderRequest struct {
	Amount       decimal.Decimal `json:"amount"`
	EnterpriseID string          `json:"enterprise_id"`
}

// POST /api/orders
func (h *LedgerHandler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}
	if req.EnterpriseID == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_enterprise_id", nil)
		return
	}
	order, err := h.ledger.CreateOrder(c.Request.Context(), req.Amount, req.EnterpriseID)
	if err != nil {
		respondLedgerError(c, "create_order_failed", err)
		return
	}
	response.RespondCreated(c, gin.H{"order": order})
}

type createPaymentRequest struct {
	OrderIDs     []string `json:"order_ids"`
	EnterpriseID string   `json:"enterprise_id"`
}

// POST /api/payments
func (h *LedgerHandler) CreatePayment(c *gin.Context) {
	var req createPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}
	if req.EnterpriseID == "" {
		response.RespondError(c, http.StatusBadRequest, "missing_enterprise_id", nil)
		return
	}
	if len(req.OrderIDs) == 0 {
		response.RespondError(c, http.StatusBadRequest, "missing_order_ids", nil)
		return
	}
	payment, err := h.ledger.CreatePayment(c.Request.Context(), req.OrderIDs, req.EnterpriseID)
	if err != nil {
		respondLedgerError(c, "create_payment_failed", err)
		return
	}
	response.RespondCreated(c, gin.H{"payment": payment})
}

type createEnterpriseTotalRequest struct {
	PaymentIDs []string `json:"payment_ids"`
}

// POST /api/enterprise-totals
func (h *LedgerHandler) CreateEnterpriseTotal(c *gin.Context) {
	var req createEnterpriseTotalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}
	et, err := h.ledger.CreateEnterpriseTotal(c.Request.Context(), req.PaymentIDs)
	if err != nil {
		respondLedgerError(c, "create_enterprise_total_failed", err)
		return
	}
	response.RespondCreated(c, gin.H{"enterprise_total": et})
}

type createTotalAmountRequest struct {
	EnterpriseTotalIDs []string `json:"enterprise_total_ids"`
}

// POST /api/total-amounts
func (h *LedgerHandler) CreateTotalAmount(c *gin.Context) {
	var req createTotalAmountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request_body", err)
		return
	}
	ta, err := h.ledger.CreateTotalAmount(c.Request.Context(), req.EnterpriseTotalIDs)
	if err != nil {
		respondLedgerError(c, "create_total_amount_failed", err)
		return
	}
	response.RespondCreated(c, gin.H{"total_amount": ta})
}
