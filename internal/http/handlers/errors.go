package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fintrace/fintrace-backend/internal/http/response"
	"github.com/fintrace/fintrace-backend/internal/platform/apierr"
	"github.com/fintrace/fintrace-backend/internal/provenance"
)

// respondLedgerError maps the ledger's error taxonomy to HTTP statuses.
// Missing intermediate links never reach here; only creation failures and
// missing trace roots do.
func respondLedgerError(c *gin.Context, code string, err error) {
	var apiErr *apierr.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code != "" {
			code = apiErr.Code
		}
		response.RespondError(c, apiErr.Status, code, err)
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, provenance.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, provenance.ErrEmptyInput), errors.Is(err, provenance.ErrInvalidAmount):
		status = http.StatusBadRequest
	case errors.Is(err, provenance.ErrEnterpriseMismatch):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, provenance.ErrAlreadyLinked):
		status = http.StatusConflict
	}
	response.RespondError(c, status, code, err)
}
