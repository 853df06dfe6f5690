package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// EnterpriseTotal is the per-enterprise rollup of payments.
type EnterpriseTotal struct {
	ID           string          `json:"id"`
	EnterpriseID string          `json:"enterprise_id"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	CreatedAt    time.Time       `json:"created_at"`
}
