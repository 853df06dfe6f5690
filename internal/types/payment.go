package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Payment aggregates orders of one enterprise. Amount is the exact sum of
// the linked orders' amounts at creation time and is never recomputed.
type Payment struct {
	ID           string          `json:"id"`
	EnterpriseID string          `json:"enterprise_id"`
	Amount       decimal.Decimal `json:"amount"`
	CreatedAt    time.Time       `json:"created_at"`
}
