package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a leaf record: pure data, no relationship fields. Membership in a
// payment lives in the relationship index only.
type Order struct {
	ID           string          `json:"id"`
	Amount       decimal.Decimal `json:"amount"`
	EnterpriseID string          `json:"enterprise_id"`
	CreatedAt    time.Time       `json:"created_at"`
}
