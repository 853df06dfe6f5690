package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// TotalAmount is the top-tier rollup across enterprise totals.
type TotalAmount struct {
	ID          string          `json:"id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	CreatedAt   time.Time       `json:"created_at"`
}
