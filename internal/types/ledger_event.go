package types

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEvent kinds, one per creation operation.
const (
	LedgerEventOrderCreated           = "order_created"
	LedgerEventPaymentCreated         = "payment_created"
	LedgerEventEnterpriseTotalCreated = "enterprise_total_created"
	LedgerEventTotalAmountCreated     = "total_amount_created"
)

// LedgerEvent is one row of the append-only creation journal. The journal is
// the only durable state; replaying it in Seq order reconstructs the
// in-memory ledger exactly. Rows are never updated or deleted.
type LedgerEvent struct {
	Seq          uint64          `gorm:"primaryKey;autoIncrement" json:"seq"`
	Kind         string          `gorm:"column:kind;not null;index" json:"kind"`
	EntityID     string          `gorm:"column:entity_id;not null;uniqueIndex" json:"entity_id"`
	EnterpriseID string          `gorm:"column:enterprise_id;index" json:"enterprise_id,omitempty"`
	Amount       decimal.Decimal `gorm:"column:amount;type:numeric" json:"amount"`
	// ChildIDs is the JSON-encoded list of aggregated child ids; empty for
	// order events.
	ChildIDs  string    `gorm:"column:child_ids" json:"child_ids,omitempty"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
}

func (LedgerEvent) TableName() string { return "ledger_event" }
