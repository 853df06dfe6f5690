package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/fintrace/fintrace-backend/internal/platform/logger"
	"github.com/fintrace/fintrace-backend/internal/types"
)

// LedgerEventRepo persists the append-only creation journal. Rows are only
// ever appended; replaying them in Seq order rebuilds the in-memory ledger.
type LedgerEventRepo interface {
	Append(ctx context.Context, tx *gorm.DB, event *types.LedgerEvent) error
	ListAll(ctx context.Context, tx *gorm.DB) ([]*types.LedgerEvent, error)
	Count(ctx context.Context, tx *gorm.DB) (int64, error)
}

type ledgerEventRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewLedgerEventRepo(db *gorm.DB, baseLog *logger.Logger) LedgerEventRepo {
	return &ledgerEventRepo{db: db, log: baseLog.With("repo", "LedgerEventRepo")}
}

func (r *ledgerEventRepo) Append(ctx context.Context, tx *gorm.DB, event *types.LedgerEvent) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).Create(event).Error; err != nil {
		return err
	}
	return nil
}

func (r *ledgerEventRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.LedgerEvent, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.LedgerEvent
	if err := transaction.WithContext(ctx).
		Order("seq ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *ledgerEventRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.LedgerEvent{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
