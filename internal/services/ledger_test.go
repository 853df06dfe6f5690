package services

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/fintrace/fintrace-backend/internal/platform/logger"
	"github.com/fintrace/fintrace-backend/internal/provenance"
	"github.com/fintrace/fintrace-backend/internal/types"
)

// memEventRepo keeps journal rows in a slice; stands in for the gorm repo.
type memEventRepo struct {
	events []*types.LedgerEvent
}

func (m *memEventRepo) Append(ctx context.Context, tx *gorm.DB, event *types.LedgerEvent) error {
	event.Seq = uint64(len(m.events) + 1)
	m.events = append(m.events, event)
	return nil
}

func (m *memEventRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]*types.LedgerEvent, error) {
	return m.events, nil
}

func (m *memEventRepo) Count(ctx context.Context, tx *gorm.DB) (int64, error) {
	return int64(len(m.events)), nil
}

func TestLedgerServiceJournalsAndReplays(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	journal := &memEventRepo{}
	log := logger.NewNop()

	svc := NewLedgerService(provenance.NewLedger(), journal, log)

	a, err := svc.CreateOrder(ctx, decimal.NewFromInt(100), "E1")
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	b, err := svc.CreateOrder(ctx, decimal.NewFromInt(200), "E1")
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	payment, err := svc.CreatePayment(ctx, []string{a.ID, b.ID}, "E1")
	if err != nil {
		t.Fatalf("create payment: %v", err)
	}
	et, err := svc.CreateEnterpriseTotal(ctx, []string{payment.ID})
	if err != nil {
		t.Fatalf("create enterprise total: %v", err)
	}
	total, err := svc.CreateTotalAmount(ctx, []string{et.ID})
	if err != nil {
		t.Fatalf("create total amount: %v", err)
	}

	if len(journal.events) != 5 {
		t.Fatalf("journal rows: got=%d want=5", len(journal.events))
	}

	// A fresh ledger replaying the same journal must reach the same state.
	restoredLedger := provenance.NewLedger()
	restoredSvc := NewLedgerService(restoredLedger, journal, log)
	applied, err := restoredSvc.Replay(ctx)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}
	if applied != 5 {
		t.Fatalf("replayed events: got=%d want=5", applied)
	}

	forward, err := restoredLedger.TraceForward(payment.ID)
	if err != nil {
		t.Fatalf("trace forward after replay: %v", err)
	}
	if forward.TotalAmount == nil || forward.TotalAmount.ID != total.ID {
		t.Fatalf("replayed chain incomplete: %+v", forward)
	}
	if len(forward.Orders) != 2 {
		t.Fatalf("replayed orders: got=%d want=2", len(forward.Orders))
	}
	if !forward.Payment.Amount.Equal(decimal.NewFromInt(300)) {
		t.Fatalf("replayed payment amount: got=%s want=300", forward.Payment.Amount)
	}
}

func TestLedgerServiceWithoutJournal(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	svc := NewLedgerService(provenance.NewLedger(), nil, logger.NewNop())
	if _, err := svc.CreateOrder(ctx, decimal.NewFromInt(50), "E1"); err != nil {
		t.Fatalf("create order without journal: %v", err)
	}
	applied, err := svc.Replay(ctx)
	if err != nil {
		t.Fatalf("replay without journal: %v", err)
	}
	if applied != 0 {
		t.Fatalf("expected no replayed events, got %d", applied)
	}
}

func TestLedgerServiceDoesNotJournalFailedCreations(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	journal := &memEventRepo{}

	svc := NewLedgerService(provenance.NewLedger(), journal, logger.NewNop())
	if _, err := svc.CreatePayment(ctx, []string{"ORD-missing"}, "E1"); err == nil {
		t.Fatal("expected creation failure")
	}
	if len(journal.events) != 0 {
		t.Fatalf("failed creation reached the journal: %+v", journal.events)
	}
}
