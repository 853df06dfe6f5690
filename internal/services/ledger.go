package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/fintrace/fintrace-backend/internal/platform/apierr"
	"github.com/fintrace/fintrace-backend/internal/platform/logger"
	"github.com/fintrace/fintrace-backend/internal/provenance"
	"github.com/fintrace/fintrace-backend/internal/repos"
	"github.com/fintrace/fintrace-backend/internal/types"
)

// LedgerService runs the creation operations against the in-memory ledger
// and journals each successful creation. The in-memory ledger is the source
// of truth; the journal exists so a restart can replay history.
type LedgerService interface {
	CreateOrder(ctx context.Context, amount decimal.Decimal, enterpriseID string) (types.Order, error)
	CreatePayment(ctx context.Context, orderIDs []string, enterpriseID string) (types.Payment, error)
	CreateEnterpriseTotal(ctx context.Context, paymentIDs []string) (types.EnterpriseTotal, error)
	CreateTotalAmount(ctx context.Context, enterpriseTotalIDs []string) (types.TotalAmount, error)
	Replay(ctx context.Context) (int, error)
}

type ledgerService struct {
	ledger *provenance.Ledger
	events repos.LedgerEventRepo // nil when journaling is disabled
	log    *logger.Logger
}

func NewLedgerService(ledger *provenance.Ledger, events repos.LedgerEventRepo, baseLog *logger.Logger) LedgerService {
	return &ledgerService{
		ledger: ledger,
		events: events,
		log:    baseLog.With("service", "LedgerService"),
	}
}

func (s *ledgerService) CreateOrder(ctx context.Context, amount decimal.Decimal, enterpriseID string) (types.Order, error) {
	order, err := s.ledger.CreateOrder(amount, enterpriseID)
	if err != nil {
		return types.Order{}, err
	}
	if err := s.journal(ctx, &types.LedgerEvent{
		Kind:         types.LedgerEventOrderCreated,
		EntityID:     order.ID,
		EnterpriseID: order.EnterpriseID,
		Amount:       order.Amount,
		CreatedAt:    order.CreatedAt,
	}); err != nil {
		return types.Order{}, err
	}
	s.log.Info("order created", "order_id", order.ID, "enterprise_id", enterpriseID, "amount", order.Amount.String())
	return order, nil
}

func (s *ledgerService) CreatePayment(ctx context.Context, orderIDs []string, enterpriseID string) (types.Payment, error) {
	payment, err := s.ledger.CreatePayment(orderIDs, enterpriseID)
	if err != nil {
		return types.Payment{}, err
	}
	if err := s.journal(ctx, &types.LedgerEvent{
		Kind:         types.LedgerEventPaymentCreated,
		EntityID:     payment.ID,
		EnterpriseID: payment.EnterpriseID,
		Amount:       payment.Amount,
		ChildIDs:     encodeChildIDs(orderIDs),
		CreatedAt:    payment.CreatedAt,
	}); err != nil {
		return types.Payment{}, err
	}
	s.log.Info("payment created", "payment_id", payment.ID, "enterprise_id", enterpriseID, "orders", len(orderIDs))
	return payment, nil
}

func (s *ledgerService) CreateEnterpriseTotal(ctx context.Context, paymentIDs []string) (types.EnterpriseTotal, error) {
	et, err := s.ledger.CreateEnterpriseTotal(paymentIDs)
	if err != nil {
		return types.EnterpriseTotal{}, err
	}
	if err := s.journal(ctx, &types.LedgerEvent{
		Kind:         types.LedgerEventEnterpriseTotalCreated,
		EntityID:     et.ID,
		EnterpriseID: et.EnterpriseID,
		Amount:       et.TotalAmount,
		ChildIDs:     encodeChildIDs(paymentIDs),
		CreatedAt:    et.CreatedAt,
	}); err != nil {
		return types.EnterpriseTotal{}, err
	}
	s.log.Info("enterprise total created", "enterprise_total_id", et.ID, "enterprise_id", et.EnterpriseID, "payments", len(paymentIDs))
	return et, nil
}

func (s *ledgerService) CreateTotalAmount(ctx context.Context, enterpriseTotalIDs []string) (types.TotalAmount, error) {
	ta, err := s.ledger.CreateTotalAmount(enterpriseTotalIDs)
	if err != nil {
		return types.TotalAmount{}, err
	}
	if err := s.journal(ctx, &types.LedgerEvent{
		Kind:      types.LedgerEventTotalAmountCreated,
		EntityID:  ta.ID,
		Amount:    ta.TotalAmount,
		ChildIDs:  encodeChildIDs(enterpriseTotalIDs),
		CreatedAt: ta.CreatedAt,
	}); err != nil {
		return types.TotalAmount{}, err
	}
	s.log.Info("total amount created", "total_amount_id", ta.ID, "enterprise_totals", len(enterpriseTotalIDs))
	return ta, nil
}

// Replay feeds every journal row back through the ledger's restore path in
// Seq order and returns the number of events applied. Call once at startup,
// before the HTTP surface accepts traffic.
func (s *ledgerService) Replay(ctx context.Context) (int, error) {
	if s.events == nil {
		return 0, nil
	}
	events, err := s.events.ListAll(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("list journal: %w", err)
	}
	for _, event := range events {
		if err := s.apply(event); err != nil {
			return 0, fmt.Errorf("replay event seq=%d kind=%s: %w", event.Seq, event.Kind, err)
		}
	}
	if len(events) > 0 {
		s.log.Info("journal replayed", "events", len(events))
	}
	return len(events), nil
}

func (s *ledgerService) apply(event *types.LedgerEvent) error {
	childIDs, err := decodeChildIDs(event.ChildIDs)
	if err != nil {
		return err
	}
	switch event.Kind {
	case types.LedgerEventOrderCreated:
		return s.ledger.RestoreOrder(types.Order{
			ID:           event.EntityID,
			Amount:       event.Amount,
			EnterpriseID: event.EnterpriseID,
			CreatedAt:    event.CreatedAt,
		})
	case types.LedgerEventPaymentCreated:
		return s.ledger.RestorePayment(types.Payment{
			ID:           event.EntityID,
			EnterpriseID: event.EnterpriseID,
			Amount:       event.Amount,
			CreatedAt:    event.CreatedAt,
		}, childIDs)
	case types.LedgerEventEnterpriseTotalCreated:
		return s.ledger.RestoreEnterpriseTotal(types.EnterpriseTotal{
			ID:           event.EntityID,
			EnterpriseID: event.EnterpriseID,
			TotalAmount:  event.Amount,
			CreatedAt:    event.CreatedAt,
		}, childIDs)
	case types.LedgerEventTotalAmountCreated:
		return s.ledger.RestoreTotalAmount(types.TotalAmount{
			ID:          event.EntityID,
			TotalAmount: event.Amount,
			CreatedAt:   event.CreatedAt,
		}, childIDs)
	default:
		return fmt.Errorf("unknown journal event kind %q", event.Kind)
	}
}

func (s *ledgerService) journal(ctx context.Context, event *types.LedgerEvent) error {
	if s.events == nil {
		return nil
	}
	if err := s.events.Append(ctx, nil, event); err != nil {
		// The in-memory state is already committed and visible; surface the
		// journal failure so the caller knows durability was not achieved.
		s.log.Error("journal append failed", "error", err, "kind", event.Kind, "entity_id", event.EntityID)
		return apierr.New(http.StatusInternalServerError, "journal_append_failed", fmt.Errorf("journal %s: %w", event.Kind, err))
	}
	return nil
}

func encodeChildIDs(ids []string) string {
	if len(ids) == 0 {
		return ""
	}
	data, _ := json.Marshal(ids)
	return string(data)
}

func decodeChildIDs(raw string) ([]string, error) {
	if raw == "" {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("decode child ids: %w", err)
	}
	return ids, nil
}
