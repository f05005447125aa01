package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"settlement_service/internal/domain/entities"
	"settlement_service/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IWebhookEventStore is the dedup ledger of inbound provider events.
type IWebhookEventStore interface {
	RecordIfNew(ctx context.Context, provider entities.Provider, eventID string, payload []byte) (bool, error)
	Get(ctx context.Context, provider entities.Provider, eventID string) (entities.WebhookEvent, error)
	Release(ctx context.Context, provider entities.Provider, eventID string) error
}

type WebhookEventStore struct {
	repo   interfaces.IWebhookEventRepository
	logger *zap.Logger
	now    func() time.Time
}

var _ IWebhookEventStore = (*WebhookEventStore)(nil)

func NewWebhookEventStore(repo interfaces.IWebhookEventRepository, logger *zap.Logger) *WebhookEventStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookEventStore{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// RecordIfNew appends the event unless (provider, eventID) was already recorded. It
// reports true only for the caller whose insert won.
func (s *WebhookEventStore) RecordIfNew(ctx context.Context, provider entities.Provider, eventID string, payload []byte) (bool, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return false, ErrInvalidEventID
	}

	e := entities.WebhookEvent{
		ID:         uuid.NewString(),
		Provider:   provider,
		EventID:    eventID,
		Payload:    append([]byte(nil), payload...),
		ReceivedAt: s.now(),
	}
	isNew, err := s.repo.RecordIfNew(ctx, e)
	if err != nil {
		s.logger.Error("webhook ledger write failed",
			zap.String("provider", string(provider)),
			zap.String("event_id", eventID),
			zap.Error(err),
		)
		return false, fmt.Errorf("record webhook event: %w", err)
	}
	if !isNew {
		s.logger.Info("duplicate webhook event",
			zap.String("provider", string(provider)),
			zap.String("event_id", eventID),
		)
	}
	return isNew, nil
}

func (s *WebhookEventStore) Get(ctx context.Context, provider entities.Provider, eventID string) (entities.WebhookEvent, error) {
	eventID = strings.TrimSpace(eventID)
	if eventID == "" {
		return entities.WebhookEvent{}, ErrInvalidEventID
	}
	e, err := s.repo.Get(ctx, provider, eventID)
	if err != nil {
		return entities.WebhookEvent{}, err
	}
	if !e.Found() {
		return entities.WebhookEvent{}, ErrWebhookEventNotFound
	}
	return e, nil
}

// Release drops the ledger entry of an event that could not be applied.
func (s *WebhookEventStore) Release(ctx context.Context, provider entities.Provider, eventID string) error {
	if err := s.repo.Release(ctx, provider, strings.TrimSpace(eventID)); err != nil {
		s.logger.Error("webhook ledger release failed",
			zap.String("provider", string(provider)),
			zap.String("event_id", eventID),
			zap.Error(err),
		)
		return fmt.Errorf("release webhook event: %w", err)
	}
	return nil
}
