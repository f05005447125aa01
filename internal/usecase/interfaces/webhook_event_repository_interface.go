package interfaces

import (
	"context"

	"settlement_service/internal/domain/entities"
)

// IWebhookEventRepository is the append-only provider event ledger.
//
// RecordIfNew is an atomic check-then-insert on (provider, event_id): among concurrent
// calls for the same pair exactly one returns true. Release removes the entry of an
// event whose processing failed, so a redelivery is recorded again.

type IWebhookEventRepository interface {
	RecordIfNew(ctx context.Context, e entities.WebhookEvent) (bool, error)
	Get(ctx context.Context, provider entities.Provider, eventID string) (entities.WebhookEvent, error)
	Release(ctx context.Context, provider entities.Provider, eventID string) error
}
