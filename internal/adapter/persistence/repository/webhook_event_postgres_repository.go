package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"settlement_service/internal/domain/entities"
	"settlement_service/internal/usecase/interfaces"
)

type WebhookEventPostgresRepository struct {
	db *sql.DB
}

var _ interfaces.IWebhookEventRepository = (*WebhookEventPostgresRepository)(nil)

func NewWebhookEventPostgresRepository(db *sql.DB) *WebhookEventPostgresRepository {
	return &WebhookEventPostgresRepository{db: db}
}

// RecordIfNew relies on ON CONFLICT DO NOTHING: a conflicting insert returns no row.
func (r *WebhookEventPostgresRepository) RecordIfNew(ctx context.Context, e entities.WebhookEvent) (bool, error) {
	var id string
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO webhook_events (id, provider, event_id, payload, received_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (provider, event_id) DO NOTHING
		RETURNING id`,
		e.ID, string(e.Provider), e.EventID, e.Payload, e.ReceivedAt,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("insert webhook event: %w", err)
	}
	return true, nil
}

func (r *WebhookEventPostgresRepository) Get(ctx context.Context, provider entities.Provider, eventID string) (entities.WebhookEvent, error) {
	var (
		e      entities.WebhookEvent
		source string
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, provider, event_id, payload, received_at
		FROM webhook_events
		WHERE provider = $1 AND event_id = $2`, string(provider), eventID,
	).Scan(&e.ID, &source, &e.EventID, &e.Payload, &e.ReceivedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return entities.WebhookEvent{}, nil
	}
	if err != nil {
		return entities.WebhookEvent{}, fmt.Errorf("get webhook event: %w", err)
	}
	e.Provider = entities.Provider(source)
	e.ReceivedAt = e.ReceivedAt.UTC()
	return e, nil
}

func (r *WebhookEventPostgresRepository) Release(ctx context.Context, provider entities.Provider, eventID string) error {
	if _, err := r.db.ExecContext(ctx, `
		DELETE FROM webhook_events
		WHERE provider = $1 AND event_id = $2`, string(provider), eventID,
	); err != nil {
		return fmt.Errorf("release webhook event: %w", err)
	}
	return nil
}
