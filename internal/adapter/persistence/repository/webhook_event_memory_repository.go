package repository

import (
	"context"
	"sync"

	"settlement_service/internal/domain/entities"
	"settlement_service/internal/usecase/interfaces"
)

type WebhookEventMemoryRepository struct {
	mu     sync.Mutex
	events map[string]entities.WebhookEvent
}

var _ interfaces.IWebhookEventRepository = (*WebhookEventMemoryRepository)(nil)

func NewWebhookEventMemoryRepository() *WebhookEventMemoryRepository {
	return &WebhookEventMemoryRepository{events: map[string]entities.WebhookEvent{}}
}

func (r *WebhookEventMemoryRepository) RecordIfNew(_ context.Context, e entities.WebhookEvent) (bool, error) {
	key := webhookEventKey(e.Provider, e.EventID)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.events[key]; exists {
		return false, nil
	}
	e.Payload = append([]byte(nil), e.Payload...)
	r.events[key] = e
	return true, nil
}

func (r *WebhookEventMemoryRepository) Get(_ context.Context, provider entities.Provider, eventID string) (entities.WebhookEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e := r.events[webhookEventKey(provider, eventID)]
	e.Payload = append([]byte(nil), e.Payload...)
	return e, nil
}

func (r *WebhookEventMemoryRepository) Release(_ context.Context, provider entities.Provider, eventID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.events, webhookEventKey(provider, eventID))
	return nil
}
