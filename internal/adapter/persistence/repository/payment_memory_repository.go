package repository

import (
	"context"
	"sync"
	"time"

	"settlement_service/internal/domain/entities"
	"settlement_service/internal/usecase/interfaces"
)

type providerKey struct {
	provider entities.Provider
	value    string
}

// PaymentMemoryRepository keeps payments in process memory. Every index is a map so
// lookups stay keyed, and one mutex makes each conditional write atomic.
type PaymentMemoryRepository struct {
	mu             sync.Mutex
	byID           map[string]entities.Payment
	currentByOrder map[string]string
	bySession      map[providerKey]string
	byConfirmation map[providerKey]string
	now            func() time.Time
}

var _ interfaces.IPaymentRepository = (*PaymentMemoryRepository)(nil)

func NewPaymentMemoryRepository() *PaymentMemoryRepository {
	return &PaymentMemoryRepository{
		byID:           map[string]entities.Payment{},
		currentByOrder: map[string]string{},
		bySession:      map[providerKey]string{},
		byConfirmation: map[providerKey]string{},
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func (r *PaymentMemoryRepository) Create(_ context.Context, p entities.Payment, supersedes string) (entities.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if currentID, ok := r.currentByOrder[p.OrderID]; ok {
		current := r.byID[currentID]
		if supersedes == "" || currentID != supersedes || current.Status != entities.PaymentStatusFailed {
			return entities.Payment{}, interfaces.ErrActivePaymentExists
		}
	}
	r.byID[p.ID] = p
	r.currentByOrder[p.OrderID] = p.ID
	return p, nil
}

func (r *PaymentMemoryRepository) GetByID(_ context.Context, id string) (entities.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[id], nil
}

func (r *PaymentMemoryRepository) GetByOrderID(_ context.Context, orderID string) (entities.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[r.currentByOrder[orderID]], nil
}

func (r *PaymentMemoryRepository) GetBySessionID(_ context.Context, provider entities.Provider, sessionID string) (entities.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[r.bySession[providerKey{provider, sessionID}]], nil
}

func (r *PaymentMemoryRepository) GetByConfirmationID(_ context.Context, provider entities.Provider, confirmationID string) (entities.Payment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.byID[r.byConfirmation[providerKey{provider, confirmationID}]], nil
}

func (r *PaymentMemoryRepository) AttachSession(_ context.Context, id, sessionID, checkoutURL string) (entities.Payment, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok || p.Status != entities.PaymentStatusCreated {
		return p, false, nil
	}
	key := providerKey{p.Provider, sessionID}
	if owner, taken := r.bySession[key]; taken && owner != id {
		return entities.Payment{}, false, interfaces.ErrDuplicateSession
	}
	p.ProviderSessionID = sessionID
	p.CheckoutURL = checkoutURL
	p.Status = entities.PaymentStatusPending
	p.UpdatedAt = r.now()
	r.byID[id] = p
	r.bySession[key] = id
	return p, true, nil
}

func (r *PaymentMemoryRepository) MarkPaid(_ context.Context, id, confirmationID string) (entities.Payment, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok || p.Status == entities.PaymentStatusPaid {
		return p, false, nil
	}
	if confirmationID != "" {
		key := providerKey{p.Provider, confirmationID}
		if owner, taken := r.byConfirmation[key]; taken && owner != id {
			return entities.Payment{}, false, interfaces.ErrDuplicateConfirmation
		}
		r.byConfirmation[key] = id
		p.ProviderPaymentID = confirmationID
	}
	p.Status = entities.PaymentStatusPaid
	p.UpdatedAt = r.now()
	r.byID[id] = p
	r.currentByOrder[p.OrderID] = id
	return p, true, nil
}

func (r *PaymentMemoryRepository) MarkFailed(_ context.Context, id string) (entities.Payment, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok || !p.Status.CanFail() {
		return p, false, nil
	}
	p.Status = entities.PaymentStatusFailed
	p.UpdatedAt = r.now()
	r.byID[id] = p
	return p, true, nil
}
