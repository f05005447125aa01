package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"settlement_service/internal/domain/entities"
	"settlement_service/internal/usecase/interfaces"
)

func newPayment(id, orderID string) entities.Payment {
	now := time.Now().UTC()
	return entities.Payment{
		ID:        id,
		OrderID:   orderID,
		Provider:  entities.ProviderStripe,
		Status:    entities.PaymentStatusCreated,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestPaymentMemoryRepository_CreateAndSupersede(t *testing.T) {
	ctx := context.Background()
	r := NewPaymentMemoryRepository()

	if _, err := r.Create(ctx, newPayment("p1", "o1"), ""); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := r.Create(ctx, newPayment("p2", "o1"), ""); !errors.Is(err, interfaces.ErrActivePaymentExists) {
		t.Fatalf("expected ErrActivePaymentExists, got %v", err)
	}
	if _, err := r.Create(ctx, newPayment("p2", "o1"), "p1"); !errors.Is(err, interfaces.ErrActivePaymentExists) {
		t.Fatalf("superseding a non-failed payment must fail, got %v", err)
	}

	if _, applied, err := r.MarkFailed(ctx, "p1"); err != nil || !applied {
		t.Fatalf("expected fail applied, err=%v", err)
	}
	if _, err := r.Create(ctx, newPayment("p2", "o1"), "p1"); err != nil {
		t.Fatalf("expected supersede, got %v", err)
	}

	current, _ := r.GetByOrderID(ctx, "o1")
	if current.ID != "p2" {
		t.Fatalf("expected latest attempt p2, got %s", current.ID)
	}
	old, _ := r.GetByID(ctx, "p1")
	if old.Status != entities.PaymentStatusFailed {
		t.Fatalf("superseded payment must be kept, got %+v", old)
	}
	if missing, _ := r.GetByOrderID(ctx, "o404"); missing.Found() {
		t.Fatalf("expected zero value, got %+v", missing)
	}
}

func TestPaymentMemoryRepository_Transitions(t *testing.T) {
	ctx := context.Background()
	r := NewPaymentMemoryRepository()
	_, _ = r.Create(ctx, newPayment("p1", "o1"), "")
	_, _ = r.Create(ctx, newPayment("p2", "o2"), "")

	p, applied, err := r.AttachSession(ctx, "p1", "cs_1", "https://checkout/cs_1")
	if err != nil || !applied || p.Status != entities.PaymentStatusPending {
		t.Fatalf("unexpected attach: %+v applied=%v err=%v", p, applied, err)
	}
	if _, applied, _ := r.AttachSession(ctx, "p1", "cs_other", ""); applied {
		t.Fatalf("attach on PENDING must not apply")
	}
	if _, _, err := r.AttachSession(ctx, "p2", "cs_1", ""); !errors.Is(err, interfaces.ErrDuplicateSession) {
		t.Fatalf("expected ErrDuplicateSession, got %v", err)
	}
	if got, _ := r.GetBySessionID(ctx, entities.ProviderStripe, "cs_1"); got.ID != "p1" {
		t.Fatalf("expected session lookup p1, got %+v", got)
	}
	if got, _ := r.GetBySessionID(ctx, entities.ProviderRazorpay, "cs_1"); got.Found() {
		t.Fatalf("session lookups are scoped by provider")
	}

	p, applied, err = r.MarkPaid(ctx, "p1", "pi_1")
	if err != nil || !applied || p.Status != entities.PaymentStatusPaid || p.ProviderPaymentID != "pi_1" {
		t.Fatalf("unexpected mark paid: %+v applied=%v err=%v", p, applied, err)
	}
	if _, applied, _ := r.MarkPaid(ctx, "p1", "pi_1"); applied {
		t.Fatalf("PAID must be sticky")
	}
	if p, applied, _ := r.MarkFailed(ctx, "p1"); applied || p.Status != entities.PaymentStatusPaid {
		t.Fatalf("PAID must not become FAILED, got %+v", p)
	}
	if _, _, err := r.MarkPaid(ctx, "p2", "pi_1"); !errors.Is(err, interfaces.ErrDuplicateConfirmation) {
		t.Fatalf("expected ErrDuplicateConfirmation, got %v", err)
	}
	if got, _ := r.GetByConfirmationID(ctx, entities.ProviderStripe, "pi_1"); got.ID != "p1" {
		t.Fatalf("expected confirmation lookup p1, got %+v", got)
	}

	if _, applied, _ := r.MarkFailed(ctx, "p2"); !applied {
		t.Fatalf("expected fail applied")
	}
	if p, applied, err := r.MarkPaid(ctx, "p2", "pi_2"); err != nil || !applied || p.Status != entities.PaymentStatusPaid {
		t.Fatalf("settling a FAILED payment must apply, got %+v applied=%v err=%v", p, applied, err)
	}

	if p, applied, err := r.MarkPaid(ctx, "missing", ""); err != nil || applied || p.Found() {
		t.Fatalf("unknown payment must be a no-op, got %+v applied=%v err=%v", p, applied, err)
	}
}

func TestWebhookEventMemoryRepository(t *testing.T) {
	ctx := context.Background()
	r := NewWebhookEventMemoryRepository()
	payload := []byte(`{"id":"evt_1"}`)
	e := entities.WebhookEvent{ID: "u1", Provider: entities.ProviderStripe, EventID: "evt_1", Payload: payload}

	if isNew, _ := r.RecordIfNew(ctx, e); !isNew {
		t.Fatalf("expected first record to be new")
	}
	if isNew, _ := r.RecordIfNew(ctx, e); isNew {
		t.Fatalf("expected duplicate")
	}
	other := e
	other.Provider = entities.ProviderRazorpay
	if isNew, _ := r.RecordIfNew(ctx, other); !isNew {
		t.Fatalf("event ids are scoped by provider")
	}

	payload[0] = 'X'
	got, _ := r.Get(ctx, entities.ProviderStripe, "evt_1")
	if string(got.Payload) != `{"id":"evt_1"}` {
		t.Fatalf("stored payload must be a copy, got %s", got.Payload)
	}
	got.Payload[0] = 'Y'
	again, _ := r.Get(ctx, entities.ProviderStripe, "evt_1")
	if again.Payload[0] != '{' {
		t.Fatalf("returned payload must be a copy")
	}
	if missing, _ := r.Get(ctx, entities.ProviderStripe, "evt_404"); missing.Found() {
		t.Fatalf("expected zero value")
	}

	_ = r.Release(ctx, entities.ProviderStripe, "evt_1")
	if isNew, _ := r.RecordIfNew(ctx, e); !isNew {
		t.Fatalf("expected released event to be recorded again")
	}
	if isNew, _ := r.RecordIfNew(ctx, other); isNew {
		t.Fatalf("release must not touch other providers")
	}
}

func TestPaymentMemoryRepository_LateCaptureOfSupersededAttempt(t *testing.T) {
	ctx := context.Background()
	r := NewPaymentMemoryRepository()
	_, _ = r.Create(ctx, newPayment("p1", "o1"), "")
	_, _, _ = r.MarkFailed(ctx, "p1")
	_, _ = r.Create(ctx, newPayment("p2", "o1"), "p1")

	if _, applied, err := r.MarkPaid(ctx, "p1", "pi_late"); err != nil || !applied {
		t.Fatalf("expected late capture to settle, applied=%v err=%v", applied, err)
	}
	current, _ := r.GetByOrderID(ctx, "o1")
	if current.ID != "p1" || current.Status != entities.PaymentStatusPaid {
		t.Fatalf("expected paid attempt to be current, got %+v", current)
	}
	if _, err := r.Create(ctx, newPayment("p3", "o1"), "p2"); !errors.Is(err, interfaces.ErrActivePaymentExists) {
		t.Fatalf("a paid order must not accept new attempts, got %v", err)
	}
}
