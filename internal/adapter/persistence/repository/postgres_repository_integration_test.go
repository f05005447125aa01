package repository

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	"settlement_service/internal/domain/entities"
	"settlement_service/internal/infrastructure/database"
	"settlement_service/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"go.uber.org/zap"
)

func startPostgres(t *testing.T) *sql.DB {
	t.Helper()
	if os.Getenv("INTEGRATION_TESTS") != "1" {
		t.Skip("set INTEGRATION_TESTS=1 to run postgres integration tests")
	}
	ctx := context.Background()

	ctr, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("settlement"),
		postgres.WithUsername("settlement"),
		postgres.WithPassword("settlement"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		t.Fatalf("start postgres: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(ctr); err != nil {
			t.Logf("terminate postgres: %v", err)
		}
	})

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("connection string: %v", err)
	}
	db, err := database.ConnectPostgres(ctx, dsn, zap.NewNop())
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	if err := database.MigratePostgres(db, zap.NewNop()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func pgPayment(orderID string) entities.Payment {
	now := time.Now().UTC().Truncate(time.Microsecond)
	return entities.Payment{
		ID:        uuid.NewString(),
		OrderID:   orderID,
		Provider:  entities.ProviderRazorpay,
		Status:    entities.PaymentStatusCreated,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestPaymentPostgresRepository_Integration(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()
	r := NewPaymentPostgresRepository(db)

	first, err := r.Create(ctx, pgPayment("ord-1"), "")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := r.Create(ctx, pgPayment("ord-1"), ""); !errors.Is(err, interfaces.ErrActivePaymentExists) {
		t.Fatalf("expected ErrActivePaymentExists, got %v", err)
	}

	p, applied, err := r.AttachSession(ctx, first.ID, "order_rzp_1", "")
	if err != nil || !applied || p.Status != entities.PaymentStatusPending || p.ProviderSessionID != "order_rzp_1" {
		t.Fatalf("unexpected attach: %+v applied=%v err=%v", p, applied, err)
	}
	if got, _ := r.GetBySessionID(ctx, entities.ProviderRazorpay, "order_rzp_1"); got.ID != first.ID {
		t.Fatalf("expected session lookup, got %+v", got)
	}

	if _, applied, err := r.MarkFailed(ctx, first.ID); err != nil || !applied {
		t.Fatalf("mark failed: applied=%v err=%v", applied, err)
	}
	second := pgPayment("ord-1")
	second.CreatedAt = second.CreatedAt.Add(time.Millisecond)
	if _, err := r.Create(ctx, second, first.ID); err != nil {
		t.Fatalf("supersede: %v", err)
	}
	if latest, _ := r.GetByOrderID(ctx, "ord-1"); latest.ID != second.ID {
		t.Fatalf("expected latest attempt, got %+v", latest)
	}

	other, _ := r.Create(ctx, pgPayment("ord-2"), "")
	if _, _, err := r.AttachSession(ctx, other.ID, "order_rzp_1", ""); !errors.Is(err, interfaces.ErrDuplicateSession) {
		t.Fatalf("expected ErrDuplicateSession, got %v", err)
	}

	if p, applied, err := r.MarkPaid(ctx, second.ID, "pay_rzp_1"); err != nil || !applied || p.ProviderPaymentID != "pay_rzp_1" {
		t.Fatalf("mark paid: %+v applied=%v err=%v", p, applied, err)
	}
	if p, applied, _ := r.MarkFailed(ctx, second.ID); applied || p.Status != entities.PaymentStatusPaid {
		t.Fatalf("PAID must be sticky, got %+v", p)
	}
	if _, _, err := r.MarkPaid(ctx, other.ID, "pay_rzp_1"); !errors.Is(err, interfaces.ErrDuplicateConfirmation) {
		t.Fatalf("expected ErrDuplicateConfirmation, got %v", err)
	}
	stale, _ := r.Create(ctx, pgPayment("ord-3"), "")
	_, _, _ = r.MarkFailed(ctx, stale.ID)
	retry := pgPayment("ord-3")
	retry.CreatedAt = retry.CreatedAt.Add(time.Millisecond)
	if _, err := r.Create(ctx, retry, stale.ID); err != nil {
		t.Fatalf("supersede: %v", err)
	}
	if _, applied, err := r.MarkPaid(ctx, stale.ID, ""); err != nil || !applied {
		t.Fatalf("late capture: applied=%v err=%v", applied, err)
	}
	if current, _ := r.GetByOrderID(ctx, "ord-3"); current.ID != stale.ID {
		t.Fatalf("expected the paid attempt to be current, got %+v", current)
	}
	if _, err := r.Create(ctx, pgPayment("ord-3"), retry.ID); !errors.Is(err, interfaces.ErrActivePaymentExists) {
		t.Fatalf("expected a paid order to refuse new attempts, got %v", err)
	}

	if missing, err := r.GetByID(ctx, uuid.NewString()); err != nil || missing.Found() {
		t.Fatalf("expected zero value, got %+v err=%v", missing, err)
	}
}

func TestWebhookEventPostgresRepository_Integration(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()
	r := NewWebhookEventPostgresRepository(db)

	e := entities.WebhookEvent{
		ID:         uuid.NewString(),
		Provider:   entities.ProviderStripe,
		EventID:    "evt_1",
		Payload:    []byte(`{"id":"evt_1"}`),
		ReceivedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
	if isNew, err := r.RecordIfNew(ctx, e); err != nil || !isNew {
		t.Fatalf("expected new, got %v err=%v", isNew, err)
	}
	dup := e
	dup.ID = uuid.NewString()
	if isNew, err := r.RecordIfNew(ctx, dup); err != nil || isNew {
		t.Fatalf("expected duplicate, got %v err=%v", isNew, err)
	}

	got, err := r.Get(ctx, entities.ProviderStripe, "evt_1")
	if err != nil || got.ID != e.ID || string(got.Payload) != string(e.Payload) || !got.ReceivedAt.Equal(e.ReceivedAt) {
		t.Fatalf("unexpected event: %+v err=%v", got, err)
	}
}
