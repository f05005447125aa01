package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"settlement_service/internal/domain/entities"
	"settlement_service/internal/usecase/interfaces"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation = "23505"

	constraintOrderOpen       = "payments_order_open_uidx"
	constraintProviderSession = "payments_provider_session_uidx"
	constraintProviderPayment = "payments_provider_payment_uidx"

	paymentColumns = `id, order_id, provider, provider_session_id, provider_payment_id, checkout_url, status, created_at, updated_at`
)

// PaymentPostgresRepository persists Payment entities in PostgreSQL. The partial unique
// index payments_order_open_uidx keeps a single non-terminal payment per order.
type PaymentPostgresRepository struct {
	db  *sql.DB
	now func() time.Time
}

var _ interfaces.IPaymentRepository = (*PaymentPostgresRepository)(nil)

func NewPaymentPostgresRepository(db *sql.DB) *PaymentPostgresRepository {
	return &PaymentPostgresRepository{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Create locks the order's latest payment so a concurrent transition of that row cannot
// interleave with the insert. Without supersedes any existing payment is a conflict.
func (r *PaymentPostgresRepository) Create(ctx context.Context, p entities.Payment, supersedes string) (entities.Payment, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return entities.Payment{}, fmt.Errorf("begin create payment: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var latestID, latestStatus string
	err = tx.QueryRowContext(ctx, `
		SELECT id, status FROM payments
		WHERE order_id = $1
		ORDER BY (status = 'PAID') DESC, created_at DESC
		LIMIT 1
		FOR UPDATE`, p.OrderID).Scan(&latestID, &latestStatus)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return entities.Payment{}, fmt.Errorf("lock latest payment: %w", err)
	case latestID != supersedes || latestStatus != string(entities.PaymentStatusFailed):
		return entities.Payment{}, interfaces.ErrActivePaymentExists
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO payments (`+paymentColumns+`)
		VALUES ($1, $2, $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), $7, $8, $9)`,
		p.ID, p.OrderID, string(p.Provider), p.ProviderSessionID, p.ProviderPaymentID, p.CheckoutURL,
		string(p.Status), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return entities.Payment{}, mapped
		}
		return entities.Payment{}, fmt.Errorf("insert payment: %w", err)
	}
	if err := tx.Commit(); err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return entities.Payment{}, mapped
		}
		return entities.Payment{}, fmt.Errorf("commit create payment: %w", err)
	}
	return p, nil
}

func (r *PaymentPostgresRepository) GetByID(ctx context.Context, id string) (entities.Payment, error) {
	return r.queryOne(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, id)
}

// GetByOrderID returns the order's PAID payment if any, otherwise its latest attempt.
func (r *PaymentPostgresRepository) GetByOrderID(ctx context.Context, orderID string) (entities.Payment, error) {
	return r.queryOne(ctx, `
		SELECT `+paymentColumns+` FROM payments
		WHERE order_id = $1
		ORDER BY (status = 'PAID') DESC, created_at DESC
		LIMIT 1`, orderID)
}

func (r *PaymentPostgresRepository) GetBySessionID(ctx context.Context, provider entities.Provider, sessionID string) (entities.Payment, error) {
	return r.queryOne(ctx, `
		SELECT `+paymentColumns+` FROM payments
		WHERE provider = $1 AND provider_session_id = $2`, string(provider), sessionID)
}

func (r *PaymentPostgresRepository) GetByConfirmationID(ctx context.Context, provider entities.Provider, confirmationID string) (entities.Payment, error) {
	return r.queryOne(ctx, `
		SELECT `+paymentColumns+` FROM payments
		WHERE provider = $1 AND provider_payment_id = $2`, string(provider), confirmationID)
}

func (r *PaymentPostgresRepository) AttachSession(ctx context.Context, id, sessionID, checkoutURL string) (entities.Payment, bool, error) {
	return r.conditionalUpdate(ctx, id, `
		UPDATE payments
		SET status = 'PENDING',
		    provider_session_id = $2,
		    checkout_url = COALESCE(NULLIF($3, ''), checkout_url),
		    updated_at = $4
		WHERE id = $1 AND status = 'CREATED'
		RETURNING `+paymentColumns, id, sessionID, checkoutURL, r.now())
}

func (r *PaymentPostgresRepository) MarkPaid(ctx context.Context, id, confirmationID string) (entities.Payment, bool, error) {
	return r.conditionalUpdate(ctx, id, `
		UPDATE payments
		SET status = 'PAID',
		    provider_payment_id = COALESCE(NULLIF($2, ''), provider_payment_id),
		    updated_at = $3
		WHERE id = $1 AND status <> 'PAID'
		RETURNING `+paymentColumns, id, confirmationID, r.now())
}

func (r *PaymentPostgresRepository) MarkFailed(ctx context.Context, id string) (entities.Payment, bool, error) {
	return r.conditionalUpdate(ctx, id, `
		UPDATE payments
		SET status = 'FAILED', updated_at = $2
		WHERE id = $1 AND status IN ('CREATED', 'PENDING')
		RETURNING `+paymentColumns, id, r.now())
}

// conditionalUpdate runs an UPDATE ... RETURNING whose WHERE clause is the transition
// guard. No returned row means the guard failed and the current row is returned.
func (r *PaymentPostgresRepository) conditionalUpdate(ctx context.Context, id, query string, args ...any) (entities.Payment, bool, error) {
	p, err := scanPayment(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		latest, getErr := r.GetByID(ctx, id)
		return latest, false, getErr
	}
	if err != nil {
		if mapped := mapUniqueViolation(err); mapped != nil {
			return entities.Payment{}, false, mapped
		}
		return entities.Payment{}, false, err
	}
	return p, true, nil
}

func (r *PaymentPostgresRepository) queryOne(ctx context.Context, query string, args ...any) (entities.Payment, error) {
	p, err := scanPayment(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return entities.Payment{}, nil
	}
	if err != nil {
		return entities.Payment{}, err
	}
	return p, nil
}

func scanPayment(row *sql.Row) (entities.Payment, error) {
	var (
		p                                 entities.Payment
		provider, status                  string
		sessionID, paymentID, checkoutURL sql.NullString
	)
	if err := row.Scan(&p.ID, &p.OrderID, &provider, &sessionID, &paymentID, &checkoutURL, &status, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return entities.Payment{}, err
	}
	p.Provider = entities.Provider(provider)
	p.Status = entities.PaymentStatus(status)
	p.ProviderSessionID = sessionID.String
	p.ProviderPaymentID = paymentID.String
	p.CheckoutURL = checkoutURL.String
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return p, nil
}

func mapUniqueViolation(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgUniqueViolation {
		return nil
	}
	switch pgErr.ConstraintName {
	case constraintOrderOpen:
		return interfaces.ErrActivePaymentExists
	case constraintProviderSession:
		return interfaces.ErrDuplicateSession
	case constraintProviderPayment:
		return interfaces.ErrDuplicateConfirmation
	}
	return nil
}
