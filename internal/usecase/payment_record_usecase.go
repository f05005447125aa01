package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"settlement_service/internal/domain/entities"
	"settlement_service/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxOpenAttempts = 3

// IPaymentRecordManager owns every Payment state transition.
//
// Transitions are conditional writes at the storage layer, so among concurrent
// duplicates at most one caller observes applied=true.
type IPaymentRecordManager interface {
	OpenOrReuse(ctx context.Context, orderID string, provider entities.Provider) (entities.Payment, error)
	AttachProviderSession(ctx context.Context, paymentID, sessionID, checkoutURL string) (entities.Payment, error)
	Settle(ctx context.Context, key entities.LookupKey, confirmationID string) (entities.Payment, bool, error)
	Fail(ctx context.Context, key entities.LookupKey) (entities.Payment, bool, error)
	Find(ctx context.Context, key entities.LookupKey) (entities.Payment, error)
}

type PaymentRecordManager struct {
	repo   interfaces.IPaymentRepository
	logger *zap.Logger
	now    func() time.Time
}

var _ IPaymentRecordManager = (*PaymentRecordManager)(nil)

func NewPaymentRecordManager(repo interfaces.IPaymentRepository, logger *zap.Logger) *PaymentRecordManager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PaymentRecordManager{
		repo:   repo,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// OpenOrReuse returns the order's non-terminal payment, or creates a CREATED one.
//
//   - a PAID payment yields ErrPaymentAlreadySettled
//   - a non-terminal payment of another provider yields ErrProviderMismatch
//   - a FAILED payment is superseded by a new attempt
func (m *PaymentRecordManager) OpenOrReuse(ctx context.Context, orderID string, provider entities.Provider) (entities.Payment, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.Payment{}, ErrInvalidOrderID
	}

	for attempt := 1; attempt <= maxOpenAttempts; attempt++ {
		current, err := m.repo.GetByOrderID(ctx, orderID)
		if err != nil {
			return entities.Payment{}, fmt.Errorf("load payment by order: %w", err)
		}

		supersedes := ""
		if current.Found() {
			switch current.Status {
			case entities.PaymentStatusPaid:
				return entities.Payment{}, ErrPaymentAlreadySettled
			case entities.PaymentStatusFailed:
				supersedes = current.ID
			default:
				if current.Provider != provider {
					return entities.Payment{}, ErrProviderMismatch
				}
				m.logger.Debug("reusing open payment",
					zap.String("order_id", orderID),
					zap.String("payment_id", current.ID),
					zap.String("status", string(current.Status)),
				)
				return current, nil
			}
		}

		now := m.now()
		p := entities.Payment{
			ID:        uuid.NewString(),
			OrderID:   orderID,
			Provider:  provider,
			Status:    entities.PaymentStatusCreated,
			CreatedAt: now,
			UpdatedAt: now,
		}
		created, err := m.repo.Create(ctx, p, supersedes)
		if errors.Is(err, interfaces.ErrActivePaymentExists) {
			m.logger.Info("lost payment create race, reloading",
				zap.String("order_id", orderID),
				zap.Int("attempt", attempt),
			)
			continue
		}
		if err != nil {
			return entities.Payment{}, fmt.Errorf("create payment: %w", err)
		}
		m.logger.Info("payment created",
			zap.String("order_id", orderID),
			zap.String("payment_id", created.ID),
			zap.String("provider", string(provider)),
			zap.String("supersedes", supersedes),
		)
		return created, nil
	}
	return entities.Payment{}, ErrOpenContention
}

// AttachProviderSession moves a CREATED payment to PENDING. When another caller attached
// first, the winner's payment is returned unchanged.
func (m *PaymentRecordManager) AttachProviderSession(ctx context.Context, paymentID, sessionID, checkoutURL string) (entities.Payment, error) {
	if strings.TrimSpace(paymentID) == "" {
		return entities.Payment{}, ErrInvalidPaymentID
	}
	if strings.TrimSpace(sessionID) == "" {
		return entities.Payment{}, fmt.Errorf("%w: empty provider session", ErrInvalidLookupKey)
	}

	p, applied, err := m.repo.AttachSession(ctx, paymentID, sessionID, checkoutURL)
	if errors.Is(err, interfaces.ErrDuplicateSession) {
		return entities.Payment{}, ErrSessionConflict
	}
	if err != nil {
		return entities.Payment{}, fmt.Errorf("attach provider session: %w", err)
	}
	if !p.Found() {
		return entities.Payment{}, ErrPaymentNotFound
	}
	if !applied {
		m.logger.Info("provider session already attached",
			zap.String("payment_id", p.ID),
			zap.String("status", string(p.Status)),
			zap.String("provider_session_id", p.ProviderSessionID),
		)
	}
	return p, nil
}

// Settle moves the payment to PAID unless it already is.
func (m *PaymentRecordManager) Settle(ctx context.Context, key entities.LookupKey, confirmationID string) (entities.Payment, bool, error) {
	p, err := m.Find(ctx, key)
	if err != nil {
		return entities.Payment{}, false, err
	}
	if !p.Status.CanSettle() {
		m.logger.Info("settle skipped, payment already paid",
			zap.String("payment_id", p.ID),
			zap.String("order_id", p.OrderID),
		)
		return p, false, nil
	}

	updated, applied, err := m.repo.MarkPaid(ctx, p.ID, strings.TrimSpace(confirmationID))
	if errors.Is(err, interfaces.ErrDuplicateConfirmation) {
		return entities.Payment{}, false, ErrConfirmationConflict
	}
	if err != nil {
		return entities.Payment{}, false, fmt.Errorf("mark payment paid: %w", err)
	}
	if applied {
		m.logger.Info("payment settled",
			zap.String("payment_id", updated.ID),
			zap.String("order_id", updated.OrderID),
			zap.String("provider_payment_id", updated.ProviderPaymentID),
			zap.String("previous_status", string(p.Status)),
		)
	}
	return updated, applied, nil
}

// Fail moves the payment to FAILED unless it is already PAID or FAILED.
func (m *PaymentRecordManager) Fail(ctx context.Context, key entities.LookupKey) (entities.Payment, bool, error) {
	p, err := m.Find(ctx, key)
	if err != nil {
		return entities.Payment{}, false, err
	}
	if !p.Status.CanFail() {
		m.logger.Info("fail skipped, payment terminal",
			zap.String("payment_id", p.ID),
			zap.String("status", string(p.Status)),
		)
		return p, false, nil
	}

	updated, applied, err := m.repo.MarkFailed(ctx, p.ID)
	if err != nil {
		return entities.Payment{}, false, fmt.Errorf("mark payment failed: %w", err)
	}
	if applied {
		m.logger.Info("payment failed",
			zap.String("payment_id", updated.ID),
			zap.String("order_id", updated.OrderID),
		)
	}
	return updated, applied, nil
}

// Find resolves a lookup key to exactly one payment or ErrPaymentNotFound.
func (m *PaymentRecordManager) Find(ctx context.Context, key entities.LookupKey) (entities.Payment, error) {
	value := strings.TrimSpace(key.Value)
	if value == "" {
		return entities.Payment{}, ErrInvalidLookupKey
	}

	var (
		p   entities.Payment
		err error
	)
	switch key.By {
	case entities.LookupByOrderID:
		p, err = m.repo.GetByOrderID(ctx, value)
	case entities.LookupBySessionID:
		p, err = m.repo.GetBySessionID(ctx, key.Provider, value)
	case entities.LookupByConfirmationID:
		p, err = m.repo.GetByConfirmationID(ctx, key.Provider, value)
	default:
		return entities.Payment{}, ErrInvalidLookupKey
	}
	if err != nil {
		return entities.Payment{}, fmt.Errorf("load payment by %s: %w", key.By, err)
	}
	if !p.Found() {
		return entities.Payment{}, ErrPaymentNotFound
	}
	return p, nil
}
