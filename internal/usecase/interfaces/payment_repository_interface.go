package interfaces

import (
	"context"
	"errors"

	"settlement_service/internal/domain/entities"
)

// Storage-level uniqueness violations. Implementations return these (possibly wrapped)
// so the use cases never depend on driver error types.
var (
	ErrActivePaymentExists   = errors.New("order already has a current payment")
	ErrDuplicateSession      = errors.New("provider session already attached to another payment")
	ErrDuplicateConfirmation = errors.New("provider confirmation already attached to another payment")
)

// IPaymentRepository abstracts persistence for Payment.
//
// Lookups return the zero value (and a nil error) when nothing matches. Every lookup is
// a direct keyed read, never a scan.
//
// Conditional writes:
//   - Create fails with ErrActivePaymentExists unless the order has no current payment or
//     its current payment is the FAILED attempt identified by supersedes.
//   - AttachSession applies only while the payment is CREATED.
//   - MarkPaid applies unless the payment is PAID, and makes the payment the order's
//     current payment even when a newer attempt had superseded it.
//   - MarkFailed applies only while the payment is CREATED or PENDING.
//
// The bool result of the conditional writes reports whether this call changed the row.
// When it is false the returned Payment is the current stored state.

type IPaymentRepository interface {
	Create(ctx context.Context, p entities.Payment, supersedes string) (entities.Payment, error)
	GetByID(ctx context.Context, id string) (entities.Payment, error)
	GetByOrderID(ctx context.Context, orderID string) (entities.Payment, error)
	GetBySessionID(ctx context.Context, provider entities.Provider, sessionID string) (entities.Payment, error)
	GetByConfirmationID(ctx context.Context, provider entities.Provider, confirmationID string) (entities.Payment, error)
	AttachSession(ctx context.Context, id, sessionID, checkoutURL string) (entities.Payment, bool, error)
	MarkPaid(ctx context.Context, id, confirmationID string) (entities.Payment, bool, error)
	MarkFailed(ctx context.Context, id string) (entities.Payment, bool, error)
}
