package entities

import "time"

// PaymentStatus represents the lifecycle of a payment attempt.
//
// Domain notes:
//   - CREATED -> PENDING -> {PAID | FAILED}.
//   - PAID and FAILED are terminal. PAID is sticky and is never replaced by FAILED.
//
type PaymentStatus string

const (
	PaymentStatusCreated PaymentStatus = "CREATED"
	PaymentStatusPending PaymentStatus = "PENDING"
	PaymentStatusPaid    PaymentStatus = "PAID"
	PaymentStatusFailed  PaymentStatus = "FAILED"
)

// IsTerminal reports whether no further webhook-driven transition may change the status.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusPaid || s == PaymentStatusFailed
}

// CanSettle reports whether a PAID transition would change a payment in status s.
func (s PaymentStatus) CanSettle() bool {
	return s != PaymentStatusPaid
}

// CanFail reports whether a FAILED transition would change a payment in status s.
func (s PaymentStatus) CanFail() bool {
	return s == PaymentStatusCreated || s == PaymentStatusPending
}

// Payment is the payment attempt for an order, persisted by the settlement service.
//
// Storage model (DynamoDB):
//   - PK: id
//   - guard items ORDER#<order_id>, SESSION#<provider>#<session_id> and
//     CONFIRMATION#<provider>#<confirmation_id> point at the owning payment id and
//     enforce the uniqueness rules with transactional conditional puts.
//
// Provider identifiers:
//   - ProviderSessionID is issued when the intent is opened (Stripe checkout session,
//     Razorpay order, Mercado Pago preference).
//   - ProviderPaymentID is the confirmation id issued at settlement (Stripe payment
//     intent, Razorpay payment, Mercado Pago payment).

type Payment struct {
	ID                string        `json:"id"`
	OrderID           string        `json:"order_id"`
	Provider          Provider      `json:"provider"`
	ProviderSessionID string        `json:"provider_session_id,omitempty"`
	ProviderPaymentID string        `json:"provider_payment_id,omitempty"`
	CheckoutURL       string        `json:"checkout_url,omitempty"`
	Status            PaymentStatus `json:"status"`
	CreatedAt         time.Time     `json:"created_at"`
	UpdatedAt         time.Time     `json:"updated_at"`
}

// Found reports whether p was loaded from storage. Repositories return the zero value for
// "not found".
func (p Payment) Found() bool {
	return p.ID != ""
}
