package interfaces

import "context"

// CheckoutRequest is what every provider needs to open a checkout for an order.
type CheckoutRequest struct {
	OrderID     string
	PaymentID   string
	AmountMinor int64
	Currency    string
}

// Checkout is the provider-side session created for a CheckoutRequest.
type Checkout struct {
	SessionID   string
	CheckoutURL string
}

// StripeCheckoutSession is the subset of a Stripe checkout session used for verification.
type StripeCheckoutSession struct {
	ID              string
	OrderID         string
	PaymentStatus   string
	PaymentIntentID string
}

// MercadoPagoPayment is the subset of a Mercado Pago payment used for reconciliation.
type MercadoPagoPayment struct {
	ID                string
	Status            string
	ExternalReference string
}

// IStripeGateway abstracts the Stripe checkout API.
type IStripeGateway interface {
	CreateCheckoutSession(ctx context.Context, req CheckoutRequest) (Checkout, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (StripeCheckoutSession, error)
}

// IRazorpayGateway abstracts the Razorpay orders API.
type IRazorpayGateway interface {
	CreateOrder(ctx context.Context, req CheckoutRequest) (Checkout, error)
}

// IMercadoPagoGateway abstracts the Mercado Pago preferences and payments APIs.
//
// The preference id is the session id; the payment id issued on approval is the
// confirmation id.
type IMercadoPagoGateway interface {
	CreatePreference(ctx context.Context, req CheckoutRequest) (Checkout, error)
	GetPayment(ctx context.Context, paymentID string) (MercadoPagoPayment, error)
}
