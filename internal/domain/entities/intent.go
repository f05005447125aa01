package entities

// PaymentIntent is the canonical answer to "open a payment": everything the provider's
// client SDK needs to continue the checkout.
type PaymentIntent struct {
	PaymentID         string
	Provider          Provider
	ProviderSessionID string
	PublicKey         string
	CheckoutURL       string
	AmountMinor       int64
	Currency          string
}

// ClientVerification is a confirmation forwarded by the client after checkout.
type ClientVerification struct {
	OrderID           string
	ProviderOrderID   string
	ProviderPaymentID string
	Signature         string
}

// WebhookDelivery is an inbound webhook request reduced to what signature verification
// and parsing need. Body must be the byte-exact request body.
type WebhookDelivery struct {
	Body      []byte
	Signature string
	EventID   string
	RequestID string
}
