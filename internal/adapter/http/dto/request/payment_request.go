package request

import (
	"strings"

	"settlement_service/internal/domain/entities"
)

// PaymentIntentRequest opens (or reuses) a payment for an order.
type PaymentIntentRequest struct {
	OrderID string `json:"order_id" binding:"required"`
}

func (r PaymentIntentRequest) ResolveOrderID() string {
	return strings.TrimSpace(r.OrderID)
}

// PaymentVerifyRequest is the client-side confirmation forwarded after checkout.
//
// provider_order_id is the Razorpay order id or the Stripe checkout session id;
// provider_payment_id is the Razorpay payment id or the Mercado Pago payment id.
type PaymentVerifyRequest struct {
	OrderID           string `json:"order_id" binding:"required"`
	ProviderOrderID   string `json:"provider_order_id"`
	ProviderPaymentID string `json:"provider_payment_id"`
	Signature         string `json:"signature"`
}

func (r PaymentVerifyRequest) ToVerification() entities.ClientVerification {
	return entities.ClientVerification{
		OrderID:           strings.TrimSpace(r.OrderID),
		ProviderOrderID:   strings.TrimSpace(r.ProviderOrderID),
		ProviderPaymentID: strings.TrimSpace(r.ProviderPaymentID),
		Signature:         strings.TrimSpace(r.Signature),
	}
}
