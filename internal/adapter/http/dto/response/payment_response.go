package response

import (
	"time"

	"settlement_service/internal/domain/entities"
	"settlement_service/internal/usecase"
)

type PaymentIntentResponse struct {
	Provider          string `json:"provider"`
	PaymentID         string `json:"payment_id"`
	ProviderSessionID string `json:"provider_session_id"`
	PublicKey         string `json:"public_key,omitempty"`
	Amount            int64  `json:"amount"`
	Currency          string `json:"currency"`
	CheckoutURL       string `json:"checkout_url,omitempty"`
}

func FromPaymentIntent(i entities.PaymentIntent) PaymentIntentResponse {
	return PaymentIntentResponse{
		Provider:          string(i.Provider),
		PaymentID:         i.PaymentID,
		ProviderSessionID: i.ProviderSessionID,
		PublicKey:         i.PublicKey,
		Amount:            i.AmountMinor,
		Currency:          i.Currency,
		CheckoutURL:       i.CheckoutURL,
	}
}

type PaymentResponse struct {
	ID                string    `json:"id"`
	OrderID           string    `json:"order_id"`
	Provider          string    `json:"provider"`
	ProviderSessionID string    `json:"provider_session_id,omitempty"`
	ProviderPaymentID string    `json:"provider_payment_id,omitempty"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func FromPayment(p entities.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                p.ID,
		OrderID:           p.OrderID,
		Provider:          string(p.Provider),
		ProviderSessionID: p.ProviderSessionID,
		ProviderPaymentID: p.ProviderPaymentID,
		Status:            string(p.Status),
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

type VerifyResponse struct {
	Status    string `json:"status"`
	PaymentID string `json:"payment_id"`
}

func Verified(p entities.Payment) VerifyResponse {
	return VerifyResponse{Status: "verified", PaymentID: p.ID}
}

type WebhookReplayResponse struct {
	EventID   string `json:"event_id"`
	Kind      string `json:"kind"`
	Applied   bool   `json:"applied"`
	PaymentID string `json:"payment_id,omitempty"`
}

func FromWebhookResult(r usecase.WebhookResult) WebhookReplayResponse {
	return WebhookReplayResponse{
		EventID:   r.EventID,
		Kind:      r.Kind.String(),
		Applied:   r.Applied,
		PaymentID: r.PaymentID,
	}
}
