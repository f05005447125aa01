package usecase

import (
	"context"
	"encoding/json"
	"strings"

	"settlement_service/internal/domain/entities"
	"settlement_service/internal/usecase/interfaces"

	"go.uber.org/zap"
)

const (
	razorpayEventPaymentCaptured = "payment.captured"
	razorpayEventOrderPaid       = "order.paid"
	razorpayEventPaymentFailed   = "payment.failed"
)

// RazorpayAdapterConfig carries the Razorpay credentials. KeySecret signs client
// confirmations, WebhookSecret signs webhooks.
type RazorpayAdapterConfig struct {
	KeyID         string
	KeySecret     string
	WebhookSecret string
}

// RazorpayAdapter reconciles Razorpay orders (session id) and payments (confirmation id).
type RazorpayAdapter struct {
	adapterCore
	gateway  interfaces.IRazorpayGateway
	verifier ISignatureVerifier
	cfg      RazorpayAdapterConfig
}

var _ IProviderAdapter = (*RazorpayAdapter)(nil)

func NewRazorpayAdapter(cfg RazorpayAdapterConfig, gateway interfaces.IRazorpayGateway, verifier ISignatureVerifier, records IPaymentRecordManager, notifier IOrderStateNotifier, logger *zap.Logger) *RazorpayAdapter {
	return &RazorpayAdapter{
		adapterCore: newAdapterCore(entities.ProviderRazorpay, cfg.KeyID, records, notifier, logger),
		gateway:     gateway,
		verifier:    verifier,
		cfg:         cfg,
	}
}

func (a *RazorpayAdapter) OpenIntent(ctx context.Context, order entities.OrderSummary) (entities.PaymentIntent, error) {
	return a.openIntent(ctx, order, a.gateway.CreateOrder)
}

// ApplyClientVerification authenticates HMAC-SHA256(order_id|payment_id) and settles the
// order's payment, which must own the signed Razorpay order.
func (a *RazorpayAdapter) ApplyClientVerification(ctx context.Context, v entities.ClientVerification) (entities.Payment, error) {
	if strings.TrimSpace(v.OrderID) == "" {
		return entities.Payment{}, ErrInvalidOrderID
	}
	if v.ProviderOrderID == "" || v.ProviderPaymentID == "" {
		return entities.Payment{}, ErrInvalidVerification
	}

	signed := []byte(v.ProviderOrderID + "|" + v.ProviderPaymentID)
	if !a.verifier.Verify(signed, v.Signature, a.cfg.KeySecret, HMACSHA256Hex) {
		a.logger.Warn("razorpay client signature mismatch", zap.String("order_id", v.OrderID))
		return entities.Payment{}, ErrUnauthenticated
	}

	p, err := a.records.Find(ctx, entities.ByOrderID(v.OrderID))
	if err != nil {
		return entities.Payment{}, err
	}
	if p.Provider != entities.ProviderRazorpay || p.ProviderSessionID != v.ProviderOrderID {
		a.logger.Warn("razorpay order does not belong to order",
			zap.String("order_id", v.OrderID),
			zap.String("payment_id", p.ID),
			zap.String("provider_order_id", v.ProviderOrderID),
		)
		return entities.Payment{}, ErrUnauthenticated
	}

	p, _, err = a.settleAndNotify(ctx, entities.ByOrderID(v.OrderID), v.ProviderPaymentID)
	return p, err
}

// VerifyWebhook requires both X-Razorpay-Signature and X-Razorpay-Event-Id.
func (a *RazorpayAdapter) VerifyWebhook(d entities.WebhookDelivery) bool {
	if strings.TrimSpace(d.EventID) == "" {
		return false
	}
	return a.verifier.Verify(d.Body, d.Signature, a.cfg.WebhookSecret, HMACSHA256Hex)
}

type razorpayWebhookPayload struct {
	Event   string `json:"event"`
	Payload struct {
		Payment *struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
				Status  string `json:"status"`
			} `json:"entity"`
		} `json:"payment"`
		Order *struct {
			Entity struct {
				ID string `json:"id"`
			} `json:"entity"`
		} `json:"order"`
	} `json:"payload"`
}

func (a *RazorpayAdapter) ParseWebhook(_ context.Context, d entities.WebhookDelivery) (entities.ProviderEvent, error) {
	var body razorpayWebhookPayload
	if err := json.Unmarshal(d.Body, &body); err != nil {
		return entities.ProviderEvent{}, malformed("razorpay body: %v", err)
	}
	if body.Event == "" {
		return entities.ProviderEvent{}, malformed("razorpay event type missing")
	}

	ev := entities.ProviderEvent{
		Provider: entities.ProviderRazorpay,
		EventID:  strings.TrimSpace(d.EventID),
		RawType:  body.Event,
		Kind:     entities.EventKindUnrecognized,
	}

	switch body.Event {
	case razorpayEventPaymentCaptured, razorpayEventOrderPaid, razorpayEventPaymentFailed:
	default:
		return ev, nil
	}

	if body.Payload.Payment == nil {
		return entities.ProviderEvent{}, malformed("razorpay %s without payment entity", body.Event)
	}
	payment := body.Payload.Payment.Entity
	orderID := payment.OrderID
	if orderID == "" && body.Payload.Order != nil {
		orderID = body.Payload.Order.Entity.ID
	}
	if orderID == "" {
		return entities.ProviderEvent{}, malformed("razorpay %s without order id", body.Event)
	}

	ev.Target = entities.BySessionID(entities.ProviderRazorpay, orderID)
	if body.Event == razorpayEventPaymentFailed {
		ev.Kind = entities.EventKindFailed
		return ev, nil
	}
	if payment.ID == "" {
		return entities.ProviderEvent{}, malformed("razorpay %s without payment id", body.Event)
	}
	ev.Kind = entities.EventKindCaptured
	ev.ConfirmationID = payment.ID
	return ev, nil
}

func (a *RazorpayAdapter) ApplyWebhookEvent(ctx context.Context, ev entities.ProviderEvent) (entities.Payment, bool, error) {
	return a.applyEvent(ctx, ev)
}
