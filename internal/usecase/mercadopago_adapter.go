package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"settlement_service/internal/domain/entities"
	"settlement_service/internal/usecase/interfaces"

	"go.uber.org/zap"
)

const (
	mercadoPagoTopicPayment = "payment"

	mercadoPagoStatusApproved  = "approved"
	mercadoPagoStatusRejected  = "rejected"
	mercadoPagoStatusCancelled = "cancelled"
)

type MercadoPagoAdapterConfig struct {
	PublicKey     string
	WebhookSecret string
}

// MercadoPagoAdapter reconciles Mercado Pago preferences (session id) and payments
// (confirmation id). Payments carry the order id as external_reference.
type MercadoPagoAdapter struct {
	adapterCore
	gateway  interfaces.IMercadoPagoGateway
	verifier ISignatureVerifier
	cfg      MercadoPagoAdapterConfig
}

var _ IProviderAdapter = (*MercadoPagoAdapter)(nil)

func NewMercadoPagoAdapter(cfg MercadoPagoAdapterConfig, gateway interfaces.IMercadoPagoGateway, verifier ISignatureVerifier, records IPaymentRecordManager, notifier IOrderStateNotifier, logger *zap.Logger) *MercadoPagoAdapter {
	return &MercadoPagoAdapter{
		adapterCore: newAdapterCore(entities.ProviderMercadoPago, cfg.PublicKey, records, notifier, logger),
		gateway:     gateway,
		verifier:    verifier,
		cfg:         cfg,
	}
}

func (a *MercadoPagoAdapter) OpenIntent(ctx context.Context, order entities.OrderSummary) (entities.PaymentIntent, error) {
	return a.openIntent(ctx, order, a.gateway.CreatePreference)
}

// ApplyClientVerification fetches the payment reported by the checkout redirect; it must
// reference the order and be approved.
func (a *MercadoPagoAdapter) ApplyClientVerification(ctx context.Context, v entities.ClientVerification) (entities.Payment, error) {
	if strings.TrimSpace(v.OrderID) == "" {
		return entities.Payment{}, ErrInvalidOrderID
	}
	if strings.TrimSpace(v.ProviderPaymentID) == "" {
		return entities.Payment{}, ErrInvalidVerification
	}

	p, err := a.records.Find(ctx, entities.ByOrderID(v.OrderID))
	if err != nil {
		return entities.Payment{}, err
	}
	if p.Provider != entities.ProviderMercadoPago {
		return entities.Payment{}, ErrUnauthenticated
	}

	remote, err := a.gateway.GetPayment(ctx, v.ProviderPaymentID)
	if err != nil {
		return entities.Payment{}, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	if remote.ExternalReference != v.OrderID || remote.Status != mercadoPagoStatusApproved {
		a.logger.Warn("mercado pago payment does not confirm order",
			zap.String("order_id", v.OrderID),
			zap.String("provider_payment_id", v.ProviderPaymentID),
			zap.String("external_reference", remote.ExternalReference),
			zap.String("status", remote.Status),
		)
		return entities.Payment{}, ErrUnauthenticated
	}

	p, _, err = a.settleAndNotify(ctx, entities.ByOrderID(v.OrderID), remote.ID)
	return p, err
}

type mercadoPagoNotification struct {
	ID     json.Number `json:"id"`
	Type   string      `json:"type"`
	Action string      `json:"action"`
	Data   struct {
		ID string `json:"id"`
	} `json:"data"`
}

func decodeMercadoPagoNotification(body []byte) (mercadoPagoNotification, error) {
	var n mercadoPagoNotification
	if err := json.Unmarshal(body, &n); err != nil {
		return mercadoPagoNotification{}, malformed("mercado pago notification: %v", err)
	}
	if n.Type == "" {
		return mercadoPagoNotification{}, malformed("mercado pago notification without type")
	}
	return n, nil
}

// VerifyWebhook checks x-signature over the manifest built from data.id and x-request-id.
func (a *MercadoPagoAdapter) VerifyWebhook(d entities.WebhookDelivery) bool {
	n, err := decodeMercadoPagoNotification(d.Body)
	if err != nil {
		return false
	}
	return VerifyMercadoPagoSignature(a.verifier, d.Signature, d.RequestID, n.Data.ID, a.cfg.WebhookSecret)
}

// ParseWebhook resolves payment notifications by fetching the payment; the notification
// itself carries no status.
func (a *MercadoPagoAdapter) ParseWebhook(ctx context.Context, d entities.WebhookDelivery) (entities.ProviderEvent, error) {
	n, err := decodeMercadoPagoNotification(d.Body)
	if err != nil {
		return entities.ProviderEvent{}, err
	}

	eventID := n.ID.String()
	if eventID == "" {
		eventID = strings.TrimSpace(d.EventID)
	}
	if eventID == "" {
		eventID = n.Type + ":" + n.Data.ID + ":" + n.Action
	}

	ev := entities.ProviderEvent{
		Provider: entities.ProviderMercadoPago,
		EventID:  eventID,
		RawType:  n.Type,
		Kind:     entities.EventKindUnrecognized,
	}
	if n.Action != "" {
		ev.RawType = n.Type + "/" + n.Action
	}
	if n.Type != mercadoPagoTopicPayment {
		return ev, nil
	}
	if n.Data.ID == "" {
		return entities.ProviderEvent{}, malformed("mercado pago payment notification without data.id")
	}

	remote, err := a.gateway.GetPayment(ctx, n.Data.ID)
	if err != nil {
		return entities.ProviderEvent{}, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	if remote.ExternalReference == "" {
		a.logger.Warn("mercado pago payment without external_reference",
			zap.String("provider_payment_id", n.Data.ID),
		)
		return ev, nil
	}

	switch remote.Status {
	case mercadoPagoStatusApproved:
		ev.Kind = entities.EventKindCaptured
		ev.ConfirmationID = remote.ID
	case mercadoPagoStatusRejected, mercadoPagoStatusCancelled:
		ev.Kind = entities.EventKindFailed
	default:
		return ev, nil
	}
	ev.Target = entities.ByOrderID(remote.ExternalReference)
	return ev, nil
}

func (a *MercadoPagoAdapter) ApplyWebhookEvent(ctx context.Context, ev entities.ProviderEvent) (entities.Payment, bool, error) {
	if ev.Kind != entities.EventKindUnrecognized && ev.Target.By == entities.LookupByOrderID {
		// external_reference is ours, but only payments opened through Mercado Pago are touched.
		p, err := a.records.Find(ctx, ev.Target)
		if err != nil {
			return entities.Payment{}, false, err
		}
		if p.Provider != entities.ProviderMercadoPago {
			a.logger.Warn("mercado pago event for payment of another provider",
				zap.String("order_id", p.OrderID),
				zap.String("payment_id", p.ID),
				zap.String("provider", string(p.Provider)),
			)
			return p, false, nil
		}
	}
	return a.applyEvent(ctx, ev)
}
