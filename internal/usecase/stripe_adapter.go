package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"settlement_service/internal/domain/entities"
	"settlement_service/internal/usecase/interfaces"

	"github.com/stripe/stripe-go/v82"
	"go.uber.org/zap"
)

const (
	stripeEventCheckoutCompleted      = "checkout.session.completed"
	stripeEventCheckoutAsyncSucceeded = "checkout.session.async_payment_succeeded"
	stripeEventCheckoutAsyncFailed    = "checkout.session.async_payment_failed"
	stripeEventCheckoutExpired        = "checkout.session.expired"
	stripeEventPaymentIntentFailed    = "payment_intent.payment_failed"

	stripePaymentStatusPaid   = "paid"
	stripePaymentStatusUnpaid = "unpaid"
)

type StripeAdapterConfig struct {
	PublishableKey string
	WebhookSecret  string
	Tolerance      time.Duration
}

// StripeAdapter reconciles Stripe checkout sessions (session id) and payment intents
// (confirmation id).
type StripeAdapter struct {
	adapterCore
	gateway interfaces.IStripeGateway
	cfg     StripeAdapterConfig
}

var _ IProviderAdapter = (*StripeAdapter)(nil)

func NewStripeAdapter(cfg StripeAdapterConfig, gateway interfaces.IStripeGateway, records IPaymentRecordManager, notifier IOrderStateNotifier, logger *zap.Logger) *StripeAdapter {
	if cfg.Tolerance <= 0 {
		cfg.Tolerance = StripeSignatureTolerance
	}
	return &StripeAdapter{
		adapterCore: newAdapterCore(entities.ProviderStripe, cfg.PublishableKey, records, notifier, logger),
		gateway:     gateway,
		cfg:         cfg,
	}
}

func (a *StripeAdapter) OpenIntent(ctx context.Context, order entities.OrderSummary) (entities.PaymentIntent, error) {
	return a.openIntent(ctx, order, a.gateway.CreateCheckoutSession)
}

// ApplyClientVerification has no client signature to check for Stripe: the session is
// fetched from Stripe and must belong to the order and be paid.
func (a *StripeAdapter) ApplyClientVerification(ctx context.Context, v entities.ClientVerification) (entities.Payment, error) {
	if strings.TrimSpace(v.OrderID) == "" {
		return entities.Payment{}, ErrInvalidOrderID
	}

	p, err := a.records.Find(ctx, entities.ByOrderID(v.OrderID))
	if err != nil {
		return entities.Payment{}, err
	}
	sessionID := v.ProviderOrderID
	if sessionID == "" {
		sessionID = p.ProviderSessionID
	}
	if p.Provider != entities.ProviderStripe || sessionID == "" || sessionID != p.ProviderSessionID {
		return entities.Payment{}, ErrUnauthenticated
	}

	session, err := a.gateway.GetCheckoutSession(ctx, sessionID)
	if err != nil {
		return entities.Payment{}, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	if session.ID != sessionID || session.OrderID != v.OrderID {
		a.logger.Warn("stripe session does not belong to order",
			zap.String("order_id", v.OrderID),
			zap.String("provider_session_id", sessionID),
		)
		return entities.Payment{}, ErrUnauthenticated
	}
	if session.PaymentStatus != stripePaymentStatusPaid {
		a.logger.Info("stripe session not paid",
			zap.String("order_id", v.OrderID),
			zap.String("payment_status", session.PaymentStatus),
		)
		return entities.Payment{}, ErrUnauthenticated
	}

	p, _, err = a.settleAndNotify(ctx, entities.ByOrderID(v.OrderID), session.PaymentIntentID)
	return p, err
}

func (a *StripeAdapter) VerifyWebhook(d entities.WebhookDelivery) bool {
	return VerifyStripeSignature(d.Body, d.Signature, a.cfg.WebhookSecret, a.cfg.Tolerance)
}

func (a *StripeAdapter) ParseWebhook(_ context.Context, d entities.WebhookDelivery) (entities.ProviderEvent, error) {
	var event stripe.Event
	if err := json.Unmarshal(d.Body, &event); err != nil {
		return entities.ProviderEvent{}, malformed("stripe event: %v", err)
	}
	if event.ID == "" || event.Type == "" {
		return entities.ProviderEvent{}, malformed("stripe event without id or type")
	}

	ev := entities.ProviderEvent{
		Provider: entities.ProviderStripe,
		EventID:  event.ID,
		RawType:  string(event.Type),
		Kind:     entities.EventKindUnrecognized,
	}

	switch string(event.Type) {
	case stripeEventCheckoutCompleted, stripeEventCheckoutAsyncSucceeded,
		stripeEventCheckoutAsyncFailed, stripeEventCheckoutExpired:
		session, err := decodeStripeObject[stripe.CheckoutSession](event)
		if err != nil {
			return entities.ProviderEvent{}, err
		}
		if session.ID == "" {
			return entities.ProviderEvent{}, malformed("stripe %s without session id", event.Type)
		}
		ev.Target = entities.BySessionID(entities.ProviderStripe, session.ID)

		switch string(event.Type) {
		case stripeEventCheckoutCompleted, stripeEventCheckoutAsyncSucceeded:
			// Delayed methods complete the session unpaid and settle through async_payment_succeeded.
			if string(session.PaymentStatus) == stripePaymentStatusUnpaid {
				return ev, nil
			}
			ev.Kind = entities.EventKindCaptured
			if session.PaymentIntent != nil {
				ev.ConfirmationID = session.PaymentIntent.ID
			}
		default:
			ev.Kind = entities.EventKindFailed
		}
	case stripeEventPaymentIntentFailed:
		intent, err := decodeStripeObject[stripe.PaymentIntent](event)
		if err != nil {
			return entities.ProviderEvent{}, err
		}
		if intent.ID == "" {
			return entities.ProviderEvent{}, malformed("stripe %s without payment intent id", event.Type)
		}
		ev.Kind = entities.EventKindFailed
		ev.Target = entities.ByConfirmationID(entities.ProviderStripe, intent.ID)
	}
	return ev, nil
}

func (a *StripeAdapter) ApplyWebhookEvent(ctx context.Context, ev entities.ProviderEvent) (entities.Payment, bool, error) {
	return a.applyEvent(ctx, ev)
}

func decodeStripeObject[T any](event stripe.Event) (T, error) {
	var obj T
	if event.Data == nil || len(event.Data.Raw) == 0 {
		return obj, malformed("stripe %s without data.object", event.Type)
	}
	if err := json.Unmarshal(event.Data.Raw, &obj); err != nil {
		return obj, malformed("stripe %s data.object: %v", event.Type, err)
	}
	return obj, nil
}
