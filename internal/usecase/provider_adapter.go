package usecase

import (
	"context"
	"fmt"
	"strings"

	"settlement_service/internal/domain/entities"
	"settlement_service/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// IProviderAdapter is the provider-specific half of reconciliation. Everything
// provider-independent (ledger, lookups, notification) lives in the engine and the
// shared adapter core.
type IProviderAdapter interface {
	Provider() entities.Provider
	OpenIntent(ctx context.Context, order entities.OrderSummary) (entities.PaymentIntent, error)
	ApplyClientVerification(ctx context.Context, v entities.ClientVerification) (entities.Payment, error)
	VerifyWebhook(d entities.WebhookDelivery) bool
	ParseWebhook(ctx context.Context, d entities.WebhookDelivery) (entities.ProviderEvent, error)
	ApplyWebhookEvent(ctx context.Context, ev entities.ProviderEvent) (entities.Payment, bool, error)
}

type createCheckoutFunc func(ctx context.Context, req interfaces.CheckoutRequest) (interfaces.Checkout, error)

// adapterCore holds the transitions shared by every provider adapter.
type adapterCore struct {
	provider  entities.Provider
	publicKey string
	records   IPaymentRecordManager
	notifier  IOrderStateNotifier
	logger    *zap.Logger
}

func newAdapterCore(provider entities.Provider, publicKey string, records IPaymentRecordManager, notifier IOrderStateNotifier, logger *zap.Logger) adapterCore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return adapterCore{
		provider:  provider,
		publicKey: publicKey,
		records:   records,
		notifier:  notifier,
		logger:    logger,
	}
}

func (c adapterCore) Provider() entities.Provider {
	return c.provider
}

// openIntent reuses a PENDING payment that already has a provider session without a
// remote call. Otherwise it creates the remote session and attaches it; a concurrent
// opener that attached first wins and its session is returned.
func (c adapterCore) openIntent(ctx context.Context, order entities.OrderSummary, create createCheckoutFunc) (entities.PaymentIntent, error) {
	if err := validateOrder(order); err != nil {
		return entities.PaymentIntent{}, err
	}

	p, err := c.records.OpenOrReuse(ctx, order.ID, c.provider)
	if err != nil {
		return entities.PaymentIntent{}, err
	}
	if p.Status == entities.PaymentStatusPending && p.ProviderSessionID != "" {
		c.logger.Info("reusing provider session",
			zap.String("order_id", order.ID),
			zap.String("payment_id", p.ID),
			zap.String("provider_session_id", p.ProviderSessionID),
		)
		return c.intentFor(p, order), nil
	}

	checkout, err := create(ctx, interfaces.CheckoutRequest{
		OrderID:     order.ID,
		PaymentID:   p.ID,
		AmountMinor: order.AmountMinor,
		Currency:    order.Currency,
	})
	if err != nil {
		c.logger.Error("provider checkout create failed",
			zap.String("order_id", order.ID),
			zap.String("payment_id", p.ID),
			zap.Error(err),
		)
		return entities.PaymentIntent{}, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}
	if strings.TrimSpace(checkout.SessionID) == "" {
		return entities.PaymentIntent{}, fmt.Errorf("%w: empty provider session id", ErrProviderUnavailable)
	}

	p, err = c.records.AttachProviderSession(ctx, p.ID, checkout.SessionID, checkout.CheckoutURL)
	if err != nil {
		return entities.PaymentIntent{}, err
	}
	if p.ProviderSessionID != checkout.SessionID {
		c.logger.Warn("provider session discarded, another opener attached first",
			zap.String("order_id", order.ID),
			zap.String("payment_id", p.ID),
			zap.String("discarded_session_id", checkout.SessionID),
			zap.String("provider_session_id", p.ProviderSessionID),
		)
		return c.intentFor(p, order), nil
	}
	c.logger.Info("payment intent opened",
		zap.String("order_id", order.ID),
		zap.String("payment_id", p.ID),
		zap.String("provider_session_id", p.ProviderSessionID),
	)
	return c.intentFor(p, order), nil
}

func (c adapterCore) intentFor(p entities.Payment, order entities.OrderSummary) entities.PaymentIntent {
	return entities.PaymentIntent{
		PaymentID:         p.ID,
		Provider:          c.provider,
		ProviderSessionID: p.ProviderSessionID,
		PublicKey:         c.publicKey,
		CheckoutURL:       p.CheckoutURL,
		AmountMinor:       order.AmountMinor,
		Currency:          strings.ToUpper(order.Currency),
	}
}

// applyEvent dispatches on the closed event kind. Unrecognized events are accepted
// and leave every payment untouched.
func (c adapterCore) applyEvent(ctx context.Context, ev entities.ProviderEvent) (entities.Payment, bool, error) {
	switch ev.Kind {
	case entities.EventKindCaptured:
		return c.settleAndNotify(ctx, ev.Target, ev.ConfirmationID)
	case entities.EventKindFailed:
		return c.failAndNotify(ctx, ev.Target)
	default:
		c.logger.Info("ignoring unrecognized provider event",
			zap.String("event_id", ev.EventID),
			zap.String("type", ev.RawType),
		)
		return entities.Payment{}, false, nil
	}
}

func (c adapterCore) settleAndNotify(ctx context.Context, key entities.LookupKey, confirmationID string) (entities.Payment, bool, error) {
	p, applied, err := c.records.Settle(ctx, key, confirmationID)
	if err != nil || !applied {
		return p, applied, err
	}
	if err := c.notifier.Notify(ctx, p.OrderID, entities.PaymentStatusPaid, p.ProviderPaymentID); err != nil {
		return p, true, err
	}
	return p, true, nil
}

func (c adapterCore) failAndNotify(ctx context.Context, key entities.LookupKey) (entities.Payment, bool, error) {
	p, applied, err := c.records.Fail(ctx, key)
	if err != nil || !applied {
		return p, applied, err
	}
	if err := c.notifier.Notify(ctx, p.OrderID, entities.PaymentStatusFailed, p.ProviderPaymentID); err != nil {
		return p, true, err
	}
	return p, true, nil
}

func validateOrder(order entities.OrderSummary) error {
	if strings.TrimSpace(order.ID) == "" {
		return ErrInvalidOrderID
	}
	if order.AmountMinor <= 0 {
		return ErrInvalidOrderAmount
	}
	if strings.TrimSpace(order.Currency) == "" {
		return ErrInvalidOrderCurrency
	}
	return nil
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrMalformedPayload, fmt.Sprintf(format, args...))
}
