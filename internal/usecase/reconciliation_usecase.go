package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"settlement_service/internal/domain/entities"
	"settlement_service/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// WebhookResult summarizes how an inbound provider event was handled.
type WebhookResult struct {
	EventID   string
	Kind      entities.EventKind
	Duplicate bool
	Applied   bool
	PaymentID string
}

// IReconciliationUseCase is the request-scoped entry point for every payment flow.
//
// Flows:
//   - Open: fetch the order, open or reuse the provider intent.
//   - Client verify: the adapter verification gates settlement.
//   - Webhook: verify against the raw body, parse, record in the ledger (duplicates are
//     acknowledged without reprocessing), apply, notify iff applied. An event whose apply
//     fails is released from the ledger so the provider redelivery is processed.
type IReconciliationUseCase interface {
	OpenPayment(ctx context.Context, provider entities.Provider, orderID string) (entities.PaymentIntent, error)
	VerifyClientPayment(ctx context.Context, provider entities.Provider, v entities.ClientVerification) (entities.Payment, error)
	HandleWebhook(ctx context.Context, provider entities.Provider, d entities.WebhookDelivery) (WebhookResult, error)
	ReplayWebhook(ctx context.Context, provider entities.Provider, eventID string) (WebhookResult, error)
	RenotifyOrder(ctx context.Context, orderID string) (entities.Payment, error)
	GetPaymentByOrder(ctx context.Context, orderID string) (entities.Payment, error)
}

type ReconciliationUseCase struct {
	orders   interfaces.IOrderClient
	events   IWebhookEventStore
	records  IPaymentRecordManager
	notifier IOrderStateNotifier
	adapters map[entities.Provider]IProviderAdapter
	logger   *zap.Logger
}

var _ IReconciliationUseCase = (*ReconciliationUseCase)(nil)

func NewReconciliationUseCase(orders interfaces.IOrderClient, events IWebhookEventStore, records IPaymentRecordManager, notifier IOrderStateNotifier, logger *zap.Logger, adapters ...IProviderAdapter) *ReconciliationUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	byProvider := make(map[entities.Provider]IProviderAdapter, len(adapters))
	for _, a := range adapters {
		byProvider[a.Provider()] = a
	}
	return &ReconciliationUseCase{
		orders:   orders,
		events:   events,
		records:  records,
		notifier: notifier,
		adapters: byProvider,
		logger:   logger,
	}
}

func (u *ReconciliationUseCase) adapter(provider entities.Provider) (IProviderAdapter, error) {
	a, ok := u.adapters[provider]
	if !ok {
		return nil, ErrUnsupportedProvider
	}
	return a, nil
}

func (u *ReconciliationUseCase) OpenPayment(ctx context.Context, provider entities.Provider, orderID string) (entities.PaymentIntent, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.PaymentIntent{}, ErrInvalidOrderID
	}
	a, err := u.adapter(provider)
	if err != nil {
		return entities.PaymentIntent{}, err
	}

	order, err := u.orders.GetOrder(ctx, orderID)
	if err != nil {
		u.logger.Error("order lookup failed", zap.String("order_id", orderID), zap.Error(err))
		return entities.PaymentIntent{}, fmt.Errorf("%w: %v", ErrOrderServiceUnavailable, err)
	}
	if order.ID == "" {
		return entities.PaymentIntent{}, ErrOrderNotFound
	}

	intent, err := a.OpenIntent(ctx, order)
	if err != nil {
		u.logger.Warn("open payment failed",
			zap.String("order_id", orderID),
			zap.String("provider", string(provider)),
			zap.Error(err),
		)
		return entities.PaymentIntent{}, err
	}
	return intent, nil
}

func (u *ReconciliationUseCase) VerifyClientPayment(ctx context.Context, provider entities.Provider, v entities.ClientVerification) (entities.Payment, error) {
	a, err := u.adapter(provider)
	if err != nil {
		return entities.Payment{}, err
	}
	v.OrderID = strings.TrimSpace(v.OrderID)
	if v.OrderID == "" {
		return entities.Payment{}, ErrInvalidOrderID
	}

	p, err := a.ApplyClientVerification(ctx, v)
	if err != nil {
		u.logger.Warn("client verification rejected",
			zap.String("order_id", v.OrderID),
			zap.String("provider", string(provider)),
			zap.Error(err),
		)
		return p, err
	}
	return p, nil
}

// HandleWebhook authenticates before anything is written. A payload that authenticates
// but cannot be parsed is rejected without a ledger entry so a provider redelivery is
// processed.
func (u *ReconciliationUseCase) HandleWebhook(ctx context.Context, provider entities.Provider, d entities.WebhookDelivery) (WebhookResult, error) {
	a, err := u.adapter(provider)
	if err != nil {
		return WebhookResult{}, err
	}
	log := u.logger.With(zap.String("provider", string(provider)))

	if !a.VerifyWebhook(d) {
		log.Warn("webhook signature rejected", zap.Int("payload_len", len(d.Body)))
		return WebhookResult{}, ErrUnauthenticated
	}

	ev, err := a.ParseWebhook(ctx, d)
	if err != nil {
		log.Warn("webhook parse failed", zap.Error(err))
		return WebhookResult{}, err
	}
	if ev.EventID == "" {
		return WebhookResult{}, malformed("webhook without event id")
	}
	log = log.With(zap.String("event_id", ev.EventID), zap.String("type", ev.RawType))

	isNew, err := u.events.RecordIfNew(ctx, provider, ev.EventID, d.Body)
	if err != nil {
		return WebhookResult{}, err
	}
	if !isNew {
		return WebhookResult{EventID: ev.EventID, Kind: ev.Kind, Duplicate: true}, nil
	}

	res, err := u.apply(ctx, log, a, ev)
	if err != nil && !errors.Is(err, ErrOrderNotifyFailed) {
		// Notify failures stay ledgered; RenotifyOrder is their retry path.
		if relErr := u.events.Release(context.WithoutCancel(ctx), provider, ev.EventID); relErr != nil {
			log.Error("webhook left in ledger after failed apply", zap.Error(relErr))
		}
	}
	return res, err
}

// ReplayWebhook re-applies a ledgered event bypassing the dedup check. Transitions are
// idempotent, so replaying an event that was already applied changes nothing.
func (u *ReconciliationUseCase) ReplayWebhook(ctx context.Context, provider entities.Provider, eventID string) (WebhookResult, error) {
	a, err := u.adapter(provider)
	if err != nil {
		return WebhookResult{}, err
	}
	stored, err := u.events.Get(ctx, provider, eventID)
	if err != nil {
		return WebhookResult{}, err
	}

	ev, err := a.ParseWebhook(ctx, entities.WebhookDelivery{Body: stored.Payload, EventID: stored.EventID})
	if err != nil {
		return WebhookResult{}, err
	}
	ev.EventID = stored.EventID

	log := u.logger.With(
		zap.String("provider", string(provider)),
		zap.String("event_id", ev.EventID),
		zap.String("type", ev.RawType),
		zap.Bool("replay", true),
	)
	return u.apply(ctx, log, a, ev)
}

func (u *ReconciliationUseCase) apply(ctx context.Context, log *zap.Logger, a IProviderAdapter, ev entities.ProviderEvent) (WebhookResult, error) {
	res := WebhookResult{EventID: ev.EventID, Kind: ev.Kind}

	p, applied, err := a.ApplyWebhookEvent(ctx, ev)
	res.PaymentID = p.ID
	res.Applied = applied
	switch {
	case errors.Is(err, ErrPaymentNotFound):
		log.Warn("webhook references unknown payment",
			zap.String("lookup_by", ev.Target.By.String()),
			zap.String("lookup_value", ev.Target.Value),
		)
		return res, nil
	case err != nil:
		log.Error("webhook apply failed", zap.Bool("applied", applied), zap.Error(err))
		return res, err
	}

	log.Info("webhook processed",
		zap.String("kind", ev.Kind.String()),
		zap.Bool("applied", applied),
		zap.String("payment_id", p.ID),
	)
	return res, nil
}

// RenotifyOrder re-sends the terminal status of the order's payment without touching it.
func (u *ReconciliationUseCase) RenotifyOrder(ctx context.Context, orderID string) (entities.Payment, error) {
	p, err := u.GetPaymentByOrder(ctx, orderID)
	if err != nil {
		return entities.Payment{}, err
	}
	if !p.Status.IsTerminal() {
		return p, ErrPaymentNotSettled
	}
	if err := u.notifier.Notify(ctx, p.OrderID, p.Status, p.ProviderPaymentID); err != nil {
		return p, err
	}
	return p, nil
}

func (u *ReconciliationUseCase) GetPaymentByOrder(ctx context.Context, orderID string) (entities.Payment, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return entities.Payment{}, ErrInvalidOrderID
	}
	return u.records.Find(ctx, entities.ByOrderID(orderID))
}
