package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"settlement_service/internal/infrastructure/config"
	"settlement_service/internal/usecase/interfaces"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
	"go.uber.org/zap"
)

var ErrMissingStripeSecretKey = errors.New("missing STRIPE_SECRET_KEY")
var ErrStripeGatewayNotConfigured = errors.New("stripe gateway not configured")

// StripeGateway opens and reads Stripe checkout sessions.
type StripeGateway struct {
	sessions   *session.Client
	successURL string
	cancelURL  string
	mockMode   bool
	logger     *zap.Logger

	// mock mode: session id -> order id
	mockOrders sync.Map
}

var _ interfaces.IStripeGateway = (*StripeGateway)(nil)

func NewStripeGateway(cfg config.StripeConfig, mockMode bool, logger *zap.Logger) (*StripeGateway, error) {
	g := &StripeGateway{successURL: cfg.SuccessURL, cancelURL: cfg.CancelURL, logger: logger}
	if mockMode {
		logger.Info("stripe gateway mock mode enabled")
		g.mockMode = true
		return g, nil
	}
	if cfg.SecretKey == "" {
		return nil, ErrMissingStripeSecretKey
	}
	g.sessions = &session.Client{B: stripe.GetBackend(stripe.APIBackend), Key: cfg.SecretKey}
	logger.Info("stripe client initialized")
	return g, nil
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req interfaces.CheckoutRequest) (interfaces.Checkout, error) {
	if g != nil && g.mockMode {
		id := mockID("cs_test_")
		g.mockOrders.Store(id, req.OrderID)
		g.logger.Info("stripe mock checkout session created", zap.String("order_id", req.OrderID), zap.String("session_id", id))
		return interfaces.Checkout{SessionID: id, CheckoutURL: "https://checkout.stripe.com/c/pay/" + id}, nil
	}
	if g == nil || g.sessions == nil {
		return interfaces.Checkout{}, ErrStripeGatewayNotConfigured
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(g.successURL),
		CancelURL:         stripe.String(g.cancelURL),
		ClientReferenceID: stripe.String(req.OrderID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(req.Currency)),
					UnitAmount: stripe.Int64(req.AmountMinor),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Order #" + req.OrderID),
					},
				},
			},
		},
	}
	params.Context = ctx
	params.AddMetadata("order_id", req.OrderID)
	params.AddMetadata("payment_id", req.PaymentID)
	params.SetIdempotencyKey("checkout-" + req.PaymentID)

	s, err := g.sessions.New(params)
	if err != nil {
		g.logger.Error("stripe checkout session create failed", zap.String("order_id", req.OrderID), zap.Error(err))
		return interfaces.Checkout{}, fmt.Errorf("stripe create checkout session: %w", err)
	}
	g.logger.Info("stripe checkout session created", zap.String("order_id", req.OrderID), zap.String("session_id", s.ID))
	return interfaces.Checkout{SessionID: s.ID, CheckoutURL: s.URL}, nil
}

func (g *StripeGateway) GetCheckoutSession(ctx context.Context, sessionID string) (interfaces.StripeCheckoutSession, error) {
	if g != nil && g.mockMode {
		orderID, _ := g.mockOrders.Load(sessionID)
		owner, _ := orderID.(string)
		return interfaces.StripeCheckoutSession{
			ID:              sessionID,
			OrderID:         owner,
			PaymentStatus:   string(stripe.CheckoutSessionPaymentStatusPaid),
			PaymentIntentID: "pi_" + strings.TrimPrefix(sessionID, "cs_test_"),
		}, nil
	}
	if g == nil || g.sessions == nil {
		return interfaces.StripeCheckoutSession{}, ErrStripeGatewayNotConfigured
	}

	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	s, err := g.sessions.Get(sessionID, params)
	if err != nil {
		return interfaces.StripeCheckoutSession{}, fmt.Errorf("stripe get checkout session: %w", err)
	}

	out := interfaces.StripeCheckoutSession{
		ID:            s.ID,
		OrderID:       s.ClientReferenceID,
		PaymentStatus: string(s.PaymentStatus),
	}
	if out.OrderID == "" {
		out.OrderID = s.Metadata["order_id"]
	}
	if s.PaymentIntent != nil {
		out.PaymentIntentID = s.PaymentIntent.ID
	}
	return out, nil
}
