package payments

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"settlement_service/internal/infrastructure/config"
	"settlement_service/internal/usecase/interfaces"

	mpconfig "github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"github.com/mercadopago/sdk-go/pkg/preference"
	"go.uber.org/zap"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")
var ErrInvalidMercadoPagoPaymentID = errors.New("invalid mercado pago payment id")

// Currencies Mercado Pago prices without decimals.
var zeroDecimalCurrencies = map[string]bool{"CLP": true, "JPY": true, "PYG": true}

// MercadoPagoGateway opens checkout preferences and reads payments.
type MercadoPagoGateway struct {
	preferences     preference.Client
	payments        payment.Client
	notificationURL string
	mockMode        bool
	logger          *zap.Logger
}

var _ interfaces.IMercadoPagoGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(cfg config.MercadoPagoConfig, mockMode bool, logger *zap.Logger) (*MercadoPagoGateway, error) {
	if mockMode {
		logger.Info("mercado pago gateway mock mode enabled")
		return &MercadoPagoGateway{mockMode: true, logger: logger}, nil
	}
	if cfg.AccessToken == "" {
		return nil, ErrMissingMercadoPagoAccessToken
	}

	sdkCfg, err := mpconfig.New(cfg.AccessToken)
	if err != nil {
		logger.Error("mercado pago sdk config failed", zap.Error(err))
		return nil, err
	}
	logger.Info("mercado pago client initialized")

	return &MercadoPagoGateway{
		preferences:     preference.NewClient(sdkCfg),
		payments:        payment.NewClient(sdkCfg),
		notificationURL: cfg.NotificationURL,
		logger:          logger,
	}, nil
}

func (g *MercadoPagoGateway) CreatePreference(ctx context.Context, req interfaces.CheckoutRequest) (interfaces.Checkout, error) {
	if g != nil && g.mockMode {
		id := mockID("pref-")
		g.logger.Info("mercado pago mock preference created", zap.String("order_id", req.OrderID), zap.String("preference_id", id))
		return interfaces.Checkout{
			SessionID:   id,
			CheckoutURL: "https://www.mercadopago.com/checkout/v1/redirect?pref_id=" + id,
		}, nil
	}
	if g == nil || g.preferences == nil {
		return interfaces.Checkout{}, ErrMercadoPagoGatewayNotConfigured
	}

	currency := strings.ToUpper(req.Currency)
	pr := preference.Request{
		ExternalReference: req.OrderID,
		NotificationURL:   g.notificationURL,
		Items: []preference.ItemRequest{
			{
				ID:         req.OrderID,
				Title:      "Order #" + req.OrderID,
				Quantity:   1,
				UnitPrice:  majorUnits(req.AmountMinor, currency),
				CurrencyID: currency,
			},
		},
		Metadata: map[string]any{"payment_id": req.PaymentID},
	}

	resp, err := g.preferences.Create(ctx, pr)
	if err != nil {
		g.logger.Error("mercado pago preference create failed", zap.String("order_id", req.OrderID), zap.Error(err))
		return interfaces.Checkout{}, fmt.Errorf("mercado pago create preference: %w", err)
	}
	g.logger.Info("mercado pago preference created", zap.String("order_id", req.OrderID), zap.String("preference_id", resp.ID))
	return interfaces.Checkout{SessionID: resp.ID, CheckoutURL: resp.InitPoint}, nil
}

func (g *MercadoPagoGateway) GetPayment(ctx context.Context, paymentID string) (interfaces.MercadoPagoPayment, error) {
	id, err := strconv.Atoi(strings.TrimSpace(paymentID))
	if err != nil {
		return interfaces.MercadoPagoPayment{}, ErrInvalidMercadoPagoPaymentID
	}
	if g != nil && g.mockMode {
		return interfaces.MercadoPagoPayment{ID: strconv.Itoa(id), Status: "approved"}, nil
	}
	if g == nil || g.payments == nil {
		return interfaces.MercadoPagoPayment{}, ErrMercadoPagoGatewayNotConfigured
	}

	resp, err := g.payments.Get(ctx, id)
	if err != nil {
		g.logger.Error("mercado pago payment get failed", zap.Int("provider_payment_id", id), zap.Error(err))
		return interfaces.MercadoPagoPayment{}, fmt.Errorf("mercado pago get payment: %w", err)
	}
	return interfaces.MercadoPagoPayment{
		ID:                strconv.Itoa(resp.ID),
		Status:            resp.Status,
		ExternalReference: resp.ExternalReference,
	}, nil
}

func majorUnits(amountMinor int64, currency string) float64 {
	if zeroDecimalCurrencies[currency] {
		return float64(amountMinor)
	}
	return float64(amountMinor) / 100
}
