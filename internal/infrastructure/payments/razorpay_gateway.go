package payments

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"settlement_service/internal/infrastructure/config"
	"settlement_service/internal/usecase/interfaces"

	razorpay "github.com/razorpay/razorpay-go"
	"go.uber.org/zap"
)

var ErrMissingRazorpayCredentials = errors.New("missing RAZORPAY_KEY_ID or RAZORPAY_KEY_SECRET")
var ErrRazorpayGatewayNotConfigured = errors.New("razorpay gateway not configured")

// RazorpayGateway creates Razorpay orders. The Razorpay order id is the session id.
type RazorpayGateway struct {
	client   *razorpay.Client
	mockMode bool
	logger   *zap.Logger
}

var _ interfaces.IRazorpayGateway = (*RazorpayGateway)(nil)

func NewRazorpayGateway(cfg config.RazorpayConfig, mockMode bool, logger *zap.Logger) (*RazorpayGateway, error) {
	if mockMode {
		logger.Info("razorpay gateway mock mode enabled")
		return &RazorpayGateway{mockMode: true, logger: logger}, nil
	}
	if cfg.KeyID == "" || cfg.KeySecret == "" {
		return nil, ErrMissingRazorpayCredentials
	}
	logger.Info("razorpay client initialized")
	return &RazorpayGateway{client: razorpay.NewClient(cfg.KeyID, cfg.KeySecret), logger: logger}, nil
}

func (g *RazorpayGateway) CreateOrder(ctx context.Context, req interfaces.CheckoutRequest) (interfaces.Checkout, error) {
	if g != nil && g.mockMode {
		id := mockID("order_")
		g.logger.Info("razorpay mock order created", zap.String("order_id", req.OrderID), zap.String("razorpay_order_id", id))
		return interfaces.Checkout{SessionID: id}, nil
	}
	if g == nil || g.client == nil {
		return interfaces.Checkout{}, ErrRazorpayGatewayNotConfigured
	}
	if err := ctx.Err(); err != nil {
		return interfaces.Checkout{}, err
	}

	data := map[string]interface{}{
		"amount":          req.AmountMinor,
		"currency":        strings.ToUpper(req.Currency),
		"receipt":         razorpayReceipt(req.OrderID),
		"payment_capture": 1,
		"notes": map[string]interface{}{
			"order_id":   req.OrderID,
			"payment_id": req.PaymentID,
		},
	}
	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		g.logger.Error("razorpay order create failed", zap.String("order_id", req.OrderID), zap.Error(err))
		return interfaces.Checkout{}, fmt.Errorf("razorpay create order: %w", err)
	}
	id, _ := body["id"].(string)
	if id == "" {
		return interfaces.Checkout{}, errors.New("razorpay create order: response without id")
	}
	g.logger.Info("razorpay order created", zap.String("order_id", req.OrderID), zap.String("razorpay_order_id", id))
	return interfaces.Checkout{SessionID: id}, nil
}

// razorpayReceipt derives the receipt from the order id: ord_ followed by the first 30
// hex characters, within Razorpay's 40 character limit.
func razorpayReceipt(orderID string) string {
	compact := strings.ReplaceAll(orderID, "-", "")
	if len(compact) > 30 {
		compact = compact[:30]
	}
	return "ord_" + compact
}
