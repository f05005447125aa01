package orders

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"settlement_service/internal/domain/entities"
	"settlement_service/internal/infrastructure/config"
	"settlement_service/internal/usecase/interfaces"

	"go.uber.org/zap"
)

var ErrUnexpectedStatus = errors.New("order service returned an unexpected status")

// HTTPOrderClient reads and updates orders on the order service REST API.
type HTTPOrderClient struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger
}

var _ interfaces.IOrderClient = (*HTTPOrderClient)(nil)
var _ interfaces.IOrderNotifier = (*HTTPOrderClient)(nil)

func NewHTTPOrderClient(cfg config.OrderServiceConfig, logger *zap.Logger) *HTTPOrderClient {
	return &HTTPOrderClient{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: cfg.Timeout},
		logger:  logger.With(zap.String("component", "order_client")),
	}
}

// GetOrder returns the zero value when the order service answers 404.
func (c *HTTPOrderClient) GetOrder(ctx context.Context, orderID string) (entities.OrderSummary, error) {
	endpoint := c.baseURL + "/api/orders/" + url.PathEscape(orderID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return entities.OrderSummary{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("order fetch failed", zap.String("order_id", orderID), zap.Error(err))
		return entities.OrderSummary{}, fmt.Errorf("get order: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return entities.OrderSummary{}, nil
	case resp.StatusCode != http.StatusOK:
		c.logger.Warn("order fetch rejected", zap.String("order_id", orderID), zap.Int("status", resp.StatusCode))
		return entities.OrderSummary{}, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var order entities.OrderSummary
	if err := json.NewDecoder(resp.Body).Decode(&order); err != nil {
		return entities.OrderSummary{}, fmt.Errorf("decode order: %w", err)
	}
	return order, nil
}

type paymentStatusBody struct {
	PaymentStatus      entities.PaymentStatus `json:"paymentStatus"`
	PaymentReferenceID string                 `json:"paymentReferenceId,omitempty"`
}

// Notify sends PUT /api/orders/{id}/payment-status. Any 2xx is success.
func (c *HTTPOrderClient) Notify(ctx context.Context, update entities.PaymentStatusUpdate) error {
	body, err := json.Marshal(paymentStatusBody{PaymentStatus: update.Status, PaymentReferenceID: update.ReferenceID})
	if err != nil {
		return err
	}
	endpoint := c.baseURL + "/api/orders/" + url.PathEscape(update.OrderID) + "/payment-status"
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("order notify failed", zap.String("order_id", update.OrderID), zap.Error(err))
		return fmt.Errorf("notify order: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Warn("order notify rejected", zap.String("order_id", update.OrderID), zap.Int("status", resp.StatusCode))
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	c.logger.Info("order notified",
		zap.String("order_id", update.OrderID),
		zap.String("payment_status", string(update.Status)),
	)
	return nil
}
