package usecase

import (
	"context"
	"fmt"
	"strings"

	"settlement_service/internal/domain/entities"
	"settlement_service/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// IOrderStateNotifier propagates a terminal payment outcome to the order-owning service.
//
// Callers invoke Notify exactly once per applied transition. A failure is returned as
// ErrOrderNotifyFailed and never rolls the payment back.
type IOrderStateNotifier interface {
	Notify(ctx context.Context, orderID string, status entities.PaymentStatus, confirmationID string) error
}

type OrderStateNotifier struct {
	notifier interfaces.IOrderNotifier
	logger   *zap.Logger
}

var _ IOrderStateNotifier = (*OrderStateNotifier)(nil)

func NewOrderStateNotifier(notifier interfaces.IOrderNotifier, logger *zap.Logger) *OrderStateNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OrderStateNotifier{notifier: notifier, logger: logger}
}

func (n *OrderStateNotifier) Notify(ctx context.Context, orderID string, status entities.PaymentStatus, confirmationID string) error {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return ErrInvalidOrderID
	}
	if status != entities.PaymentStatusPaid && status != entities.PaymentStatusFailed {
		return ErrInvalidNotifyStatus
	}

	update := entities.PaymentStatusUpdate{
		OrderID:     orderID,
		Status:      status,
		ReferenceID: confirmationID,
	}
	if err := n.notifier.Notify(ctx, update); err != nil {
		n.logger.Error("order notification failed",
			zap.String("order_id", orderID),
			zap.String("status", string(status)),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", ErrOrderNotifyFailed, err)
	}
	n.logger.Info("order notified",
		zap.String("order_id", orderID),
		zap.String("status", string(status)),
		zap.String("reference_id", confirmationID),
	)
	return nil
}
