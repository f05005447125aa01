package interfaces

import (
	"context"

	"settlement_service/internal/domain/entities"
)

// IOrderClient reads orders from the order-owning service. A missing order is returned
// as the zero value.
type IOrderClient interface {
	GetOrder(ctx context.Context, orderID string) (entities.OrderSummary, error)
}

// IOrderNotifier tells the order-owning service about an effective payment transition.
type IOrderNotifier interface {
	Notify(ctx context.Context, update entities.PaymentStatusUpdate) error
}
