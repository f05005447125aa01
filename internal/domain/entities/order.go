package entities

// OrderSummary is the read-only view of an order exposed by the order service.
//
// Monetary representation:
//   - AmountMinor is an integer amount in the currency's minor unit (paise, cents).
type OrderSummary struct {
	ID          string `json:"id"`
	AmountMinor int64  `json:"totalAmount"`
	Currency    string `json:"currency"`
}

// PaymentStatusUpdate is what the order service is told after an effective transition.
type PaymentStatusUpdate struct {
	OrderID     string        `json:"orderId"`
	Status      PaymentStatus `json:"paymentStatus"`
	ReferenceID string        `json:"paymentReferenceId"`
}
