package usecase

import "errors"

var (
	ErrUnauthenticated      = errors.New("unauthenticated provider confirmation")
	ErrMalformedPayload     = errors.New("malformed provider payload")
	ErrUnsupportedProvider  = errors.New("unsupported payment provider")
	ErrInvalidOrderID       = errors.New("invalid order_id")
	ErrInvalidEventID       = errors.New("invalid event_id")
	ErrInvalidPaymentID     = errors.New("invalid payment id")
	ErrInvalidLookupKey     = errors.New("invalid payment lookup key")
	ErrInvalidOrderAmount   = errors.New("order amount must be positive")
	ErrInvalidOrderCurrency = errors.New("order currency is required")
	ErrInvalidVerification  = errors.New("invalid client verification")
	ErrInvalidNotifyStatus  = errors.New("only PAID or FAILED can be notified")

	ErrOrderNotFound        = errors.New("order not found")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrWebhookEventNotFound = errors.New("webhook event not found")

	ErrPaymentAlreadySettled = errors.New("order already paid")
	ErrProviderMismatch      = errors.New("order has an open payment with another provider")
	ErrConfirmationConflict  = errors.New("provider confirmation belongs to another payment")
	ErrSessionConflict       = errors.New("provider session belongs to another payment")
	ErrPaymentNotSettled     = errors.New("payment has no terminal status yet")
	ErrOpenContention        = errors.New("could not open payment under contention")

	ErrOrderNotifyFailed       = errors.New("order service notification failed")
	ErrOrderServiceUnavailable = errors.New("order service unavailable")
	ErrProviderUnavailable     = errors.New("payment provider unavailable")
)
