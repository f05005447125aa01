package handlers

import (
	"errors"
	"net/http"

	"settlement_service/internal/domain/entities"
	"settlement_service/internal/usecase"
	"settlement_service/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidRequest      = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	errUnsupportedProvider = pkg.NewDomainErrorSimple("UNSUPPORTED_PROVIDER", "Unsupported payment provider", http.StatusBadRequest)
)

func mapSettlementError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrUnsupportedProvider):
		return errUnsupportedProvider
	case errors.Is(err, usecase.ErrMalformedPayload):
		return pkg.NewDomainErrorSimple("MALFORMED_PAYLOAD", "Malformed provider payload", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrInvalidOrderID),
		errors.Is(err, usecase.ErrInvalidEventID),
		errors.Is(err, usecase.ErrInvalidPaymentID),
		errors.Is(err, usecase.ErrInvalidLookupKey),
		errors.Is(err, usecase.ErrInvalidVerification),
		errors.Is(err, usecase.ErrInvalidNotifyStatus):
		return errInvalidRequest
	case errors.Is(err, usecase.ErrInvalidOrderAmount), errors.Is(err, usecase.ErrInvalidOrderCurrency):
		return pkg.NewDomainErrorSimple("INVALID_ORDER", "Order cannot be paid", http.StatusUnprocessableEntity)
	case errors.Is(err, usecase.ErrUnauthenticated):
		return pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Payment confirmation could not be authenticated", http.StatusUnauthorized)
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrWebhookEventNotFound):
		return pkg.NewDomainErrorSimple("WEBHOOK_EVENT_NOT_FOUND", "Webhook event not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrPaymentAlreadySettled):
		return pkg.NewDomainErrorSimple("PAYMENT_ALREADY_SETTLED", "Order already paid", http.StatusConflict)
	case errors.Is(err, usecase.ErrProviderMismatch):
		return pkg.NewDomainErrorSimple("PROVIDER_MISMATCH", "Order has an open payment with another provider", http.StatusConflict)
	case errors.Is(err, usecase.ErrConfirmationConflict), errors.Is(err, usecase.ErrSessionConflict):
		return pkg.NewDomainErrorSimple("PROVIDER_REFERENCE_CONFLICT", "Provider reference belongs to another payment", http.StatusConflict)
	case errors.Is(err, usecase.ErrPaymentNotSettled):
		return pkg.NewDomainErrorSimple("PAYMENT_NOT_SETTLED", "Payment has no terminal status yet", http.StatusConflict)
	case errors.Is(err, usecase.ErrOpenContention):
		return pkg.NewDomainErrorSimple("PAYMENT_CONTENTION", "Payment is being opened concurrently, retry", http.StatusConflict)
	case errors.Is(err, usecase.ErrOrderNotifyFailed):
		return pkg.NewDomainError("ORDER_NOTIFY_FAILED", "Order service notification failed", err, http.StatusBadGateway)
	case errors.Is(err, usecase.ErrOrderServiceUnavailable):
		return pkg.NewDomainError("ORDER_SERVICE_UNAVAILABLE", "Order service unavailable", err, http.StatusBadGateway)
	case errors.Is(err, usecase.ErrProviderUnavailable):
		return pkg.NewDomainError("PAYMENT_PROVIDER_UNAVAILABLE", "Payment provider unavailable", err, http.StatusBadGateway)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func abortWithError(c *gin.Context, appErr *pkg.AppError) {
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func providerParam(c *gin.Context) (entities.Provider, bool) {
	provider, ok := entities.ParseProvider(c.Param("provider"))
	if !ok {
		abortWithError(c, errUnsupportedProvider)
	}
	return provider, ok
}
