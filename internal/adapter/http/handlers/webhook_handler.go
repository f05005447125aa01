package handlers

import (
	"errors"
	"net/http"

	response "settlement_service/internal/adapter/http/dto/response"
	"settlement_service/internal/domain/entities"
	"settlement_service/internal/usecase"
	"settlement_service/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var errInvalidWebhook = pkg.NewDomainErrorSimple("INVALID_WEBHOOK", "Webhook rejected", http.StatusBadRequest)

// WebhookHandler receives provider notifications. The body is read raw because signatures
// are computed over the exact bytes sent.
type WebhookHandler struct {
	usecase usecase.IReconciliationUseCase
	logger  *zap.Logger
}

func NewWebhookHandler(uc usecase.IReconciliationUseCase, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{usecase: uc, logger: logger.With(zap.String("component", "webhook_handler"))}
}

// Receive godoc
// @Summary      Provider webhook
// @Tags         webhooks
// @Accept       json
// @Produce      plain
// @Param        provider  path  string  true  "stripe | razorpay | mercadopago"
// @Success      200  {string}  string  "ok"
// @Failure      400  {object}  pkg.HTTPError
// @Failure      502  {object}  pkg.HTTPError
// @Router       /webhooks/{provider} [post]
func (h *WebhookHandler) Receive(c *gin.Context) {
	provider, ok := providerParam(c)
	if !ok {
		return
	}
	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		abortWithError(c, errInvalidWebhook)
		return
	}

	delivery := deliveryFor(provider, c.Request.Header, body)
	result, err := h.usecase.HandleWebhook(c.Request.Context(), provider, delivery)
	if err != nil {
		h.logger.Warn("webhook rejected", zap.String("provider", string(provider)), zap.Error(err))
		switch {
		case errors.Is(err, usecase.ErrUnauthenticated), errors.Is(err, usecase.ErrMalformedPayload):
			abortWithError(c, errInvalidWebhook)
		default:
			abortWithError(c, mapSettlementError(err))
		}
		return
	}

	h.logger.Info("webhook handled",
		zap.String("provider", string(provider)),
		zap.String("event_id", result.EventID),
		zap.String("kind", result.Kind.String()),
		zap.Bool("duplicate", result.Duplicate),
		zap.Bool("applied", result.Applied),
	)
	c.String(http.StatusOK, "ok")
}

// Replay godoc
// @Summary      Re-apply a recorded webhook event
// @Tags         webhooks
// @Produce      json
// @Param        provider  path  string  true  "stripe | razorpay | mercadopago"
// @Param        event_id  path  string  true  "provider event id"
// @Success      200  {object}  response.WebhookReplayResponse
// @Failure      404  {object}  pkg.HTTPError
// @Failure      502  {object}  pkg.HTTPError
// @Router       /webhooks/{provider}/events/{event_id}/replay [post]
func (h *WebhookHandler) Replay(c *gin.Context) {
	provider, ok := providerParam(c)
	if !ok {
		return
	}
	eventID := c.Param("event_id")
	result, err := h.usecase.ReplayWebhook(c.Request.Context(), provider, eventID)
	if err != nil {
		h.logger.Warn("webhook replay failed", zap.String("provider", string(provider)), zap.String("event_id", eventID), zap.Error(err))
		abortWithError(c, mapSettlementError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromWebhookResult(result))
}

func deliveryFor(provider entities.Provider, header http.Header, body []byte) entities.WebhookDelivery {
	d := entities.WebhookDelivery{Body: body}
	switch provider {
	case entities.ProviderStripe:
		d.Signature = header.Get("Stripe-Signature")
	case entities.ProviderRazorpay:
		d.Signature = header.Get("X-Razorpay-Signature")
		d.EventID = header.Get("X-Razorpay-Event-Id")
	case entities.ProviderMercadoPago:
		d.Signature = header.Get("X-Signature")
		d.RequestID = header.Get("X-Request-Id")
	}
	return d
}
