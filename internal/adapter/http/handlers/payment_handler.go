package handlers

import (
	"net/http"

	request "settlement_service/internal/adapter/http/dto/request"
	response "settlement_service/internal/adapter/http/dto/response"
	"settlement_service/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler exposes the client-facing payment flows.
type PaymentHandler struct {
	usecase usecase.IReconciliationUseCase
	logger  *zap.Logger
}

func NewPaymentHandler(uc usecase.IReconciliationUseCase, logger *zap.Logger) *PaymentHandler {
	return &PaymentHandler{usecase: uc, logger: logger.With(zap.String("component", "payment_handler"))}
}

// OpenIntent godoc
// @Summary      Open or reuse a payment for an order
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        provider  path  string                        true  "stripe | razorpay | mercadopago"
// @Param        body      body  request.PaymentIntentRequest  true  "order"
// @Success      200  {object}  response.PaymentIntentResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Failure      502  {object}  pkg.HTTPError
// @Router       /payments/{provider}/intents [post]
func (h *PaymentHandler) OpenIntent(c *gin.Context) {
	provider, ok := providerParam(c)
	if !ok {
		return
	}
	var payload request.PaymentIntentRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWithError(c, errInvalidRequest)
		return
	}

	orderID := payload.ResolveOrderID()
	intent, err := h.usecase.OpenPayment(c.Request.Context(), provider, orderID)
	if err != nil {
		h.logger.Warn("open intent failed", zap.String("provider", string(provider)), zap.String("order_id", orderID), zap.Error(err))
		abortWithError(c, mapSettlementError(err))
		return
	}
	h.logger.Info("intent opened",
		zap.String("provider", string(provider)),
		zap.String("order_id", orderID),
		zap.String("payment_id", intent.PaymentID),
	)
	c.JSON(http.StatusOK, response.FromPaymentIntent(intent))
}

// Verify godoc
// @Summary      Confirm a checkout from the client
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        provider  path  string                        true  "stripe | razorpay | mercadopago"
// @Param        body      body  request.PaymentVerifyRequest  true  "provider confirmation"
// @Success      200  {object}  response.VerifyResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      401  {object}  pkg.HTTPError
// @Failure      404  {object}  pkg.HTTPError
// @Failure      502  {object}  pkg.HTTPError
// @Router       /payments/{provider}/verify [post]
func (h *PaymentHandler) Verify(c *gin.Context) {
	provider, ok := providerParam(c)
	if !ok {
		return
	}
	var payload request.PaymentVerifyRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWithError(c, errInvalidRequest)
		return
	}

	v := payload.ToVerification()
	p, err := h.usecase.VerifyClientPayment(c.Request.Context(), provider, v)
	if err != nil {
		h.logger.Warn("client verification failed", zap.String("provider", string(provider)), zap.String("order_id", v.OrderID), zap.Error(err))
		abortWithError(c, mapSettlementError(err))
		return
	}
	c.JSON(http.StatusOK, response.Verified(p))
}

// GetByOrder godoc
// @Summary      Current payment of an order
// @Tags         payments
// @Produce      json
// @Param        order_id  path  string  true  "order id"
// @Success      200  {object}  response.PaymentResponse
// @Failure      404  {object}  pkg.HTTPError
// @Router       /payments/orders/{order_id} [get]
func (h *PaymentHandler) GetByOrder(c *gin.Context) {
	p, err := h.usecase.GetPaymentByOrder(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		abortWithError(c, mapSettlementError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPayment(p))
}

// Notify godoc
// @Summary      Re-send the terminal payment status to the order service
// @Tags         payments
// @Produce      json
// @Param        order_id  path  string  true  "order id"
// @Success      200  {object}  response.PaymentResponse
// @Failure      404  {object}  pkg.HTTPError
// @Failure      409  {object}  pkg.HTTPError
// @Failure      502  {object}  pkg.HTTPError
// @Router       /payments/orders/{order_id}/notify [post]
func (h *PaymentHandler) Notify(c *gin.Context) {
	orderID := c.Param("order_id")
	p, err := h.usecase.RenotifyOrder(c.Request.Context(), orderID)
	if err != nil {
		h.logger.Warn("renotify failed", zap.String("order_id", orderID), zap.Error(err))
		abortWithError(c, mapSettlementError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromPayment(p))
}
