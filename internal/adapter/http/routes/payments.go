package routes

import (
	"settlement_service/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathPayments = "/payments"
	PathWebhooks = "/webhooks"
)

func addPaymentRoutes(rg *gin.RouterGroup, paymentHandler *handlers.PaymentHandler, webhookHandler *handlers.WebhookHandler) {
	payments := rg.Group(PathPayments)
	{
		payments.POST("/:provider/intents", paymentHandler.OpenIntent)
		payments.POST("/:provider/verify", paymentHandler.Verify)
		payments.GET("/orders/:order_id", paymentHandler.GetByOrder)
		payments.POST("/orders/:order_id/notify", paymentHandler.Notify)
	}

	webhooks := rg.Group(PathWebhooks)
	{
		webhooks.POST("/:provider", webhookHandler.Receive)
		webhooks.POST("/:provider/events/:event_id/replay", webhookHandler.Replay)
	}
}
