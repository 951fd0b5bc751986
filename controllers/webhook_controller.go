package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v80"
	"go.uber.org/zap"

	"github.com/rashmithaRKL/cake/services"
)

// WebhookController receives payment events from Stripe.
type WebhookController struct {
	orderService services.OrderService
	gateway      services.PaymentGateway
	logger       *zap.Logger
}

func NewWebhookController(orderService services.OrderService, gateway services.PaymentGateway, logger *zap.Logger) *WebhookController {
	return &WebhookController{
		orderService: orderService,
		gateway:      gateway,
		logger:       logger,
	}
}

// HandleStripeWebhook verifies and applies a Stripe event. A failed signature
// check is rejected before any state is touched; unhandled event types are
// acknowledged so Stripe does not redeliver them.
func (wc *WebhookController) HandleStripeWebhook(ctx *gin.Context) {
	event, err := wc.gateway.ParseWebhook(ctx.Request)
	if err != nil {
		wc.logger.Warn("Rejected webhook with invalid signature", zap.Error(err))
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid webhook signature", "code": services.CodeWebhookSignature})
		return
	}

	switch event.Type {
	case "payment_intent.succeeded":
		intent, ok := wc.parseIntent(ctx, event)
		if !ok {
			return
		}
		if serviceErr := wc.orderService.ApplyPaymentSucceeded(ctx.Request.Context(), intent.ID); serviceErr != nil {
			respondError(ctx, serviceErr)
			return
		}
	case "payment_intent.payment_failed":
		intent, ok := wc.parseIntent(ctx, event)
		if !ok {
			return
		}
		if serviceErr := wc.orderService.ApplyPaymentFailed(ctx.Request.Context(), intent.ID); serviceErr != nil {
			respondError(ctx, serviceErr)
			return
		}
	default:
		wc.logger.Debug("Ignoring unhandled webhook event", zap.String("type", string(event.Type)))
	}

	ctx.JSON(http.StatusOK, gin.H{"status": "received"})
}

func (wc *WebhookController) parseIntent(ctx *gin.Context, event stripe.Event) (*stripe.PaymentIntent, bool) {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		wc.logger.Error("Failed to decode payment intent from webhook",
			zap.String("type", string(event.Type)),
			zap.Error(err),
		)
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Malformed event payload", "code": services.CodeValidation})
		return nil, false
	}
	return &intent, true
}
