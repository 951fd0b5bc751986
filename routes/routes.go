package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/rashmithaRKL/cake/controllers"
	"github.com/rashmithaRKL/cake/middleware"
)

// RegisterOrderRoutes wires the order HTTP surface. The Stripe webhook sits
// outside the auth group: it is authenticated by signature, not by gateway
// headers.
func RegisterOrderRoutes(
	r *gin.Engine,
	orderController *controllers.OrderController,
	webhookController *controllers.WebhookController,
	eventsController *controllers.EventsController,
) {
	r.POST("/orders/webhook", webhookController.HandleStripeWebhook)

	orderRoutes := r.Group("/orders")
	orderRoutes.Use(middleware.AuthMiddleware())
	orderRoutes.POST("/", orderController.CreateOrder)
	orderRoutes.GET("/my-orders", orderController.GetMyOrders)
	orderRoutes.GET("/:id", orderController.GetOrderByID)
	orderRoutes.PUT("/:id/cancel", orderController.CancelOrder)
	orderRoutes.GET("/:id/events", eventsController.StreamOrderEvents)

	adminRoutes := r.Group("/admin")
	adminRoutes.Use(middleware.AuthMiddleware(), middleware.AdminOnly())
	adminRoutes.GET("/orders", orderController.GetAllOrders)
	adminRoutes.PUT("/orders/:id/status", orderController.UpdateOrderStatus)
	adminRoutes.PUT("/orders/:id/refund", orderController.RetryRefund)
	adminRoutes.GET("/orders/events", eventsController.StreamAllOrderEvents)
}
