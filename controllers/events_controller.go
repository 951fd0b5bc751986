package controllers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/rashmithaRKL/cake/middleware"
	"github.com/rashmithaRKL/cake/notifier"
	"github.com/rashmithaRKL/cake/services"
)

// EventsController streams order lifecycle events to clients over SSE.
type EventsController struct {
	orderService services.OrderService
	hub          notifier.Notifier
}

func NewEventsController(orderService services.OrderService, hub notifier.Notifier) *EventsController {
	return &EventsController{
		orderService: orderService,
		hub:          hub,
	}
}

// StreamOrderEvents streams events for a single order. Authorization matches
// order reads: owner or admin.
func (ec *EventsController) StreamOrderEvents(ctx *gin.Context) {
	principal, err := middleware.GetPrincipal(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	orderUUID, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID format"})
		return
	}

	if _, serviceErr := ec.orderService.GetOrderByID(ctx.Request.Context(), principal, orderUUID); serviceErr != nil {
		respondError(ctx, serviceErr)
		return
	}

	ec.stream(ctx, notifier.OrderTopic(orderUUID.String()))
}

// StreamAllOrderEvents streams every order event (admin dashboard feed).
func (ec *EventsController) StreamAllOrderEvents(ctx *gin.Context) {
	ec.stream(ctx, notifier.BroadcastTopic)
}

func (ec *EventsController) stream(ctx *gin.Context, topic string) {
	ch := ec.hub.Subscribe(topic)
	defer ec.hub.Unsubscribe(topic, ch)

	ctx.Writer.Header().Set("Cache-Control", "no-cache")
	ctx.Writer.Header().Set("Connection", "keep-alive")

	ctx.Stream(func(w io.Writer) bool {
		select {
		case event, ok := <-ch:
			if !ok {
				return false
			}
			ctx.SSEvent(event.Type, event)
			return true
		case <-ctx.Request.Context().Done():
			return false
		}
	})
}
