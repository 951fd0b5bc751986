package models_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rashmithaRKL/cake/models"
)

func TestCalculatePricing(t *testing.T) {
	items := []models.OrderItem{
		{Price: 20.00, Quantity: 2},
	}

	pricing := models.CalculatePricing(items, 10.00, 0)

	assert.Equal(t, 40.00, pricing.Subtotal)
	assert.Equal(t, 3.20, pricing.Tax)
	assert.Equal(t, 10.00, pricing.DeliveryFee)
	assert.Equal(t, 0.00, pricing.Discount)
	assert.Equal(t, 53.20, pricing.Total)
}

func TestCalculatePricing_RoundsToCents(t *testing.T) {
	// 3 x 3.33 = 9.99, tax 0.7992 -> 0.80
	items := []models.OrderItem{
		{Price: 3.33, Quantity: 3},
	}

	pricing := models.CalculatePricing(items, 0, 0)

	assert.Equal(t, 9.99, pricing.Subtotal)
	assert.Equal(t, 0.80, pricing.Tax)
	assert.Equal(t, 10.79, pricing.Total)
}

func TestCalculatePricing_DiscountReducesTotal(t *testing.T) {
	items := []models.OrderItem{
		{Price: 50.00, Quantity: 1},
	}

	pricing := models.CalculatePricing(items, 10.00, 5.00)

	assert.Equal(t, 50.00, pricing.Subtotal)
	assert.Equal(t, 4.00, pricing.Tax)
	assert.Equal(t, 59.00, pricing.Total)
}

func TestAmountCents(t *testing.T) {
	assert.Equal(t, int64(5320), models.AmountCents(53.20))
	assert.Equal(t, int64(1), models.AmountCents(0.01))
	assert.Equal(t, int64(100), models.AmountCents(0.999))
}

func TestOrderStatusTransitions(t *testing.T) {
	cases := []struct {
		from    models.OrderStatus
		to      models.OrderStatus
		allowed bool
	}{
		{models.OrderStatusPending, models.OrderStatusConfirmed, true},
		{models.OrderStatusPending, models.OrderStatusCancelled, true},
		{models.OrderStatusPending, models.OrderStatusDelivered, false},
		{models.OrderStatusConfirmed, models.OrderStatusPreparing, true},
		{models.OrderStatusConfirmed, models.OrderStatusCancelled, true},
		{models.OrderStatusPreparing, models.OrderStatusReady, true},
		{models.OrderStatusPreparing, models.OrderStatusCancelled, false},
		{models.OrderStatusReady, models.OrderStatusOutForDelivery, true},
		{models.OrderStatusOutForDelivery, models.OrderStatusDelivered, true},
		{models.OrderStatusDelivered, models.OrderStatusCancelled, false},
		{models.OrderStatusCancelled, models.OrderStatusPending, false},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestOrderStatusTerminal(t *testing.T) {
	assert.True(t, models.OrderStatusDelivered.IsTerminal())
	assert.True(t, models.OrderStatusCancelled.IsTerminal())
	assert.False(t, models.OrderStatusPending.IsTerminal())
	assert.False(t, models.OrderStatusOutForDelivery.IsTerminal())
}

func TestOrderStatusIsValid(t *testing.T) {
	assert.True(t, models.OrderStatusPreparing.IsValid())
	assert.False(t, models.OrderStatus("shipped").IsValid())
}

func TestIsCancellable(t *testing.T) {
	order := &models.Order{OrderStatus: models.OrderStatusPending}
	assert.True(t, order.IsCancellable())

	order.OrderStatus = models.OrderStatusConfirmed
	assert.True(t, order.IsCancellable())

	order.OrderStatus = models.OrderStatusPreparing
	assert.False(t, order.IsCancellable())
}

func TestAppendStatus(t *testing.T) {
	order := &models.Order{OrderStatus: models.OrderStatusPending}
	at := time.Now()

	order.AppendStatus(models.OrderStatusConfirmed, "Payment received", "stripe", at)

	assert.Equal(t, models.OrderStatusConfirmed, order.OrderStatus)
	assert.Len(t, order.StatusHistory, 1)
	assert.Equal(t, "Payment received", order.StatusHistory[0].Note)
	assert.Equal(t, "stripe", order.StatusHistory[0].UpdatedBy)
	assert.Equal(t, at, order.StatusHistory[0].Timestamp)
}
