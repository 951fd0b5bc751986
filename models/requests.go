package models

import (
	"time"

	"github.com/google/uuid"
)

// Principal is the authenticated identity injected by the API gateway.
type Principal struct {
	ID   string
	Role string
}

// IsAdmin reports whether the principal has administrative capability.
func (p Principal) IsAdmin() bool {
	return p.Role == "admin"
}

// CreateOrderItemRequest is a single line of a checkout submission.
type CreateOrderItemRequest struct {
	ProductID      uuid.UUID          `json:"product_id" binding:"required"`
	Quantity       int                `json:"quantity" binding:"required,min=1"`
	Customizations ItemCustomizations `json:"customizations"`
}

// DeliveryRequest carries the fulfilment preferences of a checkout.
type DeliveryRequest struct {
	Type              DeliveryType `json:"type" binding:"required,oneof=pickup delivery"`
	PreferredDate     time.Time    `json:"preferred_date" binding:"required"`
	PreferredTimeSlot string       `json:"preferred_time_slot" binding:"required"`
}

// CreateOrderRequest is the checkout payload.
type CreateOrderRequest struct {
	Items               []CreateOrderItemRequest `json:"items" binding:"required,min=1,dive"`
	ShippingAddress     Address                  `json:"shipping_address" binding:"required"`
	BillingAddress      Address                  `json:"billing_address" binding:"required"`
	PaymentMethod       string                   `json:"payment_method" binding:"required,oneof=stripe paypal"`
	Delivery            DeliveryRequest          `json:"delivery" binding:"required"`
	SpecialInstructions string                   `json:"special_instructions"`
	GiftOptions         GiftOptions              `json:"gift_options"`
}

// UpdateStatusRequest advances an order through the fulfilment workflow.
type UpdateStatusRequest struct {
	Status OrderStatus `json:"status" binding:"required"`
	Note   string      `json:"note"`
}

// CancelOrderRequest carries the customer's cancellation reason.
type CancelOrderRequest struct {
	Reason string `json:"reason"`
}

// OrderFilters narrows admin order listings.
type OrderFilters struct {
	Status    OrderStatus
	StartDate *time.Time
	EndDate   *time.Time
	Search    string // order number substring
}

// MetaData describes a page of results.
type MetaData struct {
	Page        int   `json:"page"`
	Limit       int   `json:"limit"`
	TotalOrders int64 `json:"total_orders"`
	TotalPages  int64 `json:"total_pages"`
	HasMore     bool  `json:"has_more"`
}

// OrderListResponse is a paginated list of orders.
type OrderListResponse struct {
	Orders []Order  `json:"orders"`
	Meta   MetaData `json:"meta"`
}
