package models

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderStatus is the workflow state of an order. It is the single source of
// truth for the order lifecycle; all mutations go through the transition table
// below.
type OrderStatus string

const (
	OrderStatusPending        OrderStatus = "pending"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusReady          OrderStatus = "ready"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// validTransitions encodes the order state machine. Orders move forward
// through fulfilment, or to cancelled from the two early states. Delivered
// and cancelled are terminal.
var validTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:        {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:      {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing:      {OrderStatusReady},
	OrderStatusReady:          {OrderStatusOutForDelivery},
	OrderStatusOutForDelivery: {OrderStatusDelivered},
	OrderStatusDelivered:      {},
	OrderStatusCancelled:      {},
}

// IsValid reports whether s is a known order status.
func (s OrderStatus) IsValid() bool {
	_, ok := validTransitions[s]
	return ok
}

// IsTerminal reports whether no further transitions are allowed from s.
func (s OrderStatus) IsTerminal() bool {
	return len(validTransitions[s]) == 0 && s.IsValid()
}

// CanTransitionTo reports whether moving from s to next is a legal transition.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// PaymentStatus tracks the state of the payment attached to an order.
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// RefundStatus tracks the outcome of a refund issued on cancellation.
// Empty means no refund was needed.
type RefundStatus string

const (
	RefundStatusPending   RefundStatus = "pending"
	RefundStatusProcessed RefundStatus = "processed"
	RefundStatusFailed    RefundStatus = "failed"
)

// DeliveryType selects between in-store pickup and home delivery.
type DeliveryType string

const (
	DeliveryTypePickup   DeliveryType = "pickup"
	DeliveryTypeDelivery DeliveryType = "delivery"
)

// ItemCustomizations carries the bakery-specific options for a single line
// item (flavor, frosting, cake message and so on).
type ItemCustomizations struct {
	Flavor              string   `json:"flavor,omitempty"`
	Frosting            string   `json:"frosting,omitempty"`
	Toppings            []string `json:"toppings,omitempty"`
	Decorations         []string `json:"decorations,omitempty"`
	Message             string   `json:"message,omitempty"`
	SpecialInstructions string   `json:"special_instructions,omitempty"`
}

// OrderItem is a line item with the unit price captured at order time.
// The price is an immutable snapshot; later catalog price changes never
// affect an existing order.
type OrderItem struct {
	ID             uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID        uuid.UUID          `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID      uuid.UUID          `gorm:"type:uuid;not null" json:"product_id"`
	ProductName    string             `gorm:"type:varchar(100);not null" json:"product_name"`
	Quantity       int                `gorm:"not null" json:"quantity"`
	Price          float64            `gorm:"not null" json:"price"`
	Customizations ItemCustomizations `gorm:"serializer:json" json:"customizations"`
}

// Address is a shipping or billing address.
type Address struct {
	Label   string `gorm:"type:varchar(10)" json:"label"` // home | work | other
	Street  string `gorm:"type:varchar(255)" json:"street"`
	City    string `gorm:"type:varchar(100)" json:"city"`
	State   string `gorm:"type:varchar(100)" json:"state"`
	ZipCode string `gorm:"type:varchar(20)" json:"zip_code"`
	Country string `gorm:"type:varchar(100)" json:"country"`
}

// Pricing is the derived money breakdown of an order. All values are USD
// rounded to cents and satisfy total = subtotal + tax + delivery_fee - discount.
type Pricing struct {
	Subtotal    float64 `json:"subtotal"`
	Tax         float64 `json:"tax"`
	DeliveryFee float64 `json:"delivery_fee"`
	Discount    float64 `json:"discount"`
	Total       float64 `json:"total"`
}

// PaymentInfo tracks the external payment attempt attached to the order.
type PaymentInfo struct {
	Method        string        `gorm:"type:varchar(20)" json:"method"` // stripe | paypal
	TransactionID string        `gorm:"type:varchar(255);index" json:"transaction_id"`
	Status        PaymentStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	Amount        float64       `json:"amount"`
	Currency      string        `gorm:"type:varchar(10);default:'usd'" json:"currency"`
	PaidAt        *time.Time    `json:"paid_at,omitempty"`
}

// StatusHistoryEntry is one entry of the append-only audit trail.
type StatusHistoryEntry struct {
	Status    OrderStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	Note      string      `json:"note,omitempty"`
	UpdatedBy string      `json:"updated_by,omitempty"`
}

// TrackingInfo is carrier tracking data for delivery orders.
type TrackingInfo struct {
	Carrier               string     `json:"carrier,omitempty"`
	TrackingNumber        string     `json:"tracking_number,omitempty"`
	EstimatedDeliveryTime *time.Time `json:"estimated_delivery_time,omitempty"`
	CurrentLocation       string     `json:"current_location,omitempty"`
	Status                string     `json:"status,omitempty"`
}

// Delivery holds the fulfilment preferences and outcome for the order.
type Delivery struct {
	Type               DeliveryType `gorm:"type:varchar(10)" json:"type"`
	PreferredDate      time.Time    `gorm:"index" json:"preferred_date"`
	PreferredTimeSlot  string       `gorm:"type:varchar(50)" json:"preferred_time_slot"`
	ActualDeliveryDate *time.Time   `json:"actual_delivery_date,omitempty"`
	TrackingInfo       TrackingInfo `gorm:"serializer:json" json:"tracking_info"`
	DeliveryFee        float64      `json:"delivery_fee"`
}

// GiftOptions marks an order as a gift.
type GiftOptions struct {
	IsGift       bool   `json:"is_gift"`
	GiftMessage  string `gorm:"type:varchar(500)" json:"gift_message,omitempty"`
	GiftWrapping bool   `json:"gift_wrapping"`
}

// Cancellation records why and by whom an order was cancelled, and how the
// refund went. RefundStatus stays empty when no payment had completed.
type Cancellation struct {
	IsCancelled  bool         `json:"is_cancelled"`
	Reason       string       `gorm:"type:varchar(500)" json:"reason,omitempty"`
	CancelledAt  *time.Time   `json:"cancelled_at,omitempty"`
	CancelledBy  string       `gorm:"type:varchar(64)" json:"cancelled_by,omitempty"`
	RefundStatus RefundStatus `gorm:"type:varchar(20)" json:"refund_status,omitempty"`
}

// Order is the central aggregate: line items, pricing breakdown, payment
// state, delivery info and the status audit trail. Orders are never deleted;
// delivered and cancelled are terminal states.
type Order struct {
	ID              uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	OrderNumber     string      `gorm:"type:varchar(16);uniqueIndex;not null" json:"order_number"`
	UserID          uuid.UUID   `gorm:"type:uuid;not null;index:idx_orders_user_created,priority:1" json:"user_id"`
	Items           []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	ShippingAddress Address     `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`
	BillingAddress  Address     `gorm:"embedded;embeddedPrefix:billing_" json:"billing_address"`
	PaymentInfo     PaymentInfo `gorm:"embedded;embeddedPrefix:payment_" json:"payment_info"`
	OrderStatus     OrderStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"order_status"`

	// StatusHistory is append-only; entries are never mutated after append.
	StatusHistory []StatusHistoryEntry `gorm:"serializer:json" json:"status_history"`

	Delivery            Delivery     `gorm:"embedded;embeddedPrefix:delivery_" json:"delivery"`
	Pricing             Pricing      `gorm:"embedded;embeddedPrefix:pricing_" json:"pricing"`
	SpecialInstructions string       `gorm:"type:varchar(1000)" json:"special_instructions,omitempty"`
	GiftOptions         GiftOptions  `gorm:"embedded;embeddedPrefix:gift_" json:"gift_options"`
	Cancellation        Cancellation `gorm:"embedded;embeddedPrefix:cancellation_" json:"cancellation"`

	// Version guards concurrent writers (cancellation racing a webhook);
	// saves are compare-and-swap on this field.
	Version int `gorm:"not null;default:1" json:"-"`

	CreatedAt time.Time      `gorm:"autoCreateTime;index:idx_orders_user_created,priority:2" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// AppendStatus appends an audit entry and sets the current status. It does
// not validate the transition; callers check CanTransitionTo first.
func (o *Order) AppendStatus(status OrderStatus, note, updatedBy string, at time.Time) {
	o.OrderStatus = status
	o.StatusHistory = append(o.StatusHistory, StatusHistoryEntry{
		Status:    status,
		Timestamp: at,
		Note:      note,
		UpdatedBy: updatedBy,
	})
}

// IsCancellable reports whether the order may still be cancelled.
func (o *Order) IsCancellable() bool {
	return o.OrderStatus == OrderStatusPending || o.OrderStatus == OrderStatusConfirmed
}

// RoundCents rounds a dollar amount to two decimal places.
func RoundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

// AmountCents converts a dollar amount to an integer cent amount for the
// payment gateway.
func AmountCents(v float64) int64 {
	return int64(math.Round(v * 100))
}

// TaxRate is the flat sales tax applied to the item subtotal.
const TaxRate = 0.08

// CalculatePricing derives the money breakdown from line items and fee
// inputs. Pure function; recomputing on the same inputs always yields the
// same breakdown.
func CalculatePricing(items []OrderItem, deliveryFee, discount float64) Pricing {
	subtotal := 0.0
	for _, item := range items {
		subtotal += item.Price * float64(item.Quantity)
	}
	subtotal = RoundCents(subtotal)
	tax := RoundCents(subtotal * TaxRate)
	deliveryFee = RoundCents(deliveryFee)
	discount = RoundCents(discount)

	return Pricing{
		Subtotal:    subtotal,
		Tax:         tax,
		DeliveryFee: deliveryFee,
		Discount:    discount,
		Total:       RoundCents(subtotal + tax + deliveryFee - discount),
	}
}
