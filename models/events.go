package models

import "time"

// Order lifecycle event types published to the notifier and mirrored to
// Kafka/SNS.
const (
	EventOrderCreated    = "order_created"
	EventOrderStatus     = "order_status_updated"
	EventOrderCancelled  = "order_cancelled"
	EventPaymentFailed   = "payment_failed"
	EventRefundProcessed = "refund_processed"
)

// OrderEvent is the payload broadcast for every order lifecycle change.
// It is a UX convenience signal, not a source of truth; consumers re-fetch
// the order for authoritative state.
type OrderEvent struct {
	Type        string      `json:"type"`
	OrderID     string      `json:"order_id"`
	OrderNumber string      `json:"order_number"`
	UserID      string      `json:"user_id"`
	Status      OrderStatus `json:"status"`
	Timestamp   time.Time   `json:"timestamp"`
}
