// Package notifier provides the in-process publish/subscribe channel that
// pushes order lifecycle events to connected clients (SSE streams). Delivery
// is best-effort: a slow subscriber drops events rather than blocking
// publishers, and clients reconcile by re-fetching order state over HTTP.
package notifier

import (
	"sync"

	"github.com/rashmithaRKL/cake/models"
)

// BroadcastTopic receives every new-order event (admin dashboards).
const BroadcastTopic = "orders"

// subscriberBuffer is the per-subscriber channel capacity. Events beyond
// this while the subscriber is stalled are dropped.
const subscriberBuffer = 16

// OrderTopic returns the per-order topic a tracking client subscribes to.
func OrderTopic(orderID string) string {
	return "order:" + orderID
}

// Notifier is the pub/sub surface the order service publishes through and
// the SSE controllers subscribe through.
type Notifier interface {
	Publish(topic string, event models.OrderEvent)
	Subscribe(topic string) chan models.OrderEvent
	Unsubscribe(topic string, ch chan models.OrderEvent)
}

// Hub is a process-wide Notifier backed by channels.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[chan models.OrderEvent]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan models.OrderEvent]struct{})}
}

// Publish delivers the event to every subscriber of the topic without
// blocking. Topics with no subscribers are a no-op.
func (h *Hub) Publish(topic string, event models.OrderEvent) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch := range h.subs[topic] {
		select {
		case ch <- event:
		default:
			// subscriber is stalled; drop rather than block the publisher
		}
	}
}

// Subscribe registers a new subscriber on the topic and returns its channel.
func (h *Hub) Subscribe(topic string) chan models.OrderEvent {
	ch := make(chan models.OrderEvent, subscriberBuffer)

	h.mu.Lock()
	defer h.mu.Unlock()

	if h.subs[topic] == nil {
		h.subs[topic] = make(map[chan models.OrderEvent]struct{})
	}
	h.subs[topic][ch] = struct{}{}
	return ch
}

// Unsubscribe removes the subscriber and closes its channel. Safe to call
// with a channel that was already removed.
func (h *Hub) Unsubscribe(topic string, ch chan models.OrderEvent) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if set, ok := h.subs[topic]; ok {
		if _, subscribed := set[ch]; subscribed {
			delete(set, ch)
			close(ch)
		}
		if len(set) == 0 {
			delete(h.subs, topic)
		}
	}
}
