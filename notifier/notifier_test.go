package notifier_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rashmithaRKL/cake/models"
	"github.com/rashmithaRKL/cake/notifier"
)

func event(typ, orderID string) models.OrderEvent {
	return models.OrderEvent{
		Type:      typ,
		OrderID:   orderID,
		Status:    models.OrderStatusPending,
		Timestamp: time.Now(),
	}
}

func TestHub_PublishReachesSubscriber(t *testing.T) {
	hub := notifier.NewHub()
	topic := notifier.OrderTopic("abc")

	ch := hub.Subscribe(topic)
	defer hub.Unsubscribe(topic, ch)

	hub.Publish(topic, event(models.EventOrderStatus, "abc"))

	select {
	case evt := <-ch:
		assert.Equal(t, models.EventOrderStatus, evt.Type)
		assert.Equal(t, "abc", evt.OrderID)
	case <-time.After(time.Second):
		t.Fatal("expected event on subscriber channel")
	}
}

func TestHub_TopicsAreIsolated(t *testing.T) {
	hub := notifier.NewHub()

	orderCh := hub.Subscribe(notifier.OrderTopic("a"))
	defer hub.Unsubscribe(notifier.OrderTopic("a"), orderCh)
	broadcastCh := hub.Subscribe(notifier.BroadcastTopic)
	defer hub.Unsubscribe(notifier.BroadcastTopic, broadcastCh)

	hub.Publish(notifier.BroadcastTopic, event(models.EventOrderCreated, "b"))

	select {
	case evt := <-broadcastCh:
		assert.Equal(t, models.EventOrderCreated, evt.Type)
	case <-time.After(time.Second):
		t.Fatal("expected broadcast event")
	}

	select {
	case evt := <-orderCh:
		t.Fatalf("unexpected event on per-order topic: %+v", evt)
	default:
	}
}

func TestHub_UnsubscribeClosesChannel(t *testing.T) {
	hub := notifier.NewHub()
	topic := notifier.OrderTopic("abc")

	ch := hub.Subscribe(topic)
	hub.Unsubscribe(topic, ch)

	_, open := <-ch
	assert.False(t, open)

	// double unsubscribe must not panic
	hub.Unsubscribe(topic, ch)
}

func TestHub_PublishWithoutSubscribersDoesNotBlock(t *testing.T) {
	hub := notifier.NewHub()

	done := make(chan struct{})
	go func() {
		hub.Publish(notifier.OrderTopic("nobody"), event(models.EventOrderStatus, "nobody"))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked with no subscribers")
	}
}

func TestHub_SlowSubscriberDropsInsteadOfBlocking(t *testing.T) {
	hub := notifier.NewHub()
	topic := notifier.OrderTopic("slow")

	ch := hub.Subscribe(topic)
	defer hub.Unsubscribe(topic, ch)

	done := make(chan struct{})
	go func() {
		// Well past the subscriber buffer; excess events must be dropped.
		for i := 0; i < 100; i++ {
			hub.Publish(topic, event(models.EventOrderStatus, "slow"))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked on a stalled subscriber")
	}
	assert.LessOrEqual(t, len(ch), 16)
}
