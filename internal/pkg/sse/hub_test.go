package sse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_BroadcastReachesAllSubscribers(t *testing.T) {
	hub := NewHub()

	ch1, cleanup1 := hub.Subscribe()
	defer cleanup1()
	ch2, cleanup2 := hub.Subscribe()
	defer cleanup2()

	require.Equal(t, 2, hub.SubscriberCount())

	hub.Broadcast(Event{Event: "attendance_updated", Data: "payload"})

	for _, ch := range []chan Event{ch1, ch2} {
		select {
		case got := <-ch:
			assert.Equal(t, "attendance_updated", got.Event)
		case <-time.After(time.Second):
			t.Fatal("subscriber did not receive event")
		}
	}
}

func TestHub_CleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub()

	ch, cleanup := hub.Subscribe()
	cleanup()
	assert.Equal(t, 0, hub.SubscriberCount())

	// channel closed, broadcast after cleanup must not panic
	hub.Broadcast(Event{Event: "attendance_updated"})
	_, open := <-ch
	assert.False(t, open)

	// double cleanup is safe
	cleanup()
}

func TestHub_SlowSubscriberDropped(t *testing.T) {
	hub := NewHub()

	_, cleanup := hub.Subscribe()
	defer cleanup()

	// fill past the buffer; Broadcast must never block
	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.Broadcast(Event{Event: "attendance_updated", Data: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Broadcast blocked on a slow subscriber")
	}
}
