package sse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHub_PublishReachesOnlyThatClass(t *testing.T) {
	hub := NewHub()
	a, cleanupA := hub.Subscribe("CS101")
	defer cleanupA()
	b, cleanupB := hub.Subscribe("CS202")
	defer cleanupB()

	hub.Publish("CS101", Event{Event: EventSnapshot, Data: 1})

	require.Len(t, a, 1)
	got := <-a
	assert.Equal(t, "CS101", got.ClassCode)
	assert.Equal(t, EventSnapshot, got.Event)
	assert.Equal(t, 1, got.Data)
	assert.Len(t, b, 0)
}

func TestHub_FullSubscriberDoesNotBlock(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe("CS101")
	defer cleanup()

	for i := 0; i < subscriberBuffer+5; i++ {
		hub.Publish("CS101", Event{Event: EventSnapshot, Data: i})
	}

	assert.Len(t, ch, subscriberBuffer)
	assert.Equal(t, 0, (<-ch).Data)
}

func TestHub_CleanupRemovesSubscriber(t *testing.T) {
	hub := NewHub()
	ch, cleanup := hub.Subscribe("CS101")
	_, other := hub.Subscribe("CS202")
	defer other()

	assert.Equal(t, 1, hub.SubscriberCount("CS101"))
	assert.Equal(t, 2, hub.TotalSubscribers())

	cleanup()
	cleanup()

	_, open := <-ch
	assert.False(t, open)
	assert.Equal(t, 0, hub.SubscriberCount("CS101"))
	assert.Equal(t, 1, hub.TotalSubscribers())
	assert.NotPanics(t, func() { hub.Publish("CS101", Event{Event: EventSnapshot}) })
}
