package sse

import (
	"sync"
)

// Event names
const (
	EventSnapshot = "snapshot"
	EventPing     = "ping"
)

// subscriberBuffer is the per-subscriber channel capacity; a full subscriber misses events
const subscriberBuffer = 10

// Event is a message fanned out to the subscribers of one class
type Event struct {
	ClassCode string
	Event     string
	Data      interface{}
}

// Hub manages stream subscribers and event broadcasting, keyed by class code
type Hub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan Event]struct{}
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[string]map[chan Event]struct{}),
	}
}

// Subscribe registers a new subscriber for a class and returns the event channel and cleanup function.
// The cleanup function is safe to call more than once.
func (h *Hub) Subscribe(classCode string) (chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan Event, subscriberBuffer)

	if h.subscribers[classCode] == nil {
		h.subscribers[classCode] = make(map[chan Event]struct{})
	}
	h.subscribers[classCode][ch] = struct{}{}

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subscribers[classCode], ch)
			close(ch)
			if len(h.subscribers[classCode]) == 0 {
				delete(h.subscribers, classCode)
			}
		})
	}

	return ch, cleanup
}

// Publish sends an event to all subscribers of a class
func (h *Hub) Publish(classCode string, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	event.ClassCode = classCode
	if subs, ok := h.subscribers[classCode]; ok {
		for ch := range subs {
			select {
			case ch <- event:
			default:
				// Skip if channel is full (non-blocking to prevent deadlock)
			}
		}
	}
}

// SubscriberCount returns the number of active subscribers for a class
func (h *Hub) SubscriberCount(classCode string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if subs, ok := h.subscribers[classCode]; ok {
		return len(subs)
	}
	return 0
}

// TotalSubscribers returns the total number of active subscribers across all classes
func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	total := 0
	for _, subs := range h.subscribers {
		total += len(subs)
	}
	return total
}
