// Package bus provides a small in-process publish/subscribe channel used to
// pass events between the integration core and its collaborators (for example
// notifying the cart owner that an order was submitted). It replaces implicit
// global bridges with an injected dependency so control flow stays traceable.
package bus

import "sync"

// TopicOrderSubmitted is published after a checkout negotiation succeeds.
// The payload is the server-assigned order id (empty when the server did not
// return one).
const TopicOrderSubmitted = "order.submitted"

// Event is a published message on a topic.
type Event struct {
	Topic   string
	Payload any
}

// Handler consumes events for a topic. Handlers run synchronously on the
// publisher's goroutine and must not block.
type Handler func(Event)

// Bus dispatches events to subscribed handlers by topic.
// The zero value is not usable; create instances with New.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
}

// New creates an empty Bus.
func New() *Bus {
	return &Bus{handlers: make(map[string][]Handler)}
}

// Subscribe registers a handler for a topic. There is no unsubscribe; the bus
// lives for the process lifetime and subscriptions are made at composition time.
func (b *Bus) Subscribe(topic string, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[topic] = append(b.handlers[topic], h)
}

// Publish delivers the event to every handler subscribed to its topic,
// in subscription order.
func (b *Bus) Publish(topic string, payload any) {
	b.mu.RLock()
	handlers := b.handlers[topic]
	b.mu.RUnlock()

	for _, h := range handlers {
		h(Event{Topic: topic, Payload: payload})
	}
}
