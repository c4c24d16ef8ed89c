// Package events is an in-process fan-out bus between the search
// coordinator and its consumers (progress bar, event log). Delivery is
// non-blocking: a subscriber that falls behind loses events rather than
// stalling the search.
package events

import "sync"

type Event struct {
	Name    string
	Payload any
}

type Broker struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

func NewBroker() *Broker {
	return &Broker{subs: make(map[chan Event]struct{})}
}

func (b *Broker) Subscribe() chan Event {
	ch := make(chan Event, 64)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Broker) Unsubscribe(ch chan Event) {
	b.mu.Lock()
	_, ok := b.subs[ch]
	delete(b.subs, ch)
	b.mu.Unlock()
	if ok {
		close(ch)
	}
}

// Emit implements domain.Emitter.
func (b *Broker) Emit(event string, payload any) {
	msg := Event{Name: event, Payload: payload}
	b.mu.Lock()
	for ch := range b.subs {
		select {
		case ch <- msg:
		default:
		}
	}
	b.mu.Unlock()
}

// Close unsubscribes everyone.
func (b *Broker) Close() {
	b.mu.Lock()
	subs := b.subs
	b.subs = make(map[chan Event]struct{})
	b.mu.Unlock()
	for ch := range subs {
		close(ch)
	}
}
