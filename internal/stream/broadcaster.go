// Package stream fans player events out to websocket clients so that an
// external renderer or audio player can follow a game live.
package stream

import (
	"sync"

	"github.com/vovakirdan/mio-arcade/internal/engine"
)

// Message is one websocket payload: an event, and for frame updates the
// drawable state of that frame.
type Message struct {
	Event engine.Event     `json:"event"`
	Frame *engine.Snapshot `json:"frame,omitempty"`
}

// Subscriber receives messages.
type Subscriber chan Message

// Broadcaster delivers messages to every subscriber without blocking the
// publisher, and keeps the last few messages for late joiners.
type Broadcaster struct {
	mu          sync.RWMutex
	subscribers map[Subscriber]struct{}
	recent      []Message
	keep        int
}

// NewBroadcaster keeps up to keep recent messages.
func NewBroadcaster(keep int) *Broadcaster {
	return &Broadcaster{subscribers: make(map[Subscriber]struct{}), keep: keep}
}

// Subscribe adds a new subscriber and returns its channel.
// The channel has a buffer to prevent blocking on slow clients.
func (b *Broadcaster) Subscribe() Subscriber {
	sub, _ := b.SubscribeRecent()
	return sub
}

// SubscribeRecent is Subscribe that also returns the retained messages.
// Nothing published afterwards is in both.
func (b *Broadcaster) SubscribeRecent() (Subscriber, []Message) {
	ch := make(Subscriber, 64)
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[ch] = struct{}{}
	return ch, append([]Message(nil), b.recent...)
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *Broadcaster) Unsubscribe(sub Subscriber) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.subscribers[sub]; !ok {
		return
	}
	delete(b.subscribers, sub)
	close(sub)
}

// Publish sends m to all subscribers. If a subscriber's buffer is full the
// message is dropped for that subscriber.
func (b *Broadcaster) Publish(m Message) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.keep > 0 {
		b.recent = append(b.recent, m)
		if len(b.recent) > b.keep {
			b.recent = b.recent[len(b.recent)-b.keep:]
		}
	}
	for sub := range b.subscribers {
		select {
		case sub <- m:
		default:
		}
	}
}

// Recent returns a copy of the retained messages, oldest first.
func (b *Broadcaster) Recent() []Message {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([]Message(nil), b.recent...)
}

// SubscriberCount returns the current number of subscribers.
func (b *Broadcaster) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Attach publishes every event of p. Frame updates carry the snapshot of
// the running engine.
func (b *Broadcaster) Attach(p *engine.Player) {
	p.Listen(func(ev engine.Event) {
		m := Message{Event: ev}
		if ev.Kind == engine.EventFrameUpdate {
			if e := p.Engine(); e != nil {
				s := e.Snapshot()
				m.Frame = &s
			}
		}
		b.Publish(m)
	})
}
