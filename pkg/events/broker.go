package events

import "sync"

// Broker is a process-wide change notifier keyed by collection namespace.
// Publishing delivers synchronously to current subscribers in subscription
// order; callbacks carry no payload so observers always re-read authoritative
// state instead of trusting a possibly-stale event body. There is no queuing
// or replay: an unsubscribed observer reconciles by reloading at (re)mount.
type Broker struct {
	mu     sync.Mutex
	nextID int
	subs   map[string][]subscription
}

type subscription struct {
	id int
	fn func()
}

// NewBroker returns an empty broker.
func NewBroker() *Broker {
	return &Broker{subs: make(map[string][]subscription)}
}

// Subscribe registers fn for the namespace and returns a cancel function.
// Cancelling is idempotent and safe after the broker has published.
func (b *Broker) Subscribe(namespace string, fn func()) func() {
	if fn == nil {
		return func() {}
	}

	b.mu.Lock()
	b.nextID++
	id := b.nextID
	b.subs[namespace] = append(b.subs[namespace], subscription{id: id, fn: fn})
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		entries := b.subs[namespace]
		for i, entry := range entries {
			if entry.id == id {
				b.subs[namespace] = append(entries[:i:i], entries[i+1:]...)
				return
			}
		}
	}
}

// Publish notifies every current subscriber of the namespace.
func (b *Broker) Publish(namespace string) {
	b.mu.Lock()
	entries := make([]subscription, len(b.subs[namespace]))
	copy(entries, b.subs[namespace])
	b.mu.Unlock()

	for _, entry := range entries {
		entry.fn()
	}
}
