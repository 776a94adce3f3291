package tracker

import (
	"sync"

	"github.com/google/uuid"
)

// Notifier is a fire-and-forget broadcast channel for "tracking changed"
// signals. Delivery is synchronous and happens after the mutation is
// committed, so an observer re-reading derived views always sees the new
// state. There is no payload.
type Notifier struct {
	mu   sync.Mutex
	subs []subscriber
}

type subscriber struct {
	id uuid.UUID
	fn func()
}

// NewNotifier returns an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Subscribe registers fn and returns its unsubscribe handle. Unsubscribing
// twice is harmless.
func (n *Notifier) Subscribe(fn func()) func() {
	n.mu.Lock()
	defer n.mu.Unlock()

	id := uuid.New()
	n.subs = append(n.subs, subscriber{id: id, fn: fn})

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		for i, s := range n.subs {
			if s.id == id {
				n.subs = append(n.subs[:i], n.subs[i+1:]...)
				return
			}
		}
	}
}

// Notify invokes every current subscriber in subscription order. The
// notifier does not wait on anything the subscribers start.
func (n *Notifier) Notify() {
	n.mu.Lock()
	subs := make([]subscriber, len(n.subs))
	copy(subs, n.subs)
	n.mu.Unlock()

	for _, s := range subs {
		s.fn()
	}
}
