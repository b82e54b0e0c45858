package storage

import (
	"sync"

	"github.com/mmynk/messledger/internal/models"
)

// Notifier fans record collections out to subscribers.
// Stores embed it to implement Subscribe.
type Notifier struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func([]models.Record)
}

// Subscribe registers fn and returns a cancel function.
func (n *Notifier) Subscribe(fn func([]models.Record)) func() {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.subs == nil {
		n.subs = make(map[int]func([]models.Record))
	}
	id := n.nextID
	n.nextID++
	n.subs[id] = fn

	return func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		delete(n.subs, id)
	}
}

// Notify delivers records to every subscriber.
// Subscribers are called outside the lock, so they may subscribe or cancel.
func (n *Notifier) Notify(records []models.Record) {
	n.mu.Lock()
	fns := make([]func([]models.Record), 0, len(n.subs))
	for _, fn := range n.subs {
		fns = append(fns, fn)
	}
	n.mu.Unlock()

	for _, fn := range fns {
		fn(records)
	}
}

// Subscribers returns the number of active subscriptions.
func (n *Notifier) Subscribers() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs)
}
