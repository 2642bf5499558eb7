// Package events carries change notifications from the ledgers to
// dependent views (dashboard, admin console) so they refresh without
// polling the store.
package events

import (
	"sync"
	"time"
)

type Kind string

const (
	KindProduct  Kind = "product"
	KindCart     Kind = "cart"
	KindWishlist Kind = "wishlist"
	KindOrder    Kind = "order"
	KindUser     Kind = "user"
)

// Change describes one committed ledger mutation. Ref is the mutated
// record's identifier (product id, order number, user id).
type Change struct {
	Kind   Kind
	UserID string
	Ref    string
	At     time.Time
}

type subscriber struct {
	ch    chan Change
	kinds map[Kind]bool // empty means all kinds
}

// Bus is an in-process publish/subscribe signal. Publish never blocks;
// a subscriber that falls behind misses changes and re-reads the ledger.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]*subscriber
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]*subscriber)}
}

// Subscribe registers interest in the given kinds (all kinds when none
// are given) and returns the change channel plus a cancel function.
func (b *Bus) Subscribe(kinds ...Kind) (<-chan Change, func()) {
	sub := &subscriber{
		ch:    make(chan Change, 16),
		kinds: make(map[Kind]bool, len(kinds)),
	}
	for _, k := range kinds {
		sub.kinds[k] = true
	}

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = sub
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if s, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(s.ch)
		}
		b.mu.Unlock()
	}
	return sub.ch, cancel
}

// Publish fans the change out to matching subscribers.
func (b *Bus) Publish(c Change) {
	if c.At.IsZero() {
		c.At = time.Now()
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for _, sub := range b.subs {
		if len(sub.kinds) > 0 && !sub.kinds[c.Kind] {
			continue
		}
		select {
		case sub.ch <- c:
		default:
		}
	}
}
