// Package events provides the invalidation signal bus used to keep
// independently mounted inventory views in sync. A mutation publishes a
// typed, payload-free event; every subscribed view reacts by reloading its
// data. The bus is scoped to the instance that owns it; there is no
// package-level global.
package events

import "sync"

// Event identifies the kind of mutation that occurred.
type Event string

// Invalidation event kinds. Events carry no payload: they only signal that
// the corresponding collection changed and must be reloaded.
const (
	PartAdded       Event = "partAdded"
	PartUpdated     Event = "partUpdated"
	PartDeleted     Event = "partDeleted"
	SupplierAdded   Event = "supplierAdded"
	SupplierUpdated Event = "supplierUpdated"
	SupplierDeleted Event = "supplierDeleted"

	// LegacySparePartAdded is the historical alias of PartAdded. The bus
	// treats the two identically on both publish and subscribe.
	LegacySparePartAdded Event = "sparePartAdded"
)

// Bus is an instance-scoped publish/subscribe channel for invalidation
// signals. Delivery is synchronous and best-effort: a subscriber registered
// after a publish simply misses it. The zero value is not usable; create a
// Bus with NewBus.
type Bus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[Event]map[int]func()
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[Event]map[int]func())}
}

// Subscribe registers fn to run whenever ev is published and returns the
// function that removes the subscription. Callers must invoke the returned
// function when the subscribing view goes away, so that reload logic is
// never run against a dead view. The unsubscribe function is idempotent.
func (b *Bus) Subscribe(ev Event, fn func()) (unsubscribe func()) {
	ev = canonical(ev)

	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID

	if b.subs[ev] == nil {
		b.subs[ev] = make(map[int]func())
	}
	b.subs[ev][id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if handlers, ok := b.subs[ev]; ok {
			delete(handlers, id)
			if len(handlers) == 0 {
				delete(b.subs, ev)
			}
		}
	}
}

// Publish runs every handler subscribed to ev, synchronously, in
// unspecified order.
func (b *Bus) Publish(ev Event) {
	ev = canonical(ev)

	b.mu.RLock()
	handlers := make([]func(), 0, len(b.subs[ev]))
	for _, fn := range b.subs[ev] {
		handlers = append(handlers, fn)
	}
	b.mu.RUnlock()

	// Handlers run outside the lock so they may subscribe or unsubscribe.
	for _, fn := range handlers {
		fn()
	}
}

// canonical folds legacy aliases onto their current event kind.
func canonical(ev Event) Event {
	if ev == LegacySparePartAdded {
		return PartAdded
	}
	return ev
}
