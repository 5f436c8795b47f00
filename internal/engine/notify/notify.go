// Package notify provides the change observer registry used by the storage
// engine.
//
// Observers are zero-argument callbacks registered under a subscription
// handle. They are delivered synchronously, in registration order, on the
// goroutine that triggered the change. A Registry is not safe for concurrent
// use; it follows the single-owner discipline of the engine that holds it.
package notify

import "github.com/google/uuid"

// ID identifies a subscription within a Registry.
type ID string

// Observer is called after every successful mutation.
type Observer func()

// Subscription represents an active observer registration.
type Subscription struct {
	id       ID
	registry *Registry
}

// ID returns the subscription handle.
func (s *Subscription) ID() ID {
	return s.id
}

// Unsubscribe removes this subscription from its registry.
// Returns false if it was already removed.
func (s *Subscription) Unsubscribe() bool {
	if s == nil || s.registry == nil {
		return false
	}
	return s.registry.Unsubscribe(s.id)
}

// Registry maps subscription handles to observers and keeps their
// registration order.
type Registry struct {
	observers map[ID]Observer
	order     []ID
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		observers: make(map[ID]Observer),
	}
}

// Subscribe registers an observer and returns its subscription.
// Registering the same function twice yields two independent subscriptions.
func (r *Registry) Subscribe(observer Observer) *Subscription {
	id := ID(uuid.NewString())
	r.observers[id] = observer
	r.order = append(r.order, id)

	return &Subscription{
		id:       id,
		registry: r,
	}
}

// Unsubscribe removes an observer by handle.
func (r *Registry) Unsubscribe(id ID) bool {
	if _, ok := r.observers[id]; !ok {
		return false
	}
	delete(r.observers, id)

	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true
}

// Has reports whether id is registered.
func (r *Registry) Has(id ID) bool {
	_, ok := r.observers[id]
	return ok
}

// Len returns the number of registered observers.
func (r *Registry) Len() int {
	return len(r.order)
}

// Notify calls every registered observer in registration order.
// Observers removed by an earlier observer during the same delivery are
// skipped; observers added during delivery are first called on the next one.
func (r *Registry) Notify() {
	if len(r.order) == 0 {
		return
	}

	pending := make([]ID, len(r.order))
	copy(pending, r.order)

	for _, id := range pending {
		obs, ok := r.observers[id]
		if !ok || obs == nil {
			continue
		}
		obs()
	}
}
