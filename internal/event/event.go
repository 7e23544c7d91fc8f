package event

import (
	"github.com/google/uuid"
)

// Handler receives a fired value.
type Handler[T any] func(T)

// SubscriptionState represents the state of a subscription.
type SubscriptionState int32

const (
	// SubscriptionStateActive means the subscription is receiving events.
	SubscriptionStateActive SubscriptionState = iota

	// SubscriptionStatePaused means the subscription is temporarily not receiving events.
	SubscriptionStatePaused

	// SubscriptionStateCancelled means the subscription has been permanently cancelled.
	SubscriptionStateCancelled
)

// String returns a human-readable state name.
func (s SubscriptionState) String() string {
	switch s {
	case SubscriptionStateActive:
		return "active"
	case SubscriptionStatePaused:
		return "paused"
	case SubscriptionStateCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Subscription is a handle to a registered handler.
type Subscription struct {
	id    string
	state *SubscriptionState
}

// ID returns the unique subscription identifier.
func (s Subscription) ID() string {
	return s.id
}

// State returns the current subscription state.
func (s Subscription) State() SubscriptionState {
	if s.state == nil {
		return SubscriptionStateCancelled
	}
	return *s.state
}

// IsActive returns true if the subscription can receive events.
func (s Subscription) IsActive() bool {
	return s.State() == SubscriptionStateActive
}

// Pause temporarily stops delivery to this subscription.
func (s Subscription) Pause() {
	if s.state != nil && *s.state == SubscriptionStateActive {
		*s.state = SubscriptionStatePaused
	}
}

// Resume restarts delivery after a pause.
func (s Subscription) Resume() {
	if s.state != nil && *s.state == SubscriptionStatePaused {
		*s.state = SubscriptionStateActive
	}
}

// Cancel permanently cancels the subscription. The owning Event drops
// cancelled entries on its next Fire.
func (s Subscription) Cancel() {
	if s.state != nil {
		*s.state = SubscriptionStateCancelled
	}
}

type entry[T any] struct {
	sub     Subscription
	handler Handler[T]
	once    bool
}

// Event is an ordered list of handlers for values of type T.
// The zero value is ready to use.
type Event[T any] struct {
	entries []entry[T]
	firing  int
}

// Subscribe appends a handler and returns its subscription.
// A nil handler is ignored and yields a cancelled subscription.
func (e *Event[T]) Subscribe(handler Handler[T]) Subscription {
	return e.add(handler, false)
}

// SubscribeOnce appends a handler that is cancelled after its first delivery.
func (e *Event[T]) SubscribeOnce(handler Handler[T]) Subscription {
	return e.add(handler, true)
}

func (e *Event[T]) add(handler Handler[T], once bool) Subscription {
	if handler == nil {
		return Subscription{}
	}
	state := SubscriptionStateActive
	sub := Subscription{id: uuid.New().String(), state: &state}
	e.entries = append(e.entries, entry[T]{sub: sub, handler: handler, once: once})
	return sub
}

// Unsubscribe removes a subscription.
func (e *Event[T]) Unsubscribe(sub Subscription) error {
	if sub.id == "" {
		return ErrSubscriptionNotFound
	}
	for _, en := range e.entries {
		if en.sub.id == sub.id && en.sub.State() != SubscriptionStateCancelled {
			en.sub.Cancel()
			if e.firing == 0 {
				e.compact()
			}
			return nil
		}
	}
	return ErrSubscriptionNotFound
}

// Fire delivers v to every active handler in subscription order.
// Handlers subscribed during Fire are not called for this value.
func (e *Event[T]) Fire(v T) {
	e.firing++
	defer func() {
		e.firing--
		if e.firing == 0 {
			e.compact()
		}
	}()

	n := len(e.entries)
	for i := 0; i < n && i < len(e.entries); i++ {
		en := e.entries[i]
		if en.sub.State() != SubscriptionStateActive {
			continue
		}
		if en.once {
			en.sub.Cancel()
		}
		en.handler(v)
	}
}

// Len returns the number of subscriptions that have not been cancelled.
func (e *Event[T]) Len() int {
	count := 0
	for _, en := range e.entries {
		if en.sub.State() != SubscriptionStateCancelled {
			count++
		}
	}
	return count
}

// Clear cancels and removes every subscription.
func (e *Event[T]) Clear() {
	for _, en := range e.entries {
		en.sub.Cancel()
	}
	if e.firing == 0 {
		e.entries = nil
	}
}

func (e *Event[T]) compact() {
	kept := e.entries[:0]
	for _, en := range e.entries {
		if en.sub.State() != SubscriptionStateCancelled {
			kept = append(kept, en)
		}
	}
	for i := len(kept); i < len(e.entries); i++ {
		e.entries[i] = entry[T]{}
	}
	e.entries = kept
}
