// Package event provides ordered, synchronous observer lists.
//
// An Event[T] keeps its subscribers in subscription order and delivers every
// fired value to each active subscriber on the caller's goroutine before Fire
// returns. There is no buffering and no topic matching: each gesture
// recognizer, scroll frame or focus tree owns the events it fires, and only
// the handlers registered on that instance see them.
//
// # Basic Usage
//
//	var changed event.Event[view.ID]
//	sub := changed.Subscribe(func(id view.ID) {
//	    log.Printf("focus moved to %d", id)
//	})
//	changed.Fire(42)
//	_ = changed.Unsubscribe(sub)
//
// # Subscription Lifecycle
//
// A Subscription may be paused and resumed, or cancelled permanently.
// SubscribeOnce registers a handler that cancels itself after its first
// delivery.
//
// # Thread Safety
//
// Event is not safe for concurrent use. All subscriptions and fires happen on
// the UI goroutine that drives the frame loop.
package event
