// Package clock supplies the one-second ticks that drive playback.
//
// A Source delivers ticks only while subscribed. Unsubscribe is the sole way
// to cancel: once it returns, the subscription's callback is never invoked
// again. Every implementation calls callbacks on the goroutine that owns the
// subscriber, so subscribers need no locking.
package clock

import "time"

// Tick is one delivered clock tick.
type Tick struct {
	At time.Time
}

// Source is a 1 Hz tick supplier plus a wall-clock reading.
type Source interface {
	Now() time.Time
	Subscribe(fn func(Tick)) Subscription
}

// Subscription is an active tick delivery.
type Subscription interface {
	Unsubscribe()
}
