package clock

import (
	"sync"
	"time"

	"github.com/julianstephens/classtimer/internal/constants"
)

// Dispatcher runs fn on the goroutine that owns playback state. It returns
// false if the dispatcher has shut down and fn will never run.
type Dispatcher func(fn func()) bool

// Wall is a real-time Source. A background ticker posts each tick through
// the Dispatcher; the callback itself runs on the dispatching goroutine,
// which is also where Unsubscribe must be called. A tick that was already in
// flight when Unsubscribe ran is dropped there.
type Wall struct {
	dispatch Dispatcher
}

func NewWall(dispatch Dispatcher) *Wall {
	return &Wall{dispatch: dispatch}
}

func (w *Wall) Now() time.Time {
	return time.Now()
}

type wallSub struct {
	active bool // touched only on the dispatching goroutine
	done   chan struct{}
	once   sync.Once
}

func (w *Wall) Subscribe(fn func(Tick)) Subscription {
	s := &wallSub{active: true, done: make(chan struct{})}
	ticker := time.NewTicker(constants.TickInterval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-s.done:
				return
			case t := <-ticker.C:
				ok := w.dispatch(func() {
					if s.active {
						fn(Tick{At: t})
					}
				})
				if !ok {
					return
				}
			}
		}
	}()

	return s
}

func (s *wallSub) Unsubscribe() {
	s.active = false
	s.once.Do(func() { close(s.done) })
}
