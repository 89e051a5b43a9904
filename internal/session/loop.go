// Package session wires a Sequencer to the rest of the program: a
// single-goroutine event loop for headless playback, a logging listener,
// and the mapping from stored settings to playback policies.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/julianstephens/classtimer/internal/clock"
)

// ErrStopped is returned by Run after Stop.
var ErrStopped = errors.New("session loop stopped")

// Loop runs posted functions one at a time on the goroutine that called Run.
// It is the owner goroutine a Sequencer needs outside bubbletea: clock ticks
// and user commands are both posted here, so they never overlap.
type Loop struct {
	events chan func()
	done   chan struct{}
	once   sync.Once
}

func NewLoop() *Loop {
	return &Loop{
		events: make(chan func(), 16),
		done:   make(chan struct{}),
	}
}

// Post queues fn. It returns false once the loop has stopped.
func (l *Loop) Post(fn func()) bool {
	select {
	case <-l.done:
		return false
	default:
	}
	select {
	case l.events <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Dispatcher adapts Post for clock.NewWall.
func (l *Loop) Dispatcher() clock.Dispatcher {
	return l.Post
}

// Run executes posted functions until ctx is cancelled or Stop is called.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			l.Stop()
			return ctx.Err()
		case <-l.done:
			return ErrStopped
		case fn := <-l.events:
			fn()
		}
	}
}

// Stop ends Run. Functions still queued are discarded. Safe to call from
// any goroutine, including from inside a posted function.
func (l *Loop) Stop() {
	l.once.Do(func() { close(l.done) })
}

// Done is closed once the loop has stopped.
func (l *Loop) Done() <-chan struct{} {
	return l.done
}
