package clock

import (
	"time"

	"github.com/julianstephens/classtimer/internal/constants"
)

// Manual is a deterministic Source for tests. Time only moves when Step or
// Advance is called, and ticks are delivered synchronously on the caller's
// goroutine.
type Manual struct {
	now  time.Time
	subs []*manualSub
}

type manualSub struct {
	clock  *Manual
	fn     func(Tick)
	active bool
}

func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	return m.now
}

func (m *Manual) Subscribe(fn func(Tick)) Subscription {
	s := &manualSub{clock: m, fn: fn, active: true}
	m.subs = append(m.subs, s)
	return s
}

func (s *manualSub) Unsubscribe() {
	if !s.active {
		return
	}
	s.active = false
	subs := s.clock.subs[:0]
	for _, other := range s.clock.subs {
		if other != s {
			subs = append(subs, other)
		}
	}
	s.clock.subs = subs
}

// Step moves time forward one tick interval and delivers one tick to every
// subscription that is still active when its turn comes.
func (m *Manual) Step() {
	m.now = m.now.Add(constants.TickInterval)
	pending := append([]*manualSub(nil), m.subs...)
	for _, s := range pending {
		if s.active {
			s.fn(Tick{At: m.now})
		}
	}
}

// Advance calls Step once per whole tick interval in d.
func (m *Manual) Advance(d time.Duration) {
	for i := time.Duration(0); i < d/constants.TickInterval; i++ {
		m.Step()
	}
}

// Subscribers reports the number of active subscriptions.
func (m *Manual) Subscribers() int {
	return len(m.subs)
}
