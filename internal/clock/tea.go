package clock

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/classtimer/internal/constants"
)

// TickMsg carries a tick through the bubbletea event loop. The generation
// identifies which subscription scheduled it.
type TickMsg struct {
	gen uint64
	At  time.Time
}

// Tea is a Source driven by a bubbletea program. Subscribing does not start
// a goroutine; the owning model must return Cmd() from Update so the next
// tick is scheduled, and pass every TickMsg back to Handle. Ticks from an
// earlier subscription are ignored, so a pause followed by a quick resume
// never consumes a stale tick.
type Tea struct {
	now     func() time.Time
	gen     uint64
	fn      func(Tick)
	pending uint64 // generation of the tick currently in flight, 0 if none
}

func NewTea() *Tea {
	return &Tea{now: time.Now}
}

func (c *Tea) Now() time.Time {
	return c.now()
}

type teaSub struct {
	clock *Tea
	gen   uint64
}

func (c *Tea) Subscribe(fn func(Tick)) Subscription {
	c.gen++
	c.fn = fn
	return &teaSub{clock: c, gen: c.gen}
}

func (s *teaSub) Unsubscribe() {
	if s.clock.gen != s.gen {
		return
	}
	s.clock.fn = nil
	s.clock.gen++
}

// Cmd schedules the next tick for the active subscription, or returns nil
// when nothing is subscribed or a tick is already in flight for it.
func (c *Tea) Cmd() tea.Cmd {
	if c.fn == nil || c.pending == c.gen {
		return nil
	}
	gen := c.gen
	c.pending = gen
	return tea.Tick(constants.TickInterval, func(t time.Time) tea.Msg {
		return TickMsg{gen: gen, At: t}
	})
}

// Handle delivers msg to the active subscription if it belongs to it.
func (c *Tea) Handle(msg TickMsg) {
	if msg.gen == c.pending {
		c.pending = 0
	}
	if msg.gen == c.gen && c.fn != nil {
		c.fn(Tick{At: msg.At})
	}
}
