package clock

import (
	"testing"
	"time"
)

func TestManual_StepDeliversToActiveSubscriptions(t *testing.T) {
	start := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	m := NewManual(start)

	var a, b int
	subA := m.Subscribe(func(Tick) { a++ })
	m.Subscribe(func(Tick) { b++ })

	m.Step()
	subA.Unsubscribe()
	m.Advance(3 * time.Second)

	if a != 1 {
		t.Errorf("unsubscribed callback ran %d times, want 1", a)
	}
	if b != 4 {
		t.Errorf("active callback ran %d times, want 4", b)
	}
	if got := m.Now(); !got.Equal(start.Add(4 * time.Second)) {
		t.Errorf("Now() = %v, want %v", got, start.Add(4*time.Second))
	}
	if m.Subscribers() != 1 {
		t.Errorf("Subscribers() = %d, want 1", m.Subscribers())
	}
}

func TestManual_UnsubscribeDuringDelivery(t *testing.T) {
	m := NewManual(time.Time{})

	var second int
	var subB Subscription
	m.Subscribe(func(Tick) { subB.Unsubscribe() })
	subB = m.Subscribe(func(Tick) { second++ })

	m.Step()
	if second != 0 {
		t.Errorf("subscription cancelled earlier in the same tick still ran %d times", second)
	}

	// Unsubscribing twice is harmless.
	subB.Unsubscribe()
}

func TestTea_IgnoresStaleGenerations(t *testing.T) {
	c := NewTea()
	fixed := time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return fixed }

	if c.Cmd() != nil {
		t.Fatal("Cmd() should be nil with no subscription")
	}

	var ticks int
	sub := c.Subscribe(func(Tick) { ticks++ })
	if c.Cmd() == nil {
		t.Fatal("Cmd() should schedule a tick for a new subscription")
	}
	if c.Cmd() != nil {
		t.Fatal("Cmd() should not schedule a second tick while one is in flight")
	}
	first := TickMsg{gen: c.pending, At: fixed}

	sub.Unsubscribe()
	c.Subscribe(func(Tick) { ticks += 100 })
	if c.Cmd() == nil {
		t.Fatal("Cmd() should schedule a tick for the new generation")
	}
	second := TickMsg{gen: c.pending, At: fixed}

	c.Handle(first)
	if ticks != 0 {
		t.Fatalf("stale tick was delivered (ticks=%d)", ticks)
	}
	c.Handle(second)
	if ticks != 100 {
		t.Fatalf("current tick not delivered to new subscriber (ticks=%d)", ticks)
	}
	if c.pending != 0 {
		t.Errorf("pending = %d after delivery, want 0", c.pending)
	}
	if !c.Now().Equal(fixed) {
		t.Errorf("Now() = %v, want %v", c.Now(), fixed)
	}
}

func TestTea_StaleUnsubscribeDoesNotCancelNewer(t *testing.T) {
	c := NewTea()
	old := c.Subscribe(func(Tick) {})
	old.Unsubscribe()

	var ticks int
	c.Subscribe(func(Tick) { ticks++ })
	old.Unsubscribe()

	c.Cmd()
	c.Handle(TickMsg{gen: c.pending})
	if ticks != 1 {
		t.Errorf("ticks = %d, want 1", ticks)
	}
}

func TestWall_DeliversThroughDispatcherAndStops(t *testing.T) {
	events := make(chan func(), 4)
	w := NewWall(func(fn func()) bool {
		events <- fn
		return true
	})

	got := make(chan Tick, 4)
	sub := w.Subscribe(func(tk Tick) { got <- tk })

	select {
	case fn := <-events:
		fn()
	case <-time.After(3 * time.Second):
		t.Fatal("no tick dispatched within 3s")
	}
	select {
	case <-got:
	default:
		t.Fatal("dispatched tick did not reach the subscriber")
	}

	sub.Unsubscribe()
	// A tick already queued before Unsubscribe must be dropped when it runs.
	select {
	case fn := <-events:
		fn()
		if len(got) != 0 {
			t.Error("tick delivered after Unsubscribe")
		}
	case <-time.After(1500 * time.Millisecond):
	}
	sub.Unsubscribe()
}
