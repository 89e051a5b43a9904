package session

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/julianstephens/classtimer/internal/clock"
	"github.com/julianstephens/classtimer/internal/constants"
	"github.com/julianstephens/classtimer/internal/models"
	"github.com/julianstephens/classtimer/internal/sequencer"
)

func TestLoop_RunsPostedInOrder(t *testing.T) {
	loop := NewLoop()
	var got []int

	for i := 1; i <= 3; i++ {
		i := i
		if !loop.Post(func() { got = append(got, i) }) {
			t.Fatal("Post() = false before Run")
		}
	}
	loop.Post(loop.Stop)

	if err := loop.Run(context.Background()); !errors.Is(err, ErrStopped) {
		t.Fatalf("Run() = %v, want ErrStopped", err)
	}
	if len(got) != 3 || got[0] != 1 || got[2] != 3 {
		t.Errorf("ran %v, want [1 2 3]", got)
	}
	if loop.Post(func() {}) {
		t.Error("Post() after Stop should return false")
	}
}

func TestLoop_ContextCancel(t *testing.T) {
	loop := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := loop.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() = %v, want context.Canceled", err)
	}
	select {
	case <-loop.Done():
	default:
		t.Error("Done() not closed after cancellation")
	}
}

func TestLoop_PostDoesNotBlockAfterStop(t *testing.T) {
	loop := NewLoop()
	// Fill the buffer; nothing is draining it.
	for loop.Post(func() {}) {
		if len(loop.events) == cap(loop.events) {
			break
		}
	}

	posted := make(chan bool)
	go func() { posted <- loop.Post(func() {}) }()
	loop.Stop()

	select {
	case ok := <-posted:
		if ok {
			t.Error("Post() on a full, stopped loop returned true")
		}
	case <-time.After(time.Second):
		t.Fatal("Post() blocked after Stop")
	}
}

func TestConfigFromSettings(t *testing.T) {
	s := models.DefaultSettings()
	cfg := ConfigFromSettings(s)
	if cfg.ResetPolicy != sequencer.ResetToPlan || !cfg.AutoAdvance || cfg.OnAlignFailure != sequencer.AlignFallback {
		t.Errorf("defaults mapped to %+v", cfg)
	}

	s.ResetPolicy = constants.ResetPolicyCurrent
	s.AutoAdvance = false
	s.AlignFallback = false
	cfg = ConfigFromSettings(s)
	if cfg.ResetPolicy != sequencer.ResetToCurrent || cfg.AutoAdvance || cfg.OnAlignFailure != sequencer.AlignAbort {
		t.Errorf("overrides mapped to %+v", cfg)
	}
}

func TestResolveContext(t *testing.T) {
	s := models.DefaultSettings()
	s.DefaultContext = "lycee"

	tests := []struct {
		explicit string
		want     string
	}{
		{"", "lycee"},
		{"college", "college"},
		{"none", ""},
	}
	for _, tt := range tests {
		if got := ResolveContext(tt.explicit, s); got != tt.want {
			t.Errorf("ResolveContext(%q) = %q, want %q", tt.explicit, got, tt.want)
		}
	}
}

func TestInLocation(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	m := clock.NewManual(time.Date(2026, 10, 19, 6, 0, 0, 0, time.UTC))

	src := InLocation(m, paris)
	if got := src.Now(); got.Location() != paris || got.Hour() != 8 {
		t.Errorf("Now() = %v, want 08:00 Paris", got)
	}
	if InLocation(m, nil) != clock.Source(m) {
		t.Error("InLocation(nil) should return the source unchanged")
	}
}

func TestPlayer_PlaysToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("real-time playback")
	}

	p := NewPlayer(nil, sequencer.Config{AutoAdvance: true}, time.UTC)
	var ticks atomic.Int32
	var ended atomic.Bool
	p.AddListener(sequencer.ListenerFuncs{
		Tick:         func(int, int) { ticks.Add(1) },
		SessionEnded: func() { ended.Store(true) },
	})
	p.StopWhenEnded()

	p.Do(func(s *sequencer.Sequencer) {
		if err := s.Start([]models.Segment{{ID: "a", Title: "Only", PlannedDurationSec: 1}}); err != nil {
			t.Errorf("Start() failed: %v", err)
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 6*time.Second)
	defer cancel()
	if err := p.Run(ctx); !errors.Is(err, ErrStopped) {
		t.Fatalf("Run() = %v, want ErrStopped", err)
	}
	if !ended.Load() {
		t.Error("session did not end")
	}
	if ticks.Load() != 1 {
		t.Errorf("ticks = %d, want 1", ticks.Load())
	}
	if p.Do(func(*sequencer.Sequencer) {}) {
		t.Error("Do() after end should return false")
	}
}
