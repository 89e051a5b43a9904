package countdown

import (
	"strings"
	"testing"

	"github.com/julianstephens/classtimer/internal/sequencer"
)

func TestSegmentFraction(t *testing.T) {
	tests := []struct {
		name      string
		remaining int
		total     int
		want      float64
	}{
		{name: "start", remaining: 60, total: 60, want: 0},
		{name: "half", remaining: 30, total: 60, want: 0.5},
		{name: "done", remaining: 0, total: 60, want: 1},
		{name: "no total", remaining: 0, total: 0, want: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SegmentFraction(sequencer.Snapshot{Remaining: tt.remaining, TotalForCurrent: tt.total})
			if got != tt.want {
				t.Errorf("SegmentFraction() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestView(t *testing.T) {
	m := New()
	m.SetWidth(80)
	snap := sequencer.Snapshot{
		Segments: []sequencer.PlaybackSegment{
			{Title: "Accroche", DurationSeconds: 90},
			{Title: "Bilan", DurationSeconds: 60},
		},
		Remaining:       75,
		TotalForCurrent: 90,
		State:           sequencer.StatePaused,
	}
	out := m.View(snap, 0.1)
	for _, want := range []string{"1/2 · Accroche", "01:15", "paused"} {
		if !strings.Contains(strings.ToLower(out), strings.ToLower(want)) {
			t.Errorf("view missing %q:\n%s", want, out)
		}
	}

	snap.CurrentIndex = 2
	if out := m.View(snap, 1); !strings.Contains(out, "Session finished!") {
		t.Errorf("ended view = %q", out)
	}
}

func TestSetWidth(t *testing.T) {
	m := New()
	for width, want := range map[int]int{200: maxBarWidth, 50: 34, 5: 10} {
		m.SetWidth(width)
		if m.segment.Width != want || m.overall.Width != want {
			t.Errorf("SetWidth(%d): bars %d/%d, want %d", width, m.segment.Width, m.overall.Width, want)
		}
	}
}
