package sequencer

import "github.com/julianstephens/classtimer/internal/models"

// State is the playback state of a Sequencer.
type State int

const (
	// StateIdle means no run is loaded.
	StateIdle State = iota
	// StateRunning means the countdown consumes clock ticks.
	StateRunning
	// StatePaused means a segment is loaded but the clock is detached.
	StatePaused
	// StateFinished means the current segment reached zero and the next tick
	// is the one-second grace before advancing.
	StateFinished
	// StateEnded is terminal: the index is past the last segment.
	StateEnded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StatePaused:
		return "paused"
	case StateFinished:
		return "finished"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// PlaybackSegment is the per-run copy of a Segment. DurationSeconds may
// differ from PlannedDurationSec after alignment or an extend transfer.
type PlaybackSegment struct {
	ID                 string
	Title              string
	Work               string
	PlannedDurationSec int
	DurationSeconds    int
}

func newPlaybackSegment(s models.Segment) PlaybackSegment {
	return PlaybackSegment{
		ID:                 s.ID,
		Title:              s.Title,
		Work:               s.Work,
		PlannedDurationSec: s.PlannedDurationSec,
		DurationSeconds:    s.PlannedDurationSec,
	}
}

// Snapshot is a read-only copy of the playback state.
type Snapshot struct {
	Segments        []PlaybackSegment
	CurrentIndex    int
	Remaining       int
	TotalForCurrent int
	State           State
}

// Running reports whether ticks are being consumed by the countdown.
func (s Snapshot) Running() bool {
	return s.State == StateRunning
}

// Current returns the active segment, or false once the run has ended.
func (s Snapshot) Current() (PlaybackSegment, bool) {
	if s.CurrentIndex < 0 || s.CurrentIndex >= len(s.Segments) {
		return PlaybackSegment{}, false
	}
	return s.Segments[s.CurrentIndex], true
}

// ResetPolicy selects which durations Reset restores.
type ResetPolicy int

const (
	// ResetToPlan restores the durations computed at Start (after alignment),
	// discarding extend transfers.
	ResetToPlan ResetPolicy = iota
	// ResetToCurrent keeps whatever durations are in memory, extend transfers included.
	ResetToCurrent
)

func (p ResetPolicy) String() string {
	if p == ResetToCurrent {
		return "current"
	}
	return "plan"
}

// AlignFailurePolicy selects what StartAligned does when no plan can be made.
type AlignFailurePolicy int

const (
	// AlignFallback starts with the planned durations and records the failure.
	AlignFallback AlignFailurePolicy = iota
	// AlignAbort refuses to start and leaves the previous run untouched.
	AlignAbort
)

// Alignment describes how the current run was fitted to a schedule window.
type Alignment struct {
	Requested bool
	Applied   bool
	Window    models.ScheduleWindow
	Available int   // seconds the run was stretched or squeezed into
	Err       error // why alignment was skipped, when Requested && !Applied
}
