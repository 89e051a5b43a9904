package planner

import (
	"errors"
	"fmt"
)

// Reason classifies why a session could not be aligned.
type Reason int

const (
	// WindowAlreadyOver means the chosen window ends too soon (or already ended).
	WindowAlreadyOver Reason = iota + 1
	// NoMatchingWindow means no window in the context ends after now.
	NoMatchingWindow
)

func (r Reason) String() string {
	switch r {
	case WindowAlreadyOver:
		return "window already over"
	case NoMatchingWindow:
		return "no matching window"
	default:
		return "unknown"
	}
}

var (
	ErrWindowAlreadyOver = errors.New("schedule window already over")
	ErrNoMatchingWindow  = errors.New("no schedule window ends after now")
	ErrNoSegments        = errors.New("nothing to align")
	ErrInvalidDuration   = errors.New("segment durations must be positive")
)

// AlignmentError reports a plan that could not be produced. The caller
// decides whether to play unaligned or abort.
type AlignmentError struct {
	Reason    Reason
	Window    string // label of the window involved, if any
	Available int    // seconds left in the window, when known
}

func (e *AlignmentError) Error() string {
	switch e.Reason {
	case WindowAlreadyOver:
		return fmt.Sprintf("cannot align to %q: only %ds left", e.Window, e.Available)
	case NoMatchingWindow:
		return "cannot align: no schedule window ends after now"
	default:
		return "cannot align: " + e.Reason.String()
	}
}

// Unwrap lets errors.Is match the sentinel for the reason.
func (e *AlignmentError) Unwrap() error {
	switch e.Reason {
	case WindowAlreadyOver:
		return ErrWindowAlreadyOver
	case NoMatchingWindow:
		return ErrNoMatchingWindow
	default:
		return nil
	}
}
