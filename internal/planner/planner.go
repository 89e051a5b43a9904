// Package planner rescales a session's segment durations so the whole run
// ends exactly at the close of a schedule window.
package planner

import (
	"fmt"
	"sort"
	"time"

	"github.com/julianstephens/classtimer/internal/constants"
	"github.com/julianstephens/classtimer/internal/models"
	"github.com/julianstephens/classtimer/internal/utils"
)

// Available returns the whole seconds left between now and the window's end
// on now's calendar date. Fractional seconds are truncated.
func Available(now time.Time, window models.ScheduleWindow) (int, error) {
	end, err := utils.OnDate(now, window.End)
	if err != nil {
		return 0, fmt.Errorf("window %q: %w", window.Label, err)
	}
	return int(end.Sub(now) / time.Second), nil
}

// Align rescales durations to fill the time left until window ends.
func Align(durations []int, now time.Time, window models.ScheduleWindow) ([]int, error) {
	available, err := Available(now, window)
	if err != nil {
		return nil, err
	}
	if available <= constants.MinAlignmentWindowSec {
		return nil, &AlignmentError{Reason: WindowAlreadyOver, Window: window.Label, Available: available}
	}
	return AlignSeconds(durations, available)
}

// AlignSeconds scales durations proportionally so they sum to exactly
// available. Every entry but the last is floored; the last one absorbs the
// rounding remainder. Order and length are preserved and the input is not
// modified.
func AlignSeconds(durations []int, available int) ([]int, error) {
	if len(durations) == 0 {
		return nil, ErrNoSegments
	}
	if available <= constants.MinAlignmentWindowSec {
		return nil, &AlignmentError{Reason: WindowAlreadyOver, Available: available}
	}

	var sum int64
	for i, d := range durations {
		if d <= 0 {
			return nil, fmt.Errorf("%w: segment %d has %ds", ErrInvalidDuration, i, d)
		}
		sum += int64(d)
	}

	out := make([]int, len(durations))
	var running int64
	last := len(durations) - 1
	for i := 0; i < last; i++ {
		// floor(d * available / sum) without float rounding
		scaled := int64(durations[i]) * int64(available) / sum
		out[i] = int(scaled)
		running += scaled
	}
	out[last] = available - int(running)

	return out, nil
}

// SelectWindow picks the first window, by ascending start, whose end is
// strictly after now. Windows with unparseable times are skipped.
func SelectWindow(windows []models.ScheduleWindow, now time.Time) (models.ScheduleWindow, error) {
	sorted := make([]models.ScheduleWindow, len(windows))
	copy(sorted, windows)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, errA := utils.ParseTimeOfDay(sorted[i].Start)
		b, errB := utils.ParseTimeOfDay(sorted[j].Start)
		if errA != nil || errB != nil {
			return errB != nil && errA == nil
		}
		return a < b
	})

	for _, w := range sorted {
		end, err := utils.OnDate(now, w.End)
		if err != nil {
			continue
		}
		if end.After(now) {
			return w, nil
		}
	}
	return models.ScheduleWindow{}, &AlignmentError{Reason: NoMatchingWindow}
}
