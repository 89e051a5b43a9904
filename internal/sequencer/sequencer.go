// Package sequencer owns session playback: which segment is active, how many
// seconds remain, and how the run moves from one segment to the next.
//
// A Sequencer is a single-writer state machine. Every method, and every
// clock callback, must run on the same goroutine; the clock Source is
// responsible for delivering ticks there. Operations that stop the countdown
// detach the clock before touching any duration, so a tick can never land
// in the middle of a mutation.
package sequencer

import (
	"fmt"

	"github.com/julianstephens/classtimer/internal/clock"
	"github.com/julianstephens/classtimer/internal/logger"
	"github.com/julianstephens/classtimer/internal/models"
	"github.com/julianstephens/classtimer/internal/planner"
)

// Catalog is the read-only slice of the entity store playback needs.
type Catalog interface {
	GetSegmentsForSession(sessionID string) ([]models.Segment, error)
	GetScheduleWindows(context string) ([]models.ScheduleWindow, error)
}

// Config holds the playback policies.
type Config struct {
	ResetPolicy    ResetPolicy
	AutoAdvance    bool // start the next segment on its own after the grace second
	OnAlignFailure AlignFailurePolicy
}

type Sequencer struct {
	clock     clock.Source
	catalog   Catalog
	cfg       Config
	listeners []Listener

	sub       clock.Subscription
	segments  []PlaybackSegment
	plan      []int // durations as computed at Start, restored by ResetToPlan
	current   int
	remaining int
	total     int
	state     State
	alignment Alignment
}

// New creates an idle Sequencer. catalog may be nil if StartSession is never used.
func New(src clock.Source, catalog Catalog, cfg Config) *Sequencer {
	return &Sequencer{
		clock:   src,
		catalog: catalog,
		cfg:     cfg,
		state:   StateIdle,
	}
}

func (s *Sequencer) AddListener(l Listener) {
	s.listeners = append(s.listeners, l)
}

// Start begins a run with the segments' planned durations.
func (s *Sequencer) Start(segments []models.Segment) error {
	return s.start(segments, Alignment{})
}

// StartAligned begins a run rescaled to end when window closes. If no plan
// can be made the configured AlignFailurePolicy decides between playing
// unaligned and returning the *planner.AlignmentError.
func (s *Sequencer) StartAligned(segments []models.Segment, window models.ScheduleWindow) error {
	return s.start(segments, Alignment{Requested: true, Window: window})
}

// StartSession loads a session from the catalog and starts it. When context
// is non-empty the run is aligned to the first window of that context that
// has not ended yet.
func (s *Sequencer) StartSession(sessionID, context string) error {
	if s.catalog == nil {
		return ErrNoCatalog
	}
	segments, err := s.catalog.GetSegmentsForSession(sessionID)
	if err != nil {
		return fmt.Errorf("failed to load segments for session %s: %w", sessionID, err)
	}
	if err := validate(segments); err != nil {
		return err
	}
	if context == "" {
		return s.Start(segments)
	}

	windows, err := s.catalog.GetScheduleWindows(context)
	if err != nil {
		return fmt.Errorf("failed to load schedule windows for %q: %w", context, err)
	}
	window, err := planner.SelectWindow(windows, s.clock.Now())
	if err != nil {
		if s.cfg.OnAlignFailure == AlignAbort {
			return err
		}
		logger.Warn("Playing unaligned", "session", sessionID, "context", context, "error", err)
		return s.start(segments, Alignment{Requested: true, Err: err})
	}
	return s.StartAligned(segments, window)
}

func validate(segments []models.Segment) error {
	if len(segments) == 0 {
		return ErrEmptySession
	}
	for _, seg := range segments {
		if seg.PlannedDurationSec <= 0 {
			return fmt.Errorf("%w: %q has %ds", ErrInvalidDuration, seg.Title, seg.PlannedDurationSec)
		}
	}
	return nil
}

// start builds and begins a run. alignment says what was asked for: a
// Window to align to, or an Err already recorded while choosing one.
func (s *Sequencer) start(segments []models.Segment, alignment Alignment) error {
	if err := validate(segments); err != nil {
		return err
	}

	run := make([]PlaybackSegment, len(segments))
	planned := make([]int, len(segments))
	for i, seg := range segments {
		run[i] = newPlaybackSegment(seg)
		planned[i] = seg.PlannedDurationSec
	}

	if alignment.Requested && alignment.Err == nil {
		scaled, err := planner.Align(planned, s.clock.Now(), alignment.Window)
		switch {
		case err == nil:
			for i := range run {
				run[i].DurationSeconds = scaled[i]
			}
			alignment.Applied = true
			alignment.Available = sumDurations(run)
		case s.cfg.OnAlignFailure == AlignAbort:
			return err
		default:
			alignment.Err = err
			logger.Warn("Alignment failed, using planned durations", "window", alignment.Window.Label, "error", err)
		}
	}

	// Everything validated: dispose of the previous run before building this one.
	s.detach()

	s.segments = run
	s.plan = make([]int, len(run))
	for i := range run {
		s.plan[i] = run[i].DurationSeconds
	}
	s.alignment = alignment
	s.current = 0
	s.load()

	logger.Debug("Session started", "segments", len(run), "total", sumDurations(run), "aligned", alignment.Applied)

	s.run()
	s.emitSegmentChanged()
	return nil
}

// Tick consumes one second of the current segment. It is normally called by
// the clock, but may be called directly; outside StateRunning it is a no-op.
func (s *Sequencer) Tick() error {
	if s.state != StateRunning {
		return &StateError{Op: "tick", State: s.state}
	}

	if s.remaining > 0 {
		s.remaining--
	}
	if s.remaining == 0 {
		// Keep the subscription: the next tick is the grace second.
		s.state = StateFinished
	}
	for _, l := range s.listeners {
		l.OnTick(s.remaining, s.total)
	}
	return nil
}

func (s *Sequencer) onClock(clock.Tick) {
	switch s.state {
	case StateRunning:
		_ = s.Tick()
	case StateFinished:
		_ = s.Advance(s.cfg.AutoAdvance)
	}
}

// Pause stops consuming ticks. Pausing twice is the same as pausing once.
func (s *Sequencer) Pause() error {
	if s.state != StateRunning {
		return &StateError{Op: "pause", State: s.state}
	}
	s.detach()
	s.state = StatePaused
	return nil
}

// Resume restarts the countdown if time remains on the current segment.
func (s *Sequencer) Resume() error {
	if s.state != StatePaused || s.remaining <= 0 {
		return &StateError{Op: "resume", State: s.state}
	}
	s.state = StateRunning
	s.attach()
	return nil
}

// Toggle pauses a running countdown or resumes a paused one.
func (s *Sequencer) Toggle() error {
	if s.state == StateRunning {
		return s.Pause()
	}
	return s.Resume()
}

// Advance moves to the next segment, or ends the run after the last one.
// With autoStart the next segment starts counting immediately; otherwise it
// is loaded paused.
func (s *Sequencer) Advance(autoStart bool) error {
	if s.state == StateIdle || s.state == StateEnded {
		return &StateError{Op: "advance", State: s.state}
	}
	s.detach()

	if s.current >= len(s.segments)-1 {
		s.current = len(s.segments)
		s.remaining = 0
		s.total = 0
		s.state = StateEnded
		logger.Debug("Session ended", "segments", len(s.segments))
		for _, l := range s.listeners {
			l.OnSessionEnded()
		}
		return nil
	}

	s.current++
	s.load()
	if autoStart {
		s.run()
	}
	s.emitSegmentChanged()
	return nil
}

// ExtendToNext hands the seconds left on the current segment to the next one
// and moves on, already running. On the last segment the leftover has
// nowhere to go and the run ends.
func (s *Sequencer) ExtendToNext() error {
	if s.state == StateIdle || s.state == StateEnded {
		return &StateError{Op: "extend", State: s.state}
	}
	// Detach before touching durations so no tick can count against either segment.
	s.detach()

	if next := s.current + 1; s.remaining > 0 && next < len(s.segments) {
		s.segments[next].DurationSeconds += s.remaining
		logger.Debug("Extended next segment", "index", next, "added", s.remaining)
	}
	return s.Advance(true)
}

// Reset detaches the clock and rewinds to the first segment, paused. The
// durations restored depend on the ResetPolicy.
func (s *Sequencer) Reset() error {
	if s.state == StateIdle {
		return &StateError{Op: "reset", State: s.state}
	}
	s.detach()

	if s.cfg.ResetPolicy == ResetToPlan {
		for i := range s.segments {
			s.segments[i].DurationSeconds = s.plan[i]
		}
	}
	s.current = 0
	s.load()
	s.state = StatePaused
	s.emitSegmentChanged()
	return nil
}

// Stop discards the run and returns to idle.
func (s *Sequencer) Stop() {
	s.detach()
	s.segments = nil
	s.plan = nil
	s.current = 0
	s.remaining = 0
	s.total = 0
	s.alignment = Alignment{}
	s.state = StateIdle
}

func (s *Sequencer) State() State {
	return s.state
}

func (s *Sequencer) Alignment() Alignment {
	return s.alignment
}

func (s *Sequencer) Snapshot() Snapshot {
	segments := make([]PlaybackSegment, len(s.segments))
	copy(segments, s.segments)
	return Snapshot{
		Segments:        segments,
		CurrentIndex:    s.current,
		Remaining:       s.remaining,
		TotalForCurrent: s.total,
		State:           s.state,
	}
}

// OverallElapsedSeconds is the time spent in completed segments plus the
// time spent in the current one.
func (s *Sequencer) OverallElapsedSeconds() int {
	if s.state == StateIdle {
		return 0
	}
	elapsed := 0
	for i := 0; i < s.current && i < len(s.segments); i++ {
		elapsed += s.segments[i].DurationSeconds
	}
	if s.current < len(s.segments) {
		elapsed += s.total - s.remaining
	}
	return elapsed
}

// OverallProgressFraction is elapsed over total run time, clamped to [0, 1].
func (s *Sequencer) OverallProgressFraction() float64 {
	total := sumDurations(s.segments)
	if total <= 0 {
		return 0
	}
	f := float64(s.OverallElapsedSeconds()) / float64(total)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

// load reads the current segment's duration into the countdown.
func (s *Sequencer) load() {
	s.total = s.segments[s.current].DurationSeconds
	s.remaining = s.total
	s.state = StatePaused
}

// run starts counting the loaded segment. A segment with nothing left goes
// straight to the grace second.
func (s *Sequencer) run() {
	if s.remaining > 0 {
		s.state = StateRunning
	} else {
		s.state = StateFinished
	}
	s.attach()
}

func (s *Sequencer) attach() {
	if s.sub != nil {
		return
	}
	s.sub = s.clock.Subscribe(s.onClock)
}

func (s *Sequencer) detach() {
	if s.sub == nil {
		return
	}
	s.sub.Unsubscribe()
	s.sub = nil
}

func (s *Sequencer) emitSegmentChanged() {
	seg := s.segments[s.current]
	for _, l := range s.listeners {
		l.OnSegmentChanged(seg, s.current, len(s.segments))
	}
}

func sumDurations(segments []PlaybackSegment) int {
	total := 0
	for _, seg := range segments {
		total += seg.DurationSeconds
	}
	return total
}
