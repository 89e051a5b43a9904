package sequencer

// Listener receives playback notifications. Calls happen synchronously on
// the goroutine driving the Sequencer; implementations must not call back
// into the Sequencer's mutating methods.
type Listener interface {
	OnSegmentChanged(segment PlaybackSegment, index, total int)
	OnTick(remaining, totalForCurrent int)
	OnSessionEnded()
}

// ListenerFuncs adapts plain functions to a Listener. Nil fields are skipped.
type ListenerFuncs struct {
	SegmentChanged func(segment PlaybackSegment, index, total int)
	Tick           func(remaining, totalForCurrent int)
	SessionEnded   func()
}

func (f ListenerFuncs) OnSegmentChanged(segment PlaybackSegment, index, total int) {
	if f.SegmentChanged != nil {
		f.SegmentChanged(segment, index, total)
	}
}

func (f ListenerFuncs) OnTick(remaining, totalForCurrent int) {
	if f.Tick != nil {
		f.Tick(remaining, totalForCurrent)
	}
}

func (f ListenerFuncs) OnSessionEnded() {
	if f.SessionEnded != nil {
		f.SessionEnded()
	}
}
