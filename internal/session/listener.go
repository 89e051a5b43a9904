package session

import (
	"github.com/julianstephens/classtimer/internal/logger"
	"github.com/julianstephens/classtimer/internal/sequencer"
	"github.com/julianstephens/classtimer/internal/utils"
)

// LogListener records segment changes and session end in the log file.
type LogListener struct {
	SessionID string
}

func (l LogListener) OnSegmentChanged(seg sequencer.PlaybackSegment, index, total int) {
	logger.Info("Segment started",
		"session", l.SessionID,
		"segment", seg.Title,
		"position", index+1,
		"of", total,
		"duration", utils.FormatClock(seg.DurationSeconds),
	)
	if seg.DurationSeconds != seg.PlannedDurationSec {
		logger.Debug("Segment duration adjusted", "planned", seg.PlannedDurationSec, "actual", seg.DurationSeconds)
	}
}

func (l LogListener) OnTick(int, int) {}

func (l LogListener) OnSessionEnded() {
	logger.Info("Session ended", "session", l.SessionID)
}
