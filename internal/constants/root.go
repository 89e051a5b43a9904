package constants

import "time"

// SessionState represents the current screen of the TUI application
type SessionState int

const (
	AppName            = "classtimer"
	DefaultKeyringUser = "database-connection"
	DefaultConfigPath  = "~/.config/classtimer/classtimer.db"
	Version            = "v0.1.0"

	// TimeFormat is the standard time-of-day format used for schedule windows (HH:MM)
	TimeFormat = "15:04"

	// TimeFormatSeconds is the optional second-precision time-of-day format (HH:MM:SS)
	TimeFormatSeconds = "15:04:05"

	// MinAlignmentWindowSec is the smallest window, in seconds, a session can be aligned into.
	// Anything at or below it is treated as already over.
	MinAlignmentWindowSec = 60

	// TickInterval is the countdown resolution.
	TickInterval = time.Second

	// TimelineWorkPreviewLen caps the work description shown in the timeline
	TimelineWorkPreviewLen = 50

	// Notify constants
	NotifyMaxRetries       = 3
	NotifyRetryDelay       = 100 * time.Millisecond
	NotifierLockfileName   = "classtimer-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.classtimer"
	TrayAppExecutable      = "classtimer-tray"

	// Environment variables
	EnvDB        = "CLASSTIMER_DB"
	EnvConfigDir = "CLASSTIMER_CONFIG_DIR"
	EnvDebug     = "CLASSTIMER_DEBUG"
	EnvNotify    = "CLASSTIMER_NOTIFY"
)

// Session States
const (
	StatePicker SessionState = iota
	StatePlayback
	StateEnded
)
