package constants

const (
	// Playback Settings
	SettingResetPolicy          = "reset_policy"
	SettingAutoAdvance          = "auto_advance"
	SettingAlignFallback        = "align_fallback"
	SettingDefaultContext       = "default_context"
	SettingTimezone             = "timezone"
	SettingNotificationsEnabled = "notifications_enabled"

	// Reset policy values
	ResetPolicyPlan    = "plan"
	ResetPolicyCurrent = "current"

	// Default Settings Values
	DefaultResetPolicy          = ResetPolicyPlan
	DefaultAutoAdvance          = true
	DefaultAlignFallback        = true
	DefaultContext              = ""
	DefaultTimezone             = "Local" // Use system local timezone by default
	DefaultNotificationsEnabled = true
)
