package models

import (
	"strconv"

	"github.com/julianstephens/classtimer/internal/constants"
)

// MapToSettings overlays stored key-value pairs on the default settings.
// Unknown keys are ignored so older binaries can read newer stores.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := DefaultSettings()

	for key, value := range data {
		switch key {
		case constants.SettingResetPolicy:
			settings.ResetPolicy = value
		case constants.SettingAutoAdvance:
			settings.AutoAdvance = value == "true"
		case constants.SettingAlignFallback:
			settings.AlignFallback = value == "true"
		case constants.SettingDefaultContext:
			settings.DefaultContext = value
		case constants.SettingTimezone:
			settings.Timezone = value
		case constants.SettingNotificationsEnabled:
			settings.NotificationsEnabled = value == "true"
		}
	}

	ApplyDefaultSettings(&settings)
	return settings, settings.Validate()
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingResetPolicy:          settings.ResetPolicy,
		constants.SettingAutoAdvance:          strconv.FormatBool(settings.AutoAdvance),
		constants.SettingAlignFallback:        strconv.FormatBool(settings.AlignFallback),
		constants.SettingDefaultContext:       settings.DefaultContext,
		constants.SettingTimezone:             settings.Timezone,
		constants.SettingNotificationsEnabled: strconv.FormatBool(settings.NotificationsEnabled),
	}
}

// ApplyDefaultSettings fills in string settings left empty.
func ApplyDefaultSettings(settings *Settings) {
	if settings.ResetPolicy == "" {
		settings.ResetPolicy = constants.DefaultResetPolicy
	}
	if settings.Timezone == "" {
		settings.Timezone = constants.DefaultTimezone
	}
}
