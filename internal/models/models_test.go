package models

import (
	"testing"

	"github.com/julianstephens/classtimer/internal/constants"
)

func TestScheduleWindowValidate(t *testing.T) {
	tests := []struct {
		name    string
		window  ScheduleWindow
		wantErr bool
	}{
		{name: "valid", window: ScheduleWindow{Label: "P1", Start: "08:00", End: "08:55"}},
		{name: "with seconds", window: ScheduleWindow{Label: "P1", Start: "08:00:30", End: "08:55"}},
		{name: "empty label", window: ScheduleWindow{Label: " ", Start: "08:00", End: "08:55"}, wantErr: true},
		{name: "bad start", window: ScheduleWindow{Label: "P1", Start: "8h", End: "08:55"}, wantErr: true},
		{name: "end before start", window: ScheduleWindow{Label: "P1", Start: "09:00", End: "08:55"}, wantErr: true},
		{name: "zero length", window: ScheduleWindow{Label: "P1", Start: "09:00", End: "09:00"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.window.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSegmentValidate(t *testing.T) {
	tests := []struct {
		name    string
		segment Segment
		wantErr bool
	}{
		{name: "valid", segment: Segment{SessionID: "s1", Title: "Warm-up", PlannedDurationSec: 300}},
		{name: "no title", segment: Segment{SessionID: "s1", PlannedDurationSec: 300}, wantErr: true},
		{name: "no session", segment: Segment{Title: "Warm-up", PlannedDurationSec: 300}, wantErr: true},
		{name: "zero duration", segment: Segment{SessionID: "s1", Title: "Warm-up"}, wantErr: true},
		{name: "negative duration", segment: Segment{SessionID: "s1", Title: "Warm-up", PlannedDurationSec: -5}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.segment.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestMapToSettings(t *testing.T) {
	got, err := MapToSettings(map[string]string{
		constants.SettingResetPolicy:          constants.ResetPolicyCurrent,
		constants.SettingAutoAdvance:          "false",
		constants.SettingDefaultContext:       "lycee",
		constants.SettingNotificationsEnabled: "false",
		"unknown_key":                         "ignored",
	})
	if err != nil {
		t.Fatalf("MapToSettings() error = %v", err)
	}

	want := DefaultSettings()
	want.ResetPolicy = constants.ResetPolicyCurrent
	want.AutoAdvance = false
	want.DefaultContext = "lycee"
	want.NotificationsEnabled = false
	if got != want {
		t.Errorf("MapToSettings() = %+v, want %+v", got, want)
	}

	back, err := MapToSettings(SettingsToMap(got))
	if err != nil || back != got {
		t.Errorf("SettingsToMap round trip = (%+v, %v), want %+v", back, err, got)
	}
}

func TestMapToSettings_Invalid(t *testing.T) {
	if _, err := MapToSettings(map[string]string{constants.SettingResetPolicy: "sometimes"}); err == nil {
		t.Error("expected error for unknown reset policy")
	}
	if _, err := MapToSettings(map[string]string{constants.SettingTimezone: "Mars/Olympus"}); err == nil {
		t.Error("expected error for invalid timezone")
	}
}

func TestMapToSettings_EmptyUsesDefaults(t *testing.T) {
	got, err := MapToSettings(map[string]string{constants.SettingResetPolicy: ""})
	if err != nil {
		t.Fatalf("MapToSettings() error = %v", err)
	}
	if got != DefaultSettings() {
		t.Errorf("MapToSettings() = %+v, want defaults", got)
	}
}
