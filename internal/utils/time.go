package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/classtimer/internal/constants"
)

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// ParseTimeOfDay parses a time-of-day string (HH:MM or HH:MM:SS) and returns
// the offset from midnight.
func ParseTimeOfDay(timeStr string) (time.Duration, error) {
	timeStr = strings.TrimSpace(timeStr)
	layout := constants.TimeFormat
	if strings.Count(timeStr, ":") == 2 {
		layout = constants.TimeFormatSeconds
	}
	t, err := time.Parse(layout, timeStr)
	if err != nil {
		return 0, fmt.Errorf("invalid time of day %q (expected HH:MM or HH:MM:SS): %w", timeStr, err)
	}
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second, nil
}

// OnDate places a time-of-day string on the calendar date of day, in day's
// location. The result is the wall-clock time, so "10:00" stays 10:00 on
// days with a daylight saving transition.
func OnDate(day time.Time, timeStr string) (time.Time, error) {
	offset, err := ParseTimeOfDay(timeStr)
	if err != nil {
		return time.Time{}, err
	}
	h := int(offset / time.Hour)
	m := int(offset % time.Hour / time.Minute)
	sec := int(offset % time.Minute / time.Second)
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, sec, 0, day.Location()), nil
}

// FormatClock renders a second count as MM:SS. Minutes are not wrapped into hours.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// ValidateTimeFormat checks if the string is a valid time of day.
func ValidateTimeFormat(timeStr string) bool {
	_, err := ParseTimeOfDay(timeStr)
	return err == nil
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
