package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/timetable/internal/constants"
)

// FormatError reports a malformed HH:MM time string.
type FormatError struct {
	Value  string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid time %q: %s", e.Value, e.Reason)
}

// ParseTime converts an HH:MM string into minutes since midnight.
// The string must contain exactly one colon with a numeric hour in [0, 23]
// and a numeric minute in [0, 59] on either side.
func ParseTime(timeStr string) (int, error) {
	if strings.Count(timeStr, ":") != 1 {
		return 0, &FormatError{Value: timeStr, Reason: "expected exactly one ':'"}
	}
	hourStr, minStr, _ := strings.Cut(timeStr, ":")

	hour, err := strconv.Atoi(hourStr)
	if err != nil {
		return 0, &FormatError{Value: timeStr, Reason: "hour is not a number"}
	}
	minute, err := strconv.Atoi(minStr)
	if err != nil {
		return 0, &FormatError{Value: timeStr, Reason: "minute is not a number"}
	}
	if hour < 0 || hour > 23 {
		return 0, &FormatError{Value: timeStr, Reason: "hour must be between 0 and 23"}
	}
	if minute < 0 || minute > 59 {
		return 0, &FormatError{Value: timeStr, Reason: "minute must be between 0 and 59"}
	}

	return hour*60 + minute, nil
}

// MustParseTime is ParseTime for values that were validated on the way in.
func MustParseTime(timeStr string) int {
	m, err := ParseTime(timeStr)
	if err != nil {
		panic(err)
	}
	return m
}

// FormatTime renders minutes since midnight as a zero-padded HH:MM string.
func FormatTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// NormalizeTime re-renders a valid time string in zero-padded form ("9:5" -> "09:05").
func NormalizeTime(timeStr string) (string, error) {
	m, err := ParseTime(timeStr)
	if err != nil {
		return "", err
	}
	return FormatTime(m), nil
}

// AddMinutes shifts an HH:MM time by delta minutes. The result saturates at
// 23:59 (and 00:00 for negative deltas); it never wraps into another day.
func AddMinutes(timeStr string, delta int) (string, error) {
	m, err := ParseTime(timeStr)
	if err != nil {
		return "", err
	}
	m = min(constants.LastMinuteOfDay, m+delta)
	m = max(0, m)
	return FormatTime(m), nil
}

// ValidateTimeFormat checks if the string is a well-formed HH:MM time.
func ValidateTimeFormat(timeStr string) bool {
	_, err := ParseTime(timeStr)
	return err == nil
}

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

// ParseDate parses a date string (YYYY-MM-DD).
func ParseDate(dateStr string) (time.Time, error) {
	return time.Parse(constants.DateFormat, dateStr)
}

// DaysBetween returns the number of calendar days from "from" to "to".
// Only the calendar dates matter; clock time and DST shifts are ignored.
func DaysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == "Local" {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}
