package models

import (
	"fmt"
	"strings"
	"time"
)

// Day is one of the five weekdays a timetable covers.
type Day int

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
)

// Weekdays lists the timetable days in calendar order.
var Weekdays = []Day{Monday, Tuesday, Wednesday, Thursday, Friday}

var dayNames = [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

func (d Day) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Day(%d)", int(d))
	}
	return dayNames[d]
}

// Valid reports whether d is Monday through Friday.
func (d Day) Valid() bool {
	return d >= Monday && d <= Friday
}

// Weekday maps d onto the standard library weekday.
func (d Day) Weekday() time.Weekday {
	return time.Weekday(int(d) + 1)
}

// ParseDay parses a weekday name or its three-letter abbreviation.
func ParseDay(s string) (Day, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mon", "monday":
		return Monday, nil
	case "tue", "tuesday":
		return Tuesday, nil
	case "wed", "wednesday":
		return Wednesday, nil
	case "thu", "thursday":
		return Thursday, nil
	case "fri", "friday":
		return Friday, nil
	default:
		return 0, fmt.Errorf("invalid day: %q (expected Monday-Friday)", s)
	}
}

// DayFromWeekday converts a standard library weekday, failing on weekends.
func DayFromWeekday(wd time.Weekday) (Day, bool) {
	if wd < time.Monday || wd > time.Friday {
		return 0, false
	}
	return Day(int(wd) - 1), true
}

func (d Day) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid day: %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *Day) UnmarshalText(text []byte) error {
	parsed, err := ParseDay(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
