package export

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
)

const localTimestamp = "20060102T150405"

type zoneKind int

const (
	// zoneUTC writes UTC timestamps.
	zoneUTC zoneKind = iota
	// zoneFloating writes wall-clock times without a TZID. Used for
	// time.Local, which has no IANA name to reference.
	zoneFloating
	// zoneNamed writes wall-clock times with a TZID and a VTIMEZONE.
	zoneNamed
)

func zoneMode(loc *time.Location) zoneKind {
	switch {
	case loc == time.UTC || loc.String() == "UTC":
		return zoneUTC
	case loc == time.Local || loc.String() == "Local":
		return zoneFloating
	default:
		return zoneNamed
	}
}

// setTime writes t so that a weekly RRULE keeps the same wall-clock time
// across DST changes.
func setTime(ev *ical.VEvent, prop ical.ComponentProperty, t time.Time, zone zoneKind) {
	switch zone {
	case zoneUTC:
		ev.SetProperty(prop, t.UTC().Format(localTimestamp+"Z"))
	case zoneFloating:
		ev.SetProperty(prop, t.Format(localTimestamp))
	default:
		ev.SetProperty(prop, t.Format(localTimestamp), ical.WithTZID(t.Location().String()))
	}
}

// addTimezone describes loc as a VTIMEZONE using the transitions Go reports
// for year. Each transition becomes a yearly rule on the same weekday of the
// month, which covers the usual "Nth/last Sunday" DST schemes.
func addTimezone(cal *ical.Calendar, loc *time.Location, year int) {
	tz := cal.AddTimezone(loc.String())

	var transitions []time.Time
	t := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	for {
		_, end := t.ZoneBounds()
		if end.IsZero() || end.Year() > year {
			break
		}
		transitions = append(transitions, end)
		t = end
	}

	if len(transitions) == 0 {
		name, offset := time.Date(year, time.January, 1, 0, 0, 0, 0, loc).Zone()
		std := tz.AddStandard()
		std.SetProperty(ical.ComponentPropertyDtStart, "19700101T000000")
		setOffsets(&std.ComponentBase, name, offset, offset)
		return
	}

	for _, tr := range transitions {
		_, from := tr.Add(-time.Second).Zone()
		name, to := tr.Zone()
		// DTSTART is the wall-clock moment of the change in the old offset
		wall := tr.In(time.FixedZone("", from))

		var cb *ical.ComponentBase
		if tr.IsDST() {
			d := &ical.Daylight{}
			tz.Components = append(tz.Components, d)
			cb = &d.ComponentBase
		} else {
			cb = &tz.AddStandard().ComponentBase
		}
		cb.SetProperty(ical.ComponentPropertyDtStart, wall.Format(localTimestamp))
		cb.SetProperty(ical.ComponentPropertyRrule, yearlyRule(wall))
		setOffsets(cb, name, from, to)
	}
}

func setOffsets(cb *ical.ComponentBase, name string, from, to int) {
	cb.SetProperty(ical.ComponentProperty(ical.PropertyTzoffsetfrom), formatOffset(from))
	cb.SetProperty(ical.ComponentProperty(ical.PropertyTzoffsetto), formatOffset(to))
	cb.SetProperty(ical.ComponentProperty(ical.PropertyTzname), name)
}

// yearlyRule repeats t on the same weekday ordinal of its month, using -1
// when t falls in the month's last seven days.
func yearlyRule(t time.Time) string {
	days := time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
	n := (t.Day()-1)/7 + 1
	if t.Day()+7 > days {
		n = -1
	}
	return fmt.Sprintf("FREQ=YEARLY;BYMONTH=%d;BYDAY=%d%s", int(t.Month()), n, weekdayCodes[t.Weekday()])
}

var weekdayCodes = [...]string{"SU", "MO", "TU", "WE", "TH", "FR", "SA"}

func formatOffset(seconds int) string {
	sign := '+'
	if seconds < 0 {
		sign = '-'
		seconds = -seconds
	}
	return fmt.Sprintf("%c%02d%02d", sign, seconds/3600, seconds/60%60)
}
