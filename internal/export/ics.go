// Package export renders a timetable week as an iCalendar feed in which
// every block repeats weekly.
package export

import (
	"fmt"
	"io"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"

	"github.com/julianstephens/timetable/internal/constants"
	"github.com/julianstephens/timetable/internal/models"
	"github.com/julianstephens/timetable/internal/utils"
)

// uidNamespace keeps block UIDs stable across exports of the same week.
var uidNamespace = uuid.MustParse("6f1c2b0e-3d5a-4f6e-9a8b-1c2d3e4f5a6b")

// Options controls the export.
type Options struct {
	// WeekOf is any date in the first week the events start on. Defaults to today.
	WeekOf time.Time
	// Location is the zone the HH:MM times are in. Defaults to time.Local.
	Location *time.Location
	// Weeks limits the recurrence to a number of weeks; 0 repeats forever.
	Weeks int
	// Now stamps DTSTAMP. Defaults to time.Now.
	Now func() time.Time
}

// WeekStart returns midnight on the Monday of the week containing t, in loc.
func WeekStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	offset := (int(t.Weekday()) + 6) % 7 // Monday = 0
	return time.Date(t.Year(), t.Month(), t.Day()-offset, 0, 0, 0, 0, loc)
}

// Calendar builds one weekly VEVENT per block.
func Calendar(week map[models.Day][]models.TimeBlock, opts Options) (*ical.Calendar, error) {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	weekOf := opts.WeekOf
	if weekOf.IsZero() {
		weekOf = now()
	}
	monday := WeekStart(weekOf, loc)

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(fmt.Sprintf("-//%s//%s//EN", constants.AppName, constants.Version))
	cal.SetXWRCalName("Timetable")
	zone := zoneMode(loc)
	if zone != zoneFloating {
		cal.SetXWRTimezone(loc.String())
	}
	if zone == zoneNamed {
		addTimezone(cal, loc, monday.Year()-1)
	}

	rrule := "FREQ=WEEKLY"
	if opts.Weeks > 0 {
		rrule = fmt.Sprintf("FREQ=WEEKLY;COUNT=%d", opts.Weeks)
	}
	stamp := now()

	for _, day := range models.Weekdays {
		date := monday.AddDate(0, 0, int(day))
		seen := map[string]int{}
		for _, b := range week[day] {
			start, err := utils.ParseTime(b.Start)
			if err != nil {
				return nil, fmt.Errorf("%s block %q: %w", day, b.Name, err)
			}
			end, err := utils.ParseTime(b.End)
			if err != nil {
				return nil, fmt.Errorf("%s block %q: %w", day, b.Name, err)
			}

			key := blockKey(day, b)
			ev := cal.AddEvent(blockUID(key, seen[key]))
			seen[key]++
			ev.SetDtStampTime(stamp)
			setTime(ev, ical.ComponentPropertyDtStart, at(date, start), zone)
			setTime(ev, ical.ComponentPropertyDtEnd, at(date, end), zone)
			ev.SetSummary(b.Name)
			ev.SetDescription(describe(b.Type))
			ev.AddCategory(b.Type.String())
			ev.SetColor(b.Type.Color())
			ev.AddRrule(rrule)
		}
	}

	return cal, nil
}

// Write serializes the calendar for week to w.
func Write(w io.Writer, week map[models.Day][]models.TimeBlock, opts Options) error {
	cal, err := Calendar(week, opts)
	if err != nil {
		return err
	}
	return cal.SerializeTo(w)
}

func at(date time.Time, minutes int) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), minutes/60, minutes%60, 0, 0, date.Location())
}

func blockKey(day models.Day, b models.TimeBlock) string {
	return fmt.Sprintf("%s|%s|%s|%s|%s", day, b.Start, b.End, b.Name, b.Type)
}

// blockUID derives a UID from the block itself. dup counts earlier identical
// blocks on the same day and only separates exact duplicates.
func blockUID(key string, dup int) string {
	if dup > 0 {
		key = fmt.Sprintf("%s|%d", key, dup)
	}
	return uuid.NewSHA1(uidNamespace, []byte(key)).String() + "@" + constants.AppName
}

func describe(t models.BlockType) string {
	switch t {
	case models.BlockActivity:
		return "Activity"
	case models.BlockCompulsory:
		return "Compulsory event"
	case models.BlockBreak:
		return "Break"
	default:
		return t.String()
	}
}
