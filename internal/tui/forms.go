package tui

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/timetable/internal/constants"
	"github.com/julianstephens/timetable/internal/models"
	"github.com/julianstephens/timetable/internal/utils"
)

type ActivityFormModel struct {
	Name     string
	Priority int
	Deadline string
	Hours    string
}

type EventFormModel struct {
	Name  string
	Day   models.Day
	Start string
	End   string
}

type BreakFormModel struct {
	Name  string
	Day   models.Day
	Start string
}

func validateName(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("name is required")
	}
	return nil
}

func validateHours(s string) error {
	h, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("hours must be a whole number")
	}
	if h < constants.MinHours || h > constants.MaxHours {
		return fmt.Errorf("hours must be between %d and %d", constants.MinHours, constants.MaxHours)
	}
	return nil
}

// validateDeadline rejects dates before today. The core accepts past dates,
// the form does not.
func validateDeadline(today time.Time) func(string) error {
	return func(s string) error {
		d, err := utils.ParseDate(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("use YYYY-MM-DD")
		}
		if utils.DaysBetween(today, d) < 0 {
			return fmt.Errorf("deadline cannot be in the past")
		}
		return nil
	}
}

func validateTime(s string) error {
	_, err := utils.ParseTime(strings.TrimSpace(s))
	return err
}

func validateEnd(fm *EventFormModel) func(string) error {
	return func(s string) error {
		end, err := utils.ParseTime(strings.TrimSpace(s))
		if err != nil {
			return err
		}
		start, err := utils.ParseTime(strings.TrimSpace(fm.Start))
		if err == nil && end <= start {
			return fmt.Errorf("end must be after start")
		}
		return nil
	}
}

func dayOptions() []huh.Option[models.Day] {
	opts := make([]huh.Option[models.Day], 0, len(models.Weekdays))
	for _, d := range models.Weekdays {
		opts = append(opts, huh.NewOption(d.String(), d))
	}
	return opts
}

func priorityOptions() []huh.Option[int] {
	opts := make([]huh.Option[int], 0, constants.MaxPriority-constants.MinPriority+1)
	for p := constants.MinPriority; p <= constants.MaxPriority; p++ {
		opts = append(opts, huh.NewOption(strconv.Itoa(p), p))
	}
	return opts
}

// NewActivityForm creates the form for recording an activity
func NewActivityForm(fm *ActivityFormModel, today time.Time) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Activity").
				Value(&fm.Name).
				Validate(validateName),
			huh.NewSelect[int]().
				Title("Priority").
				Description("1 to 5").
				Options(priorityOptions()...).
				Value(&fm.Priority),
			huh.NewInput().
				Title("Deadline (YYYY-MM-DD)").
				Value(&fm.Deadline).
				Validate(validateDeadline(today)),
			huh.NewInput().
				Title("Hours required").
				Value(&fm.Hours).
				Validate(validateHours),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewEventForm creates the form for a compulsory event
func NewEventForm(fm *EventFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Event").
				Value(&fm.Name).
				Validate(validateName),
			huh.NewSelect[models.Day]().
				Title("Day").
				Options(dayOptions()...).
				Value(&fm.Day),
			huh.NewInput().
				Title("Start (HH:MM)").
				Value(&fm.Start).
				Validate(validateTime),
			huh.NewInput().
				Title("End (HH:MM)").
				Value(&fm.End).
				Validate(validateEnd(fm)),
		),
	).WithTheme(huh.ThemeDracula())
}

// NewBreakForm creates the form for a break of the default length
func NewBreakForm(fm *BreakFormModel, minutes int) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fm.Name).
				Validate(validateName),
			huh.NewSelect[models.Day]().
				Title("Day").
				Options(dayOptions()...).
				Value(&fm.Day),
			huh.NewInput().
				Title("Start (HH:MM)").
				Description(fmt.Sprintf("Lasts %d minutes, ending no later than 23:59", minutes)).
				Value(&fm.Start).
				Validate(validateTime),
		),
	).WithTheme(huh.ThemeDracula())
}
