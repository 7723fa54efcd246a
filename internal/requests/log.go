package requests

import (
	"fmt"
	"strings"

	"github.com/julianstephens/timetable/internal/constants"
	"github.com/julianstephens/timetable/internal/models"
	"github.com/julianstephens/timetable/internal/timetable"
	"github.com/julianstephens/timetable/internal/utils"
)

// ValidationError is shared with the timetable so callers match a single type.
type ValidationError = timetable.ValidationError

// Log keeps the submitted activities and compulsory events in submission
// order. Entries are records only: nothing here reads them back into the
// timetable, and there is no removal.
type Log struct {
	activities       []models.ActivityRequest
	compulsoryEvents []models.CompulsoryEventRequest
}

// New returns an empty request log.
func New() *Log {
	return &Log{
		activities:       []models.ActivityRequest{},
		compulsoryEvents: []models.CompulsoryEventRequest{},
	}
}

// ValidateActivity checks an activity request without recording it.
func ValidateActivity(req models.ActivityRequest) error {
	if strings.TrimSpace(req.Activity) == "" {
		return &ValidationError{Field: "activity", Reason: "activity name is required"}
	}
	if req.Priority < constants.MinPriority || req.Priority > constants.MaxPriority {
		return &ValidationError{
			Field:  "priority",
			Reason: fmt.Sprintf("priority must be between %d and %d", constants.MinPriority, constants.MaxPriority),
		}
	}
	if req.Timing < constants.MinHours || req.Timing > constants.MaxHours {
		return &ValidationError{
			Field:  "timing",
			Reason: fmt.Sprintf("hours required must be between %d and %d", constants.MinHours, constants.MaxHours),
		}
	}
	return nil
}

// ValidateCompulsoryEvent checks a compulsory event request without recording it.
func ValidateCompulsoryEvent(req models.CompulsoryEventRequest) error {
	if strings.TrimSpace(req.Event) == "" {
		return &ValidationError{Field: "event", Reason: "event name is required"}
	}
	if !req.Day.Valid() {
		return &ValidationError{Field: "day", Reason: fmt.Sprintf("invalid day %d", int(req.Day))}
	}
	start, err := utils.ParseTime(req.StartTime)
	if err != nil {
		return err
	}
	end, err := utils.ParseTime(req.EndTime)
	if err != nil {
		return err
	}
	if end <= start {
		return &ValidationError{
			Field:  "end_time",
			Reason: fmt.Sprintf("end time (%s) must be after start time (%s)", req.EndTime, req.StartTime),
		}
	}
	return nil
}

// AddActivity validates and appends an activity request.
func (l *Log) AddActivity(req models.ActivityRequest) error {
	if err := ValidateActivity(req); err != nil {
		return err
	}
	l.activities = append(l.activities, req)
	return nil
}

// AddCompulsoryEvent validates and appends a compulsory event request.
func (l *Log) AddCompulsoryEvent(req models.CompulsoryEventRequest) error {
	if err := ValidateCompulsoryEvent(req); err != nil {
		return err
	}
	l.compulsoryEvents = append(l.compulsoryEvents, req)
	return nil
}

// Activities returns a copy of the recorded activities.
func (l *Log) Activities() []models.ActivityRequest {
	out := make([]models.ActivityRequest, len(l.activities))
	copy(out, l.activities)
	return out
}

// CompulsoryEvents returns a copy of the recorded compulsory events.
func (l *Log) CompulsoryEvents() []models.CompulsoryEventRequest {
	out := make([]models.CompulsoryEventRequest, len(l.compulsoryEvents))
	copy(out, l.compulsoryEvents)
	return out
}
