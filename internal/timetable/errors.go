package timetable

import (
	"fmt"

	"github.com/julianstephens/timetable/internal/models"
)

// ValidationError reports user input that was rejected without mutating anything.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// ConflictError reports a block that would overlap an existing one.
// It is only returned by timetables created with strict overlap checking.
type ConflictError struct {
	Day   models.Day
	Start string
	End   string
	With  models.TimeBlock
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s %s-%s overlaps %q (%s-%s)",
		e.Day, e.Start, e.End, e.With.Name, e.With.Start, e.With.End)
}
