package errors

import (
	"errors"
	"fmt"
	"os"

	"github.com/julianstephens/timetable/internal/logger"
	"github.com/julianstephens/timetable/internal/timetable"
	"github.com/julianstephens/timetable/internal/utils"
)

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	msg := fmt.Sprintf("Error: %v", err)
	if hint := Hint(err); hint != "" {
		msg += "\n" + hint
	}
	return msg
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Hint returns a short suggestion for the user-facing domain errors, or "".
func Hint(err error) string {
	var fe *utils.FormatError
	var ce *timetable.ConflictError
	switch {
	case errors.As(err, &fe):
		return "Hint: times use 24-hour HH:MM, e.g. 09:30"
	case errors.As(err, &ce):
		return "Hint: run 'timetable slot check' to find a free slot"
	}
	return ""
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
