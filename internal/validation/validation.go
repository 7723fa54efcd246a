package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/timetable/internal/constants"
	"github.com/julianstephens/timetable/internal/models"
	"github.com/julianstephens/timetable/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictOverlappingBlocks   ConflictType = "overlapping_blocks"
	ConflictInvalidTime         ConflictType = "invalid_time"
	ConflictInvalidRange        ConflictType = "invalid_range"
	ConflictInvalidDay          ConflictType = "invalid_day"
	ConflictInvalidType         ConflictType = "invalid_type"
	ConflictDuplicateActivity   ConflictType = "duplicate_activity_name"
	ConflictUnplacedCompulsory  ConflictType = "unplaced_compulsory_event"
	ConflictActivityOutOfBounds ConflictType = "activity_out_of_bounds"
)

// Conflict represents a detected problem in stored timetable data
type Conflict struct {
	Type        ConflictType `json:"type"`
	Description string       `json:"description"`
	Day         string       `json:"day,omitempty"`        // weekday name (if applicable)
	Items       []string     `json:"items,omitempty"`      // block or request names involved
	TimeRange   string       `json:"time_range,omitempty"` // HH:MM-HH:MM (if applicable)
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict `json:"conflicts"`
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// Count returns how many conflicts of type t were found.
func (vr *ValidationResult) Count(t ConflictType) int {
	n := 0
	for _, c := range vr.Conflicts {
		if c.Type == t {
			n++
		}
	}
	return n
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

// Validator checks persisted blocks and requests for problems the
// timetable accepts (overlaps in lenient mode) or cannot load (hand-edited
// or corrupt rows).
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

type span struct {
	block      models.TimeBlock
	start, end int
}

// ValidateBlocks checks every block on its own, then each day for overlaps.
func (v *Validator) ValidateBlocks(blocks []models.ScheduledBlock) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	byDay := make(map[models.Day][]span)

	for _, b := range blocks {
		if !b.Day.Valid() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidDay,
				Description: fmt.Sprintf("Block \"%s\" is on an unknown day (%d)", b.Name, int(b.Day)),
				Items:       []string{b.Name},
			})
			continue
		}
		if !b.Type.Valid() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidType,
				Description: fmt.Sprintf("Block \"%s\" on %s has an unknown type", b.Name, b.Day),
				Day:         b.Day.String(),
				Items:       []string{b.Name},
			})
		}

		start, startErr := utils.ParseTime(b.Start)
		end, endErr := utils.ParseTime(b.End)
		if startErr != nil || endErr != nil {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidTime,
				Description: fmt.Sprintf("Block \"%s\" on %s has an invalid time: %s-%s", b.Name, b.Day, b.Start, b.End),
				Day:         b.Day.String(),
				Items:       []string{b.Name},
			})
			continue
		}
		if end <= start {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidRange,
				Description: fmt.Sprintf("Block \"%s\" on %s ends before it starts: %s-%s", b.Name, b.Day, b.Start, b.End),
				Day:         b.Day.String(),
				Items:       []string{b.Name},
				TimeRange:   b.Start + "-" + b.End,
			})
			continue
		}
		byDay[b.Day] = append(byDay[b.Day], span{block: b.TimeBlock, start: start, end: end})
	}

	for _, day := range models.Weekdays {
		spans := byDay[day]
		sort.SliceStable(spans, func(i, j int) bool { return spans[i].start < spans[j].start })
		for i := 0; i < len(spans); i++ {
			for j := i + 1; j < len(spans) && spans[j].start < spans[i].end; j++ {
				result.Conflicts = append(result.Conflicts, overlapConflict(day, spans[i], spans[j]))
			}
		}
	}

	return result
}

func overlapConflict(day models.Day, a, b span) Conflict {
	from := max(a.start, b.start)
	to := min(a.end, b.end)
	timeRange := utils.FormatTime(from) + "-" + utils.FormatTime(to)
	return Conflict{
		Type: ConflictOverlappingBlocks,
		Description: fmt.Sprintf("%s: \"%s\" (%s-%s) overlaps \"%s\" (%s-%s) during %s",
			day, a.block.Name, a.block.Start, a.block.End, b.block.Name, b.block.Start, b.block.End, timeRange),
		Day:       day.String(),
		Items:     []string{a.block.Name, b.block.Name},
		TimeRange: timeRange,
	}
}

// ValidateRequests checks the request log against the recorded bounds and
// the placed blocks.
func (v *Validator) ValidateRequests(activities []models.ActivityRequest, events []models.CompulsoryEventRequest, blocks []models.ScheduledBlock) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	// Duplicates are allowed on entry but usually a mistake
	seen := make(map[string]int)
	var order []string
	for _, a := range activities {
		key := strings.ToLower(strings.TrimSpace(a.Activity))
		if key == "" {
			continue
		}
		if seen[key] == 0 {
			order = append(order, a.Activity)
		}
		seen[key]++
	}
	for _, name := range order {
		if n := seen[strings.ToLower(strings.TrimSpace(name))]; n > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateActivity,
				Description: fmt.Sprintf("Activity \"%s\" was submitted %d times", name, n),
				Items:       []string{name},
			})
		}
	}

	for _, a := range activities {
		if a.Priority < constants.MinPriority || a.Priority > constants.MaxPriority ||
			a.Timing < constants.MinHours || a.Timing > constants.MaxHours {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictActivityOutOfBounds,
				Description: fmt.Sprintf("Activity \"%s\" has priority %d and %d hour(s), outside the accepted bounds", a.Activity, a.Priority, a.Timing),
				Items:       []string{a.Activity},
			})
		}
	}

	placed := make(map[models.ScheduledBlock]int)
	for _, b := range blocks {
		if b.Type == models.BlockCompulsory {
			placed[b]++
		}
	}
	for _, e := range events {
		key := models.ScheduledBlock{Day: e.Day, TimeBlock: models.TimeBlock{
			Start: e.StartTime, End: e.EndTime, Name: e.Event, Type: models.BlockCompulsory,
		}}
		if placed[key] > 0 {
			placed[key]--
			continue
		}
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictUnplacedCompulsory,
			Description: fmt.Sprintf("Compulsory event \"%s\" (%s %s-%s) has no matching block", e.Event, e.Day, e.StartTime, e.EndTime),
			Day:         e.Day.String(),
			Items:       []string{e.Event},
			TimeRange:   e.StartTime + "-" + e.EndTime,
		})
	}

	return result
}

// Validate runs every check and merges the results.
func (v *Validator) Validate(blocks []models.ScheduledBlock, activities []models.ActivityRequest, events []models.CompulsoryEventRequest) ValidationResult {
	result := v.ValidateBlocks(blocks)
	reqs := v.ValidateRequests(activities, events, blocks)
	result.Conflicts = append(result.Conflicts, reqs.Conflicts...)
	return result
}
