package timetable

import (
	"fmt"
	"sort"

	"github.com/julianstephens/timetable/internal/models"
	"github.com/julianstephens/timetable/internal/utils"
)

// Option configures a Timetable.
type Option func(*Timetable)

// WithStrictOverlap makes AddEvent refuse blocks that overlap an existing
// block on the same day. By default overlaps are accepted and left to the
// caller to prevent.
func WithStrictOverlap(strict bool) Option {
	return func(t *Timetable) {
		t.strict = strict
	}
}

// Timetable holds one week of time blocks, Monday through Friday. Each day's
// blocks are kept sorted by start time. A Timetable is not safe for
// concurrent use.
type Timetable struct {
	days   map[models.Day][]models.TimeBlock
	strict bool
}

// New returns an empty timetable with all five days present.
func New(opts ...Option) *Timetable {
	t := &Timetable{
		days: make(map[models.Day][]models.TimeBlock, len(models.Weekdays)),
	}
	for _, d := range models.Weekdays {
		t.days[d] = []models.TimeBlock{}
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Strict reports whether overlapping inserts are rejected.
func (t *Timetable) Strict() bool {
	return t.strict
}

// IsSlotFree reports whether [start, end) overlaps no block on day.
// Touching boundaries do not conflict.
func (t *Timetable) IsSlotFree(day models.Day, start, end string) (bool, error) {
	_, found, err := t.firstConflict(day, start, end)
	if err != nil {
		return false, err
	}
	return !found, nil
}

func (t *Timetable) firstConflict(day models.Day, start, end string) (models.TimeBlock, bool, error) {
	if !day.Valid() {
		return models.TimeBlock{}, false, &ValidationError{Field: "day", Reason: fmt.Sprintf("invalid day %d", int(day))}
	}
	s, err := utils.ParseTime(start)
	if err != nil {
		return models.TimeBlock{}, false, err
	}
	e, err := utils.ParseTime(end)
	if err != nil {
		return models.TimeBlock{}, false, err
	}

	for _, b := range t.days[day] {
		bs := utils.MustParseTime(b.Start)
		be := utils.MustParseTime(b.End)
		if !(e <= bs || s >= be) {
			return b, true, nil
		}
	}
	return models.TimeBlock{}, false, nil
}

// AddEvent places a block on day and re-sorts the day by start time.
// Blocks sharing a start time keep their insertion order.
//
// Times must be well-formed HH:MM with start strictly before end. In strict
// mode an overlapping block is rejected with a *ConflictError and the
// timetable is left unchanged.
func (t *Timetable) AddEvent(day models.Day, start, end, name string, blockType models.BlockType) error {
	block, err := t.Check(day, start, end, name, blockType)
	if err != nil {
		return err
	}
	t.insert(day, block)
	return nil
}

// Check runs the same validation and overlap checks as AddEvent without
// changing the timetable. It returns the block AddEvent would insert.
func (t *Timetable) Check(day models.Day, start, end, name string, blockType models.BlockType) (models.TimeBlock, error) {
	block, err := newBlock(day, start, end, name, blockType)
	if err != nil {
		return models.TimeBlock{}, err
	}

	if t.strict {
		with, found, err := t.firstConflict(day, block.Start, block.End)
		if err != nil {
			return models.TimeBlock{}, err
		}
		if found {
			return models.TimeBlock{}, &ConflictError{Day: day, Start: block.Start, End: block.End, With: with}
		}
	}
	return block, nil
}

// Restore re-inserts previously persisted blocks for day in the order given,
// without overlap checks.
func (t *Timetable) Restore(day models.Day, blocks []models.TimeBlock) error {
	for _, b := range blocks {
		block, err := newBlock(day, b.Start, b.End, b.Name, b.Type)
		if err != nil {
			return fmt.Errorf("restore %s block %q: %w", day, b.Name, err)
		}
		t.insert(day, block)
	}
	return nil
}

func (t *Timetable) insert(day models.Day, block models.TimeBlock) {
	blocks := append(t.days[day], block)
	sort.SliceStable(blocks, func(i, j int) bool {
		return utils.MustParseTime(blocks[i].Start) < utils.MustParseTime(blocks[j].Start)
	})
	t.days[day] = blocks
}

func newBlock(day models.Day, start, end, name string, blockType models.BlockType) (models.TimeBlock, error) {
	if !day.Valid() {
		return models.TimeBlock{}, &ValidationError{Field: "day", Reason: fmt.Sprintf("invalid day %d", int(day))}
	}
	if !blockType.Valid() {
		return models.TimeBlock{}, &ValidationError{Field: "type", Reason: fmt.Sprintf("invalid block type %d", int(blockType))}
	}
	s, err := utils.ParseTime(start)
	if err != nil {
		return models.TimeBlock{}, err
	}
	e, err := utils.ParseTime(end)
	if err != nil {
		return models.TimeBlock{}, err
	}
	if e <= s {
		return models.TimeBlock{}, &ValidationError{
			Field:  "end",
			Reason: fmt.Sprintf("end time (%s) must be after start time (%s)", end, start),
		}
	}
	return models.TimeBlock{
		Start: utils.FormatTime(s),
		End:   utils.FormatTime(e),
		Name:  name,
		Type:  blockType,
	}, nil
}

// Day returns a copy of the blocks scheduled on day, sorted by start.
func (t *Timetable) Day(day models.Day) []models.TimeBlock {
	blocks := t.days[day]
	out := make([]models.TimeBlock, len(blocks))
	copy(out, blocks)
	return out
}

// Week returns a copy of every day's blocks.
func (t *Timetable) Week() map[models.Day][]models.TimeBlock {
	out := make(map[models.Day][]models.TimeBlock, len(t.days))
	for _, d := range models.Weekdays {
		out[d] = t.Day(d)
	}
	return out
}

// Blocks returns every block tagged with its day, Monday first and sorted
// by start within a day.
func (t *Timetable) Blocks() []models.ScheduledBlock {
	out := make([]models.ScheduledBlock, 0, t.Len())
	for _, d := range models.Weekdays {
		for _, b := range t.days[d] {
			out = append(out, models.ScheduledBlock{Day: d, TimeBlock: b})
		}
	}
	return out
}

// ScheduledDays counts days holding at least one block.
func (t *Timetable) ScheduledDays() int {
	n := 0
	for _, d := range models.Weekdays {
		if len(t.days[d]) > 0 {
			n++
		}
	}
	return n
}

// Len returns the total number of blocks across the week.
func (t *Timetable) Len() int {
	n := 0
	for _, d := range models.Weekdays {
		n += len(t.days[d])
	}
	return n
}
