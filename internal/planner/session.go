package planner

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/timetable/internal/constants"
	"github.com/julianstephens/timetable/internal/logger"
	"github.com/julianstephens/timetable/internal/models"
	"github.com/julianstephens/timetable/internal/requests"
	"github.com/julianstephens/timetable/internal/timetable"
	"github.com/julianstephens/timetable/internal/utils"
	"github.com/julianstephens/timetable/internal/validation"
)

// Recorder persists every accepted mutation of a session. A session calls it
// before changing its own state, so a failed save leaves the session as it was.
type Recorder interface {
	AddBlock(models.ScheduledBlock) error
	AddActivity(models.ActivityRequest) error
	// AddCompulsoryEvent saves the event's block and its request together.
	AddCompulsoryEvent(models.ScheduledBlock, models.CompulsoryEventRequest) error
}

// Source supplies previously persisted session state, oldest first.
type Source interface {
	GetAllBlocks() ([]models.ScheduledBlock, error)
	GetAllActivities() ([]models.ActivityRequest, error)
	GetAllCompulsoryEvents() ([]models.CompulsoryEventRequest, error)
}

// Store is a Recorder that can also restore a session.
type Store interface {
	Recorder
	Source
}

// Options configures a Session.
type Options struct {
	// StrictOverlap rejects blocks that overlap an existing block.
	StrictOverlap bool
	// Location decides what "today" is when computing deadlines. Defaults to time.Local.
	Location *time.Location
	// Now replaces the wall clock, mainly in tests.
	Now func() time.Time
	// BreakMinutes is the default length of a break. Defaults to constants.DefaultBreakMinutes.
	BreakMinutes int
	// Recorder, when set, receives every accepted mutation.
	Recorder Recorder
}

// Metrics summarises a session for dashboards.
type Metrics struct {
	Activities       int `json:"activities"`
	CompulsoryEvents int `json:"compulsory_events"`
	DaysScheduled    int `json:"days_scheduled"`
	Blocks           int `json:"blocks"`
}

// Session owns one timetable and its request log. It is the only entry
// point presentation layers use to change either. A Session is not safe for
// concurrent use.
type Session struct {
	timetable *timetable.Timetable
	log       *requests.Log
	loc       *time.Location
	now       func() time.Time
	breakMins int
	rec       Recorder
}

// New returns an empty session.
func New(opts Options) *Session {
	s := &Session{
		timetable: timetable.New(timetable.WithStrictOverlap(opts.StrictOverlap)),
		log:       requests.New(),
		loc:       opts.Location,
		now:       opts.Now,
		breakMins: opts.BreakMinutes,
		rec:       opts.Recorder,
	}
	if s.loc == nil {
		s.loc = time.Local
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.breakMins <= 0 {
		s.breakMins = constants.DefaultBreakMinutes
	}
	return s
}

// Open rebuilds a session from store and records further mutations back to
// it. Blocks are replayed in their original insertion order, so equal start
// times keep their relative order and overlaps accepted earlier survive even
// when StrictOverlap is now set.
func Open(store Store, opts Options) (*Session, error) {
	opts.Recorder = store
	s := New(opts)

	blocks, err := store.GetAllBlocks()
	if err != nil {
		return nil, fmt.Errorf("failed to load blocks: %w", err)
	}
	for _, b := range blocks {
		if err := s.timetable.Restore(b.Day, []models.TimeBlock{b.TimeBlock}); err != nil {
			return nil, err
		}
	}

	activities, err := store.GetAllActivities()
	if err != nil {
		return nil, fmt.Errorf("failed to load activities: %w", err)
	}
	for _, a := range activities {
		if err := s.log.AddActivity(a); err != nil {
			return nil, fmt.Errorf("stored activity %q: %w", a.ID, err)
		}
	}

	events, err := store.GetAllCompulsoryEvents()
	if err != nil {
		return nil, fmt.Errorf("failed to load compulsory events: %w", err)
	}
	for _, e := range events {
		if err := s.log.AddCompulsoryEvent(e); err != nil {
			return nil, fmt.Errorf("stored compulsory event %q: %w", e.ID, err)
		}
	}

	logger.Debug("Session restored",
		"blocks", len(blocks), "activities", len(activities), "compulsory_events", len(events))
	return s, nil
}

// Today returns the current date in the session's location.
func (s *Session) Today() time.Time {
	return s.now().In(s.loc)
}

// AddActivity records a flexible activity. The deadline is stored as whole
// days from today to deadlineDate and is negative for past dates.
func (s *Session) AddActivity(name string, priority int, deadlineDate time.Time, hours int) (models.ActivityRequest, error) {
	now := s.Today()
	req := models.ActivityRequest{
		ID:           uuid.NewString(),
		Activity:     name,
		Priority:     priority,
		Deadline:     utils.DaysBetween(now, deadlineDate),
		Timing:       hours,
		DeadlineDate: deadlineDate.Format(constants.DateFormat),
		SubmittedAt:  now.Format(time.RFC3339),
	}
	if err := requests.ValidateActivity(req); err != nil {
		logger.Warn("Activity rejected", "activity", name, "error", err)
		return models.ActivityRequest{}, err
	}

	if s.rec != nil {
		if err := s.rec.AddActivity(req); err != nil {
			return models.ActivityRequest{}, fmt.Errorf("failed to save activity: %w", err)
		}
	}
	if err := s.log.AddActivity(req); err != nil {
		return models.ActivityRequest{}, err
	}
	logger.Info("Activity recorded", "id", req.ID, "activity", name, "deadline", req.Deadline)
	return req, nil
}

// AddCompulsoryEvent places a fixed event on the timetable as a COMPULSORY
// block and records the request. Nothing is recorded when placement fails.
func (s *Session) AddCompulsoryEvent(name string, day models.Day, start, end string) (models.CompulsoryEventRequest, error) {
	req := models.CompulsoryEventRequest{
		ID:          uuid.NewString(),
		Event:       name,
		Day:         day,
		StartTime:   start,
		EndTime:     end,
		SubmittedAt: s.Today().Format(time.RFC3339),
	}
	if err := requests.ValidateCompulsoryEvent(req); err != nil {
		logger.Warn("Compulsory event rejected", "event", name, "error", err)
		return models.CompulsoryEventRequest{}, err
	}

	block, err := s.timetable.Check(day, start, end, name, models.BlockCompulsory)
	if err != nil {
		logger.Warn("Compulsory event not placed", "event", name, "day", day, "error", err)
		return models.CompulsoryEventRequest{}, err
	}
	req.StartTime = block.Start
	req.EndTime = block.End

	if s.rec != nil {
		if err := s.rec.AddCompulsoryEvent(models.ScheduledBlock{Day: day, TimeBlock: block}, req); err != nil {
			return models.CompulsoryEventRequest{}, fmt.Errorf("failed to save compulsory event: %w", err)
		}
	}
	if err := s.timetable.AddEvent(day, block.Start, block.End, name, models.BlockCompulsory); err != nil {
		return models.CompulsoryEventRequest{}, err
	}
	if err := s.log.AddCompulsoryEvent(req); err != nil {
		return models.CompulsoryEventRequest{}, err
	}
	logger.Info("Compulsory event recorded", "id", req.ID, "event", name, "day", day,
		"start", req.StartTime, "end", req.EndTime)
	return req, nil
}

// IsSlotFree reports whether [start, end) on day overlaps no block.
func (s *Session) IsSlotFree(day models.Day, start, end string) (bool, error) {
	return s.timetable.IsSlotFree(day, start, end)
}

// AddEvent places a block directly, without a request record.
func (s *Session) AddEvent(day models.Day, start, end, name string, blockType models.BlockType) error {
	block, err := s.timetable.Check(day, start, end, name, blockType)
	if err != nil {
		logger.Warn("Block rejected", "name", name, "day", day, "type", blockType, "error", err)
		return err
	}

	if s.rec != nil {
		if err := s.rec.AddBlock(models.ScheduledBlock{Day: day, TimeBlock: block}); err != nil {
			return fmt.Errorf("failed to save block: %w", err)
		}
	}
	if err := s.timetable.AddEvent(day, block.Start, block.End, name, blockType); err != nil {
		return err
	}
	logger.Info("Block added", "name", name, "day", day, "start", block.Start, "end", block.End, "type", blockType)
	return nil
}

// AddBreak places a BREAK block of the configured default length. The end
// time saturates at 23:59.
func (s *Session) AddBreak(day models.Day, start, name string) error {
	end, err := utils.AddMinutes(start, s.breakMins)
	if err != nil {
		return err
	}
	return s.AddEvent(day, start, end, name, models.BlockBreak)
}

// Location is the zone the session's clock times are in.
func (s *Session) Location() *time.Location {
	return s.loc
}

// BreakMinutes returns the default break length.
func (s *Session) BreakMinutes() int {
	return s.breakMins
}

// Timetable gives read access to the week. Callers must not mutate it
// directly; use the Session methods so changes are recorded.
func (s *Session) Timetable() *timetable.Timetable {
	return s.timetable
}

// Requests gives read access to the request log.
func (s *Session) Requests() *requests.Log {
	return s.log
}

// Metrics counts recorded requests and scheduled days.
func (s *Session) Metrics() Metrics {
	return Metrics{
		Activities:       len(s.log.Activities()),
		CompulsoryEvents: len(s.log.CompulsoryEvents()),
		DaysScheduled:    s.timetable.ScheduledDays(),
		Blocks:           s.timetable.Len(),
	}
}

// Validate reports overlaps left by lenient placement together with any
// inconsistency between the request log and the timetable.
func (s *Session) Validate() validation.ValidationResult {
	return validation.New().Validate(s.timetable.Blocks(), s.log.Activities(), s.log.CompulsoryEvents())
}
