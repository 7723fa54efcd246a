package planner

import (
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/timetable/internal/models"
	"github.com/julianstephens/timetable/internal/timetable"
	"github.com/julianstephens/timetable/internal/utils"
)

type memStore struct {
	blocks     []models.ScheduledBlock
	activities []models.ActivityRequest
	events     []models.CompulsoryEventRequest
	fail       bool
}

var errDiskFull = errors.New("disk full")

func (m *memStore) AddBlock(b models.ScheduledBlock) error {
	if m.fail {
		return errDiskFull
	}
	m.blocks = append(m.blocks, b)
	return nil
}

func (m *memStore) AddActivity(a models.ActivityRequest) error {
	if m.fail {
		return errDiskFull
	}
	m.activities = append(m.activities, a)
	return nil
}

func (m *memStore) AddCompulsoryEvent(b models.ScheduledBlock, e models.CompulsoryEventRequest) error {
	if m.fail {
		return errDiskFull
	}
	m.blocks = append(m.blocks, b)
	m.events = append(m.events, e)
	return nil
}

func (m *memStore) GetAllBlocks() ([]models.ScheduledBlock, error) { return m.blocks, nil }

func (m *memStore) GetAllActivities() ([]models.ActivityRequest, error) { return m.activities, nil }

func (m *memStore) GetAllCompulsoryEvents() ([]models.CompulsoryEventRequest, error) {
	return m.events, nil
}

func fixedClock(t *testing.T) func() time.Time {
	t.Helper()
	now := time.Date(2026, time.March, 9, 14, 30, 0, 0, time.UTC)
	return func() time.Time { return now }
}

func TestAddCompulsoryEvent_PlacesBlock(t *testing.T) {
	s := New(Options{Now: fixedClock(t)})

	req, err := s.AddCompulsoryEvent("Lecture", models.Monday, "09:00", "10:30")
	if err != nil {
		t.Fatalf("AddCompulsoryEvent() error = %v", err)
	}
	if req.ID == "" {
		t.Error("request ID was not assigned")
	}

	events := s.Requests().CompulsoryEvents()
	if len(events) != 1 {
		t.Fatalf("len(CompulsoryEvents()) = %d, want 1", len(events))
	}

	monday := s.Timetable().Day(models.Monday)
	want := models.TimeBlock{Start: "09:00", End: "10:30", Name: "Lecture", Type: models.BlockCompulsory}
	if len(monday) != 1 || monday[0] != want {
		t.Errorf("Monday = %+v, want [%+v]", monday, want)
	}
}

func TestAddCompulsoryEvent_RejectsEndBeforeStart(t *testing.T) {
	s := New(Options{Now: fixedClock(t)})

	_, err := s.AddCompulsoryEvent("X", models.Monday, "10:00", "09:00")
	var ve *timetable.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("AddCompulsoryEvent() error = %v, want *ValidationError", err)
	}
	if n := len(s.Requests().CompulsoryEvents()); n != 0 {
		t.Errorf("len(CompulsoryEvents()) = %d, want 0", n)
	}
	if n := s.Timetable().Len(); n != 0 {
		t.Errorf("Timetable().Len() = %d, want 0", n)
	}
}

func TestAddCompulsoryEvent_MalformedTime(t *testing.T) {
	s := New(Options{Now: fixedClock(t)})

	_, err := s.AddCompulsoryEvent("X", models.Tuesday, "9am", "10:00")
	var fe *utils.FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("AddCompulsoryEvent() error = %v, want *utils.FormatError", err)
	}
}

func TestAddCompulsoryEvent_StrictConflictRecordsNothing(t *testing.T) {
	store := &memStore{}
	s := New(Options{Now: fixedClock(t), StrictOverlap: true, Recorder: store})

	if _, err := s.AddCompulsoryEvent("Lecture", models.Monday, "09:00", "10:30"); err != nil {
		t.Fatalf("first AddCompulsoryEvent() error = %v", err)
	}
	_, err := s.AddCompulsoryEvent("Lab", models.Monday, "10:00", "11:00")
	var ce *timetable.ConflictError
	if !errors.As(err, &ce) {
		t.Fatalf("second AddCompulsoryEvent() error = %v, want *ConflictError", err)
	}
	if ce.With.Name != "Lecture" {
		t.Errorf("conflict with %q, want Lecture", ce.With.Name)
	}
	if n := len(s.Requests().CompulsoryEvents()); n != 1 {
		t.Errorf("len(CompulsoryEvents()) = %d, want 1", n)
	}
	if len(store.blocks) != 1 || len(store.events) != 1 {
		t.Errorf("store has %d blocks and %d events, want 1 and 1", len(store.blocks), len(store.events))
	}
}

func TestAddCompulsoryEvent_LenientAcceptsOverlap(t *testing.T) {
	s := New(Options{Now: fixedClock(t)})

	if _, err := s.AddCompulsoryEvent("Lecture", models.Monday, "09:00", "10:30"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddCompulsoryEvent("Lab", models.Monday, "10:00", "11:00"); err != nil {
		t.Fatalf("lenient AddCompulsoryEvent() error = %v", err)
	}
	if n := len(s.Timetable().Day(models.Monday)); n != 2 {
		t.Errorf("Monday has %d blocks, want 2", n)
	}
}

func TestAddActivity_Deadline(t *testing.T) {
	clock := fixedClock(t)
	today := clock()

	tests := []struct {
		name     string
		deadline time.Time
		want     int
	}{
		{name: "five days ahead", deadline: today.AddDate(0, 0, 5), want: 5},
		{name: "today", deadline: today, want: 0},
		{name: "in the past", deadline: today.AddDate(0, 0, -3), want: -3},
		{
			name:     "date only value",
			deadline: time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC),
			want:     5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(Options{Now: clock, Location: time.UTC})
			req, err := s.AddActivity("Essay", 3, tt.deadline, 4)
			if err != nil {
				t.Fatalf("AddActivity() error = %v", err)
			}
			if req.Deadline != tt.want {
				t.Errorf("Deadline = %d, want %d", req.Deadline, tt.want)
			}
			got := s.Requests().Activities()
			if len(got) != 1 || got[0].Deadline != tt.want {
				t.Errorf("Activities() = %+v, want one entry with deadline %d", got, tt.want)
			}
		})
	}
}

func TestAddActivity_NeverSchedules(t *testing.T) {
	s := New(Options{Now: fixedClock(t)})
	if _, err := s.AddActivity("Essay", 5, s.Today().AddDate(0, 0, 1), 8); err != nil {
		t.Fatal(err)
	}
	if n := s.Timetable().Len(); n != 0 {
		t.Errorf("Timetable().Len() = %d, want 0", n)
	}
}

func TestAddActivity_Invalid(t *testing.T) {
	store := &memStore{}
	s := New(Options{Now: fixedClock(t), Recorder: store})

	_, err := s.AddActivity("", 3, s.Today(), 1)
	var ve *timetable.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("AddActivity() error = %v, want *ValidationError", err)
	}
	if len(store.activities) != 0 {
		t.Error("rejected activity was persisted")
	}
}

func TestAddBreak_DefaultLengthSaturates(t *testing.T) {
	s := New(Options{Now: fixedClock(t), BreakMinutes: 120})

	if err := s.AddBreak(models.Wednesday, "12:00", "Lunch"); err != nil {
		t.Fatalf("AddBreak() error = %v", err)
	}
	if err := s.AddBreak(models.Wednesday, "22:30", "Late"); err != nil {
		t.Fatalf("AddBreak() error = %v", err)
	}

	got := s.Timetable().Day(models.Wednesday)
	if got[0].End != "14:00" || got[0].Type != models.BlockBreak {
		t.Errorf("first break = %+v, want end 14:00 BREAK", got[0])
	}
	if got[1].End != "23:59" {
		t.Errorf("late break end = %s, want 23:59", got[1].End)
	}
}

func TestMetrics(t *testing.T) {
	s := New(Options{Now: fixedClock(t)})
	if _, err := s.AddCompulsoryEvent("Lecture", models.Monday, "09:00", "10:00"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddCompulsoryEvent("Seminar", models.Thursday, "13:00", "15:00"); err != nil {
		t.Fatal(err)
	}
	if err := s.AddEvent(models.Monday, "12:00", "13:00", "Lunch", models.BlockBreak); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddActivity("Essay", 2, s.Today(), 3); err != nil {
		t.Fatal(err)
	}

	want := Metrics{Activities: 1, CompulsoryEvents: 2, DaysScheduled: 2, Blocks: 3}
	if got := s.Metrics(); got != want {
		t.Errorf("Metrics() = %+v, want %+v", got, want)
	}
}

func TestOpen_RestoresInInsertionOrder(t *testing.T) {
	store := &memStore{}
	first := New(Options{Now: fixedClock(t), Recorder: store})

	if _, err := first.AddCompulsoryEvent("Lecture", models.Monday, "09:00", "10:30"); err != nil {
		t.Fatal(err)
	}
	if err := first.AddEvent(models.Monday, "09:00", "09:30", "Standup", models.BlockActivity); err != nil {
		t.Fatal(err)
	}
	if err := first.AddEvent(models.Monday, "08:00", "08:30", "Coffee", models.BlockBreak); err != nil {
		t.Fatal(err)
	}
	if _, err := first.AddActivity("Essay", 3, first.Today(), 2); err != nil {
		t.Fatal(err)
	}

	// Overlapping blocks saved earlier must load under strict mode too.
	second, err := Open(store, Options{Now: fixedClock(t), StrictOverlap: true})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	want := first.Timetable().Day(models.Monday)
	got := second.Timetable().Day(models.Monday)
	if len(got) != len(want) {
		t.Fatalf("restored %d blocks, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("block %d = %+v, want %+v", i, got[i], want[i])
		}
	}
	if got := second.Metrics(); got != first.Metrics() {
		t.Errorf("restored Metrics() = %+v, want %+v", got, first.Metrics())
	}

	// Further mutations go to the same store.
	if err := second.AddEvent(models.Friday, "16:00", "17:00", "Review", models.BlockActivity); err != nil {
		t.Fatal(err)
	}
	if len(store.blocks) != 4 {
		t.Errorf("store has %d blocks, want 4", len(store.blocks))
	}
}

func TestAddEvent_RecorderFailure(t *testing.T) {
	store := &memStore{fail: true}
	s := New(Options{Now: fixedClock(t), Recorder: store})

	err := s.AddEvent(models.Monday, "09:00", "10:00", "Gym", models.BlockActivity)
	if err == nil {
		t.Fatal("AddEvent() error = nil, want save failure")
	}
	if !errors.Is(err, errDiskFull) {
		t.Errorf("AddEvent() error = %v, want wrapped save failure", err)
	}
	var ve *timetable.ValidationError
	if errors.As(err, &ve) {
		t.Errorf("save failure reported as validation error: %v", err)
	}
	if got := len(s.Timetable().Day(models.Monday)); got != 0 {
		t.Errorf("Monday has %d blocks after failed save, want 0", got)
	}
}

func TestRecorderFailure_LeavesSessionUnchanged(t *testing.T) {
	store := &memStore{fail: true}
	s := New(Options{Now: fixedClock(t), Recorder: store})

	if _, err := s.AddCompulsoryEvent("Lecture", models.Tuesday, "09:00", "10:30"); !errors.Is(err, errDiskFull) {
		t.Errorf("AddCompulsoryEvent() error = %v, want save failure", err)
	}
	deadline := time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC)
	if _, err := s.AddActivity("Essay", 2, deadline, 3); !errors.Is(err, errDiskFull) {
		t.Errorf("AddActivity() error = %v, want save failure", err)
	}
	if err := s.AddBreak(models.Tuesday, "12:00", "Lunch"); !errors.Is(err, errDiskFull) {
		t.Errorf("AddBreak() error = %v, want save failure", err)
	}

	if got := s.Metrics(); got != (Metrics{}) {
		t.Errorf("Metrics() after failed saves = %+v, want zero", got)
	}
	if len(store.blocks) != 0 || len(store.events) != 0 || len(store.activities) != 0 {
		t.Errorf("store kept partial writes: %+v", store)
	}

	// The same session accepts the event once the store recovers.
	store.fail = false
	if _, err := s.AddCompulsoryEvent("Lecture", models.Tuesday, "09:00", "10:30"); err != nil {
		t.Fatalf("AddCompulsoryEvent() after recovery error = %v", err)
	}
	if len(store.blocks) != 1 || len(store.events) != 1 {
		t.Errorf("store has %d blocks and %d events, want 1 and 1", len(store.blocks), len(store.events))
	}
	if got := len(s.Timetable().Day(models.Tuesday)); got != 1 {
		t.Errorf("Tuesday has %d blocks, want 1", got)
	}
}

func TestValidate_ReportsLenientOverlap(t *testing.T) {
	s := New(Options{Now: fixedClock(t)})
	if _, err := s.AddCompulsoryEvent("Lecture", models.Monday, "09:00", "10:30"); err != nil {
		t.Fatal(err)
	}
	if result := s.Validate(); result.HasConflicts() {
		t.Fatalf("clean session reported %+v", result.Conflicts)
	}

	if _, err := s.AddCompulsoryEvent("Lab", models.Monday, "10:00", "11:00"); err != nil {
		t.Fatal(err)
	}
	result := s.Validate()
	if len(result.Conflicts) != 1 {
		t.Fatalf("got %d conflicts, want 1: %+v", len(result.Conflicts), result.Conflicts)
	}
}
