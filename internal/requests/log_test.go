package requests

import (
	"errors"
	"testing"

	"github.com/julianstephens/timetable/internal/models"
	"github.com/julianstephens/timetable/internal/utils"
)

func TestAddActivity(t *testing.T) {
	tests := []struct {
		name    string
		req     models.ActivityRequest
		wantErr bool
	}{
		{
			name: "valid",
			req:  models.ActivityRequest{Activity: "Thesis", Priority: 3, Deadline: 5, Timing: 4},
		},
		{
			name: "past deadline is accepted",
			req:  models.ActivityRequest{Activity: "Taxes", Priority: 5, Deadline: -2, Timing: 1},
		},
		{
			name:    "empty name",
			req:     models.ActivityRequest{Activity: "", Priority: 3, Timing: 1},
			wantErr: true,
		},
		{
			name:    "whitespace name",
			req:     models.ActivityRequest{Activity: "   ", Priority: 3, Timing: 1},
			wantErr: true,
		},
		{
			name:    "priority too high",
			req:     models.ActivityRequest{Activity: "x", Priority: 6, Timing: 1},
			wantErr: true,
		},
		{
			name:    "non-positive hours",
			req:     models.ActivityRequest{Activity: "x", Priority: 1, Timing: 0},
			wantErr: true,
		},
		{
			name:    "too many hours",
			req:     models.ActivityRequest{Activity: "x", Priority: 1, Timing: 25},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New()
			err := l.AddActivity(tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("AddActivity() error = %v, wantErr %v", err, tt.wantErr)
			}
			wantLen := 1
			if tt.wantErr {
				wantLen = 0
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Errorf("AddActivity() error type = %T, want *ValidationError", err)
				}
			}
			if got := len(l.Activities()); got != wantLen {
				t.Errorf("len(Activities()) = %d, want %d", got, wantLen)
			}
		})
	}
}

func TestAddCompulsoryEvent(t *testing.T) {
	tests := []struct {
		name       string
		req        models.CompulsoryEventRequest
		wantErr    bool
		wantFormat bool
	}{
		{
			name: "valid",
			req:  models.CompulsoryEventRequest{Event: "Lecture", Day: models.Monday, StartTime: "09:00", EndTime: "10:30"},
		},
		{
			name:    "end before start",
			req:     models.CompulsoryEventRequest{Event: "X", Day: models.Monday, StartTime: "10:00", EndTime: "09:00"},
			wantErr: true,
		},
		{
			name:    "end equals start",
			req:     models.CompulsoryEventRequest{Event: "X", Day: models.Monday, StartTime: "10:00", EndTime: "10:00"},
			wantErr: true,
		},
		{
			name:    "empty name",
			req:     models.CompulsoryEventRequest{Day: models.Monday, StartTime: "09:00", EndTime: "10:00"},
			wantErr: true,
		},
		{
			name:       "malformed time",
			req:        models.CompulsoryEventRequest{Event: "X", Day: models.Monday, StartTime: "nine", EndTime: "10:00"},
			wantErr:    true,
			wantFormat: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := New()
			err := l.AddCompulsoryEvent(tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("AddCompulsoryEvent() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantFormat {
				var fe *utils.FormatError
				if !errors.As(err, &fe) {
					t.Errorf("AddCompulsoryEvent() error type = %T, want *utils.FormatError", err)
				}
			}
			if tt.wantErr && len(l.CompulsoryEvents()) != 0 {
				t.Error("rejected event was recorded")
			}
		})
	}
}

func TestLog_AllowsDuplicateNames(t *testing.T) {
	l := New()
	req := models.ActivityRequest{Activity: "Reading", Priority: 2, Timing: 1}
	for i := 0; i < 3; i++ {
		if err := l.AddActivity(req); err != nil {
			t.Fatalf("AddActivity() error = %v", err)
		}
	}
	if got := len(l.Activities()); got != 3 {
		t.Errorf("len(Activities()) = %d, want 3", got)
	}
}

func TestLog_PreservesSubmissionOrder(t *testing.T) {
	l := New()
	for _, name := range []string{"c", "a", "b"} {
		if err := l.AddCompulsoryEvent(models.CompulsoryEventRequest{
			Event: name, Day: models.Friday, StartTime: "08:00", EndTime: "09:00",
		}); err != nil {
			t.Fatalf("AddCompulsoryEvent() error = %v", err)
		}
	}
	got := l.CompulsoryEvents()
	for i, want := range []string{"c", "a", "b"} {
		if got[i].Event != want {
			t.Errorf("event %d = %q, want %q", i, got[i].Event, want)
		}
	}
}
