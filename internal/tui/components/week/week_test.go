package week

import (
	"strings"
	"testing"

	"github.com/julianstephens/timetable/internal/models"
)

func TestRenderDay(t *testing.T) {
	tests := []struct {
		name   string
		blocks []models.TimeBlock
		want   []string
	}{
		{
			name: "empty day",
			want: []string{"Monday", EmptyDay},
		},
		{
			name: "blocks",
			blocks: []models.TimeBlock{
				{Start: "09:00", End: "10:30", Name: "Lecture", Type: models.BlockCompulsory},
				{Start: "12:00", End: "13:00", Name: "Lunch", Type: models.BlockBreak},
			},
			want: []string{"Monday", "09:00 - 10:30", "Lecture", "compulsory", "Lunch", "break"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderDay(models.Monday, tt.blocks)
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("RenderDay() missing %q:\n%s", w, got)
				}
			}
			if len(tt.blocks) > 0 && strings.Contains(got, EmptyDay) {
				t.Error("placeholder shown for a day with blocks")
			}
		})
	}
}

func TestRender_DaysInOrder(t *testing.T) {
	out := Render(map[models.Day][]models.TimeBlock{})
	last := -1
	for _, d := range models.Weekdays {
		i := strings.Index(out, d.String())
		if i <= last {
			t.Fatalf("%s out of order in:\n%s", d, out)
		}
		last = i
	}
	if n := strings.Count(out, EmptyDay); n != len(models.Weekdays) {
		t.Errorf("placeholder shown %d times, want %d", n, len(models.Weekdays))
	}
}
