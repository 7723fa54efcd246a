package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/timetable/internal/backup"
	"github.com/julianstephens/timetable/internal/config"
	"github.com/julianstephens/timetable/internal/models"
	"github.com/julianstephens/timetable/internal/planner"
	"github.com/julianstephens/timetable/internal/storage"
	"github.com/julianstephens/timetable/internal/storage/sqlite"
	"github.com/julianstephens/timetable/internal/timetable"
)

// Monday 2026-03-09
var testNow = time.Date(2026, time.March, 9, 10, 0, 0, 0, time.UTC)

func newContext(t *testing.T, store storage.Provider, dir string, strict bool) (*Context, *bytes.Buffer) {
	t.Helper()
	settings := config.DefaultSettings()
	settings.StrictOverlap = strict
	settings.Storage = store.GetConfigPath()

	var out bytes.Buffer
	ctx := &Context{
		Store:        store,
		Settings:     settings,
		SettingsPath: filepath.Join(dir, "config.yaml"),
		ConfigDir:    dir,
		Location:     time.UTC,
		Out:          &out,
		Now:          func() time.Time { return testNow },
	}
	return ctx, &out
}

func setupSQLite(t *testing.T, strict bool) (*Context, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	store := sqlite.NewStore(filepath.Join(dir, "timetable.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return newContext(t, store, dir, strict)
}

func setupJSON(t *testing.T) (*Context, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	store := storage.NewJSONStore(filepath.Join(dir, "timetable.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	return newContext(t, store, dir, false)
}

func addLecture(t *testing.T, ctx *Context) {
	t.Helper()
	cmd := &EventAddCmd{Name: "Lecture", Day: "monday", Start: "09:00", End: "10:30"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("event add failed: %v", err)
	}
}

func TestActivityAdd_ComputesDeadline(t *testing.T) {
	ctx, out := setupSQLite(t, false)

	cmd := &ActivityAddCmd{Name: "Essay", Priority: 2, Deadline: "2026-03-14", Hours: 3}
	if err := cmd.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(out.String(), "(5 day(s))") {
		t.Errorf("output = %q, want deadline of 5 days", out.String())
	}

	out.Reset()
	if err := (&ActivityListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list error = %v", err)
	}
	if !strings.Contains(out.String(), "Essay") {
		t.Errorf("list output = %q, want Essay", out.String())
	}
}

func TestActivityAdd_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     ActivityAddCmd
		wantErr bool
	}{
		{"defaults", ActivityAddCmd{Priority: 3, Hours: 1}, false},
		{"priority too low", ActivityAddCmd{Priority: 0, Hours: 1}, true},
		{"priority too high", ActivityAddCmd{Priority: 6, Hours: 1}, true},
		{"hours too high", ActivityAddCmd{Priority: 1, Hours: 25}, true},
		{"zero hours", ActivityAddCmd{Priority: 1, Hours: 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestActivityAdd_PriorityHelpHasNoOrdering(t *testing.T) {
	field, ok := reflect.TypeOf(ActivityAddCmd{}).FieldByName("Priority")
	if !ok {
		t.Fatal("ActivityAddCmd has no Priority field")
	}
	help := strings.ToLower(field.Tag.Get("help"))
	for _, word := range []string{"higher", "highest", "lower", "lowest"} {
		if strings.Contains(help, word) {
			t.Errorf("priority help %q implies an ordering the scheduler does not use", help)
		}
	}
}

func TestActivityAdd_BadDeadline(t *testing.T) {
	ctx, _ := setupSQLite(t, false)
	cmd := &ActivityAddCmd{Name: "Essay", Priority: 3, Deadline: "14/03/2026", Hours: 1}
	if err := cmd.Run(ctx); err == nil {
		t.Error("expected an error for a malformed deadline")
	}
}

func TestEventAdd_ShowsInWeekAndDay(t *testing.T) {
	ctx, out := setupSQLite(t, false)
	addLecture(t, ctx)

	out.Reset()
	if err := (&WeekCmd{}).Run(ctx); err != nil {
		t.Fatalf("week error = %v", err)
	}
	week := out.String()
	if !strings.Contains(week, "Lecture") || !strings.Contains(week, "09:00 - 10:30") {
		t.Errorf("week output missing lecture: %q", week)
	}
	if !strings.Contains(week, "No events scheduled") {
		t.Errorf("week output missing empty-day placeholder: %q", week)
	}

	out.Reset()
	if err := (&DayCmd{Day: "today"}).Run(ctx); err != nil {
		t.Fatalf("day error = %v", err)
	}
	if !strings.Contains(out.String(), "Lecture") {
		t.Errorf("day output = %q, want Lecture", out.String())
	}

	out.Reset()
	if err := (&EventListCmd{}).Run(ctx); err != nil {
		t.Fatalf("event list error = %v", err)
	}
	if !strings.Contains(out.String(), "Lecture") {
		t.Errorf("event list = %q, want Lecture", out.String())
	}
}

func TestDayCmd_Weekend(t *testing.T) {
	ctx, _ := setupSQLite(t, false)
	ctx.Now = func() time.Time { return time.Date(2026, time.March, 14, 12, 0, 0, 0, time.UTC) }

	if err := (&DayCmd{Day: "today"}).Run(ctx); err == nil {
		t.Error("expected an error on a Saturday")
	}
}

func TestEventAdd_Persists(t *testing.T) {
	ctx, _ := setupSQLite(t, false)
	addLecture(t, ctx)
	path := ctx.Store.GetConfigPath()
	if err := ctx.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	store := sqlite.NewStore(path)
	defer store.Close()
	reopened, _ := newContext(t, store, filepath.Dir(path), false)
	session, err := reopened.Session()
	if err != nil {
		t.Fatalf("Session() error = %v", err)
	}
	blocks := session.Timetable().Day(models.Monday)
	if len(blocks) != 1 || blocks[0].Name != "Lecture" {
		t.Errorf("Monday = %+v, want one Lecture block", blocks)
	}
	if n := len(session.Requests().CompulsoryEvents()); n != 1 {
		t.Errorf("compulsory events = %d, want 1", n)
	}
}

func TestEventAdd_StrictConflict(t *testing.T) {
	ctx, _ := setupSQLite(t, true)
	addLecture(t, ctx)

	cmd := &EventAddCmd{Name: "Lab", Day: "mon", Start: "10:00", End: "11:00"}
	err := cmd.Run(ctx)
	var conflict *timetable.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("Run() error = %v, want ConflictError", err)
	}

	session, _ := ctx.Session()
	if n := len(session.Requests().CompulsoryEvents()); n != 1 {
		t.Errorf("compulsory events = %d, want 1", n)
	}
}

func TestEventAdd_Lenient(t *testing.T) {
	ctx, out := setupSQLite(t, false)
	addLecture(t, ctx)

	cmd := &EventAddCmd{Name: "Lab", Day: "mon", Start: "10:00", End: "11:00"}
	if err := cmd.Run(ctx); err != nil {
		t.Fatalf("lenient insert failed: %v", err)
	}

	out.Reset()
	if err := (&ValidateCmd{}).Run(ctx); err != nil {
		t.Fatalf("validate error = %v", err)
	}
	if !strings.Contains(out.String(), "Conflicts detected") {
		t.Errorf("validate output = %q, want overlap report", out.String())
	}
}

func TestEventAdd_RejectsEndBeforeStart(t *testing.T) {
	ctx, _ := setupSQLite(t, false)
	cmd := &EventAddCmd{Name: "Backwards", Day: "friday", Start: "11:00", End: "10:00"}
	if err := cmd.Run(ctx); err == nil {
		t.Error("expected an error for end before start")
	}
}

func TestSlotCheck(t *testing.T) {
	ctx, out := setupSQLite(t, false)
	addLecture(t, ctx)

	tests := []struct {
		name  string
		start string
		end   string
		want  string
	}{
		{"inside lecture", "09:30", "09:45", "overlaps"},
		{"touching end", "10:30", "11:00", "is free"},
		{"before lecture", "08:00", "09:00", "is free"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			cmd := &SlotCheckCmd{Day: "monday", Start: tt.start, End: tt.end}
			if err := cmd.Run(ctx); err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if !strings.Contains(out.String(), tt.want) {
				t.Errorf("output = %q, want %q", out.String(), tt.want)
			}
		})
	}
}

func TestBlockAdd(t *testing.T) {
	tests := []struct {
		name    string
		cmd     BlockAddCmd
		wantEnd string
		wantErr bool
	}{
		{"break default length", BlockAddCmd{Name: "Lunch", Day: "tue", Start: "12:00", Type: "break"}, "14:00", false},
		{"break saturates", BlockAddCmd{Name: "Late", Day: "tue", Start: "23:00", Type: "break"}, "23:59", false},
		{"explicit activity", BlockAddCmd{Name: "Study", Day: "tue", Start: "08:00", End: "09:15", Type: "activity"}, "09:15", false},
		{"activity needs end", BlockAddCmd{Name: "Study", Day: "tue", Start: "08:00", Type: "activity"}, "", true},
		{"bad day", BlockAddCmd{Name: "Study", Day: "sunday", Start: "08:00", End: "09:00", Type: "activity"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := setupSQLite(t, false)
			err := tt.cmd.Run(ctx)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Run() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			session, _ := ctx.Session()
			blocks := session.Timetable().Day(models.Tuesday)
			if len(blocks) != 1 || blocks[0].End != tt.wantEnd {
				t.Errorf("Tuesday = %+v, want one block ending %s", blocks, tt.wantEnd)
			}
		})
	}
}

func TestValidate_Clean(t *testing.T) {
	ctx, out := setupSQLite(t, false)
	addLecture(t, ctx)

	out.Reset()
	if err := (&ValidateCmd{}).Run(ctx); err != nil {
		t.Fatalf("validate error = %v", err)
	}
	if !strings.Contains(out.String(), "No conflicts detected.") {
		t.Errorf("validate output = %q", out.String())
	}
}

func TestStats_JSON(t *testing.T) {
	ctx, out := setupJSON(t)
	addLecture(t, ctx)
	if err := (&ActivityAddCmd{Name: "Essay", Priority: 3, Deadline: "2026-03-20", Hours: 1}).Run(ctx); err != nil {
		t.Fatalf("activity add failed: %v", err)
	}

	out.Reset()
	if err := (&StatsCmd{JSON: true}).Run(ctx); err != nil {
		t.Fatalf("stats error = %v", err)
	}
	var got planner.Metrics
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("stats output is not JSON: %v\n%s", err, out.String())
	}
	want := planner.Metrics{Activities: 1, CompulsoryEvents: 1, DaysScheduled: 1, Blocks: 1}
	if got != want {
		t.Errorf("metrics = %+v, want %+v", got, want)
	}
}

func TestExportICS(t *testing.T) {
	ctx, out := setupSQLite(t, false)
	addLecture(t, ctx)

	t.Run("file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "out", "week.ics")
		cmd := &ExportICSCmd{File: path, Weeks: 4}
		if err := cmd.Run(ctx); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("failed to read export: %v", err)
		}
		ics := string(data)
		for _, want := range []string{"BEGIN:VCALENDAR", "SUMMARY:Lecture", "FREQ=WEEKLY;COUNT=4", "DTSTART:20260309T090000Z"} {
			if !strings.Contains(ics, want) {
				t.Errorf("export missing %q:\n%s", want, ics)
			}
		}
	})

	t.Run("stdout", func(t *testing.T) {
		out.Reset()
		cmd := &ExportICSCmd{File: "-", WeekOf: "2026-03-18"}
		if err := cmd.Run(ctx); err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if !strings.Contains(out.String(), "DTSTART:20260316T090000Z") {
			t.Errorf("stdout export not anchored to week of 2026-03-16:\n%s", out.String())
		}
	})

	t.Run("bad week", func(t *testing.T) {
		cmd := &ExportICSCmd{File: "-", WeekOf: "next week"}
		if err := cmd.Run(ctx); err == nil {
			t.Error("expected an error for a malformed --week-of")
		}
	})
}

func TestBackup_CreateListRestore(t *testing.T) {
	ctx, out := setupSQLite(t, false)
	addLecture(t, ctx)

	if err := (&BackupCreateCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup create error = %v", err)
	}
	out.Reset()
	if err := (&BackupListCmd{}).Run(ctx); err != nil {
		t.Fatalf("backup list error = %v", err)
	}
	if !strings.Contains(out.String(), "timetable-") {
		t.Errorf("list output = %q, want a backup entry", out.String())
	}

	dbPath := ctx.Store.GetConfigPath()
	backups, err := backup.NewManager(dbPath).ListBackups()
	if err != nil || len(backups) != 1 {
		t.Fatalf("ListBackups() = %v, %v; want one backup", backups, err)
	}

	// Changes after the backup are rolled back by the restore
	if err := (&EventAddCmd{Name: "Seminar", Day: "wed", Start: "13:00", End: "14:00"}).Run(ctx); err != nil {
		t.Fatalf("event add failed: %v", err)
	}

	out.Reset()
	restore := &BackupRestoreCmd{BackupFile: filepath.Base(backups[0].Path), Yes: true}
	if err := restore.Run(ctx); err != nil {
		t.Fatalf("restore error = %v", err)
	}
	if !strings.Contains(out.String(), "Previous database saved as") {
		t.Errorf("restore output = %q, want safety copy note", out.String())
	}

	store := sqlite.NewStore(dbPath)
	defer store.Close()
	reopened, _ := newContext(t, store, filepath.Dir(dbPath), false)
	session, err := reopened.Session()
	if err != nil {
		t.Fatalf("Session() after restore error = %v", err)
	}
	if n := session.Timetable().Len(); n != 1 {
		t.Errorf("blocks after restore = %d, want 1", n)
	}
}

func TestBackup_RestoreMissingFile(t *testing.T) {
	ctx, _ := setupSQLite(t, false)
	restore := &BackupRestoreCmd{BackupFile: "timetable-nope.db", Yes: true}
	if err := restore.Run(ctx); err == nil {
		t.Error("expected an error for a missing backup")
	}
}

func TestBackup_JSONStoreUnsupported(t *testing.T) {
	ctx, _ := setupJSON(t)
	if err := (&BackupCreateCmd{}).Run(ctx); err == nil {
		t.Error("expected backups to be refused for JSON storage")
	}
}

func TestInit_CreatesJSONStore(t *testing.T) {
	dir := t.TempDir()
	store := storage.NewJSONStore(filepath.Join(dir, "nested", "timetable.json"))
	ctx, out := newContext(t, store, dir, false)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("init error = %v", err)
	}
	if !strings.Contains(out.String(), "Initialized timetable storage") {
		t.Errorf("init output = %q", out.String())
	}
	if _, err := os.Stat(store.GetConfigPath()); err != nil {
		t.Errorf("storage file not created: %v", err)
	}
}

func TestDoctor(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		ctx, out := setupSQLite(t, false)
		if err := (&DoctorCmd{}).Run(ctx); err != nil {
			t.Fatalf("doctor failed on a healthy database: %v\n%s", err, out.String())
		}
		if !strings.Contains(out.String(), "⚠ Backups present: WARNING") {
			t.Errorf("expected a missing-backup warning:\n%s", out.String())
		}
	})

	t.Run("overlap only warns", func(t *testing.T) {
		ctx, out := setupSQLite(t, false)
		addLecture(t, ctx)
		addLecture(t, ctx)
		if err := (&DoctorCmd{}).Run(ctx); err != nil {
			t.Fatalf("doctor failed on lenient overlaps: %v\n%s", err, out.String())
		}
		if !strings.Contains(out.String(), "⚠ Data validation: WARNING") {
			t.Errorf("expected a data validation warning:\n%s", out.String())
		}
	})

	t.Run("unreachable", func(t *testing.T) {
		dir := t.TempDir()
		store := sqlite.NewStore(filepath.Join(dir, "missing.db"))
		ctx, out := newContext(t, store, dir, false)
		if err := (&DoctorCmd{}).Run(ctx); err == nil {
			t.Fatal("expected doctor to fail without a database")
		}
		if !strings.Contains(out.String(), "⊘ Schema version: SKIPPED") {
			t.Errorf("expected skipped checks:\n%s", out.String())
		}
	})
}

func TestDebug_DumpBlocks(t *testing.T) {
	ctx, out := setupSQLite(t, false)
	addLecture(t, ctx)
	if err := (&BlockAddCmd{Name: "Lunch", Day: "tue", Start: "12:00", Type: "break"}).Run(ctx); err != nil {
		t.Fatalf("block add failed: %v", err)
	}

	tests := []struct {
		day  string
		want int
	}{
		{"", 2},
		{"monday", 1},
		{"thu", 0},
	}
	for _, tt := range tests {
		out.Reset()
		if err := (&DebugDumpBlocksCmd{Day: tt.day}).Run(ctx); err != nil {
			t.Fatalf("dump blocks %q error = %v", tt.day, err)
		}
		var blocks []models.ScheduledBlock
		if err := json.Unmarshal(out.Bytes(), &blocks); err != nil {
			t.Fatalf("dump is not JSON: %v\n%s", err, out.String())
		}
		if len(blocks) != tt.want {
			t.Errorf("dump blocks %q = %d, want %d", tt.day, len(blocks), tt.want)
		}
	}
}

func TestDebug_DumpRequests(t *testing.T) {
	ctx, out := setupJSON(t)
	addLecture(t, ctx)

	out.Reset()
	if err := (&DebugDumpRequestsCmd{}).Run(ctx); err != nil {
		t.Fatalf("dump requests error = %v", err)
	}
	var got struct {
		Activities       []models.ActivityRequest        `json:"activities"`
		CompulsoryEvents []models.CompulsoryEventRequest `json:"compulsory_events"`
	}
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("dump is not JSON: %v", err)
	}
	if len(got.Activities) != 0 || len(got.CompulsoryEvents) != 1 {
		t.Fatalf("dump = %+v, want one compulsory event", got)
	}
	if got.CompulsoryEvents[0].Day != models.Monday {
		t.Errorf("day = %v, want Monday", got.CompulsoryEvents[0].Day)
	}
}
