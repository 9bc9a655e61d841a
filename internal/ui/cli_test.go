package ui

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/javiermolinar/timetable/internal/config"
	"github.com/javiermolinar/timetable/internal/db"
	"github.com/javiermolinar/timetable/internal/slot"
)

// weekFixture is the week of Monday 08/12/2025.
const weekFixture = `[
  {"id": "CLS-01", "title": "IELTS 6.5", "type": "class", "teacher": "Ms. Lan", "room": "A101",
   "date": "08/12/2025", "start": "08:00", "end": "10:00"},
  {"id": "CLS-02", "title": "TOEIC 500", "type": "class", "teacher": "Mr. Minh", "room": "A101",
   "date": "08/12/2025", "start": "09:00", "end": "11:00"},
  {"id": "MKP-01", "title": "Make-up IELTS", "type": "makeup", "teacher": "Ms. Lan", "room": "online",
   "date": "09/12/2025", "start": "19:00", "end": "21:00", "note": "for CLS-01"},
  {"id": "EVT-05", "title": "Parents meeting", "type": "event", "teacher": "Mr. Hoa", "room": "Hall",
   "date": "10/12/2025", "start": "14:00", "end": "16:00"}
]`

func newTestStore(t *testing.T) *db.SQLite {
	t.Helper()

	repo, err := db.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test repo: %v", err)
	}
	t.Cleanup(func() {
		_ = repo.Close()
	})
	return repo
}

// runCmd runs one command on a fresh App and returns its stdout.
func runCmd(t *testing.T, repo slot.Repository, args ...string) (string, error) {
	t.Helper()
	DisableColor()

	cfg := config.Default()
	cfg.Log.Level = "error"
	app := NewApp(repo, cfg)

	var out bytes.Buffer
	app.root.SetOut(&out)
	app.root.SetErr(&out)
	app.root.SetArgs(args)
	err := app.Execute()
	return out.String(), err
}

// seed imports weekFixture into repo.
func seed(t *testing.T, repo slot.Repository) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "week.json")
	if err := os.WriteFile(path, []byte(weekFixture), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	if _, err := runCmd(t, repo, "import", path); err != nil {
		t.Fatalf("import failed: %v", err)
	}
}

func storedSlot(t *testing.T, repo slot.Repository, id string) slot.Slot {
	t.Helper()

	slots, err := repo.ListSlots(context.Background())
	if err != nil {
		t.Fatalf("ListSlots failed: %v", err)
	}
	for _, s := range slots {
		if s.ID == id {
			return s
		}
	}
	t.Fatalf("slot %s not stored", id)
	return slot.Slot{}
}

func TestImportCmd(t *testing.T) {
	repo := newTestStore(t)
	path := filepath.Join(t.TempDir(), "week.json")
	if err := os.WriteFile(path, []byte(weekFixture), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	out, err := runCmd(t, repo, "import", path)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if !strings.Contains(out, "Imported 4 slots") {
		t.Errorf("unexpected output: %s", out)
	}
	if !strings.Contains(out, "1 conflicting pairs") {
		t.Errorf("room clash between CLS-01 and CLS-02 not reported: %s", out)
	}

	slots, err := repo.ListSlots(context.Background())
	if err != nil {
		t.Fatalf("ListSlots failed: %v", err)
	}
	if len(slots) != 4 || slots[0].ID != "CLS-01" || slots[3].ID != "EVT-05" {
		t.Errorf("stored slots not in file order: %+v", slots)
	}
}

func TestImportCmd_InvalidKeepsStore(t *testing.T) {
	repo := newTestStore(t)
	seed(t, repo)

	path := filepath.Join(t.TempDir(), "bad.json")
	bad := `[{"id":"X","type":"class","date":"32/12/2025","start":"08:00","end":"09:00"}]`
	if err := os.WriteFile(path, []byte(bad), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	if _, err := runCmd(t, repo, "import", path); err == nil {
		t.Fatal("expected error for invalid date")
	}

	slots, err := repo.ListSlots(context.Background())
	if err != nil {
		t.Fatalf("ListSlots failed: %v", err)
	}
	if len(slots) != 4 {
		t.Errorf("failed import should keep the stored set, got %d slots", len(slots))
	}
}

func TestRescheduleCmd(t *testing.T) {
	repo := newTestStore(t)
	seed(t, repo)

	out, err := runCmd(t, repo, "reschedule", "EVT-05", "--date", "09/12/2025", "--period", "evening")
	if err != nil {
		t.Fatalf("reschedule failed: %v", err)
	}
	if !strings.Contains(out, "No conflicts") {
		t.Errorf("event in Hall with Mr. Hoa should not clash: %s", out)
	}

	s := storedSlot(t, repo, "EVT-05")
	if s.DateKey() != "2025-12-09" {
		t.Errorf("date = %s, want 2025-12-09", s.DateKey())
	}
	if s.Time != (slot.TimeRange{Start: "18:00", End: "22:00"}) {
		t.Errorf("time = %v, want 18:00-22:00", s.Time)
	}
	if s.Title != "Parents meeting" || s.Room != "Hall" {
		t.Errorf("reschedule changed other fields: %+v", s)
	}
}

func TestRescheduleCmd_ReportsNewConflict(t *testing.T) {
	repo := newTestStore(t)
	seed(t, repo)

	// CLS-01 (Ms. Lan) moves onto the make-up evening, same teacher.
	out, err := runCmd(t, repo, "reschedule", "CLS-01", "--date", "09/12/2025", "--period", "evening")
	if err != nil {
		t.Fatalf("reschedule failed: %v", err)
	}
	if !strings.Contains(out, "Conflict with #MKP-01 (same teacher)") {
		t.Errorf("teacher clash not reported: %s", out)
	}
	if s := storedSlot(t, repo, "CLS-01"); s.Time.Start != "18:00" {
		t.Errorf("conflicting move should still be applied, got %v", s.Time)
	}
}

func TestRescheduleCmd_Errors(t *testing.T) {
	repo := newTestStore(t)
	seed(t, repo)

	_, err := runCmd(t, repo, "reschedule", "NOPE", "--date", "09/12/2025", "--period", "evening")
	if !errors.Is(err, slot.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	_, err = runCmd(t, repo, "reschedule", "EVT-05", "--date", "09/12/2025", "--period", "night")
	if !errors.Is(err, slot.ErrInvalidPeriod) {
		t.Errorf("expected ErrInvalidPeriod, got %v", err)
	}

	if _, err = runCmd(t, repo, "reschedule", "EVT-05", "--date", "31/02/2025", "--period", "evening"); err == nil {
		t.Error("expected error for invalid date")
	}
}

func TestColorCmd(t *testing.T) {
	repo := newTestStore(t)
	seed(t, repo)

	if _, err := runCmd(t, repo, "color", "CLS-01", "#8B5CF6"); err != nil {
		t.Fatalf("color failed: %v", err)
	}
	if s := storedSlot(t, repo, "CLS-01"); s.Color != "#8b5cf6" {
		t.Errorf("color = %q, want #8b5cf6", s.Color)
	}

	if _, err := runCmd(t, repo, "color", "CLS-01", ""); err != nil {
		t.Fatalf("color reset failed: %v", err)
	}
	if s := storedSlot(t, repo, "CLS-01"); s.Color != "" {
		t.Errorf("color = %q, want reset", s.Color)
	}

	_, err := runCmd(t, repo, "color", "CLS-01", "purple")
	if !errors.Is(err, slot.ErrInvalidColor) {
		t.Errorf("expected ErrInvalidColor, got %v", err)
	}
}

func TestExportCmd(t *testing.T) {
	repo := newTestStore(t)
	seed(t, repo)

	out, err := runCmd(t, repo, "export")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(out, `"id": "CLS-02"`) || !strings.Contains(out, `"conflict": true`) {
		t.Errorf("unexpected export: %s", out)
	}

	path := filepath.Join(t.TempDir(), "out.json")
	if _, err := runCmd(t, repo, "export", path); err != nil {
		t.Fatalf("export to file failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading export: %v", err)
	}
	if !strings.Contains(string(data), `"date": "10/12/2025"`) {
		t.Errorf("export file missing EVT-05 date: %s", data)
	}
}

func TestConflictsCmd(t *testing.T) {
	repo := newTestStore(t)
	seed(t, repo)

	out, err := runCmd(t, repo, "conflicts")
	if err != nil {
		t.Fatalf("conflicts failed: %v", err)
	}
	if !strings.Contains(out, "same room") || !strings.Contains(out, "#CLS-01") || !strings.Contains(out, "#CLS-02") {
		t.Errorf("unexpected output: %s", out)
	}

	out, err = runCmd(t, repo, "conflicts", "--date", "10/12/2025")
	if err != nil {
		t.Fatalf("conflicts --date failed: %v", err)
	}
	if !strings.Contains(out, "No conflicts") {
		t.Errorf("expected no conflicts on 10/12: %s", out)
	}
}

func TestListCmd(t *testing.T) {
	repo := newTestStore(t)
	seed(t, repo)

	out, err := runCmd(t, repo, "list", "--type", "makeup")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, "#MKP-01") || strings.Contains(out, "#CLS-01") {
		t.Errorf("type filter not applied: %s", out)
	}

	out, err = runCmd(t, repo, "list", "--start", "08/12/2025")
	if err != nil {
		t.Fatalf("list --start failed: %v", err)
	}
	if !strings.Contains(out, "! 08:00-10:00") {
		t.Errorf("conflicting slot not marked: %s", out)
	}
	if strings.Contains(out, "#EVT-05") {
		t.Errorf("single day listing leaked other days: %s", out)
	}

	if _, err := runCmd(t, repo, "list", "--type", "lecture"); !errors.Is(err, slot.ErrInvalidType) {
		t.Errorf("expected ErrInvalidType, got %v", err)
	}
}

func TestWeekCmd(t *testing.T) {
	repo := newTestStore(t)
	seed(t, repo)

	out, err := runCmd(t, repo, "week", "--date", "11/12/2025", "--no-color")
	if err != nil {
		t.Fatalf("week failed: %v", err)
	}
	for _, want := range []string{"WEEK: Mon 08/12/2025 - Sun 14/12/2025", "Mon 08/12", "Sun 14/12", "Evening", "Make-up (1)"} {
		if !strings.Contains(out, want) {
			t.Errorf("week output missing %q:\n%s", want, out)
		}
	}
}

func TestVersionCmd(t *testing.T) {
	out, err := runCmd(t, nil, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.HasPrefix(out, "timetable dev") {
		t.Errorf("unexpected version output: %s", out)
	}
}
