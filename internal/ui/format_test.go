package ui

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/javiermolinar/timetable/internal/config"
	"github.com/javiermolinar/timetable/internal/display"
	"github.com/javiermolinar/timetable/internal/grid"
	"github.com/javiermolinar/timetable/internal/slot"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{0, "0m"},
		{45, "45m"},
		{60, "1h"},
		{90, "1h30m"},
		{240, "4h"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.minutes); got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestAccumulateStats(t *testing.T) {
	slots := []slot.Slot{
		{Type: slot.TypeClass, Time: slot.TimeRange{Start: "08:00", End: "10:00"}, Conflict: true},
		{Type: slot.TypeClass, Time: slot.TimeRange{Start: "09:00", End: "11:00"}, Conflict: true},
		{Type: slot.TypeEvent, Time: slot.TimeRange{Start: "13:00", End: "13:30"}},
	}
	stats := AccumulateStats(slots)
	if stats.Total != 3 || stats.Conflicts != 2 || stats.Minutes != 270 {
		t.Errorf("unexpected stats: %+v", stats)
	}
	if stats.ByType[slot.TypeClass] != 2 || stats.ByType[slot.TypeMakeup] != 0 {
		t.Errorf("unexpected per-type counts: %v", stats.ByType)
	}

	var buf bytes.Buffer
	DisableColor()
	PrintStats(&buf, stats)
	if !strings.Contains(buf.String(), "3 slots (Class 2, Make-up 0, Event 1), 4h30m scheduled") {
		t.Errorf("unexpected summary: %s", buf.String())
	}
	if !strings.Contains(buf.String(), "2 slots in conflict") {
		t.Errorf("conflicts missing from summary: %s", buf.String())
	}
}

func TestPrintSlotRow_TruncatesTitle(t *testing.T) {
	DisableColor()
	s := slot.Slot{
		ID:      "CLS-01",
		Title:   "A very long class title that does not fit",
		Type:    slot.TypeClass,
		Teacher: "Ms. Lan",
		Room:    "A101",
		Time:    slot.TimeRange{Start: "08:00", End: "10:00"},
	}

	var buf bytes.Buffer
	PrintSlotRow(&buf, s, 12)
	line := buf.String()
	if strings.Contains(line, "does not fit") {
		t.Errorf("title not truncated: %q", line)
	}
	if !strings.Contains(line, "#CLS-01 · Ms. Lan · A101") {
		t.Errorf("details missing: %q", line)
	}
}

func TestRenderWeek(t *testing.T) {
	DisableColor()
	monday := time.Date(2025, 12, 8, 0, 0, 0, 0, time.Local)
	slots := []slot.Slot{
		{ID: "CLS-01", Title: "IELTS", Type: slot.TypeClass, Teacher: "Ms. Lan", Room: "A101",
			Date: monday, Time: slot.TimeRange{Start: "08:00", End: "10:00"}, Conflict: true},
		{ID: "EVT-01", Title: "Open day", Type: slot.TypeEvent, Room: "Hall",
			Date: monday.AddDate(0, 0, 5), Time: slot.TimeRange{Start: "13:00", End: "17:00"}},
	}
	g := grid.BuildWeek(slots, monday)

	out := renderWeek(&g, display.LoadTheme("default"), "", 120)
	for _, want := range []string{"Sat 13/12", "Morning", "08-12", "IELTS", "Open day", "1 slots in conflict"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}

	filtered := renderWeek(&g, display.LoadTheme("dark"), slot.TypeEvent, 120)
	if strings.Contains(filtered, "IELTS") {
		t.Errorf("type filter not applied:\n%s", filtered)
	}
	if !strings.Contains(filtered, "Open day") {
		t.Errorf("event missing from filtered render:\n%s", filtered)
	}
}

func TestRunConfigInteractive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	input := strings.NewReader("y\nzoom, online\n\nneon\ndark\n\n\n")

	var out bytes.Buffer
	if err := runConfigInteractive(path, input, &out); err != nil {
		t.Fatalf("runConfigInteractive failed: %v", err)
	}
	if !strings.Contains(out.String(), `Invalid value "neon"`) {
		t.Errorf("invalid theme not rejected: %s", out.String())
	}

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("loading saved config: %v", err)
	}
	if cfg.Display.Theme != "dark" {
		t.Errorf("theme = %s, want dark", cfg.Display.Theme)
	}
	if strings.Join(cfg.Schedule.OnlineRooms, ",") != "zoom,online" {
		t.Errorf("online rooms = %v", cfg.Schedule.OnlineRooms)
	}
}

func TestRunConfigInteractive_CreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	var out bytes.Buffer
	if err := runConfigInteractive(path, strings.NewReader("n\n"), &out); err != nil {
		t.Fatalf("runConfigInteractive failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("default config not written: %v", err)
	}
	if !strings.Contains(out.String(), "online_rooms = online") {
		t.Errorf("config not printed: %s", out.String())
	}
}
