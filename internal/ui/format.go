package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/timetable/internal/display"
	"github.com/javiermolinar/timetable/internal/slot"
)

// Stats holds aggregated statistics for a set of slots.
type Stats struct {
	ByType    map[slot.Type]int
	Minutes   int
	Conflicts int
	Total     int
}

// AccumulateStats counts every slot into a Stats value.
func AccumulateStats(slots []slot.Slot) Stats {
	stats := Stats{ByType: make(map[slot.Type]int, len(slot.Types))}
	for i := range slots {
		s := &slots[i]
		stats.ByType[s.Type]++
		stats.Minutes += s.Duration()
		stats.Total++
		if s.Conflict {
			stats.Conflicts++
		}
	}
	return stats
}

// PrintStats prints a one-line summary of stats.
func PrintStats(w io.Writer, stats Stats) {
	parts := make([]string, 0, len(slot.Types))
	for _, t := range slot.Types {
		parts = append(parts, fmt.Sprintf("%s %d", display.Meta(t).Label, stats.ByType[t]))
	}
	line := fmt.Sprintf("  %d slots (%s), %s scheduled",
		stats.Total, strings.Join(parts, ", "), FormatDuration(stats.Minutes))
	fmt.Fprintln(w, line)

	if stats.Conflicts > 0 {
		fmt.Fprintf(w, "  %s\n", formatConflict(fmt.Sprintf("%d slots in conflict", stats.Conflicts)))
	} else {
		fmt.Fprintf(w, "  %s\n", formatOK("No conflicts"))
	}
}

// typeBadge renders the short type badge in the type color.
func typeBadge(t slot.Type) string {
	m := display.Meta(t)
	return lipgloss.NewStyle().Foreground(lipgloss.Color(m.Color)).Bold(true).Render("[" + m.Badge + "]")
}

// conflictMarker returns "!" for a conflicting slot and a blank otherwise.
func conflictMarker(s slot.Slot) string {
	if s.Conflict {
		return formatConflict("!")
	}
	return " "
}

// PrintSlotRow prints a single slot row with consistent formatting.
func PrintSlotRow(w io.Writer, s slot.Slot, maxTitleWidth int) {
	title := ansi.Truncate(s.Title, maxTitleWidth, "…")
	pad := maxTitleWidth - ansi.StringWidth(title)
	if pad < 0 {
		pad = 0
	}

	fmt.Fprintf(w, "  %s %s  %s  %s%s  %s\n",
		conflictMarker(s),
		s.Time,
		typeBadge(s.Type),
		title,
		strings.Repeat(" ", pad),
		formatMuted(slotDetails(s)),
	)
}

// slotDetails joins the non-empty teacher, room and branch of a slot.
func slotDetails(s slot.Slot) string {
	var parts []string
	parts = append(parts, "#"+s.ID)
	for _, v := range []string{s.Teacher, s.Room, s.Branch} {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " · ")
}

// maxTitleWidth fits titles into the terminal after the fixed row columns.
func maxTitleWidth(defaultWidth int) int {
	// "  ! HH:MM-HH:MM  [XXX]  " = 24 columns, details need about 30 more
	available := termWidth() - 24 - 30
	if available < defaultWidth {
		return defaultWidth
	}
	if available > 60 {
		return 60
	}
	return available
}

// FormatDuration formats minutes as a human-readable duration.
func FormatDuration(minutes int) string {
	if minutes == 0 {
		return "0m"
	}
	hours := minutes / 60
	mins := minutes % 60
	if hours == 0 {
		return fmt.Sprintf("%dm", mins)
	}
	if mins == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh%dm", hours, mins)
}
