package display

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/timetable/internal/slot"
)

// NoSelection is passed to RenderCell when no entry is highlighted.
const NoSelection = -1

// RenderSlot draws one slot entry exactly width columns wide.
// A selected entry is drawn in the accent color with reversed text.
func (t Theme) RenderSlot(s slot.Slot, width int, selected bool) string {
	style := t.SlotStyle(s)
	if selected {
		style = style.Reverse(true).Background(lipgloss.Color(t.Accent))
	}

	inner := width - style.GetHorizontalFrameSize()
	if inner < 1 {
		inner = 1
	}
	lines := []string{
		ansi.Truncate(s.Time.String(), inner, "…"),
		ansi.Truncate(s.Title, inner, "…"),
	}
	if who := strings.Join(nonEmpty(s.Teacher, s.Room), " · "); who != "" {
		lines = append(lines, ansi.Truncate(who, inner, "…"))
	}
	return style.Width(width - style.GetHorizontalBorderSize()).Render(strings.Join(lines, "\n"))
}

// RenderCell stacks the entries of one grid cell in a column width wide.
// selected is the index of the highlighted entry, or NoSelection.
func (t Theme) RenderCell(cell []slot.Slot, width, selected int) string {
	column := lipgloss.NewStyle().Width(width).PaddingRight(1)
	if len(cell) == 0 {
		return column.Render("")
	}

	entries := make([]string, len(cell))
	for i, s := range cell {
		entries[i] = t.RenderSlot(s, width-1, i == selected)
	}
	return column.Render(lipgloss.JoinVertical(lipgloss.Left, entries...))
}

// RenderTabs draws the type filter bar with counts, underlining the active tab.
func (t Theme) RenderTabs(slots []slot.Slot, active slot.Type) string {
	tabs := Tabs(slots)
	parts := make([]string, len(tabs))
	for i, tab := range tabs {
		text := fmt.Sprintf("%s (%d)", tab.Label, tab.Count)
		if tab.Type == active {
			parts[i] = t.HeaderStyle().Underline(true).Render(text)
		} else {
			parts[i] = t.MutedStyle().Render(text)
		}
	}
	return strings.Join(parts, "  ")
}

func nonEmpty(values ...string) []string {
	result := make([]string, 0, len(values))
	for _, v := range values {
		if v != "" {
			result = append(result, v)
		}
	}
	return result
}
