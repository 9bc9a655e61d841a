package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/timetable/internal/conflict"
	"github.com/javiermolinar/timetable/internal/dateutil"
	"github.com/javiermolinar/timetable/internal/display"
	"github.com/javiermolinar/timetable/internal/grid"
	"github.com/javiermolinar/timetable/internal/slot"
)

const (
	labelWidth   = 11
	minCellWidth = 12
)

// View renders the UI.
func (m Model) View() string {
	if m.width == 0 || m.loading {
		return "Loading..."
	}

	var b strings.Builder
	g := m.week()

	b.WriteString(m.renderHeader(g))
	b.WriteString("\n")
	b.WriteString(m.theme.RenderTabs(m.reg.All(), m.typeFilter()))
	b.WriteString("\n\n")
	b.WriteString(m.renderGrid(g))
	b.WriteString("\n")
	b.WriteString(m.renderDetails())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m *Model) renderHeader(g grid.Grid) string {
	title := fmt.Sprintf("WEEK %s - %s", dateutil.FormatDate(g.WeekStart), dateutil.FormatDate(g.EndDate()))
	header := m.theme.HeaderStyle().Render(title)
	if n := g.ConflictCount(); n > 0 {
		header += "  " + lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Conflict)).Render(fmt.Sprintf("%d in conflict", n))
	}
	return header
}

func (m *Model) cellWidth() int {
	w := (m.width - labelWidth) / 7
	if w < minCellWidth {
		w = minCellWidth
	}
	return w
}

func (m *Model) renderGrid(g grid.Grid) string {
	w := m.cellWidth()
	today := m.now()

	headers := []string{lipgloss.NewStyle().Width(labelWidth).Render("")}
	for d := 0; d < 7; d++ {
		text := fmt.Sprintf("%s %s", grid.WeekdayShortName(d), g.DateOf(d).Format("02/01"))
		style := m.theme.HeaderStyle().Width(w)
		if dateutil.SameDay(g.DateOf(d), today) {
			style = style.Underline(true)
		}
		if d == m.cursor.Day {
			text = "▸ " + text
		}
		headers = append(headers, style.Render(ansi.Truncate(text, w-1, "…")))
	}
	rows := []string{lipgloss.JoinHorizontal(lipgloss.Top, headers...)}

	for _, p := range slot.Periods {
		r := slot.CanonicalRange(p)
		label := lipgloss.JoinVertical(lipgloss.Left,
			m.theme.HeaderStyle().Render(p.Label()),
			m.theme.MutedStyle().Render(r.Start[:2]+"-"+r.End[:2]),
		)
		cols := []string{lipgloss.NewStyle().Width(labelWidth).Render(label)}
		for d := 0; d < 7; d++ {
			sel := display.NoSelection
			if d == m.cursor.Day && p == m.cursor.Period {
				sel = m.cursor.Index
			}
			cell := g.Cell(d, p)
			if len(cell) == 0 && sel != display.NoSelection {
				cols = append(cols, m.theme.MutedStyle().Width(w).Render("·"))
				continue
			}
			cols = append(cols, m.theme.RenderCell(cell, w, sel))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cols...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// renderDetails describes the slot under the cursor and its conflicts.
func (m *Model) renderDetails() string {
	s, ok := m.selected()
	if !ok {
		return m.theme.MutedStyle().Render("No slot selected")
	}

	parts := []string{
		fmt.Sprintf("#%s", s.ID),
		display.Meta(s.Type).Label,
		fmt.Sprintf("%s %s %s", grid.WeekdayName(weekdayIndex(s.Date)), dateutil.FormatDate(s.Date), s.Time),
	}
	for _, v := range []string{s.Teacher, s.Room, s.Branch} {
		if v != "" {
			parts = append(parts, v)
		}
	}
	line := m.theme.HeaderStyle().Render(s.Title) + "  " + strings.Join(parts, " · ")
	if s.Note != "" {
		line += "\n" + m.theme.MutedStyle().Render(s.Note)
	}

	conflictStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Conflict))
	if m.mode == ModeMove {
		// The registry still holds the old placement; check the preview.
		for _, other := range m.reg.All() {
			if other.ID == s.ID {
				continue
			}
			if res := m.detector.Check(s, other); len(res) > 0 {
				line += "\n" + conflictStyle.Render(fmt.Sprintf("! would conflict with #%s (same %s)", other.ID, resourceNames(res)))
			}
		}
		return line
	}

	for _, c := range m.reg.Conflicts() {
		if !c.Involves(s.ID) {
			continue
		}
		other := c.A
		if other == s.ID {
			other = c.B
		}
		line += "\n" + conflictStyle.Render(fmt.Sprintf("! conflict with #%s (same %s)", other, resourceNames(c.Resources)))
	}
	return line
}

func resourceNames(res []conflict.Resource) string {
	names := make([]string, len(res))
	for i, r := range res {
		names[i] = string(r)
	}
	return strings.Join(names, ", ")
}

func (m *Model) renderFooter() string {
	var help string
	switch m.mode {
	case ModeMove:
		help = "h/l day  j/k period  H/L week  enter confirm  esc cancel"
	case ModeColor:
		help = "color: " + m.colorInput.View() + "  enter save  esc cancel"
	default:
		help = "h/j/k/l move  H/L week  t today  tab type  m move  c color  y copy  r reload  q quit"
	}

	footer := m.theme.MutedStyle().Render(help)
	if m.statusMsg != "" {
		footer += "\n" + m.statusMsg
	}
	if m.err != nil {
		footer += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Conflict)).Render(m.err.Error())
	}
	return footer
}
