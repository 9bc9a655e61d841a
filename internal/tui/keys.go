package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/timetable/internal/dateutil"
	"github.com/javiermolinar/timetable/internal/slot"
	"github.com/javiermolinar/timetable/internal/tui/commands"
)

const statusDuration = 3 * time.Second

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global keys (work in all modes)
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	// Mode-specific handling
	switch m.mode {
	case ModeMove:
		return m.handleMoveKeys(msg)
	case ModeColor:
		return m.handleColorKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// handleNormalKeys handles keys in normal mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	// Navigation
	case "h", "left":
		if m.cursor.Day > 0 {
			m.cursor.Day--
		} else {
			m.shiftWeek(-1)
			m.cursor.Day = 6
		}
		m.clampCursor()
	case "l", "right":
		if m.cursor.Day < 6 {
			m.cursor.Day++
		} else {
			m.shiftWeek(1)
			m.cursor.Day = 0
		}
		m.clampCursor()
	case "j", "down":
		if m.cursor.Index < len(m.cellAt(m.cursor))-1 {
			m.cursor.Index++
		} else if m.cursor.Period < slot.Evening {
			m.cursor.Period++
			m.cursor.Index = 0
		}
	case "k", "up":
		if m.cursor.Index > 0 {
			m.cursor.Index--
		} else if m.cursor.Period > slot.Morning {
			m.cursor.Period--
			m.cursor.Index = len(m.cellAt(m.cursor)) - 1
			m.clampCursor()
		}

	// Week navigation
	case "H", "shift+left":
		m.shiftWeek(-1)
		m.clampCursor()
	case "L", "shift+right":
		m.shiftWeek(1)
		m.clampCursor()
	case "t":
		m.goToToday()

	// Type tabs
	case "tab":
		m.tab = (m.tab + 1) % (len(slot.Types) + 1)
		m.clampCursor()
	case "shift+tab":
		m.tab = (m.tab + len(slot.Types)) % (len(slot.Types) + 1)
		m.clampCursor()

	// Actions
	case "m", "enter":
		s, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.mode = ModeMove
		m.moveID = s.ID
		m.moveFromWeek = m.weekStart
		m.moveFromPlace = m.cursor
		m.moveTarget = m.cursor
		return m, m.setStatus(fmt.Sprintf("Moving #%s: choose day and period, enter to confirm", s.ID), time.Minute)
	case "c":
		s, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.mode = ModeColor
		m.moveID = s.ID
		m.colorInput.SetValue(s.Color)
		m.colorInput.CursorEnd()
		return m, m.colorInput.Focus()
	case "y":
		s, ok := m.selected()
		if !ok {
			return m, nil
		}
		return m, commands.CopyText(copyText(s), "#"+s.ID)
	case "r":
		m.loading = true
		return m, commands.LoadSlots(m.repo)
	}

	return m, nil
}

// handleMoveKeys handles keys while choosing a reschedule target.
func (m Model) handleMoveKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.mode = ModeNormal
		m.weekStart = m.moveFromWeek
		m.cursor = m.moveFromPlace
		m.moveID = ""
		return m, m.setStatus("Move cancelled", statusDuration)

	case "h", "left":
		if m.moveTarget.Day > 0 {
			m.moveTarget.Day--
		} else {
			m.shiftWeek(-1)
			m.moveTarget.Day = 6
		}
	case "l", "right":
		if m.moveTarget.Day < 6 {
			m.moveTarget.Day++
		} else {
			m.shiftWeek(1)
			m.moveTarget.Day = 0
		}
	case "j", "down":
		if m.moveTarget.Period < slot.Evening {
			m.moveTarget.Period++
		}
	case "k", "up":
		if m.moveTarget.Period > slot.Morning {
			m.moveTarget.Period--
		}
	case "H", "shift+left":
		m.shiftWeek(-1)
	case "L", "shift+right":
		m.shiftWeek(1)

	case "enter", "m":
		return m.confirmMove()
	}

	m.cursor = m.moveTarget
	m.cursor.Index = m.indexOf(m.moveID)
	return m, nil
}

// confirmMove applies the reschedule and persists it.
func (m Model) confirmMove() (tea.Model, tea.Cmd) {
	id := m.moveID
	date := dateutil.AddDays(m.weekStart, m.moveTarget.Day)

	m.mode = ModeNormal
	m.moveID = ""
	if err := m.reg.Reschedule(id, date, m.moveTarget.Period); err != nil {
		m.err = err
		return m, m.setStatus(fmt.Sprintf("Error: %v", err), 5*time.Second)
	}

	moved, err := m.reg.Get(id)
	if err != nil {
		m.err = err
		return m, m.setStatus(fmt.Sprintf("Error: %v", err), 5*time.Second)
	}
	m.log.Debug("moved slot in week view",
		zap.String("id", id),
		zap.String("date", dateutil.FormatDate(moved.Date)),
		zap.Stringer("period", m.moveTarget.Period),
	)

	m.cursor = m.moveTarget
	m.cursor.Index = m.indexOf(id)
	return m, commands.SaveSlot(m.repo, moved)
}

// handleColorKeys handles the color input.
func (m Model) handleColorKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = ModeNormal
		m.moveID = ""
		m.colorInput.Blur()
		return m, nil
	case "enter":
		value := strings.ToLower(strings.TrimSpace(m.colorInput.Value()))
		if err := m.reg.SetColor(m.moveID, value); err != nil {
			return m, m.setStatus(fmt.Sprintf("Error: %v", err), 5*time.Second)
		}
		s, err := m.reg.Get(m.moveID)
		if err != nil {
			m.err = err
			return m, nil
		}
		m.mode = ModeNormal
		m.moveID = ""
		m.colorInput.Blur()
		return m, commands.SaveSlot(m.repo, s)
	}

	var cmd tea.Cmd
	m.colorInput, cmd = m.colorInput.Update(msg)
	return m, cmd
}

// indexOf returns the index of id inside the cursor cell, or 0.
func (m *Model) indexOf(id string) int {
	for i, s := range m.cellAt(m.cursor) {
		if s.ID == id {
			return i
		}
	}
	return 0
}

// copyText is the plain-text summary of a slot put on the clipboard.
func copyText(s slot.Slot) string {
	parts := []string{
		fmt.Sprintf("%s %s %s", s.Title, dateutil.FormatDate(s.Date), s.Time),
	}
	for _, v := range []string{s.Teacher, s.Room, s.Branch, s.Note} {
		if v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, " | ")
}
