package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/timetable/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case commands.SlotsLoadedMsg:
		m.loading = false
		if err := m.reg.Load(msg.Slots); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.clampCursor()
		m.log.Debug("slots loaded", zap.Int("count", len(msg.Slots)))
		return m, nil

	case commands.SlotSavedMsg:
		status := fmt.Sprintf("Saved #%s", msg.Slot.ID)
		if n := m.conflictsOf(msg.Slot.ID); n > 0 {
			status += fmt.Sprintf(", %d conflict(s)", n)
		}
		return m, m.setStatus(status, statusDuration)

	case commands.ErrMsg:
		m.loading = false
		m.log.Error("tui command failed", zap.Error(msg.Err))
		return m, m.setStatus(fmt.Sprintf("Error: %v", msg.Err), 5*time.Second)

	case commands.StatusMsgCmd:
		return m, m.setStatus(msg.Msg, statusDuration)

	case commands.ClearStatusMsg:
		if !m.now().Before(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil
	}

	if m.mode == ModeColor {
		var cmd tea.Cmd
		m.colorInput, cmd = m.colorInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

// conflictsOf counts the pairs the slot is part of.
func (m *Model) conflictsOf(id string) int {
	n := 0
	for _, c := range m.reg.Conflicts() {
		if c.Involves(id) {
			n++
		}
	}
	return n
}
