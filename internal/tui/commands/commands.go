// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/timetable/internal/slot"
)

// SlotsLoadedMsg is sent when the stored slots are loaded.
type SlotsLoadedMsg struct {
	Slots []slot.Slot
}

// SlotSavedMsg is sent when a changed slot is persisted.
type SlotSavedMsg struct {
	Slot slot.Slot
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// clipboardWrite is replaced in tests.
var clipboardWrite = clipboard.WriteAll

// LoadSlots loads every stored slot.
func LoadSlots(repo slot.Repository) tea.Cmd {
	return func() tea.Msg {
		slots, err := repo.ListSlots(context.Background())
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading slots: %w", err)}
		}
		return SlotsLoadedMsg{Slots: slots}
	}
}

// SaveSlot persists one slot after an in-memory change.
func SaveSlot(repo slot.Repository, s slot.Slot) tea.Cmd {
	return func() tea.Msg {
		if err := repo.UpdateSlot(context.Background(), s); err != nil {
			return ErrMsg{Err: fmt.Errorf("saving slot %s: %w", s.ID, err)}
		}
		return SlotSavedMsg{Slot: s}
	}
}

// CopyText copies text to the system clipboard.
func CopyText(text, what string) tea.Cmd {
	return func() tea.Msg {
		if err := clipboardWrite(text); err != nil {
			return ErrMsg{Err: fmt.Errorf("copying to clipboard: %w", err)}
		}
		return StatusMsgCmd{Msg: "Copied " + what}
	}
}

// ClearStatusAfter clears the status line after d.
func ClearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return ClearStatusMsg{}
	})
}
