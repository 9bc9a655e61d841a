// Package tui provides the interactive week view of the timetable.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/javiermolinar/timetable/internal/config"
	"github.com/javiermolinar/timetable/internal/conflict"
	"github.com/javiermolinar/timetable/internal/dateutil"
	"github.com/javiermolinar/timetable/internal/display"
	"github.com/javiermolinar/timetable/internal/grid"
	"github.com/javiermolinar/timetable/internal/registry"
	"github.com/javiermolinar/timetable/internal/slot"
	"github.com/javiermolinar/timetable/internal/tui/commands"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeMove        // Choosing a new day and period for the selected slot
	ModeColor       // Typing a color for the selected slot
)

// Position represents a cursor position in the grid.
type Position struct {
	Day    int         // 0=Monday, 6=Sunday
	Period slot.Period // Row of the grid
	Index  int         // Entry inside the cell
}

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo     slot.Repository
	config   *config.Config
	log      *zap.Logger
	theme    display.Theme
	reg      *registry.Registry
	detector *conflict.Detector
	now      func() time.Time

	// State
	weekStart time.Time // Monday of the displayed week
	cursor    Position
	mode      Mode
	tab       int // Index into display.Tabs
	loading   bool

	// Move mode
	moveID        string
	moveTarget    Position
	moveFromWeek  time.Time
	moveFromPlace Position

	// Components
	colorInput textinput.Model

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg  string    // Temporary status/error message
	statusTime time.Time // When to clear message

	// Error state
	err error
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) ModelOption {
	return func(m *Model) {
		if l != nil {
			m.log = l
		}
	}
}

// WithNow overrides the clock used for "today".
func WithNow(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

// New creates a new TUI model.
func New(repo slot.Repository, cfg *config.Config, opts ...ModelOption) *Model {
	ci := textinput.New()
	ci.Placeholder = "#rrggbb, empty for type color"
	ci.CharLimit = 7
	ci.Width = 12

	m := &Model{
		repo:       repo,
		config:     cfg,
		log:        zap.NewNop(),
		theme:      display.LoadTheme(cfg.Display.Theme),
		now:        time.Now,
		mode:       ModeNormal,
		loading:    true,
		colorInput: ci,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.detector = conflict.NewDetector(cfg.Schedule.OnlineRooms...)
	m.reg = registry.New(
		registry.WithLogger(m.log),
		registry.WithDetector(m.detector),
	)
	m.goToToday()
	return m
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return commands.LoadSlots(m.repo)
}

// Run starts the TUI.
func Run(repo slot.Repository, cfg *config.Config, log *zap.Logger) error {
	model := New(repo, cfg, WithLogger(log))
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// typeFilter returns the type of the active tab, empty for "All".
func (m *Model) typeFilter() slot.Type {
	if m.tab <= 0 || m.tab > len(slot.Types) {
		return ""
	}
	return slot.Types[m.tab-1]
}

// week builds the displayed grid, with the moving slot previewed at its target.
func (m *Model) week() grid.Grid {
	slots := display.Filter(m.reg.All(), m.typeFilter())
	if m.mode == ModeMove {
		target := dateutil.AddDays(m.weekStart, m.moveTarget.Day)
		for i := range slots {
			if slots[i].ID == m.moveID {
				slots[i].Date = target
				slots[i].Time = slot.CanonicalRange(m.moveTarget.Period)
			}
		}
	}
	return grid.BuildWeek(slots, m.weekStart)
}

// cellAt returns the visible slots of one cell.
func (m *Model) cellAt(p Position) grid.Cell {
	g := m.week()
	return g.Cell(p.Day, p.Period)
}

// selected returns the slot under the cursor.
func (m *Model) selected() (slot.Slot, bool) {
	cell := m.cellAt(m.cursor)
	if m.cursor.Index < 0 || m.cursor.Index >= len(cell) {
		return slot.Slot{}, false
	}
	return cell[m.cursor.Index], true
}

// clampCursor keeps the cursor index inside its cell.
func (m *Model) clampCursor() {
	n := len(m.cellAt(m.cursor))
	if m.cursor.Index >= n {
		m.cursor.Index = n - 1
	}
	if m.cursor.Index < 0 {
		m.cursor.Index = 0
	}
}

// goToToday shows the current week with the cursor on today.
func (m *Model) goToToday() {
	today := m.now()
	m.weekStart = dateutil.StartOfWeek(today)
	m.cursor = Position{Day: weekdayIndex(today), Period: slot.PeriodOf(slot.TimeRange{Start: today.Format("15:04")})}
	m.clampCursor()
}

// shiftWeek moves the displayed week by n weeks.
func (m *Model) shiftWeek(n int) {
	m.weekStart = dateutil.AddDays(m.weekStart, 7*n)
}

// weekdayIndex returns 0 for Monday through 6 for Sunday.
func weekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// setStatus shows a temporary message.
func (m *Model) setStatus(msg string, d time.Duration) tea.Cmd {
	m.statusMsg = msg
	m.statusTime = m.now().Add(d)
	return commands.ClearStatusAfter(d)
}
