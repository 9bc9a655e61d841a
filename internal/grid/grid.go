// Package grid projects slots onto a 7-day × 3-period week.
package grid

import (
	"slices"
	"time"

	"github.com/javiermolinar/timetable/internal/dateutil"
	"github.com/javiermolinar/timetable/internal/slot"
)

// DaysPerWeek is the number of days per week.
const DaysPerWeek = 7

// Cell is the ordered list of slots for one day and period.
type Cell []slot.Slot

// Grid holds one week of slots, Monday (0) through Sunday (6).
type Grid struct {
	WeekStart time.Time // Monday of the week
	Cells     [DaysPerWeek][slot.NumPeriods]Cell
}

// BuildWeek distributes slots into the week starting at weekStart.
// weekStart must be a Monday; callers normalize with dateutil.StartOfWeek.
// Slots outside the week are ignored. Every cell is non-nil.
func BuildWeek(slots []slot.Slot, weekStart time.Time) Grid {
	g := Grid{WeekStart: dateutil.TruncateToDay(weekStart)}
	for d := range g.Cells {
		for p := range g.Cells[d] {
			g.Cells[d][p] = Cell{}
		}
	}

	dayIndex := make(map[string]int, DaysPerWeek)
	for d := 0; d < DaysPerWeek; d++ {
		dayIndex[dateutil.DateKey(g.DateOf(d))] = d
	}

	for _, s := range slots {
		d, ok := dayIndex[s.DateKey()]
		if !ok {
			continue
		}
		p := s.Period()
		g.Cells[d][p] = append(g.Cells[d][p], s)
	}

	for d := range g.Cells {
		for p := range g.Cells[d] {
			slices.SortStableFunc(g.Cells[d][p], func(a, b slot.Slot) int {
				switch {
				case a.Time.Start < b.Time.Start:
					return -1
				case a.Time.Start > b.Time.Start:
					return 1
				default:
					return 0
				}
			})
		}
	}

	return g
}

// Cell returns the slots for the given weekday (0=Monday) and period.
// Returns nil if either index is out of range.
func (g *Grid) Cell(weekday int, p slot.Period) Cell {
	if weekday < 0 || weekday >= DaysPerWeek || !p.Valid() {
		return nil
	}
	return g.Cells[weekday][p]
}

// DateOf returns the calendar date of a weekday (0=Monday).
func (g *Grid) DateOf(weekday int) time.Time {
	return dateutil.AddDays(g.WeekStart, weekday)
}

// EndDate returns the Sunday of the week.
func (g *Grid) EndDate() time.Time {
	return g.DateOf(DaysPerWeek - 1)
}

// Count returns the number of slots placed in the grid.
func (g *Grid) Count() int {
	n := 0
	for d := range g.Cells {
		for p := range g.Cells[d] {
			n += len(g.Cells[d][p])
		}
	}
	return n
}

// ConflictCount returns the number of placed slots flagged as conflicting.
func (g *Grid) ConflictCount() int {
	n := 0
	for _, s := range g.AllSlots() {
		if s.Conflict {
			n++
		}
	}
	return n
}

// AllSlots returns all slots in the grid, day by day and period by period.
func (g *Grid) AllSlots() []slot.Slot {
	var result []slot.Slot
	for d := range g.Cells {
		for p := range g.Cells[d] {
			result = append(result, g.Cells[d][p]...)
		}
	}
	return result
}

// WeekdayName returns the name of the weekday (0=Monday).
func WeekdayName(weekday int) string {
	names := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	if weekday < 0 || weekday > 6 {
		return ""
	}
	return names[weekday]
}

// WeekdayShortName returns the short name of the weekday (0=Monday).
func WeekdayShortName(weekday int) string {
	names := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
	if weekday < 0 || weekday > 6 {
		return ""
	}
	return names[weekday]
}
