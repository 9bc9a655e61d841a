package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timetable/internal/dateutil"
	"github.com/javiermolinar/timetable/internal/display"
	"github.com/javiermolinar/timetable/internal/slot"
)

func (a *App) listCmd() *cobra.Command {
	var (
		startDate string
		endDate   string
		typeName  string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List slots, optionally in a date range",
		Long: `List stored slots ordered by date and start time.

If no dates are specified, lists every slot.
If only --start is specified, lists slots for that single day.
If both --start and --end are specified, lists slots in that range (inclusive).
Conflicting slots are marked with "!".`,
		Example: `  timetable list
  timetable list --type makeup
  timetable list --start 08/12/2025 --end 14/12/2025`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()

			typ, err := parseTypeFlag(typeName)
			if err != nil {
				return err
			}

			slots, err := a.listSlots(ctx, startDate, endDate)
			if err != nil {
				return err
			}
			slots = display.Filter(slots, typ)

			if len(slots) == 0 {
				fmt.Fprintln(out, "No slots found.")
				return nil
			}

			width := maxTitleWidth(30)
			var currentDate string
			for _, s := range slots {
				if key := s.DateKey(); key != currentDate {
					if currentDate != "" {
						fmt.Fprintln(out)
					}
					fmt.Fprintf(out, "%s\n", formatHeader(fmt.Sprintf("=== %s %s ===",
						s.Date.Format("Mon"), dateutil.FormatDate(s.Date))))
					currentDate = key
				}
				PrintSlotRow(out, s, width)
			}

			fmt.Fprintln(out)
			PrintStats(out, AccumulateStats(slots))
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Start date (DD/MM/YYYY)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (DD/MM/YYYY, defaults to start date)")
	cmd.Flags().StringVar(&typeName, "type", "", "Only show one type (class, makeup, event)")

	return cmd
}

// listSlots returns the slots in the requested range with conflict flags set.
// Conflicts never span dates, so detecting inside the range is exact.
func (a *App) listSlots(ctx context.Context, startDate, endDate string) ([]slot.Slot, error) {
	if startDate == "" && endDate == "" {
		reg, err := a.loadRegistry(ctx)
		if err != nil {
			return nil, err
		}
		return reg.All(), nil
	}
	if startDate == "" {
		return nil, fmt.Errorf("--end requires --start")
	}

	dateRange, err := dateutil.NewDateRange(startDate, endDate)
	if err != nil {
		return nil, err
	}
	return a.slotsInRange(ctx, dateRange.Start, dateRange.End)
}

// slotsInRange loads the slots dated within [start, end] into a registry.
func (a *App) slotsInRange(ctx context.Context, start, end time.Time) ([]slot.Slot, error) {
	if err := a.ensureRepo(); err != nil {
		return nil, err
	}

	var (
		slots []slot.Slot
		err   error
	)
	if ranged, ok := a.repo.(rangeLister); ok {
		slots, err = ranged.ListSlotsByDateRange(ctx, start, end)
	} else {
		slots, err = a.repo.ListSlots(ctx)
		slots = filterRange(slots, start, end)
	}
	if err != nil {
		return nil, fmt.Errorf("listing slots: %w", err)
	}

	reg := a.newRegistry()
	if err := reg.Load(slots); err != nil {
		return nil, fmt.Errorf("loading slots: %w", err)
	}
	return reg.All(), nil
}

// rangeLister is implemented by stores that can filter by date themselves.
type rangeLister interface {
	ListSlotsByDateRange(ctx context.Context, start, end time.Time) ([]slot.Slot, error)
}

func filterRange(slots []slot.Slot, start, end time.Time) []slot.Slot {
	from, to := dateutil.DateKey(start), dateutil.DateKey(end)
	var result []slot.Slot
	for _, s := range slots {
		if key := s.DateKey(); key >= from && key <= to {
			result = append(result, s)
		}
	}
	return result
}

// parseTypeFlag parses an optional --type value. Empty means all types.
func parseTypeFlag(s string) (slot.Type, error) {
	if s == "" {
		return "", nil
	}
	return slot.ParseType(s)
}
