package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timetable/internal/conflict"
	"github.com/javiermolinar/timetable/internal/dateutil"
)

func (a *App) conflictsCmd() *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "List double-booked slot pairs",
		Long: `List every pair of slots that overlap in time on the same date while
sharing a teacher, or a room that is not an online room.`,
		Example: `  timetable conflicts
  timetable conflicts --date 08/12/2025`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()

			reg, err := a.loadRegistry(ctx)
			if err != nil {
				return err
			}

			conflicts := reg.Conflicts()
			if date != "" {
				day, err := dateutil.ParseDate(date)
				if err != nil {
					return fmt.Errorf("invalid date: %w", err)
				}
				conflicts = conflictsOn(conflicts, dateutil.DateKey(day))
			}

			if len(conflicts) == 0 {
				fmt.Fprintf(out, "%s\n", formatOK("No conflicts."))
				return nil
			}

			for _, c := range conflicts {
				first, errA := reg.Get(c.A)
				second, errB := reg.Get(c.B)
				if errA != nil || errB != nil {
					continue
				}
				fmt.Fprintf(out, "%s %s\n", formatConflict("!"), formatHeader(dateutil.FormatDate(first.Date)+" "+resourceList(c)))
				PrintSlotRow(out, first, 30)
				PrintSlotRow(out, second, 30)
			}
			fmt.Fprintf(out, "\n  %d conflicting pairs\n", len(conflicts))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Only show conflicts on this date (DD/MM/YYYY)")
	return cmd
}

func conflictsOn(conflicts []conflict.Conflict, dateKey string) []conflict.Conflict {
	var result []conflict.Conflict
	for _, c := range conflicts {
		if c.DateKey == dateKey {
			result = append(result, c)
		}
	}
	return result
}
