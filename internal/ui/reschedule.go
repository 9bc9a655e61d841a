package ui

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timetable/internal/conflict"
	"github.com/javiermolinar/timetable/internal/dateutil"
	"github.com/javiermolinar/timetable/internal/registry"
	"github.com/javiermolinar/timetable/internal/slot"
)

func (a *App) rescheduleCmd() *cobra.Command {
	var (
		date   string
		period string
	)

	cmd := &cobra.Command{
		Use:   "reschedule <slot-id>",
		Short: "Move a slot to another day and period",
		Long: `Move a slot to a new date and period.

The slot keeps its id, title, teacher and room. Its time is replaced by the
standard range of the target period:
  morning    08:00-12:00
  afternoon  13:00-18:00
  evening    18:00-22:00

A move that creates a double-booking is still applied; the clash is reported.`,
		Example: `  timetable reschedule EVT-05 --date 09/12/2025 --period evening`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			out := cmd.OutOrStdout()
			id := args[0]

			newDate, err := dateutil.ParseDate(date)
			if err != nil {
				return fmt.Errorf("invalid date: %w", err)
			}
			newPeriod, err := slot.ParsePeriod(period)
			if err != nil {
				return err
			}

			reg, err := a.loadRegistry(ctx)
			if err != nil {
				return err
			}

			before, err := reg.Get(id)
			if err != nil {
				return err
			}
			if err := reg.Reschedule(id, newDate, newPeriod); err != nil {
				return err
			}

			moved, err := reg.Get(id)
			if err != nil {
				return err
			}
			if err := a.repo.UpdateSlot(ctx, moved); err != nil {
				return fmt.Errorf("saving slot: %w", err)
			}

			fmt.Fprintf(out, "Rescheduled #%s %q: %s %s → %s %s\n",
				moved.ID, moved.Title,
				dateutil.FormatDate(before.Date), before.Time,
				dateutil.FormatDate(moved.Date), moved.Time,
			)
			printClashes(out, reg, moved)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "New date (DD/MM/YYYY, required)")
	cmd.Flags().StringVar(&period, "period", "", "New period: morning, afternoon or evening (required)")

	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("period")

	return cmd
}

// printClashes reports the conflicts s takes part in, if any.
func printClashes(out io.Writer, reg *registry.Registry, s slot.Slot) {
	if !s.Conflict {
		fmt.Fprintf(out, "  %s\n", formatOK("No conflicts"))
		return
	}
	for _, c := range reg.Conflicts() {
		if !c.Involves(s.ID) {
			continue
		}
		other := c.A
		if other == s.ID {
			other = c.B
		}
		fmt.Fprintf(out, "  %s with #%s (%s)\n", formatConflict("Conflict"), other, resourceList(c))
	}
}

func resourceList(c conflict.Conflict) string {
	names := make([]string, len(c.Resources))
	for i, r := range c.Resources {
		names[i] = string(r)
	}
	return "same " + strings.Join(names, " and ")
}
