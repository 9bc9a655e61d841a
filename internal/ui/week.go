package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/timetable/internal/dateutil"
	"github.com/javiermolinar/timetable/internal/display"
	"github.com/javiermolinar/timetable/internal/grid"
	"github.com/javiermolinar/timetable/internal/slot"
)

const (
	labelWidth   = 12
	minCellWidth = 14
)

func (a *App) weekCmd() *cobra.Command {
	var (
		date     string
		typeName string
		noColor  bool
	)

	cmd := &cobra.Command{
		Use:   "week",
		Short: "Show the week grid",
		Long: `Display the week containing --date (default today) as a grid of
seven days by three periods (morning, afternoon, evening).

Each slot is drawn in a light tint of its type color, or of its own color
when one is set. Conflicting slots are bold with a red left border.`,
		Example: `  timetable week
  timetable week --date 08/12/2025 --type class`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}

			day, err := dateutil.ParseDateOrToday(date)
			if err != nil {
				return fmt.Errorf("invalid date: %w", err)
			}
			typ, err := parseTypeFlag(typeName)
			if err != nil {
				return err
			}

			monday, sunday := dateutil.WeekRange(day)
			slots, err := a.slotsInRange(context.Background(), monday, sunday)
			if err != nil {
				return err
			}

			g := grid.BuildWeek(slots, monday)
			theme := display.LoadTheme(a.config.Display.Theme)
			fmt.Fprint(cmd.OutOrStdout(), renderWeek(&g, theme, typ, termWidth()))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Any date in the week (DD/MM/YYYY, defaults to today)")
	cmd.Flags().StringVar(&typeName, "type", "", "Only show one type (class, makeup, event)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable color output")
	return cmd
}

// renderWeek draws the grid header, the type tabs and the 7×3 table.
func renderWeek(g *grid.Grid, theme display.Theme, typ slot.Type, width int) string {
	var b strings.Builder

	header := fmt.Sprintf("WEEK: %s %s - %s %s",
		g.WeekStart.Format("Mon"), dateutil.FormatDate(g.WeekStart),
		g.EndDate().Format("Mon"), dateutil.FormatDate(g.EndDate()))
	b.WriteString("\n  " + theme.HeaderStyle().Render(header) + "\n")
	b.WriteString("  " + theme.RenderTabs(g.AllSlots(), typ) + "\n\n")

	cellWidth := (width - labelWidth) / grid.DaysPerWeek
	if cellWidth < minCellWidth {
		cellWidth = minCellWidth
	}
	rule := theme.MutedStyle().Render(strings.Repeat("─", labelWidth+cellWidth*grid.DaysPerWeek))

	days := make([]string, 0, grid.DaysPerWeek+1)
	days = append(days, lipgloss.NewStyle().Width(labelWidth).Render(""))
	for d := 0; d < grid.DaysPerWeek; d++ {
		title := fmt.Sprintf("%s %s", grid.WeekdayShortName(d), g.DateOf(d).Format("02/01"))
		days = append(days, theme.HeaderStyle().Width(cellWidth).Render(title))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, days...) + "\n")
	b.WriteString(rule + "\n")

	for _, p := range slot.Periods {
		canonical := slot.CanonicalRange(p)
		label := lipgloss.JoinVertical(lipgloss.Left,
			theme.HeaderStyle().Render(p.Label()),
			theme.MutedStyle().Render(canonical.Start[:2]+"-"+canonical.End[:2]),
		)
		row := make([]string, 0, grid.DaysPerWeek+1)
		row = append(row, lipgloss.NewStyle().Width(labelWidth).Render(label))
		for d := 0; d < grid.DaysPerWeek; d++ {
			row = append(row, theme.RenderCell(display.Filter(g.Cell(d, p), typ), cellWidth, display.NoSelection))
		}
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, row...) + "\n")
		b.WriteString(rule + "\n")
	}

	visible := display.Filter(g.AllSlots(), typ)
	PrintStats(&b, AccumulateStats(visible))
	return b.String()
}
