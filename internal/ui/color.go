package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timetable/internal/display"
)

func (a *App) colorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "color <slot-id> <#rrggbb|\"\">",
		Short: "Set or reset the display color of a slot",
		Long: `Set the display color of a slot. An empty color resets it to the
color of its type. Only the appearance changes.`,
		Example: `  timetable color CLS-01 "#8b5cf6"
  timetable color CLS-01 ""`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			id := args[0]
			color := strings.ToLower(strings.TrimSpace(args[1]))

			reg, err := a.loadRegistry(ctx)
			if err != nil {
				return err
			}
			if err := reg.SetColor(id, color); err != nil {
				return err
			}

			s, err := reg.Get(id)
			if err != nil {
				return err
			}
			if err := a.repo.UpdateSlot(ctx, s); err != nil {
				return fmt.Errorf("saving slot: %w", err)
			}

			if color == "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Reset #%s to the %s color %s\n",
					s.ID, strings.ToLower(display.Meta(s.Type).Label), display.ColorOf(s))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Set #%s color to %s (background %s)\n",
				s.ID, color, display.Light(color))
			return nil
		},
	}
}
