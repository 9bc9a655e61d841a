package ui

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/timetable/internal/importer"
)

func (a *App) exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [file.json]",
		Short: "Write the timetable as JSON",
		Long: `Export every stored slot as a JSON array, ordered by date and start
time. The derived "conflict" flag is included. Without a file the JSON is
written to stdout.`,
		Example: `  timetable export
  timetable export backup.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.loadRegistry(context.Background())
			if err != nil {
				return err
			}

			if len(args) == 0 {
				return importer.WriteSlots(cmd.OutOrStdout(), reg.All())
			}

			path, err := resolvePath(args[0])
			if err != nil {
				return err
			}
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("creating %s: %w", path, err)
			}
			if err := importer.WriteSlots(f, reg.All()); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("closing %s: %w", path, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d slots to %s\n", reg.Len(), path)
			return nil
		},
	}

	return cmd
}
