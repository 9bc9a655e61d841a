package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javiermolinar/timetable/internal/importer"
	"github.com/javiermolinar/timetable/internal/slot"
)

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file.json>",
		Short: "Replace the stored timetable with a JSON file",
		Long: `Import a JSON array of slots, replacing every stored slot.

Each record has id, title, type (class, makeup, event), teacher, room,
date (DD/MM/YYYY), start and end (HH:MM), and optional branch, note and
color. Records without an id get a generated one. Any "conflict" field is
ignored; conflicts are always recomputed. Use "-" to read from stdin.`,
		Example: `  timetable import week50.json
  cat week50.json | timetable import -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			var r io.Reader = cmd.InOrStdin()
			source := "stdin"
			if args[0] != "-" {
				path, err := resolvePath(args[0])
				if err != nil {
					return err
				}
				f, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("opening %s: %w", path, err)
				}
				defer func() { _ = f.Close() }()
				r, source = f, path
			}

			slots, conflicts, err := a.importSlots(context.Background(), r)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d slots from %s\n", len(slots), source)
			if conflicts > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", formatConflict(fmt.Sprintf("%d conflicting pairs, run 'timetable conflicts'", conflicts)))
			}
			return nil
		},
	}

	return cmd
}

// importSlots validates the document and replaces the stored set with it.
// Nothing is stored when any record is invalid.
func (a *App) importSlots(ctx context.Context, r io.Reader) ([]slot.Slot, int, error) {
	slots, err := importer.ReadSlots(r)
	if err != nil {
		return nil, 0, fmt.Errorf("reading slots: %w", err)
	}

	reg := a.newRegistry()
	if err := reg.Load(slots); err != nil {
		return nil, 0, fmt.Errorf("loading slots: %w", err)
	}

	if err := a.repo.ReplaceSlots(ctx, slots); err != nil {
		return nil, 0, fmt.Errorf("storing slots: %w", err)
	}

	conflicts := len(reg.Conflicts())
	a.log.Info("imported slots", zap.Int("count", len(slots)), zap.Int("conflicts", conflicts))
	return slots, conflicts, nil
}

func resolvePath(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return "", fmt.Errorf("empty path")
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	return absPath, nil
}
