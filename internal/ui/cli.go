// Package ui implements the timetable command line.
package ui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javiermolinar/timetable/internal/config"
	"github.com/javiermolinar/timetable/internal/conflict"
	"github.com/javiermolinar/timetable/internal/db"
	"github.com/javiermolinar/timetable/internal/logger"
	"github.com/javiermolinar/timetable/internal/registry"
	"github.com/javiermolinar/timetable/internal/slot"
	"github.com/javiermolinar/timetable/internal/tui"
)

var (
	// Version is set at build time
	Version = "dev"
	// Commit is set at build time
	Commit = "none"
)

// App holds the CLI application state.
type App struct {
	repo       slot.Repository
	ownsRepo   bool
	config     *config.Config
	configPath string
	log        *zap.Logger
	root       *cobra.Command
	debug      bool
}

// NewApp creates a new CLI application with the given repository and config.
// A nil repository is opened lazily from the configured database path.
func NewApp(repo slot.Repository, cfg *config.Config) *App {
	if cfg == nil {
		cfg = config.Default()
	}
	a := &App{repo: repo, config: cfg, log: zap.NewNop()}

	a.root = &cobra.Command{
		Use:   "timetable",
		Short: "Weekly timetable coordinator for an education center",
		Long: `Timetable keeps the weekly schedule of classes, make-up sessions and
events, flags teacher and room double-bookings, and lets you move slots
between days and periods.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE: func(_ *cobra.Command, _ []string) error {
			return a.runTUI()
		},
	}

	a.root.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default "+config.DefaultConfigPath()+")")
	a.root.PersistentFlags().BoolVar(&a.debug, "debug", false, "Enable debug logging (the week view logs to a temp file)")

	a.root.AddCommand(a.versionCmd())
	a.root.AddCommand(a.configCmd())
	a.root.AddCommand(a.importCmd())
	a.root.AddCommand(a.exportCmd())
	a.root.AddCommand(a.listCmd())
	a.root.AddCommand(a.weekCmd())
	a.root.AddCommand(a.rescheduleCmd())
	a.root.AddCommand(a.colorCmd())
	a.root.AddCommand(a.conflictsCmd())

	return a
}

// setup reloads the config when --config is given and builds the logger.
func (a *App) setup(_ *cobra.Command, _ []string) error {
	if a.configPath != "" {
		cfg, err := config.LoadFrom(a.configPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		a.config = cfg
	}

	level := a.config.Log.Level
	if a.debug {
		level = "debug"
	}
	log, err := logger.New(level, a.config.Log.Format)
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	a.log = log
	return nil
}

// runTUI opens the interactive week view. The terminal belongs to the view,
// so it only logs when --debug is set, and then to a file.
func (a *App) runTUI() error {
	if err := a.ensureRepo(); err != nil {
		return err
	}

	log := zap.NewNop()
	if a.debug {
		path := filepath.Join(os.TempDir(), "timetable-debug.log")
		fileLog, err := logger.NewFile(path, "debug")
		if err != nil {
			return fmt.Errorf("creating debug log: %w", err)
		}
		defer func() { _ = fileLog.Sync() }()
		log = fileLog
		fmt.Fprintf(a.root.ErrOrStderr(), "Debug log: %s\n", path)
	}
	return tui.Run(a.repo, a.config, log)
}

func (a *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "timetable %s (commit: %s)\n", Version, Commit)
		},
	}
}

// ensureRepo opens the configured database if no repository was injected.
func (a *App) ensureRepo() error {
	if a.repo != nil {
		return nil
	}

	path := a.config.Storage.DBPath
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating database directory: %w", err)
	}

	repo, err := db.New(path)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	a.repo = repo
	a.ownsRepo = true
	a.log.Debug("opened database", zap.String("path", path))
	return nil
}

// newRegistry returns an empty registry wired to the configured online rooms.
func (a *App) newRegistry() *registry.Registry {
	return registry.New(
		registry.WithLogger(a.log),
		registry.WithDetector(conflict.NewDetector(a.config.Schedule.OnlineRooms...)),
	)
}

// loadRegistry loads every stored slot into a fresh registry.
func (a *App) loadRegistry(ctx context.Context) (*registry.Registry, error) {
	if err := a.ensureRepo(); err != nil {
		return nil, err
	}

	slots, err := a.repo.ListSlots(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing slots: %w", err)
	}

	reg := a.newRegistry()
	if err := reg.Load(slots); err != nil {
		return nil, fmt.Errorf("loading slots: %w", err)
	}
	return reg, nil
}

// Execute runs the CLI application.
func (a *App) Execute() error {
	return a.root.Execute()
}

// Close flushes the logger and closes a repository opened by the app.
func (a *App) Close() error {
	_ = a.log.Sync()
	if a.ownsRepo && a.repo != nil {
		return a.repo.Close()
	}
	return nil
}
