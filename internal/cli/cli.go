package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pfrederiksen/monoid-roster/internal/logger"
	"github.com/pfrederiksen/monoid-roster/internal/preferences"
	"github.com/pfrederiksen/monoid-roster/internal/storage"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

var (
	flagConfig  string
	flagDataDir string
	flagVerbose bool
)

// now returns the date printed into exports.
var now = time.Now

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "monoid",
		Short: "Maintain the Monoid solver roster",
		Long: `A CLI tool to maintain the roster of Monoid solvers.
Loads the roster from the Monoid website, an exported file or the saved
session, edits scores and students, and exports the PHP page of the site.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupLogging,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.LogMetrics()
		},
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", preferences.DefaultFile, "Settings file")
	cmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "~/.local/share/monoid-roster", "Data directory for the saved session")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(
		newLoadCmd(),
		newShowCmd(),
		newSetCmd(),
		newAddCmd(),
		newRemoveCmd(),
		newSelectCmd(),
		newReleaseCmd(),
		newExportCmd(),
		newStateCmd(),
		newConfigCmd(),
	)

	return cmd
}

// setupLogging routes log output to stderr at the level chosen by --verbose.
func setupLogging(cmd *cobra.Command, args []string) error {
	level := logger.LevelWarn
	if flagVerbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))
	return nil
}

// workspace bundles the settings and session store a command works with.
type workspace struct {
	settings *preferences.Settings
	store    *storage.Storage
}

func openWorkspace() (*workspace, error) {
	settings, err := preferences.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading settings: %w", err)
	}

	store, err := storage.New(flagDataDir)
	if err != nil {
		return nil, fmt.Errorf("initializing storage: %w", err)
	}

	return &workspace{
		settings: settings,
		store:    store,
	}, nil
}

// loadSession returns the saved session.
func (w *workspace) loadSession() (*storage.Session, error) {
	session, err := w.store.Load()
	if errors.Is(err, storage.ErrNoSession) {
		return nil, fmt.Errorf("%w, run 'monoid load' first", err)
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	return session, nil
}

// saveSession persists the edited session.
func (w *workspace) saveSession(session *storage.Session) error {
	if err := w.store.Save(session); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// Execute runs the CLI
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
}
