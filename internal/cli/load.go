package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/pfrederiksen/monoid-roster/internal/export"
	"github.com/pfrederiksen/monoid-roster/internal/logger"
	"github.com/pfrederiksen/monoid-roster/internal/preferences"
	"github.com/pfrederiksen/monoid-roster/internal/roster"
	"github.com/pfrederiksen/monoid-roster/internal/scraper"
	"github.com/pfrederiksen/monoid-roster/internal/storage"
	"github.com/spf13/cobra"
)

// DefaultTemplateFile is the roster loaded when every other source fails.
const DefaultTemplateFile = "template.php"

var (
	flagWebsite      bool
	flagTemplate     bool
	flagRestore      bool
	flagOpenFile     string
	flagDeleteState  bool
	flagTemplateFile string
)

func newLoadCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "load",
		Short: "Load a roster into the session",
		Long: `Load a roster into the session.
Without flags the launch mode from the settings file is used. If the chosen
source cannot be loaded, the template file is loaded instead.`,
		Args: cobra.NoArgs,
		RunE: runLoad,
	}

	cmd.Flags().BoolVarP(&flagWebsite, "website", "w", false, "Fetch the latest data from the Monoid website")
	cmd.Flags().BoolVarP(&flagTemplate, "template", "t", false, "Load the template file")
	cmd.Flags().BoolVarP(&flagRestore, "restore-state", "r", false, "Restore the last saved session")
	cmd.Flags().StringVarP(&flagOpenFile, "open-file", "o", "", "Load an exported PHP file")
	cmd.Flags().BoolVarP(&flagDeleteState, "delete-state", "d", false, "Delete the saved session before loading")
	cmd.Flags().StringVar(&flagTemplateFile, "template-file", DefaultTemplateFile, "Template file used as fallback")

	return cmd
}

// resolveLaunch picks the launch mode. Flags win over the settings file.
func resolveLaunch(settings *preferences.Settings) (preferences.LaunchMode, string) {
	switch {
	case flagWebsite:
		return preferences.LaunchWebsite, ""
	case flagRestore:
		return preferences.LaunchRestore, ""
	case flagTemplate:
		return preferences.LaunchTemplate, ""
	case flagOpenFile != "":
		return preferences.LaunchFile, flagOpenFile
	default:
		return settings.LaunchMode, settings.FilePath
	}
}

func runLoad(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}

	if flagDeleteState {
		if err := ws.store.Delete(); err != nil {
			return err
		}
		logger.Info("Deleted saved session", logger.Fields{"path": ws.store.Path()})
	}

	mode, path := resolveLaunch(ws.settings)
	logger.Debug("Loading roster", logger.Fields{
		"mode": mode.String(),
		"path": path,
	})

	tbl, source, err := loadTable(cmd.Context(), ws, mode, path)
	if err != nil {
		return err
	}

	if _, err := ws.settings.Columns(tbl); err != nil {
		logger.Warn("Roster does not match the header settings", logger.Fields{
			"headers": tbl.Headers,
			"error":   err.Error(),
		})
	}
	if len(tbl.Headers) != export.RowFields {
		logger.Warn("Roster column count differs from the export layout", logger.Fields{
			"columns":  len(tbl.Headers),
			"expected": export.RowFields,
		})
	}

	if err := ws.store.SaveTable(tbl, source); err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Loaded %d students from %s (%d columns).\n", len(tbl.Rows), source, len(tbl.Headers))
	return nil
}

// loadTable loads the roster for mode. When the source fails, or the
// template was requested, the template file is parsed instead.
func loadTable(ctx context.Context, ws *workspace, mode preferences.LaunchMode, path string) (*roster.Table, string, error) {
	var (
		tbl    *roster.Table
		source string
		err    error
	)

	switch mode {
	case preferences.LaunchRestore:
		var session *storage.Session
		session, err = ws.store.Load()
		if err == nil {
			tbl, source = session.Table, session.Source
		}
	case preferences.LaunchWebsite:
		sc := scraper.New(ws.settings.WebsiteURL)
		tbl, err = sc.FetchTable(ctx)
		source = sc.URL()
	case preferences.LaunchFile:
		if path == "" {
			err = errors.New("no file path configured")
		} else {
			tbl, err = scraper.ParseFilePath(path)
			source = path
		}
	}

	if tbl != nil {
		return tbl, source, nil
	}

	if err != nil {
		logger.Warn("Loading roster failed, falling back to template", logger.Fields{
			"mode":     mode.String(),
			"template": flagTemplateFile,
			"error":    err.Error(),
		})
	}

	tbl, tmplErr := scraper.ParseFilePath(flagTemplateFile)
	if tmplErr != nil {
		if err != nil {
			return nil, "", fmt.Errorf("loading %s: %v; loading template: %w", mode, err, tmplErr)
		}
		return nil, "", fmt.Errorf("loading template: %w", tmplErr)
	}

	return tbl, flagTemplateFile, nil
}
