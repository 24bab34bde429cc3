package cli

import (
	"fmt"

	"github.com/pfrederiksen/monoid-roster/internal/export"
	"github.com/pfrederiksen/monoid-roster/internal/logger"
	"github.com/pfrederiksen/monoid-roster/internal/roster"
	"github.com/spf13/cobra"
)

var (
	flagOut            string
	flagExportSelected bool
)

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the roster as the PHP page of the site",
		Args:  cobra.NoArgs,
		RunE:  runExport,
	}

	cmd.Flags().StringVar(&flagOut, "out", export.DefaultFile, "Output file")
	cmd.Flags().BoolVarP(&flagExportSelected, "selected", "s", false, "Export only the selected students")

	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	session, err := ws.loadSession()
	if err != nil {
		return err
	}
	tbl := session.Table

	rows := tbl.Rows
	if flagExportSelected {
		rows = tbl.Selected()
		if len(rows) == 0 {
			return fmt.Errorf("no students selected")
		}
	}

	if len(tbl.Headers) != export.RowFields || !rowsFit(rows, export.RowFields) {
		logger.Warn("Roster does not fit the export layout, cells are padded or dropped", logger.Fields{
			"columns":  len(tbl.Headers),
			"expected": export.RowFields,
		})
	}

	if err := export.WriteFile(flagOut, tbl.Headers, rows, now()); err != nil {
		return err
	}
	logger.Info("Exported roster", logger.Fields{
		"path": flagOut,
		"rows": len(rows),
	})

	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d students to %s.\n", len(rows), flagOut)
	return nil
}

func rowsFit(rows []roster.Row, n int) bool {
	for _, row := range rows {
		if len(row) != n {
			return false
		}
	}
	return true
}
