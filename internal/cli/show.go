package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	flagFormat       string
	flagSort         string
	flagOnlySelected bool
)

func newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the roster of the saved session",
		Args:  cobra.NoArgs,
		RunE:  runShow,
	}

	cmd.Flags().StringVarP(&flagFormat, "format", "f", "text", "Output format (text, json or yaml)")
	cmd.Flags().StringVar(&flagSort, "sort", "", "Display order (name or score), defaults to roster order")
	cmd.Flags().BoolVarP(&flagOnlySelected, "selected", "s", false, "Show only selected students")

	return cmd
}

func runShow(cmd *cobra.Command, args []string) error {
	format := OutputFormat(flagFormat)
	if format != FormatText && format != FormatJSON && format != FormatYAML {
		return fmt.Errorf("invalid format: %s (must be 'text', 'json' or 'yaml')", flagFormat)
	}
	order := SortOrder(flagSort)
	if order != "" && order != SortByName && order != SortByScore {
		return fmt.Errorf("invalid sort order: %s (must be 'name' or 'score')", flagSort)
	}

	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	session, err := ws.loadSession()
	if err != nil {
		return err
	}
	tbl := session.Table

	result := &OutputResult{
		Source:  session.Source,
		SavedAt: session.SavedAt,
		Headers: tbl.Headers,
		Rows:    []OutputRow{},
	}
	for i, row := range tbl.Rows {
		selected := tbl.IsChecked(i)
		if flagOnlySelected && !selected {
			continue
		}
		result.Rows = append(result.Rows, OutputRow{
			Index:    i,
			Selected: selected,
			Cells:    row,
		})
	}
	result.Count = len(result.Rows)

	if order != "" {
		cols, err := ws.settings.Columns(tbl)
		if err != nil {
			return err
		}
		sortRows(result.Rows, order, cols.Name, cols.Sum)
	}

	return WriteOutput(cmd.OutOrStdout(), result, format)
}
