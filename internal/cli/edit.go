package cli

import (
	"fmt"
	"strconv"

	"github.com/pfrederiksen/monoid-roster/internal/logger"
	"github.com/pfrederiksen/monoid-roster/internal/preferences"
	"github.com/pfrederiksen/monoid-roster/internal/roster"
	"github.com/spf13/cobra"
)

var (
	flagUnselect    bool
	flagClearSelect bool
)

// editFunc changes the table of a session and reports the change on the
// command output.
type editFunc func(cmd *cobra.Command, tbl *roster.Table, cols preferences.Columns) error

// editSession loads the saved session, applies fn and saves the result.
func editSession(cmd *cobra.Command, fn editFunc) error {
	ws, err := openWorkspace()
	if err != nil {
		return err
	}
	session, err := ws.loadSession()
	if err != nil {
		return err
	}
	cols, err := ws.settings.Columns(session.Table)
	if err != nil {
		return err
	}

	if err := fn(cmd, session.Table, cols); err != nil {
		return err
	}
	return ws.saveSession(session)
}

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set NAME COLUMN VALUE",
		Short: "Change one cell of a student",
		Long: `Change one cell of a student.
COLUMN is a header label. Changing a point column recomputes the sum.
Changing the name moves the student to its place in name order.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editSession(cmd, func(cmd *cobra.Command, tbl *roster.Table, cols preferences.Columns) error {
				return setCell(cmd, tbl, cols, args[0], args[1], args[2])
			})
		},
	}
}

func setCell(cmd *cobra.Command, tbl *roster.Table, cols preferences.Columns, name, column, value string) error {
	row, err := tbl.Find(name, cols.Name)
	if err != nil {
		return err
	}
	col, err := tbl.Index(column)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	switch {
	case col == cols.Sum:
		return fmt.Errorf("column %q is computed from the point columns", column)
	case col == cols.Name:
		if _, err := tbl.Rename(row, cols.Name, value); err != nil {
			return err
		}
		fmt.Fprintf(out, "Renamed %s to %s.\n", name, value)
		return nil
	}

	if err := tbl.Set(row, col, value); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s: %s = %s\n", tbl.Rows[row][cols.Name], tbl.Headers[col], tbl.Rows[row][col])

	if cols.Points.Contains(col) {
		total, err := tbl.RecomputeSum(row, cols.Points, cols.Sum)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "%s: %s = %s\n", tbl.Rows[row][cols.Name], tbl.Headers[cols.Sum], total)
	}
	return nil
}

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add NAME",
		Short: "Add a student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editSession(cmd, func(cmd *cobra.Command, tbl *roster.Table, cols preferences.Columns) error {
				if _, err := tbl.Find(args[0], cols.Name); err == nil {
					logger.Warn("Student already exists", logger.Fields{"name": args[0]})
				}
				pos, err := tbl.Insert(args[0], cols.Name)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s at position %d.\n", args[0], pos+1)
				return nil
			})
		},
	}
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove NAME",
		Short: "Remove a student",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editSession(cmd, func(cmd *cobra.Command, tbl *roster.Table, cols preferences.Columns) error {
				row, err := tbl.Find(args[0], cols.Name)
				if err != nil {
					return err
				}
				name := tbl.Rows[row][cols.Name]
				if err := tbl.Remove(row); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Removed %s.\n", name)
				return nil
			})
		},
	}
}

func newSelectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select [NAME...]",
		Short: "Select students for a partial export",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && !flagClearSelect {
				return fmt.Errorf("no students given")
			}
			return editSession(cmd, func(cmd *cobra.Command, tbl *roster.Table, cols preferences.Columns) error {
				if flagClearSelect {
					tbl.ClearChecked()
				}
				for _, name := range args {
					row, err := tbl.Find(name, cols.Name)
					if err != nil {
						return err
					}
					if err := tbl.Check(row, !flagUnselect); err != nil {
						return err
					}
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d students selected.\n", len(tbl.Checked))
				return nil
			})
		},
	}

	cmd.Flags().BoolVarP(&flagUnselect, "unselect", "u", false, "Unselect the given students")
	cmd.Flags().BoolVar(&flagClearSelect, "clear", false, "Clear the selection first")

	return cmd
}

func newReleaseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "release [FIRST]",
		Short: "Show or renumber the release columns",
		Long: `Show or renumber the release columns.
Without an argument the first release number is printed. With FIRST the
point columns are relabeled with consecutive release numbers.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return editSession(cmd, func(cmd *cobra.Command, tbl *roster.Table, cols preferences.Columns) error {
				if len(args) == 0 {
					first, err := tbl.FirstRelease(cols.Points)
					if err != nil {
						return err
					}
					fmt.Fprintf(cmd.OutOrStdout(), "First release: %d\n", first)
					return nil
				}

				first, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid release number %q: %w", args[0], err)
				}
				if err := tbl.RenumberReleases(first, cols.Points); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Release columns: %v\n", tbl.Headers[cols.Points.Start:cols.Points.End])
				return nil
			})
		},
	}
}
