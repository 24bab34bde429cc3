package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/pfrederiksen/monoid-roster/internal/roster"
	"gopkg.in/yaml.v3"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// OutputRow is one student as shown to the user.
type OutputRow struct {
	Index    int        `json:"index" yaml:"index"`
	Selected bool       `json:"selected" yaml:"selected"`
	Cells    roster.Row `json:"cells" yaml:"cells"`
}

// OutputResult contains data to be output
type OutputResult struct {
	Source  string         `json:"source" yaml:"source"`
	SavedAt string         `json:"saved_at" yaml:"saved_at"`
	Headers roster.Headers `json:"headers" yaml:"headers"`
	Rows    []OutputRow    `json:"rows" yaml:"rows"`
	Count   int            `json:"count" yaml:"count"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatYAML:
		return writeYAML(w, result)
	case FormatText:
		return writeText(w, result)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func writeYAML(w io.Writer, result *OutputResult) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(result); err != nil {
		return err
	}
	return encoder.Close()
}

// writeText renders the roster as a table. Selected students are marked
// with an asterisk next to their index.
func writeText(w io.Writer, result *OutputResult) error {
	if result.Count == 0 {
		fmt.Fprintln(w, "No students found.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleRounded)
	// Header labels are release numbers and German names, keep them as is.
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault

	header := table.Row{"#"}
	for _, h := range result.Headers {
		header = append(header, h)
	}
	t.AppendHeader(header)

	for _, row := range result.Rows {
		mark := strconv.Itoa(row.Index + 1)
		if row.Selected {
			mark += "*"
		}
		cells := table.Row{mark}
		for _, c := range row.Cells {
			cells = append(cells, c)
		}
		t.AppendRow(cells)
	}
	t.AppendFooter(table.Row{"Total", result.Count})
	t.Render()

	fmt.Fprintf(w, "Source: %s (saved %s)\n", result.Source, result.SavedAt)
	return nil
}
