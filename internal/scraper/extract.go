package scraper

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/monoid-roster/internal/logger"
	"github.com/pfrederiksen/monoid-roster/internal/roster"
	"golang.org/x/net/html"
)

// ExtractTable reads the first table body in markup. The first row supplies
// the headers from its th cells, every further row supplies the td cells of
// one student. Rows are returned sorted by column 0, ignoring case.
func ExtractTable(r io.Reader) (roster.Headers, []roster.Row, error) {
	doc, err := parseDocument(r)
	if err != nil {
		return nil, nil, err
	}
	return extract(doc.Selection)
}

// ParseWebsite extracts the roster from the solver page, where the roster
// table sits inside an outer layout table.
func ParseWebsite(r io.Reader) (roster.Headers, []roster.Row, error) {
	doc, err := parseDocument(r)
	if err != nil {
		return nil, nil, err
	}

	container := doc.Find("body table").First()
	if container.Length() == 0 {
		return nil, nil, fmt.Errorf("%w: no container table", ErrStructureNotFound)
	}

	table := container.Find("table").First()
	if table.Length() == 0 {
		return nil, nil, fmt.Errorf("%w: no nested table", ErrStructureNotFound)
	}

	return extract(table)
}

// ParseFile extracts the roster from an exported file, where the roster
// table is the first table in the body.
func ParseFile(r io.Reader) (roster.Headers, []roster.Row, error) {
	doc, err := parseDocument(r)
	if err != nil {
		return nil, nil, err
	}

	table := doc.Find("body table").First()
	if table.Length() == 0 {
		return nil, nil, fmt.Errorf("%w: no table", ErrStructureNotFound)
	}

	return extract(table)
}

// ParseFilePath opens path and extracts its roster with ParseFile.
func ParseFilePath(path string) (*roster.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	headers, rows, err := ParseFile(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return roster.NewTable(headers, rows), nil
}

// parseDocument parses markup with the HTML5 tree builder, which repairs
// unclosed and misplaced tags the way browsers do.
func parseDocument(r io.Reader) (*goquery.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return goquery.NewDocumentFromNode(root), nil
}

// extract reads headers and rows from the first tbody below scope.
func extract(scope *goquery.Selection) (roster.Headers, []roster.Row, error) {
	start := time.Now()

	body := scope.Find("tbody").First()
	if body.Length() == 0 {
		return nil, nil, fmt.Errorf("%w: no table body", ErrStructureNotFound)
	}

	trs := body.Find("tr")
	if trs.Length() == 0 {
		return nil, nil, fmt.Errorf("%w: no header row", ErrStructureNotFound)
	}

	headers := roster.Headers(cellTexts(trs.First(), "th"))

	rows := make([]roster.Row, 0, trs.Length()-1)
	var corrupt error
	trs.Slice(1, goquery.ToEnd).EachWithBreak(func(i int, tr *goquery.Selection) bool {
		row := roster.Row(cellTexts(tr, "td"))
		if len(row) != len(headers) {
			corrupt = fmt.Errorf("%w: row %d has %d cells, want %d", ErrCorruptTable, i+1, len(row), len(headers))
			return false
		}
		rows = append(rows, row)
		return true
	})
	if corrupt != nil {
		logger.IncrCounter("scraper.extract.corrupt")
		return nil, nil, corrupt
	}

	roster.SortRows(rows, 0)

	logger.RecordTiming("scraper.extract", time.Since(start))
	logger.Debug("Extracted roster table", logger.Fields{
		"headers": len(headers),
		"rows":    len(rows),
	})

	return headers, rows, nil
}

// cellTexts returns the text content of every matching cell below tr.
func cellTexts(tr *goquery.Selection, cell string) []string {
	cells := tr.Find(cell)
	texts := make([]string, 0, cells.Length())
	cells.Each(func(_ int, c *goquery.Selection) {
		texts = append(texts, c.Text())
	})
	return texts
}
