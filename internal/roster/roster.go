package roster

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pfrederiksen/monoid-roster/internal/points"
)

var (
	// ErrUnknownColumn is returned when a header label or index does not exist.
	ErrUnknownColumn = errors.New("unknown column")
	// ErrUnknownStudent is returned when no row matches a name or index.
	ErrUnknownStudent = errors.New("unknown student")
)

// Headers is the ordered list of column labels.
type Headers []string

// Row is the text of one student's cells, in header order.
type Row []string

// Span is a half-open range [Start, End) of column indices.
type Span struct {
	Start int `json:"start" yaml:"start"`
	End   int `json:"end" yaml:"end"`
}

// Indices returns every column index covered by the span.
func (s Span) Indices() []int {
	if s.End <= s.Start {
		return nil
	}
	idx := make([]int, 0, s.End-s.Start)
	for i := s.Start; i < s.End; i++ {
		idx = append(idx, i)
	}
	return idx
}

// Contains reports whether column i lies within the span.
func (s Span) Contains(i int) bool {
	return i >= s.Start && i < s.End
}

// String formats the span as "start-end".
func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}

// Table is a full roster. Checked holds the row indices selected for a
// partial export.
type Table struct {
	Headers Headers `json:"headers"`
	Rows    []Row   `json:"rows"`
	Checked []int   `json:"checked,omitempty"`
}

// NewTable creates a table from freshly parsed headers and rows.
func NewTable(headers Headers, rows []Row) *Table {
	if rows == nil {
		rows = []Row{}
	}
	return &Table{
		Headers: headers,
		Rows:    rows,
	}
}

// SortRows sorts rows ascending by the case-insensitive text of column col.
// Rows with equal keys keep their relative order.
func SortRows(rows []Row, col int) {
	sort.SliceStable(rows, func(i, j int) bool {
		return sortKey(rows[i], col) < sortKey(rows[j], col)
	})
}

func sortKey(row Row, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.ToLower(row[col])
}

// Index returns the position of the header with the given label.
func (t *Table) Index(header string) (int, error) {
	for i, h := range t.Headers {
		if h == header {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrUnknownColumn, header)
}

// Find returns the index of the first row whose name column equals name,
// ignoring case and surrounding whitespace.
func (t *Table) Find(name string, nameIdx int) (int, error) {
	name = strings.TrimSpace(name)
	for i, row := range t.Rows {
		if nameIdx < len(row) && strings.EqualFold(strings.TrimSpace(row[nameIdx]), name) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrUnknownStudent, name)
}

// Insert adds a new student with every other cell set to "-". The row is
// placed after all rows whose lowercase name sorts at or before the new one.
// It returns the index of the inserted row.
func (t *Table) Insert(name string, nameIdx int) (int, error) {
	if nameIdx < 0 || nameIdx >= len(t.Headers) {
		return -1, fmt.Errorf("%w: index %d", ErrUnknownColumn, nameIdx)
	}

	key := strings.ToLower(name)
	pos := sort.Search(len(t.Rows), func(i int) bool {
		return sortKey(t.Rows[i], nameIdx) > key
	})

	row := make(Row, len(t.Headers))
	for i := range row {
		row[i] = points.Empty
	}
	row[nameIdx] = name

	t.Rows = append(t.Rows, nil)
	copy(t.Rows[pos+1:], t.Rows[pos:])
	t.Rows[pos] = row

	for i, c := range t.Checked {
		if c >= pos {
			t.Checked[i] = c + 1
		}
	}

	return pos, nil
}

// Remove deletes the row at index i and drops it from the selection.
func (t *Table) Remove(i int) error {
	if i < 0 || i >= len(t.Rows) {
		return fmt.Errorf("%w: index %d", ErrUnknownStudent, i)
	}

	t.Rows = append(t.Rows[:i], t.Rows[i+1:]...)

	checked := t.Checked[:0]
	for _, c := range t.Checked {
		switch {
		case c == i:
			continue
		case c > i:
			checked = append(checked, c-1)
		default:
			checked = append(checked, c)
		}
	}
	t.Checked = checked

	return nil
}

// Rename changes the name of row i and moves the row to its place in name
// order. The selection follows the row. It returns the new index.
func (t *Table) Rename(i, nameIdx int, name string) (int, error) {
	if i < 0 || i >= len(t.Rows) {
		return -1, fmt.Errorf("%w: index %d", ErrUnknownStudent, i)
	}
	if nameIdx < 0 || nameIdx >= len(t.Rows[i]) {
		return -1, fmt.Errorf("%w: index %d", ErrUnknownColumn, nameIdx)
	}

	row, checked := t.Rows[i], t.IsChecked(i)
	if err := t.Remove(i); err != nil {
		return -1, err
	}
	pos, err := t.Insert(name, nameIdx)
	if err != nil {
		return -1, err
	}

	row[nameIdx] = name
	t.Rows[pos] = row
	if checked {
		_ = t.Check(pos, true)
	}
	return pos, nil
}

// Set replaces one cell. Blank text is stored as "-".
func (t *Table) Set(row, col int, value string) error {
	if row < 0 || row >= len(t.Rows) {
		return fmt.Errorf("%w: index %d", ErrUnknownStudent, row)
	}
	if col < 0 || col >= len(t.Rows[row]) {
		return fmt.Errorf("%w: index %d", ErrUnknownColumn, col)
	}

	if strings.TrimSpace(value) == "" {
		value = points.Empty
	}
	t.Rows[row][col] = value
	return nil
}

// RecomputeSum sets the sum cell of a row to the total of its point cells.
func (t *Table) RecomputeSum(row int, pointCols Span, sumIdx int) (string, error) {
	if row < 0 || row >= len(t.Rows) {
		return "", fmt.Errorf("%w: index %d", ErrUnknownStudent, row)
	}
	r := t.Rows[row]
	if sumIdx < 0 || sumIdx >= len(r) || pointCols.Start < 0 || pointCols.End > len(r) {
		return "", fmt.Errorf("%w: sum %d, points %s", ErrUnknownColumn, sumIdx, pointCols)
	}

	total := points.FormatScore(points.Sum(r[pointCols.Start:pointCols.End]...))
	r[sumIdx] = total
	return total, nil
}

// FirstRelease returns the release number in the header of the first point
// column.
func (t *Table) FirstRelease(pointCols Span) (int, error) {
	if pointCols.Start < 0 || pointCols.Start >= len(t.Headers) {
		return 0, fmt.Errorf("%w: index %d", ErrUnknownColumn, pointCols.Start)
	}
	n, err := strconv.Atoi(strings.TrimSpace(t.Headers[pointCols.Start]))
	if err != nil {
		return 0, fmt.Errorf("parsing release number %q: %w", t.Headers[pointCols.Start], err)
	}
	return n, nil
}

// RenumberReleases relabels the point columns with consecutive release
// numbers starting at first. The header list is replaced as a whole.
func (t *Table) RenumberReleases(first int, pointCols Span) error {
	if pointCols.Start < 0 || pointCols.End > len(t.Headers) {
		return fmt.Errorf("%w: points %s", ErrUnknownColumn, pointCols)
	}

	headers := make(Headers, len(t.Headers))
	copy(headers, t.Headers)
	for i, idx := range pointCols.Indices() {
		headers[idx] = strconv.Itoa(first + i)
	}
	t.Headers = headers
	return nil
}

// Check marks or unmarks row i for a selected export.
func (t *Table) Check(i int, checked bool) error {
	if i < 0 || i >= len(t.Rows) {
		return fmt.Errorf("%w: index %d", ErrUnknownStudent, i)
	}

	pos := -1
	for n, c := range t.Checked {
		if c == i {
			pos = n
			break
		}
	}

	switch {
	case checked && pos < 0:
		t.Checked = append(t.Checked, i)
		sort.Ints(t.Checked)
	case !checked && pos >= 0:
		t.Checked = append(t.Checked[:pos], t.Checked[pos+1:]...)
	}
	return nil
}

// IsChecked reports whether row i is selected.
func (t *Table) IsChecked(i int) bool {
	for _, c := range t.Checked {
		if c == i {
			return true
		}
	}
	return false
}

// ClearChecked empties the selection.
func (t *Table) ClearChecked() {
	t.Checked = nil
}

// Selected returns the selected rows in table order.
func (t *Table) Selected() []Row {
	rows := make([]Row, 0, len(t.Checked))
	for i, row := range t.Rows {
		if t.IsChecked(i) {
			rows = append(rows, row)
		}
	}
	return rows
}
