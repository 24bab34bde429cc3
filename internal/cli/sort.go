package cli

import (
	"sort"
	"strings"

	"github.com/pfrederiksen/monoid-roster/internal/points"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByName  SortOrder = "name"
	SortByScore SortOrder = "score"
)

// sortRows orders displayed rows. Scores sort highest first; ties and the
// name order compare lowercase names.
func sortRows(rows []OutputRow, order SortOrder, nameIdx, sumIdx int) {
	switch order {
	case SortByName:
		sort.SliceStable(rows, func(i, j int) bool {
			return compareByName(rows[i], rows[j], nameIdx)
		})
	case SortByScore:
		sort.SliceStable(rows, func(i, j int) bool {
			si, sj := score(rows[i], sumIdx), score(rows[j], sumIdx)
			if si != sj {
				return si > sj
			}
			return compareByName(rows[i], rows[j], nameIdx)
		})
	}
}

func compareByName(i, j OutputRow, nameIdx int) bool {
	return strings.ToLower(cell(i, nameIdx)) < strings.ToLower(cell(j, nameIdx))
}

func score(row OutputRow, sumIdx int) float64 {
	return points.ParseScore(cell(row, sumIdx))
}

func cell(row OutputRow, idx int) string {
	if idx < 0 || idx >= len(row.Cells) {
		return ""
	}
	return row.Cells[idx]
}
