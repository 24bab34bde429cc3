package roster

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func sampleTable() *Table {
	return NewTable(
		Headers{"Name", "Klasse", "Schule", "121", "122", "123", "124", "Summe", "Forscherpunkte", "Denkerchen"},
		[]Row{
			{"Anna", "7", "Mainz", "4", "-", "3,5", "-", "7,5", "-", "-"},
			{"bernd", "8", "Wiesbaden", "-", "-", "-", "-", "-", "-", "-"},
			{"Clara", "9", "Alzey", "2", "2", "2", "2", "8", "1", "-"},
		},
	)
}

var pointCols = Span{Start: 3, End: 7}

func TestSortRows(t *testing.T) {
	rows := []Row{{"beta", "1"}, {"Alpha", "2"}, {"gamma", "3"}, {"alpha", "4"}}
	SortRows(rows, 0)

	require.Equal(t, []Row{{"Alpha", "2"}, {"alpha", "4"}, {"beta", "1"}, {"gamma", "3"}}, rows)
}

func TestSpan(t *testing.T) {
	require.Equal(t, []int{3, 4, 5, 6}, pointCols.Indices())
	require.True(t, pointCols.Contains(3))
	require.False(t, pointCols.Contains(7))
	require.Nil(t, Span{Start: 4, End: 4}.Indices())
	require.Equal(t, "3-7", pointCols.String())
}

func TestTable_IndexAndFind(t *testing.T) {
	tbl := sampleTable()

	idx, err := tbl.Index("Summe")
	require.NoError(t, err)
	require.Equal(t, 7, idx)

	_, err = tbl.Index("Missing")
	require.ErrorIs(t, err, ErrUnknownColumn)

	row, err := tbl.Find("BERND", 0)
	require.NoError(t, err)
	require.Equal(t, 1, row)

	_, err = tbl.Find("Dora", 0)
	require.ErrorIs(t, err, ErrUnknownStudent)
}

func TestTable_Insert(t *testing.T) {
	tests := []struct {
		name    string
		student string
		wantPos int
	}{
		{"front", "aaron", 0},
		{"middle", "Benno", 1},
		{"between", "Berta", 2},
		{"after equal key", "anna", 1},
		{"end", "Zoe", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := sampleTable()
			pos, err := tbl.Insert(tt.student, 0)
			require.NoError(t, err)
			require.Equal(t, tt.wantPos, pos)
			require.Len(t, tbl.Rows, 4)

			row := tbl.Rows[pos]
			require.Len(t, row, len(tbl.Headers))
			require.Equal(t, tt.student, row[0])
			for _, cell := range row[1:] {
				require.Equal(t, "-", cell)
			}
		})
	}
}

func TestTable_InsertShiftsSelection(t *testing.T) {
	tbl := sampleTable()
	require.NoError(t, tbl.Check(0, true))
	require.NoError(t, tbl.Check(2, true))

	_, err := tbl.Insert("Bert", 0)
	require.NoError(t, err)

	require.Equal(t, []int{0, 3}, tbl.Checked)
	require.Equal(t, "Clara", tbl.Selected()[1][0])
}

func TestTable_Remove(t *testing.T) {
	tbl := sampleTable()
	require.NoError(t, tbl.Check(1, true))
	require.NoError(t, tbl.Check(2, true))

	require.NoError(t, tbl.Remove(1))
	require.Len(t, tbl.Rows, 2)
	require.Equal(t, []int{1}, tbl.Checked)
	require.Equal(t, "Clara", tbl.Selected()[0][0])

	require.ErrorIs(t, tbl.Remove(5), ErrUnknownStudent)
}

func TestTable_Rename(t *testing.T) {
	tbl := sampleTable()
	require.NoError(t, tbl.Check(0, true))
	require.NoError(t, tbl.Check(2, true))

	pos, err := tbl.Rename(0, 0, "Zoe")
	require.NoError(t, err)
	require.Equal(t, 2, pos)
	require.Equal(t, Row{"Zoe", "7", "Mainz", "4", "-", "3,5", "-", "7,5", "-", "-"}, tbl.Rows[2])
	require.Equal(t, "bernd", tbl.Rows[0][0])
	require.Equal(t, []int{1, 2}, tbl.Checked)

	_, err = tbl.Rename(7, 0, "x")
	require.ErrorIs(t, err, ErrUnknownStudent)
}

func TestTable_Set(t *testing.T) {
	tbl := sampleTable()

	require.NoError(t, tbl.Set(0, 4, "5"))
	require.Equal(t, "5", tbl.Rows[0][4])

	require.NoError(t, tbl.Set(0, 4, "  "))
	require.Equal(t, "-", tbl.Rows[0][4])

	require.ErrorIs(t, tbl.Set(9, 0, "x"), ErrUnknownStudent)
	require.ErrorIs(t, tbl.Set(0, 42, "x"), ErrUnknownColumn)
}

func TestTable_RecomputeSum(t *testing.T) {
	tbl := sampleTable()

	require.NoError(t, tbl.Set(1, 3, "1,5"))
	require.NoError(t, tbl.Set(1, 6, "2"))

	total, err := tbl.RecomputeSum(1, pointCols, 7)
	require.NoError(t, err)
	require.Equal(t, "3,5", total)
	require.Equal(t, "3,5", tbl.Rows[1][7])

	require.NoError(t, tbl.Set(1, 3, "-"))
	require.NoError(t, tbl.Set(1, 6, "-"))
	total, err = tbl.RecomputeSum(1, pointCols, 7)
	require.NoError(t, err)
	require.Equal(t, "-", total)

	_, err = tbl.RecomputeSum(1, Span{Start: 3, End: 20}, 7)
	require.ErrorIs(t, err, ErrUnknownColumn)
}

func TestTable_Releases(t *testing.T) {
	tbl := sampleTable()
	original := tbl.Headers

	first, err := tbl.FirstRelease(pointCols)
	require.NoError(t, err)
	require.Equal(t, 121, first)

	require.NoError(t, tbl.RenumberReleases(125, pointCols))
	require.Equal(t, Headers{"Name", "Klasse", "Schule", "125", "126", "127", "128", "Summe", "Forscherpunkte", "Denkerchen"}, tbl.Headers)
	require.Equal(t, "121", original[3], "header list must be replaced, not mutated")

	_, err = tbl.FirstRelease(Span{Start: 0, End: 1})
	require.Error(t, err)
}

func TestTable_Check(t *testing.T) {
	tbl := sampleTable()

	require.NoError(t, tbl.Check(2, true))
	require.NoError(t, tbl.Check(0, true))
	require.NoError(t, tbl.Check(0, true))
	require.Equal(t, []int{0, 2}, tbl.Checked)
	require.True(t, tbl.IsChecked(2))

	require.NoError(t, tbl.Check(2, false))
	require.Equal(t, []int{0}, tbl.Checked)

	tbl.ClearChecked()
	require.Empty(t, tbl.Selected())

	require.ErrorIs(t, tbl.Check(-1, true), ErrUnknownStudent)
}
