package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decoded(v Value, style string, repeat uint32) CellData {
	cd := NewCellData()
	cd.Value = v
	cd.Style = style
	cd.Repeat = repeat
	return cd
}

func TestLoadCell(t *testing.T) {
	tests := []struct {
		name   string
		policy ReadPolicy
		cell   CellData
		want   []Pos
		repeat uint32
	}{
		{"default keeps repeat", ReadPolicy{}, decoded(Number(1), "", 3), []Pos{{0, 2}}, 3},
		{"clone expands", ReadPolicy{UseCloneForRepeat: true}, decoded(Number(1), "", 3), []Pos{{0, 2}, {0, 3}, {0, 4}}, 1},
		{"ignore empty", ReadPolicy{IgnoreEmptyCells: true}, decoded(EmptyValue(), "", 4), nil, 0},
		{"styled empty is kept", ReadPolicy{IgnoreEmptyCells: true}, decoded(EmptyValue(), "ce1", 2), []Pos{{0, 2}}, 2},
		{"clone keeps empty runs", ReadPolicy{UseCloneForRepeat: true, UseRepeatForEmpty: true}, decoded(EmptyValue(), "", 4), []Pos{{0, 2}}, 4},
		{"clone expands empty", ReadPolicy{UseCloneForRepeat: true}, decoded(EmptyValue(), "", 2), []Pos{{0, 2}, {0, 3}}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New("Sheet1")
			n := s.LoadCell(tt.policy, 0, 2, tt.cell)
			assert.Equal(t, tt.cell.Repeat, n)

			var got []Pos
			for pos, c := range s.Iter() {
				got = append(got, pos)
				assert.Equal(t, tt.repeat, c.Repeat())
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoadCellClonesAreIndependent(t *testing.T) {
	s := New("Sheet1")
	cd := decoded(Text("x"), "", 2)
	cd.extraMut().annotation = &Annotation{Author: "a"}
	s.LoadCell(ReadPolicy{UseCloneForRepeat: true}, 0, 0, cd)

	s.Annotation(0, 0).Author = "changed"
	assert.Equal(t, "a", s.Annotation(0, 1).Author)
}

func TestLoadCellJoinsEmptyRuns(t *testing.T) {
	s := New("Sheet1")
	p := ReadPolicy{UseRepeatForEmpty: true}
	col := uint32(0)
	col += s.LoadCell(p, 0, col, decoded(Text("a"), "", 1))
	col += s.LoadCell(p, 0, col, decoded(EmptyValue(), "", 2))
	col += s.LoadCell(p, 0, col, decoded(EmptyValue(), "", 3))
	col += s.LoadCell(p, 0, col, decoded(Text("b"), "", 1))
	assert.Equal(t, uint32(7), col)

	assert.Equal(t, 3, s.CellCount())
	assert.Equal(t, uint32(5), s.ColRepeat(0, 1))
	assert.True(t, s.IsEmpty(0, 3))
}

func TestRowRunsEmptyRepeat(t *testing.T) {
	s := New("Sheet1")
	for c := uint32(5); c <= 9; c++ {
		s.SetCellStyle(0, c, "ce1")
	}

	runs := s.RowRuns(0, 0, true, nil)
	require.Len(t, runs, 2)
	assert.True(t, runs[0].Gap)
	assert.Equal(t, uint32(0), runs[0].Col)
	assert.Equal(t, uint32(5), runs[0].Repeat)
	assert.Equal(t, uint32(5), runs[1].Col)
	assert.Equal(t, uint32(5), runs[1].Repeat)
	ref, ok := runs[1].Cell()
	require.True(t, ok)
	assert.Equal(t, "ce1", ref.Style())

	// Without the empty policy every gap column is its own run.
	runs = s.RowRuns(0, 0, false, nil)
	require.Len(t, runs, 6)
	for _, r := range runs[:5] {
		assert.True(t, r.Gap)
		assert.Equal(t, uint32(1), r.Repeat)
	}
}

func TestRowRunsGrouping(t *testing.T) {
	s := New("Sheet1")
	s.SetValue(0, 0, Number(1))
	s.SetValue(0, 1, Number(1))
	s.SetValue(0, 2, Number(2))
	s.SetValue(0, 4, Number(2))
	s.SetValue(0, 5, Number(2))
	s.SetValidation(0, 6, "v")
	s.SetValidation(0, 7, "v")

	runs := s.RowRuns(0, 10, true, nil)
	type run struct {
		col, repeat uint32
		gap         bool
	}
	var got []run
	for _, r := range runs {
		got = append(got, run{r.Col, r.Repeat, r.Gap})
	}
	assert.Equal(t, []run{
		{0, 2, false},
		{2, 1, false},
		{3, 1, true},
		{4, 2, false},
		{6, 1, false},
		{7, 1, false},
		{8, 2, true},
	}, got)
}

func TestRowRunsStoredRepeat(t *testing.T) {
	s := New("Sheet1")
	s.AddCellData(0, 1, decoded(Text("r"), "", 3))
	s.SetValue(0, 2, Text("hidden by repeat"))
	s.SetValue(0, 4, Text("r"))

	runs := s.RowRuns(0, 0, true, nil)
	require.Len(t, runs, 2)
	assert.Equal(t, uint32(1), runs[1].Col)
	assert.Equal(t, uint32(4), runs[1].Repeat)
}

func TestCoverage(t *testing.T) {
	s := New("Sheet1")
	s.SetValue(1, 1, Text("merged"))
	s.SetRowSpan(1, 1, 2)
	s.SetColSpan(1, 1, 3)
	s.SetValue(2, 2, Text("dropped"))
	s.SetValue(2, 5, Text("after"))

	cov := s.Coverage()
	assert.Equal(t, []ColRange{{Col: 2, ToCol: 3}}, cov[1])
	assert.Equal(t, []ColRange{{Col: 1, ToCol: 3}}, cov[2])
	assert.True(t, cov.Covered(2, 2))
	assert.False(t, cov.Covered(1, 1))
	assert.Equal(t, cov[2], s.CoveredCols(2))

	runs := s.RowRuns(1, 0, true, cov)
	require.Len(t, runs, 3)
	assert.True(t, runs[0].Gap)
	assert.Equal(t, uint32(1), runs[1].Col)
	assert.True(t, runs[2].Covered)
	assert.Equal(t, uint32(2), runs[2].Col)
	assert.Equal(t, uint32(2), runs[2].Repeat)

	runs = s.RowRuns(2, 0, true, cov)
	require.Len(t, runs, 4)
	assert.True(t, runs[0].Gap)
	assert.True(t, runs[1].Covered)
	assert.Equal(t, uint32(3), runs[1].Repeat)
	assert.True(t, runs[2].Gap)
	assert.Equal(t, uint32(4), runs[2].Col)
	assert.Equal(t, uint32(5), runs[3].Col)
}
