package sheet

// CellSpan is the extent of a merged cell or of an array formula result.
// The neutral span is (1,1).
type CellSpan struct {
	RowSpan uint32
	ColSpan uint32
}

// NewCellSpan returns the span (1,1).
func NewCellSpan() CellSpan {
	return CellSpan{RowSpan: 1, ColSpan: 1}
}

// CellSpanFromTuple builds a span from a (rows, cols) pair. Both must be > 0.
func CellSpanFromTuple(rows, cols uint32) CellSpan {
	var s CellSpan
	s.SetRowSpan(rows)
	s.SetColSpan(cols)
	return s
}

// Tuple returns (rows, cols).
func (s CellSpan) Tuple() (uint32, uint32) {
	return s.RowSpan, s.ColSpan
}

// IsEmpty reports whether the span is (1,1).
func (s CellSpan) IsEmpty() bool {
	return s.RowSpan == 1 && s.ColSpan == 1
}

// SetRowSpan sets the row span. Panics if rows is 0.
// Cells below that are covered by the span are dropped when writing.
func (s *CellSpan) SetRowSpan(rows uint32) {
	mustPositive("row span", rows)
	s.RowSpan = rows
}

// SetColSpan sets the column span. Panics if cols is 0.
// Cells to the right that are covered by the span are dropped when writing.
func (s *CellSpan) SetColSpan(cols uint32) {
	mustPositive("col span", cols)
	s.ColSpan = cols
}

func mustPositive(what string, n uint32) {
	if n == 0 {
		panic("sheet: " + what + " must be greater than 0")
	}
}
