package sheet

import "iter"

// Iter yields all stored cells in row-major order. Each call starts a fresh
// pass over the current state.
func (s *Sheet) Iter() iter.Seq2[Pos, CellContentRef] {
	return func(yield func(Pos, CellContentRef) bool) {
		s.data.Ascend(func(e *cellEntry) bool {
			return yield(e.pos, e.data.Ref())
		})
	}
}

// Range yields the cells with from <= pos < to in row-major order.
func (s *Sheet) Range(from, to Pos) iter.Seq2[Pos, CellContentRef] {
	return func(yield func(Pos, CellContentRef) bool) {
		s.data.AscendRange(probe(from.Row, from.Col), probe(to.Row, to.Col), func(e *cellEntry) bool {
			return yield(e.pos, e.data.Ref())
		})
	}
}

// RangeBackward yields the cells with from <= pos < to in reverse order.
func (s *Sheet) RangeBackward(from, to Pos) iter.Seq2[Pos, CellContentRef] {
	return func(yield func(Pos, CellContentRef) bool) {
		s.data.DescendLessOrEqual(probe(to.Row, to.Col), func(e *cellEntry) bool {
			if e.pos == to {
				return true
			}
			if e.pos.Less(from) {
				return false
			}
			return yield(e.pos, e.data.Ref())
		})
	}
}

// RowCells yields the cells of one row by column.
func (s *Sheet) RowCells(row uint32) iter.Seq2[Pos, CellContentRef] {
	if row == ^uint32(0) {
		return s.Range(Pos{Row: row}, Pos{Row: row, Col: ^uint32(0)})
	}
	return s.Range(Pos{Row: row}, Pos{Row: row + 1})
}

// Rect yields the cells inside r, ignoring the table name of r.
func (s *Sheet) Rect(r CellRange) iter.Seq2[Pos, CellContentRef] {
	return func(yield func(Pos, CellContentRef) bool) {
		s.data.AscendGreaterOrEqual(probe(r.Row, r.Col), func(e *cellEntry) bool {
			if e.pos.Row > r.ToRow {
				return false
			}
			if e.pos.Col < r.Col || e.pos.Col > r.ToCol {
				return true
			}
			return yield(e.pos, e.data.Ref())
		})
	}
}
