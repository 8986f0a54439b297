package sheet

import (
	"cmp"
	"slices"
)

// ReadPolicy controls how decoded cells are stored by LoadCell.
type ReadPolicy struct {
	// IgnoreEmptyCells drops cells with no value, formula, style or extra
	// data instead of storing them.
	IgnoreEmptyCells bool
	// UseCloneForRepeat stores every repetition as its own cell.
	UseCloneForRepeat bool
	// UseRepeatForEmpty keeps empty cells as one repeat counted entry and
	// joins an empty cell to an empty run ending right before it.
	UseRepeatForEmpty bool
}

// LoadCell stores a decoded cell at row, col according to p and returns
// the number of columns it consumed, which is its repeat count.
func (s *Sheet) LoadCell(p ReadPolicy, row, col uint32, cd CellData) uint32 {
	if cd.Repeat == 0 {
		cd.Repeat = 1
	}
	n := cd.Repeat
	blank := cd.IsBlank()

	if blank && p.IgnoreEmptyCells {
		return n
	}
	if blank && p.UseRepeatForEmpty && s.extendEmptyRun(row, col, n) {
		return n
	}
	if n == 1 || (blank && p.UseRepeatForEmpty) || !p.UseCloneForRepeat {
		s.AddCellData(row, col, cd)
		return n
	}

	cd.Repeat = 1
	for i := uint32(0); i < n-1; i++ {
		s.AddCellData(row, col+i, cd.Clone())
	}
	s.AddCellData(row, col+n-1, cd)
	return n
}

// extendEmptyRun grows a blank run that ends at col-1 by n columns.
func (s *Sheet) extendEmptyRun(row, col, n uint32) bool {
	if col == 0 {
		return false
	}
	var prev *cellEntry
	s.data.DescendLessOrEqual(probe(row, col-1), func(e *cellEntry) bool {
		prev = e
		return false
	})
	if prev == nil || prev.pos.Row != row || prev.pos.Col+prev.data.Repeat != col || !prev.data.IsBlank() {
		return false
	}
	prev.data.Repeat += n
	return true
}

// CellRun is one element of a written row: a stored cell standing for
// Repeat columns, a gap of columns with no stored cell, or columns covered
// by a spanning cell.
type CellRun struct {
	Col     uint32
	Repeat  uint32
	Gap     bool
	Covered bool

	data *CellData
}

// Cell returns the stored cell of a run. ok is false for gaps and covered
// runs.
func (r CellRun) Cell() (CellContentRef, bool) {
	if r.data == nil {
		return CellContentRef{}, false
	}
	return r.data.Ref(), true
}

// Coverage lists, per row, the columns hidden under a spanning cell. The
// origin cell of a span is not covered.
type Coverage map[uint32][]ColRange

// Coverage computes the span coverage of the whole sheet.
func (s *Sheet) Coverage() Coverage {
	cov := make(Coverage)
	s.data.Ascend(func(e *cellEntry) bool {
		x := e.data.extra
		if x == nil || x.span.IsEmpty() {
			return true
		}
		for r := uint32(0); r < x.span.RowSpan; r++ {
			from := e.pos.Col
			if r == 0 {
				from++
			}
			to := e.pos.Col + x.span.ColSpan - 1
			if from <= to {
				cov[e.pos.Row+r] = append(cov[e.pos.Row+r], ColRange{Col: from, ToCol: to})
			}
		}
		return true
	})
	for row := range cov {
		slices.SortFunc(cov[row], func(a, b ColRange) int { return cmp.Compare(a.Col, b.Col) })
	}
	return cov
}

// Covered reports whether row, col is hidden under a span.
func (c Coverage) Covered(row, col uint32) bool {
	for _, r := range c[row] {
		if r.Contains(col) {
			return true
		}
	}
	return false
}

// CoveredCols returns the covered column ranges of one row.
func (s *Sheet) CoveredCols(row uint32) []ColRange {
	return s.Coverage()[row]
}

// RowRuns groups one row into runs for writing. Consecutive cells with the
// same value, formula and style are joined into one run. Columns without a
// stored cell become one gap run if repeatForEmpty is set, otherwise one
// gap per column. Stored cells under a span are dropped. The row is padded
// with gaps up to width; pass 0 for no padding. cov may be nil.
func (s *Sheet) RowRuns(row, width uint32, repeatForEmpty bool, cov Coverage) []CellRun {
	w := runWriter{covered: cov[row], repeatForEmpty: repeatForEmpty}

	for pos, ref := range s.RowCells(row) {
		c := pos.Col
		if c < w.next || w.coveredAt(c) != nil {
			continue
		}
		w.advance(c)

		n := ref.data.Repeat
		for _, cr := range w.covered {
			if cr.Col > c && cr.Col < c+n {
				n = cr.Col - c
				break
			}
		}
		p := w.pending
		if p != nil && p.data != nil && p.Col+p.Repeat == c && p.data.SameContent(ref.data) {
			p.Repeat += n
		} else {
			w.flush()
			w.pending = &CellRun{Col: c, Repeat: n, data: ref.data}
		}
		w.next = c + n
	}

	end := width
	for _, cr := range w.covered {
		end = max(end, cr.ToCol+1)
	}
	w.advance(end)
	w.flush()
	return w.runs
}

type runWriter struct {
	covered        []ColRange
	repeatForEmpty bool

	next    uint32
	pending *CellRun
	runs    []CellRun
}

func (w *runWriter) flush() {
	if w.pending != nil {
		w.runs = append(w.runs, *w.pending)
		w.pending = nil
	}
}

func (w *runWriter) coveredAt(col uint32) *ColRange {
	for i := range w.covered {
		if w.covered[i].Contains(col) {
			return &w.covered[i]
		}
	}
	return nil
}

// advance fills the columns from w.next up to to with gap and covered runs.
func (w *runWriter) advance(to uint32) {
	for w.next < to {
		if cr := w.coveredAt(w.next); cr != nil {
			end := min(cr.ToCol+1, to)
			w.empty(w.next, end, true)
			w.next = end
			continue
		}
		end := to
		for _, cr := range w.covered {
			if cr.Col > w.next && cr.Col < end {
				end = cr.Col
			}
		}
		w.empty(w.next, end, false)
		w.next = end
	}
}

func (w *runWriter) empty(from, to uint32, covered bool) {
	if to <= from {
		return
	}
	w.flush()
	switch {
	case covered:
		w.runs = append(w.runs, CellRun{Col: from, Repeat: to - from, Covered: true})
	case w.repeatForEmpty:
		w.runs = append(w.runs, CellRun{Col: from, Repeat: to - from, Gap: true})
	default:
		for c := from; c < to; c++ {
			w.runs = append(w.runs, CellRun{Col: c, Repeat: 1, Gap: true})
		}
	}
}
