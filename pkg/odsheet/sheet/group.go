package sheet

import (
	"fmt"
	"iter"
	"maps"
	"slices"
)

// Grouped is an inclusive outline group of rows or columns.
type Grouped struct {
	From    uint32
	To      uint32
	Display bool
}

// NewGrouped returns a group.
func NewGrouped(from, to uint32, display bool) Grouped {
	return Grouped{From: from, To: to, Display: display}
}

// Contains reports whether o lies within g. A group contains itself.
func (g Grouped) Contains(o Grouped) bool {
	return g.From <= o.From && g.To >= o.To
}

// Disjoint reports whether g and o share no index.
func (g Grouped) Disjoint(o Grouped) bool {
	return g.To < o.From || g.From > o.To
}

func (g Grouped) String() string {
	return fmt.Sprintf("[%d,%d display=%t]", g.From, g.To, g.Display)
}

func addGroup(groups []Grouped, axis string, from, to uint32) []Grouped {
	if from > to {
		panic(fmt.Sprintf("sheet: %s group from %d greater than to %d", axis, from, to))
	}
	grp := NewGrouped(from, to, true)
	for _, g := range groups {
		if !grp.Contains(g) && !g.Contains(grp) && !grp.Disjoint(g) {
			panic(fmt.Sprintf("sheet: %s group %v overlaps %v", axis, grp, g))
		}
	}
	return append(groups, grp)
}

func findGroup(groups []Grouped, from, to uint32) int {
	return slices.IndexFunc(groups, func(g Grouped) bool {
		return g.From == from && g.To == to
	})
}

func groupVisibility(display bool) Visibility {
	if display {
		return Visible
	}
	return Collapsed
}

// AddColGroup adds a displayed column group. Groups may nest but must not
// partially overlap; a violation or from > to panics.
func (s *Sheet) AddColGroup(from, to uint32) {
	s.groupCols = addGroup(s.groupCols, "col", from, to)
}

// RemoveColGroup removes the column group with exactly these bounds.
func (s *Sheet) RemoveColGroup(from, to uint32) {
	if i := findGroup(s.groupCols, from, to); i >= 0 {
		s.groupCols = slices.Delete(s.groupCols, i, i+1)
	}
}

// SetColGroupDisplayed expands or collapses a column group and sets the
// visibility of every covered column to match. Unknown groups are ignored.
func (s *Sheet) SetColGroupDisplayed(from, to uint32, display bool) {
	i := findGroup(s.groupCols, from, to)
	if i < 0 {
		return
	}
	s.groupCols[i].Display = display
	for c := from; ; c++ {
		s.SetColVisible(c, groupVisibility(display))
		if c == to {
			break
		}
	}
}

// ColGroupCount returns the number of column groups.
func (s *Sheet) ColGroupCount() int { return len(s.groupCols) }

// ColGroup returns the i-th column group in insertion order.
func (s *Sheet) ColGroup(i int) (Grouped, bool) {
	if i < 0 || i >= len(s.groupCols) {
		return Grouped{}, false
	}
	return s.groupCols[i], true
}

// ColGroups iterates the column groups.
func (s *Sheet) ColGroups() iter.Seq[Grouped] {
	return slices.Values(s.groupCols)
}

// AddRowGroup adds a displayed row group. Groups may nest but must not
// partially overlap; a violation or from > to panics.
func (s *Sheet) AddRowGroup(from, to uint32) {
	s.groupRows = addGroup(s.groupRows, "row", from, to)
}

// RemoveRowGroup removes the row group with exactly these bounds.
func (s *Sheet) RemoveRowGroup(from, to uint32) {
	if i := findGroup(s.groupRows, from, to); i >= 0 {
		s.groupRows = slices.Delete(s.groupRows, i, i+1)
	}
}

// SetRowGroupDisplayed expands or collapses a row group and sets the
// visibility of every covered row to match. Unknown groups are ignored.
func (s *Sheet) SetRowGroupDisplayed(from, to uint32, display bool) {
	i := findGroup(s.groupRows, from, to)
	if i < 0 {
		return
	}
	s.groupRows[i].Display = display
	for r := from; ; r++ {
		s.SetRowVisible(r, groupVisibility(display))
		if r == to {
			break
		}
	}
}

// RowGroupCount returns the number of row groups.
func (s *Sheet) RowGroupCount() int { return len(s.groupRows) }

// RowGroup returns the i-th row group in insertion order.
func (s *Sheet) RowGroup(i int) (Grouped, bool) {
	if i < 0 || i >= len(s.groupRows) {
		return Grouped{}, false
	}
	return s.groupRows[i], true
}

// RowGroups iterates the row groups.
func (s *Sheet) RowGroups() iter.Seq[Grouped] {
	return slices.Values(s.groupRows)
}

// addLoadedGroup appends a group read from a document, keeping its display
// state and skipping the overlap check.
func (s *Sheet) addLoadedGroup(cols bool, g Grouped) {
	if cols {
		s.groupCols = append(s.groupCols, g)
	} else {
		s.groupRows = append(s.groupRows, g)
	}
}

// LoadColGroup records a column group as found in a document.
func (s *Sheet) LoadColGroup(g Grouped) { s.addLoadedGroup(true, g) }

// LoadRowGroup records a row group as found in a document.
func (s *Sheet) LoadRowGroup(g Grouped) { s.addLoadedGroup(false, g) }

func sortedKeys[V any](m map[uint32]V) []uint32 {
	return slices.Sorted(maps.Keys(m))
}
