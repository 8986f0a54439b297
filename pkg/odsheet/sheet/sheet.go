// Package sheet holds the in-memory model of one spreadsheet table: a
// sparse grid of cells ordered by position, row and column headers,
// outline groups and view settings.
//
// A Sheet is not safe for concurrent use. Views returned by Iter, Range and
// CellRef point into the sheet and must not be used after a mutation.
package sheet

import (
	"fmt"
	"strings"

	"github.com/google/btree"
)

// Pos is a zero based (row, column) position.
type Pos struct {
	Row uint32
	Col uint32
}

// Less orders positions row by row.
func (p Pos) Less(o Pos) bool {
	if p.Row != o.Row {
		return p.Row < o.Row
	}
	return p.Col < o.Col
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

type cellEntry struct {
	pos  Pos
	data CellData
}

func lessEntry(a, b *cellEntry) bool {
	return a.pos.Less(b.pos)
}

const gridDegree = 32

func newGrid() *btree.BTreeG[*cellEntry] {
	return btree.NewG(gridDegree, lessEntry)
}

func probe(row, col uint32) *cellEntry {
	return &cellEntry{pos: Pos{Row: row, Col: col}}
}

// Sheet is one table of a spreadsheet.
type Sheet struct {
	name  string
	style string

	data *btree.BTreeG[*cellEntry]

	colHeader map[uint32]*ColHeader
	rowHeader map[uint32]*RowHeader

	display bool
	print   bool

	headerRows  *RowRange
	headerCols  *ColRange
	printRanges []CellRange

	groupRows []Grouped
	groupCols []Grouped

	config SheetConfig

	extra []XMLTag
}

// New creates an empty sheet. The name is the tab title and the name used
// by formulas; an empty name is allowed.
func New(name string) *Sheet {
	return &Sheet{
		name:      name,
		data:      newGrid(),
		colHeader: make(map[uint32]*ColHeader),
		rowHeader: make(map[uint32]*RowHeader),
		display:   true,
		print:     true,
		config:    DefaultSheetConfig(),
	}
}

// CloneNoData copies all sheet attributes but no cells. The view
// configuration is reset to its defaults.
func (s *Sheet) CloneNoData() *Sheet {
	c := New(s.name)
	c.style = s.style
	for k, v := range s.colHeader {
		h := *v
		c.colHeader[k] = &h
	}
	for k, v := range s.rowHeader {
		h := *v
		c.rowHeader[k] = &h
	}
	c.display = s.display
	c.print = s.print
	if s.headerRows != nil {
		r := *s.headerRows
		c.headerRows = &r
	}
	if s.headerCols != nil {
		r := *s.headerCols
		c.headerCols = &r
	}
	if s.printRanges != nil {
		c.printRanges = append([]CellRange(nil), s.printRanges...)
	}
	c.groupRows = append([]Grouped(nil), s.groupRows...)
	c.groupCols = append([]Grouped(nil), s.groupCols...)
	c.extra = cloneTags(s.extra)
	return c
}

// Clone deep-copies the sheet including cells and configuration.
func (s *Sheet) Clone() *Sheet {
	c := s.CloneNoData()
	c.config = s.config
	s.data.Ascend(func(e *cellEntry) bool {
		c.data.ReplaceOrInsert(&cellEntry{pos: e.pos, data: e.data.Clone()})
		return true
	})
	return c
}

// Name returns the sheet name.
func (s *Sheet) Name() string { return s.name }

// SetName renames the sheet. Formulas referring to the old name are not
// rewritten.
func (s *Sheet) SetName(name string) { s.name = name }

// Style returns the table style name, "" if none.
func (s *Sheet) Style() string { return s.style }

// SetStyle sets the table style.
func (s *Sheet) SetStyle(style TableStyleRef) { s.style = style.String() }

// ClearStyle removes the table style.
func (s *Sheet) ClearStyle() { s.style = "" }

// Display reports whether the sheet is shown.
func (s *Sheet) Display() bool { return s.display }

// SetDisplay shows or hides the sheet.
func (s *Sheet) SetDisplay(display bool) { s.display = display }

// Print reports whether the sheet is printed.
func (s *Sheet) Print() bool { return s.print }

// SetPrint sets whether the sheet is printed.
func (s *Sheet) SetPrint(print bool) { s.print = print }

// Extra returns XML elements of the table the reader did not interpret.
func (s *Sheet) Extra() []XMLTag { return s.extra }

// AddExtra keeps an uninterpreted table element for writing.
func (s *Sheet) AddExtra(tag XMLTag) { s.extra = append(s.extra, tag) }

// CellCount returns the number of stored cells.
func (s *Sheet) CellCount() int { return s.data.Len() }

func (s *Sheet) get(row, col uint32) *CellData {
	if e, ok := s.data.Get(probe(row, col)); ok {
		return &e.data
	}
	return nil
}

// entry returns the cell at row, col, creating an empty one if needed.
func (s *Sheet) entry(row, col uint32) *CellData {
	if e, ok := s.data.Get(probe(row, col)); ok {
		return &e.data
	}
	e := &cellEntry{pos: Pos{Row: row, Col: col}, data: NewCellData()}
	s.data.ReplaceOrInsert(e)
	return &e.data
}

// IsEmpty reports whether no cell is stored at row, col.
func (s *Sheet) IsEmpty(row, col uint32) bool {
	return !s.data.Has(probe(row, col))
}

// Cell returns a copy of the cell. ok is false if nothing is stored there,
// which is different from a stored cell with an Empty value.
func (s *Sheet) Cell(row, col uint32) (CellContent, bool) {
	if c := s.get(row, col); c != nil {
		return c.Content(), true
	}
	return CellContent{}, false
}

// CellRef returns a view of the cell without copying.
func (s *Sheet) CellRef(row, col uint32) (CellContentRef, bool) {
	if c := s.get(row, col); c != nil {
		return c.Ref(), true
	}
	return CellContentRef{}, false
}

// AddCell stores the content at row, col, replacing what was there.
func (s *Sheet) AddCell(row, col uint32, cell CellContent) {
	s.AddCellData(row, col, cell.IntoCellData())
}

// AddCellData stores cell data at row, col. An existing entry is replaced,
// not merged.
func (s *Sheet) AddCellData(row, col uint32, cell CellData) {
	s.data.ReplaceOrInsert(&cellEntry{pos: Pos{Row: row, Col: col}, data: cell})
}

// RemoveCell deletes the cell and returns what was stored.
func (s *Sheet) RemoveCell(row, col uint32) (CellContent, bool) {
	e, ok := s.data.Delete(probe(row, col))
	if !ok {
		return CellContent{}, false
	}
	return e.data.IntoContent(), true
}

// Value returns the cell value, or Empty if no cell is stored.
func (s *Sheet) Value(row, col uint32) Value {
	if c := s.get(row, col); c != nil {
		return c.Value
	}
	return Value{}
}

// SetValue sets the value of a cell, creating the cell if necessary.
func (s *Sheet) SetValue(row, col uint32, v Value) {
	s.entry(row, col).Value = v
}

// SetStyledValue sets value and cell style in one call.
func (s *Sheet) SetStyledValue(row, col uint32, v Value, style CellStyleRef) {
	c := s.entry(row, col)
	c.Value = v
	c.Style = style.String()
}

// Formula returns the formula of a cell, "" if none.
func (s *Sheet) Formula(row, col uint32) string {
	if c := s.get(row, col); c != nil {
		return c.Formula
	}
	return ""
}

// SetFormula sets the formula, e.g. "of:=SUM([.A1:.A3])".
func (s *Sheet) SetFormula(row, col uint32, formula string) {
	s.entry(row, col).Formula = formula
}

// ClearFormula removes the formula. Nothing happens for absent cells.
func (s *Sheet) ClearFormula(row, col uint32) {
	if c := s.get(row, col); c != nil {
		c.Formula = ""
	}
}

// ColRepeat returns the column repeat count of a cell, 1 if absent.
func (s *Sheet) ColRepeat(row, col uint32) uint32 {
	if c := s.get(row, col); c != nil {
		return c.Repeat
	}
	return 1
}

// SetColRepeat sets the column repeat count of a cell. Panics if repeat is 0.
func (s *Sheet) SetColRepeat(row, col uint32, repeat uint32) {
	mustPositive("repeat", repeat)
	s.entry(row, col).Repeat = repeat
}

// CellStyle returns the cell style name, "" if none.
func (s *Sheet) CellStyle(row, col uint32) string {
	if c := s.get(row, col); c != nil {
		return c.Style
	}
	return ""
}

// SetCellStyle sets the cell style.
func (s *Sheet) SetCellStyle(row, col uint32, style CellStyleRef) {
	s.entry(row, col).Style = style.String()
}

// ClearCellStyle removes the cell style. The value is kept.
func (s *Sheet) ClearCellStyle(row, col uint32) {
	if c := s.get(row, col); c != nil {
		c.Style = ""
	}
}

// Validation returns the content validation name, "" if none.
func (s *Sheet) Validation(row, col uint32) string {
	if c := s.get(row, col); c != nil && c.extra != nil {
		return c.extra.validation
	}
	return ""
}

// SetValidation sets the content validation of a cell.
func (s *Sheet) SetValidation(row, col uint32, v ValidationRef) {
	s.entry(row, col).extraMut().validation = v.String()
}

// ClearValidation removes the content validation.
func (s *Sheet) ClearValidation(row, col uint32) {
	if c := s.get(row, col); c != nil {
		c.extraMut().validation = ""
	}
}

// RowSpan returns the row span of a cell, 1 if not set.
func (s *Sheet) RowSpan(row, col uint32) uint32 {
	if c := s.get(row, col); c != nil && c.extra != nil {
		return c.extra.span.RowSpan
	}
	return 1
}

// SetRowSpan sets the row span of a cell. Panics if span is 0.
func (s *Sheet) SetRowSpan(row, col uint32, span uint32) {
	mustPositive("row span", span)
	s.entry(row, col).extraMut().span.SetRowSpan(span)
}

// ColSpan returns the column span of a cell, 1 if not set.
func (s *Sheet) ColSpan(row, col uint32) uint32 {
	if c := s.get(row, col); c != nil && c.extra != nil {
		return c.extra.span.ColSpan
	}
	return 1
}

// SetColSpan sets the column span of a cell. Panics if span is 0.
func (s *Sheet) SetColSpan(row, col uint32, span uint32) {
	mustPositive("col span", span)
	s.entry(row, col).extraMut().span.SetColSpan(span)
}

// MatrixRowSpan returns the array formula row span, 1 if not set.
func (s *Sheet) MatrixRowSpan(row, col uint32) uint32 {
	if c := s.get(row, col); c != nil && c.extra != nil {
		return c.extra.matrixSpan.RowSpan
	}
	return 1
}

// SetMatrixRowSpan sets the array formula row span. Panics if span is 0.
func (s *Sheet) SetMatrixRowSpan(row, col uint32, span uint32) {
	mustPositive("matrix row span", span)
	s.entry(row, col).extraMut().matrixSpan.SetRowSpan(span)
}

// MatrixColSpan returns the array formula column span, 1 if not set.
func (s *Sheet) MatrixColSpan(row, col uint32) uint32 {
	if c := s.get(row, col); c != nil && c.extra != nil {
		return c.extra.matrixSpan.ColSpan
	}
	return 1
}

// SetMatrixColSpan sets the array formula column span. Panics if span is 0.
func (s *Sheet) SetMatrixColSpan(row, col uint32, span uint32) {
	mustPositive("matrix col span", span)
	s.entry(row, col).extraMut().matrixSpan.SetColSpan(span)
}

// Annotation returns the annotation of a cell, nil if none. The pointer
// refers to the stored annotation and may be modified in place.
func (s *Sheet) Annotation(row, col uint32) *Annotation {
	if c := s.get(row, col); c != nil && c.extra != nil {
		return c.extra.annotation
	}
	return nil
}

// SetAnnotation sets the annotation of a cell.
func (s *Sheet) SetAnnotation(row, col uint32, a Annotation) {
	s.entry(row, col).extraMut().annotation = &a
}

// ClearAnnotation removes the annotation.
func (s *Sheet) ClearAnnotation(row, col uint32) {
	if c := s.get(row, col); c != nil {
		c.extraMut().annotation = nil
	}
}

// DrawFrames returns the draw frames of a cell. ok is false if the cell
// has no extra data at all.
func (s *Sheet) DrawFrames(row, col uint32) ([]DrawFrame, bool) {
	if c := s.get(row, col); c != nil && c.extra != nil {
		return c.extra.drawFrames, true
	}
	return nil, false
}

// AddDrawFrame anchors a draw frame at a cell.
func (s *Sheet) AddDrawFrame(row, col uint32, frame DrawFrame) {
	e := s.entry(row, col).extraMut()
	e.drawFrames = append(e.drawFrames, frame)
}

// ClearDrawFrames removes all draw frames of a cell.
func (s *Sheet) ClearDrawFrames(row, col uint32) {
	if c := s.get(row, col); c != nil {
		c.extraMut().drawFrames = nil
	}
}

// HeaderRows returns the rows repeated on each printed page, nil if none.
func (s *Sheet) HeaderRows() *RowRange { return s.headerRows }

// SetHeaderRows defines the inclusive header row range.
func (s *Sheet) SetHeaderRows(from, to uint32) {
	r := NewRowRange(from, to)
	s.headerRows = &r
}

// ClearHeaderRows removes the header rows.
func (s *Sheet) ClearHeaderRows() { s.headerRows = nil }

// HeaderCols returns the columns repeated on each printed page, nil if none.
func (s *Sheet) HeaderCols() *ColRange { return s.headerCols }

// SetHeaderCols defines the inclusive header column range.
func (s *Sheet) SetHeaderCols(from, to uint32) {
	r := NewColRange(from, to)
	s.headerCols = &r
}

// ClearHeaderCols removes the header columns.
func (s *Sheet) ClearHeaderCols() { s.headerCols = nil }

// PrintRanges returns the print ranges, nil if none are defined.
func (s *Sheet) PrintRanges() []CellRange { return s.printRanges }

// AddPrintRange appends a print range.
func (s *Sheet) AddPrintRange(r CellRange) { s.printRanges = append(s.printRanges, r) }

// ClearPrintRanges removes all print ranges.
func (s *Sheet) ClearPrintRanges() { s.printRanges = nil }

// UsedGridSize returns (max row + 1, max column + 1) over stored cells.
// An empty sheet also reports (1,1); use CellCount to tell the two apart.
func (s *Sheet) UsedGridSize() (rows, cols uint32) {
	var maxRow, maxCol uint32
	s.data.Ascend(func(e *cellEntry) bool {
		maxRow = max(maxRow, e.pos.Row)
		maxCol = max(maxCol, e.pos.Col)
		return true
	})
	return maxRow + 1, maxCol + 1
}

// String dumps the sheet for debugging.
func (s *Sheet) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "name %q style %q\n", s.name, s.style)
	s.data.Ascend(func(e *cellEntry) bool {
		fmt.Fprintf(&b, "  data %v %q formula=%q style=%q repeat=%d\n",
			e.pos, e.data.Value.String(), e.data.Formula, e.data.Style, e.data.Repeat)
		return true
	})
	for _, g := range s.groupCols {
		fmt.Fprintf(&b, "group cols %v\n", g)
	}
	for _, g := range s.groupRows {
		fmt.Fprintf(&b, "group rows %v\n", g)
	}
	return b.String()
}
