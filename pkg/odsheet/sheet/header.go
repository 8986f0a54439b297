package sheet

import "fmt"

// Visibility of a row or column.
type Visibility uint8

const (
	Visible Visibility = iota
	Collapsed
	Filtered
)

// String returns the table:visibility attribute value.
func (v Visibility) String() string {
	switch v {
	case Collapsed:
		return "collapse"
	case Filtered:
		return "filter"
	default:
		return "visible"
	}
}

// ParseVisibility parses a table:visibility attribute value.
func ParseVisibility(s string) (Visibility, error) {
	switch s {
	case "visible", "":
		return Visible, nil
	case "collapse":
		return Collapsed, nil
	case "filter":
		return Filtered, nil
	}
	return Visible, fmt.Errorf("invalid visibility %q", s)
}

// RowHeader holds the table-row attributes of one row.
type RowHeader struct {
	Style     string
	CellStyle string
	Visible   Visibility
	Repeat    uint32
	Height    Length
}

// NewRowHeader returns a header with repeat 1.
func NewRowHeader() RowHeader {
	return RowHeader{Repeat: 1}
}

// ColHeader holds the table-column attributes of one column.
type ColHeader struct {
	Style     string
	CellStyle string
	Visible   Visibility
	Width     Length
}

func (s *Sheet) rowHeaderMut(row uint32) *RowHeader {
	h, ok := s.rowHeader[row]
	if !ok {
		nh := NewRowHeader()
		h = &nh
		s.rowHeader[row] = h
	}
	return h
}

func (s *Sheet) colHeaderMut(col uint32) *ColHeader {
	h, ok := s.colHeader[col]
	if !ok {
		h = &ColHeader{}
		s.colHeader[col] = h
	}
	return h
}

// RowHeaderAt returns a copy of the row header and whether one exists.
func (s *Sheet) RowHeaderAt(row uint32) (RowHeader, bool) {
	if h, ok := s.rowHeader[row]; ok {
		return *h, true
	}
	return NewRowHeader(), false
}

// SetRowHeader replaces the row header. A repeat of 0 is stored as 1.
func (s *Sheet) SetRowHeader(row uint32, h RowHeader) {
	if h.Repeat == 0 {
		h.Repeat = 1
	}
	s.rowHeader[row] = &h
}

// ColHeaderAt returns a copy of the column header and whether one exists.
func (s *Sheet) ColHeaderAt(col uint32) (ColHeader, bool) {
	if h, ok := s.colHeader[col]; ok {
		return *h, true
	}
	return ColHeader{}, false
}

// SetColHeader replaces the column header.
func (s *Sheet) SetColHeader(col uint32, h ColHeader) {
	s.colHeader[col] = &h
}

// UsedCols returns the highest column with a header plus one.
func (s *Sheet) UsedCols() uint32 {
	var n uint32
	for k := range s.colHeader {
		n = max(n, k)
	}
	return n + 1
}

// UsedRows returns the highest row with a header plus one.
func (s *Sheet) UsedRows() uint32 {
	var n uint32
	for k := range s.rowHeader {
		n = max(n, k)
	}
	return n + 1
}

// SetColStyle sets the column style.
func (s *Sheet) SetColStyle(col uint32, style ColStyleRef) {
	s.colHeaderMut(col).Style = style.String()
}

// ClearColStyle removes the column style.
func (s *Sheet) ClearColStyle(col uint32) {
	if h, ok := s.colHeader[col]; ok {
		h.Style = ""
	}
}

// ColStyle returns the column style, "" if none.
func (s *Sheet) ColStyle(col uint32) string {
	if h, ok := s.colHeader[col]; ok {
		return h.Style
	}
	return ""
}

// SetColCellStyle sets the default cell style for a column.
func (s *Sheet) SetColCellStyle(col uint32, style CellStyleRef) {
	s.colHeaderMut(col).CellStyle = style.String()
}

// ClearColCellStyle removes the default cell style of a column.
func (s *Sheet) ClearColCellStyle(col uint32) {
	if h, ok := s.colHeader[col]; ok {
		h.CellStyle = ""
	}
}

// ColCellStyle returns the default cell style of a column, "" if none.
func (s *Sheet) ColCellStyle(col uint32) string {
	if h, ok := s.colHeader[col]; ok {
		return h.CellStyle
	}
	return ""
}

// SetColVisible sets the column visibility.
func (s *Sheet) SetColVisible(col uint32, v Visibility) {
	s.colHeaderMut(col).Visible = v
}

// ColVisible returns the column visibility, Visible if unset.
func (s *Sheet) ColVisible(col uint32) Visibility {
	if h, ok := s.colHeader[col]; ok {
		return h.Visible
	}
	return Visible
}

// SetColWidth sets the column width. The writer generates an automatic
// column style when the column has no style of its own.
func (s *Sheet) SetColWidth(col uint32, width Length) {
	s.colHeaderMut(col).Width = width
}

// ColWidth returns the column width, the default Length if unset.
func (s *Sheet) ColWidth(col uint32) Length {
	if h, ok := s.colHeader[col]; ok {
		return h.Width
	}
	return Length{}
}

// SetRowStyle sets the row style.
func (s *Sheet) SetRowStyle(row uint32, style RowStyleRef) {
	s.rowHeaderMut(row).Style = style.String()
}

// ClearRowStyle removes the row style.
func (s *Sheet) ClearRowStyle(row uint32) {
	if h, ok := s.rowHeader[row]; ok {
		h.Style = ""
	}
}

// RowStyle returns the row style, "" if none.
func (s *Sheet) RowStyle(row uint32) string {
	if h, ok := s.rowHeader[row]; ok {
		return h.Style
	}
	return ""
}

// SetRowCellStyle sets the default cell style for a row.
func (s *Sheet) SetRowCellStyle(row uint32, style CellStyleRef) {
	s.rowHeaderMut(row).CellStyle = style.String()
}

// ClearRowCellStyle removes the default cell style of a row.
func (s *Sheet) ClearRowCellStyle(row uint32) {
	if h, ok := s.rowHeader[row]; ok {
		h.CellStyle = ""
	}
}

// RowCellStyle returns the default cell style of a row, "" if none.
func (s *Sheet) RowCellStyle(row uint32) string {
	if h, ok := s.rowHeader[row]; ok {
		return h.CellStyle
	}
	return ""
}

// SetRowVisible sets the visibility of the row header at row.
func (s *Sheet) SetRowVisible(row uint32, v Visibility) {
	s.rowHeaderMut(row).Visible = v
}

// RowVisible returns the visibility of the row header at row, Visible if unset.
func (s *Sheet) RowVisible(row uint32) Visibility {
	if h, ok := s.rowHeader[row]; ok {
		return h.Visible
	}
	return Visible
}

// SetRowRepeat sets how many identical rows the row header stands for.
// Panics if repeat is 0.
func (s *Sheet) SetRowRepeat(row uint32, repeat uint32) {
	mustPositive("row repeat", repeat)
	s.rowHeaderMut(row).Repeat = repeat
}

// RowRepeat returns the row repeat count, 1 if unset.
func (s *Sheet) RowRepeat(row uint32) uint32 {
	if h, ok := s.rowHeader[row]; ok {
		return h.Repeat
	}
	return 1
}

// SetRowHeight sets the row height.
func (s *Sheet) SetRowHeight(row uint32, height Length) {
	s.rowHeaderMut(row).Height = height
}

// RowHeight returns the row height, the default Length if unset.
func (s *Sheet) RowHeight(row uint32) Length {
	if h, ok := s.rowHeader[row]; ok {
		return h.Height
	}
	return Length{}
}

// ColHeaderIndexes returns the columns that have a header, ascending.
func (s *Sheet) ColHeaderIndexes() []uint32 {
	return sortedKeys(s.colHeader)
}

// RowHeaderIndexes returns the rows that have a header, ascending.
func (s *Sheet) RowHeaderIndexes() []uint32 {
	return sortedKeys(s.rowHeader)
}
