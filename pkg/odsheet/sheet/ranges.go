package sheet

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// CellRange is an inclusive rectangle of cells, zero based, optionally
// qualified with a table name.
type CellRange struct {
	Table string
	Row   uint32
	Col   uint32
	ToRow uint32
	ToCol uint32
}

// NewCellRange returns an unqualified range. Panics if the range is
// inverted.
func NewCellRange(row, col, toRow, toCol uint32) CellRange {
	if row > toRow || col > toCol {
		panic(fmt.Sprintf("sheet: inverted cell range (%d,%d):(%d,%d)", row, col, toRow, toCol))
	}
	return CellRange{Row: row, Col: col, ToRow: toRow, ToCol: toCol}
}

// Contains reports whether the cell lies in the range.
func (r CellRange) Contains(row, col uint32) bool {
	return row >= r.Row && row <= r.ToRow && col >= r.Col && col <= r.ToCol
}

// String renders the range like "Sheet1.A1:Sheet1.D10".
func (r CellRange) String() string {
	t := quoteTable(r.Table)
	return t + "." + cellName(r.Row, r.Col) + ":" + t + "." + cellName(r.ToRow, r.ToCol)
}

// RowRange is an inclusive range of rows.
type RowRange struct {
	Row   uint32
	ToRow uint32
}

// NewRowRange returns a row range. Panics if from > to.
func NewRowRange(from, to uint32) RowRange {
	if from > to {
		panic(fmt.Sprintf("sheet: inverted row range %d:%d", from, to))
	}
	return RowRange{Row: from, ToRow: to}
}

// Contains reports whether row lies in the range.
func (r RowRange) Contains(row uint32) bool {
	return row >= r.Row && row <= r.ToRow
}

// String renders the range with one based row numbers like "1:3".
func (r RowRange) String() string {
	return fmt.Sprintf("%d:%d", r.Row+1, r.ToRow+1)
}

// ColRange is an inclusive range of columns.
type ColRange struct {
	Col   uint32
	ToCol uint32
}

// NewColRange returns a column range. Panics if from > to.
func NewColRange(from, to uint32) ColRange {
	if from > to {
		panic(fmt.Sprintf("sheet: inverted col range %d:%d", from, to))
	}
	return ColRange{Col: from, ToCol: to}
}

// Contains reports whether col lies in the range.
func (r ColRange) Contains(col uint32) bool {
	return col >= r.Col && col <= r.ToCol
}

// String renders the range with column letters like "A:C".
func (r ColRange) String() string {
	from, _ := excelize.ColumnNumberToName(int(r.Col) + 1)
	to, _ := excelize.ColumnNumberToName(int(r.ToCol) + 1)
	return from + ":" + to
}

func cellName(row, col uint32) string {
	name, err := excelize.CoordinatesToCellName(int(col)+1, int(row)+1)
	if err != nil {
		return fmt.Sprintf("R%dC%d", row+1, col+1)
	}
	return name
}

func quoteTable(name string) string {
	if name == "" {
		return ""
	}
	if strings.ContainsFunc(name, func(r rune) bool {
		return !(r == '_' || r >= '0' && r <= '9' || r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z')
	}) {
		return "'" + strings.ReplaceAll(name, "'", "''") + "'"
	}
	return name
}

// ParseCellRange parses "Sheet1.A1:Sheet1.D10", "$'My Sheet'.$A$1:.$D$10"
// or a single cell reference "Sheet1.B2".
func ParseCellRange(s string) (CellRange, error) {
	from, to, found := cutOutsideQuotes(s, ':')
	table, row, col, err := parseCellRef(from)
	if err != nil {
		return CellRange{}, fmt.Errorf("parse cell range %q: %w", s, err)
	}
	r := CellRange{Table: table, Row: row, Col: col, ToRow: row, ToCol: col}
	if found {
		_, r.ToRow, r.ToCol, err = parseCellRef(to)
		if err != nil {
			return CellRange{}, fmt.Errorf("parse cell range %q: %w", s, err)
		}
	}
	if r.Row > r.ToRow || r.Col > r.ToCol {
		return CellRange{}, fmt.Errorf("parse cell range %q: inverted range", s)
	}
	return r, nil
}

// ParseCellRanges parses a space separated list such as the
// table:print-ranges attribute.
func ParseCellRanges(s string) ([]CellRange, error) {
	var out []CellRange
	for _, part := range splitOutsideQuotes(s, ' ') {
		r, err := ParseCellRange(part)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// FormatCellRanges is the inverse of ParseCellRanges.
func FormatCellRanges(ranges []CellRange) string {
	parts := make([]string, len(ranges))
	for i, r := range ranges {
		parts[i] = r.String()
	}
	return strings.Join(parts, " ")
}

func parseCellRef(ref string) (table string, row, col uint32, err error) {
	ref = strings.TrimPrefix(strings.TrimSpace(ref), "$")
	if i := strings.LastIndex(ref, "."); i >= 0 {
		table = ref[:i]
		if len(table) >= 2 && table[0] == '\'' && table[len(table)-1] == '\'' {
			table = strings.ReplaceAll(table[1:len(table)-1], "''", "'")
		}
		ref = ref[i+1:]
	}
	c, r, err := excelize.CellNameToCoordinates(strings.ReplaceAll(ref, "$", ""))
	if err != nil {
		return "", 0, 0, err
	}
	return table, uint32(r - 1), uint32(c - 1), nil
}

func cutOutsideQuotes(s string, sep byte) (string, string, bool) {
	quoted := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\'':
			quoted = !quoted
		case sep:
			if !quoted {
				return s[:i], s[i+1:], true
			}
		}
	}
	return s, "", false
}

func splitOutsideQuotes(s string, sep byte) []string {
	var out []string
	for {
		s = strings.TrimLeft(s, string(sep))
		if s == "" {
			return out
		}
		head, tail, found := cutOutsideQuotes(s, sep)
		out = append(out, head)
		if !found {
			return out
		}
		s = tail
	}
}
