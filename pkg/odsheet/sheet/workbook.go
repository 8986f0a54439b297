package sheet

import (
	"slices"
	"strings"
)

// WorkBook is a spreadsheet document: an ordered list of sheets plus the
// package parts that are carried through unchanged.
type WorkBook struct {
	sheets []*Sheet

	// ActiveTable is the sheet selected when the document is opened.
	ActiveTable string

	// AutoStyles are office:automatic-styles children that are not
	// generated by the writer.
	AutoStyles []XMLTag
	// Prelude holds office:document-content children before the body,
	// such as office:font-face-decls.
	Prelude []XMLTag
	// Extra holds office:spreadsheet children that are not tables, such as
	// table:content-validations or table:named-expressions.
	Extra []XMLTag

	// SettingsExtra holds settings.xml config-item-sets other than the
	// view settings.
	SettingsExtra []XMLTag
	// XMLNS are the namespace declarations of the source content.xml,
	// prefix to URI.
	XMLNS map[string]string

	// Parts are package entries copied verbatim, keyed by zip path.
	Parts map[string][]byte
	// MediaTypes are the manifest media types of Parts.
	MediaTypes map[string]string
}

// NewWorkBook returns an empty document.
func NewWorkBook() *WorkBook {
	return &WorkBook{
		Parts:      make(map[string][]byte),
		MediaTypes: make(map[string]string),
		XMLNS:      make(map[string]string),
	}
}

// NumSheets returns the number of sheets.
func (wb *WorkBook) NumSheets() int { return len(wb.sheets) }

// Sheet returns the i-th sheet. Panics if i is out of range.
func (wb *WorkBook) Sheet(i int) *Sheet { return wb.sheets[i] }

// Sheets returns the sheets in document order.
func (wb *WorkBook) Sheets() []*Sheet { return wb.sheets }

// SheetByName returns the first sheet with the name, compared case
// insensitively like formula references do.
func (wb *WorkBook) SheetByName(name string) (*Sheet, bool) {
	i := slices.IndexFunc(wb.sheets, func(s *Sheet) bool {
		return strings.EqualFold(s.name, name)
	})
	if i < 0 {
		return nil, false
	}
	return wb.sheets[i], true
}

// PushSheet appends a sheet.
func (wb *WorkBook) PushSheet(s *Sheet) {
	wb.sheets = append(wb.sheets, s)
}

// InsertSheet inserts a sheet at position i.
func (wb *WorkBook) InsertSheet(i int, s *Sheet) {
	wb.sheets = slices.Insert(wb.sheets, i, s)
}

// RemoveSheet removes and returns the i-th sheet.
func (wb *WorkBook) RemoveSheet(i int) *Sheet {
	s := wb.sheets[i]
	wb.sheets = slices.Delete(wb.sheets, i, i+1)
	return s
}
