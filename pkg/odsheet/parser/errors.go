package parser

import "fmt"

// ReadError reports a malformed part of a table.
type ReadError struct {
	SheetName string
	Component string // "cell", "row", "column", "settings", "print-ranges"
	Row, Col  uint32
	Err       error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read error in sheet %q (%s at row %d col %d): %v", e.SheetName, e.Component, e.Row, e.Col, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// NewReadError creates a new ReadError.
func NewReadError(sheetName, component string, row, col uint32, err error) *ReadError {
	return &ReadError{
		SheetName: sheetName,
		Component: component,
		Row:       row,
		Col:       col,
		Err:       err,
	}
}
