package odsheet

import (
	"errors"

	"github.com/ukaji3/odsheet-go/pkg/odsheet/parser"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input is not an OpenDocument spreadsheet
// or holds malformed content.
var ErrInvalidFormat = parser.ErrInvalidFormat

// ErrMissingPart indicates a required package part such as content.xml is
// absent.
var ErrMissingPart = parser.ErrMissingPart

// ReadError locates a malformed element inside a sheet.
type ReadError = parser.ReadError
