package odsheet

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/ukaji3/odsheet-go/pkg/odsheet/output"
	"github.com/ukaji3/odsheet-go/pkg/odsheet/parser"
	"github.com/ukaji3/odsheet-go/pkg/odsheet/sheet"
)

// WorkBook is a spreadsheet document: its sheets plus the package parts
// that are kept as is.
type WorkBook = sheet.WorkBook

// Read reads the spreadsheet at path.
func Read(path string, opts Options) (*WorkBook, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrFileNotFound, path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	wb, err := ReadFrom(f, info.Size(), opts)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return wb, nil
}

// ReadFrom reads a spreadsheet of size bytes from r.
func ReadFrom(r io.ReaderAt, size int64, opts Options) (*WorkBook, error) {
	return parser.ReadAll(r, size, opts.parserConfig())
}

// Write writes wb to path, replacing an existing file.
func Write(path string, wb *WorkBook, opts Options) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return WriteTo(f, wb, opts)
}

// WriteTo writes wb as a spreadsheet package to w.
func WriteTo(w io.Writer, wb *WorkBook, opts Options) error {
	return output.WritePackage(w, wb, opts.outputConfig())
}
