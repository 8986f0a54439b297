// Package parser reads OpenDocument spreadsheet packages into the sheet
// model.
package parser

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ukaji3/odsheet-go/pkg/odsheet/sheet"
)

// MimeType is the content of the mimetype entry of a spreadsheet package.
const MimeType = "application/vnd.oasis.opendocument.spreadsheet"

// ErrInvalidFormat indicates the input is not an OpenDocument spreadsheet.
var ErrInvalidFormat = errors.New("invalid ods format")

// ErrMissingPart indicates a required package entry is absent.
var ErrMissingPart = errors.New("missing package part")

// Config controls the reader.
type Config struct {
	// ContentOnly skips styles.xml, meta.xml, settings.xml and the
	// automatic styles of content.xml.
	ContentOnly bool
	// Policy is applied to every decoded cell.
	Policy sheet.ReadPolicy
	// Logger receives debug records. nil discards.
	Logger *slog.Logger
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// parts that are parsed instead of copied.
var parsedParts = map[string]bool{
	"mimetype":              true,
	"content.xml":           true,
	"settings.xml":          true,
	"META-INF/manifest.xml": true,
}

// styleParts are dropped in content-only mode.
var styleParts = map[string]bool{
	"styles.xml":   true,
	"meta.xml":     true,
	"settings.xml": true,
}

// ReadPackage reads a spreadsheet from an opened zip archive.
func ReadPackage(r *zip.Reader, cfg Config) (*sheet.WorkBook, error) {
	log := cfg.logger()

	mime, err := readZipFile(r, "mimetype")
	if err != nil {
		return nil, fmt.Errorf("read mimetype: %w", err)
	}
	if mime != nil && strings.TrimSpace(string(mime)) != MimeType {
		return nil, fmt.Errorf("%w: mimetype %q", ErrInvalidFormat, mime)
	}

	content, err := readZipFile(r, "content.xml")
	if err != nil {
		return nil, fmt.Errorf("read content.xml: %w", err)
	}
	if content == nil {
		return nil, fmt.Errorf("%w: content.xml", ErrMissingPart)
	}

	wb := sheet.NewWorkBook()
	if err := readContent(bytes.NewReader(content), wb, cfg); err != nil {
		return nil, err
	}

	if !cfg.ContentOnly {
		settings, err := readZipFile(r, "settings.xml")
		if err != nil {
			return nil, fmt.Errorf("read settings.xml: %w", err)
		}
		if settings != nil {
			if err := readSettings(bytes.NewReader(settings), wb); err != nil {
				return nil, err
			}
		}
	}

	manifest, err := readZipFile(r, "META-INF/manifest.xml")
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	if manifest != nil {
		wb.MediaTypes = parseManifest(manifest)
	}

	for _, f := range r.File {
		if parsedParts[f.Name] || strings.HasSuffix(f.Name, "/") {
			continue
		}
		if cfg.ContentOnly && (styleParts[f.Name] || strings.HasPrefix(f.Name, "Thumbnails/")) {
			log.Debug("skip part", "name", f.Name)
			continue
		}
		data, err := readZipFile(r, f.Name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.Name, err)
		}
		wb.Parts[f.Name] = data
		log.Debug("keep part", "name", f.Name, "size", len(data))
	}

	return wb, nil
}

// parseManifest returns full-path to media-type of every file entry.
func parseManifest(data []byte) map[string]string {
	result := make(map[string]string)
	decoder := xml.NewDecoder(bytes.NewReader(data))

	for {
		token, err := decoder.RawToken()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && qname(se.Name) == "manifest:file-entry" {
			a := attrs(se)
			if path := a["manifest:full-path"]; path != "" {
				result[path] = a["manifest:media-type"]
			}
		}
	}

	return result
}

// ReadAll reads a spreadsheet from r.
func ReadAll(r io.ReaderAt, size int64, cfg Config) (*sheet.WorkBook, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}
	return ReadPackage(zr, cfg)
}
