// Package output writes the sheet model as an OpenDocument spreadsheet
// package and renders extracted data as JSON or HTML.
package output

import (
	"io"
	"log/slog"
	"maps"
	"slices"

	"github.com/ukaji3/odsheet-go/pkg/odsheet/sheet"
)

// ODFVersion is written to office:version.
const ODFVersion = "1.3"

// Config controls the writer.
type Config struct {
	// RepeatForEmpty writes columns without a stored cell as one repeated
	// empty cell instead of one empty cell per column.
	RepeatForEmpty bool
	// Logger receives debug records. nil discards.
	Logger *slog.Logger
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// Namespaces are declared on every generated root element. Prefixes from
// the source document are added to them.
var Namespaces = map[string]string{
	"office": "urn:oasis:names:tc:opendocument:xmlns:office:1.0",
	"style":  "urn:oasis:names:tc:opendocument:xmlns:style:1.0",
	"text":   "urn:oasis:names:tc:opendocument:xmlns:text:1.0",
	"table":  "urn:oasis:names:tc:opendocument:xmlns:table:1.0",
	"draw":   "urn:oasis:names:tc:opendocument:xmlns:drawing:1.0",
	"fo":     "urn:oasis:names:tc:opendocument:xmlns:xsl-fo-compatible:1.0",
	"xlink":  "http://www.w3.org/1999/xlink",
	"dc":     "http://purl.org/dc/elements/1.1/",
	"meta":   "urn:oasis:names:tc:opendocument:xmlns:meta:1.0",
	"number": "urn:oasis:names:tc:opendocument:xmlns:datastyle:1.0",
	"svg":    "urn:oasis:names:tc:opendocument:xmlns:svg-compatible:1.0",
	"chart":  "urn:oasis:names:tc:opendocument:xmlns:chart:1.0",
	"of":     "urn:oasis:names:tc:opendocument:xmlns:of:1.2",
}

// afterTables are office:spreadsheet children written after the tables.
var afterTables = map[string]bool{
	"table:named-expressions": true,
	"table:database-ranges":   true,
	"table:data-pilot-tables": true,
	"table:consolidation":     true,
	"table:dde-links":         true,
}

func writeNamespaces(w *xmlWriter, extra map[string]string) {
	ns := maps.Clone(Namespaces)
	for prefix, uri := range extra {
		if _, ok := ns[prefix]; !ok {
			ns[prefix] = uri
		}
	}
	for _, prefix := range slices.Sorted(maps.Keys(ns)) {
		w.attr("xmlns:"+prefix, ns[prefix])
	}
}

// WriteContent writes content.xml for wb.
func WriteContent(dst io.Writer, wb *sheet.WorkBook, cfg Config) error {
	log := cfg.logger()
	styles := newStyleSet(wb.AutoStyles, log)

	// The body goes first so the styles it needs are known.
	body := newFragmentWriter()
	defer func() {
		if body.b != nil {
			body.release()
		}
	}()
	body.start("office:body")
	body.start("office:spreadsheet")
	for _, t := range wb.Extra {
		if !afterTables[t.Name] {
			body.tag(t)
		}
	}
	for _, s := range wb.Sheets() {
		tw := &tableWriter{w: body, s: s, styles: styles, cfg: cfg, log: log}
		tw.write()
	}
	for _, t := range wb.Extra {
		if afterTables[t.Name] {
			body.tag(t)
		}
	}
	body.end()
	body.end()

	w := newXMLWriter()
	w.start("office:document-content")
	writeNamespaces(w, wb.XMLNS)
	w.attr("office:version", ODFVersion)
	w.tags(wb.Prelude)
	w.start("office:automatic-styles")
	w.tags(wb.AutoStyles)
	w.tags(styles.generated)
	w.end()
	w.raw(body.b.B)
	w.end()

	return w.writeTo(dst)
}
