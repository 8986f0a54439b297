package output

import (
	"archive/zip"
	"fmt"
	"io"
	"maps"
	"path"
	"slices"
	"strings"

	"github.com/ukaji3/odsheet-go/pkg/odsheet/parser"
	"github.com/ukaji3/odsheet-go/pkg/odsheet/sheet"
)

const manifestNS = "urn:oasis:names:tc:opendocument:xmlns:manifest:1.0"

// emptyStyles is written when the document carries no styles.xml.
const emptyStyles = xmlHeader + `<office:document-styles xmlns:office="` +
	"urn:oasis:names:tc:opendocument:xmlns:office:1.0" +
	`" office:version="` + ODFVersion +
	`"><office:styles/><office:automatic-styles/><office:master-styles/></office:document-styles>`

// WritePackage writes wb as a spreadsheet package. The mimetype entry is
// stored uncompressed and first; content.xml and settings.xml are
// generated; other parts are copied from wb.Parts.
func WritePackage(dst io.Writer, wb *sheet.WorkBook, cfg Config) error {
	log := cfg.logger()
	zw := zip.NewWriter(dst)

	mt, err := zw.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
	if err != nil {
		return fmt.Errorf("write mimetype: %w", err)
	}
	if _, err := io.WriteString(mt, parser.MimeType); err != nil {
		return fmt.Errorf("write mimetype: %w", err)
	}

	written := []string{"content.xml"}
	f, err := zw.Create("content.xml")
	if err != nil {
		return fmt.Errorf("write content.xml: %w", err)
	}
	if err := WriteContent(f, wb, cfg); err != nil {
		return fmt.Errorf("write content.xml: %w", err)
	}

	if _, ok := wb.Parts["styles.xml"]; !ok {
		f, err := zw.Create("styles.xml")
		if err != nil {
			return fmt.Errorf("write styles.xml: %w", err)
		}
		if _, err := io.WriteString(f, emptyStyles); err != nil {
			return fmt.Errorf("write styles.xml: %w", err)
		}
		written = append(written, "styles.xml")
	}

	f, err = zw.Create("settings.xml")
	if err != nil {
		return fmt.Errorf("write settings.xml: %w", err)
	}
	if err := WriteSettings(f, wb); err != nil {
		return fmt.Errorf("write settings.xml: %w", err)
	}
	written = append(written, "settings.xml")

	for _, name := range slices.Sorted(maps.Keys(wb.Parts)) {
		if name == "mimetype" || name == "META-INF/manifest.xml" || slices.Contains(written, name) {
			continue
		}
		f, err := zw.Create(name)
		if err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		if _, err := f.Write(wb.Parts[name]); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		written = append(written, name)
		log.Debug("copy part", "name", name, "size", len(wb.Parts[name]))
	}

	f, err = zw.Create("META-INF/manifest.xml")
	if err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	if err := writeManifest(f, written, wb.MediaTypes); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}

	return zw.Close()
}

// writeManifest lists the written files and the directories holding
// them, such as embedded chart objects.
func writeManifest(dst io.Writer, files []string, mediaTypes map[string]string) error {
	w := newXMLWriter()
	w.start("manifest:manifest")
	w.attr("xmlns:manifest", manifestNS)
	w.attr("manifest:version", ODFVersion)

	manifestEntry(w, "/", parser.MimeType)

	dirs := make(map[string]bool)
	for _, name := range files {
		for dir := path.Dir(name); dir != "." && dir != "/"; dir = path.Dir(dir) {
			dirs[dir+"/"] = true
		}
	}
	entries := slices.Concat(files, slices.Collect(maps.Keys(dirs)))
	slices.Sort(entries)

	for _, name := range entries {
		mt, ok := mediaTypes[name]
		switch {
		case ok:
		case strings.HasSuffix(name, "/"):
			// Only directories the source manifest lists are objects.
			continue
		case strings.HasSuffix(name, ".xml"):
			mt = "text/xml"
		}
		manifestEntry(w, name, mt)
	}

	w.end()
	return w.writeTo(dst)
}

func manifestEntry(w *xmlWriter, fullPath, mediaType string) {
	w.start("manifest:file-entry")
	w.attr("manifest:full-path", fullPath)
	if fullPath == "/" {
		w.attr("manifest:version", ODFVersion)
	}
	w.attr("manifest:media-type", mediaType)
	w.end()
}
