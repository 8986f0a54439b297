package parser

import (
	"archive/zip"
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/odsheet-go/pkg/odsheet/sheet"
)

const docOpen = `<?xml version="1.0" encoding="UTF-8"?>
<office:document-content xmlns:office="urn:oasis:names:tc:opendocument:xmlns:office:1.0"
 xmlns:style="urn:oasis:names:tc:opendocument:xmlns:style:1.0"
 xmlns:text="urn:oasis:names:tc:opendocument:xmlns:text:1.0"
 xmlns:table="urn:oasis:names:tc:opendocument:xmlns:table:1.0"
 xmlns:draw="urn:oasis:names:tc:opendocument:xmlns:drawing:1.0"
 xmlns:svg="urn:oasis:names:tc:opendocument:xmlns:svg-compatible:1.0"
 xmlns:xlink="http://www.w3.org/1999/xlink"
 xmlns:dc="http://purl.org/dc/elements/1.1/"
 xmlns:loext="urn:org:documentfoundation:names:experimental:office:xmlns:loext:1.0"
 office:version="1.3">`

// contentXML wraps automatic styles and spreadsheet body markup in a
// content.xml document.
func contentXML(styles, body string) string {
	return docOpen +
		`<office:automatic-styles>` + styles + `</office:automatic-styles>` +
		`<office:body><office:spreadsheet>` + body + `</office:spreadsheet></office:body>` +
		`</office:document-content>`
}

// odsPackage zips the given parts after a stored mimetype entry.
func odsPackage(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	if mt, ok := parts["mimetype"]; !ok || mt != "" {
		w, err := zw.CreateHeader(&zip.FileHeader{Name: "mimetype", Method: zip.Store})
		require.NoError(t, err)
		if !ok {
			mt = MimeType
		}
		_, err = w.Write([]byte(mt))
		require.NoError(t, err)
	}
	for name, data := range parts {
		if name == "mimetype" {
			continue
		}
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(data))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func readBytes(t *testing.T, data []byte, cfg Config) (*sheet.WorkBook, error) {
	t.Helper()
	return ReadAll(bytes.NewReader(data), int64(len(data)), cfg)
}

const typedStyles = `
<style:style style:name="co1" style:family="table-column"><style:table-column-properties style:column-width="2.5cm"/></style:style>
<style:style style:name="ro1" style:family="table-row"><style:table-row-properties style:row-height="0.5in"/></style:style>
<style:style style:name="ta2" style:family="table"><style:table-properties table:display="false"/></style:style>`

const typedBody = `
<table:table table:name="Data" table:print-ranges="Data.A1:Data.C3">
 <table:table-column table:style-name="co1" table:number-columns-repeated="2"/>
 <table:table-column table:visibility="collapse"/>
 <table:table-row table:style-name="ro1">
  <table:table-cell office:value-type="string"><text:p>name</text:p></table:table-cell>
  <table:table-cell office:value-type="float" office:value="42"><text:p>42</text:p></table:table-cell>
  <table:table-cell office:value-type="boolean" office:boolean-value="true"/>
 </table:table-row>
 <table:table-row>
  <table:table-cell office:value-type="percentage" office:value="0.25"/>
  <table:table-cell office:value-type="currency" office:currency="EUR" office:value="9.5"/>
  <table:table-cell office:value-type="date" office:date-value="2024-03-01T10:30:00"/>
 </table:table-row>
 <table:table-row>
  <table:table-cell office:value-type="time" office:time-value="PT1H30M"/>
  <table:table-cell table:formula="of:=[.B1]*2" office:value-type="float" office:value="84"/>
  <table:table-cell><text:p>a<text:s text:c="2"/>b</text:p><text:p>line2</text:p></table:table-cell>
 </table:table-row>
</table:table>
<table:table table:name="Hidden" table:style-name="ta2">
 <table:table-row><table:table-cell/></table:table-row>
</table:table>
<table:named-expressions/>`

func TestReadAllValues(t *testing.T) {
	data := odsPackage(t, map[string]string{"content.xml": contentXML(typedStyles, typedBody)})
	wb, err := readBytes(t, data, Config{})
	require.NoError(t, err)
	require.Equal(t, 2, wb.NumSheets())

	s := wb.Sheet(0)
	assert.Equal(t, "Data", s.Name())
	assert.Equal(t, "name", s.Value(0, 0).AsStringOr(""))
	f, _ := s.Value(0, 1).AsFloat()
	assert.Equal(t, 42.0, f)
	b, ok := s.Value(0, 2).AsBool()
	assert.True(t, ok)
	assert.True(t, b)

	assert.Equal(t, sheet.ValuePercentage, s.Value(1, 0).Kind())
	amount, code, ok := s.Value(1, 1).AsCurrency()
	require.True(t, ok)
	assert.Equal(t, 9.5, amount)
	assert.Equal(t, "EUR", code)
	dt, ok := s.Value(1, 2).AsDateTime()
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC), dt)

	d, ok := s.Value(2, 0).AsDuration()
	require.True(t, ok)
	assert.Equal(t, 90*time.Minute, d)
	assert.Equal(t, "of:=[.B1]*2", s.Formula(2, 1))
	text, ok := s.Value(2, 2).AsText()
	require.True(t, ok)
	assert.Equal(t, "a  b\nline2", text)

	assert.Equal(t, sheet.Cm(2.5), s.ColWidth(0))
	assert.Equal(t, sheet.Cm(2.5), s.ColWidth(1))
	assert.Equal(t, sheet.Collapsed, s.ColVisible(2))
	assert.Equal(t, sheet.In(0.5), s.RowHeight(0))
	assert.Equal(t, []sheet.CellRange{{Table: "Data", Row: 0, Col: 0, ToRow: 2, ToCol: 2}}, s.PrintRanges())

	assert.True(t, s.Display())
	assert.False(t, wb.Sheet(1).Display())

	require.Len(t, wb.Extra, 1)
	assert.Equal(t, "table:named-expressions", wb.Extra[0].Name)
	assert.Contains(t, wb.XMLNS, "loext")
	assert.Len(t, wb.AutoStyles, 3)
}

func TestReadAllRepeatsAndSpans(t *testing.T) {
	body := `<table:table table:name="S">
 <table:table-row>
  <table:table-cell table:number-columns-repeated="3" office:value-type="float" office:value="1"/>
  <table:table-cell table:number-columns-spanned="2" table:number-rows-spanned="2" office:value-type="string"><text:p>m</text:p></table:table-cell>
  <table:covered-table-cell/>
 </table:table-row>
 <table:table-row table:number-rows-repeated="2">
  <table:table-cell table:number-columns-repeated="3"/>
  <table:covered-table-cell table:number-columns-repeated="2"/>
 </table:table-row>
 <table:table-row table:number-rows-repeated="2">
  <table:table-cell office:value-type="float" office:value="7"/>
 </table:table-row>
</table:table>`
	data := odsPackage(t, map[string]string{"content.xml": contentXML("", body)})

	wb, err := readBytes(t, data, Config{})
	require.NoError(t, err)
	s := wb.Sheet(0)

	assert.Equal(t, uint32(3), s.ColRepeat(0, 0))
	assert.Equal(t, uint32(2), s.RowSpan(0, 3))
	assert.Equal(t, uint32(2), s.ColSpan(0, 3))
	assert.Equal(t, uint32(2), s.RowRepeat(1))

	// Repeated rows with content are cloned.
	for _, r := range []uint32{3, 4} {
		f, ok := s.Value(r, 0).AsFloat()
		require.True(t, ok, "row %d", r)
		assert.Equal(t, 7.0, f)
	}

	wb, err = readBytes(t, data, Config{Policy: sheet.ReadPolicy{UseCloneForRepeat: true, IgnoreEmptyCells: true}})
	require.NoError(t, err)
	s = wb.Sheet(0)
	for c := uint32(0); c < 3; c++ {
		assert.Equal(t, uint32(1), s.ColRepeat(0, c))
		f, _ := s.Value(0, c).AsFloat()
		assert.Equal(t, 1.0, f)
	}
	assert.True(t, s.IsEmpty(1, 0))
}

func TestReadAllGroupsAndHeaders(t *testing.T) {
	body := `<table:table table:name="G">
 <table:table-header-columns><table:table-column/></table:table-header-columns>
 <table:table-column-group table:display="false">
  <table:table-column table:number-columns-repeated="2"/>
 </table:table-column-group>
 <table:table-header-rows><table:table-row><table:table-cell/></table:table-row></table:table-header-rows>
 <table:table-row-group>
  <table:table-row table:number-rows-repeated="2"><table:table-cell/></table:table-row>
  <table:table-row-group>
   <table:table-row><table:table-cell/></table:table-row>
  </table:table-row-group>
 </table:table-row-group>
</table:table>`
	data := odsPackage(t, map[string]string{"content.xml": contentXML("", body)})
	wb, err := readBytes(t, data, Config{})
	require.NoError(t, err)
	s := wb.Sheet(0)

	assert.Equal(t, &sheet.ColRange{Col: 0, ToCol: 0}, s.HeaderCols())
	assert.Equal(t, &sheet.RowRange{Row: 0, ToRow: 0}, s.HeaderRows())

	var cols []sheet.Grouped
	for g := range s.ColGroups() {
		cols = append(cols, g)
	}
	assert.Equal(t, []sheet.Grouped{{From: 1, To: 2, Display: false}}, cols)

	var rows []sheet.Grouped
	for g := range s.RowGroups() {
		rows = append(rows, g)
	}
	assert.ElementsMatch(t, []sheet.Grouped{{From: 1, To: 3, Display: true}, {From: 3, To: 3, Display: true}}, rows)
}

func TestReadAllAnnotationAndFrame(t *testing.T) {
	body := `<table:table table:name="S"><table:table-row>
 <table:table-cell office:value-type="string">
  <office:annotation office:display="true"><dc:creator>Kim</dc:creator><dc:date>2024-01-02T03:04:05</dc:date><text:p>first</text:p><text:p>second</text:p></office:annotation>
  <draw:frame draw:name="Logo" draw:z-index="3" draw:style-name="gr1" svg:x="1in" svg:y="0.5in" svg:width="2in" svg:height="1in"><draw:image xlink:href="Pictures/logo.png"/></draw:frame>
  <text:p>x</text:p>
 </table:table-cell>
</table:table-row></table:table>`
	data := odsPackage(t, map[string]string{
		"content.xml":           contentXML("", body),
		"Pictures/logo.png":     "png",
		"META-INF/manifest.xml": `<manifest:manifest xmlns:manifest="urn:oasis:names:tc:opendocument:xmlns:manifest:1.0"><manifest:file-entry manifest:full-path="Pictures/logo.png" manifest:media-type="image/png"/></manifest:manifest>`,
	})
	wb, err := readBytes(t, data, Config{})
	require.NoError(t, err)
	s := wb.Sheet(0)

	ann := s.Annotation(0, 0)
	require.NotNil(t, ann)
	assert.Equal(t, "Kim", ann.Author)
	assert.True(t, ann.Display)
	assert.Equal(t, 2024, ann.CreationDate.Year())
	assert.Equal(t, "first\nsecond", AnnotationText(*ann))

	frames, ok := s.DrawFrames(0, 0)
	require.True(t, ok)
	require.Len(t, frames, 1)
	assert.Equal(t, "Logo", frames[0].Name)
	assert.Equal(t, 3, frames[0].ZIndex)
	assert.Equal(t, sheet.In(2), frames[0].Width)
	assert.Equal(t, []sheet.XMLAttr{{Name: "draw:style-name", Value: "gr1"}}, frames[0].Attrs)
	assert.Equal(t, "Image", FrameKind(frames[0]))
	assert.Equal(t, "Pictures/logo.png", FrameHref(frames[0]))

	assert.Equal(t, "x", s.Value(0, 0).AsStringOr(""))
	assert.Equal(t, []byte("png"), wb.Parts["Pictures/logo.png"])
	assert.Equal(t, "image/png", wb.MediaTypes["Pictures/logo.png"])
}

func TestReadAllContentOnly(t *testing.T) {
	data := odsPackage(t, map[string]string{
		"content.xml":  contentXML(typedStyles, typedBody),
		"styles.xml":   "<office:document-styles/>",
		"meta.xml":     "<office:document-meta/>",
		"settings.xml": settingsXML(`<config:config-item config:name="ActiveTable" config:type="string">Hidden</config:config-item>`, ""),
	})

	wb, err := readBytes(t, data, Config{ContentOnly: true})
	require.NoError(t, err)
	assert.Empty(t, wb.AutoStyles)
	assert.NotContains(t, wb.Parts, "styles.xml")
	assert.NotContains(t, wb.Parts, "meta.xml")
	assert.Empty(t, wb.ActiveTable)
	assert.True(t, wb.Sheet(0).ColWidth(0).IsDefault())

	wb, err = readBytes(t, data, Config{})
	require.NoError(t, err)
	assert.Contains(t, wb.Parts, "styles.xml")
	assert.NotContains(t, wb.Parts, "settings.xml")
	assert.Equal(t, "Hidden", wb.ActiveTable)
}

func TestReadAllErrors(t *testing.T) {
	t.Run("not a zip", func(t *testing.T) {
		_, err := readBytes(t, []byte("plain text"), Config{})
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})

	t.Run("wrong mimetype", func(t *testing.T) {
		data := odsPackage(t, map[string]string{
			"mimetype":    "application/vnd.oasis.opendocument.text",
			"content.xml": contentXML("", ""),
		})
		_, err := readBytes(t, data, Config{})
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})

	t.Run("missing content", func(t *testing.T) {
		data := odsPackage(t, map[string]string{"styles.xml": "<x/>"})
		_, err := readBytes(t, data, Config{})
		assert.ErrorIs(t, err, ErrMissingPart)
	})

	t.Run("bad cell value", func(t *testing.T) {
		body := `<table:table table:name="S"><table:table-row><table:table-cell/>
<table:table-cell office:value-type="float" office:value="abc"/></table:table-row></table:table>`
		data := odsPackage(t, map[string]string{"content.xml": contentXML("", body)})
		_, err := readBytes(t, data, Config{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidFormat)

		var re *ReadError
		require.True(t, errors.As(err, &re))
		assert.Equal(t, "S", re.SheetName)
		assert.Equal(t, "cell", re.Component)
		assert.Equal(t, uint32(0), re.Row)
		assert.Equal(t, uint32(1), re.Col)
	})

	t.Run("truncated xml", func(t *testing.T) {
		data := odsPackage(t, map[string]string{"content.xml": docOpen + `<office:body><office:spreadsheet><table:table table:name="S">`})
		_, err := readBytes(t, data, Config{})
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})
}

func TestReadAllWithoutMimetype(t *testing.T) {
	data := odsPackage(t, map[string]string{"mimetype": "", "content.xml": contentXML("", typedBody)})
	wb, err := readBytes(t, data, Config{})
	require.NoError(t, err)
	assert.Equal(t, 2, wb.NumSheets())
}
