package odsheet

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/odsheet-go/pkg/odsheet/models"
	"github.com/ukaji3/odsheet-go/pkg/odsheet/sheet"
)

func sampleBook() *WorkBook {
	s := sheet.New("Data")
	s.SetValue(0, 0, sheet.Text("Name"))
	s.SetValue(0, 1, sheet.Text("Qty"))
	s.SetValue(1, 0, sheet.Text("apple"))
	s.SetValue(1, 1, sheet.Number(3))
	s.SetValue(2, 0, sheet.Text("pear"))
	s.SetValue(2, 1, sheet.Number(4.5))
	s.SetFormula(3, 1, "of:=SUM([.B2:.B3])")
	s.SetValue(3, 1, sheet.Number(7.5))
	s.SetValue(5, 0, sheet.Text("total"))
	s.SetColSpan(5, 0, 2)

	note := sheet.NewXMLTag("text:p")
	note.AddText("check")
	s.SetAnnotation(1, 1, sheet.Annotation{Author: "Kim", Text: []sheet.XMLTag{note}})

	a := sheet.NewXMLTag("text:a")
	a.SetAttr("xlink:href", "https://example.com")
	a.AddText("site")
	p := sheet.NewXMLTag("text:p")
	p.AddTag(a)
	s.SetValue(6, 0, sheet.TextMarkup(p))

	img := sheet.NewXMLTag("draw:image")
	img.SetAttr("xlink:href", "Pictures/a.png")
	s.AddDrawFrame(0, 3, sheet.DrawFrame{Name: "Logo", Width: sheet.In(1), Height: sheet.In(1), Content: []sheet.XMLTag{img}})
	s.AddPrintRange(sheet.NewCellRange(0, 0, 3, 1))

	hidden := sheet.New("Hidden")
	hidden.SetDisplay(false)

	wb := sheet.NewWorkBook()
	wb.PushSheet(s)
	wb.PushSheet(hidden)
	wb.Parts["Pictures/a.png"] = []byte{0x89, 'P', 'N', 'G'}
	wb.MediaTypes["Pictures/a.png"] = "image/png"
	return wb
}

func TestWriteReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.ods")
	require.NoError(t, Write(path, sampleBook(), DefaultOptions()))

	wb, err := Read(path, DefaultOptions())
	require.NoError(t, err)
	require.Equal(t, 2, wb.NumSheets())

	s, ok := wb.SheetByName("Data")
	require.True(t, ok)
	assert.Equal(t, "pear", s.Value(2, 0).AsStringOr(""))
	assert.Equal(t, "of:=SUM([.B2:.B3])", s.Formula(3, 1))
	assert.Equal(t, uint32(2), s.ColSpan(5, 0))
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, wb.Parts["Pictures/a.png"])
	assert.False(t, wb.Sheet(1).Display())
}

func TestReadErrors(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.ods"), DefaultOptions())
	assert.ErrorIs(t, err, ErrFileNotFound)

	path := filepath.Join(t.TempDir(), "plain.ods")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))
	_, err = Read(path, DefaultOptions())
	assert.ErrorIs(t, err, ErrInvalidFormat)
	assert.False(t, errors.Is(err, ErrFileNotFound))
}

func TestReadFromPolicy(t *testing.T) {
	s := sheet.New("S")
	s.SetValue(0, 0, sheet.Text("x"))
	s.SetColRepeat(0, 0, 3)
	wb := sheet.NewWorkBook()
	wb.PushSheet(s)

	var buf bytes.Buffer
	require.NoError(t, WriteTo(&buf, wb, DefaultOptions()))

	got, err := ReadFrom(bytes.NewReader(buf.Bytes()), int64(buf.Len()), DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, uint32(3), got.Sheet(0).ColRepeat(0, 0))

	opts := DefaultOptions()
	opts.UseCloneForRepeat = true
	got, err = ReadFrom(bytes.NewReader(buf.Bytes()), int64(buf.Len()), opts)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), got.Sheet(0).ColRepeat(0, 0))
	assert.Equal(t, "x", got.Sheet(0).Value(0, 2).AsStringOr(""))
}

func TestExtractFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.ods")
	require.NoError(t, Write(path, sampleBook(), DefaultOptions()))

	data, err := ExtractFile(path, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "book.ods", data.BookName)
	assert.Equal(t, []string{"Data", "Hidden"}, data.SheetOrder)
	assert.True(t, data.Sheets["Hidden"].Hidden)

	d := data.Sheets["Data"]
	assert.False(t, d.Hidden)
	require.NotEmpty(t, d.Rows)
	assert.Equal(t, models.CellRow{R: 1, C: map[string]any{"1": "Name", "2": "Qty"}}, d.Rows[0])
	assert.Equal(t, map[string]any{"2": 7.5}, d.Rows[3].C)
	assert.Equal(t, map[string]string{"2": "of:=SUM([.B2:.B3])"}, d.Rows[3].F)
	assert.Nil(t, d.Rows[5].Links)
	assert.Equal(t, []string{"A6:B6"}, d.Merges)
	assert.Equal(t, []models.Comment{{Cell: "B2", Author: "Kim", Text: "check"}}, d.Comments)
	require.Len(t, d.Shapes, 1)
	assert.Equal(t, "Logo", d.Shapes[0].Name)
	assert.Equal(t, []models.PrintArea{{R1: 1, C1: 1, R2: 4, C2: 2}}, d.PrintAreas)
}

func TestExtractModes(t *testing.T) {
	wb := sampleBook()

	light := Extract(wb, "b.ods", Options{Mode: ModeLight}).Sheets["Data"]
	assert.Empty(t, light.Shapes)
	assert.Empty(t, light.PrintAreas)

	verbose := Extract(wb, "b.ods", Options{Mode: ModeVerbose}).Sheets["Data"]
	require.Len(t, verbose.Shapes, 1)
	require.NotNil(t, verbose.Shapes[0].W)
	assert.Equal(t, 96, *verbose.Shapes[0].W)
	assert.Equal(t, map[string]string{"1": "https://example.com"}, verbose.Rows[5].Links)

	// zero options behave like standard
	zero := Extract(wb, "b.ods", Options{}).Sheets["Data"]
	assert.Len(t, zero.Shapes, 1)
	assert.NotEmpty(t, zero.PrintAreas)
}
