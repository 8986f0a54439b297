package output

import (
	"bytes"
	"math"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/odsheet-go/pkg/odsheet/parser"
	"github.com/ukaji3/odsheet-go/pkg/odsheet/sheet"
)

func paragraph(text string) sheet.XMLTag {
	p := sheet.NewXMLTag("text:p")
	p.AddText(text)
	return p
}

// roundTrip writes wb as a package and reads it back.
func roundTrip(t *testing.T, wb *sheet.WorkBook, cfg Config) *sheet.WorkBook {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, WritePackage(&buf, wb, cfg))
	got, err := parser.ReadAll(bytes.NewReader(buf.Bytes()), int64(buf.Len()), parser.Config{})
	require.NoError(t, err)
	return got
}

func content(t *testing.T, wb *sheet.WorkBook, cfg Config) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, WriteContent(&buf, wb, cfg))
	return buf.String()
}

func TestWriteValuesRoundTrip(t *testing.T) {
	values := []sheet.Value{
		sheet.Bool(true),
		sheet.Number(3.25),
		sheet.Percentage(0.5),
		sheet.Currency(12.5, "EUR"),
		sheet.Text("plain"),
		sheet.Text("two\nlines"),
		sheet.Text("  lead\tand  gap"),
		sheet.Text(`<&"quotes">`),
		sheet.DateTime(time.Date(2024, 2, 29, 13, 5, 0, 0, time.UTC)),
		sheet.TimeDuration(90 * time.Minute),
	}
	s := sheet.New("Values")
	for i, v := range values {
		s.SetValue(uint32(i), 0, v)
	}
	wb := sheet.NewWorkBook()
	wb.PushSheet(s)

	got := roundTrip(t, wb, Config{}).Sheet(0)
	for i, v := range values {
		assert.True(t, v.Equal(got.Value(uint32(i), 0)), "row %d: want %s got %s", i, v, got.Value(uint32(i), 0))
	}
}

func TestWriteCellsRoundTrip(t *testing.T) {
	link := sheet.NewXMLTag("text:a")
	link.SetAttr("xlink:href", "https://example.com")
	link.AddText("site")
	rich := sheet.NewXMLTag("text:p")
	rich.AddTag(link)

	s := sheet.New("Cells")
	s.SetValue(0, 0, sheet.Number(1))
	s.SetColRepeat(0, 0, 3)
	s.SetFormula(0, 3, "of:=SUM([.A1:.C1])")
	s.SetValue(0, 3, sheet.Number(3))
	s.SetValue(1, 0, sheet.Text("merged"))
	s.SetRowSpan(1, 0, 2)
	s.SetColSpan(1, 0, 2)
	s.SetValue(2, 1, sheet.Text("hidden under span"))
	s.SetValue(3, 2, sheet.TextMarkup(rich))
	s.SetCellStyle(3, 3, "ce1")
	s.SetValidation(3, 3, "val1")
	s.SetAnnotation(4, 0, sheet.Annotation{Author: "Kim", Display: true, Text: []sheet.XMLTag{paragraph("note")}})
	img := sheet.NewXMLTag("draw:image")
	img.SetAttr("xlink:href", "Pictures/a.png")
	s.AddDrawFrame(4, 1, sheet.DrawFrame{Name: "Pic", X: sheet.Cm(1), Width: sheet.Cm(2), ZIndex: 2, Content: []sheet.XMLTag{img}})

	wb := sheet.NewWorkBook()
	wb.PushSheet(s)
	got := roundTrip(t, wb, Config{}).Sheet(0)

	assert.Equal(t, uint32(3), got.ColRepeat(0, 0))
	assert.Equal(t, "of:=SUM([.A1:.C1])", got.Formula(0, 3))
	assert.Equal(t, uint32(2), got.RowSpan(1, 0))
	assert.Equal(t, uint32(2), got.ColSpan(1, 0))
	assert.True(t, got.IsEmpty(2, 1))

	markup, ok := got.Value(3, 2).AsMarkup()
	require.True(t, ok)
	require.Len(t, markup, 1)
	assert.True(t, rich.Equal(markup[0]))
	assert.Equal(t, "ce1", got.CellStyle(3, 3))
	assert.Equal(t, "val1", got.Validation(3, 3))

	ann := got.Annotation(4, 0)
	require.NotNil(t, ann)
	assert.Equal(t, "Kim", ann.Author)
	assert.True(t, ann.Display)

	frames, ok := got.DrawFrames(4, 1)
	require.True(t, ok)
	require.Len(t, frames, 1)
	assert.Equal(t, "Pic", frames[0].Name)
	assert.Equal(t, sheet.Cm(2), frames[0].Width)
	assert.Equal(t, 2, frames[0].ZIndex)
}

func TestWriteRepeatForEmpty(t *testing.T) {
	s := sheet.New("S")
	s.SetValue(0, 0, sheet.Number(1))
	s.SetValue(0, 5, sheet.Number(2))
	wb := sheet.NewWorkBook()
	wb.PushSheet(s)

	xml := content(t, wb, Config{RepeatForEmpty: true})
	assert.Contains(t, xml, `<table:table-cell table:number-columns-repeated="4"/>`)

	xml = content(t, wb, Config{})
	assert.Contains(t, xml, strings.Repeat(`<table:table-cell/>`, 4))
	assert.NotContains(t, xml, `table:number-columns-repeated="4"`)
}

func TestWriteRowRepeats(t *testing.T) {
	s := sheet.New("S")
	s.SetRowHeader(0, sheet.RowHeader{Style: "ro1", Repeat: 10})
	s.SetValue(4, 0, sheet.Text("inside"))
	wb := sheet.NewWorkBook()
	wb.PushSheet(s)

	xml := content(t, wb, Config{})
	assert.Contains(t, xml, `<table:table-row table:style-name="ro1" table:number-rows-repeated="4">`)
	assert.Contains(t, xml, `<table:table-row table:style-name="ro1" table:number-rows-repeated="5">`)

	got := roundTrip(t, wb, Config{}).Sheet(0)
	assert.Equal(t, "inside", got.Value(4, 0).AsStringOr(""))
	assert.Equal(t, "ro1", got.RowStyle(4))
	assert.Equal(t, uint32(5), got.RowRepeat(5))
}

func TestWriteHeadersAndStyles(t *testing.T) {
	s := sheet.New("S")
	s.SetValue(0, 0, sheet.Text("x"))
	s.SetColWidth(0, sheet.Cm(3))
	s.SetColWidth(1, sheet.Cm(3))
	s.SetColWidth(2, sheet.Cm(1))
	s.SetColVisible(3, sheet.Collapsed)
	s.SetRowHeight(0, sheet.Pt(20))
	s.SetRowVisible(1, sheet.Filtered)
	hidden := sheet.New("Hidden")
	hidden.SetDisplay(false)

	taken := sheet.NewXMLTag("style:style")
	taken.SetAttr("style:name", "co1")
	taken.SetAttr("style:family", "table-cell")

	wb := sheet.NewWorkBook()
	wb.PushSheet(s)
	wb.PushSheet(hidden)
	wb.AutoStyles = []sheet.XMLTag{taken}

	xml := content(t, wb, Config{})
	assert.Contains(t, xml, `<style:style style:name="co2" style:family="table-column"><style:table-column-properties style:column-width="3cm"/></style:style>`)
	assert.Contains(t, xml, `<table:table-column table:style-name="co2" table:number-columns-repeated="2"/>`)
	assert.Contains(t, xml, `style:name="co3"`)
	assert.Contains(t, xml, `<style:table-row-properties style:row-height="20pt"/>`)
	assert.Contains(t, xml, `<style:table-properties table:display="false"/>`)

	got := roundTrip(t, wb, Config{})
	gs := got.Sheet(0)
	assert.Equal(t, sheet.Cm(3), gs.ColWidth(1))
	assert.Equal(t, sheet.Cm(1), gs.ColWidth(2))
	assert.Equal(t, sheet.Collapsed, gs.ColVisible(3))
	assert.Equal(t, sheet.Pt(20), gs.RowHeight(0))
	assert.Equal(t, sheet.Filtered, gs.RowVisible(1))
	assert.False(t, got.Sheet(1).Display())
}

func TestWriteGroupsRoundTrip(t *testing.T) {
	s := sheet.New("G")
	s.SetValue(9, 5, sheet.Number(1))
	s.AddRowGroup(1, 6)
	s.AddRowGroup(2, 3)
	s.SetRowGroupDisplayed(2, 3, false)
	s.AddColGroup(0, 3)
	s.SetHeaderRows(0, 0)
	s.SetHeaderCols(1, 2)
	s.AddPrintRange(sheet.NewCellRange(0, 0, 5, 5))

	wb := sheet.NewWorkBook()
	wb.PushSheet(s)
	got := roundTrip(t, wb, Config{}).Sheet(0)

	assert.ElementsMatch(t, []sheet.Grouped{{From: 1, To: 6, Display: true}, {From: 2, To: 3, Display: false}},
		slices.Collect(got.RowGroups()))
	assert.Equal(t, []sheet.Grouped{{From: 0, To: 3, Display: true}}, slices.Collect(got.ColGroups()))
	assert.Equal(t, &sheet.RowRange{Row: 0, ToRow: 0}, got.HeaderRows())
	assert.Equal(t, &sheet.ColRange{Col: 1, ToCol: 2}, got.HeaderCols())
	assert.Equal(t, []sheet.CellRange{{Table: "G", Row: 0, Col: 0, ToRow: 5, ToCol: 5}}, got.PrintRanges())
	f, _ := got.Value(9, 5).AsFloat()
	assert.Equal(t, 1.0, f)
}

func TestNest(t *testing.T) {
	var trace []string
	ivs := []interval{
		{from: 1, to: 6, display: true},
		{from: 2, to: 3, header: true},
		{from: 8, to: 9},
	}
	nest(0, 10, ivs,
		func(iv interval) { trace = append(trace, "(") },
		func(interval) { trace = append(trace, ")") },
		func(from, to uint32) {
			trace = append(trace, strings.Repeat("x", int(to-from+1)))
		})
	assert.Equal(t, "x ( x ( xx ) xxx ) x ( xx ) x", strings.Join(trace, " "))
}

func TestNestIntervals(t *testing.T) {
	tw := &tableWriter{s: sheet.New("S"), log: Config{}.logger()}

	groups := []sheet.Grouped{
		{From: 0, To: 9, Display: true},
		{From: 5, To: 12, Display: true}, // crosses the first
		{From: 2, To: 4, Display: true},
	}
	header := &interval{from: 2, to: 4, header: true}
	ivs := tw.nestIntervals("row", groups, header)
	assert.Equal(t, []interval{
		{from: 0, to: 9, display: true},
		{from: 2, to: 4, display: true},
		{from: 2, to: 4, header: true},
	}, ivs)

	// A header crossing a group is dropped.
	ivs = tw.nestIntervals("row", groups[:1], &interval{from: 8, to: 11, header: true})
	assert.Len(t, ivs, 1)
}

func TestColEnd(t *testing.T) {
	s := sheet.New("S")
	s.SetValue(0, 2, sheet.Number(1))
	s.SetColRepeat(0, 2, 3)
	s.SetValue(1, 0, sheet.Number(2))
	s.SetColSpan(1, 0, 4)
	last := uint32(math.MaxUint32)
	s.SetValue(2, last-1, sheet.Number(3))
	s.SetColRepeat(2, last-1, 5)

	var ends []uint32
	for pos, ref := range s.Iter() {
		ends = append(ends, colEnd(pos.Col, ref))
	}
	// Runs past the last column stop there.
	assert.Equal(t, []uint32{5, 4, last}, ends)
}

func TestWriteParagraphText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain", "plain"},
		{"a  b\tc", "a <text:s/>b<text:tab/>c"},
		{"  x", `<text:s text:c="2"/>x`},
		{"one two", "one two"},
		{"<&>", "&lt;&amp;&gt;"},
	}
	for _, tt := range tests {
		w := newFragmentWriter()
		writeParagraphText(w, tt.in)
		assert.Equal(t, tt.want, string(w.b.B), tt.in)
		w.release()
	}
}
