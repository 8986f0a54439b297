package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/odsheet-go/pkg/odsheet/models"
	"github.com/ukaji3/odsheet-go/pkg/odsheet/sheet"
)

func linkValue(href, text string) sheet.Value {
	a := sheet.NewXMLTag("text:a")
	a.SetAttr("xlink:href", href)
	a.AddText(text)
	p := sheet.NewXMLTag("text:p")
	p.AddTag(a)
	return sheet.TextMarkup(p)
}

func TestExtractCells(t *testing.T) {
	s := sheet.New("Sheet1")
	s.SetValue(0, 0, sheet.Text("Header1"))
	s.SetValue(0, 1, sheet.Text("Header2"))
	s.SetValue(1, 0, sheet.Number(100))
	s.SetValue(1, 1, sheet.Number(200.5))
	s.SetValue(2, 0, sheet.Text("Text"))
	s.SetCellStyle(3, 0, "ce1") // style only, skipped

	rows := ExtractCells(s, false)
	require.Len(t, rows, 3)

	assert.Equal(t, 1, rows[0].R)
	assert.Equal(t, "Header1", rows[0].C["1"])
	assert.Equal(t, int64(100), rows[1].C["1"])
	assert.Equal(t, 200.5, rows[1].C["2"])
	assert.Equal(t, "Text", rows[2].C["1"])
	assert.Nil(t, rows[0].F)
}

func TestExtractCellsRepeatsAndFormulas(t *testing.T) {
	s := sheet.New("Sheet1")
	s.SetValue(0, 1, sheet.Bool(true))
	s.SetColRepeat(0, 1, 3)
	s.SetFormula(1, 0, "of:=SUM([.A1:.A2])")
	s.SetValue(2, 0, sheet.Percentage(0.5))

	rows := ExtractCells(s, false)
	require.Len(t, rows, 3)
	assert.Equal(t, map[string]any{"2": true, "3": true, "4": true}, rows[0].C)

	assert.Equal(t, 2, rows[1].R)
	assert.Nil(t, rows[1].C["1"])
	assert.Equal(t, map[string]string{"1": "of:=SUM([.A1:.A2])"}, rows[1].F)

	assert.Equal(t, 0.5, rows[2].C["1"])
}

func TestExtractCellsLinks(t *testing.T) {
	s := sheet.New("Sheet1")
	s.SetValue(0, 0, linkValue("https://example.com", "site"))
	s.SetValue(0, 1, sheet.Text("plain"))

	rows := ExtractCells(s, false)
	require.Len(t, rows, 1)
	assert.Equal(t, "site", rows[0].C["1"])
	assert.Nil(t, rows[0].Links)

	rows = ExtractCells(s, true)
	require.Len(t, rows, 1)
	assert.Equal(t, map[string]string{"1": "https://example.com"}, rows[0].Links)
}

func TestJSONValue(t *testing.T) {
	assert.Nil(t, jsonValue(sheet.EmptyValue()))
	assert.Equal(t, int64(-3), jsonValue(sheet.Number(-3)))
	assert.Equal(t, 1e20, jsonValue(sheet.Number(1e20)))
	assert.Equal(t, 12.5, jsonValue(sheet.Currency(12.5, "USD")))
	assert.Equal(t, false, jsonValue(sheet.Bool(false)))
	assert.Equal(t, "abc", jsonValue(sheet.Text("abc")))
}

func TestExtractMerges(t *testing.T) {
	s := sheet.New("Sheet1")
	s.SetValue(0, 0, sheet.Text("a"))
	s.SetColSpan(0, 0, 2)
	s.SetRowSpan(3, 2, 3)
	s.SetValue(5, 5, sheet.Text("single"))

	assert.Equal(t, []string{"A1:B1", "C4:C6"}, ExtractMerges(s))
}

func TestExtractComments(t *testing.T) {
	s := sheet.New("Sheet1")
	p1 := sheet.NewXMLTag("text:p")
	p1.AddText("line one")
	p2 := sheet.NewXMLTag("text:p")
	p2.AddText("line two")
	s.SetAnnotation(1, 2, sheet.Annotation{Author: "Kim", Text: []sheet.XMLTag{p1, p2}})

	assert.Equal(t, []models.Comment{{Cell: "C2", Author: "Kim", Text: "line one\nline two"}}, ExtractComments(s))
}

func TestParseValueErrors(t *testing.T) {
	tests := []map[string]string{
		{"office:value-type": "float", "office:value": "x"},
		{"office:value-type": "boolean", "office:boolean-value": "maybe"},
		{"office:value-type": "date", "office:date-value": "yesterday"},
		{"office:value-type": "time", "office:time-value": "1h"},
	}
	for _, a := range tests {
		_, err := parseValue(a, nil)
		assert.Error(t, err, a["office:value-type"])
	}

	v, err := parseValue(map[string]string{"office:value-type": "string", "office:string-value": "raw"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "raw", v.AsStringOr(""))

	v, err = parseValue(map[string]string{"office:value-type": "date", "office:date-value": "2024-05-06"}, nil)
	require.NoError(t, err)
	dt, _ := v.AsDateTime()
	assert.Equal(t, 6, dt.Day())
}
