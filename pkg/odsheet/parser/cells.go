package parser

import (
	"encoding/xml"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ukaji3/odsheet-go/pkg/odsheet/models"
	"github.com/ukaji3/odsheet-go/pkg/odsheet/sheet"
	"github.com/xuri/excelize/v2"
)

// readCell decodes a table:table-cell or table:covered-table-cell and its
// children.
func (tr *tableReader) readCell(start xml.StartElement) (sheet.CellData, error) {
	a := attrs(start)
	cc := sheet.NewCellContent()
	cc.Repeat = attrUint(a, "table:number-columns-repeated", 1)
	cc.Formula = a["table:formula"]
	cc.Style = a["table:style-name"]
	cc.Validation = a["table:content-validation-name"]
	cc.Span = sheet.CellSpan{
		RowSpan: attrUint(a, "table:number-rows-spanned", 1),
		ColSpan: attrUint(a, "table:number-columns-spanned", 1),
	}
	cc.MatrixSpan = sheet.CellSpan{
		RowSpan: attrUint(a, "table:number-matrix-rows-spanned", 1),
		ColSpan: attrUint(a, "table:number-matrix-columns-spanned", 1),
	}

	var paragraphs []sheet.XMLTag
	for {
		token, err := tr.decoder.RawToken()
		if err != nil {
			return sheet.CellData{}, err
		}
		if _, ok := token.(xml.EndElement); ok {
			break
		}
		se, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		switch name := qname(se.Name); name {
		case "text:p", "text:h", "text:list":
			tag, err := readXMLTag(tr.decoder, se)
			if err != nil {
				return sheet.CellData{}, err
			}
			paragraphs = append(paragraphs, tag)
		case "office:annotation":
			ann, err := readAnnotation(tr.decoder, se)
			if err != nil {
				return sheet.CellData{}, err
			}
			cc.Annotation = &ann
		case "draw:frame":
			frame, err := readFrame(tr.decoder, se)
			if err != nil {
				return sheet.CellData{}, err
			}
			cc.DrawFrames = append(cc.DrawFrames, frame)
		default:
			tr.log.Debug("skip cell element", "table", tr.s.Name(), "name", name)
			if err := skipElement(tr.decoder); err != nil {
				return sheet.CellData{}, err
			}
		}
	}

	v, err := parseValue(a, paragraphs)
	if err != nil {
		return sheet.CellData{}, err
	}
	cc.Value = v
	return cc.IntoCellData(), nil
}

// parseValue builds the cell value from the office:value-type family of
// attributes. Text comes from office:string-value or the paragraphs.
func parseValue(a map[string]string, paragraphs []sheet.XMLTag) (sheet.Value, error) {
	switch vt := a["office:value-type"]; vt {
	case "float", "percentage", "currency":
		f, err := strconv.ParseFloat(strings.TrimSpace(a["office:value"]), 64)
		if err != nil {
			return sheet.Value{}, fmt.Errorf("%s value: %w", vt, err)
		}
		switch vt {
		case "percentage":
			return sheet.Percentage(f), nil
		case "currency":
			return sheet.Currency(f, a["office:currency"]), nil
		}
		return sheet.Number(f), nil
	case "boolean":
		b, err := strconv.ParseBool(strings.TrimSpace(a["office:boolean-value"]))
		if err != nil {
			return sheet.Value{}, fmt.Errorf("boolean value: %w", err)
		}
		return sheet.Bool(b), nil
	case "date":
		t, err := parseDate(a["office:date-value"])
		if err != nil {
			return sheet.Value{}, err
		}
		return sheet.DateTime(t), nil
	case "time":
		d, err := sheet.ParseDuration(strings.TrimSpace(a["office:time-value"]))
		if err != nil {
			return sheet.Value{}, err
		}
		return sheet.TimeDuration(d), nil
	case "string":
		if s, ok := a["office:string-value"]; ok {
			return sheet.Text(s), nil
		}
		return textValue(paragraphs), nil
	default:
		if len(paragraphs) > 0 {
			return textValue(paragraphs), nil
		}
		return sheet.EmptyValue(), nil
	}
}

// textValue returns Text for plain paragraphs and TextMarkup otherwise.
func textValue(paragraphs []sheet.XMLTag) sheet.Value {
	lines := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		if !isPlainParagraph(p) {
			return sheet.TextMarkup(paragraphs...)
		}
		lines = append(lines, paragraphText(p))
	}
	return sheet.Text(strings.Join(lines, "\n"))
}

var dateLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05.999999999Z07:00",
	"2006-01-02",
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("date value %q: unknown layout", s)
}

// ExtractCells extracts cell data from a sheet.
// It returns a slice of CellRow containing non-empty rows.
func ExtractCells(s *sheet.Sheet, includeLinks bool) []models.CellRow {
	var result []models.CellRow
	var cur *models.CellRow

	for pos, ref := range s.Iter() {
		v := ref.Value()
		if v.IsEmpty() && ref.Formula() == "" {
			continue
		}
		rowNum := int(pos.Row) + 1 // 1-based row index
		if cur == nil || cur.R != rowNum {
			result = append(result, models.CellRow{R: rowNum, C: make(map[string]any)})
			cur = &result[len(result)-1]
		}

		for i := uint32(0); i < ref.Repeat(); i++ {
			colStr := strconv.Itoa(int(pos.Col+i) + 1) // 1-based column index as string
			cur.C[colStr] = jsonValue(v)
			if f := ref.Formula(); f != "" {
				if cur.F == nil {
					cur.F = make(map[string]string)
				}
				cur.F[colStr] = f
			}
			if !includeLinks {
				continue
			}
			if href := CellLink(v); href != "" {
				if cur.Links == nil {
					cur.Links = make(map[string]string)
				}
				cur.Links[colStr] = href
			}
		}
	}

	return result
}

// jsonValue converts a cell value for JSON output. Integral numbers become
// int64, like the text they were typed as.
func jsonValue(v sheet.Value) any {
	switch v.Kind() {
	case sheet.ValueEmpty:
		return nil
	case sheet.ValueBoolean:
		b, _ := v.AsBool()
		return b
	case sheet.ValueNumber:
		f, _ := v.AsFloat()
		if f == math.Trunc(f) && math.Abs(f) < 1<<53 {
			return int64(f)
		}
		return f
	case sheet.ValuePercentage, sheet.ValueCurrency:
		f, _ := v.AsFloat()
		return f
	}
	return v.String()
}

// CellLink returns the first text:a target of a rich text value.
func CellLink(v sheet.Value) string {
	markup, ok := v.AsMarkup()
	if !ok {
		return ""
	}
	for _, p := range markup {
		if href := findHref(p); href != "" {
			return href
		}
	}
	return ""
}

func findHref(t sheet.XMLTag) string {
	if t.Name == "text:a" {
		href, _ := t.Attr("xlink:href")
		return href
	}
	for _, n := range t.Content {
		if n.Tag != nil {
			if href := findHref(*n.Tag); href != "" {
				return href
			}
		}
	}
	return ""
}

// ExtractMerges returns the spanned ranges of a sheet like "A1:B2".
func ExtractMerges(s *sheet.Sheet) []string {
	var merges []string
	for pos, ref := range s.Iter() {
		rows, cols := ref.RowSpan(), ref.ColSpan()
		if rows <= 1 && cols <= 1 {
			continue
		}
		from, _ := excelize.CoordinatesToCellName(int(pos.Col)+1, int(pos.Row)+1)
		to, _ := excelize.CoordinatesToCellName(int(pos.Col+cols), int(pos.Row+rows))
		merges = append(merges, from+":"+to)
	}
	return merges
}

// ExtractComments returns the annotations of a sheet.
func ExtractComments(s *sheet.Sheet) []models.Comment {
	var comments []models.Comment
	for pos, ref := range s.Iter() {
		ann := ref.Annotation()
		if ann == nil {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(int(pos.Col)+1, int(pos.Row)+1)
		comments = append(comments, models.Comment{
			Cell:   cell,
			Author: ann.Author,
			Text:   AnnotationText(*ann),
		})
	}
	return comments
}

// AnnotationText joins the paragraphs of an annotation with newlines.
func AnnotationText(a sheet.Annotation) string {
	parts := make([]string, 0, len(a.Text))
	for _, p := range a.Text {
		parts = append(parts, paragraphText(p))
	}
	return strings.Join(parts, "\n")
}
