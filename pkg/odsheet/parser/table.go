package parser

import (
	"encoding/xml"

	"github.com/ukaji3/odsheet-go/pkg/odsheet/sheet"
)

// span is an open group or header element and the index it started at.
type span struct {
	start   uint32
	display bool
}

// tableReader holds the cursor while one table:table is decoded.
type tableReader struct {
	*contentReader
	s   *sheet.Sheet
	row uint32
	col uint32

	colGroups  []span
	rowGroups  []span
	headerCols []span
	headerRows []span
}

func (cr *contentReader) readTable(start xml.StartElement) (*sheet.Sheet, error) {
	a := attrs(start)
	tr := &tableReader{contentReader: cr, s: sheet.New(a["table:name"])}

	if style := a["table:style-name"]; style != "" {
		tr.s.SetStyle(sheet.TableStyleRef(style))
		if cr.styles.HiddenTables[style] {
			tr.s.SetDisplay(false)
		}
	}
	if a["table:print"] == "false" {
		tr.s.SetPrint(false)
	}
	if pr := a["table:print-ranges"]; pr != "" {
		ranges, err := sheet.ParseCellRanges(pr)
		if err != nil {
			return nil, NewReadError(tr.s.Name(), "print-ranges", 0, 0, err)
		}
		for _, r := range ranges {
			tr.s.AddPrintRange(r)
		}
	}

	for {
		token, err := cr.decoder.RawToken()
		if err != nil {
			return nil, err
		}

		switch t := token.(type) {
		case xml.StartElement:
			if err := tr.startElement(t); err != nil {
				return nil, err
			}
		case xml.EndElement:
			if done := tr.endElement(qname(t.Name)); done {
				return tr.s, nil
			}
		}
	}
}

func (tr *tableReader) startElement(se xml.StartElement) error {
	switch name := qname(se.Name); name {
	case "table:table-columns", "table:table-rows":
	case "table:table-header-columns":
		tr.headerCols = append(tr.headerCols, span{start: tr.col})
	case "table:table-column-group":
		tr.colGroups = append(tr.colGroups, span{start: tr.col, display: attrs(se)["table:display"] != "false"})
	case "table:table-header-rows":
		tr.headerRows = append(tr.headerRows, span{start: tr.row})
	case "table:table-row-group":
		tr.rowGroups = append(tr.rowGroups, span{start: tr.row, display: attrs(se)["table:display"] != "false"})
	case "table:table-column":
		tr.readColumn(attrs(se))
		return skipElement(tr.decoder)
	case "table:table-row":
		return tr.readRow(se)
	default:
		tag, err := readXMLTag(tr.decoder, se)
		if err != nil {
			return err
		}
		tr.s.AddExtra(tag)
		tr.log.Debug("keep table element", "table", tr.s.Name(), "name", name)
	}
	return nil
}

// endElement closes groups and headers. It reports true at the end of the
// table.
func (tr *tableReader) endElement(name string) bool {
	switch name {
	case "table:table":
		return true
	case "table:table-header-columns":
		if sp, ok := pop(&tr.headerCols); ok && tr.col > sp.start {
			tr.s.SetHeaderCols(sp.start, tr.col-1)
		}
	case "table:table-column-group":
		if sp, ok := pop(&tr.colGroups); ok && tr.col > sp.start {
			tr.s.LoadColGroup(sheet.NewGrouped(sp.start, tr.col-1, sp.display))
		}
	case "table:table-header-rows":
		if sp, ok := pop(&tr.headerRows); ok && tr.row > sp.start {
			tr.s.SetHeaderRows(sp.start, tr.row-1)
		}
	case "table:table-row-group":
		if sp, ok := pop(&tr.rowGroups); ok && tr.row > sp.start {
			tr.s.LoadRowGroup(sheet.NewGrouped(sp.start, tr.row-1, sp.display))
		}
	}
	return false
}

func pop(stack *[]span) (span, bool) {
	if len(*stack) == 0 {
		return span{}, false
	}
	sp := (*stack)[len(*stack)-1]
	*stack = (*stack)[:len(*stack)-1]
	return sp, true
}

func (tr *tableReader) readColumn(a map[string]string) {
	repeat := attrUint(a, "table:number-columns-repeated", 1)
	h := sheet.ColHeader{
		Style:     a["table:style-name"],
		CellStyle: a["table:default-cell-style-name"],
	}
	if v, err := sheet.ParseVisibility(a["table:visibility"]); err == nil {
		h.Visible = v
	} else {
		tr.log.Debug("bad column visibility", "table", tr.s.Name(), "col", tr.col, "err", err)
	}
	h.Width = tr.styles.ColWidth[h.Style]

	if h != (sheet.ColHeader{}) {
		for i := uint32(0); i < repeat; i++ {
			tr.s.SetColHeader(tr.col+i, h)
		}
	}
	tr.col += repeat
}

type decodedCell struct {
	col  uint32
	data sheet.CellData
}

func (tr *tableReader) readRow(start xml.StartElement) error {
	a := attrs(start)
	repeat := attrUint(a, "table:number-rows-repeated", 1)
	h := sheet.RowHeader{
		Style:     a["table:style-name"],
		CellStyle: a["table:default-cell-style-name"],
		Repeat:    1,
	}
	if v, err := sheet.ParseVisibility(a["table:visibility"]); err == nil {
		h.Visible = v
	}
	h.Height = tr.styles.RowHeight[h.Style]

	var cells []decodedCell
	hasContent := false
	col := uint32(0)
	for {
		token, err := tr.decoder.RawToken()
		if err != nil {
			return err
		}
		if _, ok := token.(xml.EndElement); ok {
			break
		}
		se, ok := token.(xml.StartElement)
		if !ok {
			continue
		}
		switch qname(se.Name) {
		case "table:table-cell":
			cd, err := tr.readCell(se)
			if err != nil {
				return NewReadError(tr.s.Name(), "cell", tr.row, col, err)
			}
			n := cd.Repeat
			hasContent = hasContent || !cd.IsEmpty()
			cells = append(cells, decodedCell{col: col, data: cd})
			col += n
		case "table:covered-table-cell":
			cd, err := tr.readCell(se)
			if err != nil {
				return NewReadError(tr.s.Name(), "cell", tr.row, col, err)
			}
			if !cd.IsEmpty() {
				tr.log.Debug("drop covered cell content", "table", tr.s.Name(), "row", tr.row, "col", col)
			}
			col += cd.Repeat
		default:
			if err := skipElement(tr.decoder); err != nil {
				return err
			}
		}
	}

	if repeat == 1 || !hasContent {
		h.Repeat = repeat
		tr.loadRow(tr.row, h, cells, false)
	} else {
		for r := uint32(0); r < repeat; r++ {
			tr.loadRow(tr.row+r, h, cells, r < repeat-1)
		}
	}
	tr.row += repeat
	return nil
}

func (tr *tableReader) loadRow(row uint32, h sheet.RowHeader, cells []decodedCell, clone bool) {
	if h != (sheet.RowHeader{Repeat: 1}) {
		tr.s.SetRowHeader(row, h)
	}
	for _, c := range cells {
		cd := c.data
		if clone {
			cd = c.data.Clone()
		}
		tr.s.LoadCell(tr.cfg.Policy, row, c.col, cd)
	}
}
