package output

import (
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/ukaji3/odsheet-go/pkg/odsheet/sheet"
)

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String(), Attr: attrs}
}

func textNode(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

// SheetToHTML renders the cells of a sheet as an HTML table. Spans become
// rowspan and colspan, covered cells are left out and hidden rows and
// columns carry the hidden attribute.
func SheetToHTML(s *sheet.Sheet) *html.Node {
	table := element(atom.Table, attr("data-name", s.Name()))
	if s.CellCount() == 0 {
		return table
	}
	cov := s.Coverage()
	rows, _ := s.UsedGridSize()
	var cols uint32
	for pos, ref := range s.Iter() {
		cols = max(cols, colEnd(pos.Col, ref))
	}
	for r := range cov {
		rows = max(rows, r+1)
	}

	// a row header stands for its repeat
	hidden := make(map[uint32]bool)
	for _, idx := range s.RowHeaderIndexes() {
		h, _ := s.RowHeaderAt(idx)
		if h.Visible == sheet.Visible {
			continue
		}
		for r := idx; r < min(idx+h.Repeat, rows); r++ {
			hidden[r] = true
		}
	}

	body := element(atom.Tbody)
	table.AppendChild(body)
	for r := uint32(0); r < rows; r++ {
		tr := element(atom.Tr)
		if hidden[r] {
			tr.Attr = append(tr.Attr, attr("hidden", ""))
		}
		for _, run := range s.RowRuns(r, cols, false, cov) {
			if run.Covered {
				continue
			}
			ref, ok := run.Cell()
			for i := uint32(0); i < run.Repeat; i++ {
				td := element(atom.Td)
				if s.ColVisible(run.Col+i) != sheet.Visible {
					td.Attr = append(td.Attr, attr("hidden", ""))
				}
				if ok {
					fillCell(td, ref)
				}
				tr.AppendChild(td)
			}
		}
		body.AppendChild(tr)
	}
	return table
}

func fillCell(td *html.Node, ref sheet.CellContentRef) {
	if rs := ref.RowSpan(); rs > 1 {
		td.Attr = append(td.Attr, attr("rowspan", strconv.FormatUint(uint64(rs), 10)))
	}
	if cs := ref.ColSpan(); cs > 1 {
		td.Attr = append(td.Attr, attr("colspan", strconv.FormatUint(uint64(cs), 10)))
	}
	if st := ref.Style(); st != "" {
		td.Attr = append(td.Attr, attr("class", st))
	}
	v := ref.Value()
	if v.IsEmpty() {
		return
	}
	td.Attr = append(td.Attr, attr("data-type", v.Kind().String()))
	for i, line := range strings.Split(v.String(), "\n") {
		if i > 0 {
			td.AppendChild(element(atom.Br))
		}
		td.AppendChild(textNode(line))
	}
}

// WriteHTML writes a complete HTML document with one section per sheet.
func WriteHTML(dst io.Writer, wb *sheet.WorkBook, title string) error {
	doc := &html.Node{Type: html.DocumentNode}
	doc.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})
	root := element(atom.Html)
	doc.AppendChild(root)

	head := element(atom.Head)
	head.AppendChild(element(atom.Meta, attr("charset", "utf-8")))
	t := element(atom.Title)
	t.AppendChild(textNode(title))
	head.AppendChild(t)
	root.AppendChild(head)

	body := element(atom.Body)
	for _, s := range wb.Sheets() {
		section := element(atom.Section)
		if !s.Display() {
			section.Attr = append(section.Attr, attr("hidden", ""))
		}
		h := element(atom.H2)
		h.AppendChild(textNode(s.Name()))
		section.AppendChild(h)
		section.AppendChild(SheetToHTML(s))
		body.AppendChild(section)
	}
	root.AppendChild(body)

	return html.Render(dst, doc)
}
