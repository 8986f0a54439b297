package output

import (
	"log/slog"
	"strconv"

	"github.com/ukaji3/odsheet-go/pkg/odsheet/parser"
	"github.com/ukaji3/odsheet-go/pkg/odsheet/sheet"
)

// styleSet resolves the style names the writer emits. Widths, heights and
// hidden sheets that no kept automatic style expresses get a generated
// style, shared between equal lengths.
type styleSet struct {
	index parser.StyleIndex
	taken map[string]bool
	log   *slog.Logger

	colStyles   map[sheet.Length]string
	rowStyles   map[sheet.Length]string
	hiddenTable string
	counter     map[string]int

	generated []sheet.XMLTag
}

func newStyleSet(autoStyles []sheet.XMLTag, log *slog.Logger) *styleSet {
	ss := &styleSet{
		index:     parser.IndexStyles(autoStyles),
		taken:     make(map[string]bool),
		log:       log,
		colStyles: make(map[sheet.Length]string),
		rowStyles: make(map[sheet.Length]string),
		counter:   make(map[string]int),
	}
	for _, st := range autoStyles {
		if name, ok := st.Attr("style:name"); ok {
			ss.taken[name] = true
		}
	}
	return ss
}

// nextName returns the first free name with the prefix, e.g. "co3".
func (ss *styleSet) nextName(prefix string) string {
	for {
		ss.counter[prefix]++
		name := prefix + strconv.Itoa(ss.counter[prefix])
		if !ss.taken[name] {
			ss.taken[name] = true
			return name
		}
	}
}

// colStyle returns the style name to write for a column header.
func (ss *styleSet) colStyle(h sheet.ColHeader) string {
	if h.Width.IsDefault() || ss.index.ColWidth[h.Style] == h.Width {
		return h.Style
	}
	if name, ok := ss.colStyles[h.Width]; ok {
		return name
	}
	name := ss.nextName("co")
	ss.colStyles[h.Width] = name
	ss.generated = append(ss.generated, sizeStyle(name, "table-column",
		"style:table-column-properties", "style:column-width", h.Width))
	ss.log.Debug("generate column style", "name", name, "width", h.Width.String(), "replaces", h.Style)
	return name
}

// rowStyle returns the style name to write for a row header.
func (ss *styleSet) rowStyle(h sheet.RowHeader) string {
	if h.Height.IsDefault() || ss.index.RowHeight[h.Style] == h.Height {
		return h.Style
	}
	if name, ok := ss.rowStyles[h.Height]; ok {
		return name
	}
	name := ss.nextName("ro")
	ss.rowStyles[h.Height] = name
	ss.generated = append(ss.generated, sizeStyle(name, "table-row",
		"style:table-row-properties", "style:row-height", h.Height))
	ss.log.Debug("generate row style", "name", name, "height", h.Height.String(), "replaces", h.Style)
	return name
}

// tableStyle returns the style name to write for a sheet.
func (ss *styleSet) tableStyle(s *sheet.Sheet) string {
	if s.Display() || ss.index.HiddenTables[s.Style()] {
		return s.Style()
	}
	if ss.hiddenTable == "" {
		ss.hiddenTable = ss.nextName("ta")
		props := sheet.NewXMLTag("style:table-properties")
		props.SetAttr("table:display", "false")
		st := sheet.NewXMLTag("style:style")
		st.SetAttr("style:name", ss.hiddenTable)
		st.SetAttr("style:family", "table")
		st.AddTag(props)
		ss.generated = append(ss.generated, st)
		ss.log.Debug("generate hidden table style", "name", ss.hiddenTable)
	}
	return ss.hiddenTable
}

func sizeStyle(name, family, propsName, attr string, l sheet.Length) sheet.XMLTag {
	props := sheet.NewXMLTag(propsName)
	props.SetAttr(attr, l.String())
	st := sheet.NewXMLTag("style:style")
	st.SetAttr("style:name", name)
	st.SetAttr("style:family", family)
	st.AddTag(props)
	return st
}
