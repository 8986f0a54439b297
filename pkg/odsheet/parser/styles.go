package parser

import (
	"github.com/ukaji3/odsheet-go/pkg/odsheet/sheet"
)

// StyleIndex resolves the automatic styles the sheet model cares about.
type StyleIndex struct {
	// ColWidth maps table-column style names to style:column-width.
	ColWidth map[string]sheet.Length
	// RowHeight maps table-row style names to style:row-height.
	RowHeight map[string]sheet.Length
	// HiddenTables holds table styles with table:display="false".
	HiddenTables map[string]bool
}

// IndexStyles scans office:automatic-styles children.
func IndexStyles(styles []sheet.XMLTag) StyleIndex {
	idx := StyleIndex{
		ColWidth:     make(map[string]sheet.Length),
		RowHeight:    make(map[string]sheet.Length),
		HiddenTables: make(map[string]bool),
	}
	for _, st := range styles {
		if st.Name != "style:style" {
			continue
		}
		name, _ := st.Attr("style:name")
		family, _ := st.Attr("style:family")
		for _, n := range st.Content {
			if n.Tag == nil {
				continue
			}
			props := *n.Tag
			switch {
			case family == "table-column" && props.Name == "style:table-column-properties":
				if v, ok := props.Attr("style:column-width"); ok {
					if l, err := sheet.ParseLength(v); err == nil {
						idx.ColWidth[name] = l
					}
				}
			case family == "table-row" && props.Name == "style:table-row-properties":
				if v, ok := props.Attr("style:row-height"); ok {
					if l, err := sheet.ParseLength(v); err == nil {
						idx.RowHeight[name] = l
					}
				}
			case family == "table" && props.Name == "style:table-properties":
				if v, ok := props.Attr("table:display"); ok && v == "false" {
					idx.HiddenTables[name] = true
				}
			}
		}
	}
	return idx
}
