package output

import (
	"io"
	"strconv"

	"github.com/ukaji3/odsheet-go/pkg/odsheet/sheet"
)

var settingsNamespaces = map[string]string{
	"office": Namespaces["office"],
	"config": "urn:oasis:names:tc:opendocument:xmlns:config:1.0",
	"ooo":    "http://openoffice.org/2004/office",
}

// WriteSettings writes settings.xml: the view state of every sheet from
// its SheetConfig, followed by the kept config-item-sets.
func WriteSettings(dst io.Writer, wb *sheet.WorkBook) error {
	w := newXMLWriter()
	w.start("office:document-settings")
	for _, prefix := range []string{"config", "office", "ooo"} {
		w.attr("xmlns:"+prefix, settingsNamespaces[prefix])
	}
	w.attr("office:version", ODFVersion)
	w.start("office:settings")

	w.start("config:config-item-set")
	w.attr("config:name", "ooo:view-settings")
	w.start("config:config-item-map-indexed")
	w.attr("config:name", "Views")
	w.start("config:config-item-map-entry")
	configItem(w, "ViewId", "string", "view1")

	w.start("config:config-item-map-named")
	w.attr("config:name", "Tables")
	for _, s := range wb.Sheets() {
		w.start("config:config-item-map-entry")
		w.attr("config:name", s.Name())
		writeSheetConfig(w, s.Config())
		w.end()
	}
	w.end()

	active := wb.ActiveTable
	if active == "" && wb.NumSheets() > 0 {
		active = wb.Sheet(0).Name()
	}
	if active != "" {
		configItem(w, "ActiveTable", "string", active)
	}
	w.end() // map-entry
	w.end() // Views
	w.end() // view-settings

	w.tags(wb.SettingsExtra)
	w.end()
	w.end()
	return w.writeTo(dst)
}

func writeSheetConfig(w *xmlWriter, c sheet.SheetConfig) {
	u := func(v uint32) string { return strconv.FormatUint(uint64(v), 10) }
	s16 := func(v int16) string { return strconv.Itoa(int(v)) }

	configItem(w, "CursorPositionX", "int", u(c.CursorX))
	configItem(w, "CursorPositionY", "int", u(c.CursorY))
	configItem(w, "HorizontalSplitMode", "short", s16(int16(c.HorSplitMode)))
	configItem(w, "VerticalSplitMode", "short", s16(int16(c.VertSplitMode)))
	configItem(w, "HorizontalSplitPosition", "int", u(c.HorSplitPos))
	configItem(w, "VerticalSplitPosition", "int", u(c.VertSplitPos))
	configItem(w, "ActiveSplitRange", "short", s16(c.ActiveSplitRange))
	configItem(w, "PositionLeft", "int", u(c.PositionLeft))
	configItem(w, "PositionRight", "int", u(c.PositionRight))
	configItem(w, "PositionTop", "int", u(c.PositionTop))
	configItem(w, "PositionBottom", "int", u(c.PositionBottom))
	configItem(w, "ZoomType", "short", s16(c.ZoomType))
	configItem(w, "ZoomValue", "int", strconv.Itoa(int(c.ZoomValue)))
	configItem(w, "PageViewZoomValue", "int", strconv.Itoa(int(c.PageViewZoomValue)))
	configItem(w, "ShowGrid", "boolean", strconv.FormatBool(c.ShowGrid))
}

func configItem(w *xmlWriter, name, typ, value string) {
	w.start("config:config-item")
	w.attr("config:name", name)
	w.attr("config:type", typ)
	w.text(value)
	w.end()
}
