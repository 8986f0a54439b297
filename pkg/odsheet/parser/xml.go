package parser

import (
	"archive/zip"
	"encoding/xml"
	"io"
	"strconv"
	"strings"

	"github.com/ukaji3/odsheet-go/pkg/odsheet/sheet"
)

// The reader works on raw tokens, so names keep the prefixes used by the
// document. OpenDocument producers use the conventional prefixes below.

// qname returns the prefixed name, e.g. "table:table-cell".
func qname(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

// attrs collects the attributes of a start element by prefixed name.
func attrs(se xml.StartElement) map[string]string {
	m := make(map[string]string, len(se.Attr))
	for _, a := range se.Attr {
		m[qname(a.Name)] = a.Value
	}
	return m
}

func attrUint(m map[string]string, name string, def uint32) uint32 {
	v, ok := m[name]
	if !ok {
		return def
	}
	n, err := strconv.ParseUint(strings.TrimSpace(v), 10, 32)
	if err != nil || n == 0 {
		return def
	}
	return uint32(n)
}

func readZipFile(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name == name {
			rc, err := f.Open()
			if err != nil {
				return nil, err
			}
			defer rc.Close()
			return io.ReadAll(rc)
		}
	}
	return nil, nil
}

// readXMLTag reads the element opened by start, including all descendants,
// into a generic tag.
func readXMLTag(decoder *xml.Decoder, start xml.StartElement) (sheet.XMLTag, error) {
	tag := sheet.NewXMLTag(qname(start.Name))
	for _, a := range start.Attr {
		tag.SetAttr(qname(a.Name), a.Value)
	}
	for {
		token, err := decoder.RawToken()
		if err != nil {
			return tag, err
		}
		switch t := token.(type) {
		case xml.StartElement:
			child, err := readXMLTag(decoder, t)
			if err != nil {
				return tag, err
			}
			tag.AddTag(child)
		case xml.CharData:
			tag.AddText(string(t))
		case xml.EndElement:
			return tag, nil
		}
	}
}

// skipElement consumes the rest of the element opened last.
func skipElement(decoder *xml.Decoder) error {
	depth := 1
	for depth > 0 {
		token, err := decoder.RawToken()
		if err != nil {
			return err
		}
		switch token.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return nil
}

// readElementText returns the character data of the element opened last.
func readElementText(decoder *xml.Decoder) (string, error) {
	var text strings.Builder
	depth := 1
	for depth > 0 {
		token, err := decoder.RawToken()
		if err != nil {
			return text.String(), err
		}
		switch t := token.(type) {
		case xml.CharData:
			text.Write(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return text.String(), nil
}

// paragraphText flattens a text:p or text:h element to plain text.
// text:s, text:tab and text:line-break become whitespace.
func paragraphText(tag sheet.XMLTag) string {
	var b strings.Builder
	writeParagraph(&b, tag)
	return b.String()
}

func writeParagraph(b *strings.Builder, tag sheet.XMLTag) {
	for _, n := range tag.Content {
		if n.Tag == nil {
			b.WriteString(n.Text)
			continue
		}
		switch n.Tag.Name {
		case "text:s":
			c := 1
			if v, ok := n.Tag.Attr("text:c"); ok {
				if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
					c = parsed
				}
			}
			b.WriteString(strings.Repeat(" ", c))
		case "text:tab":
			b.WriteByte('\t')
		case "text:line-break":
			b.WriteByte('\n')
		case "office:annotation", "office:annotation-end":
		default:
			writeParagraph(b, *n.Tag)
		}
	}
}

// isPlainParagraph reports whether a paragraph carries nothing but text
// and whitespace elements, so it can be stored as a Text value.
func isPlainParagraph(tag sheet.XMLTag) bool {
	if tag.Name != "text:p" || len(tag.Attrs) > 0 {
		return false
	}
	for _, n := range tag.Content {
		if n.Tag == nil {
			continue
		}
		switch n.Tag.Name {
		case "text:s", "text:tab", "text:line-break":
		default:
			return false
		}
	}
	return true
}
