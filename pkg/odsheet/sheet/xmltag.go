package sheet

import "strings"

// XMLAttr is one attribute of an XMLTag. Name keeps its namespace prefix,
// e.g. "text:style-name".
type XMLAttr struct {
	Name  string
	Value string
}

// XMLNode is either character data or a nested tag.
type XMLNode struct {
	Text string
	Tag  *XMLTag
}

// XMLTag is a generic XML element. It carries rich text values and
// elements the reader does not interpret, so they survive a round trip.
type XMLTag struct {
	Name    string
	Attrs   []XMLAttr
	Content []XMLNode
}

// NewXMLTag creates an element without content.
func NewXMLTag(name string) XMLTag {
	return XMLTag{Name: name}
}

// Attr returns the value of the named attribute.
func (t XMLTag) Attr(name string) (string, bool) {
	for _, a := range t.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets or replaces an attribute.
func (t *XMLTag) SetAttr(name, value string) {
	for i := range t.Attrs {
		if t.Attrs[i].Name == name {
			t.Attrs[i].Value = value
			return
		}
	}
	t.Attrs = append(t.Attrs, XMLAttr{Name: name, Value: value})
}

// AddText appends character data.
func (t *XMLTag) AddText(s string) {
	t.Content = append(t.Content, XMLNode{Text: s})
}

// AddTag appends a child element.
func (t *XMLTag) AddTag(child XMLTag) {
	t.Content = append(t.Content, XMLNode{Tag: &child})
}

// Text returns the concatenated character data of the element and its
// descendants. Paragraph boundaries are not marked.
func (t XMLTag) Text() string {
	var b strings.Builder
	t.writeText(&b)
	return b.String()
}

func (t XMLTag) writeText(b *strings.Builder) {
	for _, n := range t.Content {
		if n.Tag != nil {
			n.Tag.writeText(b)
		} else {
			b.WriteString(n.Text)
		}
	}
}

// Equal compares name, attributes in order, and content.
func (t XMLTag) Equal(o XMLTag) bool {
	if t.Name != o.Name || len(t.Attrs) != len(o.Attrs) || len(t.Content) != len(o.Content) {
		return false
	}
	for i := range t.Attrs {
		if t.Attrs[i] != o.Attrs[i] {
			return false
		}
	}
	for i := range t.Content {
		a, b := t.Content[i], o.Content[i]
		if (a.Tag == nil) != (b.Tag == nil) {
			return false
		}
		if a.Tag == nil {
			if a.Text != b.Text {
				return false
			}
		} else if !a.Tag.Equal(*b.Tag) {
			return false
		}
	}
	return true
}

// Clone deep-copies the element.
func (t XMLTag) Clone() XMLTag {
	c := XMLTag{Name: t.Name}
	if t.Attrs != nil {
		c.Attrs = append([]XMLAttr(nil), t.Attrs...)
	}
	if t.Content != nil {
		c.Content = make([]XMLNode, len(t.Content))
		for i, n := range t.Content {
			if n.Tag != nil {
				child := n.Tag.Clone()
				c.Content[i] = XMLNode{Tag: &child}
			} else {
				c.Content[i] = n
			}
		}
	}
	return c
}

func cloneTags(tags []XMLTag) []XMLTag {
	if tags == nil {
		return nil
	}
	out := make([]XMLTag, len(tags))
	for i, t := range tags {
		out[i] = t.Clone()
	}
	return out
}

// markupText joins paragraphs with newlines.
func markupText(tags []XMLTag) string {
	parts := make([]string, 0, len(tags))
	for _, t := range tags {
		parts = append(parts, t.Text())
	}
	return strings.Join(parts, "\n")
}
