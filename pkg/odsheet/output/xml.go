package output

import (
	"encoding/xml"
	"io"

	"github.com/valyala/bytebufferpool"

	"github.com/ukaji3/odsheet-go/pkg/odsheet/sheet"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// xmlWriter builds a document in a pooled buffer. Start tags are left open
// until the first child or text, so childless elements close as "/>".
type xmlWriter struct {
	b     *bytebufferpool.ByteBuffer
	stack []string
	open  bool // start tag of stack top still lacks its ">"
}

func newXMLWriter() *xmlWriter {
	w := newFragmentWriter()
	w.b.WriteString(xmlHeader)
	return w
}

// newFragmentWriter returns a writer without the XML declaration.
func newFragmentWriter() *xmlWriter {
	return &xmlWriter{b: bytebufferpool.Get()}
}

// raw appends an already encoded fragment.
func (w *xmlWriter) raw(p []byte) {
	w.closeStart()
	w.b.Write(p)
}

// release returns the buffer to the pool. w must not be used afterwards.
func (w *xmlWriter) release() {
	bytebufferpool.Put(w.b)
	w.b = nil
}

// writeTo copies the document to dst and releases the buffer.
func (w *xmlWriter) writeTo(dst io.Writer) error {
	defer w.release()
	_, err := w.b.WriteTo(dst)
	return err
}

func (w *xmlWriter) closeStart() {
	if w.open {
		w.b.WriteByte('>')
		w.open = false
	}
}

func (w *xmlWriter) start(name string) {
	w.closeStart()
	w.b.WriteByte('<')
	w.b.WriteString(name)
	w.stack = append(w.stack, name)
	w.open = true
}

// attr adds an attribute to the element just started.
func (w *xmlWriter) attr(name, value string) {
	w.b.WriteByte(' ')
	w.b.WriteString(name)
	w.b.WriteString(`="`)
	escape(w.b, value)
	w.b.WriteByte('"')
}

// attrIf adds the attribute unless value is empty.
func (w *xmlWriter) attrIf(name, value string) {
	if value != "" {
		w.attr(name, value)
	}
}

func (w *xmlWriter) text(s string) {
	w.closeStart()
	escape(w.b, s)
}

func (w *xmlWriter) end() {
	name := w.stack[len(w.stack)-1]
	w.stack = w.stack[:len(w.stack)-1]
	if w.open {
		w.b.WriteString("/>")
		w.open = false
		return
	}
	w.b.WriteString("</")
	w.b.WriteString(name)
	w.b.WriteByte('>')
}

// element writes <name>text</name>.
func (w *xmlWriter) element(name, text string) {
	w.start(name)
	w.text(text)
	w.end()
}

// tag writes a kept element with all its content.
func (w *xmlWriter) tag(t sheet.XMLTag) {
	w.start(t.Name)
	for _, a := range t.Attrs {
		w.attr(a.Name, a.Value)
	}
	for _, n := range t.Content {
		if n.Tag != nil {
			w.tag(*n.Tag)
		} else {
			w.text(n.Text)
		}
	}
	w.end()
}

func (w *xmlWriter) tags(ts []sheet.XMLTag) {
	for _, t := range ts {
		w.tag(t)
	}
}

func escape(b *bytebufferpool.ByteBuffer, s string) {
	// EscapeText only fails on write errors, which a ByteBuffer never has.
	_ = xml.EscapeText(b, []byte(s))
}
