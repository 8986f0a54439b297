package sheet

import (
	"slices"
	"time"
)

// Annotation is a cell comment. Only its placement attributes are
// interpreted; the paragraphs are kept as XML.
type Annotation struct {
	Name         string
	Author       string
	CreationDate time.Time
	Display      bool
	Text         []XMLTag
}

// Clone deep-copies the annotation.
func (a Annotation) Clone() Annotation {
	a.Text = cloneTags(a.Text)
	return a
}

// Equal compares all fields.
func (a Annotation) Equal(o Annotation) bool {
	if a.Name != o.Name || a.Author != o.Author || a.Display != o.Display ||
		!a.CreationDate.Equal(o.CreationDate) || len(a.Text) != len(o.Text) {
		return false
	}
	for i := range a.Text {
		if !a.Text[i].Equal(o.Text[i]) {
			return false
		}
	}
	return true
}

// DrawFrame is a drawing anchored at a cell (image, chart object, text box).
// Only the placement is interpreted; the frame body is kept as XML.
type DrawFrame struct {
	Name    string
	X, Y    Length
	Width   Length
	Height  Length
	ZIndex  int
	Attrs   []XMLAttr // other draw:frame attributes, e.g. draw:style-name
	Content []XMLTag
}

// Clone deep-copies the frame.
func (f DrawFrame) Clone() DrawFrame {
	if f.Attrs != nil {
		f.Attrs = append([]XMLAttr(nil), f.Attrs...)
	}
	f.Content = cloneTags(f.Content)
	return f
}

// Equal compares all fields.
func (f DrawFrame) Equal(o DrawFrame) bool {
	if f.Name != o.Name || f.X != o.X || f.Y != o.Y || f.Width != o.Width ||
		f.Height != o.Height || f.ZIndex != o.ZIndex || len(f.Content) != len(o.Content) ||
		!slices.Equal(f.Attrs, o.Attrs) {
		return false
	}
	for i := range f.Content {
		if !f.Content[i].Equal(o.Content[i]) {
			return false
		}
	}
	return true
}

func cloneFrames(frames []DrawFrame) []DrawFrame {
	if frames == nil {
		return nil
	}
	out := make([]DrawFrame, len(frames))
	for i, f := range frames {
		out[i] = f.Clone()
	}
	return out
}
