package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ukaji3/odsheet-go/pkg/odsheet/sheet"
)

func imageFrame(name, href string) sheet.DrawFrame {
	img := sheet.NewXMLTag("draw:image")
	img.SetAttr("xlink:href", href)
	return sheet.DrawFrame{
		Name: name, X: sheet.In(1), Y: sheet.In(0.5),
		Width: sheet.In(2), Height: sheet.In(1),
		Content: []sheet.XMLTag{img},
	}
}

func textBoxFrame(name string, lines ...string) sheet.DrawFrame {
	box := sheet.NewXMLTag("draw:text-box")
	for _, l := range lines {
		p := sheet.NewXMLTag("text:p")
		p.AddText(l)
		box.AddTag(p)
	}
	return sheet.DrawFrame{Name: name, Width: sheet.Pt(72), Height: sheet.Pt(36), Content: []sheet.XMLTag{box}}
}

func objectFrame(name, href string) sheet.DrawFrame {
	obj := sheet.NewXMLTag("draw:object")
	obj.SetAttr("xlink:href", href)
	return sheet.DrawFrame{Name: name, Width: sheet.In(4), Height: sheet.In(3), Content: []sheet.XMLTag{obj}}
}

func TestFrameAccessors(t *testing.T) {
	img := imageFrame("Logo", "Pictures/a.png")
	assert.Equal(t, "Image", FrameKind(img))
	assert.Equal(t, "Pictures/a.png", FrameHref(img))
	assert.Empty(t, FrameText(img))

	box := textBoxFrame("Note", "hello", "world")
	assert.Equal(t, "TextBox", FrameKind(box))
	assert.Equal(t, "hello\nworld", FrameText(box))
	assert.Empty(t, FrameHref(box))

	assert.Equal(t, "Frame", FrameKind(sheet.DrawFrame{}))
	assert.Equal(t, "Object", FrameKind(objectFrame("Chart", "./Object 1")))
}

func TestShouldIncludeShape(t *testing.T) {
	tests := []struct {
		text     string
		kind     string
		mode     string
		expected bool
	}{
		{"Hello", "TextBox", "light", false},
		{"Hello", "TextBox", "standard", true},
		{"", "TextBox", "standard", false},
		{"", "Image", "standard", true},
		{"", "Frame", "verbose", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, shouldIncludeShape(tt.text, tt.kind, tt.mode),
			"text=%q kind=%s mode=%s", tt.text, tt.kind, tt.mode)
	}
}

func TestExtractShapes(t *testing.T) {
	s := sheet.New("Sheet1")
	s.AddDrawFrame(0, 1, imageFrame("Logo", "Pictures/a.png"))
	s.AddDrawFrame(2, 0, textBoxFrame("Empty"))
	s.AddDrawFrame(2, 0, textBoxFrame("Note", "hi"))
	s.AddDrawFrame(4, 4, objectFrame("Chart", "./Object 1"))

	shapes := ExtractShapes(s, "standard")
	require.Len(t, shapes, 2)

	assert.Equal(t, 1, *shapes[0].ID)
	assert.Equal(t, "Logo", shapes[0].Name)
	assert.Equal(t, "B1", shapes[0].Cell)
	assert.Equal(t, "Image", shapes[0].Type)
	assert.Equal(t, "Pictures/a.png", shapes[0].Href)
	assert.Equal(t, 96, shapes[0].L)
	assert.Equal(t, 48, shapes[0].T)
	assert.Nil(t, shapes[0].W)

	assert.Equal(t, 2, *shapes[1].ID)
	assert.Equal(t, "hi", shapes[1].Text)
	assert.Equal(t, "A3", shapes[1].Cell)

	verbose := ExtractShapes(s, "verbose")
	require.Len(t, verbose, 3)
	require.NotNil(t, verbose[0].W)
	assert.Equal(t, 192, *verbose[0].W)
	assert.Equal(t, 96, *verbose[0].H)

	assert.Empty(t, ExtractShapes(s, "light"))
}

func TestLengthToPixels(t *testing.T) {
	assert.Equal(t, 96, LengthToPixels(sheet.In(1)))
	assert.Equal(t, 96, LengthToPixels(sheet.Pt(72)))
	assert.Equal(t, 0, LengthToPixels(sheet.Length{}))
}
