package parser

import (
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/ukaji3/odsheet-go/pkg/odsheet/models"
	"github.com/ukaji3/odsheet-go/pkg/odsheet/sheet"
	"github.com/xuri/excelize/v2"
)

// FrameKindMap maps the first child of a draw:frame to a shape type label.
var FrameKindMap = map[string]string{
	"draw:image":          "Image",
	"draw:object":         "Object",
	"draw:object-ole":     "OLEObject",
	"draw:text-box":       "TextBox",
	"draw:plugin":         "Plugin",
	"draw:applet":         "Applet",
	"draw:floating-frame": "FloatingFrame",
}

// readFrame reads a draw:frame. Placement attributes are interpreted, all
// other attributes and the children are kept.
func readFrame(decoder *xml.Decoder, start xml.StartElement) (sheet.DrawFrame, error) {
	var frame sheet.DrawFrame
	for _, attr := range start.Attr {
		switch name := qname(attr.Name); name {
		case "draw:name":
			frame.Name = attr.Value
		case "svg:x":
			frame.X = parseLengthAttr(attr.Value)
		case "svg:y":
			frame.Y = parseLengthAttr(attr.Value)
		case "svg:width":
			frame.Width = parseLengthAttr(attr.Value)
		case "svg:height":
			frame.Height = parseLengthAttr(attr.Value)
		case "draw:z-index":
			if z, err := strconv.Atoi(attr.Value); err == nil {
				frame.ZIndex = z
			}
		default:
			frame.Attrs = append(frame.Attrs, sheet.XMLAttr{Name: name, Value: attr.Value})
		}
	}

	for {
		token, err := decoder.RawToken()
		if err != nil {
			return frame, err
		}
		switch t := token.(type) {
		case xml.StartElement:
			tag, err := readXMLTag(decoder, t)
			if err != nil {
				return frame, err
			}
			frame.Content = append(frame.Content, tag)
		case xml.EndElement:
			return frame, nil
		}
	}
}

func parseLengthAttr(v string) sheet.Length {
	l, err := sheet.ParseLength(v)
	if err != nil {
		return sheet.Length{}
	}
	return l
}

// readAnnotation reads an office:annotation. dc:creator and dc:date fill
// the author fields; the remaining children are the comment body.
func readAnnotation(decoder *xml.Decoder, start xml.StartElement) (sheet.Annotation, error) {
	a := attrs(start)
	ann := sheet.Annotation{
		Name:    a["office:name"],
		Display: a["office:display"] == "true",
	}

	for {
		token, err := decoder.RawToken()
		if err != nil {
			return ann, err
		}
		switch t := token.(type) {
		case xml.StartElement:
			switch qname(t.Name) {
			case "dc:creator":
				text, err := readElementText(decoder)
				if err != nil {
					return ann, err
				}
				ann.Author = strings.TrimSpace(text)
			case "dc:date":
				text, err := readElementText(decoder)
				if err != nil {
					return ann, err
				}
				if d, err := parseDate(text); err == nil {
					ann.CreationDate = d
				}
			case "meta:date-string":
				if err := skipElement(decoder); err != nil {
					return ann, err
				}
			default:
				tag, err := readXMLTag(decoder, t)
				if err != nil {
					return ann, err
				}
				ann.Text = append(ann.Text, tag)
			}
		case xml.EndElement:
			return ann, nil
		}
	}
}

// FrameKind returns the shape type label of a frame, "Frame" if unknown.
func FrameKind(f sheet.DrawFrame) string {
	for _, c := range f.Content {
		if kind, ok := FrameKindMap[c.Name]; ok {
			return kind
		}
	}
	return "Frame"
}

// FrameText returns the text of a text box frame.
func FrameText(f sheet.DrawFrame) string {
	var parts []string
	for _, c := range f.Content {
		if c.Name != "draw:text-box" {
			continue
		}
		for _, n := range c.Content {
			if n.Tag != nil {
				parts = append(parts, paragraphText(*n.Tag))
			}
		}
	}
	return strings.Join(parts, "\n")
}

// FrameHref returns the xlink:href of the frame's image or object.
func FrameHref(f sheet.DrawFrame) string {
	for _, c := range f.Content {
		if href, ok := c.Attr("xlink:href"); ok {
			return href
		}
	}
	return ""
}

// ExtractShapes lists the non-chart frames of a sheet in cell order and
// numbers them from 1.
func ExtractShapes(s *sheet.Sheet, mode string) []models.Shape {
	var shapes []models.Shape
	id := 0
	for pos, ref := range s.Iter() {
		for _, frame := range ref.DrawFrames() {
			kind := FrameKind(frame)
			if kind == "Object" {
				continue // charts
			}
			text := FrameText(frame)
			if !shouldIncludeShape(text, kind, mode) {
				continue
			}
			id++
			shapeID := id
			cell, _ := excelize.CoordinatesToCellName(int(pos.Col)+1, int(pos.Row)+1)
			shape := models.Shape{
				ID:   &shapeID,
				Name: frame.Name,
				Text: text,
				Cell: cell,
				L:    LengthToPixels(frame.X),
				T:    LengthToPixels(frame.Y),
				Type: kind,
				Href: FrameHref(frame),
			}
			if mode == "verbose" {
				w, h := LengthToPixels(frame.Width), LengthToPixels(frame.Height)
				shape.W, shape.H = &w, &h
			}
			shapes = append(shapes, shape)
		}
	}
	return shapes
}

// shouldIncludeShape applies the mode filter. Standard mode keeps text
// boxes with text and images.
func shouldIncludeShape(text, kind, mode string) bool {
	switch mode {
	case "light":
		return false
	case "verbose":
		return true
	}
	return text != "" || kind == "Image"
}
