package models

// Shape represents a draw:frame anchored in a cell.
type Shape struct {
	// ID is the sequential shape id within the sheet.
	ID *int `json:"id,omitempty"`
	// Name is the draw:name of the frame.
	Name string `json:"name,omitempty"`
	// Text is the visible text content of the shape.
	Text string `json:"text"`
	// Cell is the anchor cell, e.g. "B3".
	Cell string `json:"cell,omitempty"`
	// L is the left offset in pixels.
	L int `json:"l"`
	// T is the top offset in pixels.
	T int `json:"t"`
	// W is the shape width in pixels (nil if not verbose mode).
	W *int `json:"w,omitempty"`
	// H is the shape height in pixels (nil if not verbose mode).
	H *int `json:"h,omitempty"`
	// Type is the frame kind, e.g. Image or TextBox.
	Type string `json:"type,omitempty"`
	// Href is the linked image or object path.
	Href string `json:"href,omitempty"`
}
