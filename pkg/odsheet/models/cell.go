// Package models defines the JSON view of an OpenDocument spreadsheet.
package models

// CellRow represents a single row of cells with optional hyperlinks.
type CellRow struct {
	// R is the row index (1-based).
	R int `json:"r"`
	// C maps column index (string, 1-based) to cell value.
	C map[string]any `json:"c"`
	// F maps column index to the cell formula (optional).
	F map[string]string `json:"f,omitempty"`
	// Links maps column index to hyperlink URL (optional).
	Links map[string]string `json:"links,omitempty"`
}

// Comment is a cell annotation.
type Comment struct {
	Cell   string `json:"cell"`
	Author string `json:"author,omitempty"`
	Text   string `json:"text"`
}
