package models

// SheetData represents structured data for a single sheet.
type SheetData struct {
	// Hidden is set for sheets that are not displayed.
	Hidden bool `json:"hidden,omitempty"`
	// Rows contains extracted rows with cell values and links.
	Rows []CellRow `json:"rows,omitempty"`
	// Merges contains spanned cell ranges such as "A1:B2".
	Merges   []string  `json:"merges,omitempty"`
	Comments []Comment `json:"comments,omitempty"`
	Shapes   []Shape   `json:"shapes,omitempty"`
	Charts   []Chart   `json:"charts,omitempty"`
	// TableCandidates contains cell ranges likely representing tables.
	TableCandidates []string `json:"table_candidates,omitempty"`
	// PrintAreas contains the table:print-ranges of the sheet.
	PrintAreas []PrintArea `json:"print_areas,omitempty"`
}
