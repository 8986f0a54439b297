package models

// PrintArea represents cell coordinate bounds for a print range.
type PrintArea struct {
	// R1 is the start row (1-based).
	R1 int `json:"r1"`
	// C1 is the start column (1-based).
	C1 int `json:"c1"`
	// R2 is the end row (1-based, inclusive).
	R2 int `json:"r2"`
	// C2 is the end column (1-based, inclusive).
	C2 int `json:"c2"`
}

// Contains reports whether the 1-based cell r, c lies in the area.
func (a PrintArea) Contains(r, c int) bool {
	return r >= a.R1 && r <= a.R2 && c >= a.C1 && c <= a.C2
}

// PrintAreaView represents a slice of a sheet restricted to a print area.
type PrintAreaView struct {
	BookName  string    `json:"book_name"`
	SheetName string    `json:"sheet_name"`
	Area      PrintArea `json:"area"`
	// Rows contains rows within the area bounds, cells outside the area
	// columns removed.
	Rows   []CellRow `json:"rows,omitempty"`
	Shapes []Shape   `json:"shapes,omitempty"`
	Charts []Chart   `json:"charts,omitempty"`
	// TableCandidates contains table candidates intersecting the area.
	TableCandidates []string `json:"table_candidates,omitempty"`
}
