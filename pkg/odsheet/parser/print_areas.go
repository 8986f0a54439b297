package parser

import (
	"strconv"
	"strings"

	"github.com/ukaji3/odsheet-go/pkg/odsheet/models"
	"github.com/ukaji3/odsheet-go/pkg/odsheet/sheet"
	"github.com/xuri/excelize/v2"
)

// ExtractPrintAreas extracts the table:print-ranges of every sheet.
// Returns a map of sheet name to list of print areas.
func ExtractPrintAreas(wb *sheet.WorkBook) map[string][]models.PrintArea {
	result := make(map[string][]models.PrintArea)

	for _, s := range wb.Sheets() {
		for _, r := range s.PrintRanges() {
			// A range may name another table; file it under that one.
			name := s.Name()
			if r.Table != "" {
				if owner, ok := wb.SheetByName(r.Table); ok {
					name = owner.Name()
				}
			}
			result[name] = append(result[name], RangeToArea(r))
		}
	}

	return result
}

// RangeToArea converts a 0-based cell range to 1-based print area bounds.
func RangeToArea(r sheet.CellRange) models.PrintArea {
	return models.PrintArea{
		R1: int(r.Row) + 1,
		C1: int(r.Col) + 1,
		R2: int(r.ToRow) + 1,
		C2: int(r.ToCol) + 1,
	}
}

// NewPrintAreaView slices sheet data down to one print area.
func NewPrintAreaView(bookName, sheetName string, data models.SheetData, area models.PrintArea) models.PrintAreaView {
	view := models.PrintAreaView{
		BookName:  bookName,
		SheetName: sheetName,
		Area:      area,
	}

	for _, row := range data.Rows {
		if row.R < area.R1 || row.R > area.R2 {
			continue
		}
		if r, ok := clipRow(row, area); ok {
			view.Rows = append(view.Rows, r)
		}
	}

	for _, shape := range data.Shapes {
		if cellInArea(shape.Cell, area) {
			view.Shapes = append(view.Shapes, shape)
		}
	}

	// Charts only carry pixel offsets, so they are kept as a whole.
	view.Charts = data.Charts

	for _, t := range data.TableCandidates {
		if rangeIntersects(t, area) {
			view.TableCandidates = append(view.TableCandidates, t)
		}
	}

	return view
}

// clipRow drops the cells outside the area columns. ok is false if no
// cell is left.
func clipRow(row models.CellRow, area models.PrintArea) (models.CellRow, bool) {
	out := models.CellRow{R: row.R, C: make(map[string]any)}
	for k, v := range row.C {
		if c, err := strconv.Atoi(k); err == nil && c >= area.C1 && c <= area.C2 {
			out.C[k] = v
		}
	}
	for k, v := range row.F {
		if _, ok := out.C[k]; ok {
			if out.F == nil {
				out.F = make(map[string]string)
			}
			out.F[k] = v
		}
	}
	for k, v := range row.Links {
		if _, ok := out.C[k]; ok {
			if out.Links == nil {
				out.Links = make(map[string]string)
			}
			out.Links[k] = v
		}
	}
	return out, len(out.C) > 0
}

func cellInArea(cell string, area models.PrintArea) bool {
	c, r, err := excelize.CellNameToCoordinates(cell)
	if err != nil {
		return false
	}
	return area.Contains(r, c)
}

// rangeIntersects reports whether an "A1:D10" range overlaps the area.
func rangeIntersects(ref string, area models.PrintArea) bool {
	from, to, _ := strings.Cut(ref, ":")
	if to == "" {
		to = from
	}
	c1, r1, err := excelize.CellNameToCoordinates(from)
	if err != nil {
		return false
	}
	c2, r2, err := excelize.CellNameToCoordinates(to)
	if err != nil {
		return false
	}
	return r1 <= area.R2 && r2 >= area.R1 && c1 <= area.C2 && c2 >= area.C1
}
