package parser

import (
	"fmt"

	"github.com/ukaji3/odsheet-go/pkg/odsheet/sheet"
	"github.com/xuri/excelize/v2"
)

// TableDetectionParams holds parameters for table detection.
type TableDetectionParams struct {
	DensityMin       float64
	CoverageMin      float64
	MinNonemptyCells int
}

// DefaultTableParams returns default table detection parameters.
func DefaultTableParams() TableDetectionParams {
	return TableDetectionParams{
		DensityMin:       0.04,
		CoverageMin:      0.2,
		MinNonemptyCells: 3,
	}
}

// bounds is an inclusive, zero based cell rectangle.
type bounds struct {
	minRow, maxRow uint32
	minCol, maxCol uint32
}

// DetectTables detects table-like regions in a sheet.
// Returns a list of cell ranges (e.g., "A1:D10") that likely represent tables.
func DetectTables(s *sheet.Sheet, params TableDetectionParams) []string {
	b, nonEmpty, rows, ok := findDataBounds(s)
	if !ok || nonEmpty < params.MinNonemptyCells {
		return nil
	}

	height := float64(b.maxRow - b.minRow + 1)
	total := height * float64(b.maxCol-b.minCol+1)
	if float64(nonEmpty)/total < params.DensityMin {
		return nil
	}
	// share of rows in the box that hold any value
	if float64(rows)/height < params.CoverageMin {
		return nil
	}

	startCell, _ := excelize.CoordinatesToCellName(int(b.minCol)+1, int(b.minRow)+1)
	endCell, _ := excelize.CoordinatesToCellName(int(b.maxCol)+1, int(b.maxRow)+1)
	return []string{fmt.Sprintf("%s:%s", startCell, endCell)}
}

// findDataBounds finds the bounding box of cells with a value and counts
// them and the rows holding them. A repeated cell counts once per column.
func findDataBounds(s *sheet.Sheet) (b bounds, count, rows int, ok bool) {
	lastRow := uint32(0)
	for pos, ref := range s.Iter() {
		if ref.Value().IsEmpty() {
			continue
		}
		last := pos.Col + ref.Repeat() - 1
		if !ok {
			b = bounds{minRow: pos.Row, maxRow: pos.Row, minCol: pos.Col, maxCol: last}
			ok = true
		}
		b.minRow = min(b.minRow, pos.Row)
		b.maxRow = max(b.maxRow, pos.Row)
		b.minCol = min(b.minCol, pos.Col)
		b.maxCol = max(b.maxCol, last)
		count += int(ref.Repeat())
		if rows == 0 || pos.Row != lastRow {
			rows++
			lastRow = pos.Row
		}
	}
	return
}
