package odsheet

import (
	"path/filepath"

	"github.com/ukaji3/odsheet-go/pkg/odsheet/models"
	"github.com/ukaji3/odsheet-go/pkg/odsheet/parser"
)

// ExtractFile reads the spreadsheet at path and extracts its structured data.
func ExtractFile(path string, opts Options) (*models.WorkbookData, error) {
	wb, err := Read(path, opts)
	if err != nil {
		return nil, err
	}
	return Extract(wb, filepath.Base(path), opts), nil
}

// Extract builds the JSON view of wb.
func Extract(wb *WorkBook, bookName string, opts Options) *models.WorkbookData {
	mode := string(opts.mode())
	log := opts.logger()
	sheets := make(map[string]models.SheetData, wb.NumSheets())
	order := make([]string, 0, wb.NumSheets())

	for _, s := range wb.Sheets() {
		name := s.Name()
		order = append(order, name)
		sheets[name] = models.SheetData{
			Hidden:          !s.Display(),
			Rows:            parser.ExtractCells(s, opts.ShouldIncludeLinks()),
			Merges:          parser.ExtractMerges(s),
			Comments:        parser.ExtractComments(s),
			Shapes:          parser.ExtractShapes(s, mode),
			TableCandidates: parser.DetectTables(s, parser.DefaultTableParams()),
		}
	}

	if opts.mode() != ModeLight {
		for name, charts := range parser.ExtractCharts(wb, mode) {
			if data, ok := sheets[name]; ok {
				data.Charts = charts
				sheets[name] = data
			}
		}
	}

	if opts.ShouldIncludePrintAreas() {
		for name, areas := range parser.ExtractPrintAreas(wb) {
			if data, ok := sheets[name]; ok {
				data.PrintAreas = areas
				sheets[name] = data
			} else {
				log.Debug("print range of unknown sheet", "sheet", name)
			}
		}
	}

	return &models.WorkbookData{
		BookName:   bookName,
		SheetOrder: order,
		Sheets:     sheets,
	}
}
