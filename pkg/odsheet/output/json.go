package output

import (
	"encoding/json"

	"github.com/ukaji3/odsheet-go/pkg/odsheet/models"
)

func marshal(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// ToJSON serializes extracted workbook data.
func ToJSON(wb *models.WorkbookData, pretty bool) ([]byte, error) {
	return marshal(wb, pretty)
}

// SheetToJSON serializes the data of one sheet.
func SheetToJSON(s *models.SheetData, pretty bool) ([]byte, error) {
	return marshal(s, pretty)
}

// PrintAreaViewToJSON serializes one print area view.
func PrintAreaViewToJSON(v *models.PrintAreaView, pretty bool) ([]byte, error) {
	return marshal(v, pretty)
}
