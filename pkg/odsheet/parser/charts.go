package parser

import (
	"bytes"
	"encoding/xml"
	"strconv"
	"strings"

	"github.com/ukaji3/odsheet-go/pkg/odsheet/models"
	"github.com/ukaji3/odsheet-go/pkg/odsheet/sheet"
)

// ChartTypeMap maps chart:class values to chart type names.
var ChartTypeMap = map[string]string{
	"chart:line":         "Line",
	"chart:bar":          "Bar",
	"chart:area":         "Area",
	"chart:circle":       "Pie",
	"chart:ring":         "Doughnut",
	"chart:scatter":      "XYScatter",
	"chart:bubble":       "Bubble",
	"chart:radar":        "Radar",
	"chart:filled-radar": "FilledRadar",
	"chart:surface":      "Surface",
	"chart:stock":        "Stock",
	"chart:gantt":        "Gantt",
}

// ExtractCharts collects the chart objects embedded in each sheet. Chart
// documents are looked up in the package parts of wb.
func ExtractCharts(wb *sheet.WorkBook, mode string) map[string][]models.Chart {
	result := make(map[string][]models.Chart)
	if mode == "light" {
		return result
	}

	for _, s := range wb.Sheets() {
		var charts []models.Chart
		for _, ref := range s.Iter() {
			for _, frame := range ref.DrawFrames() {
				if FrameKind(frame) != "Object" {
					continue
				}
				data := wb.Parts[objectContentPath(FrameHref(frame))]
				if data == nil {
					continue
				}
				chart := parseChartXML(data, frame)
				if chart == nil {
					continue
				}
				if mode != "verbose" {
					chart.W = nil
					chart.H = nil
				}
				charts = append(charts, *chart)
			}
		}
		if len(charts) > 0 {
			result[s.Name()] = charts
		}
	}
	return result
}

// objectContentPath turns a draw:object href like "./Object 1" into the
// path of its content part.
func objectContentPath(href string) string {
	href = strings.TrimPrefix(href, "./")
	href = strings.TrimSuffix(href, "/")
	if href == "" {
		return ""
	}
	return href + "/content.xml"
}

// parseChartXML parses the content part of an embedded object. It returns
// nil if the object is not a chart.
func parseChartXML(data []byte, frame sheet.DrawFrame) *models.Chart {
	decoder := xml.NewDecoder(bytes.NewReader(data))

	var chart *models.Chart
	for {
		token, err := decoder.RawToken()
		if err != nil {
			break
		}
		if se, ok := token.(xml.StartElement); ok && qname(se.Name) == "chart:chart" {
			chart = parseChartElement(decoder, se)
			break
		}
	}
	if chart == nil {
		return nil
	}

	w := LengthToPixels(frame.Width)
	h := LengthToPixels(frame.Height)
	chart.Name = frame.Name
	chart.L = LengthToPixels(frame.X)
	chart.T = LengthToPixels(frame.Y)
	chart.W = &w
	chart.H = &h
	return chart
}

// parseChartElement parses chart:chart.
func parseChartElement(decoder *xml.Decoder, start xml.StartElement) *models.Chart {
	chart := &models.Chart{ChartType: "unknown"}
	if ct, ok := ChartTypeMap[attrs(start)["chart:class"]]; ok {
		chart.ChartType = ct
	}
	depth := 1

	for depth > 0 {
		token, err := decoder.RawToken()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch qname(t.Name) {
			case "chart:title":
				chart.Title = parseChartTitle(decoder)
				depth--
			case "chart:plot-area":
				chart.YAxisTitle, chart.Series = parsePlotArea(decoder)
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return chart
}

// parseChartTitle returns the text of a chart:title.
func parseChartTitle(decoder *xml.Decoder) string {
	var parts []string
	depth := 1

	for depth > 0 {
		token, err := decoder.RawToken()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			if qname(t.Name) == "text:p" {
				if tag, err := readXMLTag(decoder, t); err == nil {
					parts = append(parts, strings.TrimSpace(paragraphText(tag)))
				}
				depth--
			}
		case xml.EndElement:
			depth--
		}
	}

	return strings.Join(parts, "\n")
}

// parsePlotArea parses chart:plot-area. Categories come from the x axis
// and apply to every series.
func parsePlotArea(decoder *xml.Decoder) (yAxisTitle string, series []models.ChartSeries) {
	var categories string
	depth := 1

	for depth > 0 {
		token, err := decoder.RawToken()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch qname(t.Name) {
			case "chart:axis":
				title, cat := parseAxis(decoder)
				switch attrs(t)["chart:dimension"] {
				case "x":
					categories = cat
				case "y":
					if yAxisTitle == "" {
						yAxisTitle = title
					}
				}
				depth--
			case "chart:series":
				a := attrs(t)
				series = append(series, models.ChartSeries{
					NameRange: a["chart:label-cell-address"],
					YRange:    a["chart:values-cell-range-address"],
				})
			}
		case xml.EndElement:
			depth--
		}
	}

	for i := range series {
		series[i].XRange = categories
		series[i].Name = seriesName(series[i].NameRange, i)
	}
	return yAxisTitle, series
}

// parseAxis parses chart:axis and returns its title and categories range.
func parseAxis(decoder *xml.Decoder) (title, categories string) {
	depth := 1

	for depth > 0 {
		token, err := decoder.RawToken()
		if err != nil {
			break
		}

		switch t := token.(type) {
		case xml.StartElement:
			depth++
			switch qname(t.Name) {
			case "chart:title":
				title = parseChartTitle(decoder)
				depth--
			case "chart:categories":
				categories = attrs(t)["table:cell-range-address"]
			}
		case xml.EndElement:
			depth--
		}
	}

	return
}

// seriesName falls back to the label cell address, or a positional name
// when the series has no label.
func seriesName(labelAddr string, i int) string {
	if labelAddr != "" {
		return labelAddr
	}
	return "Series" + strconv.Itoa(i+1)
}
