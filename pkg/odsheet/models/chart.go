package models

// ChartSeries represents series metadata for a chart.
type ChartSeries struct {
	// Name is the series display name.
	Name string `json:"name"`
	// NameRange is the cell address of the series label.
	NameRange string `json:"name_range,omitempty"`
	// XRange is the range reference for category values.
	XRange string `json:"x_range,omitempty"`
	// YRange is the range reference for series values.
	YRange string `json:"y_range,omitempty"`
}

// Chart represents an embedded chart object and its layout.
type Chart struct {
	Name       string `json:"name"`
	ChartType  string `json:"chart_type"`
	Title      string `json:"title,omitempty"`
	YAxisTitle string `json:"y_axis_title,omitempty"`
	// W is the chart width in pixels (nil if not verbose mode).
	W *int `json:"w,omitempty"`
	// H is the chart height in pixels (nil if not verbose mode).
	H      *int          `json:"h,omitempty"`
	Series []ChartSeries `json:"series"`
	// L is the left offset in pixels.
	L int `json:"l"`
	// T is the top offset in pixels.
	T int `json:"t"`
}
