// Package chart builds declarative figure descriptions from filtered launch
// views. Descriptions carry data and labels only; renderers (the browser page
// and internal/render) decide how they are drawn.
package chart

// Kind identifies the figure type.
type Kind string

const (
	KindPie     Kind = "pie"
	KindScatter Kind = "scatter"
)

// Slice is one pie wedge.
type Slice struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Value int    `json:"value"`
}

// Pie describes a pie chart.
type Pie struct {
	Kind   Kind    `json:"kind"`
	Title  string  `json:"title"`
	Slices []Slice `json:"slices"`
}

// Total sums every slice value.
func (p Pie) Total() int {
	total := 0
	for _, s := range p.Slices {
		total += s.Value
	}
	return total
}

// Axis binds a record field to a chart axis.
type Axis struct {
	Field string `json:"field"`
	Label string `json:"label"`
}

// Point is one scatter marker.
type Point struct {
	X                      float64 `json:"x"`
	Y                      int     `json:"y"`
	LaunchSite             string  `json:"launch_site"`
	BoosterVersionCategory string  `json:"booster_version_category"`
}

// Series groups points that share a colour.
type Series struct {
	Name   string  `json:"name"`
	Points []Point `json:"points"`
}

// Scatter describes a scatter chart.
type Scatter struct {
	Kind        Kind     `json:"kind"`
	Title       string   `json:"title"`
	XAxis       Axis     `json:"x_axis"`
	YAxis       Axis     `json:"y_axis"`
	ColorField  string   `json:"color_field"`
	HoverFields []string `json:"hover_fields"`
	Series      []Series `json:"series"`
}

// PointCount returns the number of markers across all series.
func (s Scatter) PointCount() int {
	n := 0
	for _, series := range s.Series {
		n += len(series.Points)
	}
	return n
}

func outcomeLabel(class int) string {
	if class == 1 {
		return "Success"
	}
	return "Failure"
}
