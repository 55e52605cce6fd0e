// Package chart turns a forecast into chart geometry and rendered charts.
package chart

import (
	"gonum.org/v1/gonum/floats"

	"github.com/envmonitor/envmonitor/internal/airquality"
)

// ZeroRangeHeight is the bar height, in percent, used for every bar when all
// forecast values are equal and the min-max range is zero.
const ZeroRangeHeight = 50.0

// Marker is one bar of the forecast chart. Height and Left are percentages of
// the plot area.
type Marker struct {
	Label  string  `json:"label"`
	Value  int     `json:"value"`
	Height float64 `json:"height"`
	Left   float64 `json:"left"`
}

// Chart is the renderable geometry of a forecast.
type Chart struct {
	Title   string   `json:"title"`
	Markers []Marker `json:"markers"`
}

// Build computes chart geometry for a forecast.
func Build(data airquality.ChartData, title string) Chart {
	heights := Normalize(data.Values)
	markers := make([]Marker, len(data.Values))
	for i, v := range data.Values {
		markers[i] = Marker{
			Label:  labelAt(data.Labels, i),
			Value:  v,
			Height: heights[i],
			Left:   Position(i, len(data.Values)),
		}
	}

	return Chart{
		Title:   title,
		Markers: markers,
	}
}

// Normalize maps values onto 0..100 relative to their min and max.
// A constant series maps every value to ZeroRangeHeight.
func Normalize(values []int) []float64 {
	if len(values) == 0 {
		return []float64{}
	}

	fs := toFloats(values)
	lo, hi := floats.Min(fs), floats.Max(fs)
	span := hi - lo

	out := make([]float64, len(fs))
	for i, v := range fs {
		if span == 0 {
			out[i] = ZeroRangeHeight
			continue
		}
		out[i] = (v - lo) / span * 100
	}
	return out
}

// Position returns the horizontal offset of point i out of n, so that the
// first point sits at 0% and the last at 100%.
func Position(i, n int) float64 {
	if n <= 1 {
		return 0
	}
	return float64(i) / float64(n-1) * 100
}

func toFloats(values []int) []float64 {
	fs := make([]float64, len(values))
	for i, v := range values {
		fs[i] = float64(v)
	}
	return fs
}

func labelAt(labels []string, i int) string {
	if i < len(labels) {
		return labels[i]
	}
	return ""
}
