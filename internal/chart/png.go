package chart

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
	"gonum.org/v1/gonum/floats"

	"github.com/envmonitor/envmonitor/internal/airquality"
)

// RenderPNG writes the forecast as a static PNG bar chart.
func RenderPNG(w io.Writer, data airquality.ChartData, title string) error {
	if len(data.Values) == 0 {
		return fmt.Errorf("rendering forecast png: %w", airquality.ErrInvalidChartData)
	}

	bars := make([]chart.Value, len(data.Values))
	for i, v := range data.Values {
		bars[i] = chart.Value{Value: float64(v), Label: labelAt(data.Labels, i)}
	}

	// Fixed y-range keeps go-chart from dividing by a zero range on flat forecasts.
	top := floats.Max(toFloats(data.Values)) + 10

	graph := chart.BarChart{
		Title: title,
		TitleStyle: chart.Style{
			FontSize:  14,
			FontColor: drawing.ColorBlack,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    40,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Height:     400,
		Width:      1000,
		BarWidth:   24,
		BarSpacing: 12,
		Bars:       bars,
		XAxis: chart.Style{
			FontSize: 8,
		},
		YAxis: chart.YAxis{
			Name: "AQI",
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: top,
			},
			Style: chart.Style{
				FontSize: 10,
			},
		},
	}

	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("rendering forecast png: %w", err)
	}
	return nil
}
