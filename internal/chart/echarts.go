package chart

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/envmonitor/envmonitor/internal/airquality"
)

// RenderECharts writes a standalone interactive forecast page.
func RenderECharts(w io.Writer, data airquality.ChartData, title string) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: title,
			Theme:     types.ThemeWesteros,
			Width:     "100%",
			Height:    "320px",
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: "Next 24 hours",
		}),
		charts.WithXAxisOpts(opts.XAxis{
			Name: "Hour",
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Name: "AQI",
		}),
	)

	series := make([]opts.BarData, len(data.Values))
	for i, v := range data.Values {
		series[i] = opts.BarData{Value: v}
	}

	bar.SetXAxis(data.Labels).
		AddSeries("Forecast AQI", series)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("rendering interactive forecast: %w", err)
	}
	return nil
}
