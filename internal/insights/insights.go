// Package insights derives the narrative dashboard insights from the current
// reading and forecast.
package insights

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/envmonitor/envmonitor/internal/airquality"
)

// AcceptableAQI is the highest AQI still considered within acceptable ranges.
const AcceptableAQI = 100

// Recommendation lists.
var (
	elevatedRecommendations = []string{
		"Consider reducing outdoor activities",
		"Keep windows closed during peak hours",
		"Use air purifiers indoors",
	}
	favorableRecommendations = []string{
		"Conditions are favorable for outdoor activities",
		"Good time for natural ventilation",
		"Continue monitoring for changes",
	}
)

// Panel holds the three insight sections.
type Panel struct {
	CurrentAnalysis string   `json:"currentAnalysis"`
	Recommendations []string `json:"recommendations"`
	TrendAnalysis   string   `json:"trendAnalysis"`
	Increasing      bool     `json:"increasing"`
	PeakLabel       string   `json:"peakLabel"`
	Elevated        string   `json:"elevated"`
}

// Build derives every insight section.
func Build(reading airquality.AirQualityData, forecast airquality.ChartData) Panel {
	return Panel{
		CurrentAnalysis: CurrentAnalysis(reading),
		Recommendations: Recommendations(reading),
		TrendAnalysis:   TrendAnalysis(forecast),
		Increasing:      Increasing(forecast),
		PeakLabel:       PeakLabel(forecast),
		Elevated:        MostElevated(reading.Pollutants).Key(),
	}
}

// CurrentAnalysis describes the current AQI and the most elevated pollutant.
func CurrentAnalysis(reading airquality.AirQualityData) string {
	level := "within acceptable ranges"
	if reading.AQI > AcceptableAQI {
		level = "above recommended levels"
	}

	return fmt.Sprintf(
		"Based on current AQI levels and pollutant concentrations, air quality is %s. "+
			"Primary concerns are elevated levels of %s.",
		level, MostElevated(reading.Pollutants).Key(),
	)
}

// MostElevated returns the pollutant with the highest value. Ties go to the
// pollutant that comes first in airquality.AllPollutants.
func MostElevated(p airquality.Pollutants) airquality.Pollutant {
	best := airquality.AllPollutants[0]
	for _, pollutant := range airquality.AllPollutants[1:] {
		if p.Value(pollutant) > p.Value(best) {
			best = pollutant
		}
	}
	return best
}

// Recommendations returns the fixed advice list for the current AQI.
func Recommendations(reading airquality.AirQualityData) []string {
	if reading.AQI > AcceptableAQI {
		return append([]string(nil), elevatedRecommendations...)
	}
	return append([]string(nil), favorableRecommendations...)
}

// TrendAnalysis describes the forecast direction and its expected peak.
func TrendAnalysis(forecast airquality.ChartData) string {
	trend := "improving air quality conditions in the coming hours"
	if Increasing(forecast) {
		trend = "an increasing trend in AQI over the next 24 hours"
	}

	return fmt.Sprintf(
		"AI models predict %s. Peak pollution levels are expected around %s.",
		trend, PeakLabel(forecast),
	)
}

// Increasing reports whether the last forecast value exceeds the first.
func Increasing(forecast airquality.ChartData) bool {
	n := len(forecast.Values)
	if n == 0 {
		return false
	}
	return forecast.Values[n-1] > forecast.Values[0]
}

// PeakLabel returns the label of the first occurrence of the maximum
// forecast value, or "" for an empty forecast.
func PeakLabel(forecast airquality.ChartData) string {
	if len(forecast.Values) == 0 {
		return ""
	}

	values := make([]float64, len(forecast.Values))
	for i, v := range forecast.Values {
		values[i] = float64(v)
	}

	idx := floats.MaxIdx(values)
	if idx >= len(forecast.Labels) {
		return ""
	}
	return forecast.Labels[idx]
}
