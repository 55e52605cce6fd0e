package insights_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/envmonitor/envmonitor/internal/airquality"
	"github.com/envmonitor/envmonitor/internal/insights"
)

func risingForecast() airquality.ChartData {
	values := make([]int, 24)
	for i := range values {
		values[i] = 20 + i*4
	}
	values[23] = 119
	return airquality.ChartData{Labels: airquality.HourLabels(), Values: values}
}

func TestCurrentAnalysis_NamesMostElevatedPollutant(t *testing.T) {
	reading := airquality.AirQualityData{
		AQI:        80,
		Pollutants: airquality.Pollutants{PM25: 10, PM10: 169, O3: 5, NO2: 5},
	}

	text := insights.CurrentAnalysis(reading)

	assert.Contains(t, text, "within acceptable ranges")
	assert.Contains(t, text, "elevated levels of PM10.")
}

func TestCurrentAnalysis_AboveRecommended(t *testing.T) {
	assert.Contains(t, insights.CurrentAnalysis(airquality.AirQualityData{AQI: 100}), "within acceptable ranges")
	assert.Contains(t, insights.CurrentAnalysis(airquality.AirQualityData{AQI: 101}), "above recommended levels")
}

func TestMostElevated_TieGoesToFirstKey(t *testing.T) {
	tests := []struct {
		name string
		in   airquality.Pollutants
		want airquality.Pollutant
	}{
		{"all equal", airquality.Pollutants{PM25: 40, PM10: 40, O3: 40, NO2: 40}, airquality.PollutantPM25},
		{"pm10 and o3 tie", airquality.Pollutants{PM25: 1, PM10: 50, O3: 50, NO2: 2}, airquality.PollutantPM10},
		{"no2 highest", airquality.Pollutants{PM25: 1, PM10: 2, O3: 3, NO2: 44}, airquality.PollutantNO2},
		{"o3 and no2 tie", airquality.Pollutants{PM25: 1, PM10: 2, O3: 30, NO2: 30}, airquality.PollutantO3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, insights.MostElevated(tt.in))
		})
	}
}

func TestRecommendations(t *testing.T) {
	high := insights.Recommendations(airquality.AirQualityData{AQI: 150})
	assert.Equal(t, []string{
		"Consider reducing outdoor activities",
		"Keep windows closed during peak hours",
		"Use air purifiers indoors",
	}, high)

	low := insights.Recommendations(airquality.AirQualityData{AQI: 100})
	assert.Equal(t, []string{
		"Conditions are favorable for outdoor activities",
		"Good time for natural ventilation",
		"Continue monitoring for changes",
	}, low)

	// Callers must not be able to mutate the shared lists.
	low[0] = "changed"
	assert.Equal(t, "Conditions are favorable for outdoor activities",
		insights.Recommendations(airquality.AirQualityData{AQI: 10})[0])
}

func TestTrendAnalysis_IncreasingWithPeakAtEnd(t *testing.T) {
	f := risingForecast()

	text := insights.TrendAnalysis(f)

	assert.Contains(t, text, "increasing trend")
	assert.Equal(t, "23:00", insights.PeakLabel(f))
	assert.Contains(t, text, "expected around 23:00.")
}

func TestTrendAnalysis_ImprovingWhenLastNotAboveFirst(t *testing.T) {
	f := risingForecast()
	f.Values[0] = 119
	f.Values[23] = 119

	text := insights.TrendAnalysis(f)

	assert.Contains(t, text, "improving air quality conditions")
	assert.False(t, insights.Increasing(f))
	// First occurrence of the maximum wins.
	assert.Equal(t, "0:00", insights.PeakLabel(f))
}

func TestPeakLabel_Empty(t *testing.T) {
	assert.Equal(t, "", insights.PeakLabel(airquality.ChartData{}))
	assert.False(t, insights.Increasing(airquality.ChartData{}))
}

func TestBuild(t *testing.T) {
	reading := airquality.AirQualityData{
		AQI:        180,
		Pollutants: airquality.Pollutants{PM25: 90, PM10: 30, O3: 10, NO2: 10},
	}

	panel := insights.Build(reading, risingForecast())

	assert.Contains(t, panel.CurrentAnalysis, "above recommended levels")
	assert.Equal(t, "PM25", panel.Elevated)
	assert.Len(t, panel.Recommendations, 3)
	assert.True(t, panel.Increasing)
	assert.Equal(t, "23:00", panel.PeakLabel)
}
