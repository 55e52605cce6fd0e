package airquality_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/envmonitor/envmonitor/internal/airquality"
)

func TestStatus_Boundaries(t *testing.T) {
	tests := []struct {
		aqi    int
		status string
		color  string
	}{
		{0, "Good", "green"},
		{50, "Good", "green"},
		{51, "Moderate", "yellow"},
		{100, "Moderate", "yellow"},
		{101, "Unhealthy for Sensitive Groups", "orange"},
		{150, "Unhealthy for Sensitive Groups", "orange"},
		{151, "Unhealthy", "red"},
		{200, "Unhealthy", "red"},
		{201, "Very Unhealthy", "purple"},
		{219, "Very Unhealthy", "purple"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.status, airquality.Status(tt.aqi), "status for aqi %d", tt.aqi)
		assert.Equal(t, tt.color, airquality.Color(tt.aqi), "color for aqi %d", tt.aqi)
	}
}

func TestBandFor_CombinesStatusAndColor(t *testing.T) {
	band := airquality.BandFor(120)
	assert.Equal(t, airquality.StatusUnhealthySensitive, band.Status)
	assert.Equal(t, airquality.ColorOrange, band.Color)
}

func TestPollutants_Readouts(t *testing.T) {
	p := airquality.Pollutants{PM25: 12, PM10: 34, O3: 56, NO2: 7}

	readouts := p.Readouts()

	assert.Len(t, readouts, 4)
	assert.Equal(t, airquality.Readout{Pollutant: airquality.PollutantPM25, Label: "PM2.5", Value: 12, Unit: "µg/m³"}, readouts[0])
	assert.Equal(t, airquality.Readout{Pollutant: airquality.PollutantPM10, Label: "PM10", Value: 34, Unit: "µg/m³"}, readouts[1])
	assert.Equal(t, airquality.Readout{Pollutant: airquality.PollutantO3, Label: "O₃", Value: 56, Unit: "ppb"}, readouts[2])
	assert.Equal(t, airquality.Readout{Pollutant: airquality.PollutantNO2, Label: "NO₂", Value: 7, Unit: "ppb"}, readouts[3])
}

func TestPollutant_Key(t *testing.T) {
	assert.Equal(t, "PM25", airquality.PollutantPM25.Key())
	assert.Equal(t, "PM10", airquality.PollutantPM10.Key())
	assert.Equal(t, "O3", airquality.PollutantO3.Key())
	assert.Equal(t, "NO2", airquality.PollutantNO2.Key())
}
