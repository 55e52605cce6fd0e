// Package airquality provides the air quality data model, AQI bands and the
// reading and forecast sources that feed the dashboard.
package airquality

import (
	"errors"
	"fmt"
	"time"
)

// Source errors.
var (
	ErrInvalidChartData = errors.New("invalid chart data")
	ErrEmptyReplay      = errors.New("replay source has no recorded values")
)

// ForecastHours is the number of hourly points in a forecast.
const ForecastHours = 24

// TimestampLayout is the ISO-8601 layout used when a reading is serialized.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Pollutant identifies one of the tracked pollutants.
type Pollutant string

const (
	PollutantPM25 Pollutant = "pm25"
	PollutantPM10 Pollutant = "pm10"
	PollutantO3   Pollutant = "o3"
	PollutantNO2  Pollutant = "no2"
)

// AllPollutants lists the pollutants in their canonical scan order.
// Tie-breaking rules that pick "the first maximum" depend on this order.
var AllPollutants = []Pollutant{PollutantPM25, PollutantPM10, PollutantO3, PollutantNO2}

// Key returns the upper-cased key, e.g. "PM25".
func (p Pollutant) Key() string {
	switch p {
	case PollutantPM25:
		return "PM25"
	case PollutantPM10:
		return "PM10"
	case PollutantO3:
		return "O3"
	case PollutantNO2:
		return "NO2"
	default:
		return string(p)
	}
}

// Label returns the display label used on the reading card.
func (p Pollutant) Label() string {
	switch p {
	case PollutantPM25:
		return "PM2.5"
	case PollutantPM10:
		return "PM10"
	case PollutantO3:
		return "O₃"
	case PollutantNO2:
		return "NO₂"
	default:
		return string(p)
	}
}

// Unit returns the measurement unit shown next to a value.
func (p Pollutant) Unit() string {
	switch p {
	case PollutantPM25, PollutantPM10:
		return "µg/m³"
	default:
		return "ppb"
	}
}

// Pollutants holds the current pollutant concentrations.
// Fields are independent; pm10 is not constrained to be >= pm25.
type Pollutants struct {
	PM25 int `json:"pm25"`
	PM10 int `json:"pm10"`
	O3   int `json:"o3"`
	NO2  int `json:"no2"`
}

// Value returns the concentration for a pollutant.
func (p Pollutants) Value(pollutant Pollutant) int {
	switch pollutant {
	case PollutantPM25:
		return p.PM25
	case PollutantPM10:
		return p.PM10
	case PollutantO3:
		return p.O3
	case PollutantNO2:
		return p.NO2
	default:
		return 0
	}
}

// Readout is a single labeled pollutant value.
type Readout struct {
	Pollutant Pollutant
	Label     string
	Value     int
	Unit      string
}

// Readouts returns the four readouts in display order.
func (p Pollutants) Readouts() []Readout {
	readouts := make([]Readout, 0, len(AllPollutants))
	for _, pollutant := range AllPollutants {
		readouts = append(readouts, Readout{
			Pollutant: pollutant,
			Label:     pollutant.Label(),
			Value:     p.Value(pollutant),
			Unit:      pollutant.Unit(),
		})
	}
	return readouts
}

// AirQualityData is a single point-in-time reading for one location.
// Readings are value types: a new reading replaces the previous one wholesale.
type AirQualityData struct {
	Location   string     `json:"location"`
	AQI        int        `json:"aqi"`
	Pollutants Pollutants `json:"pollutants"`
	Timestamp  time.Time  `json:"timestamp"`
}

// ISOTimestamp returns the reading time in UTC ISO-8601 form.
func (d AirQualityData) ISOTimestamp() string {
	return d.Timestamp.UTC().Format(TimestampLayout)
}

// ChartData is an hourly forecast. Labels[i] pairs with Values[i].
type ChartData struct {
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
}

// Validate checks that the forecast has one value per hour label.
func (c ChartData) Validate() error {
	if len(c.Labels) != len(c.Values) {
		return fmt.Errorf("%w: %d labels for %d values", ErrInvalidChartData, len(c.Labels), len(c.Values))
	}
	if len(c.Values) != ForecastHours {
		return fmt.Errorf("%w: expected %d points, got %d", ErrInvalidChartData, ForecastHours, len(c.Values))
	}
	return nil
}

// Clone returns a copy that shares no backing arrays with c.
func (c ChartData) Clone() ChartData {
	return ChartData{
		Labels: append([]string(nil), c.Labels...),
		Values: append([]int(nil), c.Values...),
	}
}

// HourLabels returns the hour labels "0:00" through "23:00".
func HourLabels() []string {
	labels := make([]string, ForecastHours)
	for i := range labels {
		labels[i] = fmt.Sprintf("%d:00", i)
	}
	return labels
}
