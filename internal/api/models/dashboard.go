package models

// Pollutants holds pollutant concentrations.
type Pollutants struct {
	PM25 int `json:"pm25"`
	PM10 int `json:"pm10"`
	O3   int `json:"o3"`
	NO2  int `json:"no2"`
}

// Reading is the current air quality reading with its AQI band.
type Reading struct {
	Location   string     `json:"location"`
	AQI        int        `json:"aqi"`
	Status     string     `json:"status"`
	Color      string     `json:"color"`
	Pollutants Pollutants `json:"pollutants"`
	Timestamp  Timestamp  `json:"timestamp"`
}

// ChartMarker is one bar of the forecast chart, positioned in percent.
type ChartMarker struct {
	Label  string  `json:"label"`
	Value  int     `json:"value"`
	Height float64 `json:"height"`
	Left   float64 `json:"left"`
}

// Forecast is the hourly AQI forecast with chart geometry.
type Forecast struct {
	Title       string        `json:"title"`
	Labels      []string      `json:"labels"`
	Values      []int         `json:"values"`
	Markers     []ChartMarker `json:"markers"`
	GeneratedAt Timestamp     `json:"generatedAt"`
}

// Insights holds the three insight sections.
type Insights struct {
	CurrentAnalysis string   `json:"currentAnalysis"`
	Recommendations []string `json:"recommendations"`
	TrendAnalysis   string   `json:"trendAnalysis"`
	Trend           string   `json:"trend"`
	PeakLabel       string   `json:"peakLabel"`
	PrimaryConcern  string   `json:"primaryConcern"`
}

// Trend values.
const (
	TrendIncreasing = "INCREASING"
	TrendImproving  = "IMPROVING"
)

// Dashboard is the full dashboard state.
type Dashboard struct {
	Reading  Reading   `json:"reading"`
	Forecast Forecast  `json:"forecast"`
	Insights *Insights `json:"insights,omitempty"`
}

// FeatureFlag is a single runtime switch.
type FeatureFlag struct {
	Key       string    `json:"key"`
	Value     bool      `json:"value"`
	UpdatedAt Timestamp `json:"updatedAt"`
}

// FeatureFlagList is the response of the feature flag endpoints.
type FeatureFlagList struct {
	Items []FeatureFlag `json:"items"`
}

// FeatureFlagUpdate is the request body for updating flags.
type FeatureFlagUpdate struct {
	Flags map[string]bool `json:"flags"`
}
