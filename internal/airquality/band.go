package airquality

// Band status labels.
const (
	StatusGood               = "Good"
	StatusModerate           = "Moderate"
	StatusUnhealthySensitive = "Unhealthy for Sensitive Groups"
	StatusUnhealthy          = "Unhealthy"
	StatusVeryUnhealthy      = "Very Unhealthy"
)

// Band color tokens.
const (
	ColorGreen  = "green"
	ColorYellow = "yellow"
	ColorOrange = "orange"
	ColorRed    = "red"
	ColorPurple = "purple"
)

// Band is an AQI category with its display color.
type Band struct {
	Status string `json:"status"`
	Color  string `json:"color"`
}

// bands are ordered by upper bound; the first band whose bound is >= aqi wins.
var bands = []struct {
	max  int
	band Band
}{
	{50, Band{Status: StatusGood, Color: ColorGreen}},
	{100, Band{Status: StatusModerate, Color: ColorYellow}},
	{150, Band{Status: StatusUnhealthySensitive, Color: ColorOrange}},
	{200, Band{Status: StatusUnhealthy, Color: ColorRed}},
}

var veryUnhealthy = Band{Status: StatusVeryUnhealthy, Color: ColorPurple}

// BandFor returns the band an AQI value falls into.
func BandFor(aqi int) Band {
	for _, b := range bands {
		if aqi <= b.max {
			return b.band
		}
	}
	return veryUnhealthy
}

// Status returns the status label for an AQI value.
func Status(aqi int) string {
	return BandFor(aqi).Status
}

// Color returns the color token for an AQI value.
func Color(aqi int) string {
	return BandFor(aqi).Color
}
