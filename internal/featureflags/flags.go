// Package featureflags provides runtime switches for the dashboard.
package featureflags

import (
	"time"
)

// Well-known feature flag keys.
const (
	// FlagShowInsights shows the AI insights column.
	FlagShowInsights = "show_insights"

	// FlagInteractiveForecastChart embeds the interactive forecast chart
	// below the bar chart.
	FlagInteractiveForecastChart = "interactive_forecast_chart"

	// FlagPauseRefresh freezes both producers on their current values.
	FlagPauseRefresh = "pause_refresh"
)

// Flag represents a feature flag with its current value.
type Flag struct {
	Key       string    `json:"key"`
	Value     bool      `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FlagList represents a list of feature flags.
type FlagList struct {
	Items []Flag `json:"items"`
}

// BoolValue returns the flag value, or defaultValue for a nil flag.
func (f *Flag) BoolValue(defaultValue bool) bool {
	if f == nil {
		return defaultValue
	}
	return f.Value
}

// DefaultFlags returns the default feature flags for the dashboard.
func DefaultFlags() map[string]*Flag {
	now := time.Now()
	return map[string]*Flag{
		FlagShowInsights: {
			Key:       FlagShowInsights,
			Value:     true,
			UpdatedAt: now,
		},
		FlagInteractiveForecastChart: {
			Key:       FlagInteractiveForecastChart,
			Value:     false,
			UpdatedAt: now,
		},
		FlagPauseRefresh: {
			Key:       FlagPauseRefresh,
			Value:     false,
			UpdatedAt: now,
		},
	}
}

// IsKnown reports whether key names one of the dashboard's flags.
func IsKnown(key string) bool {
	_, ok := DefaultFlags()[key]
	return ok
}

// FromOverrides builds flags from a key to value map, e.g. parsed from
// configuration.
func FromOverrides(overrides map[string]bool) []*Flag {
	flags := make([]*Flag, 0, len(overrides))
	for key, value := range overrides {
		flags = append(flags, &Flag{Key: key, Value: value})
	}
	return flags
}
