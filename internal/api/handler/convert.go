package handler

import (
	"github.com/envmonitor/envmonitor/internal/api/models"
	"github.com/envmonitor/envmonitor/internal/dashboard"
	"github.com/envmonitor/envmonitor/internal/featureflags"
)

func toReading(s dashboard.Snapshot) models.Reading {
	return models.Reading{
		Location: s.Reading.Location,
		AQI:      s.Reading.AQI,
		Status:   s.Band.Status,
		Color:    s.Band.Color,
		Pollutants: models.Pollutants{
			PM25: s.Reading.Pollutants.PM25,
			PM10: s.Reading.Pollutants.PM10,
			O3:   s.Reading.Pollutants.O3,
			NO2:  s.Reading.Pollutants.NO2,
		},
		Timestamp: models.Timestamp(s.Reading.Timestamp),
	}
}

func toForecast(s dashboard.Snapshot) models.Forecast {
	markers := make([]models.ChartMarker, len(s.Chart.Markers))
	for i, m := range s.Chart.Markers {
		markers[i] = models.ChartMarker{
			Label:  m.Label,
			Value:  m.Value,
			Height: m.Height,
			Left:   m.Left,
		}
	}

	return models.Forecast{
		Title:       s.Chart.Title,
		Labels:      s.Forecast.Labels,
		Values:      s.Forecast.Values,
		Markers:     markers,
		GeneratedAt: models.Timestamp(s.ForecastAt),
	}
}

func toInsights(s dashboard.Snapshot) models.Insights {
	trend := models.TrendImproving
	if s.Insights.Increasing {
		trend = models.TrendIncreasing
	}

	return models.Insights{
		CurrentAnalysis: s.Insights.CurrentAnalysis,
		Recommendations: s.Insights.Recommendations,
		TrendAnalysis:   s.Insights.TrendAnalysis,
		Trend:           trend,
		PeakLabel:       s.Insights.PeakLabel,
		PrimaryConcern:  s.Insights.Elevated,
	}
}

func toFlagList(list featureflags.FlagList) models.FeatureFlagList {
	out := models.FeatureFlagList{Items: make([]models.FeatureFlag, len(list.Items))}
	for i, f := range list.Items {
		out.Items[i] = models.FeatureFlag{
			Key:       f.Key,
			Value:     f.Value,
			UpdatedAt: models.Timestamp(f.UpdatedAt),
		}
	}
	return out
}
