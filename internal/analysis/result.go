package analysis

import (
	"github.com/stridesense/stridesense-backend-go/internal/models"
)

// Result holds everything derived from one point series. It is computed once per
// activity; filter changes only call View.
type Result struct {
	Series    models.PointSeries
	Segments  []models.Segment
	Anomalies []models.Anomaly
}

// Analyze validates series, detects anomalies, segments it and summarizes every segment.
// An empty series yields an empty result.
func Analyze(series models.PointSeries) (*Result, error) {
	if err := series.Validate(); err != nil {
		return nil, err
	}

	anomalies := DetectAnomalies(series)
	segments := Segment(series)
	for i := range segments {
		segments[i] = Summarize(segments[i], series)
		segments[i].AnomalyCount = countAnomalies(anomalies, segments[i])
	}

	return &Result{
		Series:    series,
		Segments:  segments,
		Anomalies: anomalies,
	}, nil
}

// View applies filter to the stored segments and anomalies
func (r *Result) View(filter models.FilterState) models.View {
	return ApplyFilter(filter, r.Segments, r.Anomalies)
}

// Center returns the [lat, lng] of the middle sample, nil for an empty series
func (r *Result) Center() *[2]float64 {
	if len(r.Series) == 0 {
		return nil
	}
	mid := r.Series[len(r.Series)/2]
	return &[2]float64{mid.Lat, mid.Lng}
}

// ComputeView analyzes series and applies filter in one call
func ComputeView(series models.PointSeries, filter models.FilterState) (models.View, error) {
	result, err := Analyze(series)
	if err != nil {
		return models.View{}, err
	}
	return result.View(filter), nil
}
