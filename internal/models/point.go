package models

import (
	"fmt"
	"math"
)

// Point represents one GPS/heart-rate sample of a recorded activity
type Point struct {
	Lat      float64  `json:"lat"`
	Lng      float64  `json:"lng"`
	Time     float64  `json:"time"`               // Elapsed seconds since activity start
	HR       float64  `json:"hr"`                 // Beats per minute, 0 when absent
	Distance *float64 `json:"distance,omitempty"` // Cumulative meters from activity start
}

// PointSeries is the ordered sample sequence of one activity. Index order is temporal order.
type PointSeries []Point

// Validate rejects series whose time or coordinates are malformed. An empty series is valid.
func (s PointSeries) Validate() error {
	lastDistance := math.Inf(-1)
	for i, p := range s {
		if !isFinite(p.Time) {
			return &ValidationError{Index: i, Field: "time", Reason: "not a finite number"}
		}
		if i > 0 && p.Time < s[i-1].Time {
			return &ValidationError{Index: i, Field: "time", Reason: fmt.Sprintf("decreases from %g to %g", s[i-1].Time, p.Time)}
		}
		if !isFinite(p.Lat) || p.Lat < -90 || p.Lat > 90 {
			return &ValidationError{Index: i, Field: "lat", Reason: fmt.Sprintf("%g outside [-90, 90]", p.Lat)}
		}
		if !isFinite(p.Lng) || p.Lng < -180 || p.Lng > 180 {
			return &ValidationError{Index: i, Field: "lng", Reason: fmt.Sprintf("%g outside [-180, 180]", p.Lng)}
		}
		if p.Distance != nil {
			d := *p.Distance
			if !isFinite(d) {
				return &ValidationError{Index: i, Field: "distance", Reason: "not a finite number"}
			}
			if d < lastDistance {
				return &ValidationError{Index: i, Field: "distance", Reason: fmt.Sprintf("decreases from %g to %g", lastDistance, d)}
			}
			lastDistance = d
		}
	}
	return nil
}

// LatLngs returns the [lat, lng] pairs of points[start..end] inclusive
func (s PointSeries) LatLngs(start, end int) [][2]float64 {
	if start < 0 || end >= len(s) || start > end {
		return nil
	}
	out := make([][2]float64, 0, end-start+1)
	for _, p := range s[start : end+1] {
		out = append(out, [2]float64{p.Lat, p.Lng})
	}
	return out
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// PointsResponse represents the raw point series API response
type PointsResponse struct {
	ActivityID int64       `json:"activityId"`
	Points     PointSeries `json:"points"`
	Count      int         `json:"count"`
}
