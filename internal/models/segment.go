package models

import "strconv"

// NotAvailable is the display value of a speed that cannot be computed
const NotAvailable = "N/A"

// Segment is a maximal contiguous run of samples sharing one heart-rate zone
type Segment struct {
	StartIndex int          `json:"startIndex"`
	EndIndex   int          `json:"endIndex"` // Inclusive
	Zone       ZoneLabel    `json:"zone"`
	Color      string       `json:"color"` // Zone color, or ColorAnomaly when recolored
	Points     [][2]float64 `json:"points"`

	// Summary
	AvgHR           float64  `json:"avgHr"`
	DurationSeconds float64  `json:"durationSeconds"`
	DistanceMeters  float64  `json:"distanceMeters"`
	AvgSpeed        *float64 `json:"avgSpeed"` // m/s, nil when duration is zero

	AnomalyCount int `json:"anomalyCount"`
}

// Len returns the number of samples covered by the segment
func (s Segment) Len() int {
	return s.EndIndex - s.StartIndex + 1
}

// Contains reports whether the sample index lies inside the segment bounds
func (s Segment) Contains(index int) bool {
	return index >= s.StartIndex && index <= s.EndIndex
}

// AvgSpeedText formats the average speed for display
func (s Segment) AvgSpeedText() string {
	if s.AvgSpeed == nil {
		return NotAvailable
	}
	return strconv.FormatFloat(*s.AvgSpeed, 'f', 2, 64)
}
