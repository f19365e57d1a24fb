package models

// View is the renderer-facing subset of one analysis for a filter
type View struct {
	Filter    FilterState `json:"filter"`
	Segments  []Segment   `json:"segments"`
	Anomalies []Anomaly   `json:"anomalies"`
}

// ActivityView bundles a view with the activity metadata shown next to the map
type ActivityView struct {
	Activity *ActivitySummary `json:"activity,omitempty"`
	Center   *[2]float64      `json:"center,omitempty"` // [lat, lng] of the middle sample
	View
}
