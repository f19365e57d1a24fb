package models

import "time"

// ActivitySummary is activity metadata passed through for display only
type ActivitySummary struct {
	ID               int64     `json:"id" db:"activity_id"`
	Name             string    `json:"name" db:"name"`
	Distance         float64   `json:"distance" db:"distance"`                   // Meters
	AverageHeartrate float64   `json:"average_heartrate" db:"average_heartrate"` // bpm
	MaxSpeed         float64   `json:"max_speed" db:"max_speed"`                 // m/s
	SufferScore      int       `json:"suffer_score" db:"suffer_score"`
	StartDateLocal   time.Time `json:"start_date_local" db:"start_date_local"`
}
