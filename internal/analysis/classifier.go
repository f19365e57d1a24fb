package analysis

import "github.com/stridesense/stridesense-backend-go/internal/models"

// Zone thresholds in bpm. A sample belongs to a zone when its heart rate is strictly
// greater than the zone's threshold.
const (
	RedThreshold    = 185.0
	OrangeThreshold = 170.0
	YellowThreshold = 150.0
)

// Classify maps a heart rate to its zone. Zero, negative and NaN values fall back to green.
func Classify(hr float64) models.ZoneLabel {
	switch {
	case hr > RedThreshold:
		return models.ZoneRed
	case hr > OrangeThreshold:
		return models.ZoneOrange
	case hr > YellowThreshold:
		return models.ZoneYellow
	default:
		return models.ZoneGreen
	}
}
