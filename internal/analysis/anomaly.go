package analysis

import (
	"math"

	"github.com/stridesense/stridesense-backend-go/internal/models"
	"github.com/stridesense/stridesense-backend-go/internal/spatial"
)

const (
	// HRSpikeThreshold is the bpm jump between adjacent samples that counts as a spike
	HRSpikeThreshold = 10.0
	// AccelerationThreshold is the speed change around a sample, in m/s², that counts as an anomaly
	AccelerationThreshold = 1.5
	// minTimeStep replaces zero, negative and sub-second time deltas
	minTimeStep = 1.0
)

// DetectAnomalies scans adjacent sample pairs for heart-rate spikes and acceleration spikes.
// The scan is independent of segmentation and of any filter.
func DetectAnomalies(series models.PointSeries) []models.Anomaly {
	anomalies := make([]models.Anomaly, 0)

	for j := 1; j < len(series); j++ {
		prev, curr := series[j-1], series[j]

		hrSpike := math.Abs(curr.HR-prev.HR) > HRSpikeThreshold

		speedBefore := segmentSpeed(prev, curr)
		speedAfter := speedBefore
		if j+1 < len(series) {
			speedAfter = segmentSpeed(curr, series[j+1])
		}
		accelSpike := math.Abs(speedAfter-speedBefore) > AccelerationThreshold

		kind, flagged := anomalyKind(hrSpike, accelSpike)
		if !flagged {
			continue
		}

		anomalies = append(anomalies, models.Anomaly{
			Index: j,
			Lat:   curr.Lat,
			Lng:   curr.Lng,
			Time:  curr.Time,
			HR:    curr.HR,
			Kind:  kind,
		})
	}

	return anomalies
}

// anomalyKind resolves which rule a sample is reported under. HR spikes win ties.
func anomalyKind(hrSpike, accelSpike bool) (models.AnomalyKind, bool) {
	switch {
	case hrSpike:
		return models.AnomalyHRSpike, true
	case accelSpike:
		return models.AnomalyAcceleration, true
	default:
		return 0, false
	}
}

// segmentSpeed is the average speed in m/s between two samples
func segmentSpeed(a, b models.Point) float64 {
	dt := math.Max(b.Time-a.Time, minTimeStep)
	return spatial.HaversineDistance(a.Lat, a.Lng, b.Lat, b.Lng) / dt
}
