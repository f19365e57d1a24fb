package analysis

import (
	"math"

	"github.com/stridesense/stridesense-backend-go/internal/models"
	"github.com/stridesense/stridesense-backend-go/internal/spatial"
)

// Summarize returns a copy of seg with its distance, duration, average heart rate and
// average speed filled in from the samples it covers. Missing heart rate counts as 0.
func Summarize(seg models.Segment, series models.PointSeries) models.Segment {
	out := seg
	out.AvgSpeed = nil
	if seg.StartIndex < 0 || seg.EndIndex >= len(series) || seg.StartIndex > seg.EndIndex {
		return out
	}

	points := series[seg.StartIndex : seg.EndIndex+1]

	var hrSum, duration, distance float64
	for i, p := range points {
		hrSum += p.HR
		if i == 0 {
			continue
		}
		prev := points[i-1]
		duration += p.Time - prev.Time
		distance += spatial.HaversineDistance(prev.Lat, prev.Lng, p.Lat, p.Lng)
	}

	out.AvgHR = round(hrSum/float64(len(points)), 1)
	out.DurationSeconds = round(duration, 1)
	out.DistanceMeters = round(distance, 2)

	if out.DurationSeconds > 0 {
		speed := round(out.DistanceMeters/out.DurationSeconds, 2)
		out.AvgSpeed = &speed
	}

	return out
}

// round rounds half away from zero to the given number of decimals
func round(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
