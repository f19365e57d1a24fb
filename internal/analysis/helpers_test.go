package analysis

import "github.com/stridesense/stridesense-backend-go/internal/models"

// stationary builds a series at one location, one sample per second, with the given heart rates
func stationary(hrs ...float64) models.PointSeries {
	series := make(models.PointSeries, len(hrs))
	for i, hr := range hrs {
		series[i] = models.Point{Lat: 46.0, Lng: 7.0, Time: float64(i), HR: hr}
	}
	return series
}

type bounds struct {
	start, end int
	zone       models.ZoneLabel
}

func segmentBounds(segments []models.Segment) []bounds {
	out := make([]bounds, len(segments))
	for i, s := range segments {
		out[i] = bounds{s.StartIndex, s.EndIndex, s.Zone}
	}
	return out
}
