package analysis

import "github.com/stridesense/stridesense-backend-go/internal/models"

// Segment partitions the series into runs of equal zone in a single pass.
//
// A run is closed when the zone changes or the series ends. The closing sample is shared:
// it ends the closed segment and starts the next one, so segment k's EndIndex equals
// segment k+1's StartIndex. When the very last sample changes zone it is emitted as a
// one-sample segment of its own. Series shorter than two samples have no segments.
func Segment(series models.PointSeries) []models.Segment {
	n := len(series)
	segments := make([]models.Segment, 0)
	if n < 2 {
		return segments
	}

	currentZone := Classify(series[0].HR)
	startIndex := 0

	for i := 1; i < n; i++ {
		pointZone := Classify(series[i].HR)
		last := i == n-1
		if pointZone == currentZone && !last {
			continue
		}

		// The open run always holds at least two samples here: startIndex < i.
		segments = append(segments, newSegment(series, startIndex, i, currentZone))
		if last && pointZone != currentZone {
			segments = append(segments, newSegment(series, i, i, pointZone))
		}

		currentZone = pointZone
		startIndex = i
	}

	return segments
}

func newSegment(series models.PointSeries, start, end int, zone models.ZoneLabel) models.Segment {
	return models.Segment{
		StartIndex: start,
		EndIndex:   end,
		Zone:       zone,
		Color:      zone.String(),
		Points:     series.LatLngs(start, end),
	}
}
