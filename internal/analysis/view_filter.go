package analysis

import (
	"sort"

	"github.com/stridesense/stridesense-backend-go/internal/models"
)

// ApplyFilter selects the segments and anomalies visible under filter.
//
//   - FilterNone: every segment in its zone color, every anomaly.
//   - A zone filter: segments of that zone, and the anomalies lying inside them.
//   - FilterBlack: segments holding at least one anomaly, recolored black, every anomaly.
//
// Inputs are never modified. anomalies must be ordered by Index.
func ApplyFilter(filter models.FilterState, segments []models.Segment, anomalies []models.Anomaly) models.View {
	view := models.View{
		Filter:    filter,
		Segments:  make([]models.Segment, 0, len(segments)),
		Anomalies: make([]models.Anomaly, 0, len(anomalies)),
	}

	switch filter {
	case models.FilterNone:
		view.Segments = append(view.Segments, segments...)
		view.Anomalies = append(view.Anomalies, anomalies...)

	case models.FilterBlack:
		for _, seg := range segments {
			if countAnomalies(anomalies, seg) == 0 {
				continue
			}
			seg.Color = models.ColorAnomaly
			view.Segments = append(view.Segments, seg)
		}
		view.Anomalies = append(view.Anomalies, anomalies...)

	default:
		zone, ok := filter.Zone()
		if !ok {
			return view
		}
		for _, seg := range segments {
			if seg.Zone == zone {
				view.Segments = append(view.Segments, seg)
			}
		}
		for _, a := range anomalies {
			if insideAny(view.Segments, a.Index) {
				view.Anomalies = append(view.Anomalies, a)
			}
		}
	}

	return view
}

// countAnomalies counts anomalies whose index lies inside seg
func countAnomalies(anomalies []models.Anomaly, seg models.Segment) int {
	lo := sort.Search(len(anomalies), func(i int) bool { return anomalies[i].Index >= seg.StartIndex })
	hi := sort.Search(len(anomalies), func(i int) bool { return anomalies[i].Index > seg.EndIndex })
	return hi - lo
}

func insideAny(segments []models.Segment, index int) bool {
	for _, seg := range segments {
		if seg.Contains(index) {
			return true
		}
	}
	return false
}
