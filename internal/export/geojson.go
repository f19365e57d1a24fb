// Package export renders analysis views into interchange formats.
package export

import (
	"encoding/json"
	"fmt"

	"github.com/peterstace/simplefeatures/geom"

	"github.com/stridesense/stridesense-backend-go/internal/models"
)

// Feature kinds carried in the "kind" property
const (
	KindSegment = "segment"
	KindAnomaly = "anomaly"
)

// GeoJSON renders a view as a FeatureCollection: one LineString per segment followed by one
// Point per anomaly. Coordinates are [lng, lat]; a segment covering a single sample is
// rendered as a Point.
func GeoJSON(view models.View) ([]byte, error) {
	fc := FeatureCollection(view)
	data, err := json.Marshal(fc)
	if err != nil {
		return nil, fmt.Errorf("marshal geojson: %w", err)
	}
	return data, nil
}

// FeatureCollection builds the features of a view without encoding them.
func FeatureCollection(view models.View) geom.GeoJSONFeatureCollection {
	fc := make(geom.GeoJSONFeatureCollection, 0, len(view.Segments)+len(view.Anomalies))

	for i, seg := range view.Segments {
		fc = append(fc, geom.GeoJSONFeature{
			Geometry:   segmentGeometry(seg),
			ID:         fmt.Sprintf("segment-%d", i),
			Properties: segmentProperties(seg),
		})
	}

	for _, a := range view.Anomalies {
		pt := geom.NewPoint(geom.Coordinates{XY: geom.XY{X: a.Lng, Y: a.Lat}, Type: geom.DimXY})
		fc = append(fc, geom.GeoJSONFeature{
			Geometry: pt.AsGeometry(),
			ID:       fmt.Sprintf("anomaly-%d", a.Index),
			Properties: map[string]interface{}{
				"kind":  KindAnomaly,
				"index": a.Index,
				"type":  a.Kind.String(),
				"hr":    a.HR,
				"time":  a.Time,
				"color": models.ColorAnomaly,
			},
		})
	}
	return fc
}

func segmentGeometry(seg models.Segment) geom.Geometry {
	if len(seg.Points) == 1 {
		p := seg.Points[0]
		return geom.NewPoint(geom.Coordinates{XY: geom.XY{X: p[1], Y: p[0]}, Type: geom.DimXY}).AsGeometry()
	}

	flat := make([]float64, 0, 2*len(seg.Points))
	for _, p := range seg.Points {
		flat = append(flat, p[1], p[0])
	}
	return geom.NewLineString(geom.NewSequence(flat, geom.DimXY)).AsGeometry()
}

func segmentProperties(seg models.Segment) map[string]interface{} {
	props := map[string]interface{}{
		"kind":            KindSegment,
		"startIndex":      seg.StartIndex,
		"endIndex":        seg.EndIndex,
		"zone":            seg.Zone.String(),
		"color":           seg.Color,
		"avgHr":           seg.AvgHR,
		"durationSeconds": seg.DurationSeconds,
		"distanceMeters":  seg.DistanceMeters,
		"avgSpeed":        seg.AvgSpeedText(),
		"anomalyCount":    seg.AnomalyCount,
	}
	return props
}
