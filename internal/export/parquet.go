package export

import (
	"fmt"

	parquetbuffer "github.com/xitongsys/parquet-go-source/buffer"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/stridesense/stridesense-backend-go/internal/models"
)

type segmentParquetRow struct {
	StartIndex      int64   `parquet:"name=start_index, type=INT64"`
	EndIndex        int64   `parquet:"name=end_index, type=INT64"`
	Zone            string  `parquet:"name=zone, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	Color           string  `parquet:"name=color, type=BYTE_ARRAY, convertedtype=UTF8, encoding=PLAIN_DICTIONARY"`
	AvgHR           float64 `parquet:"name=avg_hr, type=DOUBLE"`
	DurationSeconds float64 `parquet:"name=duration_s, type=DOUBLE"`
	DistanceMeters  float64 `parquet:"name=distance_m, type=DOUBLE"`
	AvgSpeed        float64 `parquet:"name=avg_speed_mps, type=DOUBLE"`
	HasAvgSpeed     bool    `parquet:"name=has_avg_speed, type=BOOLEAN"`
	AnomalyCount    int64   `parquet:"name=anomaly_count, type=INT64"`
	PointCount      int64   `parquet:"name=point_count, type=INT64"`
}

// SegmentsParquet writes one snappy-compressed parquet row per visible segment.
func SegmentsParquet(view models.View) ([]byte, error) {
	fw := parquetbuffer.NewBufferFile()
	pw, err := writer.NewParquetWriter(fw, new(segmentParquetRow), 4)
	if err != nil {
		return nil, fmt.Errorf("create parquet writer: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY

	for _, seg := range view.Segments {
		row := segmentParquetRow{
			StartIndex:      int64(seg.StartIndex),
			EndIndex:        int64(seg.EndIndex),
			Zone:            seg.Zone.String(),
			Color:           seg.Color,
			AvgHR:           seg.AvgHR,
			DurationSeconds: seg.DurationSeconds,
			DistanceMeters:  seg.DistanceMeters,
			AnomalyCount:    int64(seg.AnomalyCount),
			PointCount:      int64(len(seg.Points)),
		}
		if seg.AvgSpeed != nil {
			row.AvgSpeed = *seg.AvgSpeed
			row.HasAvgSpeed = true
		}
		if err := pw.Write(row); err != nil {
			_ = pw.WriteStop()
			return nil, fmt.Errorf("write parquet row: %w", err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		return nil, fmt.Errorf("finish parquet file: %w", err)
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}
	return append([]byte(nil), fw.Bytes()...), nil
}
