// Package influx forwards analysis results to InfluxDB as time series points.
package influx

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	influxdb2_api "github.com/influxdata/influxdb-client-go/v2/api"
	influxdb2_write "github.com/influxdata/influxdb-client-go/v2/api/write"
	"github.com/rs/zerolog"

	"github.com/stridesense/stridesense-backend-go/internal/analysis"
)

// Measurement names
const (
	MeasurementSegment = "hr_segment"
	MeasurementAnomaly = "hr_anomaly"
)

// Options configures a Sink
type Options struct {
	URL    string
	Token  string
	Org    string
	Bucket string
}

// Sink writes segment and anomaly points through a non-blocking write API.
type Sink struct {
	client influxdb2.Client
	writer influxdb2_api.WriteAPI
	bucket string
	log    zerolog.Logger
}

// NewSink connects to InfluxDB and returns a sink for one bucket. The server must answer
// a ping; write errors after that are logged, not returned.
func NewSink(ctx context.Context, opts Options, log zerolog.Logger) (*Sink, error) {
	if opts.URL == "" || opts.Bucket == "" {
		return nil, errors.New("influx url and bucket are required")
	}

	client := influxdb2.NewClientWithOptions(
		opts.URL,
		opts.Token,
		influxdb2.DefaultOptions().
			SetBatchSize(500).
			SetFlushInterval(1000),
	)

	running, err := client.Ping(ctx)
	if err != nil || !running {
		client.Close()
		if err == nil {
			err = errors.New("server not ready")
		}
		return nil, fmt.Errorf("influx ping %s: %w", opts.URL, err)
	}

	s := &Sink{
		client: client,
		writer: client.WriteAPI(opts.Org, opts.Bucket),
		bucket: opts.Bucket,
		log:    log,
	}

	go func(errorsCh <-chan error) {
		for writeErr := range errorsCh {
			s.log.Error().Err(writeErr).Str("bucket", s.bucket).
				Msg("Error sending data to InfluxDB")
		}
	}(s.writer.Errors())

	log.Info().Str("url", opts.URL).Str("bucket", opts.Bucket).Msg("InfluxDB sink initialized")
	return s, nil
}

// Record queues the points of one analyzed activity.
func (s *Sink) Record(_ context.Context, athleteID, activityID int64, start time.Time, result *analysis.Result) error {
	if result == nil {
		return nil
	}
	points := Points(athleteID, activityID, start, result)
	for _, p := range points {
		s.writer.WritePoint(p)
	}
	s.log.Debug().
		Int64("activity_id", activityID).
		Int("points", len(points)).
		Msg("Queued activity points")
	return nil
}

// Close flushes pending writes and releases the client.
func (s *Sink) Close() {
	s.writer.Flush()
	s.client.Close()
}

// Points builds one hr_segment point per segment and one hr_anomaly point per anomaly.
// Point time is start plus the sample's time offset.
func Points(athleteID, activityID int64, start time.Time, result *analysis.Result) []*influxdb2_write.Point {
	athlete := strconv.FormatInt(athleteID, 10)
	activity := strconv.FormatInt(activityID, 10)
	at := func(index int) time.Time {
		if index < 0 || index >= len(result.Series) {
			return start
		}
		return start.Add(time.Duration(result.Series[index].Time * float64(time.Second)))
	}

	points := make([]*influxdb2_write.Point, 0, len(result.Segments)+len(result.Anomalies))
	for _, seg := range result.Segments {
		p := influxdb2_write.NewPointWithMeasurement(MeasurementSegment).
			AddTag("athlete_id", athlete).
			AddTag("activity_id", activity).
			AddTag("zone", seg.Zone.String()).
			AddField("start_index", seg.StartIndex).
			AddField("end_index", seg.EndIndex).
			AddField("avg_hr", seg.AvgHR).
			AddField("duration_s", seg.DurationSeconds).
			AddField("distance_m", seg.DistanceMeters).
			AddField("anomaly_count", seg.AnomalyCount).
			SetTime(at(seg.StartIndex))
		if seg.AvgSpeed != nil {
			p.AddField("avg_speed_mps", *seg.AvgSpeed)
		}
		points = append(points, p)
	}

	for _, a := range result.Anomalies {
		p := influxdb2_write.NewPointWithMeasurement(MeasurementAnomaly).
			AddTag("athlete_id", athlete).
			AddTag("activity_id", activity).
			AddTag("type", a.Kind.String()).
			AddField("index", a.Index).
			AddField("hr", a.HR).
			AddField("lat", a.Lat).
			AddField("lng", a.Lng).
			SetTime(at(a.Index))
		points = append(points, p)
	}
	return points
}
