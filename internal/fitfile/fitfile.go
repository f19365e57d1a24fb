// Package fitfile reads recorded activities from Garmin FIT files.
package fitfile

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/tormoder/fit"

	"github.com/stridesense/stridesense-backend-go/internal/models"
)

// Activity is a decoded FIT activity
type Activity struct {
	Series  models.PointSeries
	Summary *models.ActivitySummary // nil when the file has no session message
}

// Decode reads the point series of an activity FIT file.
func Decode(r io.Reader) (models.PointSeries, error) {
	act, err := DecodeActivity(r)
	if err != nil {
		return nil, err
	}
	return act.Series, nil
}

// DecodeActivity reads the point series and session summary of an activity FIT file.
func DecodeActivity(r io.Reader) (*Activity, error) {
	decoded, err := fit.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode FIT file: %w", err)
	}

	activity, err := decoded.Activity()
	if err != nil {
		return nil, fmt.Errorf("activity FIT expected: %w", err)
	}

	out := &Activity{Series: Points(activity.Records)}
	if len(activity.Sessions) > 0 {
		s := Summary(activity.Sessions[0], out.Series)
		out.Summary = &s
	}
	return out, nil
}

// Points converts record messages to samples. Records without a timestamp or a valid
// position are skipped; time is seconds since the first kept record.
func Points(records []*fit.RecordMsg) models.PointSeries {
	series := make(models.PointSeries, 0, len(records))

	var start time.Time
	for _, rec := range records {
		if rec == nil || !validTime(rec.Timestamp) {
			continue
		}
		if rec.PositionLat.Invalid() || rec.PositionLong.Invalid() {
			continue
		}
		if start.IsZero() {
			start = rec.Timestamp
		}

		p := models.Point{
			Lat:  rec.PositionLat.Degrees(),
			Lng:  rec.PositionLong.Degrees(),
			Time: rec.Timestamp.Sub(start).Seconds(),
			HR:   heartRate(rec),
		}
		if d := rec.GetDistanceScaled(); !math.IsNaN(d) && !math.IsInf(d, 0) {
			p.Distance = &d
		}
		series = append(series, p)
	}
	return series
}

// Summary builds activity metadata from a session message. AverageHeartrate falls back to
// the series mean when the session does not carry one.
func Summary(session *fit.SessionMsg, series models.PointSeries) models.ActivitySummary {
	s := models.ActivitySummary{
		Name:           fmt.Sprint(session.Sport),
		StartDateLocal: session.StartTime,
	}
	if d := session.GetTotalDistanceScaled(); !math.IsNaN(d) {
		s.Distance = d
	}
	if v := session.GetEnhancedMaxSpeedScaled(); !math.IsNaN(v) {
		s.MaxSpeed = v
	} else if v := session.GetMaxSpeedScaled(); !math.IsNaN(v) {
		s.MaxSpeed = v
	}

	if session.AvgHeartRate != math.MaxUint8 && session.AvgHeartRate != 0 {
		s.AverageHeartrate = float64(session.AvgHeartRate)
	} else if len(series) > 0 {
		var sum float64
		for _, p := range series {
			sum += p.HR
		}
		s.AverageHeartrate = sum / float64(len(series))
	}
	return s
}

func heartRate(rec *fit.RecordMsg) float64 {
	if rec.HeartRate == math.MaxUint8 {
		return 0
	}
	return float64(rec.HeartRate)
}

func validTime(t time.Time) bool {
	return !t.IsZero() && !fit.IsBaseTime(t)
}
