package strava

import (
	"time"

	"github.com/stridesense/stridesense-backend-go/internal/models"
)

// Token is the result of an OAuth code exchange
type Token struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	ExpiresAt    int64   `json:"expires_at"` // Unix seconds
	Athlete      Athlete `json:"athlete"`
}

// Expiry returns ExpiresAt as a time
func (t Token) Expiry() time.Time {
	return time.Unix(t.ExpiresAt, 0)
}

// Athlete is the minimal athlete info returned with a token
type Athlete struct {
	ID        int64  `json:"id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

// activity mirrors the fields of an activity resource this service reads
type activity struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Distance         float64   `json:"distance"`
	AverageHeartrate float64   `json:"average_heartrate"`
	MaxSpeed         float64   `json:"max_speed"`
	SufferScore      *int      `json:"suffer_score"`
	StartDateLocal   time.Time `json:"start_date_local"`
}

func (a activity) summary() models.ActivitySummary {
	s := models.ActivitySummary{
		ID:               a.ID,
		Name:             a.Name,
		Distance:         a.Distance,
		AverageHeartrate: a.AverageHeartrate,
		MaxSpeed:         a.MaxSpeed,
		StartDateLocal:   a.StartDateLocal,
	}
	if a.SufferScore != nil {
		s.SufferScore = *a.SufferScore
	}
	return s
}

// streams is the key_by_type stream response
type streams struct {
	LatLng    *streamData[[2]float64] `json:"latlng"`
	Time      *streamData[float64]    `json:"time"`
	Heartrate *streamData[float64]    `json:"heartrate"`
	Distance  *streamData[float64]    `json:"distance"`
}

type streamData[T any] struct {
	Data         []T    `json:"data"`
	SeriesType   string `json:"series_type"`
	OriginalSize int    `json:"original_size"`
}

func (s *streamData[T]) values() []T {
	if s == nil {
		return nil
	}
	return s.Data
}

// pointSeries zips the streams into samples. latlng and time are required; heart rate is
// zipped when the athlete recorded it and left at 0 otherwise.
func (s streams) pointSeries() models.PointSeries {
	latlng := s.LatLng.values()
	times := s.Time.values()
	hr := s.Heartrate.values()
	dist := s.Distance.values()

	n := min(len(latlng), len(times))
	if len(hr) > 0 {
		n = min(n, len(hr))
	}

	series := make(models.PointSeries, n)
	for i := 0; i < n; i++ {
		p := models.Point{
			Lat:  latlng[i][0],
			Lng:  latlng[i][1],
			Time: times[i],
		}
		if len(hr) > 0 {
			p.HR = hr[i]
		}
		if i < len(dist) {
			d := dist[i]
			p.Distance = &d
		}
		series[i] = p
	}
	return series
}
