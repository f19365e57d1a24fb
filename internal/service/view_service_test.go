package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stridesense/stridesense-backend-go/internal/models"
)

var session = &Session{AthleteID: 7, AccessToken: "tok"}

func runSeries() models.PointSeries {
	hrs := []float64{140, 145, 160, 175, 190, 188, 150}
	series := make(models.PointSeries, len(hrs))
	for i, hr := range hrs {
		series[i] = models.Point{Lat: 46 + float64(i)*0.0001, Lng: 7, Time: float64(i * 10), HR: hr}
	}
	return series
}

type fixture struct {
	source     *fakeSource
	activities *memActivities
	streams    *memStreams
	sink       *recordingSink
	svc        *ActivityService
	views      *ViewService
}

func newFixture() *fixture {
	f := &fixture{
		source: &fakeSource{
			activities: []models.ActivitySummary{
				{ID: 1, Name: "Morning Run", StartDateLocal: time.Date(2024, 5, 1, 7, 0, 0, 0, time.UTC)},
				{ID: 2, Name: "Evening Run"},
			},
			series: map[int64]models.PointSeries{1: runSeries()},
		},
		activities: newMemActivities(),
		streams:    newMemStreams(),
		sink:       &recordingSink{},
	}
	f.svc = NewActivityService(f.source, f.activities, f.streams, zerolog.Nop())
	f.views = NewViewService(f.svc, f.sink, zerolog.Nop())
	return f
}

func TestGetViewCachesAnalysis(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	all, err := f.views.GetView(ctx, session, 1, models.FilterNone)
	require.NoError(t, err)
	require.NotNil(t, all.Activity)
	assert.Equal(t, "Morning Run", all.Activity.Name)
	require.NotNil(t, all.Center)
	assert.InDelta(t, 46.0003, all.Center[0], 1e-9)
	assert.NotEmpty(t, all.Segments)

	red, err := f.views.GetView(ctx, session, 1, models.FilterRed)
	require.NoError(t, err)
	for _, seg := range red.Segments {
		assert.Equal(t, models.ZoneRed, seg.Zone)
	}

	assert.Equal(t, 1, f.source.seriesCalls, "filter change must not refetch")
	assert.Equal(t, 1, f.streams.saves)
	assert.Equal(t, 1, f.sink.calls, "filter change must not re-analyze")
	assert.Equal(t, time.Date(2024, 5, 1, 7, 0, 0, 0, time.UTC), f.sink.started)
}

func TestGetViewUsesStreamCacheAfterInvalidate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.views.GetView(ctx, session, 1, models.FilterNone)
	require.NoError(t, err)
	f.views.Invalidate(session.AthleteID, 1)

	_, err = f.views.GetView(ctx, session, 1, models.FilterBlack)
	require.NoError(t, err)
	assert.Equal(t, 1, f.source.seriesCalls)
	assert.Equal(t, 2, f.sink.calls)
}

func TestGetViewErrors(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.views.GetView(ctx, session, 99, models.FilterNone)
	assert.True(t, errors.Is(err, models.ErrNotFound))

	f.source.series[3] = models.PointSeries{{Time: 5}, {Time: 1}}
	_, err = f.views.GetView(ctx, session, 3, models.FilterNone)
	assert.True(t, errors.Is(err, models.ErrInvalidInput))
	assert.Empty(t, f.streams.items[key{7, 3}], "invalid series is not cached")

	f.source.fetchErr = models.ErrUnavailable
	_, err = f.views.GetView(ctx, &Session{AthleteID: 8, AccessToken: "t"}, 1, models.FilterNone)
	assert.True(t, errors.Is(err, models.ErrUnavailable))
}

func TestComputeView(t *testing.T) {
	f := newFixture()

	view, err := f.views.ComputeView(runSeries(), models.FilterBlack)
	require.NoError(t, err)
	assert.Equal(t, models.FilterBlack, view.Filter)
	for _, seg := range view.Segments {
		assert.Equal(t, models.ColorAnomaly, seg.Color)
		assert.Positive(t, seg.AnomalyCount)
	}
	assert.Zero(t, f.sink.calls)

	empty, err := f.views.ComputeView(nil, models.FilterNone)
	require.NoError(t, err)
	assert.Empty(t, empty.Segments)
	assert.Empty(t, empty.Anomalies)
}

func TestResultCacheIsBounded(t *testing.T) {
	f := newFixture()
	for i := int64(0); i < maxCachedResults+10; i++ {
		f.source.series[100+i] = runSeries()
		_, err := f.views.Result(context.Background(), session, 100+i, nil)
		require.NoError(t, err)
	}
	assert.Len(t, f.views.results, maxCachedResults)
}
