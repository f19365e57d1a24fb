package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stridesense/stridesense-backend-go/internal/models"
)

func TestSummarize_Moving(t *testing.T) {
	series := models.PointSeries{
		{Lat: 0, Lng: 0, Time: 0, HR: 140},
		{Lat: latStep, Lng: 0, Time: 10, HR: 150},
		{Lat: 2 * latStep, Lng: 0, Time: 20, HR: 161},
	}
	seg := Summarize(models.Segment{StartIndex: 0, EndIndex: 2}, series)

	assert.Equal(t, 150.3, seg.AvgHR)
	assert.Equal(t, 20.0, seg.DurationSeconds)
	assert.Equal(t, 22.24, seg.DistanceMeters)
	require.NotNil(t, seg.AvgSpeed)
	assert.Equal(t, 1.11, *seg.AvgSpeed)
	assert.Equal(t, "1.11", seg.AvgSpeedText())
}

func TestSummarize_SubRange(t *testing.T) {
	series := models.PointSeries{
		{Lat: 0, Time: 0, HR: 100},
		{Lat: 0, Time: 3, HR: 120},
		{Lat: latStep, Time: 5, HR: 130},
		{Lat: latStep, Time: 9, HR: 200},
	}
	seg := Summarize(models.Segment{StartIndex: 1, EndIndex: 2}, series)

	assert.Equal(t, 125.0, seg.AvgHR)
	assert.Equal(t, 2.0, seg.DurationSeconds)
	assert.Equal(t, 11.12, seg.DistanceMeters)
	require.NotNil(t, seg.AvgSpeed)
	assert.Equal(t, 5.56, *seg.AvgSpeed)
}

func TestSummarize_ZeroDurationIsNotAvailable(t *testing.T) {
	series := models.PointSeries{
		{Lat: 0, Time: 7, HR: 150},
		{Lat: latStep, Time: 7, HR: 150},
	}
	seg := Summarize(models.Segment{StartIndex: 0, EndIndex: 1}, series)

	assert.Equal(t, 0.0, seg.DurationSeconds)
	assert.Equal(t, 11.12, seg.DistanceMeters)
	assert.Nil(t, seg.AvgSpeed)
	assert.Equal(t, models.NotAvailable, seg.AvgSpeedText())
}

func TestSummarize_SinglePoint(t *testing.T) {
	seg := Summarize(models.Segment{StartIndex: 0, EndIndex: 0}, stationary(172))

	assert.Equal(t, 172.0, seg.AvgHR)
	assert.Equal(t, 0.0, seg.DistanceMeters)
	assert.Equal(t, 0.0, seg.DurationSeconds)
	assert.Nil(t, seg.AvgSpeed)
}

func TestSummarize_MissingHeartRateCountsAsZero(t *testing.T) {
	seg := Summarize(models.Segment{StartIndex: 0, EndIndex: 1}, stationary(0, 151))
	assert.Equal(t, 75.5, seg.AvgHR)
}

func TestSummarize_DoesNotMutateInput(t *testing.T) {
	series := stationary(140, 150, 160)
	in := models.Segment{StartIndex: 0, EndIndex: 2, Zone: models.ZoneYellow, Color: "yellow"}
	out := Summarize(in, series)

	assert.Equal(t, 0.0, in.AvgHR)
	assert.Nil(t, in.AvgSpeed)
	assert.Equal(t, models.ZoneYellow, out.Zone)
	assert.Equal(t, "yellow", out.Color)
}

func TestSummarize_OutOfRangeBounds(t *testing.T) {
	seg := Summarize(models.Segment{StartIndex: 2, EndIndex: 5}, stationary(140, 150))
	assert.Equal(t, 0.0, seg.AvgHR)
	assert.Nil(t, seg.AvgSpeed)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 150.3, round(150.333, 1))
	assert.Equal(t, 22.24, round(22.238986, 2))
	assert.Equal(t, -1.5, round(-1.46, 1))
	assert.Equal(t, 0.0, round(0.004, 2))
}
