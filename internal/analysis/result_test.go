package analysis

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stridesense/stridesense-backend-go/internal/models"
)

func TestAnalyze_Empty(t *testing.T) {
	result, err := Analyze(models.PointSeries{})
	require.NoError(t, err)
	assert.Empty(t, result.Segments)
	assert.Empty(t, result.Anomalies)
	assert.Nil(t, result.Center())

	view := result.View(models.FilterNone)
	assert.NotNil(t, view.Segments)
	assert.NotNil(t, view.Anomalies)
}

func TestAnalyze_RejectsNonMonotonicTime(t *testing.T) {
	series := models.PointSeries{
		{Lat: 0, Time: 0},
		{Lat: 0, Time: 5},
		{Lat: 0, Time: 4},
	}
	_, err := Analyze(series)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrInvalidInput))

	var verr *models.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, 2, verr.Index)
	assert.Equal(t, "time", verr.Field)
}

func TestAnalyze_SummarizesAndCountsAnomalies(t *testing.T) {
	series := models.PointSeries{
		{Lat: 0, Time: 0, HR: 140},
		{Lat: latStep, Time: 10, HR: 140},
		{Lat: 2 * latStep, Time: 20, HR: 160},
		{Lat: 3 * latStep, Time: 30, HR: 165},
		{Lat: 4 * latStep, Time: 40, HR: 165},
	}
	result, err := Analyze(series)
	require.NoError(t, err)

	require.Len(t, result.Anomalies, 1)
	assert.Equal(t, 2, result.Anomalies[0].Index)
	assert.Equal(t, models.AnomalyHRSpike, result.Anomalies[0].Kind)

	require.Len(t, result.Segments, 2)
	green, yellow := result.Segments[0], result.Segments[1]
	assert.Equal(t, bounds{0, 2, models.ZoneGreen}, segmentBounds(result.Segments)[0])
	assert.Equal(t, bounds{2, 4, models.ZoneYellow}, segmentBounds(result.Segments)[1])

	assert.Equal(t, 146.7, green.AvgHR)
	assert.Equal(t, 20.0, green.DurationSeconds)
	assert.Equal(t, 22.24, green.DistanceMeters)
	assert.Equal(t, 1, green.AnomalyCount)
	assert.Equal(t, 1, yellow.AnomalyCount)

	assert.Equal(t, &[2]float64{2 * latStep, 0}, result.Center())
}

func TestResult_ViewDoesNotRecompute(t *testing.T) {
	result, err := Analyze(stationary(140, 190, 190, 140, 140))
	require.NoError(t, err)

	before := append([]models.Segment(nil), result.Segments...)
	red := result.View(models.FilterRed)
	black := result.View(models.FilterBlack)
	none := result.View(models.FilterNone)

	assert.Equal(t, before, result.Segments)
	require.Len(t, red.Segments, 1)
	assert.Equal(t, models.ZoneRed, red.Segments[0].Zone)
	assert.NotEmpty(t, black.Segments)
	assert.Equal(t, result.Segments, none.Segments)
}

func TestComputeView(t *testing.T) {
	view, err := ComputeView(stationary(140, 160, 140, 140), models.FilterGreen)
	require.NoError(t, err)
	assert.Equal(t, models.FilterGreen, view.Filter)
	require.Len(t, view.Segments, 2)
	assert.Equal(t, 0, view.Segments[0].StartIndex)
	assert.Equal(t, 2, view.Segments[1].StartIndex)

	_, err = ComputeView(models.PointSeries{{Lat: 91}}, models.FilterNone)
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}
