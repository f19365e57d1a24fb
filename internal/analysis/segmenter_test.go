package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stridesense/stridesense-backend-go/internal/models"
)

func TestSegment_Empty(t *testing.T) {
	assert.Empty(t, Segment(nil))
	assert.Empty(t, Segment(models.PointSeries{}))
}

func TestSegment_SinglePoint(t *testing.T) {
	assert.Empty(t, Segment(stationary(190)))
}

func TestSegment_UniformZone(t *testing.T) {
	segments := Segment(stationary(120, 130, 140, 150))
	require.Len(t, segments, 1)
	assert.Equal(t, bounds{0, 3, models.ZoneGreen}, segmentBounds(segments)[0])
	assert.Equal(t, "green", segments[0].Color)
	assert.Len(t, segments[0].Points, 4)
}

func TestSegment_SharedBoundaries(t *testing.T) {
	segments := Segment(stationary(140, 160, 140, 140))
	assert.Equal(t, []bounds{
		{0, 1, models.ZoneGreen},
		{1, 2, models.ZoneYellow},
		{2, 3, models.ZoneGreen},
	}, segmentBounds(segments))
}

func TestSegment_ZoneChangeOnLastSample(t *testing.T) {
	segments := Segment(stationary(140, 160, 160, 140))
	assert.Equal(t, []bounds{
		{0, 1, models.ZoneGreen},
		{1, 3, models.ZoneYellow},
		{3, 3, models.ZoneGreen},
	}, segmentBounds(segments))
	assert.Equal(t, [][2]float64{{46.0, 7.0}}, segments[2].Points)
}

func TestSegment_TwoPointsDifferentZones(t *testing.T) {
	segments := Segment(stationary(100, 190))
	assert.Equal(t, []bounds{
		{0, 1, models.ZoneGreen},
		{1, 1, models.ZoneRed},
	}, segmentBounds(segments))
}

func TestSegment_Coverage(t *testing.T) {
	hrs := []float64{100, 155, 155, 172, 190, 190, 188, 160, 120, 120, 0, 175, 175, 175, 186}
	series := stationary(hrs...)
	segments := Segment(series)
	require.NotEmpty(t, segments)

	assert.Equal(t, 0, segments[0].StartIndex)
	assert.Equal(t, len(series)-1, segments[len(segments)-1].EndIndex)
	for k := 0; k+1 < len(segments); k++ {
		assert.Equal(t, segments[k].EndIndex, segments[k+1].StartIndex, "segment %d", k)
		assert.Less(t, segments[k].StartIndex, segments[k+1].StartIndex)
	}
	for _, seg := range segments {
		if seg.Len() > 1 {
			// Every sample but the closing one carries the segment's zone
			for i := seg.StartIndex; i < seg.EndIndex; i++ {
				assert.Equal(t, seg.Zone, Classify(series[i].HR), "index %d", i)
			}
		}
	}
}

func TestSegment_Idempotent(t *testing.T) {
	series := stationary(100, 155, 172, 190, 160, 120)
	assert.Equal(t, Segment(series), Segment(series))
}

func TestSegment_DoesNotMutateSeries(t *testing.T) {
	series := stationary(100, 155, 172)
	snapshot := append(models.PointSeries(nil), series...)
	Segment(series)
	assert.Equal(t, snapshot, series)
}
