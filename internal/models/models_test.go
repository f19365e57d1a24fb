package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFilterState(t *testing.T) {
	tests := map[string]FilterState{
		"":        FilterNone,
		"none":    FilterNone,
		"GREEN":   FilterGreen,
		" yellow": FilterYellow,
		"orange":  FilterOrange,
		"red":     FilterRed,
		"black":   FilterBlack,
	}
	for in, want := range tests {
		got, err := ParseFilterState(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFilterState("purple")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFilterStateZone(t *testing.T) {
	zone, ok := FilterOrange.Zone()
	assert.True(t, ok)
	assert.Equal(t, ZoneOrange, zone)

	_, ok = FilterNone.Zone()
	assert.False(t, ok)
	_, ok = FilterBlack.Zone()
	assert.False(t, ok)
}

func TestSegmentJSON(t *testing.T) {
	seg := Segment{StartIndex: 1, EndIndex: 4, Zone: ZoneRed, Color: "red"}
	data, err := json.Marshal(seg)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"zone":"red"`)
	assert.Contains(t, string(data), `"avgSpeed":null`)

	var decoded Segment
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, ZoneRed, decoded.Zone)
}

func TestAnomalyJSON(t *testing.T) {
	data, err := json.Marshal(Anomaly{Index: 3, Kind: AnomalyAcceleration})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"type":"Acceleration Anomaly"`)

	var decoded Anomaly
	require.NoError(t, json.Unmarshal([]byte(`{"index":2,"type":"HR Spike"}`), &decoded))
	assert.Equal(t, AnomalyHRSpike, decoded.Kind)
	assert.Error(t, json.Unmarshal([]byte(`{"type":"Bogus"}`), &decoded))
}

func TestViewJSONFilter(t *testing.T) {
	data, err := json.Marshal(View{Filter: FilterBlack})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"filter":"black"`)
}
