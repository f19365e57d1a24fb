package models

import (
	"encoding/json"
	"fmt"
)

// AnomalyKind identifies which detection rule flagged a sample
type AnomalyKind int

const (
	AnomalyHRSpike AnomalyKind = iota
	AnomalyAcceleration
)

func (k AnomalyKind) String() string {
	switch k {
	case AnomalyHRSpike:
		return "HR Spike"
	case AnomalyAcceleration:
		return "Acceleration Anomaly"
	default:
		return fmt.Sprintf("AnomalyKind(%d)", int(k))
	}
}

// MarshalJSON encodes the kind as its display name
func (k AnomalyKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a display name
func (k *AnomalyKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case AnomalyHRSpike.String():
		*k = AnomalyHRSpike
	case AnomalyAcceleration.String():
		*k = AnomalyAcceleration
	default:
		return fmt.Errorf("unknown anomaly kind %q", s)
	}
	return nil
}

// Anomaly is a single sample flagged for an abrupt heart-rate or speed change
type Anomaly struct {
	Index int         `json:"index"`
	Lat   float64     `json:"lat"`
	Lng   float64     `json:"lng"`
	Time  float64     `json:"time"`
	HR    float64     `json:"hr"`
	Kind  AnomalyKind `json:"type"`
}
