package models

import (
	"encoding/json"
	"fmt"
)

// ZoneLabel is one of the four ordered heart-rate zones
type ZoneLabel int

const (
	ZoneGreen ZoneLabel = iota
	ZoneYellow
	ZoneOrange
	ZoneRed
)

// ColorAnomaly is the override color for segments surfaced by the anomaly filter
const ColorAnomaly = "black"

// Zones lists every zone in ascending intensity
var Zones = []ZoneLabel{ZoneGreen, ZoneYellow, ZoneOrange, ZoneRed}

func (z ZoneLabel) String() string {
	switch z {
	case ZoneGreen:
		return "green"
	case ZoneYellow:
		return "yellow"
	case ZoneOrange:
		return "orange"
	case ZoneRed:
		return "red"
	default:
		return fmt.Sprintf("ZoneLabel(%d)", int(z))
	}
}

// MarshalJSON encodes the zone as its color name
func (z ZoneLabel) MarshalJSON() ([]byte, error) {
	return json.Marshal(z.String())
}

// UnmarshalJSON decodes a color name
func (z *ZoneLabel) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for _, candidate := range Zones {
		if candidate.String() == s {
			*z = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown zone %q", s)
}
