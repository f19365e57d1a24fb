package models

import (
	"fmt"
	"strings"
)

// FilterState is the zone filter chosen by the viewer
type FilterState int

const (
	FilterNone FilterState = iota
	FilterGreen
	FilterYellow
	FilterOrange
	FilterRed
	FilterBlack // Anomalies only
)

func (f FilterState) String() string {
	switch f {
	case FilterNone:
		return "none"
	case FilterGreen:
		return "green"
	case FilterYellow:
		return "yellow"
	case FilterOrange:
		return "orange"
	case FilterRed:
		return "red"
	case FilterBlack:
		return "black"
	default:
		return fmt.Sprintf("FilterState(%d)", int(f))
	}
}

// Zone returns the zone a color filter selects. ok is false for none and black.
func (f FilterState) Zone() (ZoneLabel, bool) {
	switch f {
	case FilterGreen:
		return ZoneGreen, true
	case FilterYellow:
		return ZoneYellow, true
	case FilterOrange:
		return ZoneOrange, true
	case FilterRed:
		return ZoneRed, true
	default:
		return 0, false
	}
}

// MarshalText encodes the filter name
func (f FilterState) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText decodes a filter name, see ParseFilterState
func (f *FilterState) UnmarshalText(text []byte) error {
	parsed, err := ParseFilterState(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// ParseFilterState parses a query value. Empty string means no filter.
func ParseFilterState(s string) (FilterState, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none", "all":
		return FilterNone, nil
	case "green":
		return FilterGreen, nil
	case "yellow":
		return FilterYellow, nil
	case "orange":
		return FilterOrange, nil
	case "red":
		return FilterRed, nil
	case "black", "anomalies":
		return FilterBlack, nil
	default:
		return FilterNone, fmt.Errorf("%w: unknown filter %q", ErrInvalidInput, s)
	}
}

// ViewQuery represents query parameters for the activity view endpoints
type ViewQuery struct {
	Filter string `form:"filter"` // none, green, yellow, orange, red, black
}

// ActivityListQuery represents query parameters for listing activities
type ActivityListQuery struct {
	PerPage int `form:"per_page"`
	Page    int `form:"page"`
}
