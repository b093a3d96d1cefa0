package globe

import (
	"encoding/json"
	"strings"
)

// GeoPoint is a labeled geographic coordinate.
type GeoPoint struct {
	Lat   float64
	Lng   float64
	Label string
}

// DefaultUnknownLocation is where entities without usable coordinates are
// pinned.
var DefaultUnknownLocation = GeoPoint{Lat: 21.3069, Lng: -157.8583, Label: "Unknown (Hawaii)"}

// Location is one aggregated point entity. It is supplied by the data
// pipeline and never modified by the globe.
type Location struct {
	Key       string          `json:"key,omitempty"`
	Label     string          `json:"label"`
	Lat       *float64        `json:"lat"`
	Lng       *float64        `json:"lng"`
	Count     int             `json:"count"`
	Employees json.RawMessage `json:"employees,omitempty"`
}

// Coordinates resolves the location's position. If either coordinate is
// absent or not a finite number the whole position falls back to unknown.
func (l *Location) Coordinates(unknown GeoPoint) (lat, lng float64) {
	if l.Lat == nil || l.Lng == nil || !isFinite(*l.Lat) || !isFinite(*l.Lng) {
		return unknown.Lat, unknown.Lng
	}
	return *l.Lat, *l.Lng
}

// HasLabel reports whether the label has visible text.
func (l *Location) HasLabel() bool {
	return strings.TrimSpace(l.Label) != ""
}

// rendered reports whether the entity takes part in drawing and
// hit-testing.
func (l *Location) rendered() bool {
	return l != nil && l.Count > 0
}
