package land

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/litescript/ls-globe/internal/globe"
)

// ErrNoRings is returned when a land document parses but holds no rings.
var ErrNoRings = errors.New("no land rings")

// Parse extracts rings from GeoJSON (FeatureCollection, Feature, Polygon,
// MultiPolygon or GeometryCollection) or from a bare JSON array of rings.
func Parse(data []byte) ([]globe.Ring, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, ErrNoRings
	}

	var (
		rings []globe.Ring
		err   error
	)
	if data[0] == '[' {
		rings, err = parseRingArray(data)
	} else {
		rings, err = parseGeoJSON(data)
	}
	if err != nil {
		return nil, err
	}

	if len(rings) == 0 {
		return nil, ErrNoRings
	}
	return rings, nil
}

// parseRingArray reads [[[lng, lat], ...], ...]. Extra position members
// (altitude) are dropped, as are positions with fewer than two values.
func parseRingArray(data []byte) ([]globe.Ring, error) {
	var raw [][][]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode ring array: %w", err)
	}

	rings := make([]globe.Ring, 0, len(raw))
	for _, positions := range raw {
		ring := make(globe.Ring, 0, len(positions))
		for _, p := range positions {
			if len(p) < 2 {
				continue
			}
			ring = append(ring, [2]float64{p[0], p[1]})
		}
		rings = append(rings, ring)
	}
	return rings, nil
}

func parseGeoJSON(data []byte) ([]globe.Ring, error) {
	var head struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return nil, fmt.Errorf("decode geojson: %w", err)
	}

	switch head.Type {
	case "FeatureCollection":
		fc, err := geojson.UnmarshalFeatureCollection(data)
		if err != nil {
			return nil, fmt.Errorf("decode feature collection: %w", err)
		}
		var rings []globe.Ring
		for _, f := range fc.Features {
			rings = appendGeometry(rings, f.Geometry)
		}
		return rings, nil
	case "Feature":
		f, err := geojson.UnmarshalFeature(data)
		if err != nil {
			return nil, fmt.Errorf("decode feature: %w", err)
		}
		return appendGeometry(nil, f.Geometry), nil
	default:
		g, err := geojson.UnmarshalGeometry(data)
		if err != nil {
			return nil, fmt.Errorf("decode geometry: %w", err)
		}
		return appendGeometry(nil, g.Geometry()), nil
	}
}

// appendGeometry adds the rings of polygonal geometries. Other geometry
// types, and a missing geometry, contribute nothing.
func appendGeometry(dst []globe.Ring, g orb.Geometry) []globe.Ring {
	switch g := g.(type) {
	case orb.Polygon:
		for _, r := range g {
			dst = append(dst, toRing(r))
		}
	case orb.MultiPolygon:
		for _, poly := range g {
			dst = appendGeometry(dst, poly)
		}
	case orb.Collection:
		for _, child := range g {
			dst = appendGeometry(dst, child)
		}
	}
	return dst
}

func toRing(r orb.Ring) globe.Ring {
	ring := make(globe.Ring, len(r))
	for i, p := range r {
		ring[i] = [2]float64(p)
	}
	return ring
}
