package entity

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// Coordinate is a WGS84 position in degrees.
// Field order follows GeoJSON (longitude first).
type Coordinate struct {
	Lng float64 `json:"lng"`
	Lat float64 `json:"lat"`
}

// Path is an ordered route from origin to destination. Paths returned by a
// directions provider are never mutated afterwards.
type Path []Coordinate

// NewCoordinate builds a coordinate from latitude and longitude in the order
// people usually say them.
func NewCoordinate(lat, lng float64) Coordinate {
	return Coordinate{Lng: lng, Lat: lat}
}

// CoordinateFromPoint converts an orb point ([lng, lat]).
func CoordinateFromPoint(p orb.Point) Coordinate {
	return Coordinate{Lng: p[0], Lat: p[1]}
}

// Point returns the coordinate as an orb point.
func (c Coordinate) Point() orb.Point {
	return orb.Point{c.Lng, c.Lat}
}

// IsFinite reports whether both components are real numbers.
func (c Coordinate) IsFinite() bool {
	return !math.IsNaN(c.Lat) && !math.IsNaN(c.Lng) &&
		!math.IsInf(c.Lat, 0) && !math.IsInf(c.Lng, 0)
}

// IsValid reports whether the coordinate is finite and inside Earth bounds.
func (c Coordinate) IsValid() bool {
	return c.IsFinite() &&
		c.Lat >= -90 && c.Lat <= 90 &&
		c.Lng >= -180 && c.Lng <= 180
}

// String renders the coordinate as "lat,lng".
func (c Coordinate) String() string {
	return fmt.Sprintf("%.6f,%.6f", c.Lat, c.Lng)
}

// ParseCoordinate parses a "lat,lng" pair.
func ParseCoordinate(input string) (Coordinate, error) {
	parts := strings.Split(input, ",")
	if len(parts) != 2 {
		return Coordinate{}, errors.Errorf("invalid coordinate %q: expected lat,lng", input)
	}

	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Coordinate{}, errors.Wrapf(err, "invalid latitude in %q", input)
	}

	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Coordinate{}, errors.Wrapf(err, "invalid longitude in %q", input)
	}

	coord := NewCoordinate(lat, lng)
	if !coord.IsValid() {
		return Coordinate{}, errors.Errorf("coordinate %q is outside valid bounds", input)
	}

	return coord, nil
}

// PathFromLineString converts an orb line string into a path.
func PathFromLineString(ls orb.LineString) Path {
	path := make(Path, len(ls))
	for i, p := range ls {
		path[i] = CoordinateFromPoint(p)
	}

	return path
}

// LineString converts the path into an orb line string.
func (p Path) LineString() orb.LineString {
	ls := make(orb.LineString, len(p))
	for i, c := range p {
		ls[i] = c.Point()
	}

	return ls
}

// First returns the first coordinate. The path must not be empty.
func (p Path) First() Coordinate {
	return p[0]
}

// Last returns the last coordinate. The path must not be empty.
func (p Path) Last() Coordinate {
	return p[len(p)-1]
}
