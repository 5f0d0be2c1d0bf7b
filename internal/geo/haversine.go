// Package geo holds the distance math behind route traversal.
package geo

import (
	"math"

	"trail/internal/domain/entity"
)

// EarthRadiusMeters is the mean Earth radius used by Haversine.
const EarthRadiusMeters = 6371000.0

// Haversine returns the great-circle distance between a and b in meters.
func Haversine(a, b entity.Coordinate) float64 {
	lat1Rad := a.Lat * math.Pi / 180
	lng1Rad := a.Lng * math.Pi / 180
	lat2Rad := b.Lat * math.Pi / 180
	lng2Rad := b.Lng * math.Pi / 180

	deltaLat := lat2Rad - lat1Rad
	deltaLng := lng2Rad - lng1Rad

	h := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLng/2)*math.Sin(deltaLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMeters * c
}

// PathLength sums Haversine over consecutive pairs of path.
func PathLength(path entity.Path) float64 {
	total := 0.0
	for i := 1; i < len(path); i++ {
		total += Haversine(path[i-1], path[i])
	}

	return total
}

// Lerp interpolates linearly between a and b in degree space. The end points
// are returned exactly at fraction 0 and 1.
func Lerp(a, b entity.Coordinate, fraction float64) entity.Coordinate {
	switch {
	case fraction <= 0:
		return a
	case fraction >= 1:
		return b
	}

	return entity.Coordinate{
		Lng: a.Lng + (b.Lng-a.Lng)*fraction,
		Lat: a.Lat + (b.Lat-a.Lat)*fraction,
	}
}
