package geo

import (
	"sort"

	"trail/internal/domain/entity"
)

const (
	// MinTotalDistance replaces the total length of a degenerate path.
	MinTotalDistance = 1e-6

	// minSegmentLength floors segment lengths during interpolation.
	minSegmentLength = 1e-9
)

// DistanceTable pairs a path with the cumulative distance to every vertex.
// cumulative[0] is 0 and the slice never decreases.
type DistanceTable struct {
	path       entity.Path
	cumulative []float64
}

// NewDistanceTable samples path into a cumulative distance table.
func NewDistanceTable(path entity.Path) *DistanceTable {
	cumulative := make([]float64, len(path))
	for i := 1; i < len(path); i++ {
		cumulative[i] = cumulative[i-1] + Haversine(path[i-1], path[i])
	}

	return &DistanceTable{
		path:       path,
		cumulative: cumulative,
	}
}

// Path returns the sampled path.
func (t *DistanceTable) Path() entity.Path {
	return t.path
}

// Len returns the number of vertices.
func (t *DistanceTable) Len() int {
	return len(t.cumulative)
}

// At returns the cumulative distance to vertex i.
func (t *DistanceTable) At(i int) float64 {
	return t.cumulative[i]
}

// Distances returns a copy of the cumulative table.
func (t *DistanceTable) Distances() []float64 {
	out := make([]float64, len(t.cumulative))
	copy(out, t.cumulative)

	return out
}

// Total returns the path length in meters, never less than MinTotalDistance.
func (t *DistanceTable) Total() float64 {
	if len(t.cumulative) == 0 {
		return MinTotalDistance
	}

	total := t.cumulative[len(t.cumulative)-1]
	if total < MinTotalDistance {
		return MinTotalDistance
	}

	return total
}

// Locate finds the segment containing distance. segment is the index of the
// segment's first vertex and fraction is the position inside it, clamped to
// [0,1]. Paths with fewer than two vertices report segment 0, fraction 0.
func (t *DistanceTable) Locate(distance float64) (segment int, fraction float64) {
	n := len(t.cumulative)
	if n < 2 {
		return 0, 0
	}

	// first vertex strictly beyond distance closes the segment
	idx := sort.Search(n, func(i int) bool { return t.cumulative[i] > distance })
	switch {
	case idx == 0:
		return 0, 0
	case idx >= n:
		return n - 2, 1
	}

	segment = idx - 1
	length := t.cumulative[idx] - t.cumulative[segment]
	if length < minSegmentLength {
		length = minSegmentLength
	}

	return segment, clamp01((distance - t.cumulative[segment]) / length)
}

// PointAt returns the coordinate distance meters along the path.
func (t *DistanceTable) PointAt(distance float64) (entity.Coordinate, int) {
	if len(t.path) == 0 {
		return entity.Coordinate{}, 0
	}
	if len(t.path) == 1 {
		return t.path[0], 0
	}

	segment, fraction := t.Locate(distance)

	return Lerp(t.path[segment], t.path[segment+1], fraction), segment
}

// Interpolate maps progress in [0,1] to a coordinate on the path.
func (t *DistanceTable) Interpolate(progress float64) entity.Coordinate {
	coord, _ := t.PointAt(clamp01(progress) * t.Total())

	return coord
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
