package geo

import (
	"testing"

	"trail/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestHaversine(t *testing.T) {
	tests := []struct {
		name     string
		a, b     entity.Coordinate
		expected float64
		delta    float64
	}{
		{
			name:     "same point",
			a:        entity.Coordinate{Lng: 121.5654, Lat: 25.0330},
			b:        entity.Coordinate{Lng: 121.5654, Lat: 25.0330},
			expected: 0,
			delta:    1e-9,
		},
		{
			name:     "one millidegree north at the equator",
			a:        entity.Coordinate{Lng: 0, Lat: 0},
			b:        entity.Coordinate{Lng: 0, Lat: 0.001},
			expected: 111.19,
			delta:    0.01,
		},
		{
			name:     "one degree east at the equator",
			a:        entity.Coordinate{Lng: 0, Lat: 0},
			b:        entity.Coordinate{Lng: 1, Lat: 0},
			expected: 111194.93,
			delta:    0.5,
		},
		{
			name:     "Bangalore diagonal",
			a:        entity.Coordinate{Lng: 77.63, Lat: 12.93},
			b:        entity.Coordinate{Lng: 77.64, Lat: 12.94},
			expected: 1552.7,
			delta:    0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, Haversine(tt.a, tt.b), tt.delta)
			assert.InDelta(t, Haversine(tt.a, tt.b), Haversine(tt.b, tt.a), 1e-9, "distance should be symmetric")
		})
	}
}

func TestPathLength(t *testing.T) {
	path := entity.Path{
		{Lng: 0, Lat: 0},
		{Lng: 0, Lat: 0.001},
		{Lng: 0.001, Lat: 0.001},
	}

	expected := Haversine(path[0], path[1]) + Haversine(path[1], path[2])
	assert.InDelta(t, expected, PathLength(path), 1e-9)
	assert.Zero(t, PathLength(entity.Path{{Lng: 1, Lat: 1}}))
	assert.Zero(t, PathLength(nil))
}

func TestLerp(t *testing.T) {
	a := entity.Coordinate{Lng: 0.1, Lat: 0.1}
	b := entity.Coordinate{Lng: 0.3, Lat: 0.7}

	assert.Equal(t, a, Lerp(a, b, 0))
	assert.Equal(t, b, Lerp(a, b, 1))
	assert.Equal(t, b, Lerp(a, b, 1.5))

	mid := Lerp(a, b, 0.5)
	assert.InDelta(t, 0.2, mid.Lng, 1e-12)
	assert.InDelta(t, 0.4, mid.Lat, 1e-12)
}
