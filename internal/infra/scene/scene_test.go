package scene

import (
	"encoding/json"
	"math"
	"testing"

	"trail/internal/domain/entity"
	"trail/internal/errors"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	origin      = entity.NewCoordinate(12.9716, 77.5946)
	destination = entity.NewCoordinate(12.9766, 77.6046)
)

func newTestScene() *Scene {
	return New(entity.Camera{Center: origin, Zoom: 15, Pitch: 45, Bearing: 10})
}

func TestScene_SourceAndLayers(t *testing.T) {
	s := newTestScene()

	line := orb.LineString{origin.Point(), destination.Point()}
	require.NoError(t, s.SetSource("trail", line))

	// stored geometry is a copy
	line[0] = orb.Point{0, 0}
	got, ok := s.Source("trail")
	require.True(t, ok)
	assert.Equal(t, origin.Point(), got[0])

	for _, layer := range entity.DefaultRainbow("trail") {
		require.NoError(t, s.AddLayer(layer))
	}
	assert.Len(t, s.Layers(), 6)

	err := s.AddLayer(entity.DefaultRainbow("trail")[0])
	assert.True(t, errors.Is(err, ErrExists))

	err = s.RemoveSource("trail")
	assert.True(t, errors.Is(err, ErrSourceInUse))

	for _, layer := range entity.DefaultRainbow("trail") {
		require.NoError(t, s.RemoveLayer(layer.ID))
	}
	require.NoError(t, s.RemoveSource("trail"))

	_, ok = s.Source("trail")
	assert.False(t, ok)
}

func TestScene_NotFound(t *testing.T) {
	s := newTestScene()

	tests := []struct {
		name string
		call func() error
	}{
		{name: "layer without source", call: func() error {
			return s.AddLayer(entity.TrailLayer{ID: "l", SourceID: "missing"})
		}},
		{name: "remove layer", call: func() error { return s.RemoveLayer("missing") }},
		{name: "remove source", call: func() error { return s.RemoveSource("missing") }},
		{name: "move marker", call: func() error { return s.MoveMarker("missing", origin) }},
		{name: "remove marker", call: func() error { return s.RemoveMarker("missing") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrNotFound))
		})
	}
}

func TestScene_Markers(t *testing.T) {
	s := newTestScene()

	require.NoError(t, s.AddMarker("walker", origin))
	assert.True(t, errors.Is(s.AddMarker("walker", origin), ErrExists))

	require.NoError(t, s.MoveMarker("walker", destination))
	at, ok := s.Marker("walker")
	require.True(t, ok)
	assert.Equal(t, destination, at)

	require.NoError(t, s.RemoveMarker("walker"))
	_, ok = s.Marker("walker")
	assert.False(t, ok)
}

func TestScene_Camera(t *testing.T) {
	s := newTestScene()

	require.NoError(t, s.SetCamera(s.Camera().WithCenter(destination)))
	assert.Equal(t, entity.Camera{Center: destination, Zoom: 15, Pitch: 45, Bearing: 10}, s.Camera())

	err := s.SetCamera(entity.Camera{Center: entity.NewCoordinate(math.NaN(), 0)})
	require.Error(t, err)
	assert.Equal(t, destination, s.Camera().Center)
}

func TestScene_VersionTracksMutations(t *testing.T) {
	s := newTestScene()
	v0 := s.Version()

	require.NoError(t, s.AddMarker("walker", origin))
	v1 := s.Version()
	assert.Greater(t, v1, v0)

	_ = s.RemoveMarker("missing")
	assert.Equal(t, v1, s.Version())
}

func TestScene_FeatureCollection(t *testing.T) {
	s := newTestScene()

	require.NoError(t, s.SetSource("trail", orb.LineString{origin.Point(), destination.Point()}))
	require.NoError(t, s.AddLayer(entity.TrailLayer{ID: "trail-band-0", SourceID: "trail", Color: "#ff3b30", Width: 8}))
	require.NoError(t, s.AddMarker("walker", destination))

	data, err := json.Marshal(s.FeatureCollection())
	require.NoError(t, err)

	fc, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	require.Len(t, fc.Features, 2)

	trail := fc.Features[0]
	assert.Equal(t, "trail", trail.ID)
	assert.Equal(t, KindSource, trail.Properties.MustString("kind"))
	assert.Equal(t, orb.LineString{origin.Point(), destination.Point()}, trail.Geometry)
	layers, ok := trail.Properties["layers"].([]any)
	require.True(t, ok)
	assert.Len(t, layers, 1)

	walker := fc.Features[1]
	assert.Equal(t, "walker", walker.ID)
	assert.Equal(t, KindMarker, walker.Properties.MustString("kind"))
	assert.Equal(t, destination.Point(), walker.Geometry)

	camera, ok := fc.ExtraMembers["camera"].(map[string]any)
	require.True(t, ok)
	assert.InDelta(t, 15, camera["zoom"], 1e-9)
}
