package service

import (
	"trail/internal/domain/entity"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// RenderSurface is the part of a map renderer the traversal needs.
// The animator serialises its own calls; a surface that is also read or
// moved by other callers must be safe for concurrent use.
type RenderSurface interface {
	// SetSource creates the line source or replaces its geometry.
	SetSource(id string, line orb.LineString) error
	// AddLayer draws a styled layer from an existing source.
	AddLayer(layer entity.TrailLayer) error
	RemoveLayer(id string) error
	RemoveSource(id string) error

	AddMarker(id string, at entity.Coordinate) error
	MoveMarker(id string, at entity.Coordinate) error
	RemoveMarker(id string) error

	Camera() entity.Camera
	SetCamera(camera entity.Camera) error
}

// SceneExporter renders a surface's current content as GeoJSON.
type SceneExporter interface {
	FeatureCollection() *geojson.FeatureCollection
}
