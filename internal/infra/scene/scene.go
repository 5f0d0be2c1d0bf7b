// Package scene is an in-memory map surface. It keeps the sources, layers,
// markers and camera a renderer would draw and can export them as GeoJSON.
package scene

import (
	"slices"
	"sync"

	"trail/internal/domain/entity"
	"trail/internal/domain/service"
	"trail/internal/errors"

	"github.com/paulmach/orb"
)

var (
	ErrNotFound    = errors.New("scene item not found")
	ErrExists      = errors.New("scene item already exists")
	ErrSourceInUse = errors.New("source is used by a layer")
)

// Feature kinds written to the "kind" property of exported features.
const (
	KindSource = "source"
	KindMarker = "marker"
)

// Scene is a headless RenderSurface. It is safe for concurrent use so the
// HTTP layer can read it while a traversal is drawing.
type Scene struct {
	mu      sync.RWMutex
	sources map[string]orb.LineString
	layers  []entity.TrailLayer
	markers map[string]entity.Coordinate
	order   []string // marker ids, insertion order
	camera  entity.Camera
	version uint64
}

var _ service.RenderSurface = (*Scene)(nil)

// New returns an empty scene looking at camera.
func New(camera entity.Camera) *Scene {
	return &Scene{
		sources: make(map[string]orb.LineString),
		markers: make(map[string]entity.Coordinate),
		camera:  camera,
	}
}

func (s *Scene) SetSource(id string, line orb.LineString) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sources[id] = line.Clone()
	s.version++

	return nil
}

func (s *Scene) AddLayer(layer entity.TrailLayer) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sources[layer.SourceID]; !ok {
		return errors.Wrapf(ErrNotFound, "source %s", layer.SourceID)
	}
	if s.layerIndex(layer.ID) >= 0 {
		return errors.Wrapf(ErrExists, "layer %s", layer.ID)
	}

	s.layers = append(s.layers, layer)
	s.version++

	return nil
}

func (s *Scene) RemoveLayer(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.layerIndex(id)
	if i < 0 {
		return errors.Wrapf(ErrNotFound, "layer %s", id)
	}

	s.layers = slices.Delete(s.layers, i, i+1)
	s.version++

	return nil
}

func (s *Scene) RemoveSource(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sources[id]; !ok {
		return errors.Wrapf(ErrNotFound, "source %s", id)
	}
	for _, layer := range s.layers {
		if layer.SourceID == id {
			return errors.Wrapf(ErrSourceInUse, "source %s used by layer %s", id, layer.ID)
		}
	}

	delete(s.sources, id)
	s.version++

	return nil
}

func (s *Scene) AddMarker(id string, at entity.Coordinate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.markers[id]; ok {
		return errors.Wrapf(ErrExists, "marker %s", id)
	}

	s.markers[id] = at
	s.order = append(s.order, id)
	s.version++

	return nil
}

func (s *Scene) MoveMarker(id string, at entity.Coordinate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.markers[id]; !ok {
		return errors.Wrapf(ErrNotFound, "marker %s", id)
	}

	s.markers[id] = at
	s.version++

	return nil
}

func (s *Scene) RemoveMarker(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.markers[id]; !ok {
		return errors.Wrapf(ErrNotFound, "marker %s", id)
	}

	delete(s.markers, id)
	s.order = slices.DeleteFunc(s.order, func(m string) bool { return m == id })
	s.version++

	return nil
}

func (s *Scene) Camera() entity.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.camera
}

func (s *Scene) SetCamera(camera entity.Camera) error {
	if !camera.Center.IsValid() {
		return errors.Errorf("camera center %s out of range", camera.Center)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.camera = camera
	s.version++

	return nil
}

// Version increases on every successful mutation.
func (s *Scene) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.version
}

// Marker returns the position of a marker.
func (s *Scene) Marker(id string) (entity.Coordinate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	at, ok := s.markers[id]

	return at, ok
}

// Source returns a copy of a source geometry.
func (s *Scene) Source(id string) (orb.LineString, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	line, ok := s.sources[id]
	if !ok {
		return nil, false
	}

	return line.Clone(), true
}

// Layers returns the layers in draw order.
func (s *Scene) Layers() []entity.TrailLayer {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Clone(s.layers)
}

func (s *Scene) layerIndex(id string) int {
	return slices.IndexFunc(s.layers, func(l entity.TrailLayer) bool { return l.ID == id })
}
