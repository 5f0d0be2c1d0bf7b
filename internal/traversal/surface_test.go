package traversal

import (
	"fmt"
	"slices"

	"trail/internal/domain/entity"

	"github.com/paulmach/orb"
)

// fakeSurface records the scene the animator builds. failOn makes the named
// method return an error.
type fakeSurface struct {
	sources map[string]orb.LineString
	layers  []string
	markers map[string]entity.Coordinate
	camera  entity.Camera
	failOn  map[string]bool
	calls   []string
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		sources: make(map[string]orb.LineString),
		markers: make(map[string]entity.Coordinate),
		camera:  entity.Camera{Zoom: 15},
		failOn:  make(map[string]bool),
	}
}

func (s *fakeSurface) fail(method string) error {
	s.calls = append(s.calls, method)
	if s.failOn[method] {
		return fmt.Errorf("%s failed", method)
	}

	return nil
}

func (s *fakeSurface) SetSource(id string, line orb.LineString) error {
	if err := s.fail("SetSource"); err != nil {
		return err
	}
	s.sources[id] = line.Clone()

	return nil
}

func (s *fakeSurface) AddLayer(layer entity.TrailLayer) error {
	if err := s.fail("AddLayer"); err != nil {
		return err
	}
	if _, ok := s.sources[layer.SourceID]; !ok {
		return fmt.Errorf("source %s missing", layer.SourceID)
	}
	if slices.Contains(s.layers, layer.ID) {
		return fmt.Errorf("layer %s exists", layer.ID)
	}
	s.layers = append(s.layers, layer.ID)

	return nil
}

func (s *fakeSurface) RemoveLayer(id string) error {
	if err := s.fail("RemoveLayer"); err != nil {
		return err
	}
	i := slices.Index(s.layers, id)
	if i < 0 {
		return fmt.Errorf("layer %s missing", id)
	}
	s.layers = slices.Delete(s.layers, i, i+1)

	return nil
}

func (s *fakeSurface) RemoveSource(id string) error {
	if err := s.fail("RemoveSource"); err != nil {
		return err
	}
	delete(s.sources, id)

	return nil
}

func (s *fakeSurface) AddMarker(id string, at entity.Coordinate) error {
	if err := s.fail("AddMarker"); err != nil {
		return err
	}
	if _, ok := s.markers[id]; ok {
		return fmt.Errorf("marker %s exists", id)
	}
	s.markers[id] = at

	return nil
}

func (s *fakeSurface) MoveMarker(id string, at entity.Coordinate) error {
	if err := s.fail("MoveMarker"); err != nil {
		return err
	}
	if _, ok := s.markers[id]; !ok {
		return fmt.Errorf("marker %s missing", id)
	}
	s.markers[id] = at

	return nil
}

func (s *fakeSurface) RemoveMarker(id string) error {
	if err := s.fail("RemoveMarker"); err != nil {
		return err
	}
	delete(s.markers, id)

	return nil
}

func (s *fakeSurface) Camera() entity.Camera {
	return s.camera
}

func (s *fakeSurface) SetCamera(camera entity.Camera) error {
	if err := s.fail("SetCamera"); err != nil {
		return err
	}
	s.camera = camera

	return nil
}
