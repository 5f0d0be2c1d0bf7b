package scene

import (
	"sort"

	"trail/internal/domain/entity"

	"github.com/paulmach/orb/geojson"
)

// FeatureCollection renders the scene: one LineString feature per source
// carrying the layers drawn from it, then one Point feature per marker. The
// camera travels as a foreign member of the collection.
func (s *Scene) FeatureCollection() *geojson.FeatureCollection {
	s.mu.RLock()
	defer s.mu.RUnlock()

	fc := geojson.NewFeatureCollection()

	ids := make([]string, 0, len(s.sources))
	for id := range s.sources {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		f := geojson.NewFeature(s.sources[id].Clone())
		f.ID = id
		f.Properties["kind"] = KindSource
		f.Properties["layers"] = s.layersFor(id)
		fc.Append(f)
	}

	for _, id := range s.order {
		f := geojson.NewFeature(s.markers[id].Point())
		f.ID = id
		f.Properties["kind"] = KindMarker
		fc.Append(f)
	}

	fc.ExtraMembers = geojson.Properties{
		"camera":  s.camera,
		"version": s.version,
	}

	return fc
}

func (s *Scene) layersFor(sourceID string) []entity.TrailLayer {
	layers := make([]entity.TrailLayer, 0, len(s.layers))
	for _, layer := range s.layers {
		if layer.SourceID == sourceID {
			layers = append(layers, layer)
		}
	}

	return layers
}
