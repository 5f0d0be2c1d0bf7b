package pmtiles

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/mvt"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/maptile"
	"github.com/pkg/errors"
)

// WayKind is the walking class of a road feature.
type WayKind int

const (
	WayBlocked WayKind = iota
	WayRoad
	WayFootway
)

// blockedClasses are feature classes a pedestrian cannot use.
var blockedClasses = map[string]bool{
	"motorway":      true,
	"motorway_link": true,
	"trunk":         true,
	"trunk_link":    true,
	"rail":          true,
	"transit":       true,
	"ferry":         true,
	"aerialway":     true,
	"busway":        true,
	"raceway":       true,
}

// footClasses are paths built for walking.
var footClasses = map[string]bool{
	"path":       true,
	"footway":    true,
	"pedestrian": true,
	"steps":      true,
	"track":      true,
	"cycleway":   true,
}

// WaySegment is a walkable line extracted from a vector tile.
type WaySegment struct {
	Points    []orb.Point
	Class     string
	Kind      WayKind
	Name      string
	FeatureID uint64
}

// MVTParser extracts walkable ways from MVT tiles.
type MVTParser struct {
	roadLayerName string
}

func NewMVTParser(roadLayerName string) *MVTParser {
	return &MVTParser{
		roadLayerName: roadLayerName,
	}
}

// ParseTile decodes tile data, gzipped or plain, and returns the walkable
// ways of the road layer in WGS84. A tile without the layer yields no ways.
func (p *MVTParser) ParseTile(data []byte, tile maptile.Tile) ([]WaySegment, error) {
	layers, err := mvt.UnmarshalGzipped(data)
	if err != nil {
		layers, err = mvt.Unmarshal(data)
		if err != nil {
			return nil, errors.WithStack(err)
		}
	}

	var roadLayer *mvt.Layer
	for _, layer := range layers {
		if layer.Name == p.roadLayerName {
			roadLayer = layer

			break
		}
	}

	if roadLayer == nil {
		return []WaySegment{}, nil
	}

	roadLayer.ProjectToWGS84(tile)

	segments := make([]WaySegment, 0, len(roadLayer.Features))
	for _, feature := range roadLayer.Features {
		segments = append(segments, p.extractWays(feature)...)
	}

	return segments, nil
}

// extractWays turns one feature into ways. MultiLineString parts stay
// separate so disjoint parts are never joined by a phantom edge.
func (p *MVTParser) extractWays(feature *geojson.Feature) []WaySegment {
	class := p.getStringProperty(feature, "class", "highway", "type")
	kind := classifyWay(class)
	if kind == WayBlocked {
		return nil
	}

	base := WaySegment{
		Class:     class,
		Kind:      kind,
		Name:      p.getStringProperty(feature, "name", "name:latin"),
		FeatureID: p.parseFeatureID(feature.ID),
	}

	var lines []orb.LineString
	switch geom := feature.Geometry.(type) {
	case orb.LineString:
		lines = []orb.LineString{geom}
	case orb.MultiLineString:
		lines = geom
	default:
		return nil
	}

	ways := make([]WaySegment, 0, len(lines))
	for _, line := range lines {
		if len(line) < 2 {
			continue
		}
		way := base
		way.Points = append([]orb.Point(nil), line...)
		ways = append(ways, way)
	}

	return ways
}

func classifyWay(class string) WayKind {
	switch {
	case blockedClasses[class]:
		return WayBlocked
	case footClasses[class]:
		return WayFootway
	default:
		return WayRoad
	}
}

func (p *MVTParser) parseFeatureID(id any) uint64 {
	switch fid := id.(type) {
	case float64:
		return uint64(fid)
	case int:
		return uint64(fid)
	case int64:
		return uint64(fid)
	case uint64:
		return fid
	default:
		return 0
	}
}

func (p *MVTParser) getStringProperty(feature *geojson.Feature, keys ...string) string {
	for _, key := range keys {
		if val, ok := feature.Properties[key]; ok {
			if str, ok := val.(string); ok {
				return str
			}
		}
	}

	return ""
}
