package pmtiles

import (
	"context"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/mvt"
	"github.com/paulmach/orb/geojson"
	"github.com/paulmach/orb/maptile"
	"github.com/stretchr/testify/require"
)

// testTile covers central Bangalore at z14.
var testTile = maptile.At(orb.Point{77.5946, 12.9716}, 14)

// way is a test road: class and WGS84 coordinates.
type way struct {
	class  string
	points orb.LineString
}

// offset returns a point dx, dy degrees from the centre of testTile.
func offset(dx, dy float64) orb.Point {
	c := testTile.Bound().Center()

	return orb.Point{c.Lon() + dx, c.Lat() + dy}
}

// encodeTile renders ways as an MVT tile of the given layer.
func encodeTile(t *testing.T, tile maptile.Tile, layerName string, ways ...way) []byte {
	t.Helper()

	fc := geojson.NewFeatureCollection()
	for i, w := range ways {
		f := geojson.NewFeature(w.points.Clone())
		f.ID = float64(i + 1)
		f.Properties["class"] = w.class
		fc.Append(f)
	}

	layer := mvt.NewLayer(layerName, fc)
	layer.ProjectToTile(tile)

	data, err := mvt.Marshal(mvt.Layers{layer})
	require.NoError(t, err)

	return data
}

// memorySource serves tiles from a map and counts fetches per tile.
type memorySource struct {
	tiles   map[maptile.Tile][]byte
	fetches map[maptile.Tile]int
}

func newMemorySource(tiles map[maptile.Tile][]byte) *memorySource {
	return &memorySource{tiles: tiles, fetches: make(map[maptile.Tile]int)}
}

func (s *memorySource) Tile(_ context.Context, tile maptile.Tile) ([]byte, error) {
	s.fetches[tile]++
	data, ok := s.tiles[tile]
	if !ok {
		return nil, ErrTileNotFound
	}

	return data, nil
}
