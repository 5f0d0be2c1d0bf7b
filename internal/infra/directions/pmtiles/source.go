// Package pmtiles routes walks offline over road tiles stored in a PMTiles
// archive.
package pmtiles

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/paulmach/orb/maptile"
	"github.com/pkg/errors"
	"github.com/protomaps/go-pmtiles/pmtiles"
)

const defaultCacheSize = 64

var ErrTileNotFound = errors.New("tile not found")

// TileSource returns raw MVT bytes for a tile.
type TileSource interface {
	Tile(ctx context.Context, tile maptile.Tile) ([]byte, error)
}

// ArchiveSource reads tiles through a go-pmtiles server. It handles local
// files, HTTP range requests and cloud buckets.
type ArchiveSource struct {
	tilesetName string
	server      *pmtiles.Server
}

// NewArchiveSource opens source, a local path or a file://, http(s)://,
// gs://, s3:// or azblob:// URL of a .pmtiles archive.
func NewArchiveSource(source string, cacheSize int) (*ArchiveSource, error) {
	if source == "" {
		return nil, errors.New("PMTiles source is required")
	}
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}

	bucketPath, prefix, tilesetName := parseSourcePath(source)

	// go-pmtiles wants a *log.Logger
	silentLogger := log.New(io.Discard, "", 0)

	server, err := pmtiles.NewServer(bucketPath, prefix, silentLogger, cacheSize, "")
	if err != nil {
		return nil, errors.Wrap(err, "failed to create PMTiles server")
	}
	server.Start()

	return &ArchiveSource{
		tilesetName: tilesetName,
		server:      server,
	}, nil
}

// Tileset returns the archive name tiles are requested from.
func (s *ArchiveSource) Tileset() string {
	return s.tilesetName
}

// Tile fetches one tile in the server's /{tileset}/{z}/{x}/{y}.mvt form.
func (s *ArchiveSource) Tile(ctx context.Context, tile maptile.Tile) ([]byte, error) {
	tilePath := fmt.Sprintf("/%s/%d/%d/%d.mvt", s.tilesetName, tile.Z, tile.X, tile.Y)

	statusCode, _, data := s.server.Get(ctx, tilePath)

	switch {
	case statusCode == http.StatusNotFound || statusCode == http.StatusNoContent:
		return nil, errors.Wrap(ErrTileNotFound, tileKey(tile))
	case statusCode != http.StatusOK:
		return nil, errors.Errorf("unexpected status code %d for tile %s", statusCode, tileKey(tile))
	}

	return data, nil
}

func tileKey(tile maptile.Tile) string {
	return fmt.Sprintf("%d/%d/%d", tile.Z, tile.X, tile.Y)
}

// parseSourcePath splits a source into the bucket URL, the key prefix inside
// the bucket and the tileset name:
//   - "/path/to/walking.pmtiles" -> ("file:///path/to", "", "walking")
//   - "https://example.com/tiles/walking.pmtiles" -> ("https://example.com/tiles", "", "walking")
//   - "gs://bucket/a/b/walking.pmtiles" -> ("gs://bucket", "a/b", "walking")
func parseSourcePath(source string) (bucketPath, prefix, tilesetName string) {
	for _, scheme := range []string{"gs://", "s3://", "azblob://"} {
		if !strings.HasPrefix(source, scheme) {
			continue
		}

		rest := strings.TrimPrefix(source, scheme)
		bucket, key, _ := strings.Cut(rest, "/")
		dir := path.Dir(key)
		if dir == "." {
			dir = ""
		}

		return scheme + bucket, dir, strings.TrimSuffix(path.Base(key), ".pmtiles")
	}

	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		if lastSlash := strings.LastIndex(source, "/"); lastSlash > len("https://") {
			return source[:lastSlash], "", strings.TrimSuffix(source[lastSlash+1:], ".pmtiles")
		}
	}

	local := strings.TrimPrefix(source, "file://")

	return "file://" + filepath.Dir(local), "", strings.TrimSuffix(filepath.Base(local), ".pmtiles")
}
