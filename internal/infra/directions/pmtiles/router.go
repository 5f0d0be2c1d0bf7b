package pmtiles

import (
	"context"
	"log/slog"
	"sync"

	"trail/internal/domain/entity"
	domainerrors "trail/internal/domain/errors"
	"trail/internal/domain/service"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/maptile"
	"github.com/pkg/errors"
)

const (
	DefaultRoadLayer        = "transportation"
	DefaultZoomLevel        = 14
	DefaultMaxSnapDistanceM = 500.0

	// boundsPadding widens the search area by about 500 m.
	boundsPadding = 0.005
	// snapEpsilonM treats an endpoint this close to its node as the node.
	snapEpsilonM = 0.5
)

// Options configures a Router. Zero values use the defaults.
type Options struct {
	RoadLayer        string
	ZoomLevel        int
	MaxSnapDistanceM float64
	Logger           *slog.Logger
}

// Router implements service.RouteFetcher with Dijkstra over walkable ways
// read from vector tiles.
type Router struct {
	source          TileSource
	parser          *MVTParser
	zoomLevel       maptile.Zoom
	maxSnapDistance float64
	logger          *slog.Logger

	tileCache   map[maptile.Tile]*WalkGraph
	tileCacheMu sync.RWMutex
}

var _ service.RouteFetcher = (*Router)(nil)

func NewRouter(source TileSource, opts Options) *Router {
	if opts.RoadLayer == "" {
		opts.RoadLayer = DefaultRoadLayer
	}
	if opts.ZoomLevel <= 0 {
		opts.ZoomLevel = DefaultZoomLevel
	}
	if opts.MaxSnapDistanceM <= 0 {
		opts.MaxSnapDistanceM = DefaultMaxSnapDistanceM
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.DiscardHandler)
	}

	return &Router{
		source:          source,
		parser:          NewMVTParser(opts.RoadLayer),
		zoomLevel:       maptile.Zoom(opts.ZoomLevel),
		maxSnapDistance: opts.MaxSnapDistanceM,
		logger:          opts.Logger,
		tileCache:       make(map[maptile.Tile]*WalkGraph),
	}
}

// FetchRoute walks the road network from origin to destination. The path
// starts at origin and ends at destination exactly. Endpoints farther than
// the snap distance from any way, or in disconnected parts of the network,
// yield a nil path.
func (r *Router) FetchRoute(ctx context.Context, origin, destination entity.Coordinate) (entity.Path, error) {
	if !origin.IsValid() || !destination.IsValid() {
		return nil, domainerrors.ErrInvalidCoordinate.WithDetails("origin " + origin.String() + ", destination " + destination.String())
	}

	graph, err := r.buildGraphForArea(ctx, origin, destination)
	if err != nil {
		return nil, err
	}

	sourceID, sourceSnap, ok := graph.FindNearestNode(origin.Point())
	if !ok || sourceSnap > r.maxSnapDistance {
		r.logger.Debug("Origin too far from walkable network",
			slog.String("origin", origin.String()),
			slog.Float64("snap_distance_m", sourceSnap),
		)

		return nil, nil
	}

	targetID, targetSnap, ok := graph.FindNearestNode(destination.Point())
	if !ok || targetSnap > r.maxSnapDistance {
		r.logger.Debug("Destination too far from walkable network",
			slog.String("destination", destination.String()),
			slog.Float64("snap_distance_m", targetSnap),
		)

		return nil, nil
	}

	result := NewPathfinder(graph).ShortestPath(sourceID, targetID)
	if !result.IsReachable {
		r.logger.Debug("Destination unreachable on foot",
			slog.String("origin", origin.String()),
			slog.String("destination", destination.String()),
		)

		return nil, nil
	}

	path := make(entity.Path, 0, len(result.Nodes)+2)
	path = append(path, origin)
	for _, id := range result.Nodes {
		path = appendDistinct(path, entity.CoordinateFromPoint(graph.Nodes[id]))
	}
	path = appendDistinct(path, destination)
	if len(path) == 1 {
		// origin and destination snap to the same spot
		path = append(path, destination)
	}

	r.logger.Debug("Walking route found",
		slog.Int("nodes", len(result.Nodes)),
		slog.Float64("network_distance_m", result.Distance),
		slog.Float64("snap_distance_m", sourceSnap+targetSnap),
	)

	return path, nil
}

// appendDistinct skips a point that repeats the previous one within the
// snap epsilon, keeping the exact endpoints the caller asked for.
func appendDistinct(path entity.Path, c entity.Coordinate) entity.Path {
	if len(path) > 0 && pointDistance(path[len(path)-1].Point(), c.Point()) < snapEpsilonM {
		return path
	}

	return append(path, c)
}

func (r *Router) buildGraphForArea(ctx context.Context, origin, destination entity.Coordinate) (*WalkGraph, error) {
	bound := orb.MultiPoint{origin.Point(), destination.Point()}.Bound().Pad(boundsPadding)

	graph := NewWalkGraph()
	for _, tile := range tilesForBound(bound, r.zoomLevel) {
		if err := ctx.Err(); err != nil {
			return nil, errors.WithStack(err)
		}

		tileGraph, err := r.loadTileGraph(ctx, tile)
		if err != nil {
			r.logger.Debug("Failed to load tile",
				slog.String("tile", tileKey(tile)),
				slog.Any("error", err),
			)

			continue
		}
		graph.Merge(tileGraph)
	}

	return graph, nil
}

func (r *Router) loadTileGraph(ctx context.Context, tile maptile.Tile) (*WalkGraph, error) {
	r.tileCacheMu.RLock()
	if graph, ok := r.tileCache[tile]; ok {
		r.tileCacheMu.RUnlock()

		return graph, nil
	}
	r.tileCacheMu.RUnlock()

	data, err := r.source.Tile(ctx, tile)
	if err != nil {
		return nil, err
	}

	ways, err := r.parser.ParseTile(data, tile)
	if err != nil {
		return nil, err
	}

	graph := NewWalkGraph()
	for i := range ways {
		graph.AddWay(&ways[i])
	}

	r.tileCacheMu.Lock()
	r.tileCache[tile] = graph
	r.tileCacheMu.Unlock()

	return graph, nil
}

// tilesForBound lists the tiles covering bound at zoom.
func tilesForBound(bound orb.Bound, zoom maptile.Zoom) []maptile.Tile {
	minTile := maptile.At(orb.Point{bound.Min.Lon(), bound.Max.Lat()}, zoom)
	maxTile := maptile.At(orb.Point{bound.Max.Lon(), bound.Min.Lat()}, zoom)

	tiles := make([]maptile.Tile, 0, (maxTile.X-minTile.X+1)*(maxTile.Y-minTile.Y+1))
	for x := minTile.X; x <= maxTile.X; x++ {
		for y := minTile.Y; y <= maxTile.Y; y++ {
			tiles = append(tiles, maptile.Tile{X: x, Y: y, Z: zoom})
		}
	}

	return tiles
}
