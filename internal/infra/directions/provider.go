// Package directions selects the route provider named in configuration.
package directions

import (
	"log/slog"

	"trail/config"
	"trail/internal/domain/constants"
	"trail/internal/domain/service"
	"trail/internal/infra/directions/mapbox"
	"trail/internal/infra/directions/pmtiles"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// FetcherParams holds dependencies for the RouteFetcher, injected by Fx
type FetcherParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewRouteFetcher creates a RouteFetcher based on configuration
func NewRouteFetcher(params FetcherParams) (service.RouteFetcher, error) {
	cfg := params.Config.Directions
	logger := params.Logger

	if cfg == nil || cfg.Provider == "" {
		logger.Info("Directions not configured, using straight-line routes")

		return NewStraightFetcher(), nil
	}

	switch cfg.Provider {
	case constants.DirectionsProviderStraight:
		logger.Info("Using straight-line routes")

		return NewStraightFetcher(), nil

	case constants.DirectionsProviderMapbox:
		if cfg.AccessToken == "" {
			return nil, errors.New("access token is required for mapbox provider")
		}
		logger.Info("Using Mapbox directions",
			slog.String("profile", cfg.Profile),
			slog.String("geometries", cfg.Geometries),
		)

		client, err := mapbox.NewClient(mapbox.Options{
			BaseURL:     cfg.BaseURL,
			Profile:     cfg.Profile,
			Geometries:  cfg.Geometries,
			AccessToken: cfg.AccessToken,
			Timeout:     cfg.Timeout,
			Logger:      logger,
		})
		if err != nil {
			return nil, err
		}

		return client, nil

	case constants.DirectionsProviderPMTiles:
		pmCfg := params.Config.PMTiles
		if pmCfg == nil || pmCfg.Source == "" {
			return nil, errors.New("pmtiles.source is required for pmtiles provider")
		}

		source, err := pmtiles.NewArchiveSource(pmCfg.Source, pmCfg.CacheSize)
		if err != nil {
			return nil, err
		}

		logger.Info("Using PMTiles walking router",
			slog.String("source", pmCfg.Source),
			slog.String("tileset", source.Tileset()),
			slog.String("road_layer", pmCfg.RoadLayer),
			slog.Int("zoom_level", pmCfg.ZoomLevel),
		)

		return pmtiles.NewRouter(source, pmtiles.Options{
			RoadLayer:        pmCfg.RoadLayer,
			ZoomLevel:        pmCfg.ZoomLevel,
			MaxSnapDistanceM: pmCfg.MaxSnapDistanceM,
			Logger:           logger,
		}), nil

	default:
		return nil, errors.Errorf("unknown directions provider: %s", cfg.Provider)
	}
}

// Module provides the directions FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewRouteFetcher),
)
