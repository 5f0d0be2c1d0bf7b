package impl

import (
	"context"
	"log/slog"

	deliverycontext "trail/internal/delivery/context"
	"trail/internal/domain/entity"
	domainerrors "trail/internal/domain/errors"
	"trail/internal/domain/service"
	"trail/internal/traversal"
	"trail/internal/usecase"

	"github.com/paulmach/orb/geojson"
	"github.com/pkg/errors"
)

const (
	ReasonNoRoute       = "no route"
	ReasonRouteFailed   = "route unavailable"
	ReasonSurfaceFailed = "surface unavailable"
)

type navigationService struct {
	fetcher  service.RouteFetcher
	surface  service.RenderSurface
	exporter service.SceneExporter
	animator *traversal.Animator
	logger   *slog.Logger
}

// NewNavigationService creates a new navigation service instance
func NewNavigationService(
	fetcher service.RouteFetcher,
	surface service.RenderSurface,
	exporter service.SceneExporter,
	animator *traversal.Animator,
	logger *slog.Logger,
) usecase.NavigationUsecase {
	return &navigationService{
		fetcher:  fetcher,
		surface:  surface,
		exporter: exporter,
		animator: animator,
		logger:   logger,
	}
}

// WalkTo fetches a walking route and starts its traversal
func (s *navigationService) WalkTo(ctx context.Context, req *usecase.WalkRequest) (*usecase.WalkResult, error) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, s.logger)

	destination := req.Destination
	if !destination.IsValid() {
		return nil, domainerrors.ErrInvalidCoordinate.WithDetails("destination " + destination.String())
	}

	origin := s.surface.Camera().Center
	if req.Origin != nil {
		origin = *req.Origin
	}
	if !origin.IsValid() {
		return nil, domainerrors.ErrInvalidCoordinate.WithDetails("origin " + origin.String())
	}

	result := &usecase.WalkResult{
		Origin:      origin,
		Destination: destination,
	}

	path, err := s.fetcher.FetchRoute(ctx, origin, destination)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, errors.Wrap(ctxErr, "fetch route")
		}

		logger.Warn("Route fetch failed, leaving scene unchanged",
			slog.String("origin", origin.String()),
			slog.String("destination", destination.String()),
			slog.Any("error", err),
		)
		result.Reason = ReasonRouteFailed

		return result, nil
	}

	if len(path) < 2 {
		logger.Info("No route between points",
			slog.String("origin", origin.String()),
			slog.String("destination", destination.String()),
			slog.Int("points", len(path)),
		)
		result.Reason = ReasonNoRoute

		return result, nil
	}

	snapshot, err := s.animator.Start(path)
	if err != nil {
		logger.Warn("Traversal could not start",
			slog.Int("points", len(path)),
			slog.Any("error", err),
		)
		result.Reason = ReasonSurfaceFailed

		return result, nil
	}

	result.Started = true
	result.TraversalID = snapshot.ID
	result.Points = snapshot.Points
	result.DistanceMeters = snapshot.DistanceMeters
	result.Duration = snapshot.Duration

	logger.Info("Traversal started",
		slog.String("traversal_id", snapshot.ID),
		slog.Int("points", snapshot.Points),
		slog.Float64("distance_m", snapshot.DistanceMeters),
		slog.Duration("duration", snapshot.Duration),
	)

	return result, nil
}

// Clear cancels the current traversal
func (s *navigationService) Clear(ctx context.Context) {
	logger := deliverycontext.GetLoggerOrDefault(ctx, s.logger)

	before := s.animator.Snapshot()
	s.animator.Cancel()

	if before.State != traversal.StateIdle {
		logger.Info("Traversal cleared",
			slog.String("traversal_id", before.ID),
			slog.String("state", before.State.String()),
		)
	}
}

func (s *navigationService) Status(_ context.Context) traversal.Snapshot {
	return s.animator.Snapshot()
}

func (s *navigationService) Scene(_ context.Context) *geojson.FeatureCollection {
	return s.exporter.FeatureCollection()
}

func (s *navigationService) Camera(_ context.Context) entity.Camera {
	return s.surface.Camera()
}

// SetCamera moves the viewport. A running traversal keeps recentering it
// on the marker every frame.
func (s *navigationService) SetCamera(_ context.Context, camera entity.Camera) error {
	if !camera.Center.IsValid() {
		return domainerrors.ErrInvalidCoordinate.WithDetails("camera center " + camera.Center.String())
	}

	if err := s.surface.SetCamera(camera); err != nil {
		return errors.Wrap(domainerrors.ErrSurfaceUnavailable.WithDetails(err.Error()), "set camera")
	}

	return nil
}
