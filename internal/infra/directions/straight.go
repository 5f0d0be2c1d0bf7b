package directions

import (
	"context"

	"trail/internal/domain/entity"
	domainerrors "trail/internal/domain/errors"
	"trail/internal/domain/service"
)

// straightFetcher answers every request with the direct line between the
// two points. It needs no network or data files.
type straightFetcher struct{}

var _ service.RouteFetcher = straightFetcher{}

// NewStraightFetcher returns the provider used when no other is configured.
func NewStraightFetcher() service.RouteFetcher {
	return straightFetcher{}
}

func (straightFetcher) FetchRoute(_ context.Context, origin, destination entity.Coordinate) (entity.Path, error) {
	if !origin.IsValid() || !destination.IsValid() {
		return nil, domainerrors.ErrInvalidCoordinate.WithDetails("origin " + origin.String() + ", destination " + destination.String())
	}

	return entity.Path{origin, destination}, nil
}
