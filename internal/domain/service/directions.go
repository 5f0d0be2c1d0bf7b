package service

import (
	"context"

	"trail/internal/domain/entity"
)

// RouteFetcher resolves a walking route between two coordinates.
//
// A nil path with a nil error means the provider has no route. Callers treat
// errors the same way after logging them: nothing is drawn and the user can
// simply ask again.
type RouteFetcher interface {
	FetchRoute(ctx context.Context, origin, destination entity.Coordinate) (entity.Path, error)
}
