package usecase

import (
	"context"
	"time"

	"trail/internal/domain/entity"
	"trail/internal/traversal"

	"github.com/paulmach/orb/geojson"
)

// WalkRequest asks for a walk to Destination. A nil Origin means the walk
// starts at the current camera center.
type WalkRequest struct {
	Origin      *entity.Coordinate
	Destination entity.Coordinate
}

// WalkResult describes the outcome of a walk request. Started is false when
// no route was found; the scene is then left as it was.
type WalkResult struct {
	Started        bool              `json:"started"`
	TraversalID    string            `json:"traversal_id,omitempty"`
	Origin         entity.Coordinate `json:"origin"`
	Destination    entity.Coordinate `json:"destination"`
	Points         int               `json:"points"`
	DistanceMeters float64           `json:"distance_meters"`
	Duration       time.Duration     `json:"duration"`
	Reason         string            `json:"reason,omitempty"`
}

// NavigationUsecase drives route traversals on the scene.
type NavigationUsecase interface {
	// WalkTo fetches a route and starts a traversal along it, replacing the
	// current one. Route failures are reported through WalkResult, not as
	// errors.
	WalkTo(ctx context.Context, req *WalkRequest) (*WalkResult, error)

	// Clear cancels the current traversal and removes its marker and trail.
	Clear(ctx context.Context)

	// Status returns the current traversal snapshot.
	Status(ctx context.Context) traversal.Snapshot

	Scene(ctx context.Context) *geojson.FeatureCollection
	Camera(ctx context.Context) entity.Camera
	SetCamera(ctx context.Context, camera entity.Camera) error
}
