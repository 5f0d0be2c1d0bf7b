package traversal

import (
	"trail/internal/domain/entity"
	"trail/internal/domain/service"
)

// FollowCamera recenters the surface on position. Zoom, pitch and bearing
// stay as the user left them.
func FollowCamera(surface service.RenderSurface, position entity.Coordinate) error {
	return surface.SetCamera(surface.Camera().WithCenter(position))
}
