package scene

import (
	"trail/config"
	"trail/internal/domain/entity"
)

const defaultZoom = 15

// NewFromConfig returns an empty scene looking at the configured initial
// camera. Without a camera section it looks at 0,0.
func NewFromConfig(cfg *config.Config) *Scene {
	return New(CameraFromConfig(cfg.Camera))
}

// CameraFromConfig converts the camera section, defaulting the zoom.
func CameraFromConfig(cfg *config.CameraConfig) entity.Camera {
	if cfg == nil {
		return entity.Camera{Zoom: defaultZoom}
	}

	camera := entity.Camera{
		Center:  entity.NewCoordinate(cfg.Lat, cfg.Lng),
		Zoom:    cfg.Zoom,
		Pitch:   cfg.Pitch,
		Bearing: cfg.Bearing,
	}
	if camera.Zoom <= 0 {
		camera.Zoom = defaultZoom
	}

	return camera
}
