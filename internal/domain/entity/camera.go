package entity

// Camera is the viewport of a map surface.
type Camera struct {
	Center  Coordinate `json:"center"`
	Zoom    float64    `json:"zoom"`
	Pitch   float64    `json:"pitch"`
	Bearing float64    `json:"bearing"`
}

// WithCenter returns a copy of the camera moved to center. Zoom, pitch and
// bearing are kept.
func (c Camera) WithCenter(center Coordinate) Camera {
	c.Center = center

	return c
}
