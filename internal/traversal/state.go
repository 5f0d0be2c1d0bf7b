package traversal

import (
	"time"

	"trail/internal/domain/entity"
)

// State is the lifecycle position of an Animator.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateCompleted
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// MarshalText renders the state name in JSON responses.
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Snapshot is a read-only view of the current traversal.
type Snapshot struct {
	ID             string            `json:"id,omitempty"`
	State          State             `json:"state"`
	Progress       float64           `json:"progress"`
	DistanceMeters float64           `json:"distance_meters"`
	Duration       time.Duration     `json:"duration"`
	Elapsed        time.Duration     `json:"elapsed"`
	Position       entity.Coordinate `json:"position"`
	Points         int               `json:"points"`
	TrailPoints    int               `json:"trail_points"`
}
