package traversal

import (
	"math"
	"time"
)

const (
	// DefaultSpeedMetersPerMs is the implied replay speed. It keeps short and
	// long routes watchable rather than matching a real walking pace.
	DefaultSpeedMetersPerMs = 0.8
	DefaultMinDuration      = 6 * time.Second
	DefaultMaxDuration      = 20 * time.Second
)

// ClampedDuration converts a route length into a replay duration:
// totalMeters/speed milliseconds, clamped to [minDuration, maxDuration].
func ClampedDuration(totalMeters, speedMetersPerMs float64, minDuration, maxDuration time.Duration) time.Duration {
	if speedMetersPerMs <= 0 {
		speedMetersPerMs = DefaultSpeedMetersPerMs
	}
	if totalMeters < 0 || math.IsNaN(totalMeters) {
		totalMeters = 0
	}

	ms := totalMeters / speedMetersPerMs
	duration := time.Duration(ms * float64(time.Millisecond))
	if ms >= float64(maxDuration/time.Millisecond) {
		return maxDuration
	}
	if duration < minDuration {
		return minDuration
	}

	return duration
}
