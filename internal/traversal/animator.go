// Package traversal replays a route on a map surface: one marker walks the
// path, a rainbow trail grows behind it and the camera follows.
package traversal

import (
	"log/slog"
	"strconv"
	"sync"
	"time"

	"trail/internal/domain/entity"
	domainerrors "trail/internal/domain/errors"
	"trail/internal/domain/service"
	"trail/internal/geo"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	DefaultMarkerID      = "traversal-marker"
	DefaultTrailSourceID = "traversal-trail"
)

// Options tunes an Animator. Zero values fall back to the package defaults.
type Options struct {
	SpeedMetersPerMs float64
	MinDuration      time.Duration
	MaxDuration      time.Duration

	MarkerID      string
	TrailSourceID string
	TrailLayers   []entity.TrailLayer

	// OnFrame and OnComplete run after the frame step, outside the animator lock.
	OnFrame    func(Snapshot)
	OnComplete func(Snapshot)

	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.SpeedMetersPerMs <= 0 {
		o.SpeedMetersPerMs = DefaultSpeedMetersPerMs
	}
	if o.MinDuration <= 0 {
		o.MinDuration = DefaultMinDuration
	}
	if o.MaxDuration <= 0 {
		o.MaxDuration = DefaultMaxDuration
	}
	if o.MaxDuration < o.MinDuration {
		o.MaxDuration = o.MinDuration
	}
	if o.MarkerID == "" {
		o.MarkerID = DefaultMarkerID
	}
	if o.TrailSourceID == "" {
		o.TrailSourceID = DefaultTrailSourceID
	}
	if len(o.TrailLayers) == 0 {
		o.TrailLayers = entity.DefaultRainbow(o.TrailSourceID)
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}

	return o
}

// Animator owns the single traversal drawn on a surface. At most one
// traversal exists at a time; starting a new one cancels the previous.
//
// Every field below mu belongs to the running traversal and is reset by
// cancel. Frame callbacks carry the generation they were scheduled for and
// return early once it moves on, so a callback that was already dequeued by
// the scheduler cannot touch a newer traversal.
type Animator struct {
	surface   service.RenderSurface
	scheduler service.FrameScheduler
	opts      Options
	logger    *slog.Logger

	mu           sync.Mutex
	id           string
	state        State
	generation   uint64
	frame        service.FrameHandle
	markerActive bool
	layersActive []string
	sourceActive bool
	table        *geo.DistanceTable
	duration     time.Duration
	startedAt    time.Time
	elapsed      time.Duration
	progress     float64
	position     entity.Coordinate
	progressPath entity.Path
}

// NewAnimator creates an idle animator drawing on surface.
func NewAnimator(surface service.RenderSurface, scheduler service.FrameScheduler, opts Options) *Animator {
	opts = opts.withDefaults()

	return &Animator{
		surface:   surface,
		scheduler: scheduler,
		opts:      opts,
		logger:    opts.Logger,
		state:     StateIdle,
	}
}

// Start replaces any current traversal with one along path and schedules its
// first frame. Paths with fewer than two points are rejected without
// touching the current traversal.
func (a *Animator) Start(path entity.Path) (Snapshot, error) {
	if len(path) < 2 {
		return Snapshot{}, domainerrors.ErrInvalidPath.WithDetails("got " + pointCount(len(path)))
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.cancelLocked()

	table := geo.NewDistanceTable(path)
	origin := path.First()

	if err := a.surface.AddMarker(a.opts.MarkerID, origin); err != nil {
		return Snapshot{}, errors.Wrap(domainerrors.ErrSurfaceUnavailable.WithDetails(err.Error()), "add traversal marker")
	}
	a.markerActive = true

	a.progressPath = append(make(entity.Path, 0, len(path)+1), origin, origin)
	if err := a.surface.SetSource(a.opts.TrailSourceID, a.progressPath.LineString()); err != nil {
		a.cancelLocked()

		return Snapshot{}, errors.Wrap(domainerrors.ErrSurfaceUnavailable.WithDetails(err.Error()), "create trail source")
	}
	a.sourceActive = true

	for _, layer := range a.opts.TrailLayers {
		layer.SourceID = a.opts.TrailSourceID
		if err := a.surface.AddLayer(layer); err != nil {
			a.cancelLocked()

			return Snapshot{}, errors.Wrapf(domainerrors.ErrSurfaceUnavailable.WithDetails(err.Error()), "add trail layer %s", layer.ID)
		}
		a.layersActive = append(a.layersActive, layer.ID)
	}

	a.id = uuid.NewString()
	a.table = table
	a.duration = ClampedDuration(table.Total(), a.opts.SpeedMetersPerMs, a.opts.MinDuration, a.opts.MaxDuration)
	a.position = origin
	a.state = StateRunning
	a.frame = a.scheduler.RequestFrame(a.frameFunc(a.generation))

	a.logger.Debug("Traversal started",
		slog.String("traversal_id", a.id),
		slog.Int("points", len(path)),
		slog.Float64("distance_m", table.Total()),
		slog.Duration("duration", a.duration),
	)

	return a.snapshotLocked(), nil
}

// Cancel stops the current traversal and removes the marker, the trail
// layers and the trail source. It is safe to call in any state.
func (a *Animator) Cancel() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.cancelLocked()
}

// State returns the lifecycle state.
func (a *Animator) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.state
}

// Snapshot returns a view of the current traversal.
func (a *Animator) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.snapshotLocked()
}

func (a *Animator) frameFunc(generation uint64) service.FrameFunc {
	return func(frameTime time.Time) {
		a.step(generation, frameTime)
	}
}

// step advances the traversal to frameTime.
func (a *Animator) step(generation uint64, frameTime time.Time) {
	a.mu.Lock()
	if a.state != StateRunning || generation != a.generation {
		a.mu.Unlock()

		return
	}
	a.frame = 0

	if a.startedAt.IsZero() {
		a.startedAt = frameTime
	}
	a.elapsed = frameTime.Sub(a.startedAt)

	t := 1.0
	if a.duration > 0 {
		t = min(1, float64(a.elapsed)/float64(a.duration))
	}
	a.progress = t

	position, segment := a.table.PointAt(t * a.table.Total())
	a.position = position

	if err := a.surface.MoveMarker(a.opts.MarkerID, position); err != nil {
		a.logger.Debug("Move traversal marker failed", slog.Any("error", err))
	}

	// traversed vertices plus the interpolated tail, rebuilt every frame
	path := a.table.Path()
	a.progressPath = append(append(a.progressPath[:0], path[:segment+1]...), position)
	if err := a.surface.SetSource(a.opts.TrailSourceID, a.progressPath.LineString()); err != nil {
		a.logger.Debug("Update trail source failed", slog.Any("error", err))
	}

	if err := FollowCamera(a.surface, position); err != nil {
		a.logger.Debug("Camera follow failed", slog.Any("error", err))
	}

	completed := t >= 1
	if completed {
		a.completeLocked()
	} else {
		a.frame = a.scheduler.RequestFrame(a.frameFunc(generation))
	}

	snapshot := a.snapshotLocked()
	a.mu.Unlock()

	if a.opts.OnFrame != nil {
		a.opts.OnFrame(snapshot)
	}
	if completed && a.opts.OnComplete != nil {
		a.opts.OnComplete(snapshot)
	}
}

// completeLocked ends a traversal that reached its destination. The marker
// arrives and disappears; the trail stays until Cancel.
func (a *Animator) completeLocked() {
	a.removeMarkerLocked()
	a.state = StateCompleted

	a.logger.Debug("Traversal completed",
		slog.String("traversal_id", a.id),
		slog.Duration("elapsed", a.elapsed),
	)
}

func (a *Animator) cancelLocked() {
	if a.frame != 0 {
		a.scheduler.CancelFrame(a.frame)
		a.frame = 0
	}
	a.generation++

	a.removeMarkerLocked()

	for i := len(a.layersActive) - 1; i >= 0; i-- {
		if err := a.surface.RemoveLayer(a.layersActive[i]); err != nil {
			a.logger.Debug("Remove trail layer failed",
				slog.String("layer_id", a.layersActive[i]),
				slog.Any("error", err),
			)
		}
	}
	a.layersActive = nil

	if a.sourceActive {
		if err := a.surface.RemoveSource(a.opts.TrailSourceID); err != nil {
			a.logger.Debug("Remove trail source failed", slog.Any("error", err))
		}
		a.sourceActive = false
	}

	a.id = ""
	a.state = StateIdle
	a.table = nil
	a.duration = 0
	a.startedAt = time.Time{}
	a.elapsed = 0
	a.progress = 0
	a.position = entity.Coordinate{}
	a.progressPath = nil
}

func (a *Animator) removeMarkerLocked() {
	if !a.markerActive {
		return
	}
	if err := a.surface.RemoveMarker(a.opts.MarkerID); err != nil {
		a.logger.Debug("Remove traversal marker failed", slog.Any("error", err))
	}
	a.markerActive = false
}

func (a *Animator) snapshotLocked() Snapshot {
	snapshot := Snapshot{
		ID:          a.id,
		State:       a.state,
		Progress:    a.progress,
		Duration:    a.duration,
		Elapsed:     a.elapsed,
		Position:    a.position,
		TrailPoints: len(a.progressPath),
	}
	if a.table != nil {
		snapshot.DistanceMeters = a.table.Total()
		snapshot.Points = a.table.Len()
	}

	return snapshot
}

func pointCount(n int) string {
	if n == 1 {
		return "1 point"
	}

	return strconv.Itoa(n) + " points"
}
