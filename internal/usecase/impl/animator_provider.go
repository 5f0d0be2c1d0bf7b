package impl

import (
	"log/slog"

	"trail/config"
	"trail/internal/domain/entity"
	"trail/internal/domain/service"
	"trail/internal/traversal"

	"go.uber.org/fx"
)

// AnimatorParams holds dependencies for the traversal animator, injected by Fx
type AnimatorParams struct {
	fx.In

	Config    *config.Config
	Surface   service.RenderSurface
	Scheduler service.FrameScheduler
	Logger    *slog.Logger
}

// NewAnimator creates the animator drawing on the scene
func NewAnimator(params AnimatorParams) *traversal.Animator {
	return traversal.NewAnimator(params.Surface, params.Scheduler, AnimatorOptions(params.Config, params.Logger))
}

// AnimatorOptions maps the traversal section to animator options. Unset
// values keep the animator defaults.
func AnimatorOptions(cfg *config.Config, logger *slog.Logger) traversal.Options {
	opts := traversal.Options{Logger: logger}

	tc := cfg.Traversal
	if tc == nil {
		return opts
	}

	opts.SpeedMetersPerMs = tc.SpeedMetersPerMs
	opts.MinDuration = tc.MinDuration
	opts.MaxDuration = tc.MaxDuration
	opts.MarkerID = tc.MarkerID
	opts.TrailSourceID = tc.TrailSourceID

	for _, layer := range tc.TrailLayers {
		opts.TrailLayers = append(opts.TrailLayers, entity.TrailLayer{
			ID:      layer.ID,
			Color:   layer.Color,
			Width:   layer.Width,
			Opacity: layer.Opacity,
			Blur:    layer.Blur,
		})
	}

	return opts
}
