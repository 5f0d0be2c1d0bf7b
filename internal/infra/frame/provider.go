package frame

import (
	"log/slog"

	"trail/config"

	"go.uber.org/fx"
)

// SchedulerParams holds dependencies for the frame loop, injected by Fx
type SchedulerParams struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewScheduler creates the real-time frame loop at the configured rate and
// ties it to the application lifecycle.
func NewScheduler(params SchedulerParams) *TickerScheduler {
	fps := DefaultFPS
	if params.Config.Frame != nil && params.Config.Frame.FPS > 0 {
		fps = params.Config.Frame.FPS
	}

	scheduler := NewTickerScheduler(fps, params.Logger)
	params.Lc.Append(fx.Hook{
		OnStart: scheduler.Start,
		OnStop:  scheduler.Stop,
	})

	return scheduler
}
