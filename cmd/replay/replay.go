package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"trail/config"
	"trail/internal/domain/entity"
	"trail/internal/infra/directions"
	"trail/internal/infra/frame"
	logs "trail/internal/infra/log"
	"trail/internal/infra/scene"
	"trail/internal/traversal"
	"trail/internal/usecase"
	"trail/internal/usecase/impl"

	"github.com/pkg/errors"
)

type replayOptions struct {
	origin      *entity.Coordinate
	destination entity.Coordinate
	provider    string
	fast        bool
	fps         int
}

// run replays one walk and returns the final traversal snapshot. It returns
// when the traversal completes or ctx is done.
func run(ctx context.Context, cfg *config.Config, opts replayOptions, w io.Writer) (traversal.Snapshot, error) {
	logger, err := logs.Build(cfg.Env.Log, w)
	if err != nil {
		return traversal.Snapshot{}, err
	}

	if opts.provider != "" {
		directionsCfg := config.DirectionsConfig{}
		if cfg.Directions != nil {
			directionsCfg = *cfg.Directions
		}
		directionsCfg.Provider = opts.provider
		cfg.Directions = &directionsCfg
	}

	fps := frame.DefaultFPS
	switch {
	case opts.fps > 0:
		fps = opts.fps
	case cfg.Frame != nil && cfg.Frame.FPS > 0:
		fps = cfg.Frame.FPS
	}

	fetcher, err := directions.NewRouteFetcher(directions.FetcherParams{Config: cfg, Logger: logger})
	if err != nil {
		return traversal.Snapshot{}, errors.Wrap(err, "create route fetcher")
	}

	done := make(chan traversal.Snapshot, 1)
	animatorOpts := impl.AnimatorOptions(cfg, logger)
	animatorOpts.OnFrame = func(s traversal.Snapshot) {
		logger.Info("Frame",
			slog.Float64("progress", s.Progress),
			slog.String("position", s.Position.String()),
			slog.Int("trail_points", s.TrailPoints),
			slog.Duration("elapsed", s.Elapsed),
		)
	}
	animatorOpts.OnComplete = func(s traversal.Snapshot) {
		done <- s
	}

	surface := scene.NewFromConfig(cfg)

	var manual *frame.ManualScheduler
	var animator *traversal.Animator
	if opts.fast {
		manual = frame.NewManualScheduler(time.Now(), time.Second/time.Duration(fps))
		animator = traversal.NewAnimator(surface, manual, animatorOpts)
	} else {
		ticker := frame.NewTickerScheduler(fps, logger)
		if err := ticker.Start(ctx); err != nil {
			return traversal.Snapshot{}, err
		}
		defer func() {
			_ = ticker.Stop(context.Background())
		}()
		animator = traversal.NewAnimator(surface, ticker, animatorOpts)
	}

	navigation := impl.NewNavigationService(fetcher, surface, surface, animator, logger)

	result, err := navigation.WalkTo(ctx, &usecase.WalkRequest{Origin: opts.origin, Destination: opts.destination})
	if err != nil {
		return traversal.Snapshot{}, err
	}
	if !result.Started {
		return traversal.Snapshot{}, errors.Errorf("walk from %s to %s not started: %s", result.Origin, result.Destination, result.Reason)
	}

	if manual != nil {
		for manual.Pending() > 0 {
			if ctx.Err() != nil {
				break
			}
			manual.Tick()
		}
	}

	select {
	case final := <-done:
		logger.Info("Replay finished",
			slog.String("traversal_id", final.ID),
			slog.Float64("distance_m", final.DistanceMeters),
			slog.Duration("duration", final.Duration),
			slog.Int("points", final.Points),
		)

		return final, nil
	case <-ctx.Done():
		snapshot := navigation.Status(context.Background())
		navigation.Clear(context.Background())
		logger.Info("Replay interrupted", slog.Float64("progress", snapshot.Progress))

		return snapshot, errors.WithStack(ctx.Err())
	}
}
