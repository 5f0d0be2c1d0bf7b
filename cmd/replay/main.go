// Command replay fetches one route and replays its traversal, logging every
// frame. With -fast the frames run on a virtual clock as fast as possible.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"trail/config"
	"trail/internal/domain/entity"

	"github.com/pkg/errors"
)

func main() {
	from := flag.String("from", "", "Origin as lat,lng (default: configured camera center)")
	to := flag.String("to", "", "Destination as lat,lng")
	provider := flag.String("provider", "", "Directions provider override: straight, mapbox or pmtiles")
	fast := flag.Bool("fast", false, "Run frames on a virtual clock instead of real time")
	fps := flag.Int("fps", 0, "Frame rate (default: configured frame rate)")
	flag.Parse()

	if *to == "" {
		fmt.Fprintln(os.Stderr, "Usage: replay -to lat,lng [-from lat,lng] [-provider straight|mapbox|pmtiles] [-fast] [-fps n]")
		os.Exit(2)
	}

	opts, err := parseOptions(*from, *to, *provider, *fast, *fps)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	cfg, err := config.New()
	if err != nil {
		slog.Warn("Config not loaded, using defaults", slog.Any("error", err))
		cfg = &config.Config{}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := run(ctx, cfg, opts, os.Stderr); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseOptions(from, to, provider string, fast bool, fps int) (replayOptions, error) {
	opts := replayOptions{provider: provider, fast: fast, fps: fps}

	destination, err := entity.ParseCoordinate(to)
	if err != nil {
		return opts, err
	}
	opts.destination = destination

	if from != "" {
		origin, err := entity.ParseCoordinate(from)
		if err != nil {
			return opts, err
		}
		opts.origin = &origin
	}

	return opts, nil
}
