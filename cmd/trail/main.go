package main

import (
	"context"
	"log/slog"
	"os"

	"trail/config"
	"trail/internal/delivery"
	"trail/internal/delivery/api"
	"trail/internal/delivery/api/router/handler"
	"trail/internal/domain/service"
	"trail/internal/infra/directions"
	"trail/internal/infra/frame"
	logs "trail/internal/infra/log"
	"trail/internal/infra/scene"
	"trail/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
	)
}

func injectService() fx.Option {
	return fx.Options(
		directions.Module,
		fx.Provide(
			fx.Annotate(
				scene.NewFromConfig,
				fx.As(new(service.RenderSurface)),
				fx.As(new(service.SceneExporter)),
			),
			fx.Annotate(
				frame.NewScheduler,
				fx.As(new(service.FrameScheduler)),
			),
			impl.NewAnimator,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewNavigationService,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewTraversalHandler,
			handler.NewSceneHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				api.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
