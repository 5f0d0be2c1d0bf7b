// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"trail/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	TraversalHandler *handler.TraversalHandler
	SceneHandler     *handler.SceneHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	traversalHandler *handler.TraversalHandler
	sceneHandler     *handler.SceneHandler
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{
		traversalHandler: params.TraversalHandler,
		sceneHandler:     params.SceneHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	apiV1 := e.Group("/api/v1")

	traversalsGroup := apiV1.Group("/traversals")
	{
		traversalsGroup.POST("", r.traversalHandler.StartTraversal)
		traversalsGroup.GET("/current", r.traversalHandler.GetCurrentTraversal)
		traversalsGroup.DELETE("/current", r.traversalHandler.ClearTraversal)
	}

	sceneGroup := apiV1.Group("/scene")
	{
		sceneGroup.GET("", r.sceneHandler.GetScene)
		sceneGroup.GET("/camera", r.sceneHandler.GetCamera)
		sceneGroup.PUT("/camera", r.sceneHandler.SetCamera)
	}
}
