package handler

import (
	"log/slog"
	"net/http"

	"trail/internal/delivery/api/response"
	"trail/internal/domain/entity"
	"trail/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// SceneHandlerParams holds dependencies for SceneHandler, injected by Fx.
type SceneHandlerParams struct {
	fx.In

	NavigationUC usecase.NavigationUsecase
	Logger       *slog.Logger
}

// SceneHandler exposes the rendered scene and its camera
type SceneHandler struct {
	navigationUC usecase.NavigationUsecase
	logger       *slog.Logger
}

// NewSceneHandler is the constructor for SceneHandler
func NewSceneHandler(params SceneHandlerParams) *SceneHandler {
	return &SceneHandler{
		navigationUC: params.NavigationUC,
		logger:       params.Logger,
	}
}

// SetCameraRequest represents the request body for moving the camera
type SetCameraRequest struct {
	Center  *CoordinateRequest `json:"center" validate:"required"`
	Zoom    float64            `json:"zoom" validate:"gte=0,lte=24"`
	Pitch   float64            `json:"pitch" validate:"gte=0,lte=85"`
	Bearing float64            `json:"bearing" validate:"gte=-360,lte=360"`
}

// GetScene returns the scene as a GeoJSON FeatureCollection. The body is
// plain GeoJSON so map clients can load the URL directly.
func (h *SceneHandler) GetScene(c echo.Context) error {
	return c.JSON(http.StatusOK, h.navigationUC.Scene(c.Request().Context()))
}

// GetCamera returns the current viewport
func (h *SceneHandler) GetCamera(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.navigationUC.Camera(c.Request().Context()))
}

// SetCamera moves the viewport
func (h *SceneHandler) SetCamera(c echo.Context) error {
	var req SetCameraRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid camera input")
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	camera := entity.Camera{
		Center:  req.Center.toEntity(),
		Zoom:    req.Zoom,
		Pitch:   req.Pitch,
		Bearing: req.Bearing,
	}

	ctx := c.Request().Context()
	if err := h.navigationUC.SetCamera(ctx, camera); err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, h.navigationUC.Camera(ctx))
}
