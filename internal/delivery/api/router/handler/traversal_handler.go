package handler

import (
	"log/slog"
	"net/http"

	"trail/internal/delivery/api/response"
	"trail/internal/domain/entity"
	domainerrors "trail/internal/domain/errors"
	"trail/internal/traversal"
	"trail/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// TraversalHandlerParams holds dependencies for TraversalHandler, injected by Fx.
type TraversalHandlerParams struct {
	fx.In

	NavigationUC usecase.NavigationUsecase
	Logger       *slog.Logger
}

// TraversalHandler exposes the current route traversal
type TraversalHandler struct {
	navigationUC usecase.NavigationUsecase
	logger       *slog.Logger
}

// NewTraversalHandler is the constructor for TraversalHandler
func NewTraversalHandler(params TraversalHandlerParams) *TraversalHandler {
	return &TraversalHandler{
		navigationUC: params.NavigationUC,
		logger:       params.Logger,
	}
}

// CoordinateRequest is a position in a request body. Pointers tell a
// missing component apart from zero.
type CoordinateRequest struct {
	Lat *float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lng *float64 `json:"lng" validate:"required,gte=-180,lte=180"`
}

func (r *CoordinateRequest) toEntity() entity.Coordinate {
	return entity.NewCoordinate(*r.Lat, *r.Lng)
}

// StartTraversalRequest represents the request body for starting a walk.
// Without an origin the walk starts at the camera center.
type StartTraversalRequest struct {
	Origin      *CoordinateRequest `json:"origin" validate:"omitempty"`
	Destination *CoordinateRequest `json:"destination" validate:"required"`
}

// StartTraversal fetches a route and starts replaying it
func (h *TraversalHandler) StartTraversal(c echo.Context) error {
	var req StartTraversalRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid traversal input")
	}

	if err := c.Validate(&req); err != nil {
		return response.HandleAppError(c, err)
	}

	walk := &usecase.WalkRequest{Destination: req.Destination.toEntity()}
	if req.Origin != nil {
		origin := req.Origin.toEntity()
		walk.Origin = &origin
	}

	result, err := h.navigationUC.WalkTo(c.Request().Context(), walk)
	if err != nil {
		return response.HandleAppError(c, err)
	}

	status := http.StatusOK
	if result.Started {
		status = http.StatusCreated
	}

	return response.Success(c, status, result)
}

// GetCurrentTraversal returns the running or completed traversal
func (h *TraversalHandler) GetCurrentTraversal(c echo.Context) error {
	snapshot := h.navigationUC.Status(c.Request().Context())
	if snapshot.State == traversal.StateIdle {
		return response.HandleAppError(c, domainerrors.ErrTraversalNotFound)
	}

	return response.Success(c, http.StatusOK, snapshot)
}

// ClearTraversal cancels the traversal and removes it from the scene
func (h *TraversalHandler) ClearTraversal(c echo.Context) error {
	h.navigationUC.Clear(c.Request().Context())

	return c.NoContent(http.StatusNoContent)
}
