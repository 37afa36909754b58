package handler

import (
	"log/slog"
	"net/http"

	"pantrylink/internal/delivery/http/response"
	"pantrylink/internal/domain/entity"
	"pantrylink/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// EntityHandlerParams holds dependencies for EntityHandler, injected by Fx.
type EntityHandlerParams struct {
	fx.In

	SyncUC usecase.SyncUsecase
	Logger *slog.Logger
}

// EntityHandler exposes the read surface: registered entities, cached
// objects and the debug report.
type EntityHandler struct {
	syncUC usecase.SyncUsecase
	logger *slog.Logger
}

// NewEntityHandler is the constructor for EntityHandler
func NewEntityHandler(params EntityHandlerParams) *EntityHandler {
	return &EntityHandler{
		syncUC: params.SyncUC,
		logger: params.Logger,
	}
}

// Entities handles listing every registered entity
func (h *EntityHandler) Entities(c echo.Context) error {
	views := h.syncUC.Entities()
	payload := make([]map[string]any, 0, len(views))
	for _, view := range views {
		payload = append(payload, viewPayload(view))
	}

	return response.Success(c, http.StatusOK, payload, "Entities retrieved successfully")
}

// Entity handles reading one entity by its registry key
func (h *EntityHandler) Entity(c echo.Context) error {
	key := c.Param("key")
	view, ok := h.syncUC.Entity(key)
	if !ok {
		return response.NotFound(c, "ENTITY_NOT_FOUND", "No entity registered under "+key)
	}

	return response.Success(c, http.StatusOK, viewPayload(view), "Entity retrieved successfully")
}

// Objects handles reading the cached contents of one category
func (h *EntityHandler) Objects(c echo.Context) error {
	category, err := entity.ParseCategory(c.Param("category"))
	if err != nil {
		return response.BadRequest(c, "INVALID_CATEGORY", err.Error())
	}

	return response.Success(c, http.StatusOK, h.syncUC.Objects(category), "Objects retrieved successfully")
}

// Debug handles the diagnostic state report
func (h *EntityHandler) Debug(c echo.Context) error {
	report, err := h.syncUC.Debug(c.Request().Context())
	if err != nil {
		return response.HandleAppError(c, err)
	}

	return response.Success(c, http.StatusOK, report, "Debug report retrieved successfully")
}

func viewPayload(view entity.View) map[string]any {
	return map[string]any{
		"entity_id":  view.Key(),
		"kind":       view.Kind(),
		"name":       view.Name(),
		"state":      view.State(),
		"attributes": view.Attributes(),
	}
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
