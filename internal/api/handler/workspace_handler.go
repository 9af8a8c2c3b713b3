package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/markaai/booking-gateway/internal/api/metrics"
	"github.com/markaai/booking-gateway/internal/core/domain"
	"github.com/markaai/booking-gateway/internal/core/ports"
)

type WorkspaceHandler struct {
	tenants ports.WorkspaceResolver
}

func NewWorkspaceHandler(tenants ports.WorkspaceResolver) *WorkspaceHandler {
	return &WorkspaceHandler{tenants: tenants}
}

type setActiveRequest struct {
	WorkspaceID string `json:"workspace_id"`
}

type tenantViewResponse struct {
	Workspaces []domain.Workspace `json:"workspaces"`
	Active     *domain.Workspace  `json:"active,omitempty"`
}

func toTenantViewResponse(view *ports.TenantView) tenantViewResponse {
	resp := tenantViewResponse{Workspaces: view.Workspaces, Active: view.Active}
	if resp.Workspaces == nil {
		resp.Workspaces = []domain.Workspace{}
	}
	return resp
}

// List loads the caller's workspace memberships from the directory and
// applies the active-workspace selection policy.
//
// @Summary      List workspaces
// @Tags         workspaces
// @Produce      json
// @Success      200  {object}  tenantViewResponse
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /workspaces [get]
func (h *WorkspaceHandler) List(c echo.Context) error {
	sessionID, credential, err := ctxSession(c)
	if err != nil {
		return err
	}

	view, err := h.tenants.Load(c.Request().Context(), sessionID, credential)
	if err != nil {
		metrics.WorkspaceLoadsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.WorkspaceLoadsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, toTenantViewResponse(view))
}

// Refresh re-fetches the membership list from the directory.
//
// @Summary      Refresh workspaces
// @Tags         workspaces
// @Produce      json
// @Success      200  {object}  tenantViewResponse
// @Failure      401  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /workspaces/refresh [post]
func (h *WorkspaceHandler) Refresh(c echo.Context) error {
	sessionID, credential, err := ctxSession(c)
	if err != nil {
		return err
	}

	view, err := h.tenants.Refresh(c.Request().Context(), sessionID, credential)
	if err != nil {
		metrics.WorkspaceLoadsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.WorkspaceLoadsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, toTenantViewResponse(view))
}

// SetActive switches the caller's active workspace. An empty workspace_id
// clears the selection.
//
// @Summary      Set the active workspace
// @Tags         workspaces
// @Accept       json
// @Produce      json
// @Param        body  body      setActiveRequest  true  "Target workspace"
// @Success      200   {object}  domain.Workspace
// @Success      204
// @Failure      401   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /workspaces/active [put]
func (h *WorkspaceHandler) SetActive(c echo.Context) error {
	sessionID, _, err := ctxSession(c)
	if err != nil {
		return err
	}

	var req setActiveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	ws, err := h.tenants.SetActive(c.Request().Context(), sessionID, req.WorkspaceID)
	if err != nil {
		return err
	}

	metrics.WorkspaceSwitchesTotal.Inc()
	if ws == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, ws)
}

// Active returns the caller's currently selected workspace.
//
// @Summary      Get the active workspace
// @Tags         workspaces
// @Produce      json
// @Success      200  {object}  domain.Workspace
// @Success      204
// @Failure      401  {object}  map[string]string
// @Router       /workspaces/active [get]
func (h *WorkspaceHandler) Active(c echo.Context) error {
	sessionID, _, err := ctxSession(c)
	if err != nil {
		return err
	}

	ws, err := h.tenants.Active(c.Request().Context(), sessionID)
	if err != nil {
		return err
	}
	if ws == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, ws)
}
