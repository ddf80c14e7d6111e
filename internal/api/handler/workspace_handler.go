package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rusafhasan/agencymanagement/internal/core/ports"
)

type WorkspaceHandler struct {
	service ports.WorkspaceService
}

func NewWorkspaceHandler(service ports.WorkspaceService) *WorkspaceHandler {
	return &WorkspaceHandler{service: service}
}

// List handles GET /workspaces. Admins see every workspace, clients their
// own, employees those holding a project they are assigned to.
//
// @Summary      List workspaces
// @Tags         workspaces
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  workspacesResponse
// @Failure      401  {object}  map[string]string
// @Router       /workspaces [get]
func (h *WorkspaceHandler) List(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	list, err := h.service.List(c.Request().Context(), caller)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, workspacesResponse{Workspaces: list})
}

// Get handles GET /workspaces/:id.
//
// @Summary      Get a workspace
// @Tags         workspaces
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Workspace id"
// @Success      200  {object}  workspaceResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /workspaces/{id} [get]
func (h *WorkspaceHandler) Get(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	ws, err := h.service.Get(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, workspaceResponse{Workspace: ws})
}

// Create handles POST /workspaces (admin only).
//
// @Summary      Create a workspace for a client
// @Tags         workspaces
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createWorkspaceRequest  true  "Workspace"
// @Success      201   {object}  workspaceResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /workspaces [post]
func (h *WorkspaceHandler) Create(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req createWorkspaceRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	ws, err := h.service.Create(c.Request().Context(), caller, ports.CreateWorkspaceInput{
		Name:     req.Name,
		ClientID: req.ClientID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, workspaceResponse{Workspace: ws})
}

// Rename handles PUT /workspaces/:id (admin only).
//
// @Summary      Rename a workspace
// @Tags         workspaces
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                  true  "Workspace id"
// @Param        body  body      renameWorkspaceRequest  true  "New name"
// @Success      200   {object}  workspaceResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /workspaces/{id} [put]
func (h *WorkspaceHandler) Rename(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req renameWorkspaceRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	ws, err := h.service.Rename(c.Request().Context(), caller, c.Param("id"), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, workspaceResponse{Workspace: ws})
}

// Delete handles DELETE /workspaces/:id, removing its projects, tasks and
// comments (admin only).
//
// @Summary      Delete a workspace
// @Tags         workspaces
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Workspace id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /workspaces/{id} [delete]
func (h *WorkspaceHandler) Delete(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.Request().Context(), caller, c.Param("id")); err != nil {
		return err
	}
	return message(c, "workspace deleted")
}
