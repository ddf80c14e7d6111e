package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rusafhasan/agencymanagement/internal/core/domain"
	"github.com/rusafhasan/agencymanagement/internal/core/ports"
)

type TaskHandler struct {
	tasks    ports.TaskService
	comments ports.CommentService
}

func NewTaskHandler(tasks ports.TaskService, comments ports.CommentService) *TaskHandler {
	return &TaskHandler{tasks: tasks, comments: comments}
}

// List handles GET /projects/:id/tasks in board order.
//
// @Summary      List a project's tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Project id"
// @Success      200  {object}  tasksResponse
// @Failure      403  {object}  map[string]string
// @Router       /projects/{id}/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	list, err := h.tasks.List(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasksResponse{Tasks: list})
}

// Get handles GET /tasks/:id.
//
// @Summary      Get a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  taskResponse
// @Failure      403  {object}  map[string]string
// @Router       /tasks/{id} [get]
func (h *TaskHandler) Get(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	task, err := h.tasks.Get(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, taskResponse{Task: task})
}

// Create handles POST /tasks (admin only). New tasks go to the end of the
// board with status not-started.
//
// @Summary      Create a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Task"
// @Success      201   {object}  taskResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req createTaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	task, err := h.tasks.Create(c.Request().Context(), caller, ports.CreateTaskInput{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, taskResponse{Task: task})
}

// Update handles PUT /tasks/:id (admin or an employee on the project).
// Sending null for assignedTo or dueDate clears it.
//
// @Summary      Update a task
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Task id"
// @Param        body  body      updateTaskRequest  true  "Fields to change"
// @Success      200   {object}  taskResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /tasks/{id} [put]
func (h *TaskHandler) Update(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req updateTaskRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	input := ports.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      asEnum[domain.TaskStatus](req.Status),
		Order:       req.Order,
	}
	if req.AssignedTo.Set {
		assignee := ""
		if req.AssignedTo.Value != nil {
			assignee = *req.AssignedTo.Value
		}
		input.AssignedTo = &assignee
	}
	if req.DueDate.Set {
		var due string
		if req.DueDate.Value != nil {
			due = *req.DueDate.Value
		}
		t, err := parseDate("dueDate", due)
		if err != nil {
			return err
		}
		input.DueDate = &t
	}

	task, err := h.tasks.Update(c.Request().Context(), caller, c.Param("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, taskResponse{Task: task})
}

// Delete handles DELETE /tasks/:id (admin only).
//
// @Summary      Delete a task
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  map[string]string
// @Router       /tasks/{id} [delete]
func (h *TaskHandler) Delete(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	if err := h.tasks.Delete(c.Request().Context(), caller, c.Param("id")); err != nil {
		return err
	}
	return message(c, "task deleted")
}

// ListComments handles GET /tasks/:id/comments, oldest first.
//
// @Summary      List a task's comments
// @Tags         comments
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Task id"
// @Success      200  {object}  commentsResponse
// @Failure      403  {object}  map[string]string
// @Router       /tasks/{id}/comments [get]
func (h *TaskHandler) ListComments(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	list, err := h.comments.List(c.Request().Context(), caller, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, commentsResponse{Comments: list})
}

// CreateComment handles POST /tasks/:id/comments.
//
// @Summary      Comment on a task
// @Tags         comments
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                true  "Task id"
// @Param        body  body      createCommentRequest  true  "Comment"
// @Success      201   {object}  commentResponse
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Router       /tasks/{id}/comments [post]
func (h *TaskHandler) CreateComment(c echo.Context) error {
	caller, err := callerFrom(c)
	if err != nil {
		return err
	}
	var req createCommentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	comment, err := h.comments.Create(c.Request().Context(), caller, c.Param("id"), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, commentResponse{Comment: comment})
}
