package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/taskdesk/taskdesk/data/repository"
	"github.com/taskdesk/taskdesk/logger"
	"github.com/taskdesk/taskdesk/resp"
	"github.com/taskdesk/taskdesk/service"
)

// TaskHandler handles HTTP requests for tasks.
type TaskHandler struct {
	svc    *service.TaskService
	logger *logger.Logger
}

// NewTaskHandler creates a new task handler.
func NewTaskHandler(svc *service.TaskService, logger *logger.Logger) *TaskHandler {
	return &TaskHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles task listing with filtering, sorting and pagination.
// @Summary List tasks
// @Tags tasks
// @Produce json
// @Param search query string false "Search in title and description"
// @Param status query string false "Complete or Incomplete"
// @Param sort query string false "Sort key" Enums(title_desc, Date, date_desc)
// @Param filter query string false "Previously applied search, echoed back by the client"
// @Param page query int false "Page number" default(1)
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /api/v1/tasks [get]
func (h *TaskHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	q := c.Request.URL.Query()

	result, err := h.svc.List(c.Request.Context(), service.ListParams{
		SortOrder:      c.Query("sort"),
		CurrentFilter:  c.Query("filter"),
		SearchString:   c.Query("search"),
		StatusFilter:   c.Query("status"),
		PageNumber:     page,
		SearchSupplied: q.Has("search"),
		StatusSupplied: q.Has("status"),
	})
	if err != nil {
		h.logger.Error(c.Request.Context(), "failed to list tasks", "error", err)
		resp.Fail(c.Writer, resp.InternalServer("failed to list tasks"))
		return
	}

	resp.Success(c.Writer, map[string]any{
		"data": result.Page.Items,
		"pagination": map[string]any{
			"page_index":   result.Page.PageIndex,
			"total_pages":  result.Page.TotalPages,
			"total_count":  result.Page.TotalCount,
			"has_previous": result.Page.HasPrevious,
			"has_next":     result.Page.HasNext,
		},
		"state": map[string]any{
			"current_sort":   result.CurrentSort,
			"current_filter": result.CurrentFilter,
			"current_status": result.CurrentStatus,
			"title_sort":     result.TitleSort,
			"date_sort":      result.DateSort,
		},
	})
}

// Get handles task retrieval.
// @Summary Get a task by ID
// @Tags tasks
// @Produce json
// @Param task_id path int true "Task ID"
// @Success 200 {object} models.Task
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/tasks/{task_id} [get]
func (h *TaskHandler) Get(c *gin.Context) {
	id, ok := h.taskID(c)
	if !ok {
		return
	}

	task, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			resp.Fail(c.Writer, resp.NotFound("task not found"))
			return
		}
		h.logger.Error(c.Request.Context(), "failed to get task", "id", id, "error", err)
		resp.Fail(c.Writer, resp.InternalServer("failed to get task"))
		return
	}

	resp.Success(c.Writer, task)
}

// Create handles task creation.
// @Summary Create a new task
// @Tags tasks
// @Accept json
// @Produce json
// @Param request body service.TaskInput true "Task fields"
// @Success 201 {object} models.Task
// @Failure 400 {object} map[string]interface{}
// @Router /api/v1/tasks [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var in service.TaskInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Warn(c.Request.Context(), "invalid request", "error", err)
		resp.Fail(c.Writer, resp.BadRequest(err.Error()))
		return
	}

	task, err := h.svc.Create(c.Request.Context(), &in)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			resp.Fail(c.Writer, resp.BadRequest("validation failed", verr.Fields))
			return
		}
		h.logger.Error(c.Request.Context(), "failed to create task", "error", err)
		resp.Fail(c.Writer, resp.InternalServer("failed to create task"))
		return
	}

	resp.WithStatusCode(c.Writer, http.StatusCreated, task)
}

// Update handles full-record task edits.
// @Summary Update a task
// @Tags tasks
// @Accept json
// @Produce json
// @Param task_id path int true "Task ID"
// @Param request body service.TaskInput true "Task fields"
// @Success 200 {object} models.Task
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/v1/tasks/{task_id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := h.taskID(c)
	if !ok {
		return
	}

	var in service.TaskInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.logger.Warn(c.Request.Context(), "invalid request", "error", err)
		resp.Fail(c.Writer, resp.BadRequest(err.Error()))
		return
	}

	task, err := h.svc.Update(c.Request.Context(), id, &in)
	if err != nil {
		h.writeSaveError(c, id, err, "failed to update task")
		return
	}

	resp.Success(c.Writer, task)
}

// ToggleComplete flips the completion flag of a task.
// @Summary Toggle task completion
// @Tags tasks
// @Produce json
// @Param task_id path int true "Task ID"
// @Success 200 {object} models.Task
// @Failure 404 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /api/v1/tasks/{task_id}/toggle [post]
func (h *TaskHandler) ToggleComplete(c *gin.Context) {
	id, ok := h.taskID(c)
	if !ok {
		return
	}

	task, err := h.svc.ToggleComplete(c.Request.Context(), id)
	if err != nil {
		h.writeSaveError(c, id, err, "failed to toggle task")
		return
	}

	resp.Success(c.Writer, task)
}

// Delete handles task deletion.
// @Summary Delete a task
// @Tags tasks
// @Produce json
// @Param task_id path int true "Task ID"
// @Success 204
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /api/v1/tasks/{task_id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := h.taskID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			resp.Fail(c.Writer, resp.NotFound("task not found"))
			return
		}
		h.logger.Error(c.Request.Context(), "failed to delete task", "id", id, "error", err)
		resp.Fail(c.Writer, resp.InternalServer("failed to delete task"))
		return
	}

	resp.WithStatusCode(c.Writer, http.StatusNoContent)
}

// taskID parses the task_id path parameter, answering 400 on garbage.
func (h *TaskHandler) taskID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("task_id"))
	if err != nil {
		resp.Fail(c.Writer, resp.BadRequest("invalid task ID"))
		return 0, false
	}
	return id, true
}

// writeSaveError maps the outcome of a guarded save onto HTTP.
func (h *TaskHandler) writeSaveError(c *gin.Context, id int, err error, msg string) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		resp.Fail(c.Writer, resp.BadRequest("validation failed", verr.Fields))
	case errors.Is(err, repository.ErrNotFound):
		resp.Fail(c.Writer, resp.NotFound("task not found"))
	case errors.Is(err, service.ErrConflict):
		resp.Fail(c.Writer, resp.Conflict("task was modified by another request"))
	default:
		h.logger.Error(c.Request.Context(), msg, "id", id, "error", err)
		resp.Fail(c.Writer, resp.InternalServer(msg))
	}
}
