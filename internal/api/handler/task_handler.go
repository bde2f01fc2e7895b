package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/logicem/callcenter-api/internal/api/metrics"
	"github.com/logicem/callcenter-api/internal/core/domain"
	"github.com/logicem/callcenter-api/internal/core/ports"
)

// TaskHandler handles the back-office task queue.
type TaskHandler struct {
	service ports.TaskService
}

func NewTaskHandler(service ports.TaskService) *TaskHandler {
	return &TaskHandler{service: service}
}

type createTaskRequest struct {
	FormID string         `json:"form_id" validate:"required,oneof=vehicle-registration no-answer no-logicem-interest loading-restrictions referrals"`
	Data   map[string]any `json:"data" validate:"required"`
}

type closeTaskRequest struct {
	Observations string `json:"observations" validate:"required"`
}

// Create handles POST /v1/tasks: a data-update form submission turned into a
// queue entry.
//
// @Summary      Create a task from a data-update form
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTaskRequest  true  "Form submission"
// @Success      201   {object}  domain.Task
// @Failure      400   {object}  map[string]string
// @Router       /v1/tasks [post]
func (h *TaskHandler) Create(c echo.Context) error {
	act, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	task, err := h.service.Create(c.Request().Context(), ports.CreateTaskInput{
		FormID:    req.FormID,
		Data:      req.Data,
		CreatedBy: act.Email,
	})
	if err != nil {
		return err
	}

	metrics.TasksCreatedTotal.WithLabelValues(string(task.Category)).Inc()
	return c.JSON(http.StatusCreated, task)
}

// List handles GET /v1/tasks.
//
// @Summary      List tasks
// @Tags         tasks
// @Produce      json
// @Security     BearerAuth
// @Param        search    query     string  false  "Partial match on id or category"
// @Param        status    query     string  false  "pendiente | cerrada"
// @Param        category  query     string  false  "Task category"
// @Param        sort      query     string  false  "category | priority | status | created_at"
// @Param        dir       query     string  false  "asc | desc"
// @Param        page      query     int     false  "Page number"
// @Param        limit     query     int     false  "Page size"
// @Success      200       {object}  listResponse
// @Router       /v1/tasks [get]
func (h *TaskHandler) List(c echo.Context) error {
	q := parseListQuery(c)
	tasks, total, err := h.service.List(c.Request().Context(), ports.ListTasksFilter{
		Search:        q.Search,
		Status:        domain.TaskStatus(c.QueryParam("status")),
		Category:      domain.TaskCategory(c.QueryParam("category")),
		SortField:     q.SortField,
		SortAscending: q.Ascending,
		Page:          q.Page,
		Limit:         q.Limit,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, listResponse{Items: tasks, Total: total, Page: q.Page, Limit: q.Limit})
}

// Close handles POST /v1/tasks/:id/close. Observations are mandatory; a task
// already closed stays closed.
//
// @Summary      Close a task
// @Tags         tasks
// @Accept       json
// @Security     BearerAuth
// @Param        id    path  string            true  "Task id"
// @Param        body  body  closeTaskRequest  true  "Closing observations"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /v1/tasks/{id}/close [post]
func (h *TaskHandler) Close(c echo.Context) error {
	act, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req closeTaskRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.service.Close(c.Request().Context(), c.Param("id"), req.Observations, act.Email); err != nil {
		return err
	}

	metrics.TasksClosedTotal.Inc()
	return c.NoContent(http.StatusNoContent)
}
