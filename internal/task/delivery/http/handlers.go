package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"studyflow/internal/middleware"
	"studyflow/internal/task"
	"studyflow/pkg/response"
)

// Create godoc
// @Summary     Create a task
// @Description Creates a task directly, with ordered subtasks and tags.
// @Tags        Task
// @Accept      json
// @Produce     json
// @Param       X-User-ID header string    true "User ID"
// @Param       body      body   createReq true "Task data"
// @Success     200 {object} taskResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Router      /api/v1/tasks [POST]
func (h *handler) Create(c *gin.Context) {
	ctx := c.Request.Context()
	sc := middleware.ScopeFrom(c)

	req, err := h.processCreateReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	created, err := h.uc.CreateWithDetails(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "task.http.Create: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newTaskResp(created))
}

// List godoc
// @Summary     List tasks
// @Description Returns all of the user's tasks, newest first.
// @Tags        Task
// @Produce     json
// @Param       X-User-ID header string true "User ID"
// @Success     200 {object} listResp
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks [GET]
func (h *handler) List(c *gin.Context) {
	ctx := c.Request.Context()
	sc := middleware.ScopeFrom(c)

	tasks, err := h.uc.List(ctx, sc)
	if err != nil {
		h.l.Errorf(ctx, "task.http.List: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newListResp(tasks))
}

// ListOpen godoc
// @Summary     List open tasks
// @Description Returns tasks not completed or cancelled, ordered by priority then nearest deadline.
// @Tags        Task
// @Produce     json
// @Param       X-User-ID header string true "User ID"
// @Param       limit     query  int    false "Max tasks (default: 10)"
// @Success     200 {object} listResp
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/tasks/open [GET]
func (h *handler) ListOpen(c *gin.Context) {
	ctx := c.Request.Context()
	sc := middleware.ScopeFrom(c)

	limit, _ := strconv.Atoi(c.Query("limit"))

	tasks, err := h.uc.ListOpen(ctx, sc, task.ListOpenInput{Limit: limit})
	if err != nil {
		h.l.Errorf(ctx, "task.http.ListOpen: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newListResp(tasks))
}

// UpdateStatus godoc
// @Summary     Update task status
// @Description Moves a task to a new lifecycle state.
// @Tags        Task
// @Accept      json
// @Produce     json
// @Param       X-User-ID header string          true "User ID"
// @Param       id        path   string          true "Task ID"
// @Param       body      body   updateStatusReq true "New status"
// @Success     200 {object} taskResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/tasks/{id}/status [PATCH]
func (h *handler) UpdateStatus(c *gin.Context) {
	ctx := c.Request.Context()
	sc := middleware.ScopeFrom(c)

	req, err := h.processUpdateStatusReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	updated, err := h.uc.UpdateStatus(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "task.http.UpdateStatus: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newTaskResp(updated))
}
