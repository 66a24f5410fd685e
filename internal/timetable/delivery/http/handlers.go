package http

import (
	"github.com/gin-gonic/gin"

	"studyflow/internal/middleware"
	"studyflow/pkg/response"
)

// Confirm godoc
// @Summary     Confirm a timetable class
// @Description Persists a class the user accepted from a chat suggestion or entered directly.
// @Tags        Timetable
// @Accept      json
// @Produce     json
// @Param       X-User-ID header string     true "User ID"
// @Param       body      body   confirmReq true "Class data"
// @Success     200 {object} classResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Router      /api/v1/timetable/classes [POST]
func (h *handler) Confirm(c *gin.Context) {
	ctx := c.Request.Context()
	sc := middleware.ScopeFrom(c)

	var req confirmReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	created, err := h.uc.Confirm(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "timetable.http.Confirm: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newClassResp(created))
}

// Week godoc
// @Summary     Get the weekly timetable
// @Description Returns the entire week grouped by day name, every day present.
// @Tags        Timetable
// @Produce     json
// @Param       X-User-ID header string true "User ID"
// @Success     200 {object} weekResp
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/timetable [GET]
func (h *handler) Week(c *gin.Context) {
	ctx := c.Request.Context()
	sc := middleware.ScopeFrom(c)

	week, err := h.uc.Week(ctx, sc)
	if err != nil {
		h.l.Errorf(ctx, "timetable.http.Week: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newWeekResp(week))
}
