package http

import (
	"github.com/gin-gonic/gin"

	"studyflow/internal/task"
)

// processCreateReq binds and validates the create task request body.
func (h *handler) processCreateReq(c *gin.Context) (createReq, error) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}

// processUpdateStatusReq binds the status body + task URI param.
func (h *handler) processUpdateStatusReq(c *gin.Context) (updateStatusReq, error) {
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	req.ID = c.Param("id")
	if req.ID == "" {
		return req, task.ErrNotFound
	}
	return req, req.validate()
}
