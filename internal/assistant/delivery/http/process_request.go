package http

import (
	"github.com/gin-gonic/gin"
)

// processStartReq binds and validates the start conversation request body.
func (h *handler) processStartReq(c *gin.Context) (startReq, error) {
	var req startReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	return req, req.validate()
}

// processSendReq binds the message request body + conversation URI param.
func (h *handler) processSendReq(c *gin.Context) (sendReq, error) {
	var req sendReq
	if err := c.ShouldBindJSON(&req); err != nil {
		return req, err
	}
	req.ConversationID = c.Param("id")
	if req.ConversationID == "" {
		return req, errMissingConversationID
	}
	return req, req.validate()
}
