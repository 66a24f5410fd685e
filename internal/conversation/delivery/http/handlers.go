package http

import (
	"github.com/gin-gonic/gin"

	"studyflow/internal/middleware"
	"studyflow/pkg/response"
)

// List godoc
// @Summary     List conversations
// @Description Returns the user's conversations, most recently active first.
// @Tags        Conversation
// @Produce     json
// @Param       X-User-ID header string true "User ID"
// @Success     200 {object} listResp
// @Failure     500 {object} response.Resp "Internal Server Error"
// @Router      /api/v1/conversations [GET]
func (h *handler) List(c *gin.Context) {
	ctx := c.Request.Context()
	sc := middleware.ScopeFrom(c)

	conversations, err := h.uc.List(ctx, sc)
	if err != nil {
		h.l.Errorf(ctx, "conversation.http.List: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newListResp(conversations))
}

// Detail godoc
// @Summary     Get a conversation
// @Description Returns one conversation owned by the user.
// @Tags        Conversation
// @Produce     json
// @Param       X-User-ID header string true "User ID"
// @Param       id        path   string true "Conversation ID"
// @Success     200 {object} conversationResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/conversations/{id} [GET]
func (h *handler) Detail(c *gin.Context) {
	ctx := c.Request.Context()
	sc := middleware.ScopeFrom(c)

	conv, err := h.uc.Get(ctx, sc, c.Param("id"))
	if err != nil {
		h.l.Errorf(ctx, "conversation.http.Detail: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, newConversationResp(conv))
}

// Messages godoc
// @Summary     List conversation messages
// @Description Returns all messages of a conversation, oldest first.
// @Tags        Conversation
// @Produce     json
// @Param       X-User-ID header string true "User ID"
// @Param       id        path   string true "Conversation ID"
// @Success     200 {object} messagesResp
// @Failure     404 {object} response.Resp "Not Found"
// @Router      /api/v1/conversations/{id}/messages [GET]
func (h *handler) Messages(c *gin.Context) {
	ctx := c.Request.Context()
	sc := middleware.ScopeFrom(c)

	messages, err := h.uc.Messages(ctx, sc, c.Param("id"))
	if err != nil {
		h.l.Errorf(ctx, "conversation.http.Messages: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newMessagesResp(messages))
}
