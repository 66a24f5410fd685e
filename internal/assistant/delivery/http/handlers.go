package http

import (
	"github.com/gin-gonic/gin"

	"studyflow/internal/middleware"
	"studyflow/pkg/response"
)

// StartConversation godoc
// @Summary     Start a conversation
// @Description Creates a conversation and runs the full multi-intent pipeline on the first message.
// @Tags        Assistant
// @Accept      json
// @Produce     json
// @Param       X-User-ID header string   true "User ID"
// @Param       body      body   startReq true "First message"
// @Success     200 {object} sendMessageResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     503 {object} response.Resp "Model unavailable"
// @Router      /api/v1/conversations [POST]
func (h *handler) StartConversation(c *gin.Context) {
	ctx := c.Request.Context()
	sc := middleware.ScopeFrom(c)

	req, err := h.processStartReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.StartConversation(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "assistant.http.StartConversation: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newSendMessageResp(output))
}

// SendMessage godoc
// @Summary     Send a message
// @Description Runs the plain pipeline (gate, lightweight check, task extraction) on an active conversation.
// @Tags        Assistant
// @Accept      json
// @Produce     json
// @Param       X-User-ID header string  true "User ID"
// @Param       id        path   string  true "Conversation ID"
// @Param       body      body   sendReq true "Message"
// @Success     200 {object} sendMessageResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Conversation not found"
// @Failure     409 {object} response.Resp "Conversation archived"
// @Failure     503 {object} response.Resp "Model unavailable"
// @Router      /api/v1/conversations/{id}/messages [POST]
func (h *handler) SendMessage(c *gin.Context) {
	ctx := c.Request.Context()
	sc := middleware.ScopeFrom(c)

	req, err := h.processSendReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.SendMessage(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "assistant.http.SendMessage: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newSendMessageResp(output))
}

// SendMessageContextAware godoc
// @Summary     Send a message with full context
// @Description Runs the full multi-intent pipeline: task creation, timetable suggestions, knowledge search and creation.
// @Tags        Assistant
// @Accept      json
// @Produce     json
// @Param       X-User-ID header string  true "User ID"
// @Param       id        path   string  true "Conversation ID"
// @Param       body      body   sendReq true "Message"
// @Success     200 {object} sendMessageResp
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Conversation not found"
// @Failure     409 {object} response.Resp "Conversation archived"
// @Failure     503 {object} response.Resp "Model unavailable"
// @Router      /api/v1/conversations/{id}/messages/context-aware [POST]
func (h *handler) SendMessageContextAware(c *gin.Context) {
	ctx := c.Request.Context()
	sc := middleware.ScopeFrom(c)

	req, err := h.processSendReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	output, err := h.uc.SendMessageContextAware(ctx, sc, req.toInput())
	if err != nil {
		h.l.Errorf(ctx, "assistant.http.SendMessageContextAware: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newSendMessageResp(output))
}

// DailyPlan godoc
// @Summary     Today's study plan
// @Description One-shot, context-assembled planning call; not tied to a conversation.
// @Tags        Assistant
// @Produce     json
// @Param       X-User-ID header string true "User ID"
// @Success     200 {object} insightResp
// @Failure     503 {object} response.Resp "Model unavailable"
// @Router      /api/v1/daily-plan [GET]
func (h *handler) DailyPlan(c *gin.Context) {
	ctx := c.Request.Context()
	sc := middleware.ScopeFrom(c)

	output, err := h.uc.DailyPlan(ctx, sc)
	if err != nil {
		h.l.Errorf(ctx, "assistant.http.DailyPlan: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newInsightResp(output))
}

// WeeklyInsights godoc
// @Summary     Weekly workload insights
// @Description One-shot, context-assembled review of the week; not tied to a conversation.
// @Tags        Assistant
// @Produce     json
// @Param       X-User-ID header string true "User ID"
// @Success     200 {object} insightResp
// @Failure     503 {object} response.Resp "Model unavailable"
// @Router      /api/v1/weekly-insights [GET]
func (h *handler) WeeklyInsights(c *gin.Context) {
	ctx := c.Request.Context()
	sc := middleware.ScopeFrom(c)

	output, err := h.uc.WeeklyInsights(ctx, sc)
	if err != nil {
		h.l.Errorf(ctx, "assistant.http.WeeklyInsights: %v", err)
		response.Error(c, h.mapError(err))
		return
	}

	response.OK(c, h.newInsightResp(output))
}
