package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"studyflow/internal/assistant"
	"studyflow/internal/middleware"
	"studyflow/pkg/response"
)

// StreamMessage godoc
// @Summary     Send a message, streamed
// @Description Runs the full pipeline with a streaming model call. Events are SSE data frames of {type, content?, message_id?, full_content?}.
// @Tags        Assistant
// @Accept      json
// @Produce     text/event-stream
// @Param       X-User-ID header string  true "User ID"
// @Param       id        path   string  true "Conversation ID"
// @Param       body      body   sendReq true "Message"
// @Success     200 {string} string "SSE stream"
// @Failure     400 {object} response.Resp "Bad Request"
// @Failure     404 {object} response.Resp "Conversation not found"
// @Router      /api/v1/conversations/{id}/messages/stream [POST]
func (h *handler) StreamMessage(c *gin.Context) {
	ctx := c.Request.Context()
	sc := middleware.ScopeFrom(c)

	req, err := h.processSendReq(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set("X-Accel-Buffering", "no")

	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		response.Error(c, response.NewHTTPError(500, "streaming unsupported"))
		return
	}
	c.Writer.WriteHeader(http.StatusOK)
	flusher.Flush()

	emit := func(event assistant.StreamEvent) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		payload, err := json.Marshal(event)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(c.Writer, "data: %s\n\n", payload); err != nil {
			return err
		}
		flusher.Flush()
		return nil
	}

	if err := h.uc.StreamMessage(ctx, sc, req.toInput(), emit); err != nil {
		if errors.Is(err, ctx.Err()) {
			h.l.Infof(ctx, "assistant.http.StreamMessage: client disconnected")
			return
		}
		h.l.Errorf(ctx, "assistant.http.StreamMessage: %v", err)
		// Headers are already sent; push the failure as a stream event.
		_ = emit(assistant.StreamEvent{Type: assistant.StreamEventError, Content: "stream failed"})
	}
}
