package http

import (
	"github.com/gin-gonic/gin"

	"studyflow/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods.
// Writes to conversations go through the assistant endpoints; this
// surface is read-only.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	conversations := rg.Group("/conversations")
	{
		conversations.GET("", mw.Auth(), h.List)
		conversations.GET("/:id", mw.Auth(), h.Detail)
		conversations.GET("/:id/messages", mw.Auth(), h.Messages)
	}
}
