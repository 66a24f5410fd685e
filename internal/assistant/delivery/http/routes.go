package http

import (
	"github.com/gin-gonic/gin"

	"studyflow/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods.
// The chat endpoints carry the per-user rate limit; the one-shot
// insight endpoints only need auth.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	conversations := rg.Group("/conversations")
	{
		conversations.POST("", mw.Auth(), mw.RateLimit(), h.StartConversation)
		conversations.POST("/:id/messages", mw.Auth(), mw.RateLimit(), h.SendMessage)
		conversations.POST("/:id/messages/context-aware", mw.Auth(), mw.RateLimit(), h.SendMessageContextAware)
		conversations.POST("/:id/messages/stream", mw.Auth(), mw.RateLimit(), h.StreamMessage)
	}

	rg.GET("/daily-plan", mw.Auth(), h.DailyPlan)
	rg.GET("/weekly-insights", mw.Auth(), h.WeeklyInsights)
}
