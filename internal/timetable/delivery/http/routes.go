package http

import (
	"github.com/gin-gonic/gin"

	"studyflow/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods.
// POST is the explicit confirm step for chat suggestions; the chat
// pipeline itself never writes timetable classes.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	timetable := rg.Group("/timetable")
	{
		timetable.POST("/classes", mw.Auth(), h.Confirm)
		timetable.GET("", mw.Auth(), h.Week)
	}
}
