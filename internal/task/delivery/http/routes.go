package http

import (
	"github.com/gin-gonic/gin"

	"studyflow/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	tasks := rg.Group("/tasks")
	{
		tasks.POST("", mw.Auth(), h.Create)
		tasks.GET("", mw.Auth(), h.List)
		tasks.GET("/open", mw.Auth(), h.ListOpen)
		tasks.PATCH("/:id/status", mw.Auth(), h.UpdateStatus)
	}
}
