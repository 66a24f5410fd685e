package http

import (
	"github.com/gin-gonic/gin"

	"studyflow/internal/middleware"
)

// RegisterRoutes maps HTTP verbs and paths to Handler methods.
func RegisterRoutes(rg *gin.RouterGroup, h *handler, mw middleware.Middleware) {
	knowledge := rg.Group("/knowledge")
	{
		knowledge.GET("/search", mw.Auth(), h.Search)
		knowledge.POST("/bundle", mw.Auth(), h.CreateBundle)
	}
}
