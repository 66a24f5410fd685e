package middleware

import (
	"github.com/gin-gonic/gin"

	"studyflow/internal/model"
	"studyflow/pkg/response"
)

const userIDHeader = "X-User-ID"

const scopeKey = "scope"

// Auth resolves the request scope from the X-User-ID header.
// Authentication itself is handled upstream; this layer only requires
// the resolved identity to be present.
func (m Middleware) Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader(userIDHeader)
		if userID == "" {
			response.Unauthorized(c)
			c.Abort()
			return
		}
		c.Set(scopeKey, model.Scope{UserID: userID})
		c.Next()
	}
}

// ScopeFrom returns the scope set by Auth.
func ScopeFrom(c *gin.Context) model.Scope {
	if v, ok := c.Get(scopeKey); ok {
		if sc, ok := v.(model.Scope); ok {
			return sc
		}
	}
	return model.Scope{}
}
