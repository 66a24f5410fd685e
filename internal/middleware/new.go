package middleware

import (
	"studyflow/pkg/log"
)

// Middleware bundles the cross-cutting HTTP middlewares.
type Middleware struct {
	l       log.Logger
	limiter *rateLimiter
}

// New creates the middleware set. requestsPerMin bounds each user's
// chat request rate; zero disables rate limiting.
func New(l log.Logger, requestsPerMin int) Middleware {
	var limiter *rateLimiter
	if requestsPerMin > 0 {
		limiter = newRateLimiter(requestsPerMin)
	}
	return Middleware{
		l:       l,
		limiter: limiter,
	}
}
