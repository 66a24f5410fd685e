package assistant

import "errors"

// Domain-specific errors for the assistant package.
var (
	ErrEmptyMessage = errors.New("message is empty")

	// ErrModelUnavailable is returned only on the lightweight path with
	// no detected intents: there is nothing to recover with, so the
	// failure surfaces as a 503 instead of a degraded reply.
	ErrModelUnavailable = errors.New("model unavailable")
)
