package model

// Scope carries the identity of the calling user through a request.
// Auth is handled upstream; the scope is derived from trusted headers.
type Scope struct {
	UserID string
}
