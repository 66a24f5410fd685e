package knowledge

import "errors"

// Domain-specific errors for the knowledge package.
var (
	ErrEmptyTitle  = errors.New("knowledge item title is empty")
	ErrInvalidType = errors.New("knowledge item type must be note, code, exercise or resource")
)
