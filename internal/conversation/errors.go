package conversation

import "errors"

// Domain-specific errors for the conversation package.
var (
	ErrNotFound     = errors.New("conversation not found")
	ErrArchived     = errors.New("conversation is archived")
	ErrEmptyContent = errors.New("message content is empty")
)
