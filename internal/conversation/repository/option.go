package repository

import (
	"time"

	"studyflow/internal/model"
)

// CreateConversationOptions holds the parameters for inserting a
// conversation row.
type CreateConversationOptions struct {
	UserID string
	Title  string
}

// UpdateConversationOptions applies a partial update; nil fields are
// left unchanged.
type UpdateConversationOptions struct {
	UserID        string
	ID            string
	Title         *string
	Status        *model.ConversationStatus
	MessageCount  *int
	LastMessageAt *time.Time
}

// CreateMessageOptions holds the parameters for inserting a message row.
type CreateMessageOptions struct {
	ConversationID string
	Role           model.MessageRole
	Content        string
	TokenCount     int
	Metadata       map[string]interface{}
}

// ListMessagesOptions bounds message listing. Limit 0 means no cap.
// When Newest is set the Limit applies to the most recent messages,
// returned in chronological order.
type ListMessagesOptions struct {
	ConversationID string
	Limit          int
	Newest         bool
}
