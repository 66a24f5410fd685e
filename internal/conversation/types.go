package conversation

import "studyflow/internal/model"

// CreateInput is the input for creating a conversation.
type CreateInput struct {
	Title string // optional; auto-generated from the first exchange if empty
}

// AppendMessageInput appends one message and bumps conversation stats.
type AppendMessageInput struct {
	ConversationID string
	Role           model.MessageRole
	Content        string
	TokenCount     int
	Metadata       map[string]interface{}
}

// HistoryInput bounds the recent-message window handed to the model.
type HistoryInput struct {
	ConversationID string
	Limit          int
}
