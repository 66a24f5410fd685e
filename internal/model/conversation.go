package model

import "time"

// ConversationStatus is the lifecycle state of a conversation.
type ConversationStatus string

const (
	ConversationActive   ConversationStatus = "active"
	ConversationArchived ConversationStatus = "archived"
)

// MessageRole identifies the author of a message.
type MessageRole string

const (
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
)

// Conversation is a persisted chat thread owned by a user. Title is
// auto-generated from the first exchange when the caller supplies none.
type Conversation struct {
	ID            string
	UserID        string
	Title         string
	Status        ConversationStatus
	MessageCount  int
	LastMessageAt *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Message is one immutable entry in a conversation, ordered by CreatedAt.
type Message struct {
	ID             string
	ConversationID string
	Role           MessageRole
	Content        string
	TokenCount     int
	Metadata       map[string]interface{}
	CreatedAt      time.Time
}
