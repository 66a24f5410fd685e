package conversation

import (
	"context"

	"studyflow/internal/model"
)

// UseCase defines the business logic interface for conversations.
type UseCase interface {
	// Create starts a new conversation for the user.
	Create(ctx context.Context, sc model.Scope, input CreateInput) (model.Conversation, error)

	// Get returns one conversation owned by the user.
	Get(ctx context.Context, sc model.Scope, id string) (model.Conversation, error)

	// List returns the user's conversations, most recently active first.
	List(ctx context.Context, sc model.Scope) ([]model.Conversation, error)

	// AppendMessage persists a message, bumps the conversation's
	// denormalized stats and auto-titles it from the first user message.
	AppendMessage(ctx context.Context, sc model.Scope, input AppendMessageInput) (model.Message, error)

	// Messages returns all messages of a conversation, oldest first.
	Messages(ctx context.Context, sc model.Scope, conversationID string) ([]model.Message, error)

	// History returns the most recent messages in chronological order,
	// capped at input.Limit.
	History(ctx context.Context, sc model.Scope, input HistoryInput) ([]model.Message, error)
}
