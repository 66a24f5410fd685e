package repository

import (
	"context"

	"studyflow/internal/model"
)

// Repository is the interface for conversation data access operations.
type Repository interface {
	CreateConversation(ctx context.Context, opt CreateConversationOptions) (model.Conversation, error)
	GetConversation(ctx context.Context, userID, id string) (model.Conversation, error)
	ListConversations(ctx context.Context, userID string) ([]model.Conversation, error)
	UpdateConversation(ctx context.Context, opt UpdateConversationOptions) error
	CreateMessage(ctx context.Context, opt CreateMessageOptions) (model.Message, error)
	ListMessages(ctx context.Context, opt ListMessagesOptions) ([]model.Message, error)
}
