package usecase

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"unicode/utf8"

	"studyflow/internal/conversation"
	"studyflow/internal/conversation/repository"
	"studyflow/internal/model"
)

const (
	defaultHistoryLimit = 20
	autoTitleMaxRunes   = 50
)

func (uc *implUseCase) Create(ctx context.Context, sc model.Scope, input conversation.CreateInput) (model.Conversation, error) {
	created, err := uc.repo.CreateConversation(ctx, repository.CreateConversationOptions{
		UserID: sc.UserID,
		Title:  strings.TrimSpace(input.Title),
	})
	if err != nil {
		uc.l.Errorf(ctx, "conversation.usecase.Create: %v", err)
		return model.Conversation{}, err
	}
	return created, nil
}

func (uc *implUseCase) Get(ctx context.Context, sc model.Scope, id string) (model.Conversation, error) {
	c, err := uc.repo.GetConversation(ctx, sc.UserID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Conversation{}, conversation.ErrNotFound
		}
		uc.l.Errorf(ctx, "conversation.usecase.Get: %v", err)
		return model.Conversation{}, err
	}
	return c, nil
}

func (uc *implUseCase) List(ctx context.Context, sc model.Scope) ([]model.Conversation, error) {
	conversations, err := uc.repo.ListConversations(ctx, sc.UserID)
	if err != nil {
		uc.l.Errorf(ctx, "conversation.usecase.List: %v", err)
		return nil, err
	}
	return conversations, nil
}

func (uc *implUseCase) AppendMessage(ctx context.Context, sc model.Scope, input conversation.AppendMessageInput) (model.Message, error) {
	if strings.TrimSpace(input.Content) == "" {
		return model.Message{}, conversation.ErrEmptyContent
	}

	c, err := uc.Get(ctx, sc, input.ConversationID)
	if err != nil {
		return model.Message{}, err
	}
	if c.Status == model.ConversationArchived {
		return model.Message{}, conversation.ErrArchived
	}

	msg, err := uc.repo.CreateMessage(ctx, repository.CreateMessageOptions{
		ConversationID: input.ConversationID,
		Role:           input.Role,
		Content:        input.Content,
		TokenCount:     input.TokenCount,
		Metadata:       input.Metadata,
	})
	if err != nil {
		uc.l.Errorf(ctx, "conversation.usecase.AppendMessage.CreateMessage: %v", err)
		return model.Message{}, err
	}

	count := c.MessageCount + 1
	update := repository.UpdateConversationOptions{
		UserID:        sc.UserID,
		ID:            c.ID,
		MessageCount:  &count,
		LastMessageAt: &msg.CreatedAt,
	}
	if c.Title == "" && input.Role == model.RoleUser {
		title := autoTitle(input.Content)
		update.Title = &title
	}
	if err := uc.repo.UpdateConversation(ctx, update); err != nil {
		uc.l.Errorf(ctx, "conversation.usecase.AppendMessage.UpdateConversation: %v", err)
		return model.Message{}, err
	}

	return msg, nil
}

func (uc *implUseCase) Messages(ctx context.Context, sc model.Scope, conversationID string) ([]model.Message, error) {
	if _, err := uc.Get(ctx, sc, conversationID); err != nil {
		return nil, err
	}
	messages, err := uc.repo.ListMessages(ctx, repository.ListMessagesOptions{ConversationID: conversationID})
	if err != nil {
		uc.l.Errorf(ctx, "conversation.usecase.Messages: %v", err)
		return nil, err
	}
	return messages, nil
}

func (uc *implUseCase) History(ctx context.Context, sc model.Scope, input conversation.HistoryInput) ([]model.Message, error) {
	if _, err := uc.Get(ctx, sc, input.ConversationID); err != nil {
		return nil, err
	}
	limit := input.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	messages, err := uc.repo.ListMessages(ctx, repository.ListMessagesOptions{
		ConversationID: input.ConversationID,
		Limit:          limit,
		Newest:         true,
	})
	if err != nil {
		uc.l.Errorf(ctx, "conversation.usecase.History: %v", err)
		return nil, err
	}
	return messages, nil
}

// autoTitle derives a conversation title from the first user message.
func autoTitle(content string) string {
	title := strings.TrimSpace(content)
	if idx := strings.IndexAny(title, "\r\n"); idx >= 0 {
		title = strings.TrimSpace(title[:idx])
	}
	if utf8.RuneCountInString(title) > autoTitleMaxRunes {
		runes := []rune(title)
		title = string(runes[:autoTitleMaxRunes]) + "…"
	}
	return title
}
