package usecase

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"testing"
	"time"

	"studyflow/internal/conversation"
	"studyflow/internal/conversation/repository"
	"studyflow/internal/model"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                     {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)   {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) DPanicf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Panic(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Panicf(ctx context.Context, template string, arg ...any)  {}

type mockRepo struct {
	conversations map[string]model.Conversation
	messages      []model.Message
	lastUpdate    repository.UpdateConversationOptions
	lastListOpt   repository.ListMessagesOptions
}

func newMockRepo() *mockRepo {
	return &mockRepo{conversations: map[string]model.Conversation{}}
}

func (m *mockRepo) CreateConversation(ctx context.Context, opt repository.CreateConversationOptions) (model.Conversation, error) {
	c := model.Conversation{
		ID:        "conv-1",
		UserID:    opt.UserID,
		Title:     opt.Title,
		Status:    model.ConversationActive,
		CreatedAt: time.Now(),
	}
	m.conversations[c.ID] = c
	return c, nil
}

func (m *mockRepo) GetConversation(ctx context.Context, userID, id string) (model.Conversation, error) {
	c, ok := m.conversations[id]
	if !ok || c.UserID != userID {
		return model.Conversation{}, sql.ErrNoRows
	}
	return c, nil
}

func (m *mockRepo) ListConversations(ctx context.Context, userID string) ([]model.Conversation, error) {
	var out []model.Conversation
	for _, c := range m.conversations {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *mockRepo) UpdateConversation(ctx context.Context, opt repository.UpdateConversationOptions) error {
	m.lastUpdate = opt
	c := m.conversations[opt.ID]
	if opt.Title != nil {
		c.Title = *opt.Title
	}
	if opt.MessageCount != nil {
		c.MessageCount = *opt.MessageCount
	}
	m.conversations[opt.ID] = c
	return nil
}

func (m *mockRepo) CreateMessage(ctx context.Context, opt repository.CreateMessageOptions) (model.Message, error) {
	msg := model.Message{
		ID:             "msg-1",
		ConversationID: opt.ConversationID,
		Role:           opt.Role,
		Content:        opt.Content,
		CreatedAt:      time.Now(),
	}
	m.messages = append(m.messages, msg)
	return msg, nil
}

func (m *mockRepo) ListMessages(ctx context.Context, opt repository.ListMessagesOptions) ([]model.Message, error) {
	m.lastListOpt = opt
	return m.messages, nil
}

func TestAppendMessage(t *testing.T) {
	sc := model.Scope{UserID: "user-1"}

	setup := func() (*mockRepo, *implUseCase, model.Conversation) {
		repo := newMockRepo()
		uc := New(&mockLogger{}, repo)
		c, _ := repo.CreateConversation(context.Background(), repository.CreateConversationOptions{UserID: sc.UserID})
		return repo, uc, c
	}

	t.Run("bumps stats and auto-titles from first user message", func(t *testing.T) {
		repo, uc, c := setup()

		_, err := uc.AppendMessage(context.Background(), sc, conversation.AppendMessageInput{
			ConversationID: c.ID,
			Role:           model.RoleUser,
			Content:        "明日の予定を教えて",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.lastUpdate.MessageCount == nil || *repo.lastUpdate.MessageCount != 1 {
			t.Error("expected message count bumped to 1")
		}
		if repo.lastUpdate.Title == nil || *repo.lastUpdate.Title != "明日の予定を教えて" {
			t.Errorf("expected auto title, got %v", repo.lastUpdate.Title)
		}
	})

	t.Run("does not retitle a titled conversation", func(t *testing.T) {
		repo, uc, c := setup()
		titled := repo.conversations[c.ID]
		titled.Title = "existing"
		repo.conversations[c.ID] = titled

		_, err := uc.AppendMessage(context.Background(), sc, conversation.AppendMessageInput{
			ConversationID: c.ID,
			Role:           model.RoleUser,
			Content:        "hello",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.lastUpdate.Title != nil {
			t.Errorf("expected no title update, got %q", *repo.lastUpdate.Title)
		}
	})

	t.Run("assistant message never titles", func(t *testing.T) {
		repo, uc, c := setup()

		_, err := uc.AppendMessage(context.Background(), sc, conversation.AppendMessageInput{
			ConversationID: c.ID,
			Role:           model.RoleAssistant,
			Content:        "reply",
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.lastUpdate.Title != nil {
			t.Error("expected no title from assistant message")
		}
	})

	t.Run("rejects empty content", func(t *testing.T) {
		_, uc, c := setup()
		_, err := uc.AppendMessage(context.Background(), sc, conversation.AppendMessageInput{
			ConversationID: c.ID,
			Role:           model.RoleUser,
			Content:        "  ",
		})
		if !errors.Is(err, conversation.ErrEmptyContent) {
			t.Errorf("expected ErrEmptyContent, got %v", err)
		}
	})

	t.Run("rejects archived conversation", func(t *testing.T) {
		repo, uc, c := setup()
		archived := repo.conversations[c.ID]
		archived.Status = model.ConversationArchived
		repo.conversations[c.ID] = archived

		_, err := uc.AppendMessage(context.Background(), sc, conversation.AppendMessageInput{
			ConversationID: c.ID,
			Role:           model.RoleUser,
			Content:        "hi",
		})
		if !errors.Is(err, conversation.ErrArchived) {
			t.Errorf("expected ErrArchived, got %v", err)
		}
	})

	t.Run("unknown conversation maps to not found", func(t *testing.T) {
		_, uc, _ := setup()
		_, err := uc.AppendMessage(context.Background(), sc, conversation.AppendMessageInput{
			ConversationID: "missing",
			Role:           model.RoleUser,
			Content:        "hi",
		})
		if !errors.Is(err, conversation.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestHistory(t *testing.T) {
	sc := model.Scope{UserID: "user-1"}
	repo := newMockRepo()
	uc := New(&mockLogger{}, repo)
	c, _ := repo.CreateConversation(context.Background(), repository.CreateConversationOptions{UserID: sc.UserID})

	if _, err := uc.History(context.Background(), sc, conversation.HistoryInput{ConversationID: c.ID, Limit: 6}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if repo.lastListOpt.Limit != 6 || !repo.lastListOpt.Newest {
		t.Errorf("expected newest-first limit 6, got %+v", repo.lastListOpt)
	}
}

func TestAutoTitle(t *testing.T) {
	t.Run("truncates long titles", func(t *testing.T) {
		long := strings.Repeat("a", 80)
		got := autoTitle(long)
		if len([]rune(got)) != autoTitleMaxRunes+1 {
			t.Errorf("expected %d runes plus ellipsis, got %d", autoTitleMaxRunes, len([]rune(got)))
		}
	})

	t.Run("uses first line only", func(t *testing.T) {
		got := autoTitle("first line\nsecond line")
		if got != "first line" {
			t.Errorf("expected first line, got %q", got)
		}
	})
}
