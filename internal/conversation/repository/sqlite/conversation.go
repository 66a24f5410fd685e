package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"studyflow/internal/conversation/repository"
	"studyflow/internal/model"
)

const conversationColumns = `id, user_id, title, status, message_count,
	last_message_at, created_at, updated_at`

func (r *implRepository) CreateConversation(ctx context.Context, opt repository.CreateConversationOptions) (model.Conversation, error) {
	now := time.Now().UTC()
	c := model.Conversation{
		ID:        uuid.NewString(),
		UserID:    opt.UserID,
		Title:     opt.Title,
		Status:    model.ConversationActive,
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := r.tm.QuerierFrom(ctx).ExecContext(ctx, `
		INSERT INTO conversations (`+conversationColumns+`)
		VALUES (?, ?, ?, ?, 0, NULL, ?, ?)`,
		c.ID, c.UserID, c.Title, c.Status, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return model.Conversation{}, fmt.Errorf("insert conversation: %w", err)
	}
	return c, nil
}

func (r *implRepository) GetConversation(ctx context.Context, userID, id string) (model.Conversation, error) {
	row := r.tm.QuerierFrom(ctx).QueryRowContext(ctx,
		`SELECT `+conversationColumns+` FROM conversations WHERE user_id = ? AND id = ?`,
		userID, id,
	)
	c, err := scanConversation(row)
	if err == sql.ErrNoRows {
		return model.Conversation{}, err
	}
	if err != nil {
		return model.Conversation{}, fmt.Errorf("get conversation: %w", err)
	}
	return c, nil
}

func (r *implRepository) ListConversations(ctx context.Context, userID string) ([]model.Conversation, error) {
	rows, err := r.tm.QuerierFrom(ctx).QueryContext(ctx, `
		SELECT `+conversationColumns+` FROM conversations
		WHERE user_id = ?
		ORDER BY last_message_at IS NULL, last_message_at DESC, created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list conversations: %w", err)
	}
	defer rows.Close()

	var conversations []model.Conversation
	for rows.Next() {
		c, err := scanConversation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan conversation: %w", err)
		}
		conversations = append(conversations, c)
	}
	return conversations, rows.Err()
}

func (r *implRepository) UpdateConversation(ctx context.Context, opt repository.UpdateConversationOptions) error {
	var (
		sets = []string{"updated_at = ?"}
		args = []interface{}{time.Now().UTC()}
	)
	if opt.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *opt.Title)
	}
	if opt.Status != nil {
		sets = append(sets, "status = ?")
		args = append(args, *opt.Status)
	}
	if opt.MessageCount != nil {
		sets = append(sets, "message_count = ?")
		args = append(args, *opt.MessageCount)
	}
	if opt.LastMessageAt != nil {
		sets = append(sets, "last_message_at = ?")
		args = append(args, *opt.LastMessageAt)
	}
	args = append(args, opt.UserID, opt.ID)

	res, err := r.tm.QuerierFrom(ctx).ExecContext(ctx,
		`UPDATE conversations SET `+strings.Join(sets, ", ")+` WHERE user_id = ? AND id = ?`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("update conversation: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *implRepository) CreateMessage(ctx context.Context, opt repository.CreateMessageOptions) (model.Message, error) {
	metadata := opt.Metadata
	if metadata == nil {
		metadata = map[string]interface{}{}
	}
	raw, err := json.Marshal(metadata)
	if err != nil {
		return model.Message{}, fmt.Errorf("marshal message metadata: %w", err)
	}

	m := model.Message{
		ID:             uuid.NewString(),
		ConversationID: opt.ConversationID,
		Role:           opt.Role,
		Content:        opt.Content,
		TokenCount:     opt.TokenCount,
		Metadata:       metadata,
		CreatedAt:      time.Now().UTC(),
	}

	_, err = r.tm.QuerierFrom(ctx).ExecContext(ctx, `
		INSERT INTO messages (id, conversation_id, role, content, token_count, metadata, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.ConversationID, m.Role, m.Content, m.TokenCount, string(raw), m.CreatedAt,
	)
	if err != nil {
		return model.Message{}, fmt.Errorf("insert message: %w", err)
	}
	return m, nil
}

func (r *implRepository) ListMessages(ctx context.Context, opt repository.ListMessagesOptions) ([]model.Message, error) {
	query := `SELECT id, conversation_id, role, content, token_count, metadata, created_at
		FROM messages WHERE conversation_id = ? ORDER BY created_at`
	if opt.Newest {
		query += ` DESC`
	}
	if opt.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opt.Limit)
	}

	rows, err := r.tm.QuerierFrom(ctx).QueryContext(ctx, query, opt.ConversationID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		var (
			m   model.Message
			raw string
		)
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.Role, &m.Content, &m.TokenCount, &raw, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan message: %w", err)
		}
		if err := json.Unmarshal([]byte(raw), &m.Metadata); err != nil {
			return nil, fmt.Errorf("unmarshal message metadata: %w", err)
		}
		messages = append(messages, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}

	if opt.Newest {
		// Back to chronological order for the caller.
		for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
			messages[i], messages[j] = messages[j], messages[i]
		}
	}
	return messages, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanConversation(row rowScanner) (model.Conversation, error) {
	var (
		c      model.Conversation
		lastAt sql.NullTime
	)
	err := row.Scan(&c.ID, &c.UserID, &c.Title, &c.Status, &c.MessageCount, &lastAt, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return model.Conversation{}, err
	}
	if lastAt.Valid {
		t := lastAt.Time
		c.LastMessageAt = &t
	}
	return c, nil
}
