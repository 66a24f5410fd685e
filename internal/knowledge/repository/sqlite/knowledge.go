package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"studyflow/internal/knowledge/repository"
	"studyflow/internal/model"
	"studyflow/internal/storage"
	pkgLog "studyflow/pkg/log"
)

type implRepository struct {
	l  pkgLog.Logger
	tm *storage.TxManager
}

// New creates a SQLite-backed knowledge repository.
func New(l pkgLog.Logger, tm *storage.TxManager) *implRepository {
	return &implRepository{l: l, tm: tm}
}

func (r *implRepository) SearchItems(ctx context.Context, opt repository.SearchItemsOptions) ([]model.KnowledgeItem, error) {
	var (
		where = []string{"user_id = ?", "archived = 0"}
		args  = []interface{}{opt.UserID}
	)
	if opt.ItemType != "" && opt.ItemType != "any" {
		where = append(where, "type = ?")
		args = append(args, opt.ItemType)
	}
	if opt.CategoryID != "" {
		where = append(where, "category_id = ?")
		args = append(args, opt.CategoryID)
	}
	if opt.LearningPathID != "" {
		where = append(where, "learning_path_id = ?")
		args = append(args, opt.LearningPathID)
	}

	if len(opt.Keywords) > 0 {
		var ors []string
		for _, kw := range opt.Keywords {
			kw = strings.TrimSpace(kw)
			if kw == "" {
				continue
			}
			like := "%" + escapeLike(kw) + "%"
			ors = append(ors, `(title LIKE ? ESCAPE '\' OR content LIKE ? ESCAPE '\' OR question LIKE ? ESCAPE '\' OR tags LIKE ? ESCAPE '\')`)
			args = append(args, like, like, like, like)
		}
		if len(ors) > 0 {
			where = append(where, "("+strings.Join(ors, " OR ")+")")
		}
	}

	query := `SELECT id, user_id, category_id, learning_path_id, type, title, content,
		question, answer, tags, view_count, last_reviewed_at, archived, created_at, updated_at
		FROM knowledge_items WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY last_reviewed_at IS NULL, last_reviewed_at DESC, view_count DESC`
	if opt.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opt.Limit)
	}

	rows, err := r.tm.QuerierFrom(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("search knowledge items: %w", err)
	}
	defer rows.Close()

	var items []model.KnowledgeItem
	for rows.Next() {
		var (
			item         model.KnowledgeItem
			rawTags      string
			lastReviewed sql.NullTime
		)
		if err := rows.Scan(
			&item.ID, &item.UserID, &item.CategoryID, &item.LearningPathID, &item.Type,
			&item.Title, &item.Content, &item.Question, &item.Answer, &rawTags,
			&item.ViewCount, &lastReviewed, &item.Archived, &item.CreatedAt, &item.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan knowledge item: %w", err)
		}
		if err := json.Unmarshal([]byte(rawTags), &item.Tags); err != nil {
			return nil, fmt.Errorf("unmarshal item tags: %w", err)
		}
		if lastReviewed.Valid {
			t := lastReviewed.Time
			item.LastReviewedAt = &t
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *implRepository) FindOrCreateCategory(ctx context.Context, userID, name string) (model.KnowledgeCategory, error) {
	q := r.tm.QuerierFrom(ctx)

	var c model.KnowledgeCategory
	err := q.QueryRowContext(ctx,
		`SELECT id, user_id, name, created_at FROM knowledge_categories WHERE user_id = ? AND name = ?`,
		userID, name,
	).Scan(&c.ID, &c.UserID, &c.Name, &c.CreatedAt)
	if err == nil {
		return c, nil
	}
	if err != sql.ErrNoRows {
		return model.KnowledgeCategory{}, fmt.Errorf("select category: %w", err)
	}

	c = model.KnowledgeCategory{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if _, err := q.ExecContext(ctx,
		`INSERT INTO knowledge_categories (id, user_id, name, created_at) VALUES (?, ?, ?, ?)`,
		c.ID, c.UserID, c.Name, c.CreatedAt,
	); err != nil {
		return model.KnowledgeCategory{}, fmt.Errorf("insert category: %w", err)
	}
	return c, nil
}

func (r *implRepository) CreateItem(ctx context.Context, opt repository.CreateItemOptions) (model.KnowledgeItem, error) {
	tags := opt.Tags
	if tags == nil {
		tags = []string{}
	}
	rawTags, err := json.Marshal(tags)
	if err != nil {
		return model.KnowledgeItem{}, fmt.Errorf("marshal item tags: %w", err)
	}

	now := time.Now().UTC()
	item := model.KnowledgeItem{
		ID:         uuid.NewString(),
		UserID:     opt.UserID,
		CategoryID: opt.CategoryID,
		Type:       opt.Type,
		Title:      opt.Title,
		Content:    opt.Content,
		Question:   opt.Question,
		Answer:     opt.Answer,
		Tags:       tags,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err = r.tm.QuerierFrom(ctx).ExecContext(ctx, `
		INSERT INTO knowledge_items
			(id, user_id, category_id, learning_path_id, type, title, content, question, answer, tags,
			 view_count, last_reviewed_at, archived, created_at, updated_at)
		VALUES (?, ?, ?, '', ?, ?, ?, ?, ?, ?, 0, NULL, 0, ?, ?)`,
		item.ID, item.UserID, item.CategoryID, item.Type, item.Title, item.Content,
		item.Question, item.Answer, string(rawTags), item.CreatedAt, item.UpdatedAt,
	)
	if err != nil {
		return model.KnowledgeItem{}, fmt.Errorf("insert knowledge item: %w", err)
	}
	return item, nil
}

func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}
