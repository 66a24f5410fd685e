package repository

import (
	"context"

	"studyflow/internal/model"
)

// Repository is the interface for knowledge data access operations.
type Repository interface {
	SearchItems(ctx context.Context, opt SearchItemsOptions) ([]model.KnowledgeItem, error)
	FindOrCreateCategory(ctx context.Context, userID, name string) (model.KnowledgeCategory, error)
	CreateItem(ctx context.Context, opt CreateItemOptions) (model.KnowledgeItem, error)
}

// SearchItemsOptions holds the parameters for the knowledge search.
// Keywords are OR-combined: an item matches when any keyword appears in
// its title, content, question or tags.
type SearchItemsOptions struct {
	UserID         string
	ItemType       string // empty matches all types
	Keywords       []string
	LearningPathID string
	CategoryID     string
	Limit          int
}

// CreateItemOptions holds the parameters for inserting an item row.
type CreateItemOptions struct {
	UserID     string
	CategoryID string
	Type       model.KnowledgeItemType
	Title      string
	Content    string
	Question   string
	Answer     string
	Tags       []string
}
