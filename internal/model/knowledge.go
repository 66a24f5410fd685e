package model

import "time"

// KnowledgeItemType classifies a knowledge entry.
type KnowledgeItemType string

const (
	KnowledgeNote     KnowledgeItemType = "note"
	KnowledgeCode     KnowledgeItemType = "code"
	KnowledgeExercise KnowledgeItemType = "exercise"
	KnowledgeResource KnowledgeItemType = "resource"
)

// KnowledgeCategory groups knowledge items per user, addressed by name.
type KnowledgeCategory struct {
	ID        string
	UserID    string
	Name      string
	CreatedAt time.Time
}

// KnowledgeItem is one entry in the personal knowledge base.
type KnowledgeItem struct {
	ID             string
	UserID         string
	CategoryID     string
	LearningPathID string
	Type           KnowledgeItemType
	Title          string
	Content        string
	Question       string
	Answer         string
	Tags           []string
	ViewCount      int
	LastReviewedAt *time.Time
	Archived       bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
