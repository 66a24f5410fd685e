package knowledge

import "studyflow/internal/model"

// SearchInput drives a read-only knowledge search. ItemType "any" (or
// empty) matches every type. Keywords are OR-combined.
type SearchInput struct {
	ItemType       string
	Keywords       []string
	LearningPathID string
	CategoryID     string
	Limit          int
}

// CategorySpec names a category to create (idempotent per user).
type CategorySpec struct {
	Name string
}

// ItemSpec describes one knowledge item to create. CategoryName uses
// name-or-create semantics within the user's namespace.
type ItemSpec struct {
	Type         model.KnowledgeItemType
	Title        string
	Content      string
	Question     string
	Answer       string
	CategoryName string
	Tags         []string
}

// CreateBundleInput creates zero or more categories and items in one call.
type CreateBundleInput struct {
	Categories []CategorySpec
	Items      []ItemSpec
}

// CreateBundleResult reports the outcome without propagating errors;
// the chat pipeline surfaces it as a structured payload.
type CreateBundleResult struct {
	Success    bool
	Error      string
	Categories []model.KnowledgeCategory
	Items      []model.KnowledgeItem
}
