package knowledge

import (
	"context"

	"studyflow/internal/model"
)

// UseCase defines the business logic interface for the knowledge base.
type UseCase interface {
	// Search returns unarchived items scoped to the user, matched by
	// keyword substring and tag containment, most recently reviewed
	// first then by view count, capped at input.Limit.
	Search(ctx context.Context, sc model.Scope, input SearchInput) ([]model.KnowledgeItem, error)

	// CreateBundle creates categories and items; failures are reported
	// in the result, never returned as an error.
	CreateBundle(ctx context.Context, sc model.Scope, input CreateBundleInput) CreateBundleResult
}
