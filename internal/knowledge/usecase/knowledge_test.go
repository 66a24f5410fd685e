package usecase

import (
	"context"
	"errors"
	"testing"

	"studyflow/internal/knowledge"
	"studyflow/internal/knowledge/repository"
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
	searchOpt     repository.SearchItemsOptions
	searchResult  []model.KnowledgeItem
	categoryCalls []string
	itemCalls     []repository.CreateItemOptions
	itemErr       error
}

func (m *mockRepo) SearchItems(ctx context.Context, opt repository.SearchItemsOptions) ([]model.KnowledgeItem, error) {
	m.searchOpt = opt
	return m.searchResult, nil
}

func (m *mockRepo) FindOrCreateCategory(ctx context.Context, userID, name string) (model.KnowledgeCategory, error) {
	m.categoryCalls = append(m.categoryCalls, name)
	return model.KnowledgeCategory{ID: "cat-" + name, UserID: userID, Name: name}, nil
}

func (m *mockRepo) CreateItem(ctx context.Context, opt repository.CreateItemOptions) (model.KnowledgeItem, error) {
	if m.itemErr != nil {
		return model.KnowledgeItem{}, m.itemErr
	}
	m.itemCalls = append(m.itemCalls, opt)
	return model.KnowledgeItem{ID: "item-1", UserID: opt.UserID, Title: opt.Title, Type: opt.Type}, nil
}

func TestSearch(t *testing.T) {
	sc := model.Scope{UserID: "user-1"}

	t.Run("treats any as no type filter", func(t *testing.T) {
		repo := &mockRepo{}
		uc := New(&mockLogger{}, repo)

		_, err := uc.Search(context.Background(), sc, knowledge.SearchInput{
			ItemType: "any",
			Keywords: []string{"binary", "tree"},
			Limit:    3,
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.searchOpt.ItemType != "" {
			t.Errorf("expected empty type filter, got %q", repo.searchOpt.ItemType)
		}
		if repo.searchOpt.Limit != 3 {
			t.Errorf("expected limit 3, got %d", repo.searchOpt.Limit)
		}
	})

	t.Run("applies default limit", func(t *testing.T) {
		repo := &mockRepo{}
		uc := New(&mockLogger{}, repo)

		if _, err := uc.Search(context.Background(), sc, knowledge.SearchInput{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if repo.searchOpt.Limit != defaultSearchLimit {
			t.Errorf("expected default limit %d, got %d", defaultSearchLimit, repo.searchOpt.Limit)
		}
	})
}

func TestCreateBundle(t *testing.T) {
	sc := model.Scope{UserID: "user-1"}

	t.Run("creates categories and items", func(t *testing.T) {
		repo := &mockRepo{}
		uc := New(&mockLogger{}, repo)

		result := uc.CreateBundle(context.Background(), sc, knowledge.CreateBundleInput{
			Categories: []knowledge.CategorySpec{{Name: "Algorithms"}},
			Items: []knowledge.ItemSpec{
				{Type: model.KnowledgeNote, Title: "BFS", Content: "breadth first", CategoryName: "Algorithms"},
				{Type: model.KnowledgeCode, Title: "quicksort", Content: "func qs()"},
			},
		})
		if !result.Success {
			t.Fatalf("expected success, got error %q", result.Error)
		}
		if len(result.Categories) != 1 || len(result.Items) != 2 {
			t.Errorf("expected 1 category and 2 items, got %d/%d", len(result.Categories), len(result.Items))
		}
		// Category created once, reused for the item targeting it.
		if len(repo.categoryCalls) != 1 {
			t.Errorf("expected 1 category call, got %v", repo.categoryCalls)
		}
	})

	t.Run("creates category on demand for item", func(t *testing.T) {
		repo := &mockRepo{}
		uc := New(&mockLogger{}, repo)

		result := uc.CreateBundle(context.Background(), sc, knowledge.CreateBundleInput{
			Items: []knowledge.ItemSpec{
				{Type: model.KnowledgeNote, Title: "note", CategoryName: "New Category"},
			},
		})
		if !result.Success {
			t.Fatalf("expected success, got %q", result.Error)
		}
		if len(repo.categoryCalls) != 1 || repo.categoryCalls[0] != "New Category" {
			t.Errorf("expected on-demand category, got %v", repo.categoryCalls)
		}
	})

	t.Run("reports failure instead of propagating", func(t *testing.T) {
		repo := &mockRepo{itemErr: errors.New("disk full")}
		uc := New(&mockLogger{}, repo)

		result := uc.CreateBundle(context.Background(), sc, knowledge.CreateBundleInput{
			Items: []knowledge.ItemSpec{{Type: model.KnowledgeNote, Title: "x"}},
		})
		if result.Success {
			t.Fatal("expected failure result")
		}
		if result.Error == "" {
			t.Error("expected failure detail")
		}
	})

	t.Run("rejects unknown item type", func(t *testing.T) {
		uc := New(&mockLogger{}, &mockRepo{})
		result := uc.CreateBundle(context.Background(), sc, knowledge.CreateBundleInput{
			Items: []knowledge.ItemSpec{{Type: "video", Title: "x"}},
		})
		if result.Success {
			t.Fatal("expected failure for unknown type")
		}
	})
}
