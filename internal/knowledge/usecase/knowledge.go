package usecase

import (
	"context"
	"fmt"
	"strings"

	"studyflow/internal/knowledge"
	"studyflow/internal/knowledge/repository"
	"studyflow/internal/model"
)

const defaultSearchLimit = 5

func (uc *implUseCase) Search(ctx context.Context, sc model.Scope, input knowledge.SearchInput) ([]model.KnowledgeItem, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	itemType := strings.TrimSpace(input.ItemType)
	if itemType == "any" {
		itemType = ""
	}

	items, err := uc.repo.SearchItems(ctx, repository.SearchItemsOptions{
		UserID:         sc.UserID,
		ItemType:       itemType,
		Keywords:       input.Keywords,
		LearningPathID: input.LearningPathID,
		CategoryID:     input.CategoryID,
		Limit:          limit,
	})
	if err != nil {
		uc.l.Errorf(ctx, "knowledge.usecase.Search: %v", err)
		return nil, err
	}
	return items, nil
}

func (uc *implUseCase) CreateBundle(ctx context.Context, sc model.Scope, input knowledge.CreateBundleInput) knowledge.CreateBundleResult {
	result := knowledge.CreateBundleResult{Success: true}

	categoriesByName := map[string]model.KnowledgeCategory{}
	for _, spec := range input.Categories {
		name := strings.TrimSpace(spec.Name)
		if name == "" {
			continue
		}
		c, err := uc.repo.FindOrCreateCategory(ctx, sc.UserID, name)
		if err != nil {
			uc.l.Errorf(ctx, "knowledge.usecase.CreateBundle.FindOrCreateCategory: %v", err)
			return failure(fmt.Sprintf("create category %q: %v", name, err))
		}
		categoriesByName[name] = c
		result.Categories = append(result.Categories, c)
	}

	for _, spec := range input.Items {
		title := strings.TrimSpace(spec.Title)
		if title == "" {
			return failure(knowledge.ErrEmptyTitle.Error())
		}
		switch spec.Type {
		case model.KnowledgeNote, model.KnowledgeCode, model.KnowledgeExercise, model.KnowledgeResource:
		default:
			return failure(knowledge.ErrInvalidType.Error())
		}

		categoryID := ""
		if name := strings.TrimSpace(spec.CategoryName); name != "" {
			c, ok := categoriesByName[name]
			if !ok {
				var err error
				c, err = uc.repo.FindOrCreateCategory(ctx, sc.UserID, name)
				if err != nil {
					uc.l.Errorf(ctx, "knowledge.usecase.CreateBundle.FindOrCreateCategory: %v", err)
					return failure(fmt.Sprintf("create category %q: %v", name, err))
				}
				categoriesByName[name] = c
			}
			categoryID = c.ID
		}

		item, err := uc.repo.CreateItem(ctx, repository.CreateItemOptions{
			UserID:     sc.UserID,
			CategoryID: categoryID,
			Type:       spec.Type,
			Title:      title,
			Content:    spec.Content,
			Question:   spec.Question,
			Answer:     spec.Answer,
			Tags:       spec.Tags,
		})
		if err != nil {
			uc.l.Errorf(ctx, "knowledge.usecase.CreateBundle.CreateItem: %v", err)
			return failure(fmt.Sprintf("create item %q: %v", title, err))
		}
		result.Items = append(result.Items, item)
	}

	return result
}

func failure(msg string) knowledge.CreateBundleResult {
	return knowledge.CreateBundleResult{Success: false, Error: msg}
}
