package http

import (
	"strings"
	"time"

	"studyflow/internal/knowledge"
	"studyflow/internal/model"
)

// --- Request DTOs ---

type searchReq struct {
	Type           string `form:"type"`
	Keywords       string `form:"keywords"` // comma-separated, OR-combined
	LearningPathID string `form:"learning_path_id"`
	CategoryID     string `form:"category_id"`
	Limit          int    `form:"limit"`
}

func (r searchReq) validate() error { return nil }

func (r searchReq) toInput() knowledge.SearchInput {
	var keywords []string
	for _, kw := range strings.Split(r.Keywords, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			keywords = append(keywords, kw)
		}
	}
	return knowledge.SearchInput{
		ItemType:       r.Type,
		Keywords:       keywords,
		LearningPathID: r.LearningPathID,
		CategoryID:     r.CategoryID,
		Limit:          r.Limit,
	}
}

type categoryReq struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

type itemReq struct {
	Type         string   `json:"type"          binding:"required,oneof=note code exercise resource"`
	Title        string   `json:"title"         binding:"required,min=1,max=255"`
	Content      string   `json:"content"       binding:"max=20000"`
	Question     string   `json:"question"      binding:"max=2000"`
	Answer       string   `json:"answer"        binding:"max=20000"`
	CategoryName string   `json:"category_name" binding:"max=255"`
	Tags         []string `json:"tags"`
}

type bundleReq struct {
	Categories []categoryReq `json:"categories"`
	Items      []itemReq     `json:"items"`
}

func (r bundleReq) validate() error { return nil }

func (r bundleReq) toInput() knowledge.CreateBundleInput {
	categories := make([]knowledge.CategorySpec, 0, len(r.Categories))
	for _, c := range r.Categories {
		categories = append(categories, knowledge.CategorySpec{Name: c.Name})
	}
	items := make([]knowledge.ItemSpec, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, knowledge.ItemSpec{
			Type:         model.KnowledgeItemType(it.Type),
			Title:        it.Title,
			Content:      it.Content,
			Question:     it.Question,
			Answer:       it.Answer,
			CategoryName: it.CategoryName,
			Tags:         it.Tags,
		})
	}
	return knowledge.CreateBundleInput{Categories: categories, Items: items}
}

// --- Response DTOs ---

type itemResp struct {
	ID             string     `json:"id"`
	Type           string     `json:"type"`
	Title          string     `json:"title"`
	Content        string     `json:"content,omitempty"`
	Question       string     `json:"question,omitempty"`
	Answer         string     `json:"answer,omitempty"`
	CategoryID     string     `json:"category_id,omitempty"`
	Tags           []string   `json:"tags,omitempty"`
	ViewCount      int        `json:"view_count"`
	LastReviewedAt *time.Time `json:"last_reviewed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

func newItemResp(item model.KnowledgeItem) itemResp {
	return itemResp{
		ID:             item.ID,
		Type:           string(item.Type),
		Title:          item.Title,
		Content:        item.Content,
		Question:       item.Question,
		Answer:         item.Answer,
		CategoryID:     item.CategoryID,
		Tags:           item.Tags,
		ViewCount:      item.ViewCount,
		LastReviewedAt: item.LastReviewedAt,
		CreatedAt:      item.CreatedAt,
	}
}

type searchResp struct {
	Items []itemResp `json:"items"`
}

func (h *handler) newSearchResp(items []model.KnowledgeItem) searchResp {
	out := make([]itemResp, len(items))
	for i, item := range items {
		out[i] = newItemResp(item)
	}
	return searchResp{Items: out}
}

type bundleResp struct {
	Success    bool       `json:"success"`
	Error      string     `json:"error,omitempty"`
	Categories []string   `json:"categories,omitempty"`
	Items      []itemResp `json:"items,omitempty"`
}

func (h *handler) newBundleResp(result knowledge.CreateBundleResult) bundleResp {
	categories := make([]string, 0, len(result.Categories))
	for _, c := range result.Categories {
		categories = append(categories, c.Name)
	}
	items := make([]itemResp, 0, len(result.Items))
	for _, item := range result.Items {
		items = append(items, newItemResp(item))
	}
	return bundleResp{
		Success:    result.Success,
		Error:      result.Error,
		Categories: categories,
		Items:      items,
	}
}
