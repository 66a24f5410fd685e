package extract

import (
	"context"
	"errors"
	"strings"
	"testing"

	"studyflow/pkg/llmprovider"
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

// mockGenerator replays scripted responses in call order.
type mockGenerator struct {
	responses []string
	errs      []error
	calls     int
	prompts   []string
}

func (m *mockGenerator) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	idx := m.calls
	m.calls++
	m.prompts = append(m.prompts, req.Messages[len(req.Messages)-1].Content)
	var err error
	if idx < len(m.errs) {
		err = m.errs[idx]
	}
	if err != nil {
		return nil, err
	}
	content := ""
	if idx < len(m.responses) {
		content = m.responses[idx]
	}
	return &llmprovider.Response{Content: content}, nil
}

func TestQuickParse(t *testing.T) {
	parser := tokyoParser(t)

	t.Run("batched call parses all wanted intents", func(t *testing.T) {
		gen := &mockGenerator{responses: []string{"```json\n" + `{
			"task": {"title": "宿題", "priority": "high", "deadline": "2025-01-11", "scheduled_time": "15:00:00"},
			"timetable": {"name": "Linear Algebra", "day": "Monday", "start_time": "09:00", "end_time": "10:30"},
			"knowledge_query": null,
			"knowledge_create": null
		}` + "\n```"}}
		e := New(&mockLogger{}, gen, parser)

		intents, errs := e.QuickParse(context.Background(), "明日15時に宿題、月曜の授業も", nil, Wanted{Task: true, Timetable: true, KnowledgeQuery: true, KnowledgeCreate: true})
		if errs.Task != nil || errs.Timetable != nil {
			t.Fatalf("unexpected errors: %+v", errs)
		}
		if gen.calls != 1 {
			t.Errorf("expected one batched call, got %d", gen.calls)
		}
		if intents.Task == nil || intents.Task.Title != "宿題" {
			t.Fatalf("expected task intent, got %+v", intents.Task)
		}
		if intents.Task.Priority != 5 {
			t.Errorf("expected high priority mapped to 5, got %d", intents.Task.Priority)
		}
		if got := intents.Task.Deadline.Format("2006-01-02"); got != "2025-01-11" {
			t.Errorf("expected deadline 2025-01-11, got %s", got)
		}
		if intents.Timetable == nil {
			t.Fatal("expected timetable intent")
		}
		if intents.Timetable.Day != "monday" {
			t.Errorf("expected day lowercased, got %q", intents.Timetable.Day)
		}
		if intents.Timetable.Period != 2 {
			t.Errorf("expected derived period 2 for 90 minutes, got %d", intents.Timetable.Period)
		}
		if intents.Timetable.Color != "#6366F1" || intents.Timetable.Icon != "book" {
			t.Errorf("expected default styling, got %s/%s", intents.Timetable.Color, intents.Timetable.Icon)
		}
		if intents.KnowledgeQuery != nil || intents.KnowledgeCreate != nil {
			t.Error("expected null knowledge intents")
		}
	})

	t.Run("batch failure retries each extractor independently", func(t *testing.T) {
		gen := &mockGenerator{
			errs: []error{errors.New("batch timed out"), nil, nil},
			responses: []string{
				"",
				`{"title": "宿題", "priority": "medium", "deadline": "2025-01-11"}`,
				`null`,
			},
		}
		e := New(&mockLogger{}, gen, parser)

		intents, errs := e.QuickParse(context.Background(), "明日宿題、授業のことも", nil, Wanted{Task: true, Timetable: true})
		if gen.calls != 3 {
			t.Fatalf("expected batch plus two retries, got %d calls", gen.calls)
		}
		if errs.Task != nil {
			t.Errorf("unexpected task error: %v", errs.Task)
		}
		if intents.Task == nil || intents.Task.Title != "宿題" {
			t.Errorf("expected task from retry, got %+v", intents.Task)
		}
		if intents.Timetable != nil {
			t.Error("expected no timetable intent from null response")
		}
	})

	t.Run("one extractor failing does not block the others", func(t *testing.T) {
		gen := &mockGenerator{
			errs: []error{errors.New("batch down"), errors.New("task extractor down"), nil},
			responses: []string{
				"", "",
				`{"item_type": "note", "keywords": ["binary tree"]}`,
			},
		}
		e := New(&mockLogger{}, gen, parser)

		intents, errs := e.QuickParse(context.Background(), "ノートを見せて、タスクも", nil, Wanted{Task: true, KnowledgeQuery: true})
		if errs.Task == nil {
			t.Error("expected task extraction error to be recorded")
		}
		if errs.KnowledgeQuery != nil {
			t.Errorf("unexpected knowledge error: %v", errs.KnowledgeQuery)
		}
		if intents.KnowledgeQuery == nil || len(intents.KnowledgeQuery.Keywords) != 1 {
			t.Errorf("expected knowledge query intent, got %+v", intents.KnowledgeQuery)
		}
	})

	t.Run("only wanted extractors run", func(t *testing.T) {
		gen := &mockGenerator{responses: []string{`{"task": null}`}}
		e := New(&mockLogger{}, gen, parser)

		_, _ = e.QuickParse(context.Background(), "タスクある？", nil, Wanted{Task: true})
		if gen.calls != 1 {
			t.Fatalf("expected single call, got %d", gen.calls)
		}
		if strings.Contains(gen.prompts[0], "timetable") {
			t.Error("expected prompt without timetable section")
		}
	})

	t.Run("query item type defaults to any", func(t *testing.T) {
		gen := &mockGenerator{responses: []string{`{"knowledge_query": {"keywords": ["sql"]}}`}}
		e := New(&mockLogger{}, gen, parser)

		intents, _ := e.QuickParse(context.Background(), "sqlのノートある？", nil, Wanted{KnowledgeQuery: true})
		if intents.KnowledgeQuery == nil || intents.KnowledgeQuery.ItemType != "any" {
			t.Errorf("expected item_type any, got %+v", intents.KnowledgeQuery)
		}
	})
}

func TestSanitizeJSONResponse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"fenced json", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced bare", "```\n[1,2]\n```", `[1,2]`},
		{"leading prose", `Here is the result: {"a":1} hope that helps`, `{"a":1}`},
		{"plain json", `{"a":1}`, `{"a":1}`},
		{"no json at all", "sorry, I cannot", "sorry, I cannot"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeJSONResponse(tt.in); got != tt.want {
				t.Errorf("sanitizeJSONResponse(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
