package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"studyflow/internal/assistant"
	"studyflow/internal/assistant/extract"
	"studyflow/internal/conversation"
	"studyflow/internal/knowledge"
	"studyflow/internal/model"
	"studyflow/internal/task"
	"studyflow/internal/timetable"
	"studyflow/pkg/datemath"
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

// mockTx runs the function directly and counts rollbacks (fn errors).
type mockTx struct {
	commits   int
	rollbacks int
}

func (m *mockTx) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := fn(ctx); err != nil {
		m.rollbacks++
		return err
	}
	m.commits++
	return nil
}

// mockConvUC records appended messages and serves history.
type mockConvUC struct {
	appended  []conversation.AppendMessageInput
	history   []model.Message
	appendErr error
	nextID    int
}

func (m *mockConvUC) Create(ctx context.Context, sc model.Scope, input conversation.CreateInput) (model.Conversation, error) {
	return model.Conversation{ID: "conv-1", UserID: sc.UserID, Title: input.Title}, nil
}

func (m *mockConvUC) Get(ctx context.Context, sc model.Scope, id string) (model.Conversation, error) {
	return model.Conversation{ID: id, UserID: sc.UserID}, nil
}

func (m *mockConvUC) List(ctx context.Context, sc model.Scope) ([]model.Conversation, error) {
	return nil, nil
}

func (m *mockConvUC) AppendMessage(ctx context.Context, sc model.Scope, input conversation.AppendMessageInput) (model.Message, error) {
	if m.appendErr != nil {
		return model.Message{}, m.appendErr
	}
	m.appended = append(m.appended, input)
	m.nextID++
	return model.Message{
		ID:             fmt.Sprintf("msg-%d", m.nextID),
		ConversationID: input.ConversationID,
		Role:           input.Role,
		Content:        input.Content,
	}, nil
}

func (m *mockConvUC) Messages(ctx context.Context, sc model.Scope, conversationID string) ([]model.Message, error) {
	return m.history, nil
}

func (m *mockConvUC) History(ctx context.Context, sc model.Scope, input conversation.HistoryInput) ([]model.Message, error) {
	return m.history, nil
}

// lastAssistant returns the most recent assistant append, if any.
func (m *mockConvUC) lastAssistant() (conversation.AppendMessageInput, bool) {
	for i := len(m.appended) - 1; i >= 0; i-- {
		if m.appended[i].Role == model.RoleAssistant {
			return m.appended[i], true
		}
	}
	return conversation.AppendMessageInput{}, false
}

type mockTaskUC struct {
	created   []task.CreateInput
	createErr error
	open      []model.Task
}

func (m *mockTaskUC) CreateWithDetails(ctx context.Context, sc model.Scope, input task.CreateInput) (model.Task, error) {
	if m.createErr != nil {
		return model.Task{}, m.createErr
	}
	m.created = append(m.created, input)
	return model.Task{ID: "task-1", UserID: sc.UserID, Title: input.Title, Priority: input.Priority, Deadline: input.Deadline}, nil
}

func (m *mockTaskUC) ListOpen(ctx context.Context, sc model.Scope, input task.ListOpenInput) ([]model.Task, error) {
	return m.open, nil
}

func (m *mockTaskUC) List(ctx context.Context, sc model.Scope) ([]model.Task, error) {
	return m.open, nil
}

func (m *mockTaskUC) UpdateStatus(ctx context.Context, sc model.Scope, input task.UpdateStatusInput) (model.Task, error) {
	return model.Task{}, nil
}

type mockTimetableUC struct {
	week timetable.WeekOutput
}

func (m *mockTimetableUC) Confirm(ctx context.Context, sc model.Scope, input timetable.ConfirmInput) (model.TimetableClass, error) {
	return model.TimetableClass{}, nil
}

func (m *mockTimetableUC) Week(ctx context.Context, sc model.Scope) (timetable.WeekOutput, error) {
	if m.week.Days == nil {
		m.week.Days = map[string][]model.TimetableClass{}
	}
	return m.week, nil
}

type mockKnowledgeUC struct {
	searchResult []model.KnowledgeItem
	searchErr    error
	bundleResult knowledge.CreateBundleResult
}

func (m *mockKnowledgeUC) Search(ctx context.Context, sc model.Scope, input knowledge.SearchInput) ([]model.KnowledgeItem, error) {
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	return m.searchResult, nil
}

func (m *mockKnowledgeUC) CreateBundle(ctx context.Context, sc model.Scope, input knowledge.CreateBundleInput) knowledge.CreateBundleResult {
	return m.bundleResult
}

type mockModel struct {
	calls     int
	resp      *llmprovider.Response
	err       error
	chunks    []string
	streamErr error
	class     llmprovider.Class
}

func (m *mockModel) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.resp, nil
}

func (m *mockModel) GenerateStream(ctx context.Context, req *llmprovider.Request, onChunk llmprovider.ChunkHandler) (*llmprovider.Response, error) {
	m.calls++
	for _, c := range m.chunks {
		if err := onChunk(c); err != nil {
			return nil, err
		}
	}
	if m.streamErr != nil {
		return nil, m.streamErr
	}
	return m.resp, nil
}

func (m *mockModel) PrimaryClass() llmprovider.Class {
	if m.class == "" {
		return llmprovider.ClassHosted
	}
	return m.class
}

type mockExtractor struct {
	wanted  []extract.Wanted
	intents extract.Intents
	errs    extract.Errors
}

func (m *mockExtractor) QuickParse(ctx context.Context, message string, history []model.Message, want extract.Wanted) (extract.Intents, extract.Errors) {
	m.wanted = append(m.wanted, want)
	return m.intents, m.errs
}

type fixture struct {
	uc      *implUseCase
	tx      *mockTx
	conv    *mockConvUC
	tasks   *mockTaskUC
	classes *mockTimetableUC
	notes   *mockKnowledgeUC
	llm     *mockModel
	parse   *mockExtractor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dates, err := datemath.NewParser("Asia/Tokyo")
	if err != nil {
		t.Fatalf("NewParser: %v", err)
	}
	f := &fixture{
		tx:      &mockTx{},
		conv:    &mockConvUC{},
		tasks:   &mockTaskUC{},
		classes: &mockTimetableUC{},
		notes:   &mockKnowledgeUC{},
		llm:     &mockModel{resp: &llmprovider.Response{Content: "了解です", ModelName: "test-model", ProviderName: "test"}},
		parse:   &mockExtractor{},
	}
	f.uc = New(&mockLogger{}, Options{}, f.llm, f.parse, dates, f.tx, f.conv, f.tasks, f.classes, f.notes)
	return f
}

var testScope = model.Scope{UserID: "user-1"}

func TestRun_InstantReplyGate(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.SendMessage(context.Background(), testScope, assistant.SendMessageInput{
		ConversationID: "conv-1",
		Message:        "こんにちは",
	})
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if f.llm.calls != 0 {
		t.Errorf("gate hit must not call the model, got %d calls", f.llm.calls)
	}
	if len(f.parse.wanted) != 0 {
		t.Errorf("gate hit must not invoke extraction")
	}
	if len(f.conv.appended) != 2 {
		t.Fatalf("expected user+assistant messages, got %d", len(f.conv.appended))
	}
	if !strings.Contains(out.AssistantMessage.Content, "こんにちは") {
		t.Errorf("unexpected canned reply %q", out.AssistantMessage.Content)
	}
}

func TestRun_EmptyMessage(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.SendMessage(context.Background(), testScope, assistant.SendMessageInput{
		ConversationID: "conv-1",
		Message:        "   ",
	})
	if !errors.Is(err, assistant.ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
}

func TestRun_TaskIntentAlwaysPersisted(t *testing.T) {
	f := newFixture(t)
	deadline := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	f.parse.intents = extract.Intents{Task: &extract.TaskIntent{
		Title:    "数学の宿題",
		Priority: model.PriorityHigh,
		Deadline: deadline,
	}}

	out, err := f.uc.SendMessageContextAware(context.Background(), testScope, assistant.SendMessageInput{
		ConversationID: "conv-1",
		Message:        "明日までに数学の宿題のタスクを追加して",
	})
	if err != nil {
		t.Fatalf("SendMessageContextAware: %v", err)
	}
	if len(f.tasks.created) != 1 {
		t.Fatalf("expected 1 created task, got %d", len(f.tasks.created))
	}
	if out.CreatedTask == nil || out.CreatedTask.Title != "数学の宿題" {
		t.Fatalf("CreatedTask = %+v", out.CreatedTask)
	}
	if !strings.Contains(out.AssistantMessage.Content, "✅ タスク「数学の宿題」を作成しました") {
		t.Errorf("missing confirmation suffix in %q", out.AssistantMessage.Content)
	}
	if f.tx.rollbacks != 0 {
		t.Errorf("unexpected rollback")
	}
}

func TestRun_TimetableSuggestionNeverPersisted(t *testing.T) {
	f := newFixture(t)
	f.parse.intents = extract.Intents{Timetable: &extract.TimetableIntent{
		Name: "微積分", Day: "monday", StartTime: "09:00", EndTime: "10:30", Period: 2,
	}}

	out, err := f.uc.SendMessageContextAware(context.Background(), testScope, assistant.SendMessageInput{
		ConversationID: "conv-1",
		Message:        "毎週月曜の9時から微積分の授業があるよ",
	})
	if err != nil {
		t.Fatalf("SendMessageContextAware: %v", err)
	}
	if out.TimetableSuggestion == nil || out.TimetableSuggestion.Name != "微積分" {
		t.Fatalf("TimetableSuggestion = %+v", out.TimetableSuggestion)
	}
}

func TestRun_PlainPipelineExtractsTasksOnly(t *testing.T) {
	f := newFixture(t)
	f.parse.intents = extract.Intents{}

	_, err := f.uc.SendMessage(context.Background(), testScope, assistant.SendMessageInput{
		ConversationID: "conv-1",
		Message:        "明日の授業とやることを整理したい、宿題のタスクも追加して",
	})
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if len(f.parse.wanted) != 1 {
		t.Fatalf("expected one extraction pass, got %d", len(f.parse.wanted))
	}
	want := f.parse.wanted[0]
	if !want.Task {
		t.Errorf("plain pipeline must extract tasks")
	}
	if want.Timetable || want.KnowledgeQuery || want.KnowledgeCreate {
		t.Errorf("plain pipeline must not extract beyond tasks: %+v", want)
	}
}

func TestRun_ActionFailureIsolation(t *testing.T) {
	f := newFixture(t)
	f.tasks.createErr = errors.New("constraint violation")
	f.notes.searchResult = []model.KnowledgeItem{{ID: "k-1", Title: "二次方程式", Type: model.KnowledgeNote}}
	f.parse.intents = extract.Intents{
		Task:           &extract.TaskIntent{Title: "宿題", Priority: model.PriorityMedium, Deadline: time.Now()},
		KnowledgeQuery: &extract.KnowledgeQueryIntent{ItemType: "any", Keywords: []string{"二次方程式"}},
	}

	out, err := f.uc.SendMessageContextAware(context.Background(), testScope, assistant.SendMessageInput{
		ConversationID: "conv-1",
		Message:        "宿題のタスクを追加して、あと二次方程式のノートを探して",
	})
	if err != nil {
		t.Fatalf("one failing action must not fail the request: %v", err)
	}
	if out.CreatedTask != nil {
		t.Errorf("failed task creation must not be confirmed")
	}
	if len(out.KnowledgeItems) != 1 {
		t.Errorf("sibling action must still run, got %d items", len(out.KnowledgeItems))
	}
	if f.tx.rollbacks != 0 {
		t.Errorf("action failure must not roll back the transaction")
	}
}

func TestRun_ModelFailedActionsSucceeded_Commits(t *testing.T) {
	f := newFixture(t)
	f.llm.err = errors.New("timeout")
	f.parse.intents = extract.Intents{Task: &extract.TaskIntent{
		Title: "宿題", Priority: model.PriorityMedium, Deadline: time.Now(),
	}}

	out, err := f.uc.SendMessageContextAware(context.Background(), testScope, assistant.SendMessageInput{
		ConversationID: "conv-1",
		Message:        "宿題のタスクを追加して",
	})
	if err != nil {
		t.Fatalf("degraded path must report success: %v", err)
	}
	if f.tx.rollbacks != 0 {
		t.Errorf("side effects must be committed when actions succeeded")
	}
	if !strings.Contains(out.AssistantMessage.Content, "✅ タスク「宿題」を作成しました") {
		t.Errorf("degraded reply must confirm the action: %q", out.AssistantMessage.Content)
	}
	if !strings.Contains(out.AssistantMessage.Content, degradedApology) {
		t.Errorf("degraded reply must carry the apology line: %q", out.AssistantMessage.Content)
	}
}

func TestRun_ModelFailedNothingRecovered_Fallback(t *testing.T) {
	f := newFixture(t)
	f.llm.err = errors.New("connection refused")

	out, err := f.uc.SendMessageContextAware(context.Background(), testScope, assistant.SendMessageInput{
		ConversationID: "conv-1",
		Message:        "今年の目標について長い文章で相談に乗ってほしいです",
	})
	if err != nil {
		t.Fatalf("fallback path must report success: %v", err)
	}
	if f.tx.rollbacks != 1 {
		t.Errorf("expected the pipeline transaction to roll back, got %d", f.tx.rollbacks)
	}
	if out.AssistantMessage.Content != fallbackReply {
		t.Errorf("expected fixed fallback reply, got %q", out.AssistantMessage.Content)
	}
	// The rolled-back user message is re-persisted with the fallback.
	last, ok := f.conv.lastAssistant()
	if !ok || last.Content != fallbackReply {
		t.Errorf("fallback reply not persisted")
	}
}

func TestRun_LightweightModelFailure_Unavailable(t *testing.T) {
	f := newFixture(t)
	f.llm.err = errors.New("connection refused")

	_, err := f.uc.SendMessage(context.Background(), testScope, assistant.SendMessageInput{
		ConversationID: "conv-1",
		Message:        "なるほどね",
	})
	if !errors.Is(err, assistant.ErrModelUnavailable) {
		t.Fatalf("expected ErrModelUnavailable, got %v", err)
	}
	if f.tx.rollbacks != 1 {
		t.Errorf("lightweight failure must roll back")
	}
	if _, ok := f.conv.lastAssistant(); ok {
		t.Errorf("no assistant message may be persisted on the 503 path")
	}
}

func TestRun_FallbackExtractorArmsOnTaskError(t *testing.T) {
	f := newFixture(t)
	f.parse.errs = extract.Errors{Task: errors.New("model timeout")}

	out, err := f.uc.SendMessage(context.Background(), testScope, assistant.SendMessageInput{
		ConversationID: "conv-1",
		Message:        "明日15時に宿題のタスクを作って",
	})
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if len(f.tasks.created) != 1 {
		t.Fatalf("fallback extractor must still create the task")
	}
	created := f.tasks.created[0]
	if created.Title != "宿題" {
		t.Errorf("fallback title = %q, want 宿題", created.Title)
	}
	if created.ScheduledTime != "15:00:00" {
		t.Errorf("fallback scheduled time = %q", created.ScheduledTime)
	}
	if out.CreatedTask == nil {
		t.Errorf("created task missing from output")
	}
}

func TestStreamMessage_PersistsOnceAfterDone(t *testing.T) {
	f := newFixture(t)
	f.llm.chunks = []string{"今日は", "いい天気ですね"}
	f.llm.resp = &llmprovider.Response{Content: "今日はいい天気ですね", ModelName: "test-model"}

	var events []assistant.StreamEvent
	err := f.uc.StreamMessage(context.Background(), testScope, assistant.SendMessageInput{
		ConversationID: "conv-1",
		Message:        "外の天気はどうかな、散歩にいきたいです",
	}, func(ev assistant.StreamEvent) error {
		events = append(events, ev)
		return nil
	})
	if err != nil {
		t.Fatalf("StreamMessage: %v", err)
	}

	if len(events) < 3 {
		t.Fatalf("expected chunks plus done, got %d events", len(events))
	}
	last := events[len(events)-1]
	if last.Type != assistant.StreamEventDone {
		t.Fatalf("terminal event = %q", last.Type)
	}
	if last.FullContent != "今日はいい天気ですね" {
		t.Errorf("full_content = %q", last.FullContent)
	}
	if last.MessageID == "" {
		t.Errorf("done event must carry the persisted message id")
	}

	asst, ok := f.conv.lastAssistant()
	if !ok {
		t.Fatalf("assistant message not persisted")
	}
	if asst.Content != last.FullContent {
		t.Errorf("persisted %q, streamed %q", asst.Content, last.FullContent)
	}
}

func TestStreamMessage_ClientDisconnectDiscardsReply(t *testing.T) {
	f := newFixture(t)
	f.llm.chunks = []string{"今日は", "いい天気ですね"}

	dropped := errors.New("client gone")
	err := f.uc.StreamMessage(context.Background(), testScope, assistant.SendMessageInput{
		ConversationID: "conv-1",
		Message:        "外の天気はどうかな、散歩にいきたいです",
	}, func(ev assistant.StreamEvent) error {
		return dropped
	})
	if !errors.Is(err, dropped) {
		t.Fatalf("expected the emit error back, got %v", err)
	}
	if _, ok := f.conv.lastAssistant(); ok {
		t.Errorf("a disconnected stream must not persist an assistant message")
	}
}

func TestStreamMessage_GateStreamsCannedReply(t *testing.T) {
	f := newFixture(t)

	var events []assistant.StreamEvent
	err := f.uc.StreamMessage(context.Background(), testScope, assistant.SendMessageInput{
		ConversationID: "conv-1",
		Message:        "hello",
	}, func(ev assistant.StreamEvent) error {
		events = append(events, ev)
		return nil
	})
	if err != nil {
		t.Fatalf("StreamMessage: %v", err)
	}
	if f.llm.calls != 0 {
		t.Errorf("gate hit must not call the model")
	}
	if len(events) != 2 || events[0].Type != assistant.StreamEventChunk || events[1].Type != assistant.StreamEventDone {
		t.Fatalf("expected chunk+done, got %+v", events)
	}
}

func TestInsights(t *testing.T) {
	f := newFixture(t)
	f.tasks.open = []model.Task{{Title: "宿題", Priority: model.PriorityHigh}}

	t.Run("daily plan", func(t *testing.T) {
		out, err := f.uc.DailyPlan(context.Background(), testScope)
		if err != nil {
			t.Fatalf("DailyPlan: %v", err)
		}
		if out.Content == "" || out.Model != "test-model" {
			t.Errorf("unexpected output %+v", out)
		}
	})

	t.Run("model failure surfaces unavailability", func(t *testing.T) {
		f.llm.err = errors.New("down")
		_, err := f.uc.WeeklyInsights(context.Background(), testScope)
		if !errors.Is(err, assistant.ErrModelUnavailable) {
			t.Fatalf("expected ErrModelUnavailable, got %v", err)
		}
	})
}
