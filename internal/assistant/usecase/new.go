package usecase

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"studyflow/internal/assistant/extract"
	"studyflow/internal/conversation"
	"studyflow/internal/knowledge"
	"studyflow/internal/model"
	"studyflow/internal/task"
	"studyflow/internal/timetable"
	"studyflow/pkg/datemath"
	"studyflow/pkg/llmprovider"
	pkgLog "studyflow/pkg/log"
)

const (
	sessionCacheSize = 512
	sessionCacheTTL  = 30 * time.Minute
)

// Options tunes the orchestration pipeline.
type Options struct {
	HostedTimeout time.Duration
	LocalTimeout  time.Duration

	LightweightMaxTokens int
	FullMaxTokens        int

	HostedHistoryDepth int
	LocalHistoryDepth  int

	LightweightLengthThreshold int

	OpenTaskLimit        int
	KnowledgeLimitHosted int
	KnowledgeLimitLocal  int
	KnowledgeCharBudget  int
}

func (o *Options) applyDefaults() {
	if o.HostedTimeout <= 0 {
		o.HostedTimeout = 30 * time.Second
	}
	if o.LocalTimeout <= 0 {
		o.LocalTimeout = 120 * time.Second
	}
	if o.LightweightMaxTokens <= 0 {
		o.LightweightMaxTokens = 256
	}
	if o.FullMaxTokens <= 0 {
		o.FullMaxTokens = 2048
	}
	if o.HostedHistoryDepth <= 0 {
		o.HostedHistoryDepth = 20
	}
	if o.LocalHistoryDepth <= 0 {
		o.LocalHistoryDepth = 6
	}
	if o.OpenTaskLimit <= 0 {
		o.OpenTaskLimit = 10
	}
	if o.KnowledgeLimitHosted <= 0 {
		o.KnowledgeLimitHosted = 5
	}
	if o.KnowledgeLimitLocal <= 0 {
		o.KnowledgeLimitLocal = 2
	}
	if o.KnowledgeCharBudget <= 0 {
		o.KnowledgeCharBudget = 4000
	}
}

// modelClient is the slice of the provider manager the pipeline needs;
// satisfied by *llmprovider.Manager.
type modelClient interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
	GenerateStream(ctx context.Context, req *llmprovider.Request, onChunk llmprovider.ChunkHandler) (*llmprovider.Response, error)
	PrimaryClass() llmprovider.Class
}

// intentExtractor is satisfied by *extract.Extractor.
type intentExtractor interface {
	QuickParse(ctx context.Context, message string, history []model.Message, want extract.Wanted) (extract.Intents, extract.Errors)
}

// txRunner is satisfied by *storage.TxManager.
type txRunner interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type implUseCase struct {
	l         pkgLog.Logger
	opts      Options
	llm       modelClient
	extractor intentExtractor
	dates     *datemath.Parser
	tx        txRunner

	convUC      conversation.UseCase
	taskUC      task.UseCase
	timetableUC timetable.UseCase
	knowledgeUC knowledge.UseCase

	// Recent-history window per conversation, refreshed on append.
	sessions *expirable.LRU[string, []model.Message]
}

// New creates the assistant UseCase instance.
func New(
	l pkgLog.Logger,
	opts Options,
	llm modelClient,
	extractor intentExtractor,
	dates *datemath.Parser,
	tx txRunner,
	convUC conversation.UseCase,
	taskUC task.UseCase,
	timetableUC timetable.UseCase,
	knowledgeUC knowledge.UseCase,
) *implUseCase {
	opts.applyDefaults()
	return &implUseCase{
		l:           l,
		opts:        opts,
		llm:         llm,
		extractor:   extractor,
		dates:       dates,
		tx:          tx,
		convUC:      convUC,
		taskUC:      taskUC,
		timetableUC: timetableUC,
		knowledgeUC: knowledgeUC,
		sessions:    expirable.NewLRU[string, []model.Message](sessionCacheSize, nil, sessionCacheTTL),
	}
}

// historyDepth bounds the conversation window by provider class: local
// providers get a shorter window to cap compute.
func (uc *implUseCase) historyDepth() int {
	if uc.llm.PrimaryClass() == llmprovider.ClassLocal {
		return uc.opts.LocalHistoryDepth
	}
	return uc.opts.HostedHistoryDepth
}

// modelTimeout is materially longer for a local provider than a hosted API.
func (uc *implUseCase) modelTimeout() time.Duration {
	if uc.llm.PrimaryClass() == llmprovider.ClassLocal {
		return uc.opts.LocalTimeout
	}
	return uc.opts.HostedTimeout
}

// knowledgeLimit bounds search results; smaller for local providers to
// keep context size down.
func (uc *implUseCase) knowledgeLimit() int {
	if uc.llm.PrimaryClass() == llmprovider.ClassLocal {
		return uc.opts.KnowledgeLimitLocal
	}
	return uc.opts.KnowledgeLimitHosted
}

// recentHistory serves the short message window from the session cache,
// falling back to the store on a miss.
func (uc *implUseCase) recentHistory(ctx context.Context, sc model.Scope, conversationID string) []model.Message {
	if cached, ok := uc.sessions.Get(conversationID); ok {
		return cached
	}
	history, err := uc.convUC.History(ctx, sc, conversation.HistoryInput{
		ConversationID: conversationID,
		Limit:          uc.historyDepth(),
	})
	if err != nil {
		uc.l.Warnf(ctx, "assistant.usecase.recentHistory: %v", err)
		return nil
	}
	uc.sessions.Add(conversationID, history)
	return history
}

func (uc *implUseCase) rememberMessages(conversationID string, msgs ...model.Message) {
	cached, _ := uc.sessions.Get(conversationID)
	cached = append(cached, msgs...)
	if depth := uc.historyDepth(); len(cached) > depth {
		cached = cached[len(cached)-depth:]
	}
	uc.sessions.Add(conversationID, cached)
}
