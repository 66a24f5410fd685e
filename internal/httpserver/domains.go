package httpserver

import (
	"context"

	"github.com/gin-gonic/gin"

	assistantHTTP "studyflow/internal/assistant/delivery/http"
	"studyflow/internal/assistant/extract"
	assistantUC "studyflow/internal/assistant/usecase"
	conversationHTTP "studyflow/internal/conversation/delivery/http"
	conversationRepo "studyflow/internal/conversation/repository/sqlite"
	conversationUC "studyflow/internal/conversation/usecase"
	knowledgeHTTP "studyflow/internal/knowledge/delivery/http"
	knowledgeRepo "studyflow/internal/knowledge/repository/sqlite"
	knowledgeUC "studyflow/internal/knowledge/usecase"
	"studyflow/internal/middleware"
	taskHTTP "studyflow/internal/task/delivery/http"
	taskRepo "studyflow/internal/task/repository/sqlite"
	taskUC "studyflow/internal/task/usecase"
	timetableHTTP "studyflow/internal/timetable/delivery/http"
	timetableRepo "studyflow/internal/timetable/repository/sqlite"
	timetableUC "studyflow/internal/timetable/usecase"
)

// registerDomainRoutes wires every domain bottom-up: repository,
// usecase, HTTP handler, routes. The assistant usecase sits on top of
// the four domain usecases.
func (srv *HTTPServer) registerDomainRoutes(api *gin.RouterGroup, mw middleware.Middleware) error {
	ctx := context.Background()

	// Repositories
	convRepo := conversationRepo.New(srv.l, srv.txManager)
	tasksRepo := taskRepo.New(srv.l, srv.txManager)
	classesRepo := timetableRepo.New(srv.l, srv.txManager)
	notesRepo := knowledgeRepo.New(srv.l, srv.txManager)

	// Domain usecases
	convUseCase := conversationUC.New(srv.l, convRepo)
	taskUseCase := taskUC.New(srv.l, tasksRepo)
	timetableUseCase := timetableUC.New(srv.l, classesRepo, srv.calendar, srv.calendarID, srv.assistantCfg.Timezone)
	knowledgeUseCase := knowledgeUC.New(srv.l, notesRepo)

	// Assistant pipeline
	extractor := extract.New(srv.l, srv.llm, srv.dates)
	assistantUseCase := assistantUC.New(
		srv.l,
		assistantUC.Options{
			HostedTimeout:              srv.assistantCfg.HostedTimeout,
			LocalTimeout:               srv.assistantCfg.LocalTimeout,
			LightweightMaxTokens:       srv.assistantCfg.LightweightMaxTokens,
			FullMaxTokens:              srv.assistantCfg.FullMaxTokens,
			HostedHistoryDepth:         srv.assistantCfg.HostedHistoryDepth,
			LocalHistoryDepth:          srv.assistantCfg.LocalHistoryDepth,
			LightweightLengthThreshold: srv.assistantCfg.LightweightLengthThreshold,
			OpenTaskLimit:              srv.assistantCfg.OpenTaskLimit,
			KnowledgeLimitHosted:       srv.assistantCfg.KnowledgeLimitHosted,
			KnowledgeLimitLocal:        srv.assistantCfg.KnowledgeLimitLocal,
			KnowledgeCharBudget:        srv.assistantCfg.KnowledgeCharBudget,
		},
		srv.llm,
		extractor,
		srv.dates,
		srv.txManager,
		convUseCase,
		taskUseCase,
		timetableUseCase,
		knowledgeUseCase,
	)

	// HTTP handlers and routes
	assistantHTTP.RegisterRoutes(api, assistantHTTP.New(srv.l, assistantUseCase), mw)
	conversationHTTP.RegisterRoutes(api, conversationHTTP.New(srv.l, convUseCase), mw)
	taskHTTP.RegisterRoutes(api, taskHTTP.New(srv.l, taskUseCase), mw)
	timetableHTTP.RegisterRoutes(api, timetableHTTP.New(srv.l, timetableUseCase), mw)
	knowledgeHTTP.RegisterRoutes(api, knowledgeHTTP.New(srv.l, knowledgeUseCase), mw)

	srv.l.Infof(ctx, "Domain routes registered")
	return nil
}
