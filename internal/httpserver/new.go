package httpserver

import (
	"database/sql"
	"errors"

	"github.com/gin-gonic/gin"

	"studyflow/config"
	"studyflow/internal/storage"
	"studyflow/pkg/datemath"
	"studyflow/pkg/gcalendar"
	"studyflow/pkg/llmprovider"
	"studyflow/pkg/log"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Shared infrastructure
	db        *sql.DB
	txManager *storage.TxManager
	llm       *llmprovider.Manager
	dates     *datemath.Parser
	calendar  *gcalendar.Client

	assistantCfg config.AssistantConfig
	calendarID   string
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	DB       *sql.DB
	LLM      *llmprovider.Manager
	Dates    *datemath.Parser
	Calendar *gcalendar.Client // optional

	Assistant  config.AssistantConfig
	CalendarID string
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:            logger,
		gin:          gin.New(),
		port:         cfg.Port,
		mode:         cfg.Mode,
		environment:  cfg.Environment,
		db:           cfg.DB,
		llm:          cfg.LLM,
		dates:        cfg.Dates,
		calendar:     cfg.Calendar,
		assistantCfg: cfg.Assistant,
		calendarID:   cfg.CalendarID,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}
	srv.txManager = storage.NewTxManager(cfg.DB)

	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv *HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.db == nil {
		return errors.New("database is required")
	}
	if srv.llm == nil {
		return errors.New("llm manager is required")
	}
	if srv.dates == nil {
		return errors.New("date parser is required")
	}
	return nil
}
