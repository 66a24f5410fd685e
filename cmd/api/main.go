package main

import (
	"context"
	"fmt"

	"studyflow/config"
	_ "studyflow/docs" // Swagger docs
	"studyflow/internal/httpserver"
	"studyflow/internal/storage"
	"studyflow/pkg/datemath"
	"studyflow/pkg/gcalendar"
	"studyflow/pkg/llmprovider"
	"studyflow/pkg/log"
)

// @title       StudyFlow Assistant API
// @description Conversational study assistant: chat-driven task management, timetable suggestions and a personal knowledge base.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:    cfg.Logger.Level,
		Mode:     cfg.Logger.Mode,
		Encoding: cfg.Logger.Encoding,
	})

	ctx := context.Background()
	logger.Info(ctx, "Starting StudyFlow Assistant...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Storage
	db, err := storage.Open(cfg.Database.Path)
	if err != nil {
		logger.Error(ctx, "Failed to open database: ", err)
		return
	}
	defer db.Close()
	logger.Infof(ctx, "Database ready at %s", cfg.Database.Path)

	// 4. Date parser
	dates, err := datemath.NewParser(cfg.Assistant.Timezone)
	if err != nil {
		logger.Warnf(ctx, "Invalid timezone %q, falling back to UTC: %v", cfg.Assistant.Timezone, err)
		dates, _ = datemath.NewParser("UTC")
	}

	// 5. Model providers
	providers, err := llmprovider.InitializeProviders(&cfg.LLM)
	if err != nil {
		logger.Error(ctx, "Failed to initialize LLM providers: ", err)
		return
	}
	llm := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.LLM.FallbackEnabled,
		RetryAttempts:   cfg.LLM.RetryAttempts,
		RetryDelay:      cfg.LLM.RetryDelay,
		MaxTotalTimeout: cfg.LLM.MaxTotalTimeout,
	}, logger)
	logger.Infof(ctx, "LLM providers initialized, primary class: %s", llm.PrimaryClass())

	// 6. Google Calendar (optional)
	var calendar *gcalendar.Client
	if cfg.GoogleCalendar.Enabled && cfg.GoogleCalendar.CredentialsFile != "" {
		calendar, err = gcalendar.NewClientFromCredentialsFile(ctx, cfg.GoogleCalendar.CredentialsFile, cfg.GoogleCalendar.TokenFile)
		if err != nil {
			logger.Warnf(ctx, "Google Calendar not available (optional): %v", err)
			calendar = nil
		} else {
			logger.Info(ctx, "Google Calendar initialized")
		}
	}

	// 7. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:      logger,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,
		DB:          db,
		LLM:         llm,
		Dates:       dates,
		Calendar:    calendar,
		Assistant:   cfg.Assistant,
		CalendarID:  cfg.GoogleCalendar.CalendarID,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 8. Run
	if err := httpServer.Run(); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}
