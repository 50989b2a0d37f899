package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	_ "github.com/lib/pq"

	"email-agent/internal/config"
	"email-agent/internal/gmail"
	"email-agent/internal/handler"
	"email-agent/internal/llm"
	"email-agent/internal/logger"
	"email-agent/internal/model"
	"email-agent/internal/prompt"
	"email-agent/internal/repository"
	"email-agent/internal/repository/memory"
	"email-agent/internal/repository/postgres"
	"email-agent/internal/router"
	"email-agent/internal/service"
	"email-agent/internal/sse"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal("Config validation failed:", err)
	}

	appLogger := logger.New()

	// Initialize repositories (conditionally use postgres or in-memory based on DATABASE_URL)
	var emailRepo repository.EmailRepository
	var actionRepo repository.ActionItemRepository

	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatal("Failed to connect to database:", err)
		}
		defer db.Close()

		if err := postgres.InitializeDatabase(db); err != nil {
			log.Fatal("Failed to initialize database:", err)
		}

		emailRepo = postgres.NewPostgresEmailRepository(db)
		actionRepo = postgres.NewPostgresActionItemRepository(db)

		appLogger.Info("Using PostgreSQL repositories")
	} else {
		emailRepo = memory.NewInMemoryEmailRepository()
		actionRepo = memory.NewInMemoryActionItemRepository()

		appLogger.Info("Using in-memory repositories")
	}

	// Seed the collection from the previous snapshot, if one exists
	loadSeedEmails(emailRepo, cfg.EmailsFile(), appLogger)

	// Prompt template store
	promptStore := prompt.NewStore(cfg.PromptsFile(), appLogger)

	// LLM backend selected at startup
	var llmClient service.LLMClient
	switch cfg.LLMProvider {
	case config.ProviderGemini:
		llmClient = llm.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, appLogger)
		appLogger.Info("Using Gemini backend, model:", cfg.GeminiModel)
	default:
		llmClient = llm.NewOllamaClient(cfg.OllamaBaseURL, cfg.OllamaModel, appLogger)
		appLogger.Info("Using Ollama backend, model:", cfg.OllamaModel)
	}

	// SSE manager for bulk-categorization progress
	events := sse.NewManager(appLogger)

	// Services
	agentService := service.NewAgentService(promptStore, llmClient, appLogger)

	gmailFactory := func(accessToken string) (service.GmailClient, error) {
		return gmail.NewClient(accessToken, appLogger)
	}

	emailService := service.NewEmailService(
		emailRepo,
		actionRepo,
		agentService,
		gmailFactory,
		events,
		cfg.EmailsFile(),
		appLogger,
	)

	// HTTP layer
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	emailHandler := handler.NewEmailHandler(emailService, events, appLogger)
	agentHandler := handler.NewAgentHandler(emailService, agentService, appLogger)
	promptHandler := handler.NewPromptHandler(promptStore, appLogger)

	router.SetupRoutes(e, emailHandler, agentHandler, promptHandler)

	appLogger.Info("Starting server on port", cfg.Port)
	if err := e.Start(":" + cfg.Port); err != nil {
		appLogger.Error("Failed to start server:", err)
		events.Close()
	}
}

// loadSeedEmails restores the collection from the JSON snapshot written on
// the previous run. A missing file is the normal first-run case.
func loadSeedEmails(emailRepo repository.EmailRepository, path string, logger *logger.Logger) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Error("Failed to read email snapshot:", path, err)
		} else {
			logger.Info("No email snapshot found, starting with an empty collection")
		}
		return
	}

	var emails []*model.Email
	if err := json.Unmarshal(data, &emails); err != nil {
		logger.Error("Failed to parse email snapshot:", path, err)
		return
	}

	if err := emailRepo.ReplaceAll(context.Background(), emails); err != nil {
		logger.Error("Failed to seed emails from snapshot:", err)
		return
	}
	logger.Info("Loaded", len(emails), "emails from snapshot")
}
