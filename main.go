package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/crane-ceeshar/ai-services/pkg/config"
	"github.com/crane-ceeshar/ai-services/pkg/handlers"
	"github.com/crane-ceeshar/ai-services/pkg/llm"
	"github.com/crane-ceeshar/ai-services/pkg/middleware"
	"github.com/crane-ceeshar/ai-services/pkg/store"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	// Local development convenience; ignored when no .env exists
	_ = godotenv.Load()

	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("default_model", cfg.AI.DefaultModel),
		zap.Bool("anthropic_configured", cfg.AI.AnthropicAPIKey != ""),
		zap.Bool("openai_configured", cfg.AI.OpenAIAPIKey != ""),
		zap.Bool("store_configured", cfg.Supabase.URL != ""))

	factory := llm.NewFactory(llm.FactoryConfig{
		AnthropicAPIKey: cfg.AI.AnthropicAPIKey,
		OpenAIAPIKey:    cfg.AI.OpenAIAPIKey,
		DefaultModel:    cfg.AI.DefaultModel,
		EmbeddingModel:  cfg.AI.EmbeddingModel,
	}, logger)

	// Insights enrichment is best-effort: without a configured store the
	// handler degrades to general insights.
	var querier store.Querier
	if cfg.Supabase.URL != "" {
		storeClient, err := store.NewClient(cfg.Supabase.URL, cfg.Supabase.ServiceKey, logger)
		if err != nil {
			log.Fatalf("Failed to create store client: %v", err)
		}
		querier = storeClient
	}

	mux := http.NewServeMux()
	handlers.NewHealthHandler(factory, logger).RegisterRoutes(mux)
	handlers.NewChatHandler(factory, cfg.AI.MaxTokens, logger).RegisterRoutes(mux)
	handlers.NewGenerateHandler(factory, cfg.AI.MaxTokens, logger).RegisterRoutes(mux)
	handlers.NewAnalyzeHandler(factory, cfg.AI.MaxTokens, logger).RegisterRoutes(mux)
	handlers.NewInsightsHandler(factory, querier, logger).RegisterRoutes(mux)
	handlers.NewEmbeddingsHandler(factory, logger).RegisterRoutes(mux)
	handlers.NewAutomationHandler(factory, cfg.AI.MaxTokens, logger).RegisterRoutes(mux)

	var handler http.Handler = mux
	handler = middleware.RequestLogger(logger)(handler)
	handler = middleware.CORS("*")(handler)

	srv := &http.Server{
		Addr:         cfg.ListenAddr(),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 120 * time.Second, // streaming completions can run long
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("Starting ai-services",
			zap.String("addr", srv.Addr),
			zap.String("version", cfg.Version))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
