package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"mealmind/internal/chat"
	"mealmind/internal/clipper"
	"mealmind/internal/config"
	"mealmind/internal/database"
	"mealmind/internal/feedback"
	"mealmind/internal/inventory"
	"mealmind/internal/llm"
	"mealmind/internal/logging"
	"mealmind/internal/metrics"
	"mealmind/internal/plan"
	"mealmind/internal/profile"
	"mealmind/internal/telegram"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	// 1. Load Configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logging.New(cfg.App.LogLevel, !cfg.IsProduction())
	defer logger.Sync()

	ctx := context.Background()

	// 2. Initialize Infrastructure (LLMs)
	geminiClient, err := llm.NewGeminiClient(ctx, cfg.LLM.GeminiAPIKey, cfg.LLM.GeminiModel)
	if err != nil {
		logger.Fatal("failed to create gemini client", zap.Error(err))
	}
	if closer, ok := geminiClient.(llm.Closer); ok {
		defer closer.Close()
	}
	groqClient := llm.NewGroqClient(cfg.LLM.GroqAPIKey, cfg.LLM.GroqModel)

	// 3. Initialize Database and Repositories
	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	profileRepo := profile.NewRepository(db.SQL)
	inventoryRepo := inventory.NewRepository(db.SQL)
	feedbackRepo := feedback.NewRepository(db.SQL)
	planRepo := plan.NewRepository(db.SQL)
	sessionRepo := telegram.NewSessionRepository(db.SQL)
	metricsStore := metrics.NewStore(db.SQL)

	// 4. Initialize Chat Router
	router := chat.NewRouter(chat.Deps{
		TextGen:   geminiClient,
		Plans:     planRepo,
		Users:     profileRepo,
		Inventory: inventoryRepo,
		Prefs:     feedbackRepo,
		Extractor: feedback.NewExtractor(groqClient),
		Fetcher:   clipper.NewFetcher(),
		Metrics:   metricsStore,
		Logger:    logger,
	})

	mux := http.NewServeMux()
	mux.Handle("/ws", chat.NewWSHandler(router, logger))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(metrics.GetSysHealth(cfg.Database.Path))
	})

	// 5. Initialize Telegram Bot (optional)
	if cfg.Telegram.BotToken != "" {
		pantryParser := inventory.NewParser(geminiClient)
		bot, err := telegram.NewBot(cfg, router, profileRepo, sessionRepo, pantryParser, inventoryRepo, metricsStore, logger)
		if err != nil {
			logger.Fatal("failed to initialize telegram bot", zap.Error(err))
		}
		bot.RegisterHandlers(mux)
	}

	// 6. Start Server with Graceful Shutdown
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler: mux,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exiting")
}
