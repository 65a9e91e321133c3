package main

import (
	"context"
	"flag"
	"log"
	"os"
	"time"

	"go.uber.org/zap"

	"mealmind/internal/config"
	"mealmind/internal/database"
	"mealmind/internal/feedback"
	"mealmind/internal/inventory"
	"mealmind/internal/llm"
	"mealmind/internal/logging"
	"mealmind/internal/metrics"
	"mealmind/internal/plan"
	"mealmind/internal/profile"
	"mealmind/internal/schedule"
	"mealmind/internal/workflow"
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

	// 2. Initialize Infrastructure (LLM)
	geminiClient, err := llm.NewGeminiClient(ctx, cfg.LLM.GeminiAPIKey, cfg.LLM.GeminiModel)
	if err != nil {
		logger.Fatal("failed to create gemini client", zap.Error(err))
	}
	if closer, ok := geminiClient.(llm.Closer); ok {
		defer closer.Close()
	}

	// 3. Initialize Database and Repositories
	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	var driClient *profile.DRIClient
	if cfg.DRI.APIKey != "" {
		driClient = profile.NewDRIClient(cfg.DRI.APIKey)
	}

	generator := plan.NewGenerator(geminiClient)
	generator.SetPlanDays(cfg.Planner.PlanDays)

	runner := workflow.NewRunner(workflow.Deps{
		Users:       profile.NewRepository(db.SQL),
		Schedules:   schedule.NewRepository(db.SQL),
		Inventory:   inventory.NewRepository(db.SQL),
		Preferences: feedback.NewRepository(db.SQL),
		Plans:       plan.NewRepository(db.SQL),
		Generator:   generator,
		Metrics:     metrics.NewStore(db.SQL),
		DRI:         driClient,
		Logger:      logger,
	})
	if cfg.Planner.MaxRetries > 0 {
		runner.SetRetryPolicy(cfg.Planner.MaxRetries, 2*time.Second)
	}

	// 4. Run One Planning Pass
	result, err := runner.Run(ctx, time.Now())
	if err != nil {
		logger.Fatal("planning run failed", zap.Error(err))
	}

	logger.Info("planning run finished",
		zap.Int("success", result.SuccessCount),
		zap.Int("failure", result.FailureCount),
		zap.Int("mocked", result.MockedCount),
	)
	for _, re := range result.Errors {
		logger.Warn("user planning failed",
			zap.String("user_id", re.UserID),
			zap.String("schedule_id", re.ScheduleID),
			zap.Error(re.Err),
		)
	}

	if result.FailureCount > 0 && result.SuccessCount == 0 {
		os.Exit(1)
	}
}
