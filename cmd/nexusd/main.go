package main

import (
	"context"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/hsbukhari/nexus/internal/backend/gemini"
	"github.com/hsbukhari/nexus/internal/config"
	"github.com/hsbukhari/nexus/internal/orchestrator"
	"github.com/hsbukhari/nexus/internal/ports"
	"github.com/hsbukhari/nexus/internal/server"
	"github.com/hsbukhari/nexus/internal/storage/memory"
	"github.com/hsbukhari/nexus/internal/storage/sqlite"
	"github.com/hsbukhari/nexus/internal/strategy"
	"github.com/hsbukhari/nexus/internal/telemetry"
	"github.com/hsbukhari/nexus/internal/tokens"
)

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	shutdown, err := telemetry.InitTracer("nexus-core", logger)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			logger.Error("failed to shutdown tracer", slog.String("error", err.Error()))
		}
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	backend, err := gemini.New(ctx, cfg.Gemini.APIKey)
	if err != nil {
		log.Fatalf("Failed to create backend: %v", err)
	}

	var store ports.ConversationStore
	switch cfg.Storage.Type {
	case "sqlite":
		s, err := sqlite.New(cfg.Storage.SQLite.Path)
		if err != nil {
			log.Fatalf("Failed to open conversation store: %v", err)
		}
		store = s
	default:
		store = memory.New()
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("closing conversation store", slog.String("error", err.Error()))
		}
	}()

	stratCfg := strategy.Config{
		TextModel:    cfg.Gemini.TextModel,
		ImageModel:   cfg.Gemini.ImageModel,
		VideoModel:   cfg.Gemini.VideoModel,
		SpeechModel:  cfg.Gemini.SpeechModel,
		Voice:        cfg.Gemini.Voice,
		Temperature:  cfg.Generation.Temperature,
		PollInterval: cfg.Generation.PollInterval,
		MaxPolls:     cfg.Generation.MaxPolls,
		APIKey:       cfg.Gemini.APIKey,
	}

	registry := strategy.NewRegistry(backend, stratCfg, logger)
	speech := strategy.NewSpeechSynthesizer(backend, stratCfg, logger)
	orch := orchestrator.New(store, registry, tokens.NewCounter(), cfg.Generation.PromptTokenBudget, logger)

	srv := server.New(cfg.Server.Port, logger)
	server.NewHandlers(orch, speech, logger).Mount(srv.Router)

	if err := srv.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
