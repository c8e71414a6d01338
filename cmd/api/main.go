package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/NCpython/smartchefbot/internal/agent"
	"github.com/NCpython/smartchefbot/internal/config"
	"github.com/NCpython/smartchefbot/internal/extract"
	"github.com/NCpython/smartchefbot/internal/llm"
	"github.com/NCpython/smartchefbot/internal/logger"
	"github.com/NCpython/smartchefbot/internal/menu"
	"github.com/NCpython/smartchefbot/internal/router"
	"github.com/NCpython/smartchefbot/internal/storage"
	"github.com/NCpython/smartchefbot/internal/system"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	cfg := config.Load()

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer log.Sync()

	if err := cfg.EnsureDirs(); err != nil {
		log.Fatal("data directories unavailable", zap.Error(err))
	}

	// A missing credential is a warning, not a startup failure; the
	// first LLM-dependent call fails instead.
	if !cfg.HasGeminiKey() {
		log.Warn("GOOGLE_API_KEY not set; LLM-dependent calls will fail",
			zap.String("hint", "get a key from https://makersuite.google.com/app/apikey"))
	}

	// ───────────────────────── STORE ─────────────────────────
	store := menu.NewFileStore(cfg.ExtractedDir, cfg.MenusDir, log)

	archives := []menu.Archive{storage.NewLocalArchive(cfg.MenusDir)}
	if cfg.R2Enabled() {
		r2, err := storage.NewR2Archive(context.Background(), storage.R2Config{
			Endpoint:  cfg.R2Endpoint,
			AccessKey: cfg.R2AccessKey,
			SecretKey: cfg.R2SecretKey,
			Bucket:    cfg.R2Bucket,
		})
		if err != nil {
			log.Fatal("R2 init failed", zap.Error(err))
		}
		archives = append(archives, r2)
		log.Info("R2 pdf mirror enabled", zap.String("bucket", cfg.R2Bucket))
	}

	// ───────────────────────── LLM + AGENT ─────────────────────────
	gemini := llm.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel, log)
	pdfReader := extract.NewPDFReader()

	chatAgent := agent.New(store, gemini, cfg.Temperature, log)

	// ───────────────────────── SERVICES ─────────────────────────
	menuService := menu.NewService(store, gemini, pdfReader, archives, log)

	// ───────────────────────── ROUTER ─────────────────────────
	r := router.New(router.Handlers{
		Menu:   menu.NewHandler(menuService, store),
		Query:  agent.NewHandler(chatAgent),
		System: system.NewHandler(store),
	})

	// ───────────────────────── START ─────────────────────────
	log.Info("starting server", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}
