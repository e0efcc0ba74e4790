package main

import (
	"log"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/parlance-data/parlance-engine/pkg/config"
	"github.com/parlance-data/parlance-engine/pkg/handlers"
	"github.com/parlance-data/parlance-engine/pkg/llm"
	"github.com/parlance-data/parlance-engine/pkg/logging"
	"github.com/parlance-data/parlance-engine/pkg/middleware"
	"github.com/parlance-data/parlance-engine/pkg/observability"
	"github.com/parlance-data/parlance-engine/pkg/translate"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Configuration loaded",
		zap.String("environment", cfg.Env),
		zap.String("llm_endpoint", cfg.LLM.BaseURL),
		zap.String("llm_model", cfg.LLM.Model),
		zap.Bool("injection_screening", cfg.Translate.InjectionScreening))

	llmClient, err := llm.NewClient(&llm.Config{
		Endpoint: cfg.LLM.BaseURL,
		Model:    cfg.LLM.Model,
		APIKey:   cfg.LLM.APIKey,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to create LLM client", zap.Error(err))
	}

	translateService := translate.NewService(llmClient, cfg.Translate, logger)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(cfg, logger).RegisterRoutes(mux)
	handlers.NewTranslateHandler(translateService, logger).RegisterRoutes(mux)
	mux.Handle("/metrics", promhttp.Handler())

	handler := middleware.RequestLogger(logger)(observability.Instrument(mux))

	addr := cfg.BindAddr + ":" + cfg.Port
	logger.Info("Starting parlance-engine",
		zap.String("addr", addr),
		zap.String("version", cfg.Version))
	if err := http.ListenAndServe(addr, handler); err != nil {
		logger.Fatal("Server failed", zap.Error(err))
	}
}
