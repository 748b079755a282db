package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wolfman30/clinic-assistant/internal/clinic"
	"github.com/wolfman30/clinic-assistant/internal/config"
	"github.com/wolfman30/clinic-assistant/internal/conversation"
	"github.com/wolfman30/clinic-assistant/internal/observability/metrics"
	"github.com/wolfman30/clinic-assistant/internal/storage"
	"github.com/wolfman30/clinic-assistant/internal/web"
	"github.com/wolfman30/clinic-assistant/pkg/logging"
)

func main() {
	serve := flag.Bool("serve", false, "run the HTTP server instead of the interactive console")
	flag.Parse()

	// Load .env if present; real environment wins.
	_ = godotenv.Load()
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting clinic assistant",
		"env", cfg.Env,
		"clinic", cfg.ClinicName,
	)

	var store clinic.Store = clinic.NewMemoryStore()
	if cfg.DatabasePath != "" {
		db, err := storage.Open(cfg.DatabasePath)
		if err != nil {
			logger.Error("failed to open database", "path", cfg.DatabasePath, "error", err)
			os.Exit(1)
		}
		defer db.Close()
		store = db
		logger.Info("database opened", "path", cfg.DatabasePath)
	}

	service := clinic.NewService(store, logger)
	if cfg.SeedDoctors {
		clinic.SeedDoctors(service)
	}

	engineMetrics := metrics.NewConversationMetrics(prometheus.DefaultRegisterer)
	engine := conversation.NewEngine(service, conversation.Options{
		ClinicName: cfg.ClinicName,
		SessionTTL: cfg.SessionTTL,
		SweepEvery: cfg.SessionSweepEvery,
		Logger:     logger,
		Metrics:    engineMetrics,
	})

	if *serve {
		runServer(cfg, engine, service, logger)
		return
	}
	runConsole(cfg, engine, service, logger)
}

func runServer(cfg *config.Config, engine *conversation.Engine, service *clinic.Service, logger *logging.Logger) {
	handler := web.NewHandler(engine, service, logger)
	router := web.NewRouter(web.RouterConfig{
		Handler:        handler,
		MetricsHandler: promhttp.Handler(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
