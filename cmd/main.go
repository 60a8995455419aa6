package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sumpad/internal/config"
	"sumpad/internal/database"
	"sumpad/internal/extract"
	"sumpad/internal/scheduler"
	"sumpad/internal/server"
	"sumpad/internal/summarizer"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	start := time.Now()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		log.ErrorContext(ctx, "Failed to load config",
			"error", err)

		return
	}

	db, err := database.New(ctx, cfg.DBPath, log)
	if err != nil {
		log.ErrorContext(ctx, "Failed to initialize db",
			"error", err,
			"dbPath", cfg.DBPath)

		return
	}
	defer func() {
		if err = db.Close(); err != nil {
			log.ErrorContext(ctx, "Failed to close db",
				"error", err,
				"dbPath", cfg.DBPath)
		}
	}()
	log.InfoContext(ctx, "DB is initialized",
		"dbPath", cfg.DBPath)

	if cfg.OpenRouterAPIKey == "" {
		log.WarnContext(ctx, "OPENROUTER_API_KEY is missing so every request will fail",
			"envVar", "OPENROUTER_API_KEY")
	}

	sum := summarizer.NewOpenRouterSummarizer(summarizer.OpenRouterConfig{
		APIKey:  cfg.OpenRouterAPIKey,
		BaseURL: cfg.OpenRouterBaseURL,
		Model:   cfg.Model,
		Timeout: cfg.RequestTimeout,
	})
	log.InfoContext(ctx, "Summarizer is initialized",
		"model", cfg.Model,
		"baseURL", cfg.OpenRouterBaseURL,
		"timeout", cfg.RequestTimeout.String())

	extractor := extract.NewExtractor(log)

	srv := server.New(cfg.ListenAddr, sum, extractor, db, log)

	sched := scheduler.New(ctx, db, cfg.HistoryRetentionDays, log)
	if err = sched.Start(); err != nil {
		log.ErrorContext(ctx, "Failed to start scheduler",
			"error", err,
			"spec", scheduler.DailyPruneSpec,
			"retentionDays", cfg.HistoryRetentionDays)

		return
	}
	defer sched.Stop()
	log.InfoContext(ctx, "Scheduler is started",
		"spec", scheduler.DailyPruneSpec,
		"retentionDays", cfg.HistoryRetentionDays)

	go func() {
		if serveErr := srv.Start(); serveErr != nil {
			log.ErrorContext(ctx, "Server stopped unexpectedly",
				"error", serveErr,
				"listenAddr", cfg.ListenAddr)
			cancel()
		}
	}()
	log.InfoContext(ctx, "Server is started",
		"listenAddr", cfg.ListenAddr)

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-c:
		log.InfoContext(ctx, "Shutdown signal is received",
			"signal", sig.String())
	case <-ctx.Done():
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(
		context.Background(),
		shutdownTimeout,
	)
	defer shutdownCancel()

	if err = srv.Shutdown(shutdownCtx); err != nil {
		log.ErrorContext(shutdownCtx, "Failed to shut down server",
			"error", err,
			"listenAddr", cfg.ListenAddr)
	}

	log.InfoContext(ctx, "Exiting...",
		"uptimeSeconds", time.Since(start).Seconds())
}
