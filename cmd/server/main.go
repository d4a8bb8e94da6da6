package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/docoutline/docoutline/internal/api"
	"github.com/docoutline/docoutline/internal/config"
	"github.com/docoutline/docoutline/internal/extract"
	"github.com/docoutline/docoutline/internal/pipeline"
	"github.com/docoutline/docoutline/internal/resultstore"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Record delivery is optional: remote store, output directory, or both.
	var store *resultstore.Client
	if cfg.ResultStoreURL != "" {
		store = resultstore.NewClient(cfg.ResultStoreURL, cfg.ResultStoreAPIKey)
	}
	var dirWriter *resultstore.DirWriter
	if cfg.OutputDir != "" {
		dirWriter = &resultstore.DirWriter{Dir: cfg.OutputDir}
	}

	extractor := extract.New(log)

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, extractor, store, dirWriter, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		if store != nil {
			store.Close()
		}
	}()

	log.Info("starting docoutline", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
