// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/dock-quiz/catalog"
	"github.com/danielhkuo/dock-quiz/cliparse"
	"github.com/danielhkuo/dock-quiz/handlers"
	"github.com/danielhkuo/dock-quiz/middleware"
	"github.com/danielhkuo/dock-quiz/router"
	"github.com/danielhkuo/dock-quiz/sink"
)

const sweepInterval = time.Minute

func main() {
	var err error

	// Load .env if present
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Error("failed to load .env", "error", err)
		os.Exit(1)
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	questions, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		slog.Error("catalog load failed", "path", cfg.CatalogPath, "error", err)
		os.Exit(1)
	}
	slog.Info("Catalog ready", "questions", questions.Len(), "sections", len(questions.Sections()))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Connect the lead sink
	configured, err := sink.FromConfig(ctx, cfg, slog.Default())
	if err != nil {
		slog.Error("sink setup failed", "sink", cfg.Sink, "error", err)
		os.Exit(1)
	}
	defer configured.Close()
	slog.Info("Lead sink ready", "sink", cfg.Sink, "retries", cfg.SinkRetries)

	store := handlers.NewSessionStore(questions, configured.Sink, cfg.SessionTTL)
	go store.RunSweeper(ctx, sweepInterval)

	// A nil *SQLSink must not become a non-nil interface
	var leads handlers.LeadReader
	if configured.Leads != nil {
		leads = configured.Leads
	}

	// Create router
	mux := router.NewRouter(store, questions, leads, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		cancel()
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
