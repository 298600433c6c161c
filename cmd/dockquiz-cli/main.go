// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command dockquiz-cli runs the dock quiz in a terminal and hands the lead
// to the configured sink.
package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/danielhkuo/dock-quiz/catalog"
	"github.com/danielhkuo/dock-quiz/cliparse"
	"github.com/danielhkuo/dock-quiz/prompt"
	"github.com/danielhkuo/dock-quiz/quiz"
	"github.com/danielhkuo/dock-quiz/sink"
)

var (
	catalogPath  string
	sinkKind     string
	databaseURL  string
	databaseType string
	sinkRetries  int
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "dockquiz-cli",
	Short: "Take the dock quiz in your terminal",
	Long: `Walks through the dock questionnaire, collects contact details and
submits the lead to a log line or a SQL database.

Settings fall back to the CATALOG_PATH, SINK, DATABASE_URL and
DATABASE_TYPE environment variables (a .env file is read if present).`,
	SilenceUsage: true,
	RunE:         runQuiz,
}

func init() {
	rootCmd.Flags().StringVar(&catalogPath, "catalog", "", "question catalog YAML file (default: built-in)")
	rootCmd.Flags().StringVar(&sinkKind, "sink", "", "lead sink: log or sql (default: log)")
	rootCmd.Flags().StringVar(&databaseURL, "database-url", "", "database URL for the sql sink")
	rootCmd.Flags().StringVar(&databaseType, "database-type", "", "sqlite or postgres (default: sqlite)")
	rootCmd.Flags().IntVar(&sinkRetries, "sink-retries", 2, "extra attempts when the sink fails")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr while running")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, prompt.ErrAborted) {
			os.Exit(130)
		}
		os.Exit(1)
	}
}

func runQuiz(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := cliparse.Config{
		Sink:         firstNonEmpty(sinkKind, os.Getenv("SINK"), cliparse.SinkLog),
		DatabaseURL:  firstNonEmpty(databaseURL, os.Getenv("DATABASE_URL")),
		DatabaseType: firstNonEmpty(databaseType, os.Getenv("DATABASE_TYPE"), "sqlite"),
		CatalogPath:  firstNonEmpty(catalogPath, os.Getenv("CATALOG_PATH")),
		SinkRetries:  sinkRetries,
	}
	if cfg.Sink == cliparse.SinkSQL && cfg.DatabaseURL == "" {
		return errors.New("--database-url is required for the sql sink")
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	questions, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return err
	}

	// Leads logged by the log sink are always shown
	leadLog := slog.New(slog.NewTextHandler(os.Stderr, nil))
	configured, err := sink.FromConfig(cmd.Context(), cfg, leadLog)
	if err != nil {
		return err
	}
	defer configured.Close()

	session := quiz.NewSession(uuid.NewString(), questions, configured.Sink)
	started := time.Now()

	if err := prompt.NewRunner(prompt.NewSurveyDriver()).Run(cmd.Context(), session); err != nil {
		return err
	}

	if lead, ok := session.Lead(); ok {
		fmt.Fprintf(cmd.OutOrStdout(), "Submitted %s (quiz started %s).\n",
			humanize.Time(lead.SubmittedAt), humanize.Time(started))
		logger.Info("lead submitted", "session_id", lead.SessionID, "sink", cfg.Sink)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
