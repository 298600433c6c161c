// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package sink

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/danielhkuo/dock-quiz/cliparse"
	"github.com/danielhkuo/dock-quiz/db"
	"github.com/danielhkuo/dock-quiz/quiz"
)

const retryBackoff = 200 * time.Millisecond

// Configured is the sink chosen by a Config. Leads and DB are set only for
// the SQL sink.
type Configured struct {
	Sink  quiz.Sink
	Leads *SQLSink
	DB    *sql.DB
}

// FromConfig builds the configured sink wrapped with cfg.SinkRetries
// retries.
func FromConfig(ctx context.Context, cfg cliparse.Config, logger *slog.Logger) (Configured, error) {
	var out Configured
	var base quiz.Sink

	switch cfg.Sink {
	case "", cliparse.SinkLog:
		base = NewLogSink(logger)
	case cliparse.SinkSQL:
		conn, err := db.Open(ctx, cfg.DatabaseType, cfg.DatabaseURL)
		if err != nil {
			return out, err
		}
		out.DB = conn
		out.Leads = NewSQLSink(conn)
		base = out.Leads
	default:
		return out, fmt.Errorf("unknown sink %q", cfg.Sink)
	}

	out.Sink = NewRetrySink(base, cfg.SinkRetries, retryBackoff)
	return out, nil
}

// Close releases the database behind a SQL sink.
func (c Configured) Close() error {
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
