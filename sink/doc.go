// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package sink provides destinations for completed quiz leads.

# Sinks

All sinks implement quiz.Sink:

  - LogSink: writes one structured log line per lead
  - SQLSink: stores leads and answers in SQLite or PostgreSQL
  - RetrySink: retries another sink a bounded number of times

Sinks compose:

	store := sink.NewSQLSink(conn)
	s := sink.NewRetrySink(store, 2, 200*time.Millisecond)

# Reading Leads

SQLSink also serves the admin API:

	leads, err := store.ListLeads(ctx, 50)
	lead, err := store.GetLead(ctx, id)

GetLead returns ErrLeadNotFound for unknown ids.
*/
package sink
