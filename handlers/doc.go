// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the dock quiz API.

# Handler Types

  - SessionHandler: quiz sessions (create, navigate, answer, contact, submit)
  - CatalogHandler: the question catalog
  - LeadHandler: admin read access to stored leads

Handlers are created via constructor functions:

	store := handlers.NewSessionStore(catalog, sink, cfg.SessionTTL)
	sessionHandler := handlers.NewSessionHandler(store, cfg)

# Session Store

Sessions live in memory only. SessionStore.With holds a per-session lock
while an event runs, so one respondent's requests apply in order. Idle
sessions are dropped by RunSweeper after the configured TTL.

# Quiz Flow

	POST  /sessions                     → CreateSession (returns session_token)
	GET   /sessions/{id}                → GetSession
	POST  /sessions/{id}/advance        → Advance
	POST  /sessions/{id}/retreat        → Retreat
	PUT   /sessions/{id}/answer         → SelectAnswer
	POST  /sessions/{id}/answer/toggle  → ToggleOption
	PATCH /sessions/{id}/contact        → UpdateContact
	POST  /sessions/{id}/submit         → Submit

Session operations require the X-Session-Token header. Validation failures
return 422 with the offending field, phase violations 409, and sink
failures 502 with the session left in contact collection.

# Leads

	GET /leads      → ListLeads (?limit=N)
	GET /leads/{id} → GetLead

Lead operations require the X-Admin-Key header and a SQL sink.
*/
package handlers
