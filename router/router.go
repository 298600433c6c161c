// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/dock-quiz/cliparse"
	"github.com/danielhkuo/dock-quiz/handlers"
	"github.com/danielhkuo/dock-quiz/middleware"
	"github.com/danielhkuo/dock-quiz/quiz"
)

// NewRouter registers every endpoint. leads may be nil, in which case the
// admin lead routes are left out.
func NewRouter(store *handlers.SessionStore, catalog *quiz.Catalog, leads handlers.LeadReader, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(store, cfg)
	catalogHandler := handlers.NewCatalogHandler(catalog)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("GET /catalog", middleware.WithLogging(catalogHandler.GetCatalog))

	// Quiz sessions (public, session token)
	mux.HandleFunc("POST /sessions", middleware.WithLogging(sessionHandler.CreateSession))
	mux.HandleFunc("GET /sessions/{id}", middleware.WithLogging(sessionHandler.GetSession))
	mux.HandleFunc("POST /sessions/{id}/advance", middleware.WithLogging(sessionHandler.Advance))
	mux.HandleFunc("POST /sessions/{id}/retreat", middleware.WithLogging(sessionHandler.Retreat))
	mux.HandleFunc("PUT /sessions/{id}/answer", middleware.WithLogging(sessionHandler.SelectAnswer))
	mux.HandleFunc("POST /sessions/{id}/answer/toggle", middleware.WithLogging(sessionHandler.ToggleOption))
	mux.HandleFunc("PATCH /sessions/{id}/contact", middleware.WithLogging(sessionHandler.UpdateContact))
	mux.HandleFunc("POST /sessions/{id}/submit", middleware.WithLogging(sessionHandler.Submit))

	// Lead review (admin operations)
	if leads != nil {
		leadHandler := handlers.NewLeadHandler(leads, cfg)
		mux.HandleFunc("GET /leads", middleware.WithLogging(leadHandler.ListLeads))
		mux.HandleFunc("GET /leads/{id}", middleware.WithLogging(leadHandler.GetLead))
	}

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("dock-quiz API v1"))
	})

	return mux
}
