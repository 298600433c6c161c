// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the dock quiz API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(store, catalog, leads, cfg)

Pass a nil leads reader when leads only go to the log sink.

# Endpoints

Health and catalog:

	GET /health
	GET /catalog

Quiz sessions (requires X-Session-Token after creation):

	POST  /sessions                    - Start a session
	GET   /sessions/{id}               - Current step
	POST  /sessions/{id}/advance       - Next step or submit
	POST  /sessions/{id}/retreat       - Previous question
	PUT   /sessions/{id}/answer        - Answer the current question
	POST  /sessions/{id}/answer/toggle - Check or uncheck one option
	PATCH /sessions/{id}/contact       - Update contact fields
	POST  /sessions/{id}/submit        - Submit the lead

Leads (admin, requires X-Admin-Key):

	GET /leads      - Newest leads
	GET /leads/{id} - One lead with answers
*/
package router
