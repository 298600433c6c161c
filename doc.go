// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the dock quiz API server.

The dock quiz is a lead funnel: a visitor answers a fixed list of questions
about their waterfront, leaves contact details, and the finished lead is
handed to a sink (a log line or a database row).

# Starting the Server

The server reads a .env file if present, then environment variables or CLI
flags:

	SESSION_SALT=... IP_HASH_SALT=... go run .

Or with flags:

	go run . -p 3318 -s sql -t sqlite -d leads.db --admin-key secret

# Configuration

Required settings:

  - SESSION_SALT (--session-salt): Secret for session token HMAC
  - IP_HASH_SALT (--ip-salt): Secret for hashing client IPs

Required for the sql sink:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - ADMIN_KEY (--admin-key): Key for the lead review endpoints

Optional settings:

  - PORT (-p): Server port (default: 3318)
  - SINK (-s): log or sql (default: log)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - CATALOG_PATH (--catalog): YAML question catalog (default: built-in)
  - SESSION_TTL (--session-ttl): Idle session lifetime (default: 30m)
  - SINK_RETRIES (--sink-retries): Extra submit attempts (default: 2)

# Architecture

  - quiz: Session state machine, catalog and value types
  - catalog: Built-in questions and YAML loading
  - sink: Log, SQL and retrying lead sinks
  - handlers: HTTP request handlers and the in-memory session store
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers, text sanitizing
  - models: Request/response types
  - auth: Session tokens, admin key checks, IP hashing
  - db: Connection setup and schema creation
  - cliparse: Configuration parsing
  - prompt, cmd/dockquiz-cli: The same quiz in a terminal

See package documentation for each component.
*/
package main
