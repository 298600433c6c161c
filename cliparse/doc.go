// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - Sink: Where leads go, "log" (default) or "sql"
  - DatabaseURL: Database connection string (required for sql)
  - DatabaseType: "sqlite" (default) or "postgres"
  - AdminKey: Key for the leads API (required for sql)
  - SessionSalt: Secret for session tokens (required)
  - IPHashSalt: Secret for client IP hashing (required)
  - CatalogPath: YAML question catalog (default: built-in dock quiz)
  - SessionTTL: Idle session lifetime (default: 30m)
  - SinkRetries: Extra sink attempts per submission (default: 2)

# CLI Flags

	-p              Server port
	-s              Lead sink
	-d              Database URL
	-t              Database type
	--catalog       Catalog file
	--session-ttl   Idle session lifetime
	--sink-retries  Extra sink attempts
	--admin-key     Admin key
	--session-salt  Session token salt
	--ip-salt       IP hash salt

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	SINK          → -s
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	CATALOG_PATH  → --catalog
	SESSION_TTL   → --session-ttl
	SINK_RETRIES  → --sink-retries
	ADMIN_KEY     → --admin-key
	SESSION_SALT  → --session-salt
	IP_HASH_SALT  → --ip-salt

CLI flags take precedence over environment variables. main loads a .env
file into the environment before parsing.
*/
package cliparse
