// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Sink kinds
const (
	SinkLog = "log"
	SinkSQL = "sql"
)

type Config struct {
	Port         int
	Sink         string
	DatabaseURL  string
	DatabaseType string
	AdminKey     string
	SessionSalt  string
	IPHashSalt   string
	CatalogPath  string
	SessionTTL   time.Duration
	SinkRetries  int
}

// ParseFlags validates flags and fills unset values from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("dock-quiz", flag.ContinueOnError)

	// Network and storage config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.Sink, "s", "", "Lead sink (log or sql)")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.CatalogPath, "catalog", "", "Question catalog YAML file")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", 0, "Idle session lifetime")
	fs.IntVar(&cfg.SinkRetries, "sink-retries", -1, "Extra attempts when the sink fails")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.AdminKey, "admin-key", "", "Admin key for the leads API (prefer env)")
	fs.StringVar(&cfg.SessionSalt, "session-salt", "", "Session token salt (prefer env)")
	fs.StringVar(&cfg.IPHashSalt, "ip-salt", "", "IP hash salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	if cfg.Sink == "" {
		cfg.Sink = os.Getenv("SINK")
		if cfg.Sink == "" {
			cfg.Sink = SinkLog
		}
	}
	if cfg.Sink != SinkLog && cfg.Sink != SinkSQL {
		return Config{}, fmt.Errorf("unknown sink %q (use log or sql)", cfg.Sink)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.CatalogPath == "" {
		cfg.CatalogPath = os.Getenv("CATALOG_PATH")
	}

	if cfg.SessionTTL == 0 {
		if ttl := os.Getenv("SESSION_TTL"); ttl != "" {
			d, err := time.ParseDuration(ttl)
			if err != nil {
				return Config{}, errors.New("invalid SESSION_TTL env variable")
			}
			cfg.SessionTTL = d
		} else {
			cfg.SessionTTL = 30 * time.Minute
		}
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, errors.New("session TTL must be positive")
	}

	if cfg.SinkRetries < 0 {
		if retries := os.Getenv("SINK_RETRIES"); retries != "" {
			n, err := strconv.Atoi(retries)
			if err != nil || n < 0 {
				return Config{}, errors.New("invalid SINK_RETRIES env variable")
			}
			cfg.SinkRetries = n
		} else {
			cfg.SinkRetries = 2
		}
	}

	if cfg.AdminKey == "" {
		cfg.AdminKey = os.Getenv("ADMIN_KEY")
	}

	// The SQL sink needs somewhere to write and a key to read leads back
	if cfg.Sink == SinkSQL {
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("database URL required for sql sink (use -d or DATABASE_URL env)")
		}
		if cfg.AdminKey == "" {
			return Config{}, errors.New("ADMIN_KEY required for sql sink")
		}
	}

	// Secrets - MUST be provided
	if cfg.SessionSalt == "" {
		cfg.SessionSalt = os.Getenv("SESSION_SALT")
	}
	if cfg.SessionSalt == "" {
		return Config{}, errors.New("SESSION_SALT required")
	}

	if cfg.IPHashSalt == "" {
		cfg.IPHashSalt = os.Getenv("IP_HASH_SALT")
	}
	if cfg.IPHashSalt == "" {
		return Config{}, errors.New("IP_HASH_SALT required")
	}

	return cfg, nil
}
