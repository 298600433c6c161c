// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestParseFlags_EnvVars(t *testing.T) {
	// Set env vars
	os.Setenv("PORT", "9000")
	os.Setenv("SINK", "sql")
	os.Setenv("DATABASE_URL", "file:leads.db")
	os.Setenv("ADMIN_KEY", "admin")
	os.Setenv("SESSION_SALT", "test-salt")
	os.Setenv("IP_HASH_SALT", "test-ip")
	os.Setenv("SESSION_TTL", "5m")
	os.Setenv("SINK_RETRIES", "4")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.Sink != SinkSQL {
		t.Errorf("expected sql sink, got %s", cfg.Sink)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("expected default database type sqlite, got %s", cfg.DatabaseType)
	}
	if cfg.SessionTTL != 5*time.Minute {
		t.Errorf("expected 5m session TTL, got %s", cfg.SessionTTL)
	}
	if cfg.SinkRetries != 4 {
		t.Errorf("expected 4 sink retries, got %d", cfg.SinkRetries)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	os.Setenv("SESSION_SALT", "s1")
	os.Setenv("IP_HASH_SALT", "s2")
	defer os.Clearenv()

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 3318 || cfg.Sink != SinkLog || cfg.SessionTTL != 30*time.Minute || cfg.SinkRetries != 2 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	os.Setenv("PORT", "9000")
	os.Setenv("SINK_RETRIES", "4")
	defer os.Clearenv()

	cfg, err := ParseFlags([]string{
		"-p", "8080", "-s", "sql", "-d", "file:test.db", "-admin-key", "k",
		"-session-salt", "s1", "-ip-salt", "s2", "-sink-retries", "0",
	})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.SinkRetries != 0 {
		t.Errorf("CLI should override env: expected 0 retries, got %d", cfg.SinkRetries)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		args    []string
		wantErr string
	}{
		{"missing session salt", map[string]string{"IP_HASH_SALT": "x"}, nil, "SESSION_SALT"},
		{"missing ip salt", map[string]string{"SESSION_SALT": "x"}, nil, "IP_HASH_SALT"},
		{"unknown sink", nil, []string{"-s", "kafka"}, "unknown sink"},
		{"sql without database", map[string]string{"SINK": "sql", "ADMIN_KEY": "k"}, nil, "database URL"},
		{"sql without admin key", map[string]string{"SINK": "sql", "DATABASE_URL": "file:x.db"}, nil, "ADMIN_KEY"},
		{"bad port", map[string]string{"PORT": "abc"}, nil, "PORT"},
		{"bad ttl", map[string]string{"SESSION_TTL": "soon"}, nil, "SESSION_TTL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Clearenv()
			defer os.Clearenv()
			for k, v := range tt.env {
				os.Setenv(k, v)
			}

			_, err := ParseFlags(tt.args)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}
