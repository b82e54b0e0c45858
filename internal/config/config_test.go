package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Port:               "8080",
		StoreBackend:       BackendLocal,
		DBPath:             "./data/test.db",
		RemotePollInterval: 15 * time.Second,
		RecordLimit:        999,
		LogFormat:          "text",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid local backend",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name: "valid remote backend",
			mutate: func(c *Config) {
				c.StoreBackend = BackendRemote
				c.RemoteURL = "http://ledger.local:8080"
			},
			wantErr: false,
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "invalid backend",
			mutate:      func(c *Config) { c.StoreBackend = "sheets" },
			wantErr:     true,
			errorString: "invalid store backend 'sheets'",
		},
		{
			name:        "local backend missing path",
			mutate:      func(c *Config) { c.DBPath = "" },
			wantErr:     true,
			errorString: "database path cannot be empty",
		},
		{
			name:        "remote backend missing url",
			mutate:      func(c *Config) { c.StoreBackend = BackendRemote },
			wantErr:     true,
			errorString: "REMOTE_URL is required",
		},
		{
			name: "remote backend bad scheme",
			mutate: func(c *Config) {
				c.StoreBackend = BackendRemote
				c.RemoteURL = "ftp://ledger.local"
			},
			wantErr:     true,
			errorString: "invalid remote URL",
		},
		{
			name:        "negative record limit",
			mutate:      func(c *Config) { c.RecordLimit = -1 },
			wantErr:     true,
			errorString: "invalid record limit -1",
		},
		{
			name:        "bad log format",
			mutate:      func(c *Config) { c.LogFormat = "xml" },
			wantErr:     true,
			errorString: "invalid log format 'xml'",
		},
		{
			name: "bad amqp scheme",
			mutate: func(c *Config) {
				c.AMQPURL = "http://localhost:5672"
				c.AMQPExchange = "messledger"
			},
			wantErr:     true,
			errorString: "must be 'amqp' or 'amqps'",
		},
		{
			name: "missing service account file",
			mutate: func(c *Config) {
				c.GoogleSpreadsheetID = "sheet-id"
				c.GoogleSheetName = "Settlement"
				c.GoogleServiceAccountFile = filepath.Join(t.TempDir(), "missing.json")
			},
			wantErr:     true,
			errorString: "Google service account file does not exist",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error but got none")
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("error = %q, want it to contain %q", err.Error(), tt.errorString)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_BACKEND", "remote")
	t.Setenv("REMOTE_URL", "http://ledger.local")
	t.Setenv("REMOTE_POLL_INTERVAL", "1m")
	t.Setenv("RECORD_LIMIT", "50")
	t.Setenv("LOG_FORMAT", "json")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.StoreBackend != BackendRemote {
		t.Errorf("StoreBackend = %q, want remote", cfg.StoreBackend)
	}
	if cfg.RemotePollInterval != time.Minute {
		t.Errorf("RemotePollInterval = %v, want 1m", cfg.RemotePollInterval)
	}
	if cfg.RecordLimit != 50 {
		t.Errorf("RecordLimit = %d, want 50", cfg.RecordLimit)
	}
	if cfg.Addr() != ":9090" {
		t.Errorf("Addr() = %q, want :9090", cfg.Addr())
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORE_BACKEND", "RECORD_LIMIT", "REMOTE_POLL_INTERVAL"} {
		t.Setenv(key, "")
	}
	t.Setenv("RECORD_LIMIT", "not-a-number")

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.StoreBackend != BackendLocal {
		t.Errorf("StoreBackend = %q, want local", cfg.StoreBackend)
	}
	if cfg.RecordLimit != 999 {
		t.Errorf("RecordLimit = %d, want 999", cfg.RecordLimit)
	}
}
