// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store backends.
const (
	BackendLocal  = "local"
	BackendRemote = "remote"
)

type Config struct {
	// HTTP server
	Port string

	// Record store
	StoreBackend       string
	DBPath             string
	RemoteURL          string
	RemotePollInterval time.Duration
	RecordLimit        int

	// Reporting
	Currency string

	// Logging
	LogLevel  string
	LogFormat string

	// AMQP change events (optional)
	AMQPURL      string
	AMQPExchange string

	// Google Sheets export (optional)
	GoogleSpreadsheetID      string
	GoogleSheetName          string
	GoogleServiceAccountFile string
}

// Load reads .env (if present) and then the environment.
func Load() *Config {
	// .env is for local development; its absence is fine.
	_ = godotenv.Load()

	return &Config{
		Port: getEnv("PORT", "8080"),

		StoreBackend:       getEnv("STORE_BACKEND", BackendLocal),
		DBPath:             getEnv("DB_PATH", "./data/messledger.db"),
		RemoteURL:          getEnv("REMOTE_URL", ""),
		RemotePollInterval: getEnvDuration("REMOTE_POLL_INTERVAL", 15*time.Second),
		RecordLimit:        getEnvInt("RECORD_LIMIT", 999),

		Currency: getEnv("CURRENCY", "৳"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "messledger"),

		GoogleSpreadsheetID:      getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:          getEnv("GOOGLE_SHEET_NAME", "Settlement"),
		GoogleServiceAccountFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", ""),
	}
}

// Validate validates the configuration and returns every problem found.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.StoreBackend {
	case BackendLocal:
		if c.DBPath == "" {
			errors = append(errors, "database path cannot be empty when using local backend")
		}
	case BackendRemote:
		if c.RemoteURL == "" {
			errors = append(errors, "REMOTE_URL is required when using remote backend")
		} else if u, err := url.Parse(c.RemoteURL); err != nil || (u.Scheme != "http" && u.Scheme != "https") {
			errors = append(errors, fmt.Sprintf("invalid remote URL '%s': must be http or https", c.RemoteURL))
		}
		if c.RemotePollInterval < time.Second {
			errors = append(errors, fmt.Sprintf("invalid poll interval %v: must be at least 1 second", c.RemotePollInterval))
		}
	default:
		errors = append(errors, fmt.Sprintf("invalid store backend '%s': must be one of [%s %s]", c.StoreBackend, BackendLocal, BackendRemote))
	}

	if c.RecordLimit < 0 {
		errors = append(errors, fmt.Sprintf("invalid record limit %d: must not be negative", c.RecordLimit))
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errors = append(errors, fmt.Sprintf("invalid log format '%s': must be text or json", c.LogFormat))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			errors = append(errors, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			errors = append(errors, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
	}

	if c.GoogleSpreadsheetID != "" {
		if c.GoogleSheetName == "" {
			errors = append(errors, "Google Sheet name is required when a spreadsheet ID is set")
		}
		if c.GoogleServiceAccountFile != "" {
			if _, err := os.Stat(c.GoogleServiceAccountFile); os.IsNotExist(err) {
				errors = append(errors, fmt.Sprintf("Google service account file does not exist: %s", c.GoogleServiceAccountFile))
			}
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
