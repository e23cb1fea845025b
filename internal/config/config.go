// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	defaultPort     = "8080"
	defaultDocsPath = "/api-docs"
)

// Config holds the server settings.
type Config struct {
	Port           string // PORT, listening port
	MetricsEnabled bool   // METRICS_ENABLED, serve /metrics and record request metrics
	DocsPath       string // API_DOCS_PATH, where the API reference UI is mounted
}

// Addr returns the listen address for http.Server.
func (c Config) Addr() string {
	return ":" + c.Port
}

// Load reads files (default ".env") into the process environment without overriding
// variables that are already set, then parses the configuration. Missing files are ignored.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv parses the configuration from environment variables only.
func FromEnv() (Config, error) {
	cfg := Config{
		Port:           envOr("PORT", defaultPort),
		MetricsEnabled: true,
		DocsPath:       envOr("API_DOCS_PATH", defaultDocsPath),
	}

	port, err := strconv.Atoi(cfg.Port)
	if err != nil || port < 1 || port > 65535 {
		return Config{}, fmt.Errorf("invalid PORT %q: must be a number between 1 and 65535", cfg.Port)
	}

	if raw, ok := os.LookupEnv("METRICS_ENABLED"); ok && strings.TrimSpace(raw) != "" {
		enabled, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return Config{}, fmt.Errorf("invalid METRICS_ENABLED %q: %w", raw, err)
		}
		cfg.MetricsEnabled = enabled
	}

	if !strings.HasPrefix(cfg.DocsPath, "/") {
		return Config{}, fmt.Errorf("invalid API_DOCS_PATH %q: must start with /", cfg.DocsPath)
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
