package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/0muji4/jellyref/internal/include"
	"github.com/0muji4/jellyref/internal/workspace"
)

// Config controls how include references are recognised and resolved.
type Config struct {
	// Namespace is the tag library namespace of <include>.
	Namespace string `yaml:"namespace"`
	// NameMatch is how page names are compared with file names:
	// host, exact or fold.
	NameMatch string `yaml:"name_match"`
	LogLevel  string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Namespace: include.Namespace,
		NameMatch: string(workspace.MatchHost),
		LogLevel:  "info",
	}
}

// Load reads a YAML config file on top of the defaults and applies
// environment overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.Namespace = envOr("JELLYREF_NAMESPACE", cfg.Namespace)
	cfg.NameMatch = envOr("JELLYREF_NAME_MATCH", cfg.NameMatch)
	cfg.LogLevel = envOr("JELLYREF_LOG_LEVEL", cfg.LogLevel)

	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.Namespace) == "" {
		return errors.New("namespace is required")
	}
	if _, err := workspace.ParseNameMatch(c.NameMatch); err != nil {
		return err
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Match returns the parsed NameMatch. Call Validate first.
func (c Config) Match() workspace.NameMatch {
	m, err := workspace.ParseNameMatch(c.NameMatch)
	if err != nil {
		return workspace.MatchHost
	}
	return m
}

// Classifier builds the include classifier for the configured namespace.
func (c Config) Classifier() include.Classifier {
	return include.NewClassifier(c.Namespace)
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// NewLogger returns a text logger on stderr at the configured level.
func (c Config) NewLogger() *slog.Logger {
	level, _ := ParseLevel(c.LogLevel)
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
