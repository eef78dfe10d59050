package config

import (
	"os"
	"strings"
)

// Environment variable names.
const (
	EnvTitlePattern  = "TODO_RENAME_TITLE_PATTERN"
	EnvDryRun        = "TODO_RENAME_DRY_RUN"
	EnvLogLevel      = "TODO_RENAME_LOG_LEVEL"
	EnvLogFormat     = "TODO_RENAME_LOG_FORMAT"
	EnvLogTimestamps = "TODO_RENAME_LOG_TIMESTAMPS"
	EnvLogCaller     = "TODO_RENAME_LOG_CALLER"
)

// loadFromEnv overrides config from environment variables.
// If sources is non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	mark := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v := os.Getenv(EnvTitlePattern); v != "" {
		cfg.TitlePattern = v
		mark("title_pattern")
	}
	if v := os.Getenv(EnvDryRun); v != "" {
		cfg.DryRun = boolFromString(v)
		mark("dry_run")
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
		mark("log_level")
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.LogFormat = v
		mark("log_format")
	}
	if v := os.Getenv(EnvLogTimestamps); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		mark("log_timestamps")
	}
	if v := os.Getenv(EnvLogCaller); v != "" {
		cfg.LogCaller = boolFromString(v)
		mark("log_caller")
	}
}

// boolFromString parses a boolean from a string.
func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}
