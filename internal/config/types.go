package config

import "github.com/nibzard/todo-rename/internal/renamer"

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource

	// Files lists the config files that were read, lowest priority first.
	Files []string
}

// Default values.
const (
	DefaultTitlePattern = renamer.DefaultTitlePattern
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
)

// Config file names.
const (
	UserConfigName    = "todo-rename.toml"
	ProjectConfigName = "todo-rename.toml"
	HiddenConfigName  = ".todo-rename.toml"
)

// Config holds the full configuration for todo-rename.
type Config struct {
	// Title line pattern; the first capture group is the title.
	TitlePattern string `toml:"title_pattern"`

	// Report what would be renamed without touching the filesystem.
	DryRun bool `toml:"dry_run"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`

	// Working directory (computed); the default rename target.
	WorkDir string `toml:"-"`
}

// configFields returns the list of configurable field names for source tracking.
func configFields() []string {
	return []string{
		"title_pattern",
		"dry_run",
		"log_level",
		"log_format",
		"log_timestamps",
		"log_caller",
	}
}

// Fields returns the configurable field names in display order.
func Fields() []string {
	return configFields()
}

// Value returns the display value of a configurable field.
func (c *Config) Value(field string) any {
	switch field {
	case "title_pattern":
		return c.TitlePattern
	case "dry_run":
		return c.DryRun
	case "log_level":
		return c.LogLevel
	case "log_format":
		return c.LogFormat
	case "log_timestamps":
		return c.LogTimestamps
	case "log_caller":
		return c.LogCaller
	default:
		return nil
	}
}
