package config

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/nibzard/todo-rename/internal/logging"
)

// ErrInvalidConfig is returned when a loaded value fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// LoadWithSources loads configuration from multiple sources in priority
// order and tracks the source of each value:
// 1. Defaults
// 2. User config file (~/.looper/todo-rename.toml or OS-specific config dir)
// 3. Project config file (todo-rename.toml or .todo-rename.toml in the working directory)
// 4. Environment variables
// 5. CLI flags
func LoadWithSources(fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}
	return loadFrom(wd, fs, args)
}

// loadFrom runs the full load using workDir for project config lookup.
func loadFrom(workDir string, fs *flag.FlagSet, args []string) (*ConfigWithSources, error) {
	sources := make(map[string]ConfigSource)
	cfg := &Config{WorkDir: workDir}
	var files []string

	// 1. Set defaults
	setDefaults(cfg)
	for _, field := range configFields() {
		sources[field] = SourceDefault
	}

	// 2. Try to load from user config file
	if path := findUserConfigFile(); path != "" {
		if err := loadConfigFile(cfg, path, sources, SourceUserFile); err != nil {
			return nil, fmt.Errorf("loading user config file %s: %w", path, err)
		}
		files = append(files, path)
	}

	// 3. Try to load from project config file (overrides user config)
	if path := findProjectConfigFile(workDir); path != "" {
		if err := loadConfigFile(cfg, path, sources, SourceProjFile); err != nil {
			return nil, fmt.Errorf("loading project config file %s: %w", path, err)
		}
		files = append(files, path)
	}

	// 4. Override from environment
	loadFromEnv(cfg, sources)

	// 5. Parse CLI flags (they override everything)
	if err := parseFlags(cfg, fs, args, sources); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	if err := finalizeConfig(cfg); err != nil {
		return nil, err
	}

	return &ConfigWithSources{
		Config:  cfg,
		Sources: sources,
		Files:   files,
	}, nil
}

// loadConfigFile decodes a TOML file over cfg and records which keys it set.
func loadConfigFile(cfg *Config, path string, sources map[string]ConfigSource, source ConfigSource) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%w: unknown key %q", ErrInvalidConfig, undecoded[0].String())
	}
	for _, field := range configFields() {
		if md.IsDefined(field) {
			sources[field] = source
		}
	}
	return nil
}

// finalizeConfig validates values that the renamer and logger depend on.
func finalizeConfig(cfg *Config) error {
	if cfg.TitlePattern == "" {
		return fmt.Errorf("%w: title_pattern is empty", ErrInvalidConfig)
	}
	if !logging.ValidLevel(cfg.LogLevel) {
		return fmt.Errorf("%w: log_level %q (expected debug, info, warn, error)", ErrInvalidConfig, cfg.LogLevel)
	}
	if !logging.ValidFormat(cfg.LogFormat) {
		return fmt.Errorf("%w: log_format %q (expected text, json, logfmt)", ErrInvalidConfig, cfg.LogFormat)
	}
	if cfg.WorkDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("getting working directory: %w", err)
		}
		cfg.WorkDir = wd
	}
	return nil
}
