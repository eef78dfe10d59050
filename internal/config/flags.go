package config

import "flag"

// flagToField maps flag names to config field names.
var flagToField = map[string]string{
	"title-pattern":  "title_pattern",
	"dry-run":        "dry_run",
	"log-level":      "log_level",
	"log-format":     "log_format",
	"log-timestamps": "log_timestamps",
	"log-caller":     "log_caller",
}

// parseFlags defines and parses CLI flags.
// If sources is non-nil, it tracks the source of each explicitly set value.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("todo-rename", flag.ContinueOnError)
	}

	fs.StringVar(&cfg.TitlePattern, "title-pattern", cfg.TitlePattern, "Title line pattern; first capture group is the title")
	fs.BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "Report renames without performing them")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if sources != nil {
		fs.Visit(func(f *flag.Flag) {
			if field, ok := flagToField[f.Name]; ok {
				sources[field] = SourceFlag
			}
		})
	}
	return nil
}
