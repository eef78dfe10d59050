// Package cmd implements the CLI command structure for todo-rename.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todo-rename/internal/config"
	"github.com/nibzard/todo-rename/internal/logging"
	"github.com/nibzard/todo-rename/internal/renamer"
	"github.com/nibzard/todo-rename/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Run executes the todo-rename CLI.
func Run(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("todo-rename", flag.ContinueOnError)
	fs.Usage = func() {
		printUsage(fs, os.Stderr)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if *help {
		printUsage(fs, os.Stdout)
		return nil
	}
	if *showVersion {
		return versionCommand()
	}
	cfg := cws.Config

	// No args, or a flag first, means "run" on the working directory.
	subcommand := "run"
	remainingArgs := fs.Args()
	if len(remainingArgs) > 0 && !strings.HasPrefix(remainingArgs[0], "-") {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	// Command names win over paths spelled the same way.
	switch subcommand {
	case "run":
		return runCommand(ctx, fs, cfg, remainingArgs)
	case "tui":
		return tuiCommand(ctx, fs, cfg, remainingArgs)
	case "rpc":
		return rpcCommand(ctx, cfg, remainingArgs)
	case "manifest":
		return manifestCommand(remainingArgs)
	case "config":
		return configCommand(cws, remainingArgs)
	case "version":
		return versionCommand()
	case "help":
		printUsage(fs, os.Stdout)
		return nil
	default:
		// Not a command; an existing file or directory is a run target.
		if _, err := os.Stat(subcommand); err == nil {
			return runCommand(ctx, fs, cfg, append([]string{subcommand}, remainingArgs...))
		}
		invalidTarget(fs, subcommand)
		return fmt.Errorf("%w: %s is not a command, file, or directory", renamer.ErrInvalidTarget, subcommand)
	}
}

// runCommand renames the candidates in a file or directory target.
func runCommand(ctx context.Context, global *flag.FlagSet, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todo-rename run", flag.ContinueOnError)
	dryRun := fs.Bool("dry-run", cfg.DryRun, "Report renames without performing them")

	positional, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("unexpected arguments: %v", positional[1:])
	}
	target := ""
	if len(positional) == 1 {
		target = positional[0]
	}

	logger := newLogger(cfg, os.Stdout)
	r, err := renamer.New(renamer.Options{
		TitlePattern: cfg.TitlePattern,
		DryRun:       *dryRun,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	summary, err := r.Process(ctx, target)
	if err != nil {
		if errors.Is(err, renamer.ErrInvalidTarget) {
			invalidTarget(global, target)
		}
		return err
	}

	logSummary(logger, summary, *dryRun)
	return summary.Err()
}

// tuiCommand previews the planned renames and applies them on confirmation.
func tuiCommand(ctx context.Context, global *flag.FlagSet, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todo-rename tui", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	target := ""
	if len(remaining) == 1 {
		target = remaining[0]
	}

	// Report a bad target before taking over the terminal.
	if _, _, err := renamer.ResolveTarget(target); err != nil {
		invalidTarget(global, target)
		return err
	}

	// Per-file log lines would corrupt the alternate screen.
	batch := func(dryRun bool) ui.BatchFunc {
		return func(ctx context.Context) (*renamer.Summary, error) {
			r, err := renamer.New(renamer.Options{
				TitlePattern: cfg.TitlePattern,
				DryRun:       dryRun,
				Logger:       logging.Discard(),
			})
			if err != nil {
				return nil, err
			}
			return r.Process(ctx, target)
		}
	}

	display := target
	if display == "" {
		display = cfg.WorkDir
	}
	summary, err := ui.RunPreview(ctx, display, batch(true), batch(false))
	if err != nil {
		return err
	}
	if summary == nil {
		fmt.Println("Cancelled, nothing renamed.")
		return nil
	}

	for _, res := range summary.Results {
		fmt.Println(res.String())
	}
	return summary.Err()
}

// invalidTarget prints the invalid target message and usage to stderr.
func invalidTarget(global *flag.FlagSet, target string) {
	fmt.Fprintf(os.Stderr, "Invalid target: %s\n\n", target)
	printUsage(global, os.Stderr)
}

func versionCommand() error {
	fmt.Printf("todo-rename version %s\n", Version)
	return nil
}

// newLogger builds the progress logger described by cfg.
func newLogger(cfg *config.Config, w io.Writer) *log.Logger {
	return logging.NewFromConfig(w, cfg.LogLevel, cfg.LogFormat, cfg.LogTimestamps, cfg.LogCaller)
}

func logSummary(logger *log.Logger, summary *renamer.Summary, dryRun bool) {
	if summary.Total() == 0 {
		logger.Info("No " + renamer.Suffix + " files found")
		return
	}
	msg := "Done"
	if dryRun {
		msg = "Dry run complete"
	}
	logger.Info(msg, "renamed", summary.Renamed, "skipped", summary.Skipped, "failed", summary.Failed)
}

// parseInterspersed parses fs over args, allowing flags after positional
// arguments, and returns the positional arguments.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return positional, nil
		}
		positional = append(positional, args[0])
		args = args[1:]
	}
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "todo-rename - Rename *.todo.md files after their title line")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  todo-rename [options] [command] [path]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run [path]       Rename candidates in a file or directory (default command)")
	fmt.Fprintln(w, "  tui [path]       Preview planned renames and confirm interactively")
	fmt.Fprintln(w, "  rpc              Serve one looper JSON-RPC request on stdin/stdout")
	fmt.Fprintln(w, "  manifest [dir]   Write looper-plugin.toml (default .looper/plugins/todo-rename)")
	fmt.Fprintln(w, "  config           Show the effective configuration and its sources")
	fmt.Fprintln(w, "  version          Show version information")
	fmt.Fprintln(w, "  help             Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "A path is a single "+renamer.Suffix+" file or a directory whose direct")
	fmt.Fprintln(w, "children are processed. Without a path the working directory is used.")
	fmt.Fprintln(w, "A path spelled like a command (e.g. a directory named \"config\") must")
	fmt.Fprintln(w, "be given after 'run': todo-rename run config")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run Options (use with 'run' command):")
	fmt.Fprintln(w, "  -dry-run")
	fmt.Fprintln(w, "        Report renames without performing them")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Manifest Options (use with 'manifest' command):")
	fmt.Fprintln(w, "  -print")
	fmt.Fprintln(w, "        Print the manifest instead of writing it")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config Options (use with 'config' command):")
	fmt.Fprintln(w, "  -example")
	fmt.Fprintln(w, "        Print an example configuration file")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit status is 0 when every file was renamed or skipped, 1 if any")
	fmt.Fprintln(w, "file failed or the target is invalid, and 130 when interrupted.")
}
