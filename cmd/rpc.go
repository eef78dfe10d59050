package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/nibzard/todo-rename/internal/config"
	"github.com/nibzard/todo-rename/internal/plugin"
	"github.com/nibzard/todo-rename/internal/renamer"
)

// rpcCommand answers one looper JSON-RPC request. Stdout carries the
// response, so all logging goes to stderr.
func rpcCommand(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("todo-rename rpc", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	logger := newLogger(cfg, os.Stderr)
	server := &plugin.Server{
		Version: Version,
		Logger:  logger,
		DryRun:  cfg.DryRun,
		Run: func(ctx context.Context, params plugin.RunParams) (*renamer.Summary, error) {
			r, err := renamer.New(renamer.Options{
				TitlePattern: cfg.TitlePattern,
				DryRun:       params.DryRun,
				Logger:       logger,
			})
			if err != nil {
				return nil, err
			}
			return r.Process(ctx, params.Path)
		},
	}

	return server.Serve(ctx, os.Stdin, os.Stdout)
}
