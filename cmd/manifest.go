package cmd

import (
	"flag"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/nibzard/todo-rename/internal/looperdir"
	"github.com/nibzard/todo-rename/internal/plugin"
)

// manifestCommand writes (or prints) the looper plugin manifest.
func manifestCommand(args []string) error {
	fs := flag.NewFlagSet("todo-rename manifest", flag.ContinueOnError)
	printOnly := fs.Bool("print", false, "Print the manifest instead of writing it")
	if err := fs.Parse(args); err != nil {
		return err
	}

	remaining := fs.Args()
	if len(remaining) > 1 {
		return fmt.Errorf("unexpected arguments: %v", remaining[1:])
	}
	dir := looperdir.PluginPath(".", plugin.PluginName)
	if len(remaining) == 1 {
		dir = remaining[0]
	}

	manifest := plugin.DefaultManifest(Version)
	if *printOnly {
		if err := plugin.ValidateManifest(manifest); err != nil {
			return err
		}
		return toml.NewEncoder(os.Stdout).Encode(manifest)
	}

	path, err := plugin.WriteManifest(dir, manifest)
	if err != nil {
		return err
	}
	// Read it back the way looper will load it.
	if _, err := plugin.ParseManifest(dir); err != nil {
		return fmt.Errorf("verifying %s: %w", path, err)
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}
