package cmd

import (
	"flag"
	"fmt"

	"github.com/nibzard/todo-rename/internal/config"
)

// configCommand prints the effective configuration with the source of
// each value.
func configCommand(cws *config.ConfigWithSources, args []string) error {
	fs := flag.NewFlagSet("todo-rename config", flag.ContinueOnError)
	example := fs.Bool("example", false, "Print an example configuration file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if *example {
		fmt.Print(config.ExampleConfig())
		return nil
	}

	if len(cws.Files) == 0 {
		fmt.Println("# no config files found")
	}
	for _, path := range cws.Files {
		fmt.Printf("# loaded %s\n", path)
	}
	for _, field := range config.Fields() {
		fmt.Printf("%s = %s  # %s\n", field, formatValue(cws.Config.Value(field)), cws.Sources[field])
	}
	return nil
}

func formatValue(v any) string {
	switch v := v.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}
