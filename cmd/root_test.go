// Package cmd provides tests for CLI command handlers.
package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nibzard/todo-rename/internal/config"
	"github.com/nibzard/todo-rename/internal/plugin"
	"github.com/nibzard/todo-rename/internal/renamer"
	"github.com/nibzard/todo-rename/internal/ui"
)

func captureStdout(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	return capture(t, &os.Stdout, fn)
}

func captureStderr(t *testing.T, fn func() error) (string, error) {
	t.Helper()
	return capture(t, &os.Stderr, fn)
}

// capture swaps *stream for a pipe while fn runs and returns what it wrote.
func capture(t *testing.T, stream **os.File, fn func() error) (string, error) {
	t.Helper()

	old := *stream
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe() error = %v", err)
	}
	*stream = w
	defer func() {
		*stream = old
	}()

	runErr := fn()
	_ = w.Close()

	output, readErr := io.ReadAll(r)
	_ = r.Close()
	if readErr != nil {
		t.Fatalf("ReadAll() error = %v", readErr)
	}

	return string(output), runErr
}

func withStdin(t *testing.T, input string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stdin")
	if err := os.WriteFile(path, []byte(input), 0644); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	oldStdin := os.Stdin
	os.Stdin = f
	t.Cleanup(func() {
		os.Stdin = oldStdin
		_ = f.Close()
	})
}

// isolate points config lookup at empty directories and moves into a fresh
// working directory, which it returns.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("APPDATA", filepath.Join(home, "AppData"))
	for _, name := range []string{
		config.EnvTitlePattern, config.EnvDryRun, config.EnvLogLevel,
		config.EnvLogFormat, config.EnvLogTimestamps, config.EnvLogCaller,
	} {
		t.Setenv(name, "")
	}
	wd := t.TempDir()
	chdir(t, wd)
	return wd
}

func writeTodo(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// TestRun tests the main Run function.
func TestRun(t *testing.T) {
	isolate(t)
	ctx := context.Background()

	for _, args := range [][]string{{"--help"}, {"-h"}, {"help"}} {
		t.Run("help "+args[0], func(t *testing.T) {
			out, err := captureStdout(t, func() error { return Run(ctx, args) })
			if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
			if !strings.Contains(out, "Usage:") {
				t.Errorf("expected usage output, got %q", out)
			}
		})
	}

	for _, args := range [][]string{{"--version"}, {"-v"}, {"version"}} {
		t.Run("version "+args[0], func(t *testing.T) {
			out, err := captureStdout(t, func() error { return Run(ctx, args) })
			if err != nil {
				t.Errorf("expected no error, got %v", err)
			}
			if !strings.Contains(out, "todo-rename version "+Version) {
				t.Errorf("unexpected version output %q", out)
			}
		})
	}

	t.Run("unknown flag returns error", func(t *testing.T) {
		if err := Run(ctx, []string{"--no-such-flag"}); err == nil {
			t.Error("expected error for unknown flag")
		}
	})
}

func TestRunCommandRenamesDirectory(t *testing.T) {
	wd := isolate(t)
	writeTodo(t, wd, "plan.todo.md", "# [ ] Buy Milk & Eggs!!\n")
	writeTodo(t, wd, "x.todo.md", "# [x] Done\n")
	writeTodo(t, wd, "note.md", "# [ ] Note\n")
	writeTodo(t, wd, "weird.todo.md", "# [ ] !!!###\n")

	out, err := captureStdout(t, func() error { return Run(context.Background(), nil) })
	if err != nil {
		t.Fatalf("Run failed: %v\n%s", err, out)
	}

	for _, name := range []string{"buy_milk_eggs.todo.md", "done.todo.md", "note.md", "weird.todo.md"} {
		if !exists(filepath.Join(wd, name)) {
			t.Errorf("expected %s to exist", name)
		}
	}
	for _, want := range []string{"Renamed", "Skipped", "Done", "renamed=2"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestRunCommandTargets(t *testing.T) {
	tests := []struct {
		name    string
		args    func(dir string) []string
		renamed bool
	}{
		{name: "explicit run with dir", args: func(dir string) []string { return []string{"run", dir} }, renamed: true},
		{name: "bare directory path", args: func(dir string) []string { return []string{dir} }, renamed: true},
		{name: "bare file path", args: func(dir string) []string { return []string{filepath.Join(dir, "x.todo.md")} }, renamed: true},
		{name: "dry run flag after path", args: func(dir string) []string { return []string{"run", dir, "--dry-run"} }},
		{name: "global dry run flag", args: func(dir string) []string { return []string{"--dry-run", dir} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			dir := t.TempDir()
			writeTodo(t, dir, "x.todo.md", "# [x] Done\n")

			out, err := captureStdout(t, func() error { return Run(context.Background(), tt.args(dir)) })
			if err != nil {
				t.Fatalf("Run failed: %v\n%s", err, out)
			}
			if got := exists(filepath.Join(dir, "done.todo.md")); got != tt.renamed {
				t.Errorf("done.todo.md exists = %v, want %v", got, tt.renamed)
			}
			if got := exists(filepath.Join(dir, "x.todo.md")); got == tt.renamed {
				t.Errorf("x.todo.md exists = %v, want %v", got, !tt.renamed)
			}
			if !tt.renamed && !strings.Contains(out, "Would rename") {
				t.Errorf("dry run should report planned renames:\n%s", out)
			}
		})
	}
}

func TestRunCommandFailuresReturnError(t *testing.T) {
	wd := isolate(t)
	writeTodo(t, wd, "a.todo.md", "# [ ] Done\n")
	writeTodo(t, wd, "done.todo.md", "# [x] Something else\n")

	out, err := captureStdout(t, func() error { return Run(context.Background(), []string{"run"}) })
	if !errors.Is(err, renamer.ErrFailures) {
		t.Fatalf("expected ErrFailures, got %v", err)
	}
	if !exists(filepath.Join(wd, "a.todo.md")) {
		t.Error("conflicting source must be left in place")
	}
	if !strings.Contains(out, "failed=1") {
		t.Errorf("expected failure count in output:\n%s", out)
	}
}

func TestRunCommandEmptyDirectory(t *testing.T) {
	isolate(t)
	out, err := captureStdout(t, func() error { return Run(context.Background(), nil) })
	if err != nil {
		t.Fatalf("empty directory should succeed, got %v", err)
	}
	if !strings.Contains(out, "No .todo.md files found") {
		t.Errorf("unexpected output %q", out)
	}
}

func TestRunCommandInvalidTarget(t *testing.T) {
	isolate(t)
	tests := [][]string{
		{"does-not-exist"},
		{"run", "does-not-exist"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			_, err := captureStdout(t, func() error { return Run(context.Background(), args) })
			if !errors.Is(err, renamer.ErrInvalidTarget) {
				t.Fatalf("expected ErrInvalidTarget, got %v", err)
			}
		})
	}
}

func TestRunCommandUnexpectedArgs(t *testing.T) {
	isolate(t)
	a, b := t.TempDir(), t.TempDir()
	_, err := captureStdout(t, func() error { return Run(context.Background(), []string{"run", a, b}) })
	if err == nil || !strings.Contains(err.Error(), "unexpected arguments") {
		t.Fatalf("expected unexpected arguments error, got %v", err)
	}
}

func TestRunCommandCustomPattern(t *testing.T) {
	wd := isolate(t)
	writeTodo(t, wd, "a.todo.md", "TODO: Call Bob\n")
	t.Setenv(config.EnvTitlePattern, `^TODO: (.*)$`)

	if _, err := captureStdout(t, func() error { return Run(context.Background(), nil) }); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !exists(filepath.Join(wd, "call_bob.todo.md")) {
		t.Error("expected rename using the configured pattern")
	}
}

func TestRunCommandInvalidPattern(t *testing.T) {
	isolate(t)
	err := Run(context.Background(), []string{"--title-pattern", "no group"})
	if !errors.Is(err, renamer.ErrInvalidPattern) {
		t.Fatalf("expected ErrInvalidPattern, got %v", err)
	}
}

func TestRunCommandCancelled(t *testing.T) {
	wd := isolate(t)
	writeTodo(t, wd, "x.todo.md", "# [x] Done\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := captureStdout(t, func() error { return Run(ctx, nil) })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if !exists(filepath.Join(wd, "x.todo.md")) {
		t.Error("nothing should be renamed after cancellation")
	}
}

func TestTuiCommandRequiresTTY(t *testing.T) {
	isolate(t)
	_, err := captureStdout(t, func() error { return Run(context.Background(), []string{"tui"}) })
	if !errors.Is(err, ui.ErrNotTTY) {
		t.Fatalf("expected ErrNotTTY, got %v", err)
	}
}

func TestTuiCommandInvalidTarget(t *testing.T) {
	isolate(t)
	var err error
	stderr, _ := captureStderr(t, func() error {
		_, err = captureStdout(t, func() error {
			return Run(context.Background(), []string{"tui", "does-not-exist"})
		})
		return nil
	})
	if !errors.Is(err, renamer.ErrInvalidTarget) {
		t.Fatalf("expected ErrInvalidTarget, got %v", err)
	}
	if !strings.Contains(stderr, "Invalid target: does-not-exist") || !strings.Contains(stderr, "Usage:") {
		t.Errorf("expected invalid target message and usage on stderr, got %q", stderr)
	}
}

func TestPathNamedLikeCommand(t *testing.T) {
	wd := isolate(t)
	dir := filepath.Join(wd, "config")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatal(err)
	}
	writeTodo(t, dir, "x.todo.md", "# [x] Done\n")

	out, err := captureStdout(t, func() error { return Run(context.Background(), []string{"config"}) })
	if err != nil {
		t.Fatalf("config failed: %v", err)
	}
	if !strings.Contains(out, "title_pattern = ") {
		t.Errorf("bare command name should run the command, got %q", out)
	}
	if !exists(filepath.Join(dir, "x.todo.md")) {
		t.Fatal("config command must not rename")
	}

	if _, err := captureStdout(t, func() error { return Run(context.Background(), []string{"run", "config"}) }); err != nil {
		t.Fatalf("run config failed: %v", err)
	}
	if !exists(filepath.Join(dir, "done.todo.md")) {
		t.Error("run <path> should rename inside a directory named like a command")
	}
}

func TestRPCCommand(t *testing.T) {
	wd := isolate(t)
	writeTodo(t, wd, "x.todo.md", "# [x] Done\n")
	withStdin(t, `{"jsonrpc":"2.0","id":1,"method":"run","params":{"dry_run":true}}`)

	out, err := captureStdout(t, func() error { return Run(context.Background(), []string{"rpc"}) })
	if err != nil {
		t.Fatalf("rpc failed: %v", err)
	}

	var resp struct {
		ID     int              `json:"id"`
		Result plugin.RunResult `json:"result"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("stdout must hold only the JSON response: %v\n%s", err, out)
	}
	if resp.ID != 1 || !resp.Result.Success || resp.Result.Renamed != 1 || !resp.Result.DryRun {
		t.Errorf("unexpected response %+v", resp)
	}
	if !exists(filepath.Join(wd, "x.todo.md")) {
		t.Error("dry run must not rename")
	}
}

func TestRPCCommandConfiguredDryRun(t *testing.T) {
	wd := isolate(t)
	writeTodo(t, wd, "x.todo.md", "# [x] Done\n")
	t.Setenv(config.EnvDryRun, "1")
	withStdin(t, `{"jsonrpc":"2.0","id":1,"method":"run","params":{}}`)

	out, err := captureStdout(t, func() error { return Run(context.Background(), []string{"rpc"}) })
	if err != nil {
		t.Fatalf("rpc failed: %v", err)
	}

	var resp struct {
		Result plugin.RunResult `json:"result"`
	}
	if err := json.Unmarshal([]byte(out), &resp); err != nil {
		t.Fatalf("stdout must hold only the JSON response: %v\n%s", err, out)
	}
	if !resp.Result.DryRun || resp.Result.Renamed != 1 {
		t.Errorf("unexpected result %+v", resp.Result)
	}
	if !exists(filepath.Join(wd, "x.todo.md")) {
		t.Error("configured dry run must not rename")
	}
}

func TestRPCCommandErrorResponse(t *testing.T) {
	isolate(t)
	withStdin(t, `{"jsonrpc":"2.0","id":2,"method":"explode"}`)

	out, err := captureStdout(t, func() error { return Run(context.Background(), []string{"rpc"}) })
	var rerr *plugin.ResponseError
	if !errors.As(err, &rerr) || rerr.Code != plugin.CodeMethodNotFound {
		t.Fatalf("expected method-not-found error, got %v", err)
	}
	if !strings.Contains(out, `"code":-32601`) {
		t.Errorf("expected error response on stdout, got %q", out)
	}
}

func TestManifestCommand(t *testing.T) {
	isolate(t)
	dir := filepath.Join(t.TempDir(), "plugin")

	out, err := captureStdout(t, func() error { return Run(context.Background(), []string{"manifest", dir}) })
	if err != nil {
		t.Fatalf("manifest failed: %v", err)
	}
	if !strings.Contains(out, plugin.ManifestFilename) {
		t.Errorf("expected written path in output, got %q", out)
	}

	m, err := plugin.ParseManifest(dir)
	if err != nil {
		t.Fatalf("written manifest does not parse: %v", err)
	}
	if m.Name != plugin.PluginName || m.Version != Version {
		t.Errorf("unexpected manifest %s@%s", m.Name, m.Version)
	}
}

func TestManifestCommandPrint(t *testing.T) {
	wd := isolate(t)
	out, err := captureStdout(t, func() error { return Run(context.Background(), []string{"manifest", "-print"}) })
	if err != nil {
		t.Fatalf("manifest -print failed: %v", err)
	}
	for _, want := range []string{`name = "todo-rename"`, `category = "command"`, "[command]"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
	if exists(filepath.Join(wd, ".looper")) {
		t.Error("-print must not write a file")
	}
}

func TestManifestCommandDefaultDir(t *testing.T) {
	wd := isolate(t)
	if _, err := captureStdout(t, func() error { return Run(context.Background(), []string{"manifest"}) }); err != nil {
		t.Fatalf("manifest failed: %v", err)
	}
	if _, err := plugin.ParseManifest(filepath.Join(wd, ".looper", "plugins", plugin.PluginName)); err != nil {
		t.Fatalf("expected manifest in the project plugin dir: %v", err)
	}
}

func TestConfigCommand(t *testing.T) {
	wd := isolate(t)
	writeTodo(t, wd, config.ProjectConfigName, "log_format = \"logfmt\"\n")
	t.Setenv(config.EnvLogLevel, "debug")

	out, err := captureStdout(t, func() error {
		return Run(context.Background(), []string{"--log-caller", "config"})
	})
	if err != nil {
		t.Fatalf("config failed: %v", err)
	}

	for _, want := range []string{
		"# loaded " + filepath.Join(wd, config.ProjectConfigName),
		`log_format = "logfmt"  # project file`,
		`log_level = "debug"  # environment`,
		"log_caller = true  # flag",
		"dry_run = false  # default",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestConfigCommandExample(t *testing.T) {
	isolate(t)
	out, err := captureStdout(t, func() error { return Run(context.Background(), []string{"config", "-example"}) })
	if err != nil {
		t.Fatalf("config -example failed: %v", err)
	}
	if out != config.ExampleConfig() {
		t.Errorf("unexpected example output:\n%s", out)
	}
}

func TestParseInterspersed(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	dry := fs.Bool("dry-run", false, "")

	positional, err := parseInterspersed(fs, []string{"a", "--dry-run", "b"})
	if err != nil {
		t.Fatal(err)
	}
	if !*dry {
		t.Error("expected flag after positional to be parsed")
	}
	if strings.Join(positional, ",") != "a,b" {
		t.Errorf("positional = %v", positional)
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
