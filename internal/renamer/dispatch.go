package renamer

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Process renames target if it is a file, or every candidate directly inside
// it if it is a directory. An empty target means the current directory.
//
// Individual failures are recorded in the Summary and never stop the batch;
// the returned error is reserved for an invalid target or cancellation.
// Callers use Summary.Err for the batch status.
func (r *Renamer) Process(ctx context.Context, target string) (*Summary, error) {
	target, info, err := ResolveTarget(target)
	if err != nil {
		return nil, err
	}

	summary := &Summary{}
	if !info.IsDir() {
		summary.Add(r.RenameFile(target))
		return summary, nil
	}

	paths, err := Candidates(target)
	if err != nil {
		return nil, err
	}
	r.logger.Debug("Scanning directory", "dir", target, "candidates", len(paths))
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		summary.Add(r.RenameFile(path))
	}
	return summary, nil
}

// ResolveTarget stats target, following symlinks, and returns it with "."
// standing in for an empty target. Anything other than a directory or a
// regular file is ErrInvalidTarget.
func ResolveTarget(target string) (string, fs.FileInfo, error) {
	if target == "" {
		target = "."
	}
	info, err := os.Stat(target)
	if err != nil {
		return target, nil, fmt.Errorf("%w: %s: %v", ErrInvalidTarget, target, err)
	}
	if !info.IsDir() && !info.Mode().IsRegular() {
		return target, nil, fmt.Errorf("%w: %s is neither a file nor a directory", ErrInvalidTarget, target)
	}
	return target, info, nil
}

// Candidates lists the regular *.todo.md files directly inside dir, sorted
// by name. Hidden files, symlinks and subdirectories are ignored.
func Candidates(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") || !HasSuffix(name) {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}
	return paths, nil
}
