package renamer

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// Suffix is the literal extension of candidate files.
const Suffix = ".todo.md"

// Options configures a Renamer.
type Options struct {
	// TitlePattern overrides DefaultTitlePattern.
	TitlePattern string
	// DryRun performs every check but never renames.
	DryRun bool
	// Logger receives one progress line per file. Nil discards output.
	Logger *log.Logger
}

// Renamer renames candidate files after their title lines.
type Renamer struct {
	matcher *TitleMatcher
	dryRun  bool
	logger  *log.Logger
}

// New creates a Renamer.
func New(opts Options) (*Renamer, error) {
	matcher, err := NewTitleMatcher(opts.TitlePattern)
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Renamer{
		matcher: matcher,
		dryRun:  opts.DryRun,
		logger:  logger,
	}, nil
}

// HasSuffix reports whether name ends with the candidate suffix.
func HasSuffix(name string) bool {
	return strings.HasSuffix(name, Suffix)
}

// RenameFile processes one path and reports the outcome.
func (r *Renamer) RenameFile(path string) Result {
	res := r.renameFile(path)
	r.report(res)
	return res
}

func (r *Renamer) renameFile(path string) Result {
	res := Result{Path: path}

	if !HasSuffix(filepath.Base(path)) {
		return skip(res, ReasonWrongSuffix)
	}

	info, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fail(res, ReasonNotFound, fmt.Errorf("%w: %s", ErrNotFound, path))
		}
		return fail(res, ReasonReadError, err)
	}
	if !info.Mode().IsRegular() {
		return fail(res, ReasonNotRegular, fmt.Errorf("%w: %s", ErrNotRegular, path))
	}

	line, err := readFirstLine(path)
	if err != nil {
		return fail(res, ReasonReadError, fmt.Errorf("reading %s: %w", path, err))
	}
	r.logger.Debug("Read first line", "path", path, "line", line)

	raw, ok, err := r.matcher.Extract(line)
	if err != nil {
		return fail(res, ReasonReadError, fmt.Errorf("%s: %w", path, err))
	}
	if !ok {
		return skip(res, ReasonNoTitle)
	}

	slug, ok := Sanitize(raw)
	if !ok {
		return skip(res, ReasonEmptySlug)
	}

	source := filepath.Clean(path)
	target := filepath.Join(filepath.Dir(source), slug+Suffix)
	res.Target = target
	if target == source {
		return skip(res, ReasonAlreadyNamed)
	}

	existing, err := os.Lstat(target)
	switch {
	case err == nil:
		// A case-only rename on a case-insensitive filesystem finds the
		// source itself under the new name. A hard link is still a conflict.
		if !isCaseOnlyRename(source, target) || !os.SameFile(info, existing) {
			return fail(res, ReasonConflict, fmt.Errorf("%w: %s", ErrConflict, target))
		}
	case !errors.Is(err, fs.ErrNotExist):
		return fail(res, ReasonReadError, err)
	}

	if r.dryRun {
		res.Status = StatusRenamed
		res.DryRun = true
		return res
	}

	if err := os.Rename(source, target); err != nil {
		return fail(res, ReasonRenameError, err)
	}
	res.Status = StatusRenamed
	return res
}

func isCaseOnlyRename(source, target string) bool {
	from, to := filepath.Base(source), filepath.Base(target)
	return from != to && strings.EqualFold(from, to)
}

// report writes one progress line for res.
func (r *Renamer) report(res Result) {
	switch res.Status {
	case StatusRenamed:
		msg := "Renamed"
		if res.DryRun {
			msg = "Would rename"
		}
		r.logger.Info(msg, "from", res.Path, "to", filepath.Base(res.Target))
	case StatusFailed:
		r.logger.Error("Failed", "path", res.Path, "reason", string(res.Reason), "err", res.Err)
	default:
		r.logger.Info("Skipped", "path", res.Path, "reason", res.Reason.Description())
	}
}

func skip(res Result, reason Reason) Result {
	res.Status = StatusSkipped
	res.Reason = reason
	return res
}

func fail(res Result, reason Reason, err error) Result {
	res.Status = StatusFailed
	res.Reason = reason
	res.Err = err
	return res
}
