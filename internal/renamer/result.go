package renamer

import (
	"fmt"
	"path/filepath"
)

// Status is the outcome of processing one file.
type Status int

const (
	StatusSkipped Status = iota
	StatusRenamed
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSkipped:
		return "skipped"
	case StatusRenamed:
		return "renamed"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Reason explains a skip or failure.
type Reason string

const (
	ReasonNone         Reason = ""
	ReasonWrongSuffix  Reason = "wrong-suffix"
	ReasonNoTitle      Reason = "no-title"
	ReasonEmptySlug    Reason = "empty-slug"
	ReasonAlreadyNamed Reason = "already-named"
	ReasonNotFound     Reason = "not-found"
	ReasonNotRegular   Reason = "not-regular"
	ReasonConflict     Reason = "conflict"
	ReasonReadError    Reason = "read-error"
	ReasonRenameError  Reason = "rename-error"
)

// Description returns a human-readable explanation of the reason.
func (r Reason) Description() string {
	switch r {
	case ReasonWrongSuffix:
		return "not a " + Suffix + " file"
	case ReasonNoTitle:
		return "first line has no title"
	case ReasonEmptySlug:
		return "title is empty after sanitizing"
	case ReasonAlreadyNamed:
		return "already correctly named"
	case ReasonNotFound:
		return "file not found"
	case ReasonNotRegular:
		return "not a regular file"
	case ReasonConflict:
		return "target already exists"
	case ReasonReadError:
		return "could not read file"
	case ReasonRenameError:
		return "rename failed"
	default:
		return string(r)
	}
}

// Result is the outcome of processing a single path.
type Result struct {
	// Path is the source path as given.
	Path string
	// Target is the derived path, empty when processing stopped before a
	// slug was computed.
	Target string
	Status Status
	Reason Reason
	// Err is set for failures.
	Err error
	// DryRun marks a rename that was planned but not performed.
	DryRun bool
}

func (r Result) String() string {
	switch r.Status {
	case StatusRenamed:
		verb := "renamed"
		if r.DryRun {
			verb = "would rename"
		}
		return fmt.Sprintf("%s: %s -> %s", verb, r.Path, filepath.Base(r.Target))
	case StatusFailed:
		if r.Err != nil {
			return fmt.Sprintf("failed: %s: %v", r.Path, r.Err)
		}
		return fmt.Sprintf("failed: %s: %s", r.Path, r.Reason.Description())
	default:
		return fmt.Sprintf("skipped: %s: %s", r.Path, r.Reason.Description())
	}
}

// Summary accumulates results across a batch.
type Summary struct {
	Results []Result
	Renamed int
	Skipped int
	Failed  int
}

// Add records a result.
func (s *Summary) Add(r Result) {
	s.Results = append(s.Results, r)
	switch r.Status {
	case StatusRenamed:
		s.Renamed++
	case StatusFailed:
		s.Failed++
	default:
		s.Skipped++
	}
}

// Total returns the number of processed files.
func (s *Summary) Total() int {
	return len(s.Results)
}

// Planned returns the results that were (or would be) renamed.
func (s *Summary) Planned() []Result {
	var out []Result
	for _, r := range s.Results {
		if r.Status == StatusRenamed {
			out = append(out, r)
		}
	}
	return out
}

// Err returns a non-nil error iff at least one file failed.
func (s *Summary) Err() error {
	if s == nil || s.Failed == 0 {
		return nil
	}
	return fmt.Errorf("%w: %d of %d file(s) failed", ErrFailures, s.Failed, s.Total())
}
