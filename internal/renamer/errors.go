package renamer

import "errors"

var (
	// ErrNotFound is returned when a source file does not exist at processing time.
	ErrNotFound = errors.New("file not found")

	// ErrNotRegular is returned when a source path is a directory, symlink, or device.
	ErrNotRegular = errors.New("not a regular file")

	// ErrConflict is returned when the target file name is already taken.
	ErrConflict = errors.New("target already exists")

	// ErrInvalidTarget is returned when the top-level target is neither a file nor a directory.
	ErrInvalidTarget = errors.New("invalid target")

	// ErrFailures is returned by Summary.Err when at least one file failed.
	ErrFailures = errors.New("rename failures")

	// ErrInvalidPattern is returned when a title pattern cannot be used.
	ErrInvalidPattern = errors.New("invalid title pattern")
)
