// Package renamer renames .todo.md files after the title on their first line.
//
// A candidate file starts with a checkbox heading:
//
//	# [ ] Buy Milk & Eggs!!
//
// The text after the marker is trimmed and reduced to a slug (spaces become
// underscores, anything outside [a-zA-Z0-9_-] is dropped, letters are
// lowercased), and the file is moved to <slug>.todo.md in the same directory.
//
// # Outcomes
//
// Every processed file yields a Result with one of three statuses:
//
//   - StatusSkipped: wrong suffix, no title line, empty slug, or already named.
//   - StatusRenamed: the file was moved (or would be, in dry-run mode).
//   - StatusFailed: missing or non-regular source, unreadable file, or the
//     target name is taken. Existing files are never overwritten.
//
// Skips never affect the exit status; any failure in a batch does.
package renamer
