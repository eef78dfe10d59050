package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# todo-rename configuration file
# Values can be overridden by TODO_RENAME_* environment variables or CLI flags

# Pattern for the first line of a .todo.md file.
# The first capture group is the title used for the new file name.
title_pattern = '^# \[.\] (.*)$'

# Report planned renames without touching the filesystem
dry_run = false

# Logging: level is debug, info, warn or error; format is text, json or logfmt
log_level = "info"
log_format = "text"
log_timestamps = false
log_caller = false
`
}
