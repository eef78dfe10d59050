// Package config handles configuration loading and defaults.
//
// Configuration is loaded from multiple sources in priority order:
// 1. Built-in defaults
// 2. User config file (~/.looper/todo-rename.toml or OS-specific config directory)
// 3. Project config file (todo-rename.toml or .todo-rename.toml in the working directory)
// 4. Environment variables (TODO_RENAME_*)
// 5. CLI flags
//
// Each level overrides the previous one, so CLI flags take precedence.
//
// User-level config locations:
// - ~/.looper/todo-rename.toml (preferred, shared with the looper host)
// - Windows: %APPDATA%\looper\todo-rename.toml
// - macOS: ~/Library/Application Support/looper/todo-rename.toml
// - Linux/BSD: $XDG_CONFIG_HOME/looper/todo-rename.toml or ~/.config/looper/todo-rename.toml
//
// Project-level config locations (overrides user config):
// - ./todo-rename.toml (preferred)
// - ./.todo-rename.toml
package config
