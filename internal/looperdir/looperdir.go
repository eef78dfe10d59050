// Package looperdir provides constants and utilities for the .looper
// directory structure that the looper host scans for plugins and config.
package looperdir

import (
	"os"
	"path/filepath"
)

const (
	// Dir is the name of the looper state directory.
	Dir = ".looper"

	// PluginsDir is the plugin directory name inside Dir.
	PluginsDir = "plugins"
)

// DirPath returns the full path to the .looper directory within a work directory.
func DirPath(workDir string) string {
	if workDir == "." || workDir == "" {
		return Dir
	}
	return filepath.Join(workDir, Dir)
}

// PluginPath returns the directory looper loads the named project plugin from.
func PluginPath(workDir, name string) string {
	return filepath.Join(DirPath(workDir), PluginsDir, name)
}

// UserDir returns ~/.looper.
func UserDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, Dir), nil
}
