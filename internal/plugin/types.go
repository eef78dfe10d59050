// Package plugin exposes todo-rename to the looper task runner: a
// looper-plugin.toml manifest describing the binary and a JSON-RPC 2.0
// handler speaking looper's one-request-per-process stdin/stdout protocol.
package plugin

import (
	"encoding/json"
	"fmt"
)

// PluginCategory represents the type/category of a plugin.
type PluginCategory string

const (
	// PluginCategoryCommand is a plugin that performs a single command
	// against the working tree when looper invokes it.
	PluginCategoryCommand PluginCategory = "command"
)

// Manifest represents the parsed looper-plugin.toml file.
type Manifest struct {
	Name        string `toml:"name"`
	Version     string `toml:"version"`
	Category    string `toml:"category"`
	Description string `toml:"description,omitempty"`

	Plugin PluginMetadata `toml:"plugin"`

	Command      *CommandConfig `toml:"command,omitempty"`
	Capabilities *Capabilities  `toml:"capabilities,omitempty"`
}

// PluginMetadata holds general plugin information.
type PluginMetadata struct {
	Binary           string `toml:"binary"`             // Relative path to binary
	Author           string `toml:"author"`             // Plugin author
	Homepage         string `toml:"homepage"`           // URL to homepage
	License          string `toml:"license"`            // License name
	MinLooperVersion string `toml:"min_looper_version"` // Minimum looper version required
}

// CommandConfig holds command-specific manifest configuration.
type CommandConfig struct {
	Type           string   `toml:"type"`             // Registered command type
	Methods        []string `toml:"methods"`          // JSON-RPC methods served
	SupportsDryRun bool     `toml:"supports_dry_run"` // Whether "run" accepts dry_run
}

// Capabilities describes what operations the plugin can perform.
type Capabilities struct {
	CanModifyFiles     bool `toml:"can_modify_files"`
	CanExecuteCommands bool `toml:"can_execute_commands"`
	CanAccessNetwork   bool `toml:"can_access_network"`
	CanAccessEnv       bool `toml:"can_access_env"`
}

// JSON-RPC 2.0 error codes.
const (
	CodeParseError     = -32700
	CodeInvalidRequest = -32600
	CodeMethodNotFound = -32601
	CodeInvalidParams  = -32602
	CodeInternalError  = -32603
)

// Request represents a JSON-RPC request from the host.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response represents a JSON-RPC response to the host.
type Response struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Result  any             `json:"result,omitempty"`
	Error   *ResponseError  `json:"error,omitempty"`
}

// ResponseError represents a JSON-RPC error.
type ResponseError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

func (e *ResponseError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// RunParams are parameters for the "run" method.
type RunParams struct {
	Path   string `json:"path,omitempty"`
	DryRun bool   `json:"dry_run,omitempty"`
}

// FileResult describes the outcome for one file in a RunResult.
type FileResult struct {
	Path   string `json:"path"`
	Target string `json:"target,omitempty"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
	Error  string `json:"error,omitempty"`
}

// RunResult is the result of the "run" method.
type RunResult struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	DryRun  bool         `json:"dry_run,omitempty"`
	Renamed int          `json:"renamed"`
	Skipped int          `json:"skipped"`
	Failed  int          `json:"failed"`
	Files   []FileResult `json:"files"`
}

// Info is the result of the "info" method.
type Info struct {
	Name     string          `json:"name"`
	Version  string          `json:"version"`
	Methods  []string        `json:"methods"`
	Features map[string]bool `json:"features"`
}
