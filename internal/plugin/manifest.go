package plugin

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestFilename is the name of the plugin manifest file.
const ManifestFilename = "looper-plugin.toml"

// PluginName is the name this binary registers under.
const PluginName = "todo-rename"

var (
	// ErrManifestNotFound is returned when the manifest file cannot be found.
	ErrManifestNotFound = errors.New("manifest file not found")

	// ErrInvalidManifest is returned when the manifest is invalid.
	ErrInvalidManifest = errors.New("invalid manifest")

	// ErrInvalidCategory is returned when the plugin category is not recognized.
	ErrInvalidCategory = errors.New("invalid plugin category")

	// ErrMissingName is returned when the manifest is missing a name.
	ErrMissingName = errors.New("missing plugin name")

	// ErrMissingVersion is returned when the manifest is missing a version.
	ErrMissingVersion = errors.New("missing plugin version")

	// ErrMissingBinary is returned when the manifest is missing a binary path.
	ErrMissingBinary = errors.New("missing plugin binary path")
)

// Methods served over JSON-RPC.
var Methods = []string{MethodRun, MethodInfo}

// DefaultManifest describes this binary as a looper command plugin.
func DefaultManifest(version string) *Manifest {
	if version == "" {
		version = "dev"
	}
	return &Manifest{
		Name:        PluginName,
		Version:     version,
		Category:    string(PluginCategoryCommand),
		Description: "Rename *.todo.md files after their title line",
		Plugin: PluginMetadata{
			Binary:           "./bin/" + PluginName,
			License:          "MIT",
			MinLooperVersion: "0.1.0",
		},
		Command: &CommandConfig{
			Type:           PluginName,
			Methods:        append([]string(nil), Methods...),
			SupportsDryRun: true,
		},
		Capabilities: &Capabilities{
			CanModifyFiles: true,
			CanAccessEnv:   true,
		},
	}
}

// ParseManifest reads and parses a plugin manifest from the given directory.
func ParseManifest(pluginDir string) (*Manifest, error) {
	manifestPath := filepath.Join(pluginDir, ManifestFilename)

	data, err := os.ReadFile(manifestPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrManifestNotFound, manifestPath)
		}
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var manifest Manifest
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("%w: parsing TOML: %s", ErrInvalidManifest, err)
	}

	if err := ValidateManifest(&manifest); err != nil {
		return nil, err
	}

	return &manifest, nil
}

// ValidateManifest validates a plugin manifest.
func ValidateManifest(m *Manifest) error {
	if m.Name == "" {
		return fmt.Errorf("%w: name", ErrMissingName)
	}
	if m.Version == "" {
		return fmt.Errorf("%w: version", ErrMissingVersion)
	}
	if m.Category == "" {
		return fmt.Errorf("%w: category", ErrInvalidManifest)
	}

	switch PluginCategory(m.Category) {
	case PluginCategoryCommand:
	default:
		return fmt.Errorf("%w: %s", ErrInvalidCategory, m.Category)
	}

	if m.Plugin.Binary == "" {
		return fmt.Errorf("%w: plugin.binary", ErrMissingBinary)
	}

	if m.Command == nil {
		return fmt.Errorf("%w: command configuration required for command plugins", ErrInvalidManifest)
	}
	if m.Command.Type == "" {
		return fmt.Errorf("%w: command.type is required", ErrInvalidManifest)
	}
	for _, method := range m.Command.Methods {
		if method == "" {
			return fmt.Errorf("%w: command.methods contains an empty name", ErrInvalidManifest)
		}
	}

	return validatePluginName(m.Name)
}

// validatePluginName checks that a plugin name is lowercase-friendly
// alphanumeric with hyphens or underscores.
func validatePluginName(name string) error {
	for _, r := range name {
		if !isAlphaNumHyphenUnderscore(r) {
			return fmt.Errorf("%w: invalid plugin name %q (use alphanumeric, hyphens, underscores)", ErrInvalidManifest, name)
		}
	}
	if name[0] == '-' || name[0] == '_' {
		return fmt.Errorf("%w: plugin name cannot start with hyphen or underscore", ErrInvalidManifest)
	}
	return nil
}

func isAlphaNumHyphenUnderscore(r rune) bool {
	return (r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') ||
		r == '-' || r == '_'
}

// WriteManifest writes a plugin manifest to the given directory and
// returns the path written.
func WriteManifest(pluginDir string, manifest *Manifest) (string, error) {
	if err := ValidateManifest(manifest); err != nil {
		return "", err
	}

	if err := os.MkdirAll(pluginDir, 0755); err != nil {
		return "", fmt.Errorf("creating plugin directory: %w", err)
	}

	data, err := toml.Marshal(manifest)
	if err != nil {
		return "", fmt.Errorf("marshaling manifest: %w", err)
	}

	manifestPath := filepath.Join(pluginDir, ManifestFilename)
	if err := os.WriteFile(manifestPath, data, 0644); err != nil {
		return "", fmt.Errorf("writing manifest: %w", err)
	}

	return manifestPath, nil
}
