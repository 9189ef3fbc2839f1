package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/datemark/datemark/internal/model"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".datemark"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// DirConfig holds watermark settings for a single photo directory.
// This allows customizing the stamp per directory, e.g. a larger font for
// a directory of high-resolution scans. Zero values mean "not set" and
// fall through to the next layer of defaults.
type DirConfig struct {
	// FontSize overrides the watermark text size in points.
	FontSize int `yaml:"fontSize,omitempty"`

	// Color overrides the watermark color. Accepts "#RRGGBB", "#RRGGBBAA",
	// or comma-separated "R,G,B[,A]" components.
	Color string `yaml:"color,omitempty"`

	// Position overrides the anchor, e.g. "bottom-right" or "center".
	Position string `yaml:"position,omitempty"`

	// Margin overrides the pixel distance from the anchored edge(s).
	// A pointer distinguishes an explicit 0 from "not set".
	Margin *int `yaml:"margin,omitempty"`

	// Font overrides the font file used for rendering.
	Font string `yaml:"font,omitempty"`
}

// File represents the structure of the .datemark configuration file.
type File struct {
	// Directories maps directory base names to their specific settings.
	// Keys are base names, not full paths, so the same file works when a
	// photo collection moves between machines.
	Directories map[string]DirConfig `yaml:"directories,omitempty"`

	// Defaults contains settings applied to every directory unless
	// overridden in the directory-specific configuration.
	Defaults DirConfig `yaml:"defaults,omitempty"`
}

// GetDirConfig returns the configuration for a directory base name.
// It merges the directory-specific configuration over the file defaults.
func (cf *File) GetDirConfig(baseName string) DirConfig {
	// Start with defaults
	result := cf.Defaults

	// Override with directory-specific configuration if present
	if dc, ok := cf.Directories[baseName]; ok {
		if dc.FontSize != 0 {
			result.FontSize = dc.FontSize
		}
		if dc.Color != "" {
			result.Color = dc.Color
		}
		if dc.Position != "" {
			result.Position = dc.Position
		}
		if dc.Margin != nil {
			result.Margin = dc.Margin
		}
		if dc.Font != "" {
			result.Font = dc.Font
		}
	}

	return result
}

// LoadConfigFile loads directory configurations from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error appropriately based on whether
// the config file path was explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	// Initialize Directories map if nil
	if cf.Directories == nil {
		cf.Directories = make(map[string]DirConfig)
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .datemark in the current directory
// 3. Look for .datemark in the XDG config directory
// 4. Look for .datemark in the user's home directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	// If explicit path is provided, use it
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	// Check current directory
	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	// Check XDG config directory
	xdgConfig := filepath.Join(XDGConfigDir(), DefaultConfigFile)
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig
	}

	// Check home directory
	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}

// ApplyDirConfig copies the set fields of dc into the Config.
// Fields dc leaves at their zero value keep their current Config value, so
// calling this after NewConfig() layers the file over the built-in defaults.
// CLI flags the user changed are applied by the caller afterwards and win.
func (c *Config) ApplyDirConfig(dc DirConfig) error {
	if dc.FontSize != 0 {
		c.FontSize = dc.FontSize
	}
	if dc.Color != "" {
		parsed, err := model.ParseColor(dc.Color)
		if err != nil {
			return fmt.Errorf("config file color: %w", err)
		}
		c.Color = parsed
	}
	if dc.Position != "" {
		anchor := model.Anchor(dc.Position)
		if !anchor.Valid() {
			return fmt.Errorf("%w: %q", ErrInvalidPosition, dc.Position)
		}
		c.Anchor = anchor
	}
	if dc.Margin != nil {
		c.Margin = *dc.Margin
	}
	if dc.Font != "" {
		c.FontPath = dc.Font
	}
	return nil
}
