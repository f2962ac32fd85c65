// Package config loads and validates the inkwell configuration file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// AppName names the config, state and log directories.
const AppName = "inkwell"

// ErrNoConfigDir is returned when no config directory can be resolved.
var ErrNoConfigDir = errors.New("config: no config directory available")

// Theme modes.
const (
	ThemeLight  = "light"
	ThemeDark   = "dark"
	ThemeSystem = "system"
)

// UserConfig is the on-disk configuration.
type UserConfig struct {
	Appearance  AppearanceConfig  `toml:"appearance"`
	Timing      Timing            `toml:"timing"`
	Keybindings KeybindingsConfig `toml:"keybindings"`
	Export      ExportConfig      `toml:"export"`
	SSH         SSHConfig         `toml:"ssh"`
}

// AppearanceConfig controls the look of the editor.
type AppearanceConfig struct {
	Theme       string  `toml:"theme" comment:"light, dark or system"`
	LightTint   string  `toml:"light_tint" comment:"bubbletint palette used in light mode"`
	DarkTint    string  `toml:"dark_tint" comment:"bubbletint palette used in dark mode"`
	EditorRatio float64 `toml:"editor_ratio" comment:"share of the width given to the editor pane (0.2 to 0.8)"`
	HideStatus  bool    `toml:"hide_status"`
}

// KeybindingsConfig maps action names to key lists.
type KeybindingsConfig struct {
	Actions map[string][]string `toml:"actions"`
}

// ExportConfig controls where exported documents are written.
type ExportConfig struct {
	Dir string `toml:"dir" comment:"defaults to the download directory"`
}

// SSHConfig holds defaults for inkwell ssh.
type SSHConfig struct {
	Host    string `toml:"host"`
	Port    string `toml:"port"`
	KeyPath string `toml:"key_path"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *UserConfig {
	return &UserConfig{
		Appearance: AppearanceConfig{
			Theme:       ThemeSystem,
			LightTint:   "solarized_light",
			DarkTint:    "dracula",
			EditorRatio: 0.5,
		},
		Timing: DefaultTiming(),
		Keybindings: KeybindingsConfig{
			Actions: defaultActions(),
		},
		Export: ExportConfig{
			Dir: defaultExportDir(),
		},
		SSH: SSHConfig{
			Host: "localhost",
			Port: "2222",
		},
	}
}

func defaultExportDir() string {
	if xdg.UserDirs.Download != "" {
		return xdg.UserDirs.Download
	}
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

// GetConfigPath returns the path of the config file, creating its directory.
func GetConfigPath() (string, error) {
	path, err := xdg.ConfigFile(filepath.Join(AppName, "config.toml"))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoConfigDir, err)
	}
	return path, nil
}

// LoadUserConfig loads the config file, writing a default one first if
// none exists.
func LoadUserConfig() (*UserConfig, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := WriteDefault(path); err != nil {
			return nil, err
		}
	}
	return LoadFrom(path)
}

// LoadFrom reads and validates the config file at path. Keys missing from
// the file keep their defaults.
func LoadFrom(path string) (*UserConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes TOML config data over the defaults and validates it.
func Parse(data []byte) (*UserConfig, error) {
	cfg := DefaultConfig()
	cfg.Keybindings.Actions = nil
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Unbound actions fall back to their default keys.
	if cfg.Keybindings.Actions == nil {
		cfg.Keybindings.Actions = make(map[string][]string)
	}
	for action, keys := range defaultActions() {
		if _, ok := cfg.Keybindings.Actions[action]; !ok {
			cfg.Keybindings.Actions[action] = keys
		}
	}

	cfg.Validate()
	return cfg, nil
}

// Validate replaces out-of-range values with defaults.
func (c *UserConfig) Validate() {
	def := DefaultConfig()

	switch strings.ToLower(c.Appearance.Theme) {
	case ThemeLight, ThemeDark, ThemeSystem:
		c.Appearance.Theme = strings.ToLower(c.Appearance.Theme)
	default:
		c.Appearance.Theme = def.Appearance.Theme
	}
	if c.Appearance.EditorRatio < 0.2 || c.Appearance.EditorRatio > 0.8 {
		c.Appearance.EditorRatio = def.Appearance.EditorRatio
	}
	if c.Appearance.LightTint == "" {
		c.Appearance.LightTint = def.Appearance.LightTint
	}
	if c.Appearance.DarkTint == "" {
		c.Appearance.DarkTint = def.Appearance.DarkTint
	}
	c.Timing = c.Timing.Validated()
	if c.Export.Dir == "" {
		c.Export.Dir = def.Export.Dir
	}
	if c.SSH.Host == "" {
		c.SSH.Host = def.SSH.Host
	}
	if c.SSH.Port == "" {
		c.SSH.Port = def.SSH.Port
	}
}

// Marshal renders cfg as a commented TOML file.
func Marshal(cfg *UserConfig, path string) ([]byte, error) {
	var sb strings.Builder
	sb.WriteString("# inkwell configuration file\n")
	sb.WriteString("# Keybindings map an action to a list of keys; several keys may share an action.\n")
	sb.WriteString("# Timings are in milliseconds. Set them to 0 to disable animations.\n")
	sb.WriteString("#\n")
	sb.WriteString("# Configuration location: " + path + "\n\n")

	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	sb.Write(data)
	return []byte(sb.String()), nil
}

// WriteDefault writes the default configuration to path.
func WriteDefault(path string) error {
	data, err := Marshal(DefaultConfig(), path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
