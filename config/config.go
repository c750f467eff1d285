package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"midikeys/keymap"
)

// ControlsConfig assigns keyboard characters to the session controls.
// Empty fields fall back to the defaults (z/x octave, c/v velocity,
// b/n pitch bend).
type ControlsConfig struct {
	OctaveDown   string `json:"octaveDown,omitempty"`
	OctaveUp     string `json:"octaveUp,omitempty"`
	VelocityDown string `json:"velocityDown,omitempty"`
	VelocityUp   string `json:"velocityUp,omitempty"`
	BendDown     string `json:"bendDown,omitempty"`
	BendUp       string `json:"bendUp,omitempty"`
}

// Config is the main configuration structure
type Config struct {
	PortName string           `json:"portName,omitempty"`
	Velocity int              `json:"velocity,omitempty"`
	Layout   map[string]uint8 `json:"layout,omitempty"`
	Controls ControlsConfig   `json:"controls,omitempty"`
	Debug    bool             `json:"debug,omitempty"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		PortName: "VizASynthTestPort",
		Velocity: 100,
	}
}

// KeyLayout resolves the configured key layout, falling back to the
// default qwerty layout when none is set.
func (c *Config) KeyLayout() (keymap.Layout, error) {
	if len(c.Layout) == 0 {
		return keymap.Default(), nil
	}
	return keymap.FromStrings(c.Layout)
}

// KeyControls resolves the configured control keys, falling back to
// defaults field by field.
func (c *Config) KeyControls() keymap.Controls {
	ctl := keymap.DefaultControls()
	assign := func(dst *rune, s string) {
		if runes := []rune(s); len(runes) == 1 {
			*dst = runes[0]
		}
	}
	assign(&ctl.OctaveDown, c.Controls.OctaveDown)
	assign(&ctl.OctaveUp, c.Controls.OctaveUp)
	assign(&ctl.VelocityDown, c.Controls.VelocityDown)
	assign(&ctl.VelocityUp, c.Controls.VelocityUp)
	assign(&ctl.BendDown, c.Controls.BendDown)
	assign(&ctl.BendUp, c.Controls.BendUp)
	return ctl
}

// ConfigDir returns the config directory path
func ConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "midikeys"), nil
}

// ConfigPath returns the full path to config.json
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or returns defaults if not found
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return DefaultConfig(), nil
	}
	return LoadFrom(path)
}

// LoadFrom reads the config from an explicit path, or returns defaults
// if the file does not exist.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config to an explicit path.
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
