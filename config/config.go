// Package config loads the settings of the game from a TOML file.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed default.toml
var defaultConfig []byte

type Config struct {
	Window     WindowConfig     `toml:"window"`
	Simulation SimulationConfig `toml:"simulation"`
	Logging    LoggingConfig    `toml:"logging"`
	Terminal   TerminalConfig   `toml:"terminal"`
}

type WindowConfig struct {
	Title string `toml:"title"`
	Scale int    `toml:"scale"` // integer upscaling of the 256x224 screen
}

type SimulationConfig struct {
	Tick         time.Duration `toml:"tick"`          // fixed update interval
	MoveDuration time.Duration `toml:"move_duration"` // time to move one cell
	MaxClones    int           `toml:"max_clones"`
	Levels       string        `toml:"levels"` // optional path to a yaml level file
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "text"
}

type TerminalConfig struct {
	FrameRate int `toml:"frame_rate"`
}

// Load reads the configuration at path. Values not set in the file keep
// their defaults. An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := decode(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	return cfg, nil
}

// Default returns the embedded default configuration.
func Default() (*Config, error) {
	var cfg Config
	if err := decode(defaultConfig, &cfg); err != nil {
		return nil, fmt.Errorf("parse default config: %w", err)
	}

	return &cfg, nil
}

func decode(data []byte, cfg *Config) error {
	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown key %q", undecoded[0].String())
	}

	return cfg.validate()
}

func (c *Config) validate() error {
	switch {
	case c.Window.Scale < 1:
		return fmt.Errorf("window.scale must be at least 1, got %d", c.Window.Scale)

	case c.Simulation.Tick <= 0:
		return fmt.Errorf("simulation.tick must be positive, got %s", c.Simulation.Tick)

	case c.Simulation.MoveDuration <= 0:
		return fmt.Errorf("simulation.move_duration must be positive, got %s", c.Simulation.MoveDuration)

	case c.Simulation.MaxClones < 0:
		return fmt.Errorf("simulation.max_clones must not be negative, got %d", c.Simulation.MaxClones)

	case c.Logging.Format != "json" && c.Logging.Format != "text":
		return fmt.Errorf("logging.format must be json or text, got %q", c.Logging.Format)

	case c.Terminal.FrameRate < 1:
		return fmt.Errorf("terminal.frame_rate must be at least 1, got %d", c.Terminal.FrameRate)
	}

	return nil
}
