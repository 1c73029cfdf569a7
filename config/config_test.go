package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "awaken.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg, err := Default()
	require.NoError(t, err)

	require.Equal(t, "Awaken", cfg.Window.Title)
	require.Equal(t, 4, cfg.Window.Scale)
	require.Equal(t, 20*time.Millisecond, cfg.Simulation.Tick)
	require.Equal(t, 150*time.Millisecond, cfg.Simulation.MoveDuration)
	require.Equal(t, 4, cfg.Simulation.MaxClones)
	require.Equal(t, "text", cfg.Logging.Format)
}

func TestLoad_EmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	defaults, _ := Default()
	require.Equal(t, defaults, cfg)
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, `
[simulation]
tick = "15ms"

[logging]
level = "debug"
format = "json"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, 15*time.Millisecond, cfg.Simulation.Tick)
	require.Equal(t, "debug", cfg.Logging.Level)
	require.Equal(t, "json", cfg.Logging.Format)

	// untouched values keep their defaults
	require.Equal(t, 150*time.Millisecond, cfg.Simulation.MoveDuration)
	require.Equal(t, 4, cfg.Window.Scale)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(writeConfig(t, "[window]\nscale = 0\n"))
	require.ErrorContains(t, err, "window.scale")

	_, err = Load(writeConfig(t, "[logging]\nformat = \"xml\"\n"))
	require.ErrorContains(t, err, "logging.format")

	_, err = Load(writeConfig(t, "[window]\ncolor = \"red\"\n"))
	require.ErrorContains(t, err, "window.color")

	_, err = Load(writeConfig(t, "[window\n"))
	require.ErrorContains(t, err, "parse config")

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
