package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 30, cfg.FPS)
	assert.Equal(t, 100, cfg.Stars)
	assert.Equal(t, 2.2, cfg.XScale)
	assert.False(t, cfg.Color)
	assert.False(t, cfg.Random)
	assert.Equal(t, RendererANSI, cfg.Renderer)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_OverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orrery.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fps: 60\ncolor: true\nrenderer: screen\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 60, cfg.FPS)
	assert.True(t, cfg.Color)
	assert.Equal(t, RendererScreen, cfg.Renderer)
	assert.Equal(t, 100, cfg.Stars, "unset keys keep defaults")
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fps: [\n"), 0o644))

	_, err := Load(path)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"fps zero", func(c *Config) { c.FPS = 0 }, "fps"},
		{"fps too high", func(c *Config) { c.FPS = 1000 }, "fps"},
		{"negative stars", func(c *Config) { c.Stars = -1 }, "stars"},
		{"nan scale", func(c *Config) { c.XScale = math.NaN() }, "x_scale"},
		{"negative scale", func(c *Config) { c.XScale = -1 }, "x_scale"},
		{"planets", func(c *Config) { c.Planets = 65 }, "planets"},
		{"speed", func(c *Config) { c.Speed = 0 }, "speed"},
		{"renderer", func(c *Config) { c.Renderer = "gl" }, "renderer"},
		{"markup", func(c *Config) { c.Markup = "html" }, "markup"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.ErrorContains(t, err, tt.field)
		})
	}
}

func TestValidate_ZeroScaleAllowed(t *testing.T) {
	cfg := Default()
	cfg.XScale = 0
	assert.NoError(t, cfg.Validate())
}

func TestValidate_JoinsProblems(t *testing.T) {
	cfg := Default()
	cfg.FPS = 0
	cfg.Stars = -5
	err := cfg.Validate()
	assert.ErrorContains(t, err, "fps")
	assert.ErrorContains(t, err, "stars")
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.yaml")
	cfg := Default()
	cfg.Seed = 42
	cfg.StreamAddr = ":8090"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
