package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-view/engine/camera"
	"github.com/Carmen-Shannon/oxy-view/engine/light"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestParseFillsDefaults(t *testing.T) {
	cfg, err := Parse([]byte(`
lighting_model = "cook_torrance"

[window]
title = "skull"
redraw_on_change = true

[orbit]
min_distance = 0.5
max_distance = 10.0
`))
	require.NoError(t, err)
	assert.Equal(t, "skull", cfg.Window.Title)
	assert.Equal(t, 1280, cfg.Window.Width)
	assert.True(t, cfg.Window.RedrawOnChange)
	assert.False(t, Default().Window.RedrawOnChange)
	assert.Equal(t, float32(0.5), cfg.Orbit.MinDistance)
	assert.Equal(t, Default().Orbit.ZoomSpeed, cfg.Orbit.ZoomSpeed)
	assert.Equal(t, light.LightingModelCookTorrance, cfg.LightingModelValue())
}

func TestParseRejectsUnknownKeys(t *testing.T) {
	_, err := Parse([]byte("[window]\nfullscreen = true\n"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown lighting model", func(c *Config) { c.LightingModel = "toon" }},
		{"zero width", func(c *Config) { c.Window.Width = 0 }},
		{"wide field of view", func(c *Config) { c.Camera.FieldOfView = 180 }},
		{"far before near", func(c *Config) { c.Camera.Far = c.Camera.Near }},
		{"min above max", func(c *Config) { c.Orbit.MinDistance, c.Orbit.MaxDistance = 10, 5 }},
		{"negative speed", func(c *Config) { c.Orbit.PanSpeed = -1 }},
		{"msaa", func(c *Config) { c.Renderer.MSAA = 2 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestLoadRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Camera.Position = [3]float32{1, 2, 3}
	data, err := cfg.Encode()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "viewer.toml")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	_, err = Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestOptionsBuildCameraAndOrbit(t *testing.T) {
	cfg := Default()
	cfg.Camera.Position = [3]float32{0, 0, 8}
	cfg.Orbit.MinDistance = 2

	cam, err := camera.NewCamera(cfg.CameraOptions()...)
	require.NoError(t, err)
	assert.Equal(t, mgl32.Vec3{0, 0, 8}, cam.Position())

	orbit := camera.NewOrbitControl(cam, cfg.OrbitOptions()...)
	assert.Equal(t, float32(2), orbit.MinDistance())
}
