// Package config loads the viewer configuration from TOML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/Carmen-Shannon/oxy-view/common"
	"github.com/Carmen-Shannon/oxy-view/engine/camera"
	"github.com/Carmen-Shannon/oxy-view/engine/light"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidConfig is returned by Validate, wrapped with the offending field.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the viewer configuration.
//
// Example:
//
//	lighting_model = "blinn"
//
//	[window]
//	title = "volume"
//	width = 1280
//	height = 720
//
//	[camera]
//	position = [0.0, 1.0, 3.0]
//	field_of_view = 45.0
//
//	[orbit]
//	min_distance = 0.5
//	max_distance = 20.0
type Config struct {
	// LightingModel is phong, blinn or cook_torrance.
	LightingModel string `toml:"lighting_model"`

	Window   WindowConfig   `toml:"window"`
	Camera   CameraConfig   `toml:"camera"`
	Orbit    OrbitConfig    `toml:"orbit"`
	Renderer RendererConfig `toml:"renderer"`
}

// WindowConfig configures the native window.
type WindowConfig struct {
	Title  string `toml:"title"`
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	// VSync caps presentation to the display refresh rate.
	VSync bool `toml:"vsync"`
	// Profiling logs frame statistics once per second.
	Profiling bool `toml:"profiling"`
	// RedrawOnChange draws a frame only when the camera, the window size or the scene changed.
	RedrawOnChange bool `toml:"redraw_on_change"`
}

// CameraConfig is the initial camera. FieldOfView is the vertical angle in degrees.
type CameraConfig struct {
	Position    [3]float32 `toml:"position"`
	Target      [3]float32 `toml:"target"`
	Up          [3]float32 `toml:"up"`
	FieldOfView float32    `toml:"field_of_view"`
	Near        float32    `toml:"near"`
	Far         float32    `toml:"far"`
}

// OrbitConfig configures the mouse orbit control.
type OrbitConfig struct {
	MinDistance float32 `toml:"min_distance"`
	MaxDistance float32 `toml:"max_distance"`
	RotateSpeed float32 `toml:"rotate_speed"`
	PanSpeed    float32 `toml:"pan_speed"`
	ZoomSpeed   float32 `toml:"zoom_speed"`
}

// RendererConfig configures the renderer and its backend.
type RendererConfig struct {
	// MSAA is the sample count, 1 or 4.
	MSAA           int        `toml:"msaa"`
	FrustumCulling bool       `toml:"frustum_culling"`
	ClearColor     [4]float64 `toml:"clear_color"`
	// SoftwareRenderer forces the fallback adapter.
	SoftwareRenderer bool `toml:"software_renderer"`
}

// Default returns the configuration used for keys a file leaves out.
//
// Returns:
//   - Config: the default configuration
func Default() Config {
	return Config{
		LightingModel: "blinn",
		Window: WindowConfig{
			Title:  "oxy-view",
			Width:  1280,
			Height: 720,
			VSync:  true,
		},
		Camera: CameraConfig{
			Position:    [3]float32{0, 0, 5},
			Target:      [3]float32{0, 0, 0},
			Up:          [3]float32{0, 1, 0},
			FieldOfView: 45,
			Near:        0.1,
			Far:         100,
		},
		Orbit: OrbitConfig{
			MinDistance: 1,
			MaxDistance: 100,
			RotateSpeed: 0.01,
			PanSpeed:    0.001,
			ZoomSpeed:   0.1,
		},
		Renderer: RendererConfig{
			MSAA:           4,
			FrustumCulling: true,
			ClearColor:     [4]float64{0.1, 0.1, 0.1, 1},
		},
	}
}

// Load reads and validates a TOML configuration file.
//
// Parameters:
//   - path: the file to read
//
// Returns:
//   - Config: the configuration, defaults filled in for missing keys
//   - error: an error if the file cannot be read, parsed or validated
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates TOML configuration data. Unknown keys are rejected.
//
// Parameters:
//   - data: the TOML document
//
// Returns:
//   - Config: the configuration, defaults filled in for missing keys
//   - error: an error if the data cannot be parsed or validated
func Parse(data []byte) (Config, error) {
	cfg := Default()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode writes cfg as TOML.
func (c Config) Encode() ([]byte, error) {
	return toml.Marshal(c)
}

// Validate checks that every value is usable.
//
// Returns:
//   - error: ErrInvalidConfig wrapped with the first offending key, or nil
func (c Config) Validate() error {
	invalid := func(key string, format string, args ...any) error {
		return fmt.Errorf("config: %s: %s: %w", key, fmt.Sprintf(format, args...), ErrInvalidConfig)
	}
	if _, err := light.ParseLightingModel(c.LightingModel); err != nil {
		return invalid("lighting_model", "unknown model %q", c.LightingModel)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return invalid("window", "size %dx%d must be positive", c.Window.Width, c.Window.Height)
	}
	for key, v := range map[string][3]float32{
		"camera.position": c.Camera.Position,
		"camera.target":   c.Camera.Target,
		"camera.up":       c.Camera.Up,
	} {
		if !common.IsFinite(mgl32.Vec3(v)) {
			return invalid(key, "%v must be finite", v)
		}
	}
	if c.Camera.FieldOfView <= 0 || c.Camera.FieldOfView >= 180 {
		return invalid("camera.field_of_view", "%v must be in (0, 180)", c.Camera.FieldOfView)
	}
	if c.Camera.Near <= 0 || c.Camera.Far <= c.Camera.Near {
		return invalid("camera", "near %v and far %v must satisfy 0 < near < far", c.Camera.Near, c.Camera.Far)
	}
	if c.Orbit.MinDistance <= 0 || c.Orbit.MinDistance > c.Orbit.MaxDistance {
		return invalid("orbit", "min_distance %v must be positive and not above max_distance %v", c.Orbit.MinDistance, c.Orbit.MaxDistance)
	}
	for key, v := range map[string]float32{
		"orbit.rotate_speed": c.Orbit.RotateSpeed,
		"orbit.pan_speed":    c.Orbit.PanSpeed,
		"orbit.zoom_speed":   c.Orbit.ZoomSpeed,
	} {
		if v < 0 || math.IsNaN(float64(v)) || math.IsInf(float64(v), 0) {
			return invalid(key, "%v must be a finite non-negative number", v)
		}
	}
	if c.Renderer.MSAA != 1 && c.Renderer.MSAA != 4 {
		return invalid("renderer.msaa", "%d must be 1 or 4", c.Renderer.MSAA)
	}
	return nil
}

// LightingModelValue returns the parsed lighting model. Call it on a validated config.
func (c Config) LightingModelValue() light.LightingModel {
	m, err := light.ParseLightingModel(c.LightingModel)
	if err != nil {
		return light.LightingModelBlinn
	}
	return m
}

// CameraOptions returns the camera options for the initial view.
func (c Config) CameraOptions() []camera.CameraBuilderOption {
	return []camera.CameraBuilderOption{
		camera.WithView(mgl32.Vec3(c.Camera.Position), mgl32.Vec3(c.Camera.Target), mgl32.Vec3(c.Camera.Up)),
		camera.WithPerspective(mgl32.DegToRad(c.Camera.FieldOfView), c.Camera.Near, c.Camera.Far),
		camera.WithViewport(common.NewViewportAtOrigo(uint32(c.Window.Width), uint32(c.Window.Height))),
	}
}

// OrbitOptions returns the orbit control options.
func (c Config) OrbitOptions() []camera.OrbitControlOption {
	return []camera.OrbitControlOption{
		camera.WithDistanceBounds(c.Orbit.MinDistance, c.Orbit.MaxDistance),
		camera.WithRotateSpeed(c.Orbit.RotateSpeed),
		camera.WithPanSpeed(c.Orbit.PanSpeed),
		camera.WithZoomSpeed(c.Orbit.ZoomSpeed),
	}
}
