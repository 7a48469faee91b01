// pkg/config/config.go
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/opd-ai/go-orrery/pkg/asset"
	"github.com/opd-ai/go-orrery/pkg/celestial"
	"github.com/opd-ai/go-orrery/pkg/scene"
)

// Renderer names accepted by Config.Renderer.
const (
	RendererNull     = "null"
	RendererTerminal = "terminal"
	RendererEngo     = "engo"
)

// Config contains the configuration for an orrery
type Config struct {
	Title     string                     `json:"title"`
	Renderer  string                     `json:"renderer"`
	FrameRate float64                    `json:"frameRate"`
	Window    WindowConfig               `json:"window"`
	View      ViewConfig                 `json:"view"`
	Animation AnimationConfig            `json:"animation"`
	System    celestial.SystemDescriptor `json:"system"`
	Materials asset.Catalog              `json:"materials"`
	Palette   map[string]string          `json:"palette"`
	LogFile   string                     `json:"logFile,omitempty"`
}

// WindowConfig contains window settings for the engo renderer
type WindowConfig struct {
	Width      int  `json:"width"`
	Height     int  `json:"height"`
	Fullscreen bool `json:"fullscreen"`
}

// ViewConfig contains presentation settings shared by renderers
type ViewConfig struct {
	PixelsPerUnit    float64      `json:"pixelsPerUnit"`
	TerminalScale    float64      `json:"terminalScale"`
	ShowAxes         bool         `json:"showAxes"`
	AxesSize         float64      `json:"axesSize"`
	Background       string       `json:"background"`
	CameraOrbitSpeed float64      `json:"cameraOrbitSpeed"`
	Camera           CameraConfig `json:"camera"`
}

// CameraConfig contains the perspective camera defaults
type CameraConfig struct {
	FieldOfView float64 `json:"fov"`
	Near        float64 `json:"near"`
	Far         float64 `json:"far"`
	Distance    float64 `json:"distance"`
	Damping     float64 `json:"damping"`
}

// AnimationConfig contains the spin multipliers per node kind
type AnimationConfig struct {
	BodySpinScale float64 `json:"bodySpinScale"`
	StarSpinScale float64 `json:"starSpinScale"`
	RingSpinScale float64 `json:"ringSpinScale"`
}

// LoadConfig loads a configuration from a file. Fields missing from the
// file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var sections map[string]json.RawMessage
	if err := json.Unmarshal(data, &sections); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	config := DefaultConfig()
	// a table in the file replaces the built-in one instead of merging into it
	if _, ok := sections["system"]; ok {
		config.System = celestial.SystemDescriptor{}
	}
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *Config, path string) error {
	if config == nil {
		return errors.New("failed to marshal config: nil config")
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// DefaultConfig returns the built-in solar system with terminal rendering
func DefaultConfig() *Config {
	return &Config{
		Title:     "Orrery",
		Renderer:  RendererTerminal,
		FrameRate: 60,
		Window: WindowConfig{
			Width:  1280,
			Height: 720,
		},
		View: ViewConfig{
			PixelsPerUnit:    8,
			TerminalScale:    1,
			ShowAxes:         true,
			AxesSize:         10,
			Background:       "#cccccc",
			CameraOrbitSpeed: 0.02,
			Camera: CameraConfig{
				FieldOfView: 50,
				Near:        0.1,
				Far:         2000,
				Distance:    10,
				Damping:     0.05,
			},
		},
		Animation: AnimationConfig{
			BodySpinScale: scene.BodySpinScale,
			StarSpinScale: scene.StarSpinScale,
			RingSpinScale: scene.RingSpinScale,
		},
		System:    celestial.DefaultSystem(),
		Materials: asset.DefaultCatalog(),
		Palette:   asset.DefaultPaletteHex(),
	}
}

// Validate checks every section. Problems with the body table are
// reported as celestial.ConfigurationError.
func (c *Config) Validate() error {
	switch c.Renderer {
	case RendererNull, RendererTerminal, RendererEngo:
	default:
		return fmt.Errorf("Renderer must be one of %s, %s or %s, got %q",
			RendererNull, RendererTerminal, RendererEngo, c.Renderer)
	}
	if !finite(c.FrameRate) || c.FrameRate < 0 {
		return fmt.Errorf("FrameRate must be a non-negative number, got %v", c.FrameRate)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("Window size must be positive, got %dx%d", c.Window.Width, c.Window.Height)
	}
	if err := c.View.validate(); err != nil {
		return err
	}
	if err := c.Animation.validate(); err != nil {
		return err
	}
	if _, err := c.ColorPalette(); err != nil {
		return err
	}
	return c.System.Validate()
}

func (v *ViewConfig) validate() error {
	if !finite(v.PixelsPerUnit) || v.PixelsPerUnit <= 0 {
		return fmt.Errorf("View.PixelsPerUnit must be positive, got %v", v.PixelsPerUnit)
	}
	if !finite(v.TerminalScale) || v.TerminalScale <= 0 {
		return fmt.Errorf("View.TerminalScale must be positive, got %v", v.TerminalScale)
	}
	if !finite(v.AxesSize) || v.AxesSize < 0 {
		return fmt.Errorf("View.AxesSize must not be negative, got %v", v.AxesSize)
	}
	if _, err := colorful.Hex(v.Background); err != nil {
		return fmt.Errorf("View.Background: %w", err)
	}
	if !finite(v.CameraOrbitSpeed) {
		return fmt.Errorf("View.CameraOrbitSpeed must be finite")
	}
	if v.Camera.Damping < 0 || v.Camera.Damping > 1 {
		return fmt.Errorf("View.Camera.Damping must be within [0,1], got %v", v.Camera.Damping)
	}
	return nil
}

func (a *AnimationConfig) validate() error {
	for name, v := range map[string]float64{
		"BodySpinScale": a.BodySpinScale,
		"StarSpinScale": a.StarSpinScale,
		"RingSpinScale": a.RingSpinScale,
	} {
		if !finite(v) {
			return fmt.Errorf("Animation.%s must be finite", name)
		}
	}
	return nil
}

// ColorPalette parses the palette section.
func (c *Config) ColorPalette() (*asset.Palette, error) {
	p, err := asset.NewPalette(c.Palette)
	if err != nil {
		return nil, fmt.Errorf("Palette: %w", err)
	}
	return p, nil
}

// Catalog returns the material assignments, or the defaults when the
// section is empty.
func (c *Config) Catalog() asset.Catalog {
	if len(c.Materials) == 0 {
		return asset.DefaultCatalog()
	}
	return c.Materials
}

// SceneOptions returns the update engine settings.
func (c *Config) SceneOptions() scene.Options {
	return scene.Options{
		BodySpinScale: c.Animation.BodySpinScale,
		StarSpinScale: c.Animation.StarSpinScale,
		RingSpinScale: c.Animation.RingSpinScale,
	}
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
