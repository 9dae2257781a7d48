package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"glyphfield/internal/engine2D/particle"
	"glyphfield/internal/glyph"
)

// ErrInvalidConfiguration wraps every validation failure.
var ErrInvalidConfiguration = errors.New("config: invalid configuration")

const (
	PointerWindow = "window"
	PointerX11    = "x11"
)

type Config struct {
	Physics PhysicsConfig `json:"physics" yaml:"physics"`
	Text    TextConfig    `json:"text" yaml:"text"`
	Window  WindowConfig  `json:"window" yaml:"window"`
	Marker  MarkerConfig  `json:"marker" yaml:"marker"`
	Filter  FilterConfig  `json:"filter" yaml:"filter"`
	Pointer PointerConfig `json:"pointer" yaml:"pointer"`
	Assets  AssetsConfig  `json:"assets" yaml:"assets"`
}

type PhysicsConfig struct {
	Density          int `json:"density" yaml:"density"`
	particle.Physics `yaml:",inline"`
}

type TextConfig struct {
	Text     string  `json:"text" yaml:"text"`
	Font     string  `json:"font" yaml:"font"`
	FontSize float64 `json:"font_size" yaml:"font_size"`
}

type WindowConfig struct {
	Width      int    `json:"width" yaml:"width"`
	Height     int    `json:"height" yaml:"height"`
	FPS        int    `json:"fps" yaml:"fps"`
	Background Color  `json:"background" yaml:"background"`
	Title      string `json:"title" yaml:"title"`
}

type MarkerConfig struct {
	Sprite string  `json:"sprite" yaml:"sprite"`
	Size   float64 `json:"size" yaml:"size"`
	Tint   Color   `json:"tint" yaml:"tint"`
}

type FilterConfig struct {
	Enabled   bool    `json:"enabled" yaml:"enabled"`
	Blur      float64 `json:"blur" yaml:"blur"`
	Threshold float64 `json:"threshold" yaml:"threshold"`
	Color     Color   `json:"color" yaml:"color"`
}

type PointerConfig struct {
	Source         string `json:"source" yaml:"source"`
	PollIntervalMS int    `json:"poll_interval_ms" yaml:"poll_interval_ms"`
}

type AssetsConfig struct {
	Dir string `json:"dir" yaml:"dir"`
	Pkg string `json:"pkg" yaml:"pkg"`
}

// Color is a hex colour, "#rrggbb" or "#rrggbbaa".
type Color string

// RGBA parses c. A missing alpha component means fully opaque.
func (c Color) RGBA() (color.RGBA, error) {
	s := strings.TrimPrefix(strings.TrimSpace(string(c)), "#")
	s = strings.TrimPrefix(s, "0x")
	if len(s) != 6 && len(s) != 8 {
		return color.RGBA{}, fmt.Errorf("colour %q: want #rrggbb or #rrggbbaa", string(c))
	}
	if len(s) == 6 {
		s += "ff"
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("colour %q: %w", string(c), err)
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// MustRGBA is RGBA for colours already checked by Validate.
func (c Color) MustRGBA() color.RGBA {
	rgba, err := c.RGBA()
	if err != nil {
		return color.RGBA{A: 0xff}
	}
	return rgba
}

func Default() *Config {
	return &Config{
		Physics: PhysicsConfig{
			Density: glyph.DefaultDensity,
			Physics: particle.DefaultPhysics(),
		},
		Text: TextConfig{
			Text:     "A",
			FontSize: glyph.DefaultFontSize,
		},
		Window: WindowConfig{
			Width:      1280,
			Height:     720,
			FPS:        60,
			Background: "#ff4338",
			Title:      "glyphfield",
		},
		Marker: MarkerConfig{
			Size: 12,
			Tint: "#000000",
		},
		Filter: FilterConfig{
			Enabled:   true,
			Blur:      10,
			Threshold: 0.5,
			Color:     "#f4c129",
		},
		Pointer: PointerConfig{
			Source:         PointerWindow,
			PollIntervalMS: 16,
		},
	}
}

// Load reads path on top of the defaults. YAML is used for .yaml and .yml
// files, JSON for everything else.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = decodeYAML(data, cfg)
	default:
		err = decodeJSON(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func decodeJSON(data []byte, cfg *Config) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(cfg)
}

// Validate reports the first out-of-range option, wrapped in
// ErrInvalidConfiguration and the owning package's sentinel.
func (c *Config) Validate() error {
	if c.Physics.Density <= 0 {
		return fmt.Errorf("%w: density %d: %w", ErrInvalidConfiguration, c.Physics.Density, glyph.ErrInvalidDensity)
	}
	if err := c.Physics.Physics.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	if c.Text.FontSize <= 0 {
		return fmt.Errorf("%w: font size %v must be positive", ErrInvalidConfiguration, c.Text.FontSize)
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfiguration, c.Window.Width, c.Window.Height)
	}
	if c.Window.FPS <= 0 {
		return fmt.Errorf("%w: fps %d must be positive", ErrInvalidConfiguration, c.Window.FPS)
	}
	if c.Marker.Size <= 0 {
		return fmt.Errorf("%w: marker size %v must be positive", ErrInvalidConfiguration, c.Marker.Size)
	}
	if c.Filter.Blur < 0 {
		return fmt.Errorf("%w: blur %v must not be negative", ErrInvalidConfiguration, c.Filter.Blur)
	}
	if c.Filter.Threshold < 0 || c.Filter.Threshold > 1 {
		return fmt.Errorf("%w: threshold %v must be in [0,1]", ErrInvalidConfiguration, c.Filter.Threshold)
	}
	for name, col := range map[string]Color{
		"window.background": c.Window.Background,
		"marker.tint":       c.Marker.Tint,
		"filter.color":      c.Filter.Color,
	} {
		if _, err := col.RGBA(); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidConfiguration, name, err)
		}
	}
	switch c.Pointer.Source {
	case PointerWindow, PointerX11:
	default:
		return fmt.Errorf("%w: pointer source %q", ErrInvalidConfiguration, c.Pointer.Source)
	}
	if c.Pointer.PollIntervalMS < 0 {
		return fmt.Errorf("%w: poll interval %dms", ErrInvalidConfiguration, c.Pointer.PollIntervalMS)
	}
	return nil
}

// ForceModel returns the particle physics constants.
func (c *Config) ForceModel() particle.Physics {
	return c.Physics.Physics
}

// PollInterval returns the pointer poll period, zero meaning the default.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Pointer.PollIntervalMS) * time.Millisecond
}
