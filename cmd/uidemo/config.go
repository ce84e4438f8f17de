package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/uirender/render"
)

// demoConfig is the TOML configuration of the demo.
//
//	frames = 3
//	assets = "testdata"
//	max_image_size = 2048
//
//	[window]
//	width = 800
//	height = 600
//	scale = 1.0
//
//	[render]
//	frames_in_flight = 2
//	atlas_size = 256
type demoConfig struct {
	Frames int    `toml:"frames"`
	Assets string `toml:"assets"`
	// MaxImageSize bounds the longer side of loaded images. Zero keeps
	// images at their decoded size.
	MaxImageSize int `toml:"max_image_size"`

	Window windowConfig  `toml:"window"`
	Render render.Config `toml:"render"`
}

type windowConfig struct {
	Width  uint32  `toml:"width"`
	Height uint32  `toml:"height"`
	Scale  float32 `toml:"scale"`
}

func defaultDemoConfig() demoConfig {
	return demoConfig{
		Frames:       3,
		Assets:       ".",
		MaxImageSize: 2048,
		Window:       windowConfig{Width: 800, Height: 600, Scale: 1},
		Render:       render.DefaultConfig(),
	}
}

// loadConfig reads path over the defaults. An empty path returns the defaults.
func loadConfig(path string) (demoConfig, error) {
	cfg := defaultDemoConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	return parseDemoConfig(data)
}

func parseDemoConfig(data []byte) (demoConfig, error) {
	cfg := defaultDemoConfig()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Window.Width == 0 || cfg.Window.Height == 0 {
		return cfg, fmt.Errorf("window: size %dx%d", cfg.Window.Width, cfg.Window.Height)
	}
	if cfg.Window.Scale <= 0 {
		return cfg, fmt.Errorf("window: scale %v", cfg.Window.Scale)
	}
	if cfg.MaxImageSize < 0 {
		return cfg, fmt.Errorf("max_image_size: %d is negative", cfg.MaxImageSize)
	}
	if cfg.Frames < 1 {
		cfg.Frames = 1
	}
	if err := cfg.Render.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
