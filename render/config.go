// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"bytes"
	"fmt"
	"math/bits"

	"github.com/pelletier/go-toml/v2"

	"github.com/gogpu/uirender/text"
)

// Limits for Config fields.
const (
	MaxFramesInFlight = 8
	MinAtlasSize      = 16
)

// Config controls resource sizing of a Renderer.
type Config struct {
	// FramesInFlight is the number of frame slots.
	FramesInFlight int `toml:"frames_in_flight"`

	// AtlasSize is the initial glyph atlas edge in texels. Power of two.
	AtlasSize int `toml:"atlas_size"`

	// MaxAtlasSize bounds atlas growth. Power of two.
	MaxAtlasSize int `toml:"max_atlas_size"`

	// AtlasPadding is the gap in texels between packed glyphs.
	AtlasPadding int `toml:"atlas_padding"`

	// InitialVertexCapacity is the starting size in bytes of each vertex
	// buffer. Buffers grow to the next power of two as needed.
	InitialVertexCapacity int `toml:"initial_vertex_capacity"`

	// DefaultFontName is the name the host registers its default font under.
	DefaultFontName string `toml:"default_font"`

	// TextLayoutCacheSize is the number of shaped text runs kept across frames.
	TextLayoutCacheSize int `toml:"text_layout_cache_size"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		FramesInFlight:        2,
		AtlasSize:             512,
		MaxAtlasSize:          4096,
		AtlasPadding:          1,
		InitialVertexCapacity: 4096,
		DefaultFontName:       "default",
		TextLayoutCacheSize:   1024,
	}
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	switch {
	case c.FramesInFlight < 1 || c.FramesInFlight > MaxFramesInFlight:
		return &ConfigError{Field: "FramesInFlight", Reason: fmt.Sprintf("must be in [1, %d]", MaxFramesInFlight)}
	case c.AtlasSize < MinAtlasSize || bits.OnesCount(uint(c.AtlasSize)) != 1:
		return &ConfigError{Field: "AtlasSize", Reason: fmt.Sprintf("must be a power of two >= %d", MinAtlasSize)}
	case c.MaxAtlasSize < c.AtlasSize || bits.OnesCount(uint(c.MaxAtlasSize)) != 1:
		return &ConfigError{Field: "MaxAtlasSize", Reason: "must be a power of two >= AtlasSize"}
	case c.AtlasPadding < 0:
		return &ConfigError{Field: "AtlasPadding", Reason: "must be non-negative"}
	case c.InitialVertexCapacity <= 0:
		return &ConfigError{Field: "InitialVertexCapacity", Reason: "must be positive"}
	case c.DefaultFontName == "":
		return &ConfigError{Field: "DefaultFontName", Reason: "must not be empty"}
	case c.TextLayoutCacheSize <= 0:
		return &ConfigError{Field: "TextLayoutCacheSize", Reason: "must be positive"}
	}
	return nil
}

// ParseConfig decodes TOML over DefaultConfig and validates the result.
// Unknown keys are an error.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("render: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) brushConfig() text.BrushConfig {
	return text.BrushConfig{
		AtlasSize:       c.AtlasSize,
		MaxAtlasSize:    c.MaxAtlasSize,
		Padding:         c.AtlasPadding,
		LayoutCacheSize: c.TextLayoutCacheSize,
	}
}
