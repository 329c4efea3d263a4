package effects

import (
	"errors"
	"fmt"

	"bloom-gl/libutil"

	"github.com/chewxy/math32"
)

var ErrInvalidConfig = errors.New("invalid bloom config")

// Config is fixed for the lifetime of a BloomEffect, except for the
// exposure and toggle which are copied into BloomState.
type Config struct {
	// Number of blur passes; even so horizontal and vertical passes pair up.
	Iterations int `toml:"iterations"`
	// Target size; zero takes the viewport size.
	Width  int `toml:"width"`
	Height int `toml:"height"`
	// Divides the ping-pong target size. The capture target keeps full size.
	Downsample      int     `toml:"downsample"`
	ExposureDefault float32 `toml:"exposure"`
	Gamma           float32 `toml:"gamma"`
	// Forwarded to the scene shaders, the pipeline never reads it.
	BrightThreshold float32 `toml:"bright_threshold"`
	Enabled         bool    `toml:"enabled"`
}

func DefaultConfig() Config {
	return Config{
		Iterations:      10,
		Downsample:      1,
		ExposureDefault: 0.5,
		Gamma:           2.2,
		BrightThreshold: 1.0,
		Enabled:         true,
	}
}

func (c Config) Validate() error {
	switch {
	case c.Iterations < 2:
		return fmt.Errorf("%w: iterations must be at least 2, got %d", ErrInvalidConfig, c.Iterations)
	case c.Iterations%2 != 0:
		return fmt.Errorf("%w: iterations must be even, got %d", ErrInvalidConfig, c.Iterations)
	case c.Width < 0 || c.Height < 0:
		return fmt.Errorf("%w: size must not be negative, got %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.Downsample < 1:
		return fmt.Errorf("%w: downsample must be at least 1, got %d", ErrInvalidConfig, c.Downsample)
	case !(c.ExposureDefault > 0) || c.ExposureDefault > MaxExposure:
		return fmt.Errorf("%w: exposure must be in (0, %v], got %v", ErrInvalidConfig, MaxExposure, c.ExposureDefault)
	case !(c.Gamma > 0) || math32.IsInf(c.Gamma, 0):
		return fmt.Errorf("%w: gamma must be positive, got %v", ErrInvalidConfig, c.Gamma)
	case c.BrightThreshold < 0:
		return fmt.Errorf("%w: bright threshold must not be negative, got %v", ErrInvalidConfig, c.BrightThreshold)
	}
	return nil
}

// Size resolves the capture size against the viewport.
func (c Config) Size(viewportWidth, viewportHeight int) (width, height int) {
	width, height = c.Width, c.Height
	if width == 0 {
		width = viewportWidth
	}
	if height == 0 {
		height = viewportHeight
	}
	return
}

// BlurSize is the ping-pong target size for a capture of width x height, never below 1x1.
func (c Config) BlurSize(width, height int) (int, int) {
	d := libutil.MaxI(c.Downsample, 1)
	return libutil.MaxI(width/d, 1), libutil.MaxI(height/d, 1)
}
