package renderer

import (
	"github.com/pkg/errors"
)

// ErrInvalidConfig is wrapped by every render configuration error
var ErrInvalidConfig = errors.New("invalid render configuration")

// RenderConfig contains rendering configuration
type RenderConfig struct {
	Width         int // Image width in pixels
	Height        int // Image height in pixels
	Supersampling int // Sub-pixel grid size S, giving S*S rays per pixel
	MaxDepth      int // Maximum reflection recursion depth
	Workers       int // Number of row workers (0 = use CPU count, 1 = single-threaded)
	RefreshLines  int // Completed lines between refresh signals
}

// DefaultRenderConfig returns the reference render settings
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		Width:         640,
		Height:        480,
		Supersampling: 4,
		MaxDepth:      5,
		Workers:       0,
		RefreshLines:  11,
	}
}

// SamplesPerPixel returns the number of rays traced for each pixel
func (c RenderConfig) SamplesPerPixel() int {
	return c.Supersampling * c.Supersampling
}

// Validate rejects settings that cannot produce an image
func (c RenderConfig) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.Wrapf(ErrInvalidConfig, "image size must be positive, got %dx%d", c.Width, c.Height)
	case c.Supersampling <= 0:
		return errors.Wrapf(ErrInvalidConfig, "supersampling factor must be positive, got %d", c.Supersampling)
	case c.MaxDepth < 0:
		return errors.Wrapf(ErrInvalidConfig, "max depth must not be negative, got %d", c.MaxDepth)
	case c.Workers < 0:
		return errors.Wrapf(ErrInvalidConfig, "worker count must not be negative, got %d", c.Workers)
	case c.RefreshLines <= 0:
		return errors.Wrapf(ErrInvalidConfig, "refresh interval must be positive, got %d", c.RefreshLines)
	}
	return nil
}
