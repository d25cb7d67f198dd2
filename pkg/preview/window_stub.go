//go:build nopreview

package preview

import (
	"github.com/pkg/errors"

	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// Window is unavailable in builds without the preview window
type Window struct{}

// NewWindow creates a window that cannot be opened
func NewWindow(*renderer.Framebuffer, string) *Window {
	return &Window{}
}

// Refresh does nothing
func (w *Window) Refresh() {}

// Run always fails
func (w *Window) Run() error {
	return errors.New("preview window not available: built with the nopreview tag")
}
