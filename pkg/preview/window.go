//go:build !nopreview

// Package preview shows a framebuffer in a desktop window while it is
// being rendered.
package preview

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/df07/go-sphere-raytracer/pkg/renderer"
)

// Window presents a framebuffer. Refresh may be called from any goroutine
// and never blocks; the window redraws at its next frame.
type Window struct {
	fb    *renderer.Framebuffer
	title string
	dirty chan struct{}
	img   *image.RGBA
	fbImg *ebiten.Image
}

// NewWindow creates a window for fb
func NewWindow(fb *renderer.Framebuffer, title string) *Window {
	return &Window{
		fb:    fb,
		title: title,
		dirty: make(chan struct{}, 1),
	}
}

// Refresh requests a redraw of the current framebuffer contents
func (w *Window) Refresh() {
	select {
	case w.dirty <- struct{}{}:
	default:
		// A redraw is already pending
	}
}

// Run opens the window and blocks until the user closes it. It must be
// called from the main goroutine.
func (w *Window) Run() error {
	ebiten.SetWindowTitle(w.title)
	ebiten.SetWindowSize(w.fb.Width, w.fb.Height)
	ebiten.SetTPS(30)
	return ebiten.RunGame(w)
}

// Update implements ebiten.Game
func (w *Window) Update() error {
	return nil
}

// Draw implements ebiten.Game
func (w *Window) Draw(screen *ebiten.Image) {
	if w.fbImg == nil {
		w.img = image.NewRGBA(w.fb.Bounds())
		w.fbImg = ebiten.NewImage(w.fb.Width, w.fb.Height)
		w.Refresh()
	}

	select {
	case <-w.dirty:
		w.fb.CopyTo(w.img)
		w.fbImg.WritePixels(w.img.Pix)
	default:
	}

	screen.DrawImage(w.fbImg, nil)
}

// Layout implements ebiten.Game
func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	return w.fb.Width, w.fb.Height
}
