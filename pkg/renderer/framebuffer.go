package renderer

import (
	"image"
	"image/color"
	"sync/atomic"

	mathpkg "github.com/df07/go-sphere-raytracer/pkg/math"
)

// Surface is the output the renderer writes packed 0xRRGGBB pixels into.
// The renderer never allocates or frees it.
type Surface interface {
	Bounds() image.Rectangle
	SetRGB24(x, y int, c uint32)
}

// Framebuffer is a row-major grid of packed 24-bit RGB cells. Stride may
// exceed Width when the framebuffer is a view into a larger one.
// Cells are stored atomically so a presenter can read while workers write.
type Framebuffer struct {
	Pix    []uint32
	Width  int
	Height int
	Stride int // Cells between vertically adjacent pixels
}

// NewFramebuffer allocates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Pix:    make([]uint32, width*height),
		Width:  width,
		Height: height,
		Stride: width,
	}
}

// Address returns the index of the cell for pixel (x, y)
func (f *Framebuffer) Address(x, y int) int {
	return y*f.Stride + x
}

// Bounds returns the pixel rectangle of the framebuffer
func (f *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, f.Width, f.Height)
}

// SetRGB24 stores a packed color. Bits above the low 24 are dropped.
func (f *Framebuffer) SetRGB24(x, y int, c uint32) {
	atomic.StoreUint32(&f.Pix[f.Address(x, y)], c&0xffffff)
}

// RGB24At returns the packed color of a pixel
func (f *Framebuffer) RGB24At(x, y int) uint32 {
	return atomic.LoadUint32(&f.Pix[f.Address(x, y)])
}

// Fill sets every pixel of the framebuffer to c
func (f *Framebuffer) Fill(c uint32) {
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			f.SetRGB24(x, y, c)
		}
	}
}

// Sub returns a view of the rectangle r that shares storage with f.
// Coordinates in the view start at (0, 0).
func (f *Framebuffer) Sub(r image.Rectangle) *Framebuffer {
	r = r.Intersect(f.Bounds())
	if r.Empty() {
		return &Framebuffer{Stride: f.Stride}
	}
	return &Framebuffer{
		Pix:    f.Pix[f.Address(r.Min.X, r.Min.Y):],
		Width:  r.Dx(),
		Height: r.Dy(),
		Stride: f.Stride,
	}
}

// ColorModel implements image.Image
func (f *Framebuffer) ColorModel() color.Model {
	return color.RGBAModel
}

// At implements image.Image with opaque colors
func (f *Framebuffer) At(x, y int) color.Color {
	if !(image.Point{x, y}.In(f.Bounds())) {
		return color.RGBA{}
	}
	r, g, b := mathpkg.UnpackRGB24(f.RGB24At(x, y))
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// ToRGBA copies the current contents into an opaque RGBA image
func (f *Framebuffer) ToRGBA() *image.RGBA {
	img := image.NewRGBA(f.Bounds())
	f.CopyTo(img)
	return img
}

// CopyTo writes the current contents into img, which must be at least as
// large as the framebuffer
func (f *Framebuffer) CopyTo(img *image.RGBA) {
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			r, g, b := mathpkg.UnpackRGB24(f.RGB24At(x, y))
			i := img.PixOffset(x, y)
			img.Pix[i+0] = r
			img.Pix[i+1] = g
			img.Pix[i+2] = b
			img.Pix[i+3] = 0xff
		}
	}
}
