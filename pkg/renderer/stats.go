package renderer

import (
	"time"

	mathpkg "github.com/df07/go-sphere-raytracer/pkg/math"
)

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Total number of pixels rendered
	SamplesPerPixel int           // Rays traced per pixel
	TotalSamples    int           // Total number of primary rays
	Workers         int           // Row workers used
	Refreshes       int           // Refresh signals sent, including the final one
	Elapsed         time.Duration // Wall-clock render time
}

func (rt *Raytracer) newStats(workers, refreshes int, elapsed time.Duration) RenderStats {
	pixels := rt.config.Width * rt.config.Height
	return RenderStats{
		TotalPixels:     pixels,
		SamplesPerPixel: rt.config.SamplesPerPixel(),
		TotalSamples:    pixels * rt.config.SamplesPerPixel(),
		Workers:         workers,
		Refreshes:       refreshes,
		Elapsed:         elapsed,
	}
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of the
// framebuffer in [0, 1]
func CalculateAverageLuminance(f *Framebuffer) float64 {
	if f.Width == 0 || f.Height == 0 {
		return 0
	}

	total := 0.0
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			r, g, b := mathpkg.UnpackRGB24(f.RGB24At(x, y))
			total += 0.2126*float64(r)/255 + 0.7152*float64(g)/255 + 0.0722*float64(b)/255
		}
	}
	return total / float64(f.Width*f.Height)
}
