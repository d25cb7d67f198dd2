package renderer

import (
	"runtime"
	"time"

	"github.com/pkg/errors"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	mathpkg "github.com/df07/go-sphere-raytracer/pkg/math"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// RefreshFunc asks the presentation layer to show the current surface
// contents. It must not block the renderer.
type RefreshFunc func()

// viewDirection is the direction of every primary ray. The camera is
// orthographic: eye positions vary per sample, directions do not.
var viewDirection = mathpkg.NewVec3(0, 0, 1)

// Raytracer renders a scene into a surface
type Raytracer struct {
	scene  *scene.Scene
	tracer *Tracer
	config RenderConfig
	logger core.Logger
}

// NewRaytracer validates the configuration and creates a raytracer
func NewRaytracer(s *scene.Scene, config RenderConfig, logger core.Logger) (*Raytracer, error) {
	if s == nil {
		return nil, errors.Wrap(ErrInvalidConfig, "scene is nil")
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = core.NopLogger{}
	}

	return &Raytracer{
		scene:  s,
		tracer: NewTracer(s),
		config: config,
		logger: logger,
	}, nil
}

// Config returns the render configuration
func (rt *Raytracer) Config() RenderConfig {
	return rt.config
}

// Tracer returns the tracer used for every sample
func (rt *Raytracer) Tracer() *Tracer {
	return rt.tracer
}

// Render traces every pixel of the configured image into surface, calling
// refresh every RefreshLines completed lines and once at the end. refresh
// may be nil.
func (rt *Raytracer) Render(surface Surface, refresh RefreshFunc) (RenderStats, error) {
	bounds := surface.Bounds()
	if bounds.Dx() < rt.config.Width || bounds.Dy() < rt.config.Height {
		return RenderStats{}, errors.Wrapf(ErrInvalidConfig, "surface %dx%d is smaller than image %dx%d",
			bounds.Dx(), bounds.Dy(), rt.config.Width, rt.config.Height)
	}
	if refresh == nil {
		refresh = func() {}
	}

	workers := rt.config.Workers
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	workers = min(workers, rt.config.Height)

	rt.logger.Printf("Rendering %s at %dx%d (%d samples/pixel, depth %d, %d workers)\n",
		rt.scene.Name, rt.config.Width, rt.config.Height, rt.config.SamplesPerPixel(), rt.config.MaxDepth, workers)

	startTime := time.Now()
	var refreshes int
	counted := func() {
		refreshes++
		refresh()
	}

	if workers == 1 {
		rt.renderRows(surface, 0, 1, counted)
	} else {
		pool := NewWorkerPool(rt, surface, workers)
		if err := pool.Run(counted); err != nil {
			return RenderStats{}, err
		}
	}

	// Final refresh once every line is done
	counted()

	stats := rt.newStats(workers, refreshes, time.Since(startTime))
	rt.logger.Printf("Render completed in %v (%d refreshes)\n", stats.Elapsed, stats.Refreshes)
	return stats, nil
}

// renderRows renders rows first, first+step, first+2*step... in order and
// calls refresh after every RefreshLines of them. A nil refresh disables
// progress signalling for this caller.
func (rt *Raytracer) renderRows(surface Surface, first, step int, refresh RefreshFunc) {
	lines := 0
	for y := first; y < rt.config.Height; y += step {
		rt.renderRow(surface, y)

		lines++
		if refresh != nil && lines >= rt.config.RefreshLines {
			refresh()
			lines = 0
		}
	}
}

// renderRow renders one scanline
func (rt *Raytracer) renderRow(surface Surface, y int) {
	for x := 0; x < rt.config.Width; x++ {
		surface.SetRGB24(x, y, rt.RenderPixel(x, y).ToRGB24())
	}
}

// RenderPixel averages an S×S grid of samples covering [-0.5, 0.5) around
// the pixel center
func (rt *Raytracer) RenderPixel(x, y int) mathpkg.Vec3 {
	ss := rt.config.Supersampling
	step := 1.0 / float64(ss)

	var accum mathpkg.Vec3
	for j := 0; j < ss; j++ {
		sy := float64(y) - 0.5 + float64(j)*step
		for i := 0; i < ss; i++ {
			sx := float64(x) - 0.5 + float64(i)*step

			ray := rt.PrimaryRay(sx, sy)
			accum.AddAssign(rt.tracer.Trace(ray.Origin, ray, rt.config.MaxDepth))
		}
	}

	accum.DivideAssign(float64(ss * ss))
	return accum
}

// PrimaryRay returns the camera ray through screen position (sx, sy). The
// image is centered on the world origin and screen down is world -y.
func (rt *Raytracer) PrimaryRay(sx, sy float64) mathpkg.Ray {
	halfWidth := float64(rt.config.Width-1) * 0.5
	halfHeight := float64(rt.config.Height-1) * 0.5
	eye := mathpkg.NewVec3(sx-halfWidth, -(sy - halfHeight), 0)
	return mathpkg.NewRay(eye, viewDirection)
}
