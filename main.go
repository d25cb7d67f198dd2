// Command go-sphere-raytracer renders sphere scenes to PNG or BMP, optionally
// showing the render in a preview window as it progresses.
//
// The preview window needs cgo and a display. Build with -tags nopreview for
// a headless binary. The tests of this package only build under that tag:
//
//	go test ./...
//	go test -tags nopreview .
package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/image/bmp"

	"github.com/df07/go-sphere-raytracer/pkg/core"
	"github.com/df07/go-sphere-raytracer/pkg/preview"
	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

func main() {
	defaults := renderer.DefaultRenderConfig()

	// Parse command line flags
	sceneType := flag.String("scene", "reference", "Scene name or path to a .json scene file")
	width := flag.Int("width", defaults.Width, "Image width in pixels")
	height := flag.Int("height", defaults.Height, "Image height in pixels")
	supersampling := flag.Int("ss", defaults.Supersampling, "Supersampling grid size (S*S rays per pixel)")
	maxDepth := flag.Int("depth", defaults.MaxDepth, "Maximum reflection depth")
	workers := flag.Int("workers", defaults.Workers, "Row workers (0 = CPU count, 1 = single-threaded)")
	refreshLines := flag.Int("refresh-lines", defaults.RefreshLines, "Lines between preview refreshes")
	format := flag.String("format", "png", "Output format: 'png' or 'bmp'")
	showPreview := flag.Bool("preview", false, "Show the render in a window while it runs")
	listScenes := flag.Bool("list", false, "List available scenes and exit")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help {
		fmt.Println("Sphere Raytracer")
		fmt.Println("Usage: raytracer [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Output will be saved to output/<scene>/render_<timestamp>.<format>")
		return
	}

	logger := core.NewDefaultLogger()

	if *listScenes {
		if err := printScenes(os.Stdout); err != nil {
			logger.Printf("Error listing scenes: %v\n", err)
			os.Exit(1)
		}
		return
	}

	config := renderer.RenderConfig{
		Width:         *width,
		Height:        *height,
		Supersampling: *supersampling,
		MaxDepth:      *maxDepth,
		Workers:       *workers,
		RefreshLines:  *refreshLines,
	}

	if err := run(*sceneType, config, *format, *showPreview, logger); err != nil {
		logger.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func run(sceneType string, config renderer.RenderConfig, format string, showPreview bool, logger core.Logger) error {
	encode, err := encoderFor(format)
	if err != nil {
		return err
	}

	selectedScene, err := createScene(sceneType)
	if err != nil {
		return err
	}

	raytracer, err := renderer.NewRaytracer(selectedScene, config, logger)
	if err != nil {
		return err
	}

	fb := renderer.NewFramebuffer(config.Width, config.Height)

	var stats renderer.RenderStats
	var renderErr error
	if showPreview {
		window := preview.NewWindow(fb, "Sphere Raytracer - "+selectedScene.Name)
		done := make(chan struct{})
		go func() {
			defer close(done)
			stats, renderErr = raytracer.Render(fb, window.Refresh)
		}()
		if err := window.Run(); err != nil {
			logger.Printf("Preview window failed: %v\n", err)
		}
		<-done
	} else if isTerminal(os.Stderr) {
		progress := newProgressSurface(fb, config.Width*config.Height, os.Stderr)
		stats, renderErr = raytracer.Render(progress, progress.Refresh)
		progress.Close()
	} else {
		stats, renderErr = raytracer.Render(fb, nil)
	}
	if renderErr != nil {
		return renderErr
	}

	logger.Printf("Samples per pixel: %d, total rays: %d, average luminance %.3f\n",
		stats.SamplesPerPixel, stats.TotalSamples, renderer.CalculateAverageLuminance(fb))

	outputDir := createOutputDir(sceneType)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return errors.Wrap(err, "creating output directory")
	}

	// Create timestamped filename
	timestamp := time.Now().Format("20060102_150405")
	filename := filepath.Join(outputDir, fmt.Sprintf("render_%s.%s", timestamp, format))

	if err := saveImage(filename, fb, encode); err != nil {
		return err
	}

	logger.Printf("Render saved as %s\n", filename)
	return nil
}

// createScene resolves a builtin scene name or a scene file
func createScene(sceneType string) (*scene.Scene, error) {
	s, err := scene.Load(sceneType)
	if err != nil {
		return nil, errors.Wrap(err, "loading scene")
	}
	return s, nil
}

// createOutputDir returns output/<scene>, using the file name for scene files
func createOutputDir(sceneType string) string {
	name := sceneType
	if strings.HasSuffix(name, ".json") {
		name = strings.TrimSuffix(filepath.Base(name), ".json")
	}
	if name == "" {
		name = "scene"
	}
	return filepath.Join("output", name)
}

type encoderFunc func(io.Writer, image.Image) error

func encoderFor(format string) (encoderFunc, error) {
	switch format {
	case "png":
		return png.Encode, nil
	case "bmp":
		return bmp.Encode, nil
	default:
		return nil, errors.Errorf("unknown output format %q, expected png or bmp", format)
	}
}

func saveImage(filename string, fb *renderer.Framebuffer, encode encoderFunc) error {
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrap(err, "creating output file")
	}
	defer file.Close()

	if err := encode(file, fb.ToRGBA()); err != nil {
		return errors.Wrap(err, "encoding image")
	}
	return nil
}

func printScenes(w io.Writer) error {
	scenes, err := scene.ListScenes()
	if err != nil {
		return err
	}
	for _, s := range scenes {
		fmt.Fprintf(w, "  %-20s %s\n", s.ID, s.Description)
	}
	return nil
}
