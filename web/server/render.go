package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"github.com/df07/go-sphere-raytracer/pkg/renderer"
	"github.com/df07/go-sphere-raytracer/pkg/scene"
)

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene         string `json:"scene"`         // Scene ID as listed by /api/scenes
	Width         int    `json:"width"`         // Image width
	Height        int    `json:"height"`        // Image height
	Supersampling int    `json:"supersampling"` // Grid size per pixel axis
	MaxDepth      int    `json:"maxDepth"`      // Reflection depth
	Workers       int    `json:"workers"`       // Row workers, 0 for CPU count
	RefreshLines  int    `json:"refreshLines"`  // Lines between frame events
}

// FrameUpdate is a snapshot of the framebuffer sent on every refresh
type FrameUpdate struct {
	Frame      int    `json:"frame"`
	ImageData  string `json:"imageData"` // Base64 encoded PNG
	ElapsedMs  int64  `json:"elapsedMs"`
	IsComplete bool   `json:"isComplete"`
}

// CompleteUpdate summarizes a finished render
type CompleteUpdate struct {
	TotalPixels      int     `json:"totalPixels"`
	SamplesPerPixel  int     `json:"samplesPerPixel"`
	TotalSamples     int     `json:"totalSamples"`
	Workers          int     `json:"workers"`
	Refreshes        int     `json:"refreshes"`
	ElapsedMs        int64   `json:"elapsedMs"`
	PrimitiveCount   int     `json:"primitiveCount"`
	AverageLuminance float64 `json:"averageLuminance"`
}

// RenderingPipeline contains the configured scene, raytracer and target
type RenderingPipeline struct {
	Scene       *scene.Scene
	Raytracer   *renderer.Raytracer
	Framebuffer *renderer.Framebuffer
	Logger      *WebLogger
}

type renderResult struct {
	stats renderer.RenderStats
	err   error
}

// handleRender renders a scene and streams a frame event on every refresh
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	s.setSSEHeaders(w)

	// Single writer goroutine, drained before the handler returns
	events := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go s.writeSSEEvents(w, events, writerDone)

	s.renderSession(r, events)
	close(events)
	<-writerDone
}

// renderSession parses the request, renders and queues every resulting
// event. It returns once the render and its console stream are finished.
func (s *Server) renderSession(r *http.Request, events chan<- SSEEvent) {
	ctx := r.Context()

	req, err := s.parseRenderRequest(r)
	if err != nil {
		s.sendEvent(ctx, events, "error", fmt.Sprintf("Invalid request: %v", err))
		return
	}

	consoleChan, webLogger := s.setupConsoleLogging()
	consoleDone := make(chan struct{})
	go s.streamConsoleMessages(ctx, consoleChan, events, consoleDone)
	defer func() {
		close(consoleChan)
		<-consoleDone
	}()

	pipeline, err := s.setupRenderingPipeline(req, webLogger)
	if err != nil {
		s.sendEvent(ctx, events, "error", err.Error())
		return
	}

	warnRenderCost(req, webLogger)
	s.streamRender(ctx, events, pipeline)
}

// setupConsoleLogging creates console channel and web logger for a render
func (s *Server) setupConsoleLogging() (chan ConsoleMessage, *WebLogger) {
	consoleChan := make(chan ConsoleMessage, 50)
	renderID := "render-" + uuid.NewString()
	return consoleChan, NewWebLogger(renderID, consoleChan)
}

// streamConsoleMessages forwards console messages until consoleChan is closed
func (s *Server) streamConsoleMessages(ctx context.Context, consoleChan <-chan ConsoleMessage, events chan<- SSEEvent, done chan<- struct{}) {
	defer close(done)
	for consoleMsg := range consoleChan {
		s.sendJSONEvent(ctx, events, "console", consoleMsg)
	}
}

// setupRenderingPipeline loads the scene and creates the raytracer
func (s *Server) setupRenderingPipeline(req *RenderRequest, logger *WebLogger) (*RenderingPipeline, error) {
	sceneObj, err := resolveScene(req.Scene)
	if err != nil {
		logger.Errorf("Scene %q rejected: %v\n", req.Scene, err)
		return nil, err
	}

	config := renderer.RenderConfig{
		Width:         req.Width,
		Height:        req.Height,
		Supersampling: req.Supersampling,
		MaxDepth:      req.MaxDepth,
		Workers:       req.Workers,
		RefreshLines:  req.RefreshLines,
	}
	raytracer, err := renderer.NewRaytracer(sceneObj, config, logger)
	if err != nil {
		logger.Errorf("Render settings rejected: %v\n", err)
		return nil, err
	}

	return &RenderingPipeline{
		Scene:       sceneObj,
		Raytracer:   raytracer,
		Framebuffer: renderer.NewFramebuffer(req.Width, req.Height),
		Logger:      logger,
	}, nil
}

// resolveScene only accepts the IDs that /api/scenes lists. File paths are
// never taken from the request.
func resolveScene(id string) (*scene.Scene, error) {
	scenes, err := scene.ListScenes()
	if err != nil {
		return nil, err
	}

	info, ok := lo.Find(scenes, func(info scene.SceneInfo) bool {
		return info.ID == id
	})
	if !ok {
		return nil, errors.Errorf("unknown scene: %q", id)
	}

	if info.Type == "file" {
		return scene.NewFileScene(info.FilePath)
	}
	return scene.Load(info.ID)
}

// streamRender runs the render in the background and turns its refresh
// signals into frame events. The renderer cannot be cancelled, so a
// disconnected client only stops the encoding of further frames.
func (s *Server) streamRender(ctx context.Context, events chan<- SSEEvent, pipeline *RenderingPipeline) {
	refreshChan := make(chan struct{}, 1)
	refresh := func() {
		select {
		case refreshChan <- struct{}{}:
		default:
			// A frame is already pending
		}
	}

	startTime := time.Now()
	resultChan := make(chan renderResult, 1)
	go func() {
		stats, err := pipeline.Raytracer.Render(pipeline.Framebuffer, refresh)
		resultChan <- renderResult{stats: stats, err: err}
	}()

	frame := 0
	for {
		select {
		case <-refreshChan:
			frame++
			s.sendFrame(ctx, events, pipeline.Framebuffer, frame, startTime, false)

		case result := <-resultChan:
			if result.err != nil {
				pipeline.Logger.Errorf("Rendering failed: %v\n", result.err)
				s.sendEvent(ctx, events, "error", fmt.Sprintf("Rendering failed: %v", result.err))
				return
			}
			frame++
			luminance := renderer.CalculateAverageLuminance(pipeline.Framebuffer)
			pipeline.Logger.Printf("%s: %d pixels, %d samples/pixel, %d frames, average luminance %.3f\n",
				pipeline.Scene.Name, result.stats.TotalPixels, result.stats.SamplesPerPixel, frame, luminance)
			s.sendFrame(ctx, events, pipeline.Framebuffer, frame, startTime, true)
			s.sendJSONEvent(ctx, events, "complete", CompleteUpdate{
				TotalPixels:      result.stats.TotalPixels,
				SamplesPerPixel:  result.stats.SamplesPerPixel,
				TotalSamples:     result.stats.TotalSamples,
				Workers:          result.stats.Workers,
				Refreshes:        result.stats.Refreshes,
				ElapsedMs:        result.stats.Elapsed.Milliseconds(),
				PrimitiveCount:   pipeline.Scene.GetPrimitiveCount(),
				AverageLuminance: luminance,
			})
			return
		}
	}
}

// sendFrame encodes a snapshot of the framebuffer as a frame event
func (s *Server) sendFrame(ctx context.Context, events chan<- SSEEvent, fb *renderer.Framebuffer, frame int, startTime time.Time, isComplete bool) {
	if ctx.Err() != nil {
		return
	}

	imageData, err := imageToBase64PNG(fb.ToRGBA())
	if err != nil {
		log.Printf("Error encoding frame %d: %v", frame, err)
		return
	}

	s.sendJSONEvent(ctx, events, "frame", FrameUpdate{
		Frame:      frame,
		ImageData:  imageData,
		ElapsedMs:  time.Since(startTime).Milliseconds(),
		IsComplete: isComplete,
	})
}

// parseRenderRequest parses request parameters
func (s *Server) parseRenderRequest(r *http.Request) (*RenderRequest, error) {
	req := &RenderRequest{}
	if err := s.parseCommonSceneParams(r, req); err != nil {
		return nil, err
	}

	defaults := renderer.DefaultRenderConfig()
	query := r.URL.Query()

	var err error
	if req.Supersampling, err = parseIntParam(query, "supersampling", defaults.Supersampling, 1, 16); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(query, "maxDepth", defaults.MaxDepth, 0, 50); err != nil {
		return nil, err
	}
	if req.Workers, err = parseIntParam(query, "workers", defaults.Workers, 0, 256); err != nil {
		return nil, err
	}
	if req.RefreshLines, err = parseIntParam(query, "refreshLines", defaults.RefreshLines, 1, 2000); err != nil {
		return nil, err
	}

	return req, nil
}

// parseCommonSceneParams parses the scene and image size shared by render
// and inspect requests
func (s *Server) parseCommonSceneParams(r *http.Request, req *RenderRequest) error {
	query := r.URL.Query()
	if req.Scene = query.Get("scene"); req.Scene == "" {
		req.Scene = "reference"
	}

	defaults := renderer.DefaultRenderConfig()
	var err error
	if req.Width, err = parseIntParam(query, "width", defaults.Width, 1, 2000); err != nil {
		return err
	}
	if req.Height, err = parseIntParam(query, "height", defaults.Height, 1, 2000); err != nil {
		return err
	}
	return nil
}
