package server

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/df07/go-sphere-raytracer/pkg/core"
)

// Console levels shown in the browser
const (
	LevelInfo    = "info"
	LevelWarning = "warning"
	LevelError   = "error"
)

// ConsoleMessage is one line of a render's console stream
type ConsoleMessage struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Level     string    `json:"level"`
	RenderID  string    `json:"renderId"`
}

// WebLogger is the logger of a single web render. Lines go to the server
// log and, without ever blocking the renderer, to the render's console.
type WebLogger struct {
	renderID    string
	consoleChan chan<- ConsoleMessage
}

var _ core.Logger = (*WebLogger)(nil)

// NewWebLogger creates a logger for one render. A nil consoleChan logs to
// the server log only.
func NewWebLogger(renderID string, consoleChan chan<- ConsoleMessage) *WebLogger {
	return &WebLogger{renderID: renderID, consoleChan: consoleChan}
}

// Printf implements core.Logger at info level
func (wl *WebLogger) Printf(format string, args ...interface{}) {
	wl.emit(LevelInfo, format, args...)
}

// Warnf reports something the user may want to change
func (wl *WebLogger) Warnf(format string, args ...interface{}) {
	wl.emit(LevelWarning, format, args...)
}

// Errorf reports why a render did not run
func (wl *WebLogger) Errorf(format string, args ...interface{}) {
	wl.emit(LevelError, format, args...)
}

func (wl *WebLogger) emit(level, format string, args ...interface{}) {
	message := fmt.Sprintf(format, args...)
	log.Printf("%s %s: %s", wl.renderID, level, strings.TrimRight(message, "\n"))

	if wl.consoleChan == nil {
		return
	}
	select {
	case wl.consoleChan <- ConsoleMessage{
		Message:   message,
		Timestamp: time.Now(),
		Level:     level,
		RenderID:  wl.renderID,
	}:
	default:
		// Console is behind, drop the line
	}
}

// slowRenderSamples is the primary ray count above which a render is
// flagged as slow
const slowRenderSamples = 800 * 600 * 64

// warnRenderCost warns on the console when a request traces more primary
// rays than slowRenderSamples
func warnRenderCost(req *RenderRequest, logger *WebLogger) bool {
	samples := req.Width * req.Height * req.Supersampling * req.Supersampling
	if samples <= slowRenderSamples {
		return false
	}
	logger.Warnf("%dx%d at %d samples/pixel traces %d primary rays and may render slowly\n",
		req.Width, req.Height, req.Supersampling*req.Supersampling, samples)
	return true
}
