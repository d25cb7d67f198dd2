package server

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestWebLogger_Levels(t *testing.T) {
	tests := []struct {
		name     string
		log      func(*WebLogger)
		level    string
		expected string
	}{
		{"printf is info", func(l *WebLogger) { l.Printf("Rendering %s\n", "reference") }, LevelInfo, "Rendering reference\n"},
		{"warning", func(l *WebLogger) { l.Warnf("%d samples/pixel\n", 256) }, LevelWarning, "256 samples/pixel\n"},
		{"error", func(l *WebLogger) { l.Errorf("Scene %q rejected\n", "x") }, LevelError, "Scene \"x\" rejected\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			messageChan := make(chan ConsoleMessage, 1)
			tt.log(NewWebLogger("render-abc", messageChan))

			msg := <-messageChan
			if msg.Level != tt.level {
				t.Errorf("Expected level %q, got %q", tt.level, msg.Level)
			}
			if msg.Message != tt.expected {
				t.Errorf("Expected message %q, got %q", tt.expected, msg.Message)
			}
			if msg.RenderID != "render-abc" {
				t.Errorf("Expected render ID 'render-abc', got %q", msg.RenderID)
			}
		})
	}
}

func TestWebLogger_NeverBlocks(t *testing.T) {
	messageChan := make(chan ConsoleMessage, 1)
	logger := NewWebLogger("render-full", messageChan)

	// Only the first line fits, the rest are dropped instead of blocking
	for i := 0; i < 5; i++ {
		logger.Printf("line %d\n", i)
	}
	if msg := <-messageChan; msg.Message != "line 0\n" {
		t.Errorf("Expected the first line to be kept, got %q", msg.Message)
	}

	// Server log only
	NewWebLogger("render-nil", nil).Errorf("no console\n")
}

func TestWarnRenderCost(t *testing.T) {
	tests := []struct {
		name          string
		req           RenderRequest
		expectWarning bool
	}{
		{"default render", RenderRequest{Width: 640, Height: 480, Supersampling: 4}, false},
		{"at the limit", RenderRequest{Width: 800, Height: 600, Supersampling: 8}, false},
		{"large and heavily supersampled", RenderRequest{Width: 2000, Height: 2000, Supersampling: 16}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			messageChan := make(chan ConsoleMessage, 1)
			warned := warnRenderCost(&tt.req, NewWebLogger("render-cost", messageChan))

			if warned != tt.expectWarning {
				t.Fatalf("Expected warning=%t, got %t", tt.expectWarning, warned)
			}
			if !tt.expectWarning {
				if len(messageChan) != 0 {
					t.Errorf("Expected no console line, got %+v", <-messageChan)
				}
				return
			}
			if msg := <-messageChan; msg.Level != LevelWarning || !strings.Contains(msg.Message, "may render slowly") {
				t.Errorf("Unexpected warning %+v", msg)
			}
		})
	}
}

// consoleMessages decodes the console events of a recorded render stream
func consoleMessages(t *testing.T, events []SSEEvent) []ConsoleMessage {
	t.Helper()
	var messages []ConsoleMessage
	for _, event := range eventsOfType(events, "console") {
		var msg ConsoleMessage
		if err := json.Unmarshal([]byte(event.Data), &msg); err != nil {
			t.Fatalf("Failed to decode console message: %v", err)
		}
		messages = append(messages, msg)
	}
	return messages
}

func TestRenderSession_ConsoleStream(t *testing.T) {
	events := parseSSE(serve(t, "/api/render?width=16&height=12&supersampling=2&workers=1").Body.String())
	messages := consoleMessages(t, events)
	if len(messages) == 0 {
		t.Fatal("Expected console messages")
	}

	renderID := messages[0].RenderID
	if !strings.HasPrefix(renderID, "render-") {
		t.Errorf("Expected a render ID, got %q", renderID)
	}

	var sawStart, sawSummary bool
	for _, msg := range messages {
		if msg.RenderID != renderID {
			t.Errorf("Expected every line tagged %q, got %q", renderID, msg.RenderID)
		}
		if msg.Level != LevelInfo {
			t.Errorf("Expected only info lines for a good render, got %+v", msg)
		}
		sawStart = sawStart || strings.Contains(msg.Message, "Rendering reference at 16x12")
		sawSummary = sawSummary || strings.Contains(msg.Message, "reference: 192 pixels, 4 samples/pixel")
	}
	if !sawStart || !sawSummary {
		t.Errorf("Expected start and summary lines, got %+v", messages)
	}
}

func TestRenderSession_RejectionsAreConsoleErrors(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		contains string
	}{
		{"unknown scene", "/api/render?scene=nowhere&width=8&height=8", "Scene \"nowhere\" rejected"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			messages := consoleMessages(t, parseSSE(serve(t, tt.target).Body.String()))
			if len(messages) != 1 {
				t.Fatalf("Expected one console line, got %+v", messages)
			}
			if messages[0].Level != LevelError || !strings.Contains(messages[0].Message, tt.contains) {
				t.Errorf("Expected an error line containing %q, got %+v", tt.contains, messages[0])
			}
		})
	}
}
