package server

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// handleRenderWebSocket streams the same events as handleRender, one JSON
// message per event, for clients that prefer a WebSocket
func (s *Server) handleRenderWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error
		log.Printf("WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	events := make(chan SSEEvent, 100)
	writerDone := make(chan struct{})
	go s.writeWebSocketEvents(conn, events, writerDone)

	s.renderSession(r, events)
	close(events)
	<-writerDone

	conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// writeWebSocketEvents is the only writer on conn until events is closed
func (s *Server) writeWebSocketEvents(conn *websocket.Conn, events <-chan SSEEvent, done chan<- struct{}) {
	defer close(done)

	broken := false
	for event := range events {
		if broken {
			continue
		}
		if err := conn.WriteJSON(event); err != nil {
			broken = true
		}
	}
}
