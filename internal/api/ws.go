package api

import (
	"log"
	"net/http"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// streamWS pushes every published telemetry state over a WebSocket. The map
// dashboard keeps one of these open for the whole session.
func (s *Server) streamWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	ch, unsub := s.eng.Subscribe(ctx)
	defer unsub()

	// Reader goroutine: we never expect client messages, but reading is how
	// close frames and connection drops surface.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			return
		case st, ok := <-ch:
			if !ok {
				return
			}
			if err := conn.WriteJSON(st); err != nil {
				return
			}
		}
	}
}
