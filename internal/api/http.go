package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"drone-telemetry/internal/sim"
	"drone-telemetry/internal/telemetry"
)

type Server struct {
	eng *sim.Engine
	mux *http.ServeMux
}

func NewServer(eng *sim.Engine) *Server {
	s := &Server{eng: eng, mux: http.NewServeMux()}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler { return s.mux }

func (s *Server) routes() {
	s.mux.HandleFunc("/health", s.health)
	s.mux.HandleFunc("/state", s.state)
	s.mux.HandleFunc("/track", s.track)
	s.mux.HandleFunc("/plan", s.plan)
	s.mux.HandleFunc("/snapshot", s.snapshot)

	s.mux.HandleFunc("/command/start", s.startCmd)
	s.mux.HandleFunc("/command/pause", s.pauseCmd)
	s.mux.HandleFunc("/command/reset", s.resetCmd)

	s.mux.HandleFunc("/stream", s.streamSSE)
	s.mux.HandleFunc("/ws", s.streamWS)
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok\n"))
}

func (s *Server) state(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	st, err := s.eng.GetState(ctx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusRequestTimeout)
		return
	}
	writeJSON(w, st)
}

func (s *Server) track(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	tr, err := s.eng.Track(ctx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusRequestTimeout)
		return
	}
	writeJSON(w, map[string]any{"points": tr, "count": len(tr)})
}

func (s *Server) plan(w http.ResponseWriter, r *http.Request) {
	p := s.eng.Plan()
	writeJSON(w, map[string]any{
		"waypoints":      p.Waypoints(),
		"segments":       p.Segments(),
		"totalDistanceM": p.TotalDistanceM(),
	})
}

// snapshot renders the copy-to-clipboard JSON export for the dashboard.
func (s *Server) snapshot(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	st, err := s.eng.GetState(ctx)
	if err != nil {
		http.Error(w, err.Error(), http.StatusRequestTimeout)
		return
	}
	writeJSON(w, telemetry.Build(st, s.eng.Plan()))
}

func (s *Server) startCmd(w http.ResponseWriter, r *http.Request) {
	s.command(w, r, sim.StartCommand{At: time.Now()})
}

func (s *Server) pauseCmd(w http.ResponseWriter, r *http.Request) {
	s.command(w, r, sim.PauseCommand{At: time.Now()})
}

func (s *Server) resetCmd(w http.ResponseWriter, r *http.Request) {
	s.command(w, r, sim.ResetCommand{At: time.Now()})
}

func (s *Server) command(w http.ResponseWriter, r *http.Request, cmd sim.Command) {
	if r.Method != http.MethodPost {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}
	s.eng.Submit(cmd)
	writeJSON(w, map[string]any{"status": "accepted", "type": string(cmd.Type())})
}

func (s *Server) streamSSE(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "GET only", http.StatusMethodNotAllowed)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ctx := r.Context()
	ch, unsub := s.eng.Subscribe(ctx)
	defer unsub()

	fmt.Fprintf(w, ": connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-ctx.Done():
			return
		case st, ok := <-ch:
			if !ok {
				return
			}
			b, _ := json.Marshal(st)
			fmt.Fprintf(w, "event: state\n")
			fmt.Fprintf(w, "data: %s\n\n", b)
			flusher.Flush()
		}
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}
