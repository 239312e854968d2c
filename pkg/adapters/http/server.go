package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/aretw0/previewkit"
	"github.com/aretw0/previewkit/pkg/domain"
	"github.com/aretw0/previewkit/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server exposes the preview registry over HTTP.
type Server struct {
	Store   ports.PreviewStore
	Streams *StreamManager
}

// NewHandler creates the HTTP handler.
// gatherer may be nil, in which case /metrics is not mounted.
func NewHandler(store ports.PreviewStore, streams *StreamManager, gatherer prometheus.Gatherer) http.Handler {
	if streams == nil {
		streams = NewStreamManager()
	}
	s := &Server{Store: store, Streams: streams}

	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/events", s.SubscribeEvents)
	r.Route("/previews", func(r chi.Router) {
		r.Get("/", s.ListPreviews)
		r.Get("/{target}", s.GetPreview)
		r.Delete("/{target}", s.DeletePreview)
	})
	if gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

// ListPreviews handles GET /previews. Targets that vanish while listing are skipped.
func (s *Server) ListPreviews(w http.ResponseWriter, r *http.Request) {
	targets, err := s.Store.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("List error: %v", err), http.StatusInternalServerError)
		slog.Error("List previews failed", "error", err)
		return
	}

	previews := make([]*domain.PreviewRequest, 0, len(targets))
	for _, target := range targets {
		req, err := s.Store.Load(r.Context(), target)
		if errors.Is(err, domain.ErrPreviewNotFound) {
			continue
		}
		if err != nil {
			http.Error(w, fmt.Sprintf("Load error: %v", err), http.StatusInternalServerError)
			slog.Error("Load preview failed", "error", err, "target", target)
			return
		}
		previews = append(previews, req)
	}

	writeJSON(w, http.StatusOK, previews)
}

// GetPreview handles GET /previews/{target}.
func (s *Server) GetPreview(w http.ResponseWriter, r *http.Request) {
	target := chi.URLParam(r, "target")
	req, err := s.Store.Load(r.Context(), target)
	if err != nil {
		if errors.Is(err, domain.ErrPreviewNotFound) {
			http.Error(w, "Preview not found", http.StatusNotFound)
			return
		}
		http.Error(w, fmt.Sprintf("Load error: %v", err), http.StatusInternalServerError)
		slog.Error("Load preview failed", "error", err, "target", target)
		return
	}
	writeJSON(w, http.StatusOK, req)
}

// DeletePreview handles DELETE /previews/{target}.
func (s *Server) DeletePreview(w http.ResponseWriter, r *http.Request) {
	target := chi.URLParam(r, "target")
	if err := s.Store.Delete(r.Context(), target); err != nil {
		http.Error(w, fmt.Sprintf("Delete error: %v", err), http.StatusInternalServerError)
		slog.Error("Delete preview failed", "error", err, "target", target)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetHealth handles the GET /healthz request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"app":     "previewkit",
		"version": previewkit.Version,
	})
}

// StreamManager fans preview events out to SSE subscribers.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[chan<- string]struct{}
}

func NewStreamManager() *StreamManager {
	return &StreamManager{
		subscribers: make(map[chan<- string]struct{}),
	}
}

// Subscribe returns a channel of JSON-encoded events and its cancel function.
func (sm *StreamManager) Subscribe() (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	sm.subscribers[ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			sm.mu.Lock()
			defer sm.mu.Unlock()
			delete(sm.subscribers, ch)
			close(ch)
		})
	}
}

// Publish broadcasts a stored preview request. Slow subscribers miss events.
func (sm *StreamManager) Publish(req *domain.PreviewRequest) {
	data, err := json.Marshal(req)
	if err != nil {
		slog.Error("StreamManager: encode failed", "error", err)
		return
	}

	sm.mu.RLock()
	defer sm.mu.RUnlock()

	for ch := range sm.subscribers {
		select {
		case ch <- string(data):
		default:
			slog.Warn("SSE: Client buffer full, dropping message", "target", req.PreviewFqName)
		}
	}
}

// SubscribeEvents handles the GET /events request (SSE).
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.Streams.Subscribe()
	defer cancel()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: preview\ndata: %s\n\n", msg)
			flusher.Flush()
		}
	}
}
