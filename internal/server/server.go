// internal/server/server.go
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"shopmate-api/internal/assistant"
	"shopmate-api/internal/common/config"
	"shopmate-api/internal/common/logger"
	"shopmate-api/internal/common/observability"
	"shopmate-api/internal/conversation"
	"shopmate-api/internal/geofilter"
	"shopmate-api/internal/location"
	"shopmate-api/internal/speech"
)

const sessionHeader = "X-Session-ID"

// Dependencies carries everything the HTTP layer dispatches into.
type Dependencies struct {
	Router      *assistant.Router
	Sessions    *conversation.Manager
	Geo         *geofilter.Config
	Resolver    *location.Resolver
	Transcriber speech.Transcriber
	Obs         *observability.Observability
	ReadyCheck  func(ctx context.Context) error
}

// Server is the HTTP front of the assistant: chat, conversation history,
// transcription, nearby stores, plus health and metrics endpoints.
type Server struct {
	config *config.ServerConfig
	deps   *Dependencies
	logger logger.Logger
	http   *http.Server

	mu       sync.Mutex
	trackers map[string]*geofilter.Tracker
}

func New(cfg *config.ServerConfig, deps *Dependencies, log logger.Logger) *Server {
	s := &Server{
		config:   cfg,
		deps:     deps,
		logger:   log.WithFields(map[string]interface{}{"component": "http-server"}),
		trackers: make(map[string]*geofilter.Tracker),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/chat", s.instrument("/api/chat", s.handleChat))
	mux.HandleFunc("GET /api/chat", s.instrument("/api/chat", s.handleHistory))
	mux.HandleFunc("DELETE /api/chat/{index}", s.instrument("/api/chat/{index}", s.handleDeletePair))
	mux.HandleFunc("POST /api/transcribe", s.instrument("/api/transcribe", s.handleTranscribe))
	mux.HandleFunc("POST /api/stores/nearby", s.instrument("/api/stores/nearby", s.handleNearbyStores))
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ready", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	s.http = &http.Server{
		Addr:         cfg.Address,
		Handler:      mux,
		ReadTimeout:  config.GetDuration(cfg.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.WriteTimeout),
	}
	return s
}

// Handler exposes the routing table for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

func (s *Server) Start() error {
	s.logger.Info("http server listening", map[string]interface{}{"address": s.config.Address})
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server shutting down", nil)
	return s.http.Shutdown(ctx)
}

// tracker returns the per-session request tracker, creating it on first use.
func (s *Server) tracker(sessionID string) *geofilter.Tracker {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.trackers[sessionID]
	if !ok {
		t = geofilter.NewTracker()
		s.trackers[sessionID] = t
	}
	return t
}

// instrument wraps a handler with request logging and metric recording.
func (s *Server) instrument(route string, next func(http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next(recorder, r)

		duration := time.Since(start)
		if s.deps.Obs != nil {
			s.deps.Obs.RecordRequest(r.Context(), route, http.StatusText(recorder.status))
			s.deps.Obs.RecordRequestDuration(r.Context(), route, duration)
		}
		s.logger.Debug("request handled", map[string]interface{}{
			"route":       route,
			"method":      r.Method,
			"status":      recorder.status,
			"duration_ms": duration.Milliseconds(),
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
