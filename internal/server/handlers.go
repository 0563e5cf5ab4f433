// internal/server/handlers.go
package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	stderrors "errors"

	"shopmate-api/internal/common/errors"
	"shopmate-api/internal/common/metrics"
	"shopmate-api/internal/geofilter"
	"shopmate-api/internal/models"
	"shopmate-api/internal/speech"
)

const maxBodyBytes = 1 << 20

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string            `json:"reply"`
	Pairs []models.TurnPair `json:"pairs"`
}

type historyResponse struct {
	Pairs []models.TurnPair `json:"pairs"`
}

type deleteResponse struct {
	Deleted bool              `json:"deleted"`
	Pairs   []models.TurnPair `json:"pairs"`
}

type transcribeResponse struct {
	Text  string            `json:"text"`
	Reply string            `json:"reply"`
	Pairs []models.TurnPair `json:"pairs"`
}

type nearbyRequest struct {
	Lat            *float64 `json:"lat"`
	Lng            *float64 `json:"lng"`
	MaxDistanceKm  *float64 `json:"max_distance_km"`
	MaxTimeMinutes *float64 `json:"max_time_minutes"`
}

type nearbyResponse struct {
	Origin       models.Coordinate       `json:"origin"`
	FallbackUsed bool                    `json:"fallback_used"`
	Stale        bool                    `json:"stale"`
	Thresholds   models.FilterThresholds `json:"thresholds"`
	Stores       []models.NearbyStore    `json:"stores"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	sessionID, log := s.deps.Sessions.Acquire(r.Header.Get(sessionHeader))
	w.Header().Set(sessionHeader, sessionID)

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.NewInvalidRequestError("unreadable body"))
		return
	}
	if err := validateSchema(chatRequestSchema, body); err != nil {
		writeError(w, http.StatusBadRequest, errors.NewInvalidRequestError(err.Error()))
		return
	}

	var req chatRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, errors.NewInvalidRequestError("malformed JSON"))
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		writeError(w, http.StatusBadRequest, errors.NewInvalidRequestError("message must not be blank"))
		return
	}

	reply := s.deps.Router.Answer(r.Context(), req.Message)
	log.AppendPair(req.Message, reply)

	writeJSON(w, http.StatusOK, chatResponse{Reply: reply, Pairs: log.Pairs()})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	sessionID, log := s.deps.Sessions.Acquire(r.Header.Get(sessionHeader))
	w.Header().Set(sessionHeader, sessionID)

	writeJSON(w, http.StatusOK, historyResponse{Pairs: log.Pairs()})
}

// handleDeletePair removes one exchange. The index addresses the user turn
// of the pair, matching what the history endpoint renders; out-of-range
// indexes are a no-op, not an error.
func (s *Server) handleDeletePair(w http.ResponseWriter, r *http.Request) {
	sessionID, log := s.deps.Sessions.Acquire(r.Header.Get(sessionHeader))
	w.Header().Set(sessionHeader, sessionID)

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.NewInvalidRequestError("index must be an integer"))
		return
	}

	deleted := log.DeletePair(index)
	writeJSON(w, http.StatusOK, deleteResponse{Deleted: deleted, Pairs: log.Pairs()})
}

// handleTranscribe converts one spoken utterance to text and then routes the
// transcript exactly like a typed chat message.
func (s *Server) handleTranscribe(w http.ResponseWriter, r *http.Request) {
	sessionID, log := s.deps.Sessions.Acquire(r.Header.Get(sessionHeader))
	w.Header().Set(sessionHeader, sessionID)

	audio, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil || len(audio) == 0 {
		writeError(w, http.StatusBadRequest, errors.NewInvalidRequestError("audio body required"))
		return
	}

	text, err := s.deps.Transcriber.Transcribe(r.Context(), audio, r.Header.Get("Content-Type"))
	if err != nil {
		if stderrors.Is(err, speech.ErrUnsupported) {
			writeError(w, http.StatusNotImplemented, errors.NewTranscriptionUnsupportedError())
			return
		}
		writeError(w, http.StatusBadGateway, errors.NewTranscriptionFailedError(err))
		return
	}

	reply := s.deps.Router.Answer(r.Context(), text)
	log.AppendPair(text, reply)

	writeJSON(w, http.StatusOK, transcribeResponse{Text: text, Reply: reply, Pairs: log.Pairs()})
}

func (s *Server) handleNearbyStores(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := s.deps.Sessions.Acquire(r.Header.Get(sessionHeader))
	w.Header().Set(sessionHeader, sessionID)

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.NewInvalidRequestError("unreadable body"))
		return
	}
	if len(body) == 0 {
		body = []byte("{}")
	}
	if err := validateSchema(nearbyRequestSchema, body); err != nil {
		metrics.GeofilterRequests.WithLabelValues("invalid").Inc()
		writeError(w, http.StatusBadRequest, errors.NewInvalidRequestError(err.Error()))
		return
	}

	var req nearbyRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, errors.NewInvalidRequestError("malformed JSON"))
		return
	}

	// A newer request for the same session supersedes this one; the check
	// happens after the filter runs, mirroring how a late position fix must
	// not overwrite fresher results.
	tracker := s.tracker(sessionID)
	token := tracker.Begin()

	var origin models.Coordinate
	var fellBack bool
	if req.Lat != nil && req.Lng != nil {
		origin = models.Coordinate{Lat: *req.Lat, Lng: *req.Lng}
	} else {
		origin, fellBack = s.deps.Resolver.Resolve(r.Context())
	}

	geo := *s.deps.Geo
	if req.MaxDistanceKm != nil {
		geo.MaxDistanceKm = *req.MaxDistanceKm
	}
	if req.MaxTimeMinutes != nil {
		geo.MaxTimeMinutes = *req.MaxTimeMinutes
	}
	stores := geo.Nearby(origin, geofilter.Directory)

	if !tracker.Latest(token) {
		metrics.GeofilterRequests.WithLabelValues("superseded").Inc()
		writeJSON(w, http.StatusOK, nearbyResponse{
			Origin:       origin,
			FallbackUsed: fellBack,
			Stale:        true,
			Thresholds:   geo.Thresholds(),
			Stores:       []models.NearbyStore{},
		})
		return
	}

	metrics.GeofilterRequests.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, nearbyResponse{
		Origin:       origin,
		FallbackUsed: fellBack,
		Thresholds:   geo.Thresholds(),
		Stores:       stores,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.deps.ReadyCheck != nil {
		if err := s.deps.ReadyCheck(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"reason": err.Error(),
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, stdErr *errors.StandardError) {
	if errors.IsRetryableErrorCode(stdErr.Code) {
		w.Header().Set("Retry-After", "1")
	}
	writeJSON(w, status, map[string]interface{}{
		"error":    stdErr,
		"category": errors.GetErrorCategory(stdErr.Code),
	})
}
