// Package httpctl exposes a stride.Tracker over HTTP: start, stop and
// reset triggers, the current display, the accepted track as GeoJSON,
// and an ingest endpoint for clients that push their own fixes.
package httpctl

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/zoobzio/stride"
)

// MaxFixPayload bounds the size of a POST /fixes body.
const MaxFixPayload = 1 << 20

// Status is the JSON body returned by the tracking endpoints.
type Status struct {
	State     string           `json:"state"`
	Display   string           `json:"display"`
	DistanceM float64          `json:"distance_m"`
	SessionID string           `json:"session_id"`
	LastFix   *stride.GeoPoint `json:"last_fix,omitempty"`
}

// Handler serves the tracking endpoints for one tracker.
type Handler struct {
	tracker *stride.Tracker
	ingest  *IngestProvider
}

// NewRouter builds the router for tracker. When ingest is non-nil,
// POST /fixes feeds it.
//
//	POST /tracking/start
//	POST /tracking/stop
//	POST /tracking/reset
//	GET  /tracking
//	GET  /tracking/track
//	POST /fixes
//	GET  /healthz
func NewRouter(tracker *stride.Tracker, ingest *IngestProvider) *mux.Router {
	h := &Handler{tracker: tracker, ingest: ingest}

	r := mux.NewRouter()
	r.HandleFunc("/tracking", h.Status).Methods("GET")

	tr := r.PathPrefix("/tracking").Subrouter()
	tr.HandleFunc("/start", h.Start).Methods("POST")
	tr.HandleFunc("/stop", h.Stop).Methods("POST")
	tr.HandleFunc("/reset", h.Reset).Methods("POST")
	tr.HandleFunc("/track", h.Track).Methods("GET")

	if ingest != nil {
		r.HandleFunc("/fixes", h.Ingest).Methods("POST")
	}

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods("GET")

	return r
}

// Start begins tracking. A refused permission maps to 403 and a failed
// subscription to 502.
func (h *Handler) Start(w http.ResponseWriter, r *http.Request) {
	if err := h.tracker.Start(r.Context()); err != nil {
		code := http.StatusBadGateway
		if errors.Is(err, stride.ErrPermissionDenied) {
			code = http.StatusForbidden
		}
		http.Error(w, err.Error(), code)
		return
	}
	h.writeStatus(w, http.StatusOK)
}

// Stop pauses tracking.
func (h *Handler) Stop(w http.ResponseWriter, r *http.Request) {
	h.tracker.Stop(r.Context())
	h.writeStatus(w, http.StatusOK)
}

// Reset clears the session.
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	h.tracker.Reset(r.Context())
	h.writeStatus(w, http.StatusOK)
}

// Status reports the tracker's current state.
func (h *Handler) Status(w http.ResponseWriter, _ *http.Request) {
	h.writeStatus(w, http.StatusOK)
}

// Track returns the accepted track as a GeoJSON Feature.
func (h *Handler) Track(w http.ResponseWriter, _ *http.Request) {
	body, err := h.tracker.GeoJSON()
	if err != nil {
		http.Error(w, "geojson error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

// Ingest accepts a single fix or an array of fixes and delivers them to
// the active subscription.
func (h *Handler) Ingest(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxFixPayload))
	if err != nil {
		http.Error(w, "payload too large", http.StatusRequestEntityTooLarge)
		return
	}

	batch, err := stride.DecodeBatch(stride.JSONCodec{}, data)
	if err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if len(batch) == 0 {
		http.Error(w, "empty batch", http.StatusBadRequest)
		return
	}

	if err := h.ingest.Push(r.Context(), batch); err != nil {
		if errors.Is(err, ErrNotSubscribed) {
			http.Error(w, err.Error(), http.StatusConflict)
			return
		}
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	_ = json.NewEncoder(w).Encode(map[string]any{"status": "ok", "accepted": len(batch)})
}

func (h *Handler) writeStatus(w http.ResponseWriter, code int) {
	status := Status{
		State:     h.tracker.State().String(),
		Display:   h.tracker.Display(),
		DistanceM: h.tracker.Distance(),
		SessionID: h.tracker.SessionID(),
	}
	if last, ok := h.tracker.LastFix(); ok {
		status.LastFix = &last
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(status)
}
