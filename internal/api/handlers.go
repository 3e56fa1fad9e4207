// FlickPicks - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/flickpicks

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/flickpicks/internal/recommend"
)

// StatusProvider reports engine state. *recommend.Engine satisfies it.
type StatusProvider interface {
	Status() recommend.Status
}

// Handler serves the ops endpoints.
type Handler struct {
	engine    StatusProvider
	version   string
	startTime time.Time
}

// NewHandler creates a handler for engine.
func NewHandler(engine StatusProvider, version string) *Handler {
	return &Handler{engine: engine, version: version, startTime: time.Now()}
}

// LiveResponse is the /healthz payload.
type LiveResponse struct {
	Alive         bool    `json:"alive"`
	Version       string  `json:"version"`
	UptimeSeconds float64 `json:"uptime_seconds"`
}

// ReadyResponse is the /readyz payload.
type ReadyResponse struct {
	Ready         bool   `json:"ready"`
	CorpusVersion string `json:"corpus_version,omitempty"`
	CorpusSize    int    `json:"corpus_size"`
}

// Healthz reports that the process is up, whatever the engine state.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, LiveResponse{
		Alive:         true,
		Version:       h.version,
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	})
}

// Readyz reports whether a snapshot is loaded.
func (h *Handler) Readyz(w http.ResponseWriter, r *http.Request) {
	st := h.engine.Status()
	if !st.Ready {
		respondError(w, r, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "no snapshot loaded")
		return
	}
	respondJSON(w, r, http.StatusOK, ReadyResponse{
		Ready:         true,
		CorpusVersion: st.CorpusVersion,
		CorpusSize:    st.CorpusSize,
	})
}

// Status returns the full engine status.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, h.engine.Status())
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusNotFound, ErrCodeNotFound, "no such endpoint")
}

func (h *Handler) methodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "method not allowed")
}
