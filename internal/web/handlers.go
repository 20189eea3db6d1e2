// internal/web/handlers.go
package web

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tamzrod/siren-display/internal/logfields"
	"github.com/tamzrod/siren-display/internal/region"
)

// SnapshotResponse is the /snapshot body. Only Available is set for
// the no-connection state.
type SnapshotResponse struct {
	Available bool             `json:"available"`
	At        *time.Time       `json:"at,omitempty"`
	Regions   *region.Snapshot `json:"regions,omitempty"`
	Counts    *region.Counts   `json:"counts,omitempty"`
}

type healthResponse struct {
	Status     string `json:"status"`
	Dispatched bool   `json:"dispatched"`
	Available  bool   `json:"available"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	snap, _, dispatched := s.current()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:     "healthy",
		Dispatched: dispatched,
		Available:  snap != nil,
	})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, _ *http.Request) {
	snap, at, dispatched := s.current()
	if snap == nil {
		writeJSON(w, http.StatusOK, SnapshotResponse{Available: false})
		return
	}

	counts := region.Tally(snap, s.universe)
	resp := SnapshotResponse{
		Available: true,
		Regions:   snap,
		Counts:    &counts,
	}
	if dispatched {
		resp.At = &at
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	f, ok := s.currentFrame()
	if !ok {
		http.Error(w, "no frame composed yet", http.StatusServiceUnavailable)
		return
	}

	var img image.Image
	switch chi.URLParam(r, "layer") {
	case "base":
		img = f.Base.Gray()
	case "accent":
		img = f.Accent.Gray()
	case "preview":
		img = f.Preview()
	default:
		http.NotFound(w, r)
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		s.log.Error("frame encode failed", logfields.Path(r.URL.Path), logfields.Error(err))
		http.Error(w, "encode failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
