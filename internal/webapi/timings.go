package webapi

import (
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"github.com/versemix/versemix/poem"
)

type timingsRequest struct {
	Lines      []string `json:"lines"`
	DurationMS int64    `json:"duration_ms"`
}

type lineTiming struct {
	Index      int   `json:"index"`
	StartMS    int64 `json:"start_ms"`
	DurationMS int64 `json:"duration_ms"`
}

// handleTimings exposes the proportional character-count highlight
// heuristic so the front end can schedule per-line highlights.
func (s *Server) handleTimings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req timingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if len(req.Lines) == 0 || req.DurationMS <= 0 {
		writeError(w, http.StatusBadRequest, "lines and duration_ms are required")
		return
	}

	timings := poem.LineTimings(req.Lines, time.Duration(req.DurationMS)*time.Millisecond)

	out := make([]lineTiming, len(timings))
	for i, t := range timings {
		out[i] = lineTiming{
			Index:      t.Index,
			StartMS:    t.Start.Milliseconds(),
			DurationMS: t.Duration.Milliseconds(),
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

// handleMusic lists the configured background-track keys.
func (s *Server) handleMusic(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	keys := make([]string, 0, len(s.tracks))
	for k := range s.tracks {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(keys)
}
