package webapi

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/versemix/versemix/poem"
)

type poemRequest struct {
	Text string `json:"text"`
}

type poemResponse struct {
	Poem  string   `json:"poem"`
	Lines []string `json:"lines"`
}

func (s *Server) handlePoem(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if s.composer == nil {
		writeError(w, http.StatusServiceUnavailable, "poem generation not configured")
		return
	}

	var req poemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	p, err := s.composer.Compose(r.Context(), req.Text)
	if err != nil {
		if errors.Is(err, poem.ErrEmptyInput) {
			writeError(w, http.StatusBadRequest, "text is required")
			return
		}
		log.Printf("webapi: poem generation: %v", err)
		writeError(w, http.StatusInternalServerError, "poem generation failed")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(poemResponse{Poem: p.Text, Lines: p.Lines})
}
