package webapi

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
)

type speechRequest struct {
	Text string `json:"text"`
}

func (s *Server) handleSpeech(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if s.speech == nil {
		writeError(w, http.StatusServiceUnavailable, "speech synthesis not configured")
		return
	}

	var req speechRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	audio, err := s.speech.GenerateSpeech(r.Context(), req.Text)
	if err != nil {
		log.Printf("webapi: speech synthesis: %v", err)
		writeError(w, http.StatusInternalServerError, "speech synthesis failed")
		return
	}

	if len(audio.Data) == 0 {
		writeError(w, http.StatusInternalServerError, "speech synthesis returned no audio")
		return
	}

	w.Header().Set("Content-Type", string(audio.Format))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(audio.Data)))
	if _, err := w.Write(audio.Data); err != nil {
		log.Printf("webapi: stream speech: %v", err)
	}
}
