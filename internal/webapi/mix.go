package webapi

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/versemix/versemix/internal/scratch"
)

const maxUploadBytes = 64 << 20

// handleMix implements the narration mixing pipeline: copy the upload to a
// scratch file, run the external mixer against the selected background
// track, stream the produced file back, then delete both scratch files.
// Every exit path funnels through the deferred cleanup; Remove is
// idempotent so the post-stream pass and the catch-all may overlap.
func (s *Server) handleMix(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	choice := r.FormValue("musicChoice")
	trackPath, ok := s.tracks[choice]
	if !ok {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid music choice %q", choice))
		return
	}

	upload, _, err := r.FormFile("voice_audio")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing voice_audio upload")
		return
	}
	defer upload.Close()

	// The key was valid, so a missing file is a deployment fault, not a
	// client mistake.
	if _, err := os.Stat(trackPath); err != nil {
		log.Printf("webapi: background track %q missing at %s: %v", choice, trackPath, err)
		writeError(w, http.StatusInternalServerError, "background track not available on server")
		return
	}

	narrationPath, err := s.scratch.WriteFrom(scratch.PurposeNarration, ".mp3", upload)
	if err != nil {
		log.Printf("webapi: store narration: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to store narration upload")
		return
	}
	defer s.scratch.Remove(narrationPath)

	mixPath := s.scratch.NewPath(scratch.PurposeMix, ".mp3")
	defer s.scratch.Remove(mixPath)

	if err := s.mixer.Mix(r.Context(), narrationPath, trackPath, mixPath); err != nil {
		log.Printf("webapi: mix failed: %v", err)
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("audio mixing failed: %v", err))
		return
	}

	info, err := os.Stat(mixPath)
	if err != nil {
		log.Printf("webapi: stat mix output: %v", err)
		writeError(w, http.StatusInternalServerError, "mix output missing")
		return
	}

	f, err := os.Open(mixPath)
	if err != nil {
		log.Printf("webapi: open mix output: %v", err)
		writeError(w, http.StatusInternalServerError, "mix output unreadable")
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Content-Length", fmt.Sprintf("%d", info.Size()))
	w.Header().Set("Content-Disposition", `inline; filename="final_mix.mp3"`)

	// Headers are out after the first write: a failing copy (client gone,
	// write error) can only be logged. Cleanup still runs via the defers.
	if _, err := io.Copy(w, f); err != nil {
		log.Printf("webapi: stream mix: %v", err)
	}

	// Give lingering file handles a moment before the deferred deletes.
	if s.cleanupDelay > 0 {
		time.Sleep(s.cleanupDelay)
	}
}
