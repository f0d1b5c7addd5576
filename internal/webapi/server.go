// Package webapi is the HTTP surface of versemix: poem generation, speech
// synthesis, the narration mixing endpoint, and the static front end.
package webapi

import (
	"io/fs"
	"log"
	"net/http"
	"time"

	"github.com/versemix/versemix/internal/mixer"
	"github.com/versemix/versemix/internal/scratch"
	"github.com/versemix/versemix/poem"
	"github.com/versemix/versemix/tts"
)

type Server struct {
	tracks   map[string]string
	scratch  *scratch.Manager
	mixer    mixer.Mixer
	composer *poem.Composer
	speech   tts.Model

	cleanupDelay time.Duration

	static fs.FS
}

type Options struct {
	// Tracks maps musicChoice keys to server-local audio files.
	Tracks map[string]string

	Scratch  *scratch.Manager
	Mixer    mixer.Mixer
	Composer *poem.Composer
	Speech   tts.Model

	// CleanupDelay is waited between stream completion and scratch
	// deletion.
	CleanupDelay time.Duration

	// Static holds the front-end files; nil disables static serving.
	Static fs.FS
}

func NewServer(opts Options) *Server {
	return &Server{
		tracks:       opts.Tracks,
		scratch:      opts.Scratch,
		mixer:        opts.Mixer,
		composer:     opts.Composer,
		speech:       opts.Speech,
		cleanupDelay: opts.CleanupDelay,
		static:       opts.Static,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/mix", s.handleMix)
	mux.HandleFunc("/api/poem", s.handlePoem)
	mux.HandleFunc("/api/speech", s.handleSpeech)
	mux.HandleFunc("/api/timings", s.handleTimings)
	mux.HandleFunc("/api/music", s.handleMusic)

	if s.static != nil {
		mux.Handle("/", http.FileServer(http.FS(s.static)))
	}

	return recoverer(mux)
}

// recoverer maps panics escaping a handler to a generic 500. Scratch
// cleanup is not its job: handler defers already ran during unwinding.
func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("webapi: panic serving %s: %v", r.URL.Path, rec)
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}
