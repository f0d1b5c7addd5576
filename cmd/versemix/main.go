package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/versemix/versemix"
	"github.com/versemix/versemix/internal/config"
	"github.com/versemix/versemix/internal/mixer"
	"github.com/versemix/versemix/internal/scratch"
	"github.com/versemix/versemix/internal/webapi"
	"github.com/versemix/versemix/llm"
	"github.com/versemix/versemix/pconf"
	"github.com/versemix/versemix/poem"
	"github.com/versemix/versemix/tts"
	"github.com/versemix/versemix/web"

	_ "github.com/versemix/versemix/provider/aistudio"
	_ "github.com/versemix/versemix/provider/anthropic"
	_ "github.com/versemix/versemix/provider/elevenlabs"
	_ "github.com/versemix/versemix/provider/ollama"
	_ "github.com/versemix/versemix/provider/openai"
	_ "github.com/versemix/versemix/provider/vertexai"
)

// providerConfigs assembles the pconf options for a provider from the
// environment. Keys live in the environment (or .env), never in the YAML.
func providerConfigs(name string) []pconf.Config {
	switch name {
	case "openai":
		return []pconf.Config{pconf.WithAPIKey(os.Getenv("OPENAI_API_KEY"))}
	case "aistudio":
		return []pconf.Config{pconf.WithAPIKey(os.Getenv("GEMINI_API_KEY"))}
	case "anthropic":
		return []pconf.Config{pconf.WithAPIKey(os.Getenv("ANTHROPIC_API_KEY"))}
	case "elevenlabs":
		return []pconf.Config{pconf.WithAPIKey(os.Getenv("ELEVENLABS_API_KEY"))}
	case "vertexai":
		return []pconf.Config{
			pconf.WithProjectID(os.Getenv("VERTEXAI_PROJECT_ID")),
			pconf.WithLocation(os.Getenv("VERTEXAI_LOCATION")),
		}
	}
	return nil
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML configuration file")
	flag.Parse()

	godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	llmClient, err := versemix.NewLLMClient(ctx, cfg.LLM.Provider, providerConfigs(cfg.LLM.Provider)...)
	if err != nil {
		log.Fatalf("llm provider %q: %v", cfg.LLM.Provider, err)
	}
	defer llmClient.Close()

	llmModel, err := llmClient.NewLLM(cfg.LLM.Model, &llm.Config{})
	if err != nil {
		log.Fatalf("llm model %q: %v", cfg.LLM.Model, err)
	}
	defer llmModel.Close()

	ttsClient, err := versemix.NewTTSClient(ctx, cfg.TTS.Provider, providerConfigs(cfg.TTS.Provider)...)
	if err != nil {
		log.Fatalf("tts provider %q: %v", cfg.TTS.Provider, err)
	}
	defer ttsClient.Close()

	ttsModel, err := ttsClient.NewTTS(cfg.TTS.Model, &tts.Config{
		VoiceID:  cfg.TTS.VoiceID,
		Language: cfg.TTS.Language,
		Format:   tts.FormatMP3,
	})
	if err != nil {
		log.Fatalf("tts model %q: %v", cfg.TTS.Model, err)
	}

	scratchMgr, err := scratch.NewManager(cfg.ScratchDir)
	if err != nil {
		log.Fatalf("scratch dir: %v", err)
	}

	srv := webapi.NewServer(webapi.Options{
		Tracks:       cfg.Music,
		Scratch:      scratchMgr,
		Mixer:        &mixer.FFmpeg{},
		Composer:     poem.NewComposer(llmModel),
		Speech:       ttsModel,
		CleanupDelay: cfg.CleanupDelay(),
		Static:       web.FS,
	})

	server := &http.Server{Addr: cfg.ListenAddr, Handler: srv.Handler()}

	go func() {
		<-ctx.Done()
		log.Println("Shutting down...")
		server.Close()
	}()

	log.Printf("versemix live on %s (llm=%s/%s tts=%s/%s)",
		cfg.ListenAddr, cfg.LLM.Provider, cfg.LLM.Model, cfg.TTS.Provider, cfg.TTS.Model)
	if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("HTTP server error: %v", err)
	}
}
