// Package config loads the server configuration from a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"
)

type LLMConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
}

type TTSConfig struct {
	Provider string `yaml:"provider"`
	Model    string `yaml:"model"`
	VoiceID  string `yaml:"voice_id"`
	Language string `yaml:"language"`
}

type Config struct {
	ListenAddr string `yaml:"listen_addr"`
	ScratchDir string `yaml:"scratch_dir"`

	// Music maps a client-visible selection key to a server-local file.
	Music map[string]string `yaml:"music"`

	// CleanupDelayMS is the pause between "response fully streamed" and
	// scratch-file deletion, dodging lingering file handles on some
	// platforms. Best-effort, not load-bearing.
	CleanupDelayMS int `yaml:"cleanup_delay_ms"`

	LLM LLMConfig `yaml:"llm"`
	TTS TTSConfig `yaml:"tts"`
}

var ErrNoMusic = errors.New("config: no music tracks configured")

func Default() Config {
	return Config{
		ListenAddr:     ":8080",
		ScratchDir:     "scratch",
		CleanupDelayMS: 150,
		LLM: LLMConfig{
			Provider: "openai",
			Model:    "gpt-4o-mini",
		},
		TTS: TTSConfig{
			Provider: "openai",
			Model:    "tts-1",
		},
	}
}

// Load reads the YAML file at path over the defaults. Track files are not
// existence-checked here; that happens per request.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		return errors.New("config: listen_addr is empty")
	}
	if c.ScratchDir == "" {
		return errors.New("config: scratch_dir is empty")
	}
	if len(c.Music) == 0 {
		return ErrNoMusic
	}
	return nil
}

func (c *Config) CleanupDelay() time.Duration {
	if c.CleanupDelayMS < 0 {
		return 0
	}
	return time.Duration(c.CleanupDelayMS) * time.Millisecond
}
