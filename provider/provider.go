package provider

import (
	"context"

	"github.com/versemix/versemix/llm"
	"github.com/versemix/versemix/pconf"
	"github.com/versemix/versemix/tts"
)

type LLMClient interface {
	NewLLM(model string, config *llm.Config) (llm.Model, error)
	Close() error
	Name() string
}

type LLMProvider interface {
	NewLLMClient(ctx context.Context, configs ...pconf.Config) (LLMClient, error)
}

type TTSClient interface {
	NewTTS(model string, config *tts.Config) (tts.Model, error)
	Close() error
	Name() string
}

type TTSProvider interface {
	NewTTSClient(ctx context.Context, configs ...pconf.Config) (TTSClient, error)
}
