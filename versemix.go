package versemix

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/versemix/versemix/pconf"
	"github.com/versemix/versemix/provider"
)

var (
	llmProvidersMu sync.RWMutex
	llmProviders   = make(map[string]provider.LLMProvider)

	ttsProvidersMu sync.RWMutex
	ttsProviders   = make(map[string]provider.TTSProvider)
)

var ErrNoSuchProvider = errors.New("no such provider")

// LLMProviders returns the names of the registered llm providers.
func LLMProviders() []string {
	llmProvidersMu.RLock()
	defer llmProvidersMu.RUnlock()
	list := make([]string, 0, len(llmProviders))
	for name := range llmProviders {
		list = append(list, name)
	}
	sort.Strings(list)
	return list
}

// RegisterLLMProvider registers a llm provider.
func RegisterLLMProvider(name string, p provider.LLMProvider) {
	llmProvidersMu.Lock()
	defer llmProvidersMu.Unlock()
	llmProviders[name] = p
}

// NewLLMClient creates a client from the named llm provider.
func NewLLMClient(ctx context.Context, name string, configs ...pconf.Config) (provider.LLMClient, error) {
	llmProvidersMu.RLock()
	p, ok := llmProviders[name]
	llmProvidersMu.RUnlock()
	if !ok {
		return nil, ErrNoSuchProvider
	}
	return p.NewLLMClient(ctx, configs...)
}

// TTSProviders returns the names of the registered tts providers.
func TTSProviders() []string {
	ttsProvidersMu.RLock()
	defer ttsProvidersMu.RUnlock()
	list := make([]string, 0, len(ttsProviders))
	for name := range ttsProviders {
		list = append(list, name)
	}
	sort.Strings(list)
	return list
}

// RegisterTTSProvider registers a tts provider.
func RegisterTTSProvider(name string, p provider.TTSProvider) {
	ttsProvidersMu.Lock()
	defer ttsProvidersMu.Unlock()
	ttsProviders[name] = p
}

// NewTTSClient creates a client from the named tts provider.
func NewTTSClient(ctx context.Context, name string, configs ...pconf.Config) (provider.TTSClient, error) {
	ttsProvidersMu.RLock()
	p, ok := ttsProviders[name]
	ttsProvidersMu.RUnlock()
	if !ok {
		return nil, ErrNoSuchProvider
	}
	return p.NewTTSClient(ctx, configs...)
}
