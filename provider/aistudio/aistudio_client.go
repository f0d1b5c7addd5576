package aistudio

import (
	"context"
	"errors"

	"github.com/versemix/versemix"
	"github.com/versemix/versemix/pconf"
	"github.com/versemix/versemix/provider"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

var (
	ErrAPIKeyRequired error = errors.New("api key is required")
)

type AIStudioClient struct {
	client *genai.Client
}

var _ provider.LLMClient = (*AIStudioClient)(nil)

func (g *AIStudioClient) Close() error {
	return g.client.Close()
}

func (*AIStudioClient) Name() string {
	return ProviderName
}

// =================== Provider ===================

type AIStudioProvider struct{}

var _ provider.LLMProvider = Provider

func (AIStudioProvider) NewLLMClient(ctx context.Context, configs ...pconf.Config) (provider.LLMClient, error) {
	client_config := pconf.GeneralConfig{}
	for i := range configs {
		configs[i].Apply(&client_config)
	}

	if client_config.APIKey == "" {
		return nil, ErrAPIKeyRequired
	}

	opts := append([]option.ClientOption{option.WithAPIKey(client_config.APIKey)}, client_config.GoogleClientOptions...)

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}

	return &AIStudioClient{
		client: client,
	}, nil
}

// ===================== Init =====================

const ProviderName = "aistudio"

var Provider AIStudioProvider

func init() {
	var exists bool
	for _, n := range versemix.LLMProviders() {
		if n == ProviderName {
			exists = true
			break
		}
	}
	if !exists {
		versemix.RegisterLLMProvider(ProviderName, Provider)
	}
}
