package openai

import (
	"context"
	"errors"

	"github.com/versemix/versemix"
	"github.com/versemix/versemix/pconf"
	"github.com/versemix/versemix/provider"

	"github.com/sashabaranov/go-openai"
)

var (
	ErrAPIKeyRequired error = errors.New("api key is required")
)

type OpenAIClient struct {
	client *openai.Client
}

var _ provider.LLMClient = (*OpenAIClient)(nil)
var _ provider.TTSClient = (*OpenAIClient)(nil)

func (*OpenAIClient) Close() error {
	return nil
}

func (*OpenAIClient) Name() string {
	return ProviderName
}

type openaiConfig func(*OpenAIClient) error

func (openaiConfig) Apply(*pconf.GeneralConfig) error {
	return nil
}

func WithAzureConfig(apiKey, baseURL string) pconf.Config {
	return WithOpenAIConfig(openai.DefaultAzureConfig(apiKey, baseURL))
}

func WithOpenAIConfig(config openai.ClientConfig) pconf.Config {
	return WithOpenAIClient(openai.NewClientWithConfig(config))
}

func WithOpenAIClient(client *openai.Client) pconf.Config {
	return openaiConfig(func(c *OpenAIClient) error {
		c.client = client
		return nil
	})
}

func newClient(configs ...pconf.Config) (*OpenAIClient, error) {
	client_config := pconf.GeneralConfig{}
	var openai_client OpenAIClient
	for i := range configs {
		switch v := configs[i].(type) {
		case openaiConfig:
			if err := v(&openai_client); err != nil {
				return nil, err
			}
		default:
			configs[i].Apply(&client_config)
		}
	}

	if openai_client.client != nil {
		return &openai_client, nil
	}

	if client_config.APIKey == "" {
		return nil, ErrAPIKeyRequired
	}

	openai_config := openai.DefaultConfig(client_config.APIKey)
	if client_config.BaseURL != "" {
		openai_config.BaseURL = client_config.BaseURL
	}

	openai_client.client = openai.NewClientWithConfig(openai_config)
	return &openai_client, nil
}

// =================== Provider ===================

type OpenAIProvider struct{}

var _ provider.LLMProvider = Provider
var _ provider.TTSProvider = Provider

func (OpenAIProvider) NewLLMClient(ctx context.Context, configs ...pconf.Config) (provider.LLMClient, error) {
	return newClient(configs...)
}

func (OpenAIProvider) NewTTSClient(ctx context.Context, configs ...pconf.Config) (provider.TTSClient, error) {
	return newClient(configs...)
}

// ===================== Init =====================

const ProviderName = "openai"

var Provider OpenAIProvider

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
		versemix.RegisterTTSProvider(ProviderName, Provider)
	}
}
