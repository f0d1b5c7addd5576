package ollama

import (
	"context"
	"net"
	"net/http"
	"net/url"
	"strings"

	"github.com/versemix/versemix"
	"github.com/versemix/versemix/llm"
	"github.com/versemix/versemix/pconf"
	"github.com/versemix/versemix/provider"

	ollama "github.com/ollama/ollama/api"
)

var _ llm.Model = (*ollamaModel)(nil)

type ollamaModel struct {
	client *ollama.Client
	config *llm.Config
	model  string
}

func (g *ollamaModel) Name() string {
	return g.model
}

func (g *ollamaModel) Close() error {
	return nil
}

func ptrify[T any](v T) *T {
	return &v
}

var defaultOllamaConfig = &llm.Config{
	Temperature:     ptrify(float32(0.8)),
	MaxOutputTokens: ptrify(2048),
}

func (g *ollamaModel) GenerateText(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	if req == nil || req.Prompt == "" {
		return nil, llm.ErrInvalidRequest
	}

	if err := g.client.Heartbeat(ctx); err != nil {
		return nil, err
	}

	messages := make([]ollama.Message, 0, 2)
	if g.config.SystemInstruction != "" {
		messages = append(messages, ollama.Message{
			Role:    "system",
			Content: g.config.SystemInstruction,
		})
	}
	messages = append(messages, ollama.Message{
		Role:    "user",
		Content: req.Prompt,
	})

	options := make(map[string]interface{})
	if g.config.Temperature != nil {
		options["temperature"] = *g.config.Temperature
	}
	if g.config.TopP != nil {
		options["top_p"] = *g.config.TopP
	}
	if g.config.TopK != nil {
		options["top_k"] = *g.config.TopK
	}
	if g.config.MaxOutputTokens != nil {
		options["num_predict"] = *g.config.MaxOutputTokens
	}
	if len(g.config.StopSequences) > 0 {
		options["stop"] = g.config.StopSequences
	}

	model_request := &ollama.ChatRequest{
		Model:    g.model,
		Messages: messages,
		Stream:   ptrify(false),
		Options:  options,
	}

	var sb strings.Builder
	var usage *llm.UsageData

	err := g.client.Chat(ctx, model_request, func(cr ollama.ChatResponse) error {
		sb.WriteString(cr.Message.Content)
		if cr.Done {
			usage = &llm.UsageData{
				InputTokens:  cr.Metrics.PromptEvalCount,
				OutputTokens: cr.Metrics.EvalCount,
				TotalTokens:  cr.Metrics.PromptEvalCount + cr.Metrics.EvalCount,
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if sb.Len() == 0 {
		return nil, llm.ErrNoResponse
	}

	return &llm.Response{
		Text:         sb.String(),
		FinishReason: llm.FinishReasonStop,
		UsageData:    usage,
	}, nil
}

// =================== Client ===================

var _ provider.LLMClient = (*OllamaClient)(nil)

type OllamaClient struct {
	client *ollama.Client
}

func (g *OllamaClient) NewLLM(model string, config *llm.Config) (llm.Model, error) {
	if config == nil {
		config = defaultOllamaConfig
	}

	var _vm = &ollamaModel{
		client: g.client,
		model:  model,
		config: config,
	}

	return _vm, nil
}

func (*OllamaClient) Close() error {
	return nil
}

func (*OllamaClient) Name() string {
	return ProviderName
}

// =================== Provider ===================

var _ provider.LLMProvider = Provider

type OllamaProvider struct {
}

func (OllamaProvider) NewLLMClient(ctx context.Context, configs ...pconf.Config) (provider.LLMClient, error) {
	client_config := pconf.GeneralConfig{}
	for i := range configs {
		configs[i].Apply(&client_config)
	}

	if client_config.BaseURL != "" {
		base, err := url.Parse(client_config.BaseURL)
		if err != nil {
			return nil, err
		}
		return &OllamaClient{
			client: ollama.NewClient(base, http.DefaultClient),
		}, nil
	}

	host, err := getOllamaHost()
	if err != nil {
		return nil, err
	}

	return &OllamaClient{
		client: ollama.NewClient(&url.URL{Scheme: host.Scheme, Host: net.JoinHostPort(host.Host, host.Port)}, http.DefaultClient),
	}, nil
}

// ===================== Init =====================

const ProviderName = "ollama"

var Provider OllamaProvider

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
