package anthropic

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/versemix/versemix"
	"github.com/versemix/versemix/llm"
	"github.com/versemix/versemix/pconf"
	"github.com/versemix/versemix/provider"

	"github.com/valyala/fastjson"
)

var (
	ErrAPIKeyRequired error = errors.New("api key is required")
)

var _ llm.Model = (*anthropicModel)(nil)

type anthropicModel struct {
	client *anthropicAPIClient
	config *llm.Config
	model  string
}

func (g *anthropicModel) Name() string {
	return g.model
}

func (g *anthropicModel) Close() error {
	return nil
}

func convertFinishReasonAnthropic(stop anthropicStopReason) llm.FinishReason {
	switch stop {
	case stopEndTurn, stopStopSequence:
		return llm.FinishReasonStop
	case stopMaxTokens:
		return llm.FinishReasonMaxTokens
	}
	return llm.FinishReasonUnknown
}

func getErrorByStatus(status int) error {
	switch status {
	case http.StatusBadRequest:
		return llm.ErrInvalidRequest
	case http.StatusUnauthorized:
		return llm.ErrAuthentication
	case http.StatusForbidden:
		return llm.ErrPermission
	case http.StatusNotFound:
		return llm.ErrNotFound
	case http.StatusTooManyRequests:
		return llm.ErrRateLimit
	case http.StatusInternalServerError:
		return llm.ErrInternalServer
	case http.StatusServiceUnavailable, 529:
		return llm.ErrOverloaded
	}
	return llm.ErrUnknown
}

const defaultMaxTokens = 2048

func (g *anthropicModel) GenerateText(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	if req == nil || req.Prompt == "" {
		return nil, llm.ErrInvalidRequest
	}

	maxTokens := defaultMaxTokens
	if g.config.MaxOutputTokens != nil {
		maxTokens = *g.config.MaxOutputTokens
	}

	model_request := &anthropicCreateMessagesRequest{
		Model: g.model,
		Messages: []anthropicMessage{
			{
				Role: anthropicRoleUser,
				Content: []anthropicSegment{
					{Type: "text", Text: req.Prompt},
				},
			},
		},
		MaxTokens:     maxTokens,
		SystemPrompt:  g.config.SystemInstruction,
		StopSequences: g.config.StopSequences,
		Temperature:   g.config.Temperature,
		TopP:          g.config.TopP,
		TopK:          g.config.TopK,
		Stream:        false,
	}

	body, status, err := g.client.createMessages(ctx, model_request)
	if err != nil {
		return nil, err
	}

	var parser fastjson.Parser
	v, err := parser.ParseBytes(body)
	if err != nil {
		return nil, llm.ErrInvalidResponse
	}

	if status != http.StatusOK {
		if msg := v.GetStringBytes("error", "message"); len(msg) > 0 {
			return nil, errors.Join(getErrorByStatus(status), errors.New(string(msg)))
		}
		return nil, getErrorByStatus(status)
	}

	var sb strings.Builder
	for _, seg := range v.GetArray("content") {
		if string(seg.GetStringBytes("type")) == "text" {
			sb.Write(seg.GetStringBytes("text"))
		}
	}

	if sb.Len() == 0 {
		return nil, llm.ErrNoResponse
	}

	out := &llm.Response{
		Text:         sb.String(),
		FinishReason: convertFinishReasonAnthropic(anthropicStopReason(v.GetStringBytes("stop_reason"))),
	}

	if usage := v.Get("usage"); usage != nil {
		in := usage.GetInt("input_tokens")
		outTok := usage.GetInt("output_tokens")
		out.UsageData = &llm.UsageData{
			InputTokens:  in,
			OutputTokens: outTok,
			TotalTokens:  in + outTok,
		}
	}

	return out, nil
}

// =================== Client ===================

var _ provider.LLMClient = (*AnthropicClient)(nil)

type AnthropicClient struct {
	client *anthropicAPIClient
}

func (g *AnthropicClient) NewLLM(model string, config *llm.Config) (llm.Model, error) {
	if config == nil {
		config = &llm.Config{}
	}

	_vm := &anthropicModel{
		client: g.client,
		config: config,
		model:  model,
	}

	return _vm, nil
}

func (*AnthropicClient) Close() error {
	return nil
}

func (*AnthropicClient) Name() string {
	return ProviderName
}

// =================== Provider ===================

var _ provider.LLMProvider = Provider

type AnthropicProvider struct{}

func (AnthropicProvider) NewLLMClient(ctx context.Context, configs ...pconf.Config) (provider.LLMClient, error) {
	client_config := pconf.GeneralConfig{}
	for i := range configs {
		configs[i].Apply(&client_config)
	}

	if client_config.APIKey == "" {
		return nil, ErrAPIKeyRequired
	}

	_client, err := newClient(client_config.APIKey)
	if err != nil {
		return nil, err
	}

	if client_config.BaseURL != "" {
		_client.baseURL = client_config.BaseURL
	}

	return &AnthropicClient{
		client: _client,
	}, nil
}

// ===================== Init =====================

const ProviderName = "anthropic"

var Provider AnthropicProvider

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
