package vertexai

import (
	"context"
	"errors"
	"strings"

	"github.com/versemix/versemix"
	"github.com/versemix/versemix/llm"
	"github.com/versemix/versemix/pconf"
	"github.com/versemix/versemix/provider"

	"cloud.google.com/go/vertexai/genai"
)

var (
	ErrProjectIDRequired error = errors.New("project id is required")
	ErrLocationRequired  error = errors.New("location is required")
)

var _ llm.Model = (*vertexAIModel)(nil)

type vertexAIModel struct {
	client *genai.Client
	config *llm.Config
	model  string
}

func (g *vertexAIModel) Name() string {
	return g.model
}

func (g *vertexAIModel) Close() error {
	return nil
}

func convertFinishReasonVertexAI(stop_reason genai.FinishReason) llm.FinishReason {
	switch stop_reason {
	case genai.FinishReasonStop:
		return llm.FinishReasonStop
	case genai.FinishReasonMaxTokens:
		return llm.FinishReasonMaxTokens
	case genai.FinishReasonSafety,
		genai.FinishReasonBlocklist,
		genai.FinishReasonProhibitedContent,
		genai.FinishReasonSpii,
		genai.FinishReasonRecitation:
		return llm.FinishReasonSafety
	}
	return llm.FinishReasonUnknown
}

func (g *vertexAIModel) GenerateText(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	if req == nil || req.Prompt == "" {
		return nil, llm.ErrInvalidRequest
	}

	model := g.client.GenerativeModel(g.model)

	if g.config.Temperature != nil {
		model.SetTemperature(*g.config.Temperature)
	}
	if g.config.TopP != nil {
		model.SetTopP(*g.config.TopP)
	}
	if g.config.TopK != nil {
		model.SetTopK(int32(*g.config.TopK))
	}
	if g.config.MaxOutputTokens != nil {
		model.SetMaxOutputTokens(int32(*g.config.MaxOutputTokens))
	}
	if len(g.config.StopSequences) > 0 {
		model.StopSequences = g.config.StopSequences
	}
	if g.config.SystemInstruction != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(g.config.SystemInstruction)},
		}
	}

	resp, err := model.GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return nil, err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, llm.ErrNoResponse
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if t, ok := part.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}

	out := &llm.Response{
		Text:         sb.String(),
		FinishReason: convertFinishReasonVertexAI(resp.Candidates[0].FinishReason),
	}

	if resp.UsageMetadata != nil {
		out.UsageData = &llm.UsageData{
			InputTokens:  int(resp.UsageMetadata.PromptTokenCount),
			OutputTokens: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int(resp.UsageMetadata.TotalTokenCount),
		}
	}

	return out, nil
}

// =================== Client ===================

var _ provider.LLMClient = (*vertexAIClient)(nil)

type vertexAIClient struct {
	genaiClient *genai.Client

	projectID string
	location  string
}

func (g *vertexAIClient) NewLLM(model string, config *llm.Config) (llm.Model, error) {
	if config == nil {
		config = &llm.Config{}
	}

	_vm := &vertexAIModel{
		client: g.genaiClient,
		config: config,
		model:  model,
	}

	return _vm, nil
}

func (g *vertexAIClient) Close() error {
	return g.genaiClient.Close()
}

func (*vertexAIClient) Name() string {
	return ProviderName
}

// =================== Provider ===================

var _ provider.LLMProvider = Provider

type VertexAIProvider struct{}

func (VertexAIProvider) NewLLMClient(ctx context.Context, configs ...pconf.Config) (provider.LLMClient, error) {
	client_config := pconf.GeneralConfig{}
	for i := range configs {
		configs[i].Apply(&client_config)
	}

	projectID := client_config.ProjectID
	location := client_config.Location
	client_options := client_config.GoogleClientOptions

	if projectID == "" {
		return nil, ErrProjectIDRequired
	}

	if location == "" {
		return nil, ErrLocationRequired
	}

	genaiClient, err := genai.NewClient(ctx, projectID, location, client_options...)
	if err != nil {
		return nil, err
	}

	return &vertexAIClient{
		genaiClient: genaiClient,
		location:    location,
		projectID:   projectID,
	}, nil
}

// ===================== Init =====================

const ProviderName = "vertexai"

var Provider VertexAIProvider

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
