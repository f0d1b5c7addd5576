package aistudio

import (
	"context"
	"strings"

	"github.com/versemix/versemix/llm"

	"github.com/google/generative-ai-go/genai"
)

var _ llm.Model = (*aiStudioModel)(nil)

type aiStudioModel struct {
	client *genai.Client
	config *llm.Config
	model  string
}

func (g *aiStudioModel) Name() string {
	return g.model
}

func (g *aiStudioModel) Close() error {
	return nil
}

func convertFinishReasonAIStudio(stop genai.FinishReason) llm.FinishReason {
	switch stop {
	case genai.FinishReasonStop:
		return llm.FinishReasonStop
	case genai.FinishReasonMaxTokens:
		return llm.FinishReasonMaxTokens
	case genai.FinishReasonSafety, genai.FinishReasonRecitation:
		return llm.FinishReasonSafety
	}
	return llm.FinishReasonUnknown
}

func (g *aiStudioModel) GenerateText(ctx context.Context, req *llm.Request) (*llm.Response, error) {
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
		FinishReason: convertFinishReasonAIStudio(resp.Candidates[0].FinishReason),
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

func (g *AIStudioClient) NewLLM(model string, config *llm.Config) (llm.Model, error) {
	if config == nil {
		config = &llm.Config{}
	}

	_vm := &aiStudioModel{
		client: g.client,
		config: config,
		model:  model,
	}

	return _vm, nil
}
