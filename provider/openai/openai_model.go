package openai

import (
	"context"

	"github.com/versemix/versemix/llm"

	"github.com/sashabaranov/go-openai"
)

var _ llm.Model = (*openAIModel)(nil)

type openAIModel struct {
	client *openai.Client
	config *llm.Config
	model  string
}

func (g *openAIModel) Name() string {
	return g.model
}

func (g *openAIModel) Close() error {
	return nil
}

func convertFinishReasonOpenAI(stop openai.FinishReason) llm.FinishReason {
	switch stop {
	case openai.FinishReasonStop:
		return llm.FinishReasonStop
	case openai.FinishReasonLength:
		return llm.FinishReasonMaxTokens
	case openai.FinishReasonContentFilter:
		return llm.FinishReasonSafety
	}
	return llm.FinishReasonUnknown
}

func (g *openAIModel) GenerateText(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	if req == nil || req.Prompt == "" {
		return nil, llm.ErrInvalidRequest
	}

	var messages []openai.ChatCompletionMessage
	if g.config.SystemInstruction != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: g.config.SystemInstruction,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	model_request := openai.ChatCompletionRequest{
		Model:    g.model,
		Messages: messages,
		Stop:     g.config.StopSequences,
	}

	if g.config.Temperature != nil {
		model_request.Temperature = *g.config.Temperature
	}
	if g.config.TopP != nil {
		model_request.TopP = *g.config.TopP
	}
	if g.config.MaxOutputTokens != nil {
		model_request.MaxTokens = *g.config.MaxOutputTokens
	}

	resp, err := g.client.CreateChatCompletion(ctx, model_request)
	if err != nil {
		return nil, err
	}

	if len(resp.Choices) == 0 {
		return nil, llm.ErrNoResponse
	}

	return &llm.Response{
		Text:         resp.Choices[0].Message.Content,
		FinishReason: convertFinishReasonOpenAI(resp.Choices[0].FinishReason),
		UsageData: &llm.UsageData{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
			TotalTokens:  resp.Usage.TotalTokens,
		},
	}, nil
}

func (g *OpenAIClient) NewLLM(model string, config *llm.Config) (llm.Model, error) {
	if config == nil {
		config = &llm.Config{}
	}

	_vm := &openAIModel{
		client: g.client,
		config: config,
		model:  model,
	}

	return _vm, nil
}
