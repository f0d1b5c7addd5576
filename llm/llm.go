package llm

import (
	"context"
)

type UsageData struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

type FinishReason string

const (
	FinishReasonUnknown   = FinishReason("unknown")
	FinishReasonError     = FinishReason("error")
	FinishReasonSafety    = FinishReason("safety")
	FinishReasonStop      = FinishReason("stop")
	FinishReasonMaxTokens = FinishReason("max_tokens")
)

// Request is a single-turn text generation request.
type Request struct {
	Prompt string `json:"prompt"`
}

// Response carries the generated text plus completion metadata.
// UsageData is not available for all providers.
type Response struct {
	Text         string       `json:"text"`
	FinishReason FinishReason `json:"finishReason"`
	UsageData    *UsageData   `json:"usageData,omitempty"`
}

type Model interface {
	GenerateText(ctx context.Context, req *Request) (*Response, error)
	Close() error
	Name() string
}
