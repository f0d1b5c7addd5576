package anthropic

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const httpUserAgent = "versemix/1.0"

type anthropicRole string

const (
	anthropicRoleAssistant anthropicRole = "assistant"
	anthropicRoleUser      anthropicRole = "user"
)

type anthropicSegment struct {
	Type string `json:"type"` // "text"
	Text string `json:"text,omitempty"`
}

type anthropicMessage struct {
	Role    anthropicRole      `json:"role"`
	Content []anthropicSegment `json:"content"`
}

type anthropicCreateMessagesRequest struct {
	Model     string             `json:"model"`      // Name of the Anthropic model to use
	Messages  []anthropicMessage `json:"messages"`   // List of messages to send to the model
	MaxTokens int                `json:"max_tokens"` // Maximum number of tokens to generate

	SystemPrompt  string   `json:"system,omitempty"`         // System prompt for the model
	StopSequences []string `json:"stop_sequences,omitempty"` // List of stop sequences for the model

	Temperature *float32 `json:"temperature,omitempty"` // Temperature parameter for the model
	TopP        *float32 `json:"top_p,omitempty"`       // Top-p parameter for the model
	TopK        *int     `json:"top_k,omitempty"`       // Top-k parameter for the model

	Stream bool `json:"stream"` // Stream responses
}

type anthropicStopReason string

const (
	stopEndTurn      anthropicStopReason = "end_turn"
	stopMaxTokens    anthropicStopReason = "max_tokens"
	stopStopSequence anthropicStopReason = "stop_sequence"
)

// =================== API Client ===================

type anthropicAPIClient struct {
	baseURL     string
	authHandler func(r *http.Request) error

	httpClient *http.Client
}

const anthropicBaseURL = "https://api.anthropic.com/v1"
const anthropicVersion = "2023-06-01"

func (c *anthropicAPIClient) createMessages(ctx context.Context, req *anthropicCreateMessagesRequest) ([]byte, int, error) {
	url, err := url.JoinPath(c.baseURL, "./messages")
	if err != nil {
		return nil, 0, err
	}

	data, err := json.Marshal(req)
	if err != nil {
		return nil, 0, err
	}

	r, _ := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(data))
	r.Header.Set("User-Agent", httpUserAgent)

	if err := c.authHandler(r); err != nil {
		return nil, 0, err
	}

	resp, err := c.httpClient.Do(r)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}

	return body, resp.StatusCode, nil
}

// ================================================

var anthropicHTTPClient *http.Client = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:    16,
		IdleConnTimeout: 30 * time.Second,
	},
}

func newClient(apikey string) (*anthropicAPIClient, error) {
	apikey = strings.TrimSpace(apikey)
	return &anthropicAPIClient{
		baseURL: anthropicBaseURL,
		authHandler: func(r *http.Request) error {
			r.Header.Set("Content-Type", "application/json")
			r.Header.Set("X-API-Key", apikey)
			r.Header.Set("anthropic-version", anthropicVersion)
			return nil
		},
		httpClient: anthropicHTTPClient,
	}, nil
}
