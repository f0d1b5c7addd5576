package anthropic_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/versemix/versemix/llm"
	"github.com/versemix/versemix/pconf"
	"github.com/versemix/versemix/provider/anthropic"
)

func TestNewLLMClientRequiresAPIKey(t *testing.T) {
	_, err := anthropic.Provider.NewLLMClient(context.Background())
	if !errors.Is(err, anthropic.ErrAPIKeyRequired) {
		t.Errorf("got %v, want ErrAPIKeyRequired", err)
	}
}

func newModel(t *testing.T, baseURL string) llm.Model {
	t.Helper()

	client, err := anthropic.Provider.NewLLMClient(context.Background(),
		pconf.WithAPIKey("test-key"), pconf.WithBaseURL(baseURL))
	if err != nil {
		t.Fatal(err)
	}

	model, err := client.NewLLM("claude-3-haiku-20240307", &llm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	return model
}

func TestGenerateText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/messages") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("X-API-Key"); got != "test-key" {
			t.Errorf("api key header: got %q", got)
		}
		if got := r.Header.Get("anthropic-version"); got == "" {
			t.Error("missing anthropic-version header")
		}

		body, _ := io.ReadAll(r.Body)
		if !strings.Contains(string(body), "write me a poem") {
			t.Errorf("prompt not in request: %s", body)
		}

		w.Write([]byte(`{
			"content": [{"type": "text", "text": "roses are red"}],
			"stop_reason": "end_turn",
			"usage": {"input_tokens": 10, "output_tokens": 20}
		}`))
	}))
	defer server.Close()

	model := newModel(t, server.URL)

	resp, err := model.GenerateText(context.Background(), &llm.Request{Prompt: "write me a poem"})
	if err != nil {
		t.Fatal(err)
	}

	if resp.Text != "roses are red" {
		t.Errorf("text: got %q", resp.Text)
	}
	if resp.FinishReason != llm.FinishReasonStop {
		t.Errorf("finish reason: got %v", resp.FinishReason)
	}
	if resp.UsageData == nil || resp.UsageData.TotalTokens != 30 {
		t.Errorf("usage: got %+v", resp.UsageData)
	}
}

func TestGenerateTextRateLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error": {"message": "rate limited"}}`))
	}))
	defer server.Close()

	model := newModel(t, server.URL)

	_, err := model.GenerateText(context.Background(), &llm.Request{Prompt: "hi"})
	if !errors.Is(err, llm.ErrRateLimit) {
		t.Errorf("got %v, want ErrRateLimit", err)
	}
	if !strings.Contains(err.Error(), "rate limited") {
		t.Errorf("error does not carry vendor message: %v", err)
	}
}

func TestGenerateTextEmptyPrompt(t *testing.T) {
	model := newModel(t, "http://127.0.0.1:0")

	if _, err := model.GenerateText(context.Background(), &llm.Request{}); !errors.Is(err, llm.ErrInvalidRequest) {
		t.Errorf("got %v, want ErrInvalidRequest", err)
	}
}
