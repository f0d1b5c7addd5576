package poem_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/versemix/versemix/llm"
	"github.com/versemix/versemix/poem"
)

type fakeModel struct {
	text    string
	err     error
	lastReq *llm.Request
}

func (f *fakeModel) GenerateText(ctx context.Context, req *llm.Request) (*llm.Response, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &llm.Response{Text: f.text, FinishReason: llm.FinishReasonStop}, nil
}

func (f *fakeModel) Close() error { return nil }
func (f *fakeModel) Name() string { return "fake" }

func TestComposeSplitsLines(t *testing.T) {
	model := &fakeModel{text: "first line\n\nsecond line\n  third line  \n"}
	c := poem.NewComposer(model)

	p, err := c.Compose(context.Background(), "a quiet morning")
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"first line", "second line", "third line"}
	if len(p.Lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(p.Lines), len(want))
	}
	for i := range want {
		if p.Lines[i] != want[i] {
			t.Errorf("line %d: got %q, want %q", i, p.Lines[i], want[i])
		}
	}
}

func TestComposePromptContainsInput(t *testing.T) {
	model := &fakeModel{text: "a poem"}
	c := poem.NewComposer(model)

	if _, err := c.Compose(context.Background(), "the winter sea"); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(model.lastReq.Prompt, "the winter sea") {
		t.Errorf("prompt does not contain the input text: %q", model.lastReq.Prompt)
	}
	if !strings.Contains(model.lastReq.Prompt, "8 lines") {
		t.Errorf("prompt does not request the minimum line count: %q", model.lastReq.Prompt)
	}
}

func TestComposeEmptyInput(t *testing.T) {
	c := poem.NewComposer(&fakeModel{text: "unused"})

	if _, err := c.Compose(context.Background(), "   "); !errors.Is(err, poem.ErrEmptyInput) {
		t.Errorf("got %v, want ErrEmptyInput", err)
	}
}

func TestComposeEmptyModelOutput(t *testing.T) {
	c := poem.NewComposer(&fakeModel{text: "  \n "})

	if _, err := c.Compose(context.Background(), "something"); !errors.Is(err, poem.ErrEmptyPoem) {
		t.Errorf("got %v, want ErrEmptyPoem", err)
	}
}

func TestComposeModelError(t *testing.T) {
	boom := errors.New("boom")
	c := poem.NewComposer(&fakeModel{err: boom})

	if _, err := c.Compose(context.Background(), "something"); !errors.Is(err, boom) {
		t.Errorf("got %v, want wrapped model error", err)
	}
}
