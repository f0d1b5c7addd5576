package poem

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/versemix/versemix/llm"
)

// MinLines is the minimum poem length the model is instructed to produce.
const MinLines = 8

const promptTemplate = `Write an evocative poem of at least %d lines inspired by the following text. ` +
	`Respond with the poem only, one line per verse line, without a title and without commentary.

%s`

var (
	ErrEmptyInput = errors.New("poem: empty input text")
	ErrEmptyPoem  = errors.New("poem: model returned no text")
)

type Poem struct {
	Text  string   `json:"text"`
	Lines []string `json:"lines"`
}

// Composer turns free text into a poem through a generative model.
type Composer struct {
	model llm.Model
}

func NewComposer(model llm.Model) *Composer {
	return &Composer{model: model}
}

func (c *Composer) Compose(ctx context.Context, input string) (*Poem, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyInput
	}

	resp, err := c.model.GenerateText(ctx, &llm.Request{
		Prompt: fmt.Sprintf(promptTemplate, MinLines, input),
	})
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(resp.Text)
	if text == "" {
		return nil, ErrEmptyPoem
	}

	return &Poem{
		Text:  text,
		Lines: SplitLines(text),
	}, nil
}

// SplitLines breaks poem text into display lines, dropping blank ones.
func SplitLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}
