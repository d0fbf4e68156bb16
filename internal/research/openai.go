package research

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/cognicore/deckgen/pkg/deckgen/internalerr"
)

const systemPrompt = `You are a research assistant preparing material for a slide deck.
Answer in markdown with exactly these sections:

**Key Findings:**
One finding per line. Prefer concrete numbers, e.g. "United States: 40 gold medals".

**Visual Suggestions:**
Charts that would illustrate the findings.

**Sources:**
One source per line.`

// OpenAI asks an OpenAI-compatible chat completion endpoint for research.
type OpenAI struct {
	Model string
	Opts  []option.RequestOption
}

// OpenAIConfig holds the connection settings of the OpenAI provider
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// NewOpenAI validates the settings and builds a provider.
func NewOpenAI(cfg OpenAIConfig, extra ...option.RequestOption) (*OpenAI, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: openai api key missing", internalerr.ErrProviderUnavailable)
	}
	if cfg.Model == "" {
		return nil, fmt.Errorf("%w: model is required", internalerr.ErrInvalidInput)
	}
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	opts = append(opts, extra...)
	return &OpenAI{Model: cfg.Model, Opts: opts}, nil
}

// Research implements Provider.
func (o *OpenAI) Research(ctx context.Context, topic string) (string, error) {
	client := openai.NewClient(o.Opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(fmt.Sprintf("Research the topic %q.", topic)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", internalerr.ErrProviderUnavailable, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: %v", internalerr.ErrProviderUnavailable, errors.New("openai: empty choices"))
	}
	return resp.Choices[0].Message.Content, nil
}
