package hook

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// DefaultTimeout bounds a single rewrite call.
const DefaultTimeout = 30 * time.Second

// AnthropicRewriter implements Rewriter against the Anthropic Messages
// API.
type AnthropicRewriter struct {
	client  anthropic.Client
	model   anthropic.Model
	timeout time.Duration
}

// NewAnthropicRewriter builds a Rewriter from the environment. Returns
// nil when ANTHROPIC_API_KEY is unset; callers treat a nil Rewriter as
// "hook unavailable".
func NewAnthropicRewriter(model string, timeout time.Duration) *AnthropicRewriter {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return nil
	}

	if model == "" {
		model = string(anthropic.ModelClaude3_5Haiku20241022)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &AnthropicRewriter{
		client:  anthropic.NewClient(option.WithAPIKey(apiKey)),
		model:   anthropic.Model(model),
		timeout: timeout,
	}
}

// Improve asks the model to rewrite text per the instruction and
// validates the result before returning it. Any failure is an error;
// the caller keeps the original text.
func (a *AnthropicRewriter) Improve(ctx context.Context, text, instruction string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	prompt := fmt.Sprintf(`You are a technical writing expert improving documentation text.

%s

Keep the original meaning and technical accuracy. Respond with ONLY the rewritten text, no explanations.

Text:
%s`, instruction, text)

	resp, err := a.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     a.model,
		MaxTokens: 1024,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("rewrite API error: %w", err)
	}

	var improved string
	for _, block := range resp.Content {
		if block.Type == "text" {
			improved = block.Text
			break
		}
	}

	improved = Clean(improved)
	if err := Validate(text, improved); err != nil {
		return "", err
	}
	return improved, nil
}
