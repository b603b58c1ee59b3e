package enhancer

import (
	"context"
	"errors"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/get-hunter/hero365-app-sub011/internal/domain"
)

// TextCompleter is the single call contract with the generative-text
// provider. The provider is treated as untrusted, rate-limited, and costed.
type TextCompleter interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

// AnthropicClient implements TextCompleter against the Anthropic Messages
// API.
type AnthropicClient struct {
	api   anthropic.Client
	model string
}

// NewAnthropicClient creates a client for the given API key and model.
func NewAnthropicClient(apiKey, model string) *AnthropicClient {
	return &AnthropicClient{
		api:   anthropic.NewClient(option.WithAPIKey(apiKey)),
		model: model,
	}
}

// Complete sends a single-turn prompt and returns the concatenated text
// blocks of the response. Failures are classified into transient and
// permanent provider errors.
func (c *AnthropicClient) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	msg, err := c.api.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", &domain.ProviderError{
			Op:        "messages.new",
			Err:       err,
			Transient: isTransient(err),
		}
	}

	var out string
	for _, block := range msg.Content {
		if block.Type == "text" {
			out += block.Text
		}
	}
	if out == "" {
		return "", &domain.ProviderError{
			Op:  "messages.new",
			Err: errors.New("empty completion"),
		}
	}
	return out, nil
}

// isTransient reports whether a provider failure is worth retrying: network
// timeouts, rate limits, and server-side errors.
func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
		return false
	}
	// Unclassified transport failures get one more chance.
	return true
}
