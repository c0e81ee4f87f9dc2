package clients

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms/googleai"
)

// DefaultModel is used when the caller does not specify one.
const DefaultModel = "gemini-1.5-flash"

// GoogleAI builds a Gemini model client. The API key is supplied per
// session by the user, never read from server configuration.
func GoogleAI(ctx context.Context, apiKey, model string) (*googleai.GoogleAI, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	llm, err := googleai.New(ctx, googleai.WithAPIKey(apiKey), googleai.WithDefaultModel(model))
	if err != nil {
		return nil, fmt.Errorf("failed to create Google AI client: %w", err)
	}
	return llm, nil
}
