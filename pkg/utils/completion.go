package utils

import (
	"context"
	"fmt"
	"strings"

	"github.com/pgvector/pgvector-go"
)

// CompletionClientInterface is the boundary to the generative-language API.
// GenerateItinerary may fail as a whole (timeout, quota, empty candidates);
// it never returns a partial result.
type CompletionClientInterface interface {
	GenerateItinerary(ctx context.Context, prompt string) (string, error)
	GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error)
	Close() error
}

// NewCompletionClient Factory function to create either a Gemini or OpenAI
// client based on config
func NewCompletionClient(provider, apiKey, model string) (CompletionClientInterface, error) {
	switch strings.ToLower(provider) {
	case "openai":
		return NewOpenAICompletionClient(apiKey, model), nil
	case "gemini":
		return NewGeminiCompletionClient(apiKey, model)
	default:
		return nil, fmt.Errorf("unsupported completion provider: %s", provider)
	}
}

// cleanCompletionText strips markdown code fences and the boilerplate lead-in
// sentences models like to prepend, so the segmenter sees only itinerary text.
func cleanCompletionText(response string) string {
	response = strings.ReplaceAll(response, "```markdown", "")
	response = strings.ReplaceAll(response, "```", "")
	response = strings.TrimSpace(response)

	prefixes := []string{
		"Here are your vacation recommendations:",
		"Here is your travel itinerary:",
		"Here are the recommendations:",
	}
	for _, prefix := range prefixes {
		if strings.HasPrefix(response, prefix) {
			response = strings.TrimSpace(strings.TrimPrefix(response, prefix))
			break
		}
	}

	return response
}
