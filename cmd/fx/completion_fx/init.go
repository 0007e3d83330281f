package completion_fx

import (
	"fmt"
	"log"
	"os"
	"strings"

	"go.uber.org/fx"

	"voyago/pkg/utils"
)

var Module = fx.Provide(ProvideCompletionClient)

// CompletionConfig holds configuration for the generative-language client
type CompletionConfig struct {
	Provider string
	APIKey   string
	Model    string
}

// ProvideCompletionClient creates a completion client based on environment
// variables. A missing API key is a startup failure, not a per-request one.
func ProvideCompletionClient() (utils.CompletionClientInterface, error) {
	config := getCompletionConfig()

	log.Printf("Initializing %s completion client with model: %s", config.Provider, config.Model)

	switch strings.ToLower(config.Provider) {
	case "openai":
		return utils.NewOpenAICompletionClient(config.APIKey, config.Model), nil
	case "gemini":
		client, err := utils.NewGeminiCompletionClient(config.APIKey, config.Model)
		if err != nil {
			return nil, fmt.Errorf("failed to create Gemini client: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported completion provider: %s. Use 'openai' or 'gemini'", config.Provider)
	}
}

func getCompletionConfig() CompletionConfig {
	provider := getEnvWithDefault("COMPLETION_PROVIDER", "gemini")

	var apiKey, model string

	switch strings.ToLower(provider) {
	case "openai":
		apiKey = os.Getenv("OPENAI_API_KEY")
		model = getEnvWithDefault("OPENAI_MODEL", "gpt-4o-mini")
		if apiKey == "" {
			log.Fatal("OPENAI_API_KEY is required when using OpenAI provider")
		}
	case "gemini":
		apiKey = os.Getenv("GEMINI_API_KEY")
		model = getEnvWithDefault("GEMINI_MODEL", "gemini-1.5-flash")
		if apiKey == "" {
			log.Fatal("GEMINI_API_KEY is required when using Gemini provider")
		}
	}

	return CompletionConfig{
		Provider: provider,
		APIKey:   apiKey,
		Model:    model,
	}
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
