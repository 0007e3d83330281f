package utils

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/pgvector/pgvector-go"
	"google.golang.org/api/option"
)

// GeminiCompletionClient implements CompletionClientInterface using Google's
// Gemini models.
type GeminiCompletionClient struct {
	client *genai.Client
	model  string
}

func NewGeminiCompletionClient(apiKey, model string) (CompletionClientInterface, error) {
	if model == "" {
		model = "gemini-1.5-flash" // Free tier model
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiCompletionClient{
		client: client,
		model:  model,
	}, nil
}

// GenerateItinerary sends one prompt and returns the cleaned free-text
// response. The pipeline holds no state across calls, so each request stands
// alone; a 60s ceiling keeps a stuck upstream from blocking the handler.
func (c *GeminiCompletionClient) GenerateItinerary(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	model := c.client.GenerativeModel(c.model)
	model.SetTemperature(0.7)
	model.SetTopP(0.8)
	model.SetMaxOutputTokens(8192)

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	resp, err := model.GenerateContent(ctxWithTimeout, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated by Gemini")
	}

	content := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	return cleanCompletionText(content), nil
}

// GetEmbedding generates a vector embedding for text.
// Note: this is a hash-based fallback since the Gemini free tier has no
// dedicated embedding endpoint.
func (c *GeminiCompletionClient) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	return c.textToVector(text), nil
}

// textToVector creates a deterministic vector representation of text by
// spreading word hashes across the dimensions and normalizing.
func (c *GeminiCompletionClient) textToVector(text string) pgvector.Vector {
	text = strings.ToLower(strings.TrimSpace(text))
	words := strings.Fields(text)

	const dimensions = 1536
	vector := make([]float32, dimensions)

	for _, word := range words {
		hash := c.hashWord(word)
		for i := 0; i < dimensions; i++ {
			influence := math.Sin(float64(hash+uint32(i))) * 0.1
			vector[i] += float32(influence)
		}
	}

	magnitude := float32(0)
	for _, val := range vector {
		magnitude += val * val
	}
	magnitude = float32(math.Sqrt(float64(magnitude)))

	if magnitude > 0 {
		for i := range vector {
			vector[i] /= magnitude
		}
	}

	return pgvector.NewVector(vector)
}

func (c *GeminiCompletionClient) hashWord(word string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(word))
	return h.Sum32()
}

func (c *GeminiCompletionClient) Close() error {
	return c.client.Close()
}
