package utils

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pgvector/pgvector-go"
	openai "github.com/sashabaranov/go-openai"
)

// OpenAICompletionClient is the alternative provider behind the same
// interface, selected via COMPLETION_PROVIDER=openai.
type OpenAICompletionClient struct {
	client *openai.Client
	model  string
}

func NewOpenAICompletionClient(apiKey, model string) CompletionClientInterface {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAICompletionClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (c *OpenAICompletionClient) GenerateItinerary(ctx context.Context, prompt string) (string, error) {
	if strings.TrimSpace(prompt) == "" {
		return "", fmt.Errorf("prompt cannot be empty")
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctxWithTimeout, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.7,
	})
	if err != nil {
		return "", fmt.Errorf("openai API call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no content generated by OpenAI")
	}

	return cleanCompletionText(resp.Choices[0].Message.Content), nil
}

func (c *OpenAICompletionClient) GetEmbedding(ctx context.Context, text string) (pgvector.Vector, error) {
	resp, err := c.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.SmallEmbedding3,
	})
	if err != nil {
		return pgvector.Vector{}, fmt.Errorf("openai embedding failed: %w", err)
	}
	if len(resp.Data) == 0 {
		return pgvector.Vector{}, fmt.Errorf("no embedding returned")
	}
	return pgvector.NewVector(resp.Data[0].Embedding), nil
}

func (c *OpenAICompletionClient) Close() error {
	return nil
}
