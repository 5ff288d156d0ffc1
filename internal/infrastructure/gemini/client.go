package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// Default models. Chat drives the tool-calling loop; Embed builds the FAQ
// index.
const (
	DefaultChatModel  = "gemini-2.0-flash"
	DefaultEmbedModel = "gemini-embedding-001"
)

// Client wraps the Gemini API for the two things this system needs: text
// embeddings and tool-calling chat turns.
type Client struct {
	client     *genai.Client
	embedModel string
}

func NewClient(ctx context.Context, apiKey, embedModel string) (*Client, error) {
	if embedModel == "" {
		embedModel = DefaultEmbedModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Client{client: client, embedModel: embedModel}, nil
}

// EmbedTexts implements faq.Embedder.
func (c *Client) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	contents := make([]*genai.Content, 0, len(texts))
	for _, t := range texts {
		contents = append(contents, genai.NewContentFromText(t, genai.RoleUser))
	}

	resp, err := c.client.Models.EmbedContent(ctx, c.embedModel, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to embed texts: %w", err)
	}

	vectors := make([][]float32, 0, len(resp.Embeddings))
	for _, e := range resp.Embeddings {
		vectors = append(vectors, e.Values)
	}
	return vectors, nil
}

// GenerateContent implements agent.ModelCaller.
func (c *Client) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	return c.client.Models.GenerateContent(ctx, model, contents, config)
}
