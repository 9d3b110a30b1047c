package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/oclaw/coopmatch/internal/models"
)

// GeminiClient is the Client implementation backed by Google's genai SDK,
// offered as an alternative to GroqClient when COOPMATCH_LLM_PROVIDER=gemini.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient builds a GeminiClient against ctx's API-key-authenticated
// backend.
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	if model == "" {
		model = "gemini-2.0-flash"
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("llm: creating gemini client: %w", err)
	}
	return &GeminiClient{client: client, model: model}, nil
}

func (c *GeminiClient) generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	result, err := c.client.Models.GenerateContent(ctx, c.model,
		genai.Text(userPrompt),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(systemPrompt, genai.RoleUser),
		},
	)
	if err != nil {
		return "", fmt.Errorf("llm: gemini generate content: %w", err)
	}
	return strings.TrimSpace(result.Text()), nil
}

// GenerateCoverLetter implements Client.
func (c *GeminiClient) GenerateCoverLetter(ctx context.Context, job models.Job, evidence []models.Evidence) (string, error) {
	return c.generate(ctx, buildCoverLetterSystemPrompt(), buildCoverLetterUserPrompt(job, evidence))
}

// ExtractCompensation implements Client.
func (c *GeminiClient) ExtractCompensation(ctx context.Context, raw string) (*Compensation, error) {
	text, err := c.generate(ctx, "Respond with raw JSON only, no markdown fences.", buildCompensationPrompt(raw))
	if err != nil {
		return nil, err
	}
	return parseCompensationJSON(cleanMarkdownJSON(text))
}
