package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/oclaw/coopmatch/internal/models"
)

const groqURL = "https://api.groq.com/openai/v1/chat/completions"

// GroqClient talks to Groq's OpenAI-compatible chat completions endpoint
// directly over net/http — there is no dedicated Groq SDK in the
// dependency pack, and the API surface this package needs (one chat
// completion call) doesn't justify adding one.
type GroqClient struct {
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewGroqClient builds a GroqClient. model defaults to a fast Llama-3.3
// variant suited to short-turnaround cover-letter drafting.
func NewGroqClient(apiKey, model string) *GroqClient {
	if model == "" {
		model = "llama-3.3-70b-versatile"
	}
	return &GroqClient{apiKey: apiKey, model: model, httpClient: &http.Client{}}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func (c *GroqClient) complete(ctx context.Context, system, user string, temperature float64) (string, error) {
	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: temperature,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("llm: marshaling groq request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, groqURL, bytes.NewReader(jsonData))
	if err != nil {
		return "", fmt.Errorf("llm: building groq request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("llm: calling groq: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("llm: reading groq response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("llm: parsing groq response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("llm: groq error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("llm: groq returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// GenerateCoverLetter implements Client.
func (c *GroqClient) GenerateCoverLetter(ctx context.Context, job models.Job, evidence []models.Evidence) (string, error) {
	text, err := c.complete(ctx, buildCoverLetterSystemPrompt(), buildCoverLetterUserPrompt(job, evidence), 0.4)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// ExtractCompensation implements Client.
func (c *GroqClient) ExtractCompensation(ctx context.Context, raw string) (*Compensation, error) {
	text, err := c.complete(ctx, "Respond with raw JSON only, no markdown fences.", buildCompensationPrompt(raw), 0.0)
	if err != nil {
		return nil, err
	}
	return parseCompensationJSON(cleanMarkdownJSON(text))
}

// cleanMarkdownJSON strips ```json fences some chat models wrap their
// output in despite being told not to.
func cleanMarkdownJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

func parseCompensationJSON(s string) (*Compensation, error) {
	if s == "" || s == "null" {
		return nil, nil
	}
	var comp Compensation
	if err := json.Unmarshal([]byte(s), &comp); err != nil {
		return nil, fmt.Errorf("llm: parsing compensation json: %w", err)
	}
	if comp.Value == 0 && comp.Currency == "" {
		return nil, nil
	}
	return &comp, nil
}
