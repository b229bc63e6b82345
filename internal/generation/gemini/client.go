// Package gemini adapts Google's Gemini API to the same model client
// interface as the OpenRouter transport, so the orchestrator does not
// care which provider is wired in.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	domainErrors "github.com/jamiehdev/commit-wizard/internal/errors"
	"github.com/jamiehdev/commit-wizard/internal/models"
	"github.com/jamiehdev/commit-wizard/internal/ports"
)

// sampling parameters sent with every request
const (
	temperature     = 0.1
	topP            = 0.9
	maxOutputTokens = 400
)

var stopSequences = []string{"</commit>"}

// Client wraps a genai connection.
type Client struct {
	client *genai.Client
}

var _ ports.ModelClient = (*Client)(nil)

// NewClient dials the Gemini API with the given key.
func NewClient(ctx context.Context, apiKey string) (*Client, error) {
	c, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &Client{client: c}, nil
}

// Complete sends a single-turn generation request. The system message
// becomes the model's system instruction and the remaining messages are
// concatenated as user parts.
func (c *Client) Complete(ctx context.Context, model string, messages []models.ChatMessage) (string, error) {
	gm := c.client.GenerativeModel(model)
	gm.SetTemperature(temperature)
	gm.SetTopP(topP)
	gm.SetMaxOutputTokens(maxOutputTokens)
	gm.StopSequences = stopSequences

	var parts []genai.Part
	for _, msg := range messages {
		if msg.Role == models.RoleSystem {
			gm.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(msg.Content)}}
			continue
		}
		parts = append(parts, genai.Text(msg.Content))
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no user message to send")
	}

	resp, err := gm.GenerateContent(ctx, parts...)
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}

	return firstCandidateText(resp)
}

// Close releases the underlying API connection.
func (c *Client) Close() error {
	return c.client.Close()
}

// firstCandidateText flattens the text parts of the first candidate.
func firstCandidateText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", domainErrors.ErrEmptyResponse
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", domainErrors.ErrEmptyResponse
	}

	return b.String(), nil
}
