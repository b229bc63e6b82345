// Package openrouter implements the chat completion transport against
// the OpenRouter API, with bounded retry on transient failures.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	domainErrors "github.com/jamiehdev/commit-wizard/internal/errors"
	"github.com/jamiehdev/commit-wizard/internal/logger"
	"github.com/jamiehdev/commit-wizard/internal/models"
	"github.com/jamiehdev/commit-wizard/internal/ports"
)

const (
	defaultBaseURL  = "https://openrouter.ai/api/v1"
	completionsPath = "/chat/completions"
	modelsPath      = "/models"

	maxAttempts    = 3
	initialBackoff = time.Second

	// sampling parameters sent with every completion request
	temperature = 0.1
	topP        = 0.9
	maxTokens   = 400
)

var stopSequences = []string{"</commit>"}

// HTTPClient is satisfied by *http.Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the OpenRouter chat completion and model listing
// endpoints.
type Client struct {
	apiKey  string
	baseURL string
	backoff time.Duration
	http    HTTPClient
}

var _ ports.ModelClient = (*Client)(nil)

func NewClient(apiKey string, httpClient HTTPClient) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		backoff: initialBackoff,
		http:    httpClient,
	}
}

type completionRequest struct {
	Model       string               `json:"model"`
	Messages    []models.ChatMessage `json:"messages"`
	Temperature float64              `json:"temperature,omitempty"`
	TopP        float64              `json:"top_p,omitempty"`
	MaxTokens   int                  `json:"max_tokens,omitempty"`
	Stop        []string             `json:"stop,omitempty"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type modelListResponse struct {
	Data []models.ModelInfo `json:"data"`
}

// Complete sends one chat completion request and returns the text of
// the first choice.
func (c *Client) Complete(ctx context.Context, model string, messages []models.ChatMessage) (string, error) {
	payload := completionRequest{
		Model:       model,
		Messages:    messages,
		Temperature: temperature,
		TopP:        topP,
		MaxTokens:   maxTokens,
		Stop:        stopSequences,
	}

	body, err := c.roundTrip(ctx, http.MethodPost, c.baseURL+completionsPath, payload)
	if err != nil {
		return "", err
	}

	var parsed completionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("decoding completion response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", domainErrors.ErrEmptyResponse
	}

	return parsed.Choices[0].Message.Content, nil
}

// ListModels fetches the provider's model catalog.
func (c *Client) ListModels(ctx context.Context) ([]models.ModelInfo, error) {
	body, err := c.roundTrip(ctx, http.MethodGet, c.baseURL+modelsPath, nil)
	if err != nil {
		return nil, err
	}

	var parsed modelListResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decoding model list: %w", err)
	}

	return parsed.Data, nil
}

// roundTrip performs one authenticated request, retrying 5xx responses,
// rate limits and network failures with exponential backoff. Client
// errors other than 429 fail immediately.
func (c *Client) roundTrip(ctx context.Context, method, url string, payload any) ([]byte, error) {
	log := logger.FromContext(ctx)

	var encoded []byte
	if payload != nil {
		var err error
		encoded, err = json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
	}

	backoff := c.backoff
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			log.Debug("retrying openrouter request", "attempt", attempt, "backoff", backoff)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		var reqBody io.Reader
		if encoded != nil {
			reqBody = bytes.NewReader(encoded)
		}
		req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			lastErr = fmt.Errorf("request failed: %w", err)
			log.Warn("openrouter request failed", "attempt", attempt, "error", err)
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		if closeErr := resp.Body.Close(); closeErr != nil {
			log.Warn("closing response body", "error", closeErr)
		}
		if readErr != nil {
			lastErr = fmt.Errorf("reading response: %w", readErr)
			continue
		}

		switch {
		case resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices:
			return body, nil

		case resp.StatusCode == http.StatusTooManyRequests:
			lastErr = domainErrors.ErrQuotaExceeded.
				WithContext("status", resp.StatusCode).
				WithError(apiError(resp.StatusCode, body))
			log.Warn("openrouter rate limited", "attempt", attempt)

		case resp.StatusCode >= http.StatusInternalServerError:
			lastErr = apiError(resp.StatusCode, body)
			log.Warn("openrouter server error", "status", resp.StatusCode, "attempt", attempt)

		case resp.StatusCode == http.StatusBadRequest && strings.Contains(strings.ToLower(string(body)), "model"):
			return nil, domainErrors.ErrInvalidModel.
				WithContext("status", resp.StatusCode).
				WithError(apiError(resp.StatusCode, body))

		default:
			return nil, apiError(resp.StatusCode, body)
		}
	}

	return nil, fmt.Errorf("openrouter request failed after %d attempts: %w", maxAttempts, lastErr)
}

// apiError compacts an error response body into a single line, capped
// so a huge HTML error page cannot flood the terminal.
func apiError(status int, body []byte) error {
	msg := strings.Join(strings.Fields(string(body)), " ")
	if len(msg) > 200 {
		msg = msg[:200]
	}
	if msg == "" {
		msg = "no response body"
	}
	return fmt.Errorf("openrouter api error (%d): %s", status, msg)
}
