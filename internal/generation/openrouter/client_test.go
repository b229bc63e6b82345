package openrouter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/jamiehdev/commit-wizard/internal/errors"
	"github.com/jamiehdev/commit-wizard/internal/models"
)

type mockHTTPClient struct {
	mock.Mock
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	resp, _ := args.Get(0).(*http.Response)
	return resp, args.Error(1)
}

func jsonResponse(status int, body string) *http.Response {
	rec := httptest.NewRecorder()
	_, _ = rec.WriteString(body)
	rec.Code = status
	return rec.Result()
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := NewClient("test-key", srv.Client())
	c.baseURL = srv.URL
	c.backoff = time.Millisecond
	return c
}

func TestCompleteSendsWireFormat(t *testing.T) {
	var captured *http.Request
	var capturedBody []byte
	client := new(mockHTTPClient)
	client.On("Do", mock.Anything).
		Run(func(args mock.Arguments) {
			captured = args.Get(0).(*http.Request)
			capturedBody, _ = io.ReadAll(captured.Body)
		}).
		Return(jsonResponse(http.StatusOK, `{"choices":[{"message":{"content":"feat: add cache"}}]}`), nil).
		Once()

	c := NewClient("test-key", client)
	got, err := c.Complete(context.Background(), "openrouter/auto", []models.ChatMessage{
		{Role: models.RoleSystem, Content: "you write commit messages"},
		{Role: models.RoleUser, Content: "describe this diff"},
	})

	require.NoError(t, err)
	assert.Equal(t, "feat: add cache", got)

	assert.Equal(t, http.MethodPost, captured.Method)
	assert.Equal(t, defaultBaseURL+completionsPath, captured.URL.String())
	assert.Equal(t, "Bearer test-key", captured.Header.Get("Authorization"))
	assert.Equal(t, "application/json", captured.Header.Get("Content-Type"))

	var sent map[string]any
	require.NoError(t, json.Unmarshal(capturedBody, &sent))
	assert.Equal(t, "openrouter/auto", sent["model"])
	assert.Equal(t, 0.1, sent["temperature"])
	assert.Equal(t, 0.9, sent["top_p"])
	assert.Equal(t, float64(400), sent["max_tokens"])
	assert.Equal(t, []any{"</commit>"}, sent["stop"])

	messages, ok := sent["messages"].([]any)
	require.True(t, ok)
	require.Len(t, messages, 2)
	first, ok := messages[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "system", first["role"])
	assert.Equal(t, "you write commit messages", first["content"])
}

func TestCompleteRetriesOnServerError(t *testing.T) {
	var hits atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if hits.Add(1) < 3 {
			http.Error(w, "upstream exploded", http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"fix: retry works"}}]}`))
	})

	got, err := c.Complete(context.Background(), "m", nil)

	require.NoError(t, err)
	assert.Equal(t, "fix: retry works", got)
	assert.Equal(t, int32(3), hits.Load())
}

func TestCompleteExhaustsRetryBudget(t *testing.T) {
	var hits atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "still broken", http.StatusInternalServerError)
	})

	_, err := c.Complete(context.Background(), "m", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Contains(t, err.Error(), "openrouter api error (500)")
	assert.Equal(t, int32(3), hits.Load())
}

func TestCompleteInvalidModelFailsImmediately(t *testing.T) {
	var hits atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid model identifier"}}`))
	})

	_, err := c.Complete(context.Background(), "not/a-model", nil)

	require.Error(t, err)
	var appErr *domainErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainErrors.ErrInvalidModel.Message, appErr.Message)
	assert.Equal(t, int32(1), hits.Load())
}

func TestCompleteOtherClientErrorFailsImmediately(t *testing.T) {
	var hits atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"message":"bad credentials"}}`))
	})

	_, err := c.Complete(context.Background(), "m", nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "openrouter api error (401)")
	assert.Equal(t, int32(1), hits.Load())
}

func TestCompleteRateLimitSurfacesQuotaError(t *testing.T) {
	var hits atomic.Int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limit exceeded"}}`))
	})

	_, err := c.Complete(context.Background(), "m", nil)

	require.Error(t, err)
	var appErr *domainErrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainErrors.ErrQuotaExceeded.Message, appErr.Message)
	assert.Equal(t, int32(3), hits.Load())
}

func TestCompleteEmptyChoices(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	})

	_, err := c.Complete(context.Background(), "m", nil)

	assert.ErrorIs(t, err, domainErrors.ErrEmptyResponse)
}

func TestCompleteRetriesNetworkErrors(t *testing.T) {
	client := new(mockHTTPClient)
	client.On("Do", mock.Anything).
		Return(nil, errors.New("connection refused")).Twice()
	client.On("Do", mock.Anything).
		Return(jsonResponse(http.StatusOK, `{"choices":[{"message":{"content":"feat: back online"}}]}`), nil).Once()

	c := NewClient("k", client)
	c.backoff = time.Millisecond

	got, err := c.Complete(context.Background(), "m", nil)

	require.NoError(t, err)
	assert.Equal(t, "feat: back online", got)
	client.AssertNumberOfCalls(t, "Do", 3)
}

func TestCompleteContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	client := new(mockHTTPClient)
	client.On("Do", mock.Anything).
		Return(nil, errors.New("request aborted")).Once()

	c := NewClient("k", client)
	_, err := c.Complete(ctx, "m", nil)

	assert.ErrorIs(t, err, context.Canceled)
	client.AssertNumberOfCalls(t, "Do", 1)
}

func TestListModels(t *testing.T) {
	var capturedPath, capturedAuth string
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		capturedAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"data":[
			{"id":"qwen/qwen-2.5-coder-32b-instruct","name":"Qwen 2.5 Coder","context_length":32768},
			{"id":"openrouter/auto","name":"Auto Router"}
		]}`))
	})

	got, err := c.ListModels(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "qwen/qwen-2.5-coder-32b-instruct", got[0].ID)
	assert.Equal(t, "Qwen 2.5 Coder", got[0].Name)
	assert.Equal(t, 32768, got[0].ContextLength)
	assert.Equal(t, "openrouter/auto", got[1].ID)

	assert.Equal(t, modelsPath, capturedPath)
	assert.Equal(t, "Bearer test-key", capturedAuth)
}

func TestListModelsMalformedBody(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": not json`))
	})

	_, err := c.ListModels(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding model list")
}
