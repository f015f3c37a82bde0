package orclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentforge/agentforge/src/aisdk"
)

func testResponse(content string) aisdk.ChatCompletionResponse {
	return aisdk.ChatCompletionResponse{
		ID:    "gen-123",
		Model: "openai/gpt-4o",
		Choices: []aisdk.Choice{
			{
				Index:        0,
				Message:      aisdk.Message{Role: aisdk.RoleAssistant, Content: content},
				FinishReason: "stop",
			},
		},
		Usage: aisdk.Usage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15},
	}
}

func TestCreateChatCompletion(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		assert.Equal(t, "/chat/completions", r.URL.Path)

		var req aisdk.ChatCompletionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "openai/gpt-4o", req.Model)

		json.NewEncoder(w).Encode(testResponse("hello"))
	}))
	defer server.Close()

	client := NewClient(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Model:   "openai/gpt-4o",
	})

	resp, err := client.CreateChatCompletion(context.Background(), &aisdk.ChatCompletionRequest{
		Messages: []aisdk.Message{{Role: aisdk.RoleUser, Content: "hi"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer test-key", gotAuth)
	assert.Equal(t, "hello", resp.Choices[0].Message.Content)
	assert.Equal(t, 15, resp.Usage.TotalTokens)
}

func TestCreateChatCompletionNoAPIKey(t *testing.T) {
	client := NewClient(Config{Model: "openai/gpt-4o"})

	_, err := client.CreateChatCompletion(context.Background(), &aisdk.ChatCompletionRequest{})
	assert.ErrorIs(t, err, ErrNoAPIKey)
}

func TestCreateChatCompletionEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(aisdk.ChatCompletionResponse{ID: "gen-1"})
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "k", BaseURL: server.URL, Model: "m"})

	_, err := client.CreateChatCompletion(context.Background(), &aisdk.ChatCompletionRequest{})
	assert.ErrorIs(t, err, ErrEmptyResponse)
}

func TestRetryOnServerError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(testResponse("recovered"))
	}))
	defer server.Close()

	client := NewClient(Config{
		APIKey:     "k",
		BaseURL:    server.URL,
		Model:      "m",
		RetryCount: 3,
		RetryDelay: time.Millisecond,
	})

	resp, err := client.CreateChatCompletion(context.Background(), &aisdk.ChatCompletionRequest{})
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, "recovered", resp.Choices[0].Message.Content)
}

func TestNoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(ErrorResponse{Error: APIError{Type: "auth_error", Message: "bad key"}})
	}))
	defer server.Close()

	client := NewClient(Config{
		APIKey:     "bad",
		BaseURL:    server.URL,
		Model:      "m",
		RetryCount: 3,
		RetryDelay: time.Millisecond,
	})

	_, err := client.CreateChatCompletion(context.Background(), &aisdk.ChatCompletionRequest{})
	require.Error(t, err)
	assert.Equal(t, int32(1), calls.Load())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.True(t, apiErr.IsAuthError())
	assert.False(t, apiErr.IsRetryable())
}

func TestRateLimitRetryAfter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "30")
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(ErrorResponse{Error: APIError{Type: "rate_limit", Message: "slow down"}})
	}))
	defer server.Close()

	client := NewClient(Config{APIKey: "k", BaseURL: server.URL, Model: "m", RetryDelay: time.Millisecond})

	_, err := client.CreateChatCompletion(context.Background(), &aisdk.ChatCompletionRequest{})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsRateLimit())
	assert.True(t, apiErr.IsRetryable())
	assert.Equal(t, "30", apiErr.Details["retry_after"])
}

func TestModelName(t *testing.T) {
	client := NewClient(Config{Model: "openai/gpt-4o-mini"})
	assert.Equal(t, "openai/gpt-4o-mini", client.ModelName())
}
