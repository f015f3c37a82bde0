package orclient

import (
	"context"
	"log/slog"

	"github.com/sony/gobreaker/v2"

	"github.com/agentforge/agentforge/src/aisdk"
)

var _ aisdk.ModelClient = (*BreakerClient)(nil)

// BreakerClient wraps a ModelClient with a circuit breaker so a misbehaving
// upstream fails fast instead of stalling every conversation.
type BreakerClient struct {
	inner   aisdk.ModelClient
	breaker *gobreaker.CircuitBreaker[*aisdk.ChatCompletionResponse]
}

// NewBreakerClient wraps the given client with a circuit breaker that opens
// after five consecutive failures.
func NewBreakerClient(inner aisdk.ModelClient, logger *slog.Logger) *BreakerClient {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "orclient.breaker")

	settings := gobreaker.Settings{
		Name:        "model-client",
		MaxRequests: 1,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state change",
				"name", name, "from", from.String(), "to", to.String())
		},
	}

	return &BreakerClient{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker[*aisdk.ChatCompletionResponse](settings),
	}
}

// ModelName returns the wrapped client's model identifier.
func (b *BreakerClient) ModelName() string {
	return b.inner.ModelName()
}

// CreateChatCompletion forwards the request through the circuit breaker.
func (b *BreakerClient) CreateChatCompletion(ctx context.Context, req *aisdk.ChatCompletionRequest) (*aisdk.ChatCompletionResponse, error) {
	return b.breaker.Execute(func() (*aisdk.ChatCompletionResponse, error) {
		return b.inner.CreateChatCompletion(ctx, req)
	})
}
