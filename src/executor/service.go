// Package executor drives the reasoning loop: it alternates between asking
// the model for the next action and dispatching the tool calls it requests,
// until a final answer or the step ceiling is reached.
package executor

import (
	"log/slog"
	"time"
)

const (
	// DefaultMaxSteps bounds runaway chains where the model keeps
	// requesting tools without converging.
	DefaultMaxSteps = 25

	// DefaultToolConcurrency caps parallel tool calls within one step so
	// a burst does not overwhelm the backing APIs.
	DefaultToolConcurrency = 4

	defaultReasoningTimeout = 120 * time.Second
	defaultToolTimeout      = 60 * time.Second
)

// Service runs reasoning loops with shared configuration.
type Service struct {
	systemPrompt     string
	maxSteps         int
	toolConcurrency  int
	reasoningTimeout time.Duration
	toolTimeout      time.Duration
	logger           *slog.Logger
}

// ServiceConfig holds configuration for creating a new Service
type ServiceConfig struct {
	SystemPrompt     string
	MaxSteps         int
	ToolConcurrency  int
	ReasoningTimeout time.Duration
	ToolTimeout      time.Duration
	Logger           *slog.Logger
}

// NewService creates a new reasoning loop service
func NewService(config ServiceConfig) *Service {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}
	if config.MaxSteps <= 0 {
		config.MaxSteps = DefaultMaxSteps
	}
	if config.ToolConcurrency <= 0 {
		config.ToolConcurrency = DefaultToolConcurrency
	}
	if config.ReasoningTimeout <= 0 {
		config.ReasoningTimeout = defaultReasoningTimeout
	}
	if config.ToolTimeout <= 0 {
		config.ToolTimeout = defaultToolTimeout
	}

	return &Service{
		systemPrompt:     config.SystemPrompt,
		maxSteps:         config.MaxSteps,
		toolConcurrency:  config.ToolConcurrency,
		reasoningTimeout: config.ReasoningTimeout,
		toolTimeout:      config.ToolTimeout,
		logger:           config.Logger.With("component", "executor"),
	}
}
