package agent

import (
	"context"
	"fmt"

	"github.com/agentforge/agentforge/src/aisdk"
)

// ConfirmationRequiredMessage is the dispatch refusal returned when a write
// tool is called without prior explicit user approval. It instructs the model
// to ask the user instead of performing the action.
const ConfirmationRequiredMessage = "This action modifies your portfolio and requires explicit confirmation. " +
	"Describe the pending action to the user in detail and ask them to confirm before calling this tool again. " +
	"Do not perform the action."

// ToolExecutor is a function type for tool execution
type ToolExecutor func(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error)

// DefaultToolbox is a type alias using the Tool interface
type DefaultToolbox = Toolbox[Tool]

// Toolbox is the fixed catalog of tools available to the reasoning loop. It
// is the single source of truth both for the schemas advertised to the model
// and for dispatch validation. Static after startup.
type Toolbox[T Tool] struct {
	tools      map[string]T
	middleware []ToolMiddleware
}

// ToolMiddleware is a function that wraps a ToolExecutor to add functionality.
type ToolMiddleware func(next ToolExecutor) ToolExecutor

// NewToolbox creates a new tool manager.
func NewToolbox[T Tool]() *Toolbox[T] {
	return &Toolbox[T]{
		tools: make(map[string]T),
	}
}

// RegisterTool registers a tool.
func (tm *Toolbox[T]) RegisterTool(tool T) error {
	if tool.GetName() == "" {
		return fmt.Errorf("tool name cannot be empty")
	}

	// Check for duplicate tool names
	if _, exists := tm.tools[tool.GetName()]; exists {
		return fmt.Errorf("tool %s is already registered", tool.GetName())
	}

	tm.tools[tool.GetName()] = tool
	return nil
}

// RegisterMiddleware registers middleware applied to all tool executions.
// Middleware is applied in the order it's registered (first registered = outermost layer).
func (tm *Toolbox[T]) RegisterMiddleware(middleware ToolMiddleware) {
	tm.middleware = append(tm.middleware, middleware)
}

// Tools returns the list of available tools
func (tm *Toolbox[T]) Tools() []T {
	out := make([]T, 0, len(tm.tools))
	for _, tool := range tm.tools {
		out = append(out, tool)
	}
	return out
}

// GetTool returns a specific tool by name.
func (tm *Toolbox[T]) GetTool(name string) (T, bool) {
	tool, exists := tm.tools[name]
	return tool, exists
}

// HasTool checks if a tool is available.
func (tm *Toolbox[T]) HasTool(name string) bool {
	_, exists := tm.tools[name]
	return exists
}

// ExecuteTool dispatches a tool call with the middleware chain applied. All
// outcomes are normalized into a ToolResponse: unknown tools, invalid
// arguments, backing-store failures and the write-confirmation gate never
// surface as Go errors to the loop.
func (tm *Toolbox[T]) ExecuteTool(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error) {
	tool, exists := tm.tools[call.Function.Name]
	if !exists {
		return &aisdk.ToolResponse{
			Type:    aisdk.ResponseError,
			Content: []byte(fmt.Sprintf("Tool not found: %s", call.Function.Name)),
			IsError: true,
		}, nil
	}

	// Write tools only execute once the user has explicitly approved the
	// pending action. This gate is the sole place the refusal originates.
	if tool.GetKind() == KindWrite && !ConfirmationFromContext(ctx) {
		return &aisdk.ToolResponse{
			Type:    aisdk.ResponseConfirmationRequired,
			Content: []byte(ConfirmationRequiredMessage),
		}, nil
	}

	toolExecutor := ToolExecutor(func(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error) {
		return tool.Execute(ctx, call)
	})

	// Apply middleware chain
	finalExecutor := toolExecutor
	for i := len(tm.middleware) - 1; i >= 0; i-- {
		finalExecutor = tm.middleware[i](finalExecutor)
	}

	return finalExecutor(ctx, call)
}

// LoggingMiddleware logs tool execution details.
func LoggingMiddleware(logger interface {
	Info(msg string, args ...interface{})
}) ToolMiddleware {
	return func(next ToolExecutor) ToolExecutor {
		return func(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error) {
			logger.Info("executing tool", "tool", call.Function.Name, "params", string(call.Function.Arguments))
			result, err := next(ctx, call)
			if err != nil {
				logger.Info("tool execution failed", "error", err)
			} else if result != nil && result.IsError {
				logger.Info("tool returned error result", "tool", call.Function.Name)
			}
			return result, err
		}
	}
}
