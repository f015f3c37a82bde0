package executor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/agentforge/agentforge/src/agent"
	"github.com/agentforge/agentforge/src/aisdk"
)

// executeToolCalls dispatches all tool calls from one reasoning step.
// Calls run concurrently up to the configured cap; results come back in
// request order so the conversation transcript stays deterministic.
// Every failure is normalized into a ToolCallResult, never an error.
func (s *Service) executeToolCalls(ctx context.Context, toolbox *agent.DefaultToolbox, trace *RunTrace, calls []aisdk.ToolCall) []ToolCallResult {
	results := make([]ToolCallResult, len(calls))

	stepStart := time.Now()
	sem := make(chan struct{}, s.toolConcurrency)
	var wg sync.WaitGroup

	for i, call := range calls {
		wg.Add(1)
		go func(i int, call aisdk.ToolCall) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			results[i] = s.executeToolCall(ctx, toolbox, &call)
		}(i, call)
	}
	wg.Wait()

	// Tool time is the wall-clock span of the whole step, not the sum of
	// the per-call durations, since calls overlap.
	trace.ToolSeconds += time.Since(stepStart).Seconds()

	return results
}

func (s *Service) executeToolCall(ctx context.Context, toolbox *agent.DefaultToolbox, call *aisdk.ToolCall) ToolCallResult {
	name := call.Function.Name
	logger := s.logger.With("tool", name, "call_id", call.ID)

	result := ToolCallResult{Name: name, CallID: call.ID}

	if toolbox == nil {
		result.Content = "Tool execution not available: no toolbox configured"
		return result
	}

	toolCtx, cancel := context.WithTimeout(ctx, s.toolTimeout)
	defer cancel()

	start := time.Now()
	resp, err := toolbox.ExecuteTool(toolCtx, call)
	result.Duration = time.Since(start)

	switch {
	case err != nil:
		logger.Warn("tool call failed", "error", err, "duration", result.Duration)
		result.Content = fmt.Sprintf("Error: %s", err)
	case toolCtx.Err() != nil:
		logger.Warn("tool call timed out", "duration", result.Duration)
		result.Content = fmt.Sprintf("Error: tool '%s' timed out", name)
	default:
		result.OK = !resp.IsError
		result.Content = string(resp.Content)
		logger.Debug("tool call complete", "ok", result.OK, "duration", result.Duration)
	}

	return result
}
