package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agentforge/agentforge/src/agent"
	"github.com/agentforge/agentforge/src/aisdk"
)

// StepLimitMessage is returned to the user when the loop hits the step ceiling.
const StepLimitMessage = "I wasn't able to complete this request. Please try asking a simpler or more specific question."

// FailedMessage is returned to the user when the reasoning engine faults.
// The correlation id lets operators find the underlying error in the logs.
const FailedMessage = "I'm sorry, I encountered an error processing your request. Please try again."

// RunRequest describes one chat request to drive through the loop.
type RunRequest struct {
	// Model is the reasoning engine.
	Model aisdk.ModelClient

	// Toolbox provides the dispatchable tools. May be nil for pure chat.
	Toolbox *agent.DefaultToolbox

	// Window is the assembled conversation window, ending with the
	// incoming user message. The system prompt is prepended by the run.
	Window []aisdk.Message
}

// RunResult is the outcome of one reasoning loop run.
type RunResult struct {
	Outcome Outcome
	Answer  string
	Trace   *RunTrace

	// CorrelationID is set for failed runs so the user-facing error can
	// be matched to server logs.
	CorrelationID string
}

// Run drives the reasoning loop to completion. Tool faults are normalized
// into observable results and never abort the run; only a fault in the
// reasoning engine itself produces a failed outcome.
func (s *Service) Run(ctx context.Context, req *RunRequest) (*RunResult, error) {
	if req.Model == nil {
		return nil, ErrModelClientRequired
	}
	if len(req.Window) == 0 {
		return nil, ErrEmptyWindow
	}

	trace := &RunTrace{
		RunID: uuid.New().String(),
		Model: req.Model.ModelName(),
	}
	logger := s.logger.With("run_id", trace.RunID, "model", trace.Model)

	messages := make([]aisdk.Message, 0, len(req.Window)+1)
	if s.systemPrompt != "" {
		messages = append(messages, aisdk.Message{Role: aisdk.RoleSystem, Content: s.systemPrompt})
	}
	messages = append(messages, req.Window...)

	var tools []aisdk.ChatTool
	if req.Toolbox != nil {
		tools = agent.ToChatTools(req.Toolbox.Tools())
	}

	for step := 0; step < s.maxSteps; step++ {
		trace.Steps = step + 1

		response, err := s.reason(ctx, req.Model, trace, messages, tools)
		if err != nil {
			logger.Error("reasoning step failed", "step", step+1, "error", err)
			return &RunResult{
				Outcome:       OutcomeFailed,
				Answer:        FailedMessage,
				Trace:         trace,
				CorrelationID: trace.RunID,
			}, nil
		}
		trace.Usage.Add(response.Usage)

		choice := response.Choices[0].Message
		if len(choice.ToolCalls) == 0 {
			logger.Info("run complete", "steps", trace.Steps, "tool_calls", len(trace.ToolResults))
			return &RunResult{Outcome: OutcomeDone, Answer: choice.Content, Trace: trace}, nil
		}

		messages = append(messages, aisdk.Message{
			Role:      aisdk.RoleAssistant,
			Content:   choice.Content,
			ToolCalls: choice.ToolCalls,
		})

		results := s.executeToolCalls(ctx, req.Toolbox, trace, choice.ToolCalls)
		for _, result := range results {
			trace.ToolResults = append(trace.ToolResults, result)
			messages = append(messages, aisdk.Message{
				Role:       aisdk.RoleTool,
				Name:       result.Name,
				ToolCallID: result.CallID,
				Content:    result.Content,
			})
		}
	}

	logger.Warn("step limit exceeded", "max_steps", s.maxSteps, "tool_calls", len(trace.ToolResults))
	return &RunResult{Outcome: OutcomeStepLimitExceeded, Answer: StepLimitMessage, Trace: trace}, nil
}

// reason performs one timed reasoning-engine call, recording its duration
// on the trace.
func (s *Service) reason(ctx context.Context, model aisdk.ModelClient, trace *RunTrace, messages []aisdk.Message, tools []aisdk.ChatTool) (*aisdk.ChatCompletionResponse, error) {
	reasonCtx, cancel := context.WithTimeout(ctx, s.reasoningTimeout)
	defer cancel()

	start := time.Now()
	resp, err := model.CreateChatCompletion(reasonCtx, &aisdk.ChatCompletionRequest{
		Messages: messages,
		Tools:    tools,
	})
	trace.ReasoningSeconds += time.Since(start).Seconds()
	if err != nil {
		return nil, err
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("reasoning engine returned no choices")
	}
	return resp, nil
}
