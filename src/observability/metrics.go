package observability

import (
	"github.com/agentforge/agentforge/src/executor"
	"github.com/agentforge/agentforge/src/verify"
)

// LatencyBreakdown splits request latency into reasoning and tool time.
// The phases are measured independently and may overlap, so they need not
// sum to the total latency.
type LatencyBreakdown struct {
	ReasoningSeconds float64 `json:"reasoning_seconds"`
	ToolSeconds      float64 `json:"tool_seconds"`
}

// Metrics is the observability payload attached to a chat response.
type Metrics struct {
	LatencySeconds   float64              `json:"latency_seconds"`
	LatencyBreakdown LatencyBreakdown     `json:"latency_breakdown"`
	InputTokens      int                  `json:"input_tokens"`
	OutputTokens     int                  `json:"output_tokens"`
	TotalTokens      int                  `json:"total_tokens"`
	ToolCallCount    int                  `json:"tool_call_count"`
	ToolsUsed        []string             `json:"tools_used"`
	Steps            int                  `json:"steps"`
	Cost             Cost                 `json:"cost"`
	Verification     []verify.CheckResult `json:"verification,omitempty"`
	Outcome          string               `json:"outcome"`
}

// Summarize derives the metrics payload from a completed run trace. Pure:
// the trace is never mutated.
func Summarize(trace *executor.RunTrace, latencySeconds float64, pricing ModelPricing) Metrics {
	return Metrics{
		LatencySeconds: round3(latencySeconds),
		LatencyBreakdown: LatencyBreakdown{
			ReasoningSeconds: round3(trace.ReasoningSeconds),
			ToolSeconds:      round3(trace.ToolSeconds),
		},
		InputTokens:   trace.Usage.PromptTokens,
		OutputTokens:  trace.Usage.CompletionTokens,
		TotalTokens:   trace.Usage.TotalTokens,
		ToolCallCount: len(trace.ToolResults),
		ToolsUsed:     trace.ToolsUsed(),
		Steps:         trace.Steps,
		Cost:          pricing.CalculateCost(trace.Model, trace.Usage.PromptTokens, trace.Usage.CompletionTokens),
	}
}
