package executor

import (
	"time"

	"github.com/agentforge/agentforge/src/aisdk"
)

// Outcome is the terminal state of a reasoning loop run.
type Outcome int

const (
	// OutcomeDone means the model produced a final answer.
	OutcomeDone Outcome = iota
	// OutcomeStepLimitExceeded means the loop hit the step ceiling before
	// the model converged on an answer.
	OutcomeStepLimitExceeded
	// OutcomeFailed means the reasoning engine itself faulted.
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDone:
		return "done"
	case OutcomeStepLimitExceeded:
		return "step_limit_exceeded"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ToolCallResult is the normalized record of one dispatched tool call.
type ToolCallResult struct {
	Name     string
	CallID   string
	OK       bool
	Content  string
	Duration time.Duration
}

// RunTrace is the complete record of one request's reasoning and tool
// activity, consumed by the verification pipeline and the metrics engine.
type RunTrace struct {
	RunID            string
	Model            string
	Steps            int
	ToolResults      []ToolCallResult
	Usage            aisdk.Usage
	ReasoningSeconds float64
	ToolSeconds      float64
}

// ToolsUsed returns the distinct tool names invoked during the run, in
// first-use order.
func (t *RunTrace) ToolsUsed() []string {
	seen := make(map[string]bool, len(t.ToolResults))
	var names []string
	for _, r := range t.ToolResults {
		if !seen[r.Name] {
			seen[r.Name] = true
			names = append(names, r.Name)
		}
	}
	return names
}

// ToolOutputs returns the raw content of every tool call, successful or
// not. Failed results are evidence too: confidence scoring counts them.
func (t *RunTrace) ToolOutputs() []string {
	outputs := make([]string, 0, len(t.ToolResults))
	for _, r := range t.ToolResults {
		outputs = append(outputs, r.Content)
	}
	return outputs
}

// ToolErrorCount returns how many tool calls failed during the run.
func (t *RunTrace) ToolErrorCount() int {
	n := 0
	for _, r := range t.ToolResults {
		if !r.OK {
			n++
		}
	}
	return n
}
