// Package history assembles the bounded conversation window handed to the
// reasoning engine.
package history

import "github.com/agentforge/agentforge/src/aisdk"

// DefaultWindowLimit bounds the conversation window when no limit is configured.
const DefaultWindowLimit = 40

// Assemble appends the incoming user message to the persisted conversation
// and truncates the combined sequence to the most recent limit messages,
// preserving relative order. Truncation never separates an assistant
// tool-call message from its tool results: when the cut would land inside
// such a group, the whole group is excluded. Returns the window and the
// number of messages dropped.
//
// Assemble is a pure function; it never mutates its inputs.
func Assemble(persisted []aisdk.Message, incoming aisdk.Message, limit int) ([]aisdk.Message, int) {
	if limit <= 0 {
		limit = DefaultWindowLimit
	}

	combined := make([]aisdk.Message, 0, len(persisted)+1)
	combined = append(combined, persisted...)
	combined = append(combined, incoming)

	if len(combined) <= limit {
		return combined, 0
	}

	start := len(combined) - limit

	// If the cut lands inside a tool-call group (an assistant message
	// carrying tool calls followed by its tool results), move the start
	// forward past the group so the pair is excluded atomically.
	start = skipPartialGroup(combined, start)

	window := combined[start:]
	return window, start
}

// skipPartialGroup advances start past any tool results whose originating
// assistant tool-call message fell outside the window. Since only a prefix is
// trimmed, a group can only be split by cutting between the assistant message
// and its results.
func skipPartialGroup(messages []aisdk.Message, start int) int {
	for start < len(messages) && messages[start].Role == aisdk.RoleTool {
		start++
	}
	return start
}
