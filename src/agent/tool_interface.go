package agent

import (
	"context"

	"github.com/agentforge/agentforge/src/aisdk"
	jsonschema "github.com/swaggest/jsonschema-go"
)

// Kind classifies a tool by its effect on external state.
type Kind string

const (
	// KindRead marks tools that only observe external data.
	KindRead Kind = "read"
	// KindWrite marks tools that mutate external state. Write tools require
	// explicit user confirmation before dispatch will execute them.
	KindWrite Kind = "write"
)

// Tool is the interface that all tools must implement
type Tool interface {
	// GetType returns the tool type (always "function" for now)
	GetType() string

	// GetName returns the tool's name
	GetName() string

	// GetDescription returns the tool's description
	GetDescription() string

	// GetKind reports whether the tool reads or writes external state
	GetKind() Kind

	// GetParameters returns the JSON schema for the tool's parameters
	GetParameters() *jsonschema.Schema

	// Execute runs the tool with the given parameters
	Execute(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error)
}
