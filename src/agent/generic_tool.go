package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/agentforge/agentforge/src/aisdk"
	"github.com/swaggest/jsonschema-go"
)

// ErrNotFound is returned by handlers when a looked-up entity (typically a
// tradable symbol) resolves via neither direct lookup nor fuzzy search. The
// dispatcher converts it into a not-found result so the verification layer
// can use it as ground truth.
var ErrNotFound = errors.New("not found")

// GenericToolHandler is a type-safe handler function. The returned string is
// the textual observation handed back to the reasoning engine.
type GenericToolHandler[TInput any] func(ctx context.Context, input TInput) (string, error)

// GenericTool is a type-safe tool with a JSON schema reflected from its
// input struct.
type GenericTool[TInput any] struct {
	Type        string
	Name        string
	Description string
	Kind        Kind
	InputType   reflect.Type
	Schema      *jsonschema.Schema
	Handler     GenericToolHandler[TInput]
}

// GetType returns the tool type (always "function" for now)
func (gt *GenericTool[TInput]) GetType() string {
	return gt.Type
}

// GetName returns the tool's name
func (gt *GenericTool[TInput]) GetName() string {
	return gt.Name
}

// GetDescription returns the tool's description
func (gt *GenericTool[TInput]) GetDescription() string {
	return gt.Description
}

// GetKind reports whether the tool reads or writes external state
func (gt *GenericTool[TInput]) GetKind() Kind {
	return gt.Kind
}

// GetParameters returns the JSON schema for the tool's parameters
func (gt *GenericTool[TInput]) GetParameters() *jsonschema.Schema {
	return gt.Schema
}

// Execute runs the tool with the given parameters. All failures are encoded
// in the response; the returned error is always nil so the loop observes
// failures instead of aborting on them.
func (gt *GenericTool[TInput]) Execute(ctx context.Context, call *aisdk.ToolCall) (*aisdk.ToolResponse, error) {
	var input TInput
	if err := json.Unmarshal(call.Function.Arguments, &input); err != nil {
		return &aisdk.ToolResponse{
			Type:    aisdk.ResponseError,
			Content: []byte(fmt.Sprintf("Invalid arguments for %s: %v", gt.Name, err)),
			IsError: true,
		}, nil
	}

	if err := gt.validateRequired(input); err != nil {
		return &aisdk.ToolResponse{
			Type:    aisdk.ResponseError,
			Content: []byte(fmt.Sprintf("Invalid arguments for %s: %v", gt.Name, err)),
			IsError: true,
		}, nil
	}

	output, err := gt.Handler(ctx, input)
	if err != nil {
		responseType := aisdk.ResponseError
		if errors.Is(err, ErrNotFound) {
			responseType = aisdk.ResponseNotFound
		}
		return &aisdk.ToolResponse{
			Type:    responseType,
			Content: []byte(err.Error()),
			IsError: true,
		}, nil
	}

	return &aisdk.ToolResponse{
		Type:    aisdk.ResponseSuccess,
		Content: []byte(output),
	}, nil
}

// validateRequired checks that required fields are not zero-valued.
func (gt *GenericTool[TInput]) validateRequired(input TInput) error {
	if gt.Schema == nil || gt.Schema.Required == nil {
		return nil
	}

	val := reflect.ValueOf(input)
	typ := val.Type()

	for _, requiredField := range gt.Schema.Required {
		found := false
		for i := 0; i < typ.NumField(); i++ {
			field := typ.Field(i)
			jsonTag := field.Tag.Get("json")
			fieldName := strings.Split(jsonTag, ",")[0]

			if fieldName == requiredField {
				found = true
				if val.Field(i).IsZero() {
					return fmt.Errorf("required field '%s' is missing", requiredField)
				}
				break
			}
		}

		if !found {
			return fmt.Errorf("required field '%s' not found in struct", requiredField)
		}
	}

	return nil
}

// NewGenericTool creates a read-kind tool with automatic schema generation.
func NewGenericTool[TInput any](name, description string, handler GenericToolHandler[TInput]) (Tool, error) {
	return newGenericTool(name, description, KindRead, handler)
}

// NewWriteTool creates a write-kind tool. Write tools are refused at dispatch
// unless the request context carries explicit user confirmation.
func NewWriteTool[TInput any](name, description string, handler GenericToolHandler[TInput]) (Tool, error) {
	return newGenericTool(name, description, KindWrite, handler)
}

func newGenericTool[TInput any](name, description string, kind Kind, handler GenericToolHandler[TInput]) (Tool, error) {
	var input TInput
	inputType := reflect.TypeOf(input)

	if inputType.Kind() == reflect.Ptr {
		if inputType.Elem().Kind() != reflect.Struct {
			return nil, fmt.Errorf("tool input type must be a struct, got %s", inputType.Elem().Kind())
		}
	} else if inputType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("tool input type must be a struct, got %s", inputType.Kind())
	}

	// Generate JSON Schema from the input type
	reflector := jsonschema.Reflector{}
	schema, err := reflector.Reflect(input)
	if err != nil {
		return nil, fmt.Errorf("failed to generate schema: %w", err)
	}

	return &GenericTool[TInput]{
		Type:        "function",
		Name:        name,
		Description: description,
		Kind:        kind,
		InputType:   inputType,
		Schema:      &schema,
		Handler:     handler,
	}, nil
}

// MustNewGenericTool creates a new read tool and panics on error.
func MustNewGenericTool[TInput any](name, description string, handler GenericToolHandler[TInput]) Tool {
	tool, err := NewGenericTool(name, description, handler)
	if err != nil {
		panic(fmt.Sprintf("failed to create generic tool: %v", err))
	}
	return tool
}

// Ensure GenericTool implements the Tool interface
var _ Tool = (*GenericTool[struct{}])(nil)
