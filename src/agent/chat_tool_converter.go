package agent

import (
	"github.com/agentforge/agentforge/src/aisdk"
)

// ToChatTool renders a registered tool as the wire definition sent to the
// model provider.
func ToChatTool(tool Tool) aisdk.ChatTool {
	return aisdk.ChatTool{
		Type: tool.GetType(),
		Function: aisdk.ChatToolFunction{
			Name:        tool.GetName(),
			Description: tool.GetDescription(),
			Parameters:  tool.GetParameters(),
		},
	}
}

// ToChatTools renders the whole catalog for a completion request.
func ToChatTools(tools []Tool) []aisdk.ChatTool {
	chatTools := make([]aisdk.ChatTool, len(tools))
	for i, tool := range tools {
		chatTools[i] = ToChatTool(tool)
	}
	return chatTools
}
