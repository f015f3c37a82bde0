package tool_deleteorder

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agentforge/agentforge/src/agent"
	"github.com/agentforge/agentforge/src/forgeagent/toolsutil"
	"github.com/agentforge/agentforge/src/ghostfolio"
)

// Tool name constant
const Name = "delete_order"

const deleteOrderPrompt = `Delete an existing order by its ID. You MUST have received explicit user
confirmation before calling this tool.

Use the transaction_history tool first to find order IDs.

Usage:
- order_id is the UUID of the order to delete`

// DeleteOrderInput represents the parameters for delete_order
type DeleteOrderInput struct {
	OrderID string `json:"order_id" required:"true" description:"The UUID of the order to delete"`
}

// Tool returns the delete_order tool definition using GenericTool
func Tool(client *ghostfolio.Client) (agent.Tool, error) {
	return agent.NewWriteTool(Name, deleteOrderPrompt, makeDeleteOrderHandler(client))
}

func makeDeleteOrderHandler(client *ghostfolio.Client) agent.GenericToolHandler[DeleteOrderInput] {
	return func(ctx context.Context, input DeleteOrderInput) (string, error) {
		orderID := strings.TrimSpace(input.OrderID)
		if orderID == "" {
			return "", fmt.Errorf("order_id is required")
		}

		deleted, err := client.DeleteOrder(ctx, orderID)
		if err != nil {
			var apiErr *ghostfolio.APIError
			if errors.As(err, &apiErr) && apiErr.IsNotFound() {
				return "", fmt.Errorf("order %q not found: %w", orderID, agent.ErrNotFound)
			}
			return "", fmt.Errorf("deleting order: %w", err)
		}

		if deleted == nil || deleted.ID == "" && deleted.Type == "" {
			return fmt.Sprintf("Order `%s` deleted successfully.", orderID), nil
		}

		t := toolsutil.NewTable("Field", "Value")
		t.AddRow("Order ID", orderID)
		t.AddRow("Type", orNA(deleted.Type))
		t.AddRow("Symbol", orNA(deleted.DisplaySymbol()))
		t.AddRow("Quantity", toolsutil.FormatQuantity(deleted.Quantity))

		return "Order deleted successfully.\n\n" + t.String(), nil
	}
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
