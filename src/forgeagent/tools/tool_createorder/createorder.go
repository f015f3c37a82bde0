package tool_createorder

import (
	"context"
	"fmt"
	"strings"

	"github.com/agentforge/agentforge/src/agent"
	"github.com/agentforge/agentforge/src/forgeagent/toolsutil"
	"github.com/agentforge/agentforge/src/ghostfolio"
)

// Tool name constant
const Name = "create_order"

const createOrderPrompt = `Create a new buy or sell order in the portfolio. You MUST have received
explicit user confirmation before calling this tool.

Usage:
- symbol is the ticker symbol (e.g. "AAPL", "VTI")
- type is one of: BUY, SELL, DIVIDEND, FEE, INTEREST, LIABILITY
- quantity must be positive, unit_price must be non-negative
- currency is an ISO 4217 code (e.g. "USD", "EUR")
- date is ISO 8601 (e.g. "2024-01-15T00:00:00Z")
- data_source defaults to YAHOO`

var validOrderTypes = []string{"BUY", "SELL", "DIVIDEND", "FEE", "INTEREST", "LIABILITY"}

// CreateOrderInput represents the parameters for create_order
type CreateOrderInput struct {
	Symbol     string  `json:"symbol" required:"true" description:"Ticker symbol (e.g. AAPL, VTI)"`
	Type       string  `json:"type" required:"true" description:"Order type: BUY, SELL, DIVIDEND, FEE, INTEREST, LIABILITY"`
	Quantity   float64 `json:"quantity" required:"true" description:"Number of shares/units. Must be positive."`
	UnitPrice  float64 `json:"unit_price" description:"Price per share/unit. Must be non-negative."`
	Currency   string  `json:"currency" required:"true" description:"ISO 4217 currency code (e.g. USD, EUR)"`
	Date       string  `json:"date" required:"true" description:"Order date in ISO 8601 format (e.g. 2024-01-15T00:00:00Z)"`
	Fee        float64 `json:"fee,omitempty" description:"Transaction fee. Defaults to 0."`
	AccountID  string  `json:"account_id,omitempty" description:"Account ID to associate the order with"`
	DataSource string  `json:"data_source,omitempty" description:"Data source for the symbol. Defaults to YAHOO."`
}

// Tool returns the create_order tool definition using GenericTool
func Tool(client *ghostfolio.Client) (agent.Tool, error) {
	return agent.NewWriteTool(Name, createOrderPrompt, makeCreateOrderHandler(client))
}

func makeCreateOrderHandler(client *ghostfolio.Client) agent.GenericToolHandler[CreateOrderInput] {
	return func(ctx context.Context, input CreateOrderInput) (string, error) {
		if input.Quantity <= 0 {
			return "", fmt.Errorf("quantity must be positive, got %s", toolsutil.FormatQuantity(input.Quantity))
		}
		if input.UnitPrice < 0 {
			return "", fmt.Errorf("unit_price must be non-negative, got %s", toolsutil.FormatQuantity(input.UnitPrice))
		}
		orderType := strings.ToUpper(input.Type)
		if !isValidOrderType(orderType) {
			return "", fmt.Errorf("invalid order type %q, must be one of: %s",
				input.Type, strings.Join(validOrderTypes, ", "))
		}

		dataSource := input.DataSource
		if dataSource == "" {
			dataSource = "YAHOO"
		}

		// The symbol must resolve against the data source before any
		// order is placed. A typo here would silently create a position
		// in a nonexistent security.
		resolution, err := client.ResolveSymbol(ctx, dataSource, input.Symbol)
		if err != nil {
			return "", fmt.Errorf("verifying symbol %q: %w", input.Symbol, err)
		}
		if !resolution.Found {
			msg := fmt.Sprintf("symbol %q could not be verified", strings.ToUpper(input.Symbol))
			if text := resolution.SuggestionText(); text != "" {
				msg += ". Did you mean: " + text
			}
			return "", fmt.Errorf("%s: %w", msg, agent.ErrNotFound)
		}

		order, err := client.CreateOrder(ctx, &ghostfolio.OrderRequest{
			Symbol:     resolution.Symbol,
			Type:       orderType,
			Quantity:   input.Quantity,
			UnitPrice:  input.UnitPrice,
			Currency:   strings.ToUpper(input.Currency),
			Date:       input.Date,
			Fee:        input.Fee,
			DataSource: dataSource,
			AccountID:  input.AccountID,
		})
		if err != nil {
			return "", fmt.Errorf("creating order: %w", err)
		}

		currency := strings.ToUpper(input.Currency)
		t := toolsutil.NewTable("Field", "Value")
		t.AddRow("Order ID", orNA(order.ID))
		t.AddRow("Type", orderType)
		t.AddRow("Symbol", resolution.Symbol)
		t.AddRow("Quantity", toolsutil.FormatQuantity(input.Quantity))
		t.AddRow("Unit Price", fmt.Sprintf("%s %s", toolsutil.FormatMoney(input.UnitPrice), currency))
		t.AddRow("Fee", fmt.Sprintf("%s %s", toolsutil.FormatMoney(input.Fee), currency))
		t.AddRow("Date", input.Date)

		return "Order created successfully.\n\n" + t.String(), nil
	}
}

func isValidOrderType(t string) bool {
	for _, v := range validOrderTypes {
		if v == t {
			return true
		}
	}
	return false
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
