package tool_transactions

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/agentforge/agentforge/src/agent"
	"github.com/agentforge/agentforge/src/forgeagent/toolsutil"
	"github.com/agentforge/agentforge/src/ghostfolio"
)

// Tool name constant
const Name = "transaction_history"

const transactionsPrompt = `Retrieve the user's transaction history (buy/sell orders, dividends, fees).
Returns a table of recent activities sorted by date (newest first).

Use this tool when the user asks about their trades, purchases, sales,
dividends received, or any past transaction activity. You can filter by
symbol to answer questions like "when did I buy AAPL?" or by activity type
to answer "show my dividends".

Usage:
- accounts and asset_classes filter server-side (comma-separated values)
- symbol and activity_type filter the fetched activities client-side
- activity_type is one of: BUY, SELL, DIVIDEND, FEE, INTEREST, ITEM, LIABILITY
- take limits how many activities are fetched, default 50`

const defaultTake = 50

// TransactionsInput represents the parameters for transaction_history
type TransactionsInput struct {
	Accounts     string `json:"accounts,omitempty" description:"Comma-separated account IDs to filter by"`
	AssetClasses string `json:"asset_classes,omitempty" description:"Comma-separated asset classes to filter by (e.g. EQUITY,FIXED_INCOME)"`
	Symbol       string `json:"symbol,omitempty" description:"Ticker symbol to filter by (e.g. AAPL). Case-insensitive."`
	ActivityType string `json:"activity_type,omitempty" description:"Filter by transaction type: BUY, SELL, DIVIDEND, FEE, INTEREST, ITEM, LIABILITY"`
	Take         int    `json:"take,omitempty" description:"Maximum number of transactions to fetch. Defaults to 50."`
}

// Tool returns the transaction_history tool definition using GenericTool
func Tool(client *ghostfolio.Client) (agent.Tool, error) {
	return agent.NewGenericTool(Name, transactionsPrompt, makeTransactionsHandler(client))
}

func makeTransactionsHandler(client *ghostfolio.Client) agent.GenericToolHandler[TransactionsInput] {
	return func(ctx context.Context, input TransactionsInput) (string, error) {
		take := input.Take
		if take <= 0 {
			take = defaultTake
		}

		data, err := client.Transactions(ctx, ghostfolio.TransactionParams{
			Accounts:     input.Accounts,
			AssetClasses: input.AssetClasses,
			Take:         take,
		})
		if err != nil {
			return "", fmt.Errorf("fetching transactions: %w", err)
		}

		activities := data.Activities
		if len(activities) == 0 {
			return "No transactions found.", nil
		}

		activities = filterActivities(activities, input.Symbol, input.ActivityType)
		if len(activities) == 0 {
			var filters []string
			if input.Symbol != "" {
				filters = append(filters, "symbol="+input.Symbol)
			}
			if input.ActivityType != "" {
				filters = append(filters, "type="+input.ActivityType)
			}
			return fmt.Sprintf("No transactions found matching filters: %s.", strings.Join(filters, ", ")), nil
		}

		sort.Slice(activities, func(i, j int) bool {
			return activities[i].Date > activities[j].Date
		})

		t := toolsutil.NewTable("Date", "Type", "Symbol", "Name", "Quantity", "Unit Price", "Value", "Fee", "Currency", "Account")
		for _, a := range activities {
			name := ""
			if a.SymbolProfile != nil {
				name = a.SymbolProfile.Name
			}
			accountName := ""
			if a.Account != nil {
				accountName = a.Account.Name
			}
			t.AddRow(
				truncateDate(a.Date),
				a.Type,
				a.DisplaySymbol(),
				toolsutil.EscapeCell(name),
				toolsutil.FormatQuantity(a.Quantity),
				toolsutil.FormatMoney(a.UnitPrice),
				toolsutil.FormatMoney(a.Quantity*a.UnitPrice),
				toolsutil.FormatMoney(a.Fee),
				a.DisplayCurrency(),
				toolsutil.EscapeCell(accountName),
			)
		}

		return fmt.Sprintf("**Transactions** (showing %d activities)\n\n%s", len(activities), t.String()), nil
	}
}

func filterActivities(activities []ghostfolio.Activity, symbol, activityType string) []ghostfolio.Activity {
	if symbol == "" && activityType == "" {
		return activities
	}
	out := activities[:0:0]
	for _, a := range activities {
		if symbol != "" && !strings.EqualFold(a.DisplaySymbol(), symbol) {
			continue
		}
		if activityType != "" && !strings.EqualFold(a.Type, activityType) {
			continue
		}
		out = append(out, a)
	}
	return out
}

func truncateDate(date string) string {
	if len(date) > 10 {
		return date[:10]
	}
	return date
}
