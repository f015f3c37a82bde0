package tool_accounts

import (
	"context"
	"fmt"
	"strings"

	"github.com/agentforge/agentforge/src/agent"
	"github.com/agentforge/agentforge/src/forgeagent/toolsutil"
	"github.com/agentforge/agentforge/src/ghostfolio"
)

// Tool name constant
const Name = "account_summary"

const accountsPrompt = `Get a summary of all investment accounts. Returns account names,
balances, currencies, and platform information.

No arguments needed. Returns all accounts.`

// AccountsInput represents the parameters for account_summary
type AccountsInput struct{}

// Tool returns the account_summary tool definition using GenericTool
func Tool(client *ghostfolio.Client) (agent.Tool, error) {
	return agent.NewGenericTool(Name, accountsPrompt, makeAccountsHandler(client))
}

func makeAccountsHandler(client *ghostfolio.Client) agent.GenericToolHandler[AccountsInput] {
	return func(ctx context.Context, _ AccountsInput) (string, error) {
		data, err := client.Accounts(ctx)
		if err != nil {
			return "", fmt.Errorf("fetching accounts: %w", err)
		}

		if len(data.Accounts) == 0 {
			return "No accounts found.", nil
		}

		var total float64
		t := toolsutil.NewTable("Account", "Platform", "Balance", "Value", "Currency")
		for _, acct := range data.Accounts {
			platform := "N/A"
			if acct.Platform != nil && acct.Platform.Name != "" {
				platform = acct.Platform.Name
			}
			total += acct.Value
			t.AddRow(
				toolsutil.EscapeCell(acct.Name),
				toolsutil.EscapeCell(platform),
				toolsutil.FormatMoney(acct.Balance),
				toolsutil.FormatMoney(acct.Value),
				acct.Currency,
			)
		}

		var lines []string
		lines = append(lines,
			"**Account Summary**",
			"",
			t.String(),
			"",
			fmt.Sprintf("**Total Value Across Accounts:** %s", toolsutil.FormatMoney(total)),
		)
		return strings.Join(lines, "\n"), nil
	}
}
