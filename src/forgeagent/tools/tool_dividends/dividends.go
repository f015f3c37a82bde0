package tool_dividends

import (
	"context"
	"fmt"
	"strings"

	"github.com/agentforge/agentforge/src/agent"
	"github.com/agentforge/agentforge/src/forgeagent/toolsutil"
	"github.com/agentforge/agentforge/src/ghostfolio"
)

// Tool name constant
const Name = "dividend_analysis"

const dividendsPrompt = `Analyze dividend income, dividend history, and dividend payments from the
portfolio. Returns dividend payments grouped by month, with totals and
investment amounts. Use this tool for any questions about dividends,
dividend yield, dividend income, or dividend history.

Usage:
- The range parameter selects the window: 1d, ytd, 1y, 5y, max
- Defaults to max when range is not specified`

// DividendsInput represents the parameters for dividend_analysis
type DividendsInput struct {
	Range string `json:"range,omitempty" description:"Time range for dividend data: 1d, ytd, 1y, 5y, max. Defaults to max."`
}

// Tool returns the dividend_analysis tool definition using GenericTool
func Tool(client *ghostfolio.Client) (agent.Tool, error) {
	return agent.NewGenericTool(Name, dividendsPrompt, makeDividendsHandler(client))
}

func makeDividendsHandler(client *ghostfolio.Client) agent.GenericToolHandler[DividendsInput] {
	return func(ctx context.Context, input DividendsInput) (string, error) {
		effectiveRange := input.Range
		if effectiveRange == "" {
			effectiveRange = "max"
		}

		data, err := client.Dividends(ctx, effectiveRange)
		if err != nil {
			return "", fmt.Errorf("fetching dividend data: %w", err)
		}

		if len(data.Dividends) == 0 {
			return "No dividend data found for the selected period.", nil
		}

		var total float64
		t := toolsutil.NewTable("Date", "Dividend", "Currency")
		for _, entry := range data.Dividends {
			total += entry.Investment
			if entry.Investment <= 0 {
				continue
			}
			currency := entry.Currency
			if currency == "" {
				currency = "USD"
			}
			date := entry.Date
			if len(date) > 10 {
				date = date[:10]
			}
			t.AddRow(date, toolsutil.FormatMoney(entry.Investment), currency)
		}

		var lines []string
		lines = append(lines,
			fmt.Sprintf("**Dividend Analysis (%s)**", effectiveRange),
			"",
			t.String(),
			"",
			fmt.Sprintf("**Total Dividends:** %s", toolsutil.FormatMoney(total)),
		)
		return strings.Join(lines, "\n"), nil
	}
}
