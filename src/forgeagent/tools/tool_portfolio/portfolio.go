package tool_portfolio

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
const Name = "portfolio_analysis"

const portfolioPrompt = `Analyze the user's investment portfolio. Returns holdings with allocation
percentages, cost basis, profit/loss, total portfolio value, and performance
metrics. Also includes sector breakdown, country/region breakdown, and
account summary when available.

Usage:
- The range parameter selects the performance window: 1d, ytd, 1y, 5y, max
- Defaults to max when range is not specified`

const maxHoldingRows = 20
const maxBreakdownRows = 10

// PortfolioInput represents the parameters for portfolio_analysis
type PortfolioInput struct {
	Range string `json:"range,omitempty" description:"Time range for performance data: 1d, ytd, 1y, 5y, max. Defaults to max."`
}

// Tool returns the portfolio_analysis tool definition using GenericTool
func Tool(client *ghostfolio.Client) (agent.Tool, error) {
	return agent.NewGenericTool(Name, portfolioPrompt, makePortfolioHandler(client))
}

func makePortfolioHandler(client *ghostfolio.Client) agent.GenericToolHandler[PortfolioInput] {
	return func(ctx context.Context, input PortfolioInput) (string, error) {
		effectiveRange := input.Range
		if effectiveRange == "" {
			effectiveRange = "max"
		}

		details, err := client.PortfolioDetails(ctx, effectiveRange)
		if err != nil {
			return "", fmt.Errorf("fetching portfolio data: %w", err)
		}
		performance, err := client.Performance(ctx, effectiveRange)
		if err != nil {
			return "", fmt.Errorf("fetching portfolio data: %w", err)
		}

		var lines []string

		summary := performance.Performance
		if summary != (ghostfolio.PerformanceSummary{}) {
			lines = append(lines,
				fmt.Sprintf("**Portfolio Value:** %s %s", toolsutil.FormatMoney(summary.CurrentValue), summary.Currency),
				fmt.Sprintf("**Net Performance (%s):** %s", effectiveRange, toolsutil.FormatPercent(summary.NetPerformancePercentage)),
				"")
		}

		if len(details.Holdings) > 0 {
			holdings := sortedHoldings(details.Holdings)
			lines = append(lines, holdingsTable(holdings))
			if len(holdings) > maxHoldingRows {
				lines = append(lines, fmt.Sprintf("*...and %d more holdings*", len(holdings)-maxHoldingRows))
			}
			lines = append(lines, "")

			if t := breakdownTable("Sector Breakdown (top 10):", "Sector", sectorWeights(holdings)); t != "" {
				lines = append(lines, t, "")
			}
			if t := breakdownTable("Country/Region Breakdown (top 10):", "Country", countryWeights(holdings)); t != "" {
				lines = append(lines, t, "")
			}
		} else {
			lines = append(lines, "No holdings found in the portfolio.")
		}

		if len(details.Accounts) > 0 {
			lines = append(lines, accountsTable(details.Accounts), "")
		}

		return strings.Join(lines, "\n"), nil
	}
}

func sortedHoldings(m map[string]ghostfolio.Holding) []ghostfolio.Holding {
	holdings := make([]ghostfolio.Holding, 0, len(m))
	for _, h := range m {
		holdings = append(holdings, h)
	}
	sort.Slice(holdings, func(i, j int) bool {
		return holdings[i].AllocationInPercentage > holdings[j].AllocationInPercentage
	})
	return holdings
}

func holdingsTable(holdings []ghostfolio.Holding) string {
	t := toolsutil.NewTable("Name", "Symbol", "Allocation", "Value", "Cost Basis", "P&L", "P&L %", "Currency")
	for i, h := range holdings {
		if i == maxHoldingRows {
			break
		}
		t.AddRow(
			toolsutil.EscapeCell(h.Name),
			h.Symbol,
			toolsutil.FormatPercent(h.AllocationInPercentage),
			toolsutil.FormatMoney(h.Value),
			toolsutil.FormatMoney(h.Investment),
			toolsutil.FormatSignedMoney(h.NetPerformance),
			toolsutil.FormatSignedPercent(h.NetPerformancePercent),
			h.Currency,
		)
	}
	return t.String()
}

type weighted struct {
	name   string
	weight float64
}

// Sector and country weights are scaled by each holding's allocation so the
// breakdown reflects the whole portfolio rather than individual positions.
func sectorWeights(holdings []ghostfolio.Holding) []weighted {
	acc := map[string]float64{}
	for _, h := range holdings {
		for _, s := range h.Sectors {
			name := s.Name
			if name == "" {
				name = "Unknown"
			}
			acc[name] += s.Weight * h.AllocationInPercentage
		}
	}
	return sortWeights(acc)
}

func countryWeights(holdings []ghostfolio.Holding) []weighted {
	acc := map[string]float64{}
	for _, h := range holdings {
		for _, c := range h.Countries {
			name := c.Name
			if name == "" {
				name = "Unknown"
			}
			acc[name] += c.Weight * h.AllocationInPercentage
		}
	}
	return sortWeights(acc)
}

func sortWeights(acc map[string]float64) []weighted {
	out := make([]weighted, 0, len(acc))
	for name, w := range acc {
		out = append(out, weighted{name, w})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].weight != out[j].weight {
			return out[i].weight > out[j].weight
		}
		return out[i].name < out[j].name
	})
	if len(out) > maxBreakdownRows {
		out = out[:maxBreakdownRows]
	}
	return out
}

func breakdownTable(title, column string, weights []weighted) string {
	if len(weights) == 0 {
		return ""
	}
	t := toolsutil.NewTable(column, "Weight")
	for _, w := range weights {
		t.AddRow(toolsutil.EscapeCell(w.name), toolsutil.FormatPercent(w.weight))
	}
	return "**" + title + "**\n" + t.String()
}

func accountsTable(accounts map[string]ghostfolio.DetailsAccount) string {
	names := make([]string, 0, len(accounts))
	for k := range accounts {
		names = append(names, k)
	}
	sort.Strings(names)

	t := toolsutil.NewTable("Account", "Balance", "Value", "Currency")
	for _, k := range names {
		a := accounts[k]
		t.AddRow(
			toolsutil.EscapeCell(a.Name),
			toolsutil.FormatMoney(a.Balance),
			toolsutil.FormatMoney(a.ValueInBaseCurrency),
			a.Currency,
		)
	}
	return "**Accounts:**\n" + t.String()
}
