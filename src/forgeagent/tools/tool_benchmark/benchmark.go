package tool_benchmark

import (
	"context"
	"fmt"
	"strings"

	"github.com/agentforge/agentforge/src/agent"
	"github.com/agentforge/agentforge/src/forgeagent/toolsutil"
	"github.com/agentforge/agentforge/src/ghostfolio"
)

// Tool name constant
const Name = "benchmark_comparison"

const benchmarkPrompt = `Compare portfolio performance against market benchmarks. Returns
benchmark index performance, market condition, and trend indicators
alongside the user's portfolio performance for the specified time range.

Use this tool when the user asks how their portfolio compares to an index
(e.g. S&P 500), wants to know about market conditions, or asks about
relative performance.

Usage:
- The range parameter selects the comparison window: 1d, ytd, 1y, 5y, max
- Defaults to max when range is not specified`

var marketConditionLabels = map[string]string{
	"ALL_TIME_HIGH":  "All-Time High",
	"BEAR_MARKET":    "Bear Market",
	"NEUTRAL_MARKET": "Neutral",
}

// BenchmarkInput represents the parameters for benchmark_comparison
type BenchmarkInput struct {
	Range string `json:"range,omitempty" description:"Time range for comparison: 1d, ytd, 1y, 5y, max. Defaults to max."`
}

// Tool returns the benchmark_comparison tool definition using GenericTool
func Tool(client *ghostfolio.Client) (agent.Tool, error) {
	return agent.NewGenericTool(Name, benchmarkPrompt, makeBenchmarkHandler(client))
}

func makeBenchmarkHandler(client *ghostfolio.Client) agent.GenericToolHandler[BenchmarkInput] {
	return func(ctx context.Context, input BenchmarkInput) (string, error) {
		effectiveRange := input.Range
		if effectiveRange == "" {
			effectiveRange = "max"
		}

		benchmarks, err := client.Benchmarks(ctx)
		if err != nil {
			return "", fmt.Errorf("fetching benchmark data: %w", err)
		}
		performance, err := client.Performance(ctx, effectiveRange)
		if err != nil {
			return "", fmt.Errorf("fetching benchmark data: %w", err)
		}

		var lines []string
		lines = append(lines, fmt.Sprintf("**Benchmark Comparison (%s)**", effectiveRange), "")

		summary := performance.Performance
		havePortfolio := summary != (ghostfolio.PerformanceSummary{})
		if havePortfolio {
			lines = append(lines, fmt.Sprintf("**Your Portfolio:** %s net return (%s)",
				toolsutil.FormatPercent(summary.NetPerformancePercentage), effectiveRange))
			value := summary.CurrentValueInBaseCurrency
			if value == 0 {
				value = summary.CurrentValue
			}
			lines = append(lines,
				fmt.Sprintf("**Current Value:** %s %s", toolsutil.FormatMoney(value), summary.Currency),
				"")
		}

		if len(benchmarks) == 0 {
			lines = append(lines, "No benchmarks configured.")
			return strings.Join(lines, "\n"), nil
		}

		t := toolsutil.NewTable("Benchmark", "Symbol", "Change from ATH", "Market Condition", "50d Trend", "200d Trend")
		for _, b := range benchmarks {
			t.AddRow(
				toolsutil.EscapeCell(orNA(b.Name)),
				orNA(b.Symbol),
				athChange(b),
				conditionLabel(b.MarketCondition),
				orNA(b.Trend50d),
				orNA(b.Trend200d),
			)
		}
		lines = append(lines, t.String())

		if havePortfolio {
			lines = append(lines, "", "**Summary:**")
			for _, b := range benchmarks {
				if b.Performances.AllTimeHigh.PerformancePercent == nil {
					continue
				}
				name := b.Name
				if name == "" {
					name = b.Symbol
				}
				lines = append(lines, fmt.Sprintf("- %s is %s from its all-time high (market condition: %s)",
					name, athChange(b), conditionLabel(b.MarketCondition)))
			}
		}

		return strings.Join(lines, "\n"), nil
	}
}

func athChange(b ghostfolio.Benchmark) string {
	if b.Performances.AllTimeHigh.PerformancePercent == nil {
		return "N/A"
	}
	return toolsutil.FormatPercent(*b.Performances.AllTimeHigh.PerformancePercent)
}

func conditionLabel(condition string) string {
	if label, ok := marketConditionLabels[condition]; ok {
		return label
	}
	if condition == "" {
		return "N/A"
	}
	return condition
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
