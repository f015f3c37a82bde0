package tool_risk

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
const Name = "risk_assessment"

const riskPrompt = `Analyze portfolio risk using the X-Ray analysis. Returns risk warnings
about concentration, currency exposure, fees, and diversification issues.

No arguments needed. Analyzes the current portfolio.`

// RiskInput represents the parameters for risk_assessment
type RiskInput struct{}

// Tool returns the risk_assessment tool definition using GenericTool
func Tool(client *ghostfolio.Client) (agent.Tool, error) {
	return agent.NewGenericTool(Name, riskPrompt, makeRiskHandler(client))
}

func makeRiskHandler(client *ghostfolio.Client) agent.GenericToolHandler[RiskInput] {
	return func(ctx context.Context, _ RiskInput) (string, error) {
		report, err := client.Report(ctx)
		if err != nil {
			return "", fmt.Errorf("fetching risk report: %w", err)
		}

		if len(report.Rules) == 0 {
			return "No risk analysis data available.", nil
		}

		categories := make([]string, 0, len(report.Rules))
		for c := range report.Rules {
			categories = append(categories, c)
		}
		sort.Strings(categories)

		var lines []string
		lines = append(lines, "**Portfolio Risk Assessment (X-Ray)**", "")

		for _, category := range categories {
			lines = append(lines, "### "+categoryLabel(category), "")

			rules := report.Rules[category]
			if len(rules) == 0 {
				lines = append(lines, "No rules evaluated.", "")
				continue
			}

			t := toolsutil.NewTable("Rule", "Status", "Value")
			for _, rule := range rules {
				status := "WARN"
				if rule.IsActive {
					status = "PASS"
				}
				name := rule.Name
				if name == "" {
					name = "Unknown"
				}
				t.AddRow(toolsutil.EscapeCell(name), status, toolsutil.EscapeCell(rule.Value))
			}
			lines = append(lines, t.String(), "")
		}

		return strings.TrimRight(strings.Join(lines, "\n"), "\n"), nil
	}
}

// categoryLabel turns a rule category key like "currency_cluster_risks"
// into "Currency Cluster Risks".
func categoryLabel(category string) string {
	words := strings.Split(strings.ReplaceAll(category, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
