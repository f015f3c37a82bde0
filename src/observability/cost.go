// Package observability derives cost and latency metrics from a completed run.
package observability

import "math"

// ModelRate is the per-million-token price of one model in USD.
type ModelRate struct {
	InputPerMillion  float64
	OutputPerMillion float64
}

// ModelPricing maps model identifiers to their rates. Lookups fall back to
// the default model's rate so cost is never silently zero.
type ModelPricing struct {
	Rates        map[string]ModelRate
	DefaultModel string
}

// DefaultPricing returns the current OpenAI GPT-4o rates per 1M tokens.
// Updated 2025-01; adjust when rates change.
func DefaultPricing() ModelPricing {
	return ModelPricing{
		Rates: map[string]ModelRate{
			"gpt-4o":      {InputPerMillion: 2.50, OutputPerMillion: 10.00},
			"gpt-4o-mini": {InputPerMillion: 0.15, OutputPerMillion: 0.60},
		},
		DefaultModel: "gpt-4o",
	}
}

// Cost is the USD cost breakdown of one run.
type Cost struct {
	Model         string  `json:"model"`
	InputTokens   int     `json:"input_tokens"`
	OutputTokens  int     `json:"output_tokens"`
	InputCostUSD  float64 `json:"input_cost_usd"`
	OutputCostUSD float64 `json:"output_cost_usd"`
	TotalCostUSD  float64 `json:"total_cost_usd"`
}

// CalculateCost derives the cost of a single run from its token counts.
func (p ModelPricing) CalculateCost(model string, inputTokens, outputTokens int) Cost {
	rate, ok := p.Rates[model]
	if !ok {
		rate = p.Rates[p.DefaultModel]
	}

	inputCost := float64(inputTokens) / 1e6 * rate.InputPerMillion
	outputCost := float64(outputTokens) / 1e6 * rate.OutputPerMillion

	return Cost{
		Model:         model,
		InputTokens:   inputTokens,
		OutputTokens:  outputTokens,
		InputCostUSD:  round6(inputCost),
		OutputCostUSD: round6(outputCost),
		TotalCostUSD:  round6(inputCost + outputCost),
	}
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}

func round3(v float64) float64 {
	return math.Round(v*1e3) / 1e3
}
