package tool_benchmark

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agentforge/agentforge/src/aisdk"
	"github.com/agentforge/agentforge/src/ghostfolio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, client *ghostfolio.Client, args string) *aisdk.ToolResponse {
	t.Helper()
	tool, err := Tool(client)
	require.NoError(t, err)

	resp, err := tool.Execute(context.Background(), &aisdk.ToolCall{
		ID:   "call-1",
		Type: "function",
		Function: aisdk.FunctionCall{
			Name:      Name,
			Arguments: json.RawMessage(args),
		},
	})
	require.NoError(t, err)
	return resp
}

func newBenchmarkServer(t *testing.T, benchmarks []map[string]any, performance map[string]any) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/benchmarks", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(benchmarks)
	})
	mux.HandleFunc("/api/v2/portfolio/performance", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(performance)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestBenchmarkComparison(t *testing.T) {
	athSP := -0.0412
	athDJ := -0.2150
	server := newBenchmarkServer(t,
		[]map[string]any{
			{
				"name":            "S&P 500",
				"symbol":          "SPY",
				"marketCondition": "ALL_TIME_HIGH",
				"trend50d":        "UP",
				"trend200d":       "UP",
				"performances":    map[string]any{"allTimeHigh": map[string]any{"performancePercent": athSP}},
			},
			{
				"name":            "Dow Jones",
				"symbol":          "DJI",
				"marketCondition": "BEAR_MARKET",
				"trend50d":        "DOWN",
				"trend200d":       "DOWN",
				"performances":    map[string]any{"allTimeHigh": map[string]any{"performancePercent": athDJ}},
			},
		},
		map[string]any{
			"performance": map[string]any{
				"netPerformancePercentage":   0.18,
				"currentValueInBaseCurrency": 50000.0,
				"currency":                   "USD",
			},
		},
	)

	client := ghostfolio.NewClient(ghostfolio.Config{BaseURL: server.URL})
	resp := execute(t, client, `{"range":"1y"}`)

	require.False(t, resp.IsError)
	content := string(resp.Content)

	assert.Contains(t, content, "**Benchmark Comparison (1y)**")
	assert.Contains(t, content, "**Your Portfolio:** 18.00% net return (1y)")
	assert.Contains(t, content, "**Current Value:** 50,000.00 USD")
	assert.Contains(t, content, "| S&P 500 | SPY | -4.12% | All-Time High | UP | UP |")
	assert.Contains(t, content, "| Dow Jones | DJI | -21.50% | Bear Market | DOWN | DOWN |")

	// Each benchmark's summary line carries its own ATH figure.
	assert.Contains(t, content, "- S&P 500 is -4.12% from its all-time high (market condition: All-Time High)")
	assert.Contains(t, content, "- Dow Jones is -21.50% from its all-time high (market condition: Bear Market)")
}

func TestBenchmarkComparisonDefaultsToMax(t *testing.T) {
	rangeSeen := ""
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/benchmarks", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{})
	})
	mux.HandleFunc("/api/v2/portfolio/performance", func(w http.ResponseWriter, r *http.Request) {
		rangeSeen = r.URL.Query().Get("range")
		json.NewEncoder(w).Encode(map[string]any{"performance": map[string]any{}})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := ghostfolio.NewClient(ghostfolio.Config{BaseURL: server.URL})
	resp := execute(t, client, `{}`)

	require.False(t, resp.IsError)
	assert.Equal(t, "max", rangeSeen)
	assert.Contains(t, string(resp.Content), "No benchmarks configured.")
}

func TestBenchmarkComparisonMissingData(t *testing.T) {
	server := newBenchmarkServer(t,
		[]map[string]any{
			{"name": "S&P 500", "symbol": "SPY"},
		},
		map[string]any{"performance": map[string]any{}},
	)

	client := ghostfolio.NewClient(ghostfolio.Config{BaseURL: server.URL})
	resp := execute(t, client, `{"range":"ytd"}`)

	require.False(t, resp.IsError)
	content := string(resp.Content)

	// No portfolio figures and no ATH data: placeholders instead of zeros.
	assert.NotContains(t, content, "**Your Portfolio:**")
	assert.Contains(t, content, "| S&P 500 | SPY | N/A | N/A | N/A | N/A |")
}
