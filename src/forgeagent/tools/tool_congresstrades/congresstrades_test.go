package tool_congresstrades

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/agentforge/agentforge/src/aisdk"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, config Config, args string) *aisdk.ToolResponse {
	t.Helper()
	tool, err := Tool(config)
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

func mockConfig(t *testing.T, trades []Trade) Config {
	t.Helper()
	fs := afero.NewMemMapFs()
	data, err := json.Marshal(trades)
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fs, "trades.json", data, 0o644))
	return Config{MockFS: fs, MockPath: "trades.json"}
}

func recentDate(daysAgo int) string {
	return time.Now().AddDate(0, 0, -daysAgo).Format("2006-01-02")
}

func TestCongressionalTradesFromFixture(t *testing.T) {
	config := mockConfig(t, []Trade{
		{
			Representative:  "Nancy Pelosi",
			Party:           "D",
			House:           "Representatives",
			Ticker:          "NVDA",
			Transaction:     "Purchase",
			Range:           "$1,000,001 - $5,000,000",
			TransactionDate: recentDate(10),
			ReportDate:      recentDate(5),
		},
		{
			Representative:  "Tommy Tuberville",
			Party:           "R",
			House:           "Senate",
			Ticker:          "AAPL",
			Transaction:     "Sale",
			Range:           "$15,001 - $50,000",
			TransactionDate: recentDate(30),
			ReportDate:      recentDate(20),
		},
		{
			Representative:  "Old Trader",
			House:           "Senate",
			Ticker:          "MSFT",
			Transaction:     "Purchase",
			TransactionDate: "2019-01-01",
		},
	})

	resp := execute(t, config, `{}`)
	require.False(t, resp.IsError)
	content := string(resp.Content)

	assert.Contains(t, content, "**Congressional Stock Trades**")
	assert.Contains(t, content, "Nancy Pelosi")
	assert.Contains(t, content, "Tommy Tuberville")
	// Outside the default 90-day window.
	assert.NotContains(t, content, "Old Trader")
	assert.Contains(t, content, "self-reported")
}

func TestCongressionalTradesFilters(t *testing.T) {
	config := mockConfig(t, []Trade{
		{Representative: "Nancy Pelosi", House: "Representatives", Ticker: "NVDA", TransactionDate: recentDate(10)},
		{Representative: "Tommy Tuberville", House: "Senate", Ticker: "AAPL", TransactionDate: recentDate(10)},
	})

	resp := execute(t, config, `{"chamber":"senate"}`)
	content := string(resp.Content)
	assert.Contains(t, content, "Tuberville")
	assert.NotContains(t, content, "Pelosi")

	resp = execute(t, config, `{"query":"pelosi"}`)
	content = string(resp.Content)
	assert.Contains(t, content, "Pelosi")
	assert.NotContains(t, content, "Tuberville")

	resp = execute(t, config, `{"ticker":"nvda"}`)
	content = string(resp.Content)
	assert.Contains(t, content, "NVDA")
	assert.NotContains(t, content, "AAPL")

	resp = execute(t, config, `{"chamber":"parliament"}`)
	assert.Equal(t, "Error: chamber must be 'senate' or 'house'.", string(resp.Content))

	resp = execute(t, config, `{"query":"warren"}`)
	assert.Contains(t, string(resp.Content), `No congressional trades found matching politician "warren" in the last 90 days.`)
}

func TestCongressionalTradesLiveEndpoints(t *testing.T) {
	var gotPath, gotAuth, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query().Get("representative")
		fmt.Fprint(w, `[{"Representative":"Nancy Pelosi","House":"Representatives","Ticker":"NVDA","Transaction":"Purchase","TransactionDate":"`+recentDate(3)+`"}]`)
	}))
	defer server.Close()

	config := Config{AuthToken: "quiver-token", BaseURL: server.URL}

	resp := execute(t, config, `{"ticker":"nvda"}`)
	require.False(t, resp.IsError)
	assert.Equal(t, "/historical/congresstrading/NVDA", gotPath)
	assert.Equal(t, "Bearer quiver-token", gotAuth)

	execute(t, config, `{"chamber":"house","query":"Pelosi"}`)
	assert.Equal(t, "/live/housetrading", gotPath)
	assert.Equal(t, "Pelosi", gotQuery)

	execute(t, config, `{"chamber":"senate"}`)
	assert.Equal(t, "/live/senatetrading", gotPath)

	execute(t, config, `{}`)
	assert.Equal(t, "/live/congresstrading", gotPath)
}

func TestCongressionalTradesMissingToken(t *testing.T) {
	resp := execute(t, Config{}, `{}`)
	assert.True(t, resp.IsError)
	assert.Contains(t, string(resp.Content), "missing API token")
}
