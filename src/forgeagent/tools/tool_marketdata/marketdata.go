package tool_marketdata

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/agentforge/agentforge/src/agent"
	"github.com/agentforge/agentforge/src/forgeagent/toolsutil"
	"github.com/agentforge/agentforge/src/ghostfolio"
)

// Tool name constant
const Name = "market_data"

const marketDataPrompt = `Look up market data for a ticker symbol or search term. Returns asset
profile information (name, sector, price, currency) for known symbols, or
a list of search results when the exact symbol is not found.

Usage:
- query can be a ticker symbol (e.g. "AAPL") or a search term (e.g. "Apple")
- data_source defaults to YAHOO`

const maxSearchRows = 20
const maxProfileCountries = 5

// MarketDataInput represents the parameters for market_data
type MarketDataInput struct {
	Query      string `json:"query" required:"true" description:"A ticker symbol (e.g. AAPL) or search term (e.g. Apple)"`
	DataSource string `json:"data_source,omitempty" description:"Data source to query. Defaults to YAHOO."`
}

// Tool returns the market_data tool definition using GenericTool
func Tool(client *ghostfolio.Client) (agent.Tool, error) {
	return agent.NewGenericTool(Name, marketDataPrompt, makeMarketDataHandler(client))
}

func makeMarketDataHandler(client *ghostfolio.Client) agent.GenericToolHandler[MarketDataInput] {
	return func(ctx context.Context, input MarketDataInput) (string, error) {
		source := input.DataSource
		if source == "" {
			source = "YAHOO"
		}

		profile, err := client.SymbolProfile(ctx, source, strings.ToUpper(input.Query))
		if err == nil && profile.Symbol != "" {
			return formatProfile(profile), nil
		}
		if err != nil {
			var apiErr *ghostfolio.APIError
			if !errors.As(err, &apiErr) || !apiErr.IsNotFound() {
				return "", fmt.Errorf("fetching market data: %w", err)
			}
		}

		// Symbol lookup failed, run a fuzzy search instead.
		results, err := client.SymbolLookup(ctx, input.Query)
		if err != nil {
			return "", fmt.Errorf("searching symbols: %w", err)
		}
		if len(results.Items) == 0 {
			return "", fmt.Errorf("no results found for %q: %w", input.Query, agent.ErrNotFound)
		}

		return formatSearchResults(results.Items), nil
	}
}

func formatProfile(profile *ghostfolio.SymbolProfile) string {
	t := toolsutil.NewTable("Field", "Value")
	t.AddRow("Current Price", fmt.Sprintf("%s %s", toolsutil.FormatMoney(profile.MarketPrice), profile.Currency))
	t.AddRow("Asset Class", orNA(profile.AssetClass))
	t.AddRow("Sub Class", orNA(profile.AssetSubClass))

	sector := "N/A"
	if len(profile.Sectors) > 0 && profile.Sectors[0].Name != "" {
		sector = profile.Sectors[0].Name
	}
	t.AddRow("Sector", sector)
	t.AddRow("Currency", orNA(profile.Currency))

	if len(profile.Countries) > 0 {
		names := make([]string, 0, maxProfileCountries)
		for i, c := range profile.Countries {
			if i == maxProfileCountries {
				break
			}
			names = append(names, c.Name)
		}
		t.AddRow("Countries", strings.Join(names, ", "))
	}

	return fmt.Sprintf("**%s** (%s)\n\n%s", profile.Name, profile.Symbol, t.String())
}

func formatSearchResults(items []ghostfolio.LookupItem) string {
	t := toolsutil.NewTable("Symbol", "Name", "Data Source", "Currency")
	for i, item := range items {
		if i == maxSearchRows {
			break
		}
		t.AddRow(item.Symbol, toolsutil.EscapeCell(item.Name), item.DataSource, item.Currency)
	}

	out := fmt.Sprintf("Found %d result(s):\n\n%s", len(items), t.String())
	if len(items) > maxSearchRows {
		out += fmt.Sprintf("\n*...and %d more results*", len(items)-maxSearchRows)
	}
	return out
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
