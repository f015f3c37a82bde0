package tool_congresstrades

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/agentforge/agentforge/src/agent"
	"github.com/agentforge/agentforge/src/forgeagent/toolsutil"
	"github.com/spf13/afero"
)

// Tool name constant
const Name = "congressional_trades"

const congressPrompt = `Fetch recent stock trades by members of the U.S. Congress. Use this when
users ask about politician stock trades, congressional trading activity, or
want to see what members of Congress are buying or selling.

Usage:
- query filters by politician name (e.g. "Pelosi", "Tuberville")
- chamber filters by chamber: "senate" or "house"
- ticker shows which politicians traded a specific stock (e.g. "NVDA")
- days controls how far back to look, default 90`

const (
	DefaultBaseURL = "https://api.quiverquant.com/beta"

	defaultDays    = 90
	maxTradeRows   = 20
	requestTimeout = 30 * time.Second
)

const selfReportNote = "*Note: Congressional trades are self-reported and may be disclosed " +
	"up to 45 days after the transaction date.*"

// Config carries the trading-data credentials and endpoint. When MockFS is
// set, trades are read from MockPath instead of the live API.
type Config struct {
	AuthToken  string
	BaseURL    string
	HTTPClient *http.Client
	MockFS     afero.Fs
	MockPath   string
}

// CongressInput represents the parameters for congressional_trades
type CongressInput struct {
	Query   string `json:"query,omitempty" description:"Politician name to filter by (e.g. Pelosi, Tuberville)"`
	Chamber string `json:"chamber,omitempty" description:"Chamber filter: senate or house"`
	Ticker  string `json:"ticker,omitempty" description:"Stock ticker to see which politicians traded it (e.g. NVDA)"`
	Days    int    `json:"days,omitempty" description:"How many days back to look. Defaults to 90."`
}

// Trade is one disclosed transaction. Field names follow the provider's
// JSON payload.
type Trade struct {
	Representative  string `json:"Representative"`
	Party           string `json:"Party"`
	House           string `json:"House"`
	Ticker          string `json:"Ticker"`
	Transaction     string `json:"Transaction"`
	Range           string `json:"Range"`
	Amount          string `json:"Amount"`
	TransactionDate string `json:"TransactionDate"`
	Date            string `json:"Date"`
	ReportDate      string `json:"ReportDate"`
}

func (t *Trade) date() string {
	if t.TransactionDate != "" {
		return t.TransactionDate
	}
	return t.Date
}

// Tool returns the congressional_trades tool definition using GenericTool
func Tool(config Config) (agent.Tool, error) {
	return agent.NewGenericTool(Name, congressPrompt, makeCongressHandler(config))
}

func makeCongressHandler(config Config) agent.GenericToolHandler[CongressInput] {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.HTTPClient == nil {
		config.HTTPClient = &http.Client{Timeout: requestTimeout}
	}
	mock := config.MockFS != nil

	return func(ctx context.Context, input CongressInput) (string, error) {
		chamber := strings.ToLower(input.Chamber)
		if chamber != "" && chamber != "senate" && chamber != "house" {
			return "Error: chamber must be 'senate' or 'house'.", nil
		}

		days := input.Days
		if days <= 0 {
			days = defaultDays
		}

		var trades []Trade
		var err error
		if mock {
			trades, err = loadMockTrades(config)
		} else {
			trades, err = fetchTrades(ctx, config, input.Ticker, chamber, input.Query)
		}
		if err != nil {
			return "", err
		}

		if len(trades) == 0 {
			return "No congressional trading data available.", nil
		}

		cutoff := time.Now().AddDate(0, 0, -days)
		trades = filterByDate(trades, cutoff)

		// The live API filters server-side; the fixture path replays the
		// same filters client-side.
		if mock {
			trades = filterMockTrades(trades, input.Query, chamber, input.Ticker)
		}

		if len(trades) == 0 {
			return noMatchesMessage(input.Query, input.Chamber, input.Ticker, days), nil
		}

		sort.Slice(trades, func(i, j int) bool {
			return trades[i].date() > trades[j].date()
		})
		if len(trades) > maxTradeRows {
			trades = trades[:maxTradeRows]
		}

		return formatTrades(trades), nil
	}
}

func fetchTrades(ctx context.Context, config Config, ticker, chamber, query string) ([]Trade, error) {
	if config.AuthToken == "" {
		return nil, fmt.Errorf("congressional trades is not configured: missing API token")
	}

	// Pick the most specific endpoint to minimize data transfer.
	var endpoint string
	params := url.Values{}
	switch {
	case ticker != "":
		endpoint = "/historical/congresstrading/" + strings.ToUpper(ticker)
	case chamber == "house":
		endpoint = "/live/housetrading"
	case chamber == "senate":
		endpoint = "/live/senatetrading"
	default:
		endpoint = "/live/congresstrading"
	}
	if ticker == "" && query != "" {
		params.Set("representative", query)
	}

	u := config.BaseURL + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building trades request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+config.AuthToken)

	resp, err := config.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching congressional trades: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching congressional trades: HTTP %d", resp.StatusCode)
	}

	var trades []Trade
	if err := json.NewDecoder(resp.Body).Decode(&trades); err != nil {
		return nil, fmt.Errorf("decoding trades response: %w", err)
	}
	return trades, nil
}

func loadMockTrades(config Config) ([]Trade, error) {
	data, err := afero.ReadFile(config.MockFS, config.MockPath)
	if err != nil {
		return nil, fmt.Errorf("reading trade fixture: %w", err)
	}
	var trades []Trade
	if err := json.Unmarshal(data, &trades); err != nil {
		return nil, fmt.Errorf("parsing trade fixture: %w", err)
	}
	return trades, nil
}

func filterByDate(trades []Trade, cutoff time.Time) []Trade {
	out := trades[:0:0]
	for _, t := range trades {
		date := t.date()
		if len(date) >= 10 {
			if parsed, err := time.Parse("2006-01-02", date[:10]); err == nil && parsed.Before(cutoff) {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

func filterMockTrades(trades []Trade, query, chamber, ticker string) []Trade {
	out := trades[:0:0]
	for _, t := range trades {
		if query != "" && !strings.Contains(strings.ToLower(t.Representative), strings.ToLower(query)) {
			continue
		}
		if chamber != "" {
			// The provider labels house members "Representatives".
			target := "senate"
			if chamber == "house" {
				target = "representatives"
			}
			if !strings.EqualFold(t.House, target) {
				continue
			}
		}
		if ticker != "" && !strings.EqualFold(t.Ticker, ticker) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func noMatchesMessage(query, chamber, ticker string, days int) string {
	var parts []string
	if query != "" {
		parts = append(parts, fmt.Sprintf("politician %q", query))
	}
	if chamber != "" {
		parts = append(parts, fmt.Sprintf("chamber %q", chamber))
	}
	if ticker != "" {
		parts = append(parts, fmt.Sprintf("ticker %q", strings.ToUpper(ticker)))
	}
	var filter string
	if len(parts) > 0 {
		filter = " matching " + strings.Join(parts, ", ")
	}
	return fmt.Sprintf("No congressional trades found%s in the last %d days.", filter, days)
}

func formatTrades(trades []Trade) string {
	t := toolsutil.NewTable("Politician", "Party", "Chamber", "Ticker", "Transaction", "Amount", "Date", "Report Date")
	for _, trade := range trades {
		amount := trade.Range
		if amount == "" {
			amount = orNA(trade.Amount)
		}
		t.AddRow(
			toolsutil.EscapeCell(orNA(trade.Representative)),
			orNA(trade.Party),
			orNA(trade.House),
			orNA(trade.Ticker),
			orNA(trade.Transaction),
			amount,
			truncateDate(trade.date()),
			truncateDate(trade.ReportDate),
		)
	}
	return "**Congressional Stock Trades**\n\n" + t.String() + "\n\n" + selfReportNote
}

func truncateDate(date string) string {
	if date == "" {
		return "N/A"
	}
	if len(date) > 10 {
		return date[:10]
	}
	return date
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
