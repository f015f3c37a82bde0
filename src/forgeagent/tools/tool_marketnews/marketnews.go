package tool_marketnews

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/agentforge/agentforge/src/agent"
	"github.com/agentforge/agentforge/src/forgeagent/toolsutil"
)

// Tool name constant
const Name = "market_news"

const marketNewsPrompt = `Fetch recent financial news and market sentiment. Use this to provide
context when users ask why their portfolio or a specific holding moved,
or what's happening in the market. Returns headlines with sentiment scores.
Always pair news insights with actual portfolio data, never give advice
based on news alone.

Usage:
- symbol filters news for a specific ticker (e.g. AAPL, MSFT)
- topic filters by news topic; valid topics: blockchain, earnings, ipo,
  mergers_and_acquisitions, financial_markets, economy_fiscal,
  economy_monetary, economy_macro, energy_transportation, finance,
  life_sciences, manufacturing, real_estate, retail_wholesale, technology`

const (
	DefaultBaseURL = "https://www.alphavantage.co/query"

	maxArticles    = 5
	requestTimeout = 30 * time.Second
)

var validTopics = []string{
	"blockchain",
	"earnings",
	"ipo",
	"mergers_and_acquisitions",
	"financial_markets",
	"economy_fiscal",
	"economy_monetary",
	"economy_macro",
	"energy_transportation",
	"finance",
	"life_sciences",
	"manufacturing",
	"real_estate",
	"retail_wholesale",
	"technology",
}

// Config carries the news feed credentials and endpoint.
type Config struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// MarketNewsInput represents the parameters for market_news
type MarketNewsInput struct {
	Symbol string `json:"symbol,omitempty" description:"Ticker symbol to filter news for (e.g. AAPL, MSFT)"`
	Topic  string `json:"topic,omitempty" description:"Topic to filter news by (e.g. earnings, technology)"`
}

type article struct {
	Title                 string            `json:"title"`
	Source                string            `json:"source"`
	Summary               string            `json:"summary"`
	TimePublished         string            `json:"time_published"`
	OverallSentimentLabel string            `json:"overall_sentiment_label"`
	OverallSentimentScore float64           `json:"overall_sentiment_score"`
	TickerSentiment       []tickerSentiment `json:"ticker_sentiment"`
}

type tickerSentiment struct {
	Ticker               string `json:"ticker"`
	RelevanceScore       string `json:"relevance_score"`
	TickerSentimentLabel string `json:"ticker_sentiment_label"`
}

type newsResponse struct {
	Feed         []article `json:"feed"`
	ErrorMessage string    `json:"Error Message"`
	Note         string    `json:"Note"`
	Information  string    `json:"Information"`
}

// Tool returns the market_news tool definition using GenericTool
func Tool(config Config) (agent.Tool, error) {
	return agent.NewGenericTool(Name, marketNewsPrompt, makeMarketNewsHandler(config))
}

func makeMarketNewsHandler(config Config) agent.GenericToolHandler[MarketNewsInput] {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.HTTPClient == nil {
		config.HTTPClient = &http.Client{Timeout: requestTimeout}
	}

	return func(ctx context.Context, input MarketNewsInput) (string, error) {
		if config.APIKey == "" {
			return "", fmt.Errorf("market news is not configured: missing API key")
		}

		topic := strings.ToLower(input.Topic)
		if topic != "" && !isValidTopic(topic) {
			return fmt.Sprintf("Error: Invalid topic %q. Valid topics are: %s",
				input.Topic, strings.Join(validTopics, ", ")), nil
		}

		params := url.Values{}
		params.Set("function", "NEWS_SENTIMENT")
		params.Set("apikey", config.APIKey)
		symbol := strings.ToUpper(input.Symbol)
		if symbol != "" {
			params.Set("tickers", symbol)
		}
		if topic != "" {
			params.Set("topics", topic)
		}

		data, err := fetchNews(ctx, config, params)
		if err != nil {
			return "", err
		}

		if data.ErrorMessage != "" {
			return "", fmt.Errorf("news provider error: %s", data.ErrorMessage)
		}
		// The provider signals rate limiting through Note or Information
		// instead of an HTTP status code.
		if data.Note != "" || data.Information != "" {
			return "Market news is temporarily unavailable (API rate limit reached). Please try again later.", nil
		}

		if len(data.Feed) == 0 {
			var filter string
			if symbol != "" {
				filter += " for " + symbol
			}
			if topic != "" {
				filter += fmt.Sprintf(" on topic %q", topic)
			}
			return fmt.Sprintf("No recent news found%s.", filter), nil
		}

		return formatNews(data.Feed, symbol, topic), nil
	}
}

func fetchNews(ctx context.Context, config Config, params url.Values) (*newsResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, config.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("building news request: %w", err)
	}

	resp, err := config.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching news: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching news: HTTP %d", resp.StatusCode)
	}

	var data newsResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decoding news response: %w", err)
	}
	return &data, nil
}

func formatNews(feed []article, symbol, topic string) string {
	articles := feed
	if len(articles) > maxArticles {
		articles = articles[:maxArticles]
	}

	label := "Market News"
	if symbol != "" {
		label = "News for " + symbol
	}
	if topic != "" {
		label += fmt.Sprintf(" (%s)", topic)
	}

	t := toolsutil.NewTable("Date", "Headline", "Source", "Sentiment")
	for _, a := range articles {
		t.AddRow(
			formatPublished(a.TimePublished),
			toolsutil.EscapeCell(orNA(a.Title)),
			toolsutil.EscapeCell(orNA(a.Source)),
			orNA(a.OverallSentimentLabel),
		)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n\n%s\n\n**Summaries:**\n", label, t.String())

	for i, a := range articles {
		summary := a.Summary
		if summary == "" {
			summary = "No summary available."
		}
		fmt.Fprintf(&b, "%d. **%s** (sentiment score: %.4g)\n   %s\n", i+1, orNA(a.Title), a.OverallSentimentScore, summary)

		if symbol == "" {
			continue
		}
		for _, ts := range a.TickerSentiment {
			if strings.EqualFold(ts.Ticker, symbol) {
				fmt.Fprintf(&b, "   *%s sentiment: %s (relevance: %s)*\n",
					symbol, orNA(ts.TickerSentimentLabel), orNA(ts.RelevanceScore))
				break
			}
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

// formatPublished converts the provider's compact timestamp, e.g.
// "20231215T120000", into "2023-12-15 12:00".
func formatPublished(ts string) string {
	if ts == "" {
		return "N/A"
	}
	parsed, err := time.Parse("20060102T150405", ts)
	if err != nil {
		if len(ts) > 10 {
			return ts[:10]
		}
		return ts
	}
	return parsed.Format("2006-01-02 15:04")
}

func isValidTopic(topic string) bool {
	for _, t := range validTopics {
		if t == topic {
			return true
		}
	}
	return false
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
