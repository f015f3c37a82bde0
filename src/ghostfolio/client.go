// Package ghostfolio is a client for the Ghostfolio REST API, which backs the
// portfolio, market-data, and order tools.
package ghostfolio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// Config holds the configuration for the client.
type Config struct {
	BaseURL    string
	AuthToken  string
	RetryCount int
	RetryDelay time.Duration
	Timeout    time.Duration
	Logger     *slog.Logger
}

// Client is a Ghostfolio API client bound to a single bearer token.
type Client struct {
	config     Config
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new Ghostfolio API client.
func NewClient(config Config) *Client {
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")
	if config.RetryCount == 0 {
		config.RetryCount = 3
	}
	if config.RetryDelay == 0 {
		config.RetryDelay = 500 * time.Millisecond
	}
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "ghostfolio")

	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: config.Timeout,
		},
		logger: logger,
	}
}

// PortfolioDetails fetches holdings and per-account summaries.
func (c *Client) PortfolioDetails(ctx context.Context, timeRange string) (*PortfolioDetails, error) {
	params := url.Values{}
	if timeRange != "" {
		params.Set("range", timeRange)
	}
	var out PortfolioDetails
	if err := c.get(ctx, "/api/v1/portfolio/details", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Performance fetches aggregate portfolio performance for the given range.
func (c *Client) Performance(ctx context.Context, timeRange string) (*Performance, error) {
	params := url.Values{}
	if timeRange == "" {
		timeRange = "max"
	}
	params.Set("range", timeRange)
	var out Performance
	if err := c.get(ctx, "/api/v2/portfolio/performance", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Transactions lists order activities with optional filters.
func (c *Client) Transactions(ctx context.Context, p TransactionParams) (*Activities, error) {
	params := url.Values{}
	if p.Accounts != "" {
		params.Set("accounts", p.Accounts)
	}
	if p.AssetClasses != "" {
		params.Set("assetClasses", p.AssetClasses)
	}
	if p.Tags != "" {
		params.Set("tags", p.Tags)
	}
	if p.Skip > 0 {
		params.Set("skip", strconv.Itoa(p.Skip))
	}
	if p.Take > 0 {
		params.Set("take", strconv.Itoa(p.Take))
	}
	var out Activities
	if err := c.get(ctx, "/api/v1/order", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateOrder creates a new order activity.
func (c *Client) CreateOrder(ctx context.Context, order *OrderRequest) (*Activity, error) {
	var out Activity
	if err := c.do(ctx, http.MethodPost, "/api/v1/order", nil, order, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteOrder removes an order activity by id. The deleted activity is
// returned when the server includes it in the response body.
func (c *Client) DeleteOrder(ctx context.Context, orderID string) (*Activity, error) {
	var out Activity
	if err := c.do(ctx, http.MethodDelete, "/api/v1/order/"+url.PathEscape(orderID), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SymbolLookup runs a fuzzy symbol search.
func (c *Client) SymbolLookup(ctx context.Context, query string) (*LookupResult, error) {
	params := url.Values{}
	params.Set("query", query)
	var out LookupResult
	if err := c.get(ctx, "/api/v1/symbol/lookup", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SymbolProfile fetches the asset profile for an exact symbol.
func (c *Client) SymbolProfile(ctx context.Context, dataSource, symbol string) (*SymbolProfile, error) {
	path := fmt.Sprintf("/api/v1/symbol/%s/%s", url.PathEscape(dataSource), url.PathEscape(symbol))
	var out SymbolProfile
	if err := c.get(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Report fetches the portfolio X-Ray risk report.
func (c *Client) Report(ctx context.Context) (*Report, error) {
	var out Report
	if err := c.get(ctx, "/api/v1/portfolio/report", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Benchmarks lists the configured benchmark indices.
func (c *Client) Benchmarks(ctx context.Context) ([]Benchmark, error) {
	var out []Benchmark
	if err := c.get(ctx, "/api/v1/benchmarks", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Dividends fetches grouped dividend payments for the given range.
func (c *Client) Dividends(ctx context.Context, timeRange string) (*Dividends, error) {
	params := url.Values{}
	if timeRange == "" {
		timeRange = "max"
	}
	params.Set("range", timeRange)
	var out Dividends
	if err := c.get(ctx, "/api/v1/portfolio/dividends", params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Accounts lists all investment accounts.
func (c *Client) Accounts(ctx context.Context) (*Accounts, error) {
	var out Accounts
	if err := c.get(ctx, "/api/v1/account", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, params, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, params url.Values, body, out any) error {
	fullURL := c.config.BaseURL + path
	if len(params) > 0 {
		fullURL += "?" + params.Encode()
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
	}

	logger := c.logger.With("method", method, "path", path)

	var lastErr error
	for i := 0; i < c.config.RetryCount; i++ {
		req, err := http.NewRequestWithContext(ctx, method, fullURL, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.config.AuthToken)
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			logger.Debug("request attempt failed", "attempt", i+1, "error", err)
			time.Sleep(c.config.RetryDelay * time.Duration(i+1))
			continue
		}

		if resp.StatusCode >= 500 {
			resp.Body.Close()
			lastErr = &APIError{StatusCode: resp.StatusCode, Message: "server error"}
			logger.Debug("server error, retrying", "attempt", i+1, "status_code", resp.StatusCode)
			time.Sleep(c.config.RetryDelay * time.Duration(i+1))
			continue
		}

		return c.decodeResponse(resp, out)
	}

	logger.Error("request failed after all retries", "retry_count", c.config.RetryCount, "error", lastErr)
	return fmt.Errorf("request failed after %d retries: %w", c.config.RetryCount, lastErr)
}

func (c *Client) decodeResponse(resp *http.Response, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		msg := strings.TrimSpace(string(raw))
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return &APIError{StatusCode: resp.StatusCode, Message: msg}
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
