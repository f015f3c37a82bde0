package ghostfolio

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client := NewClient(Config{
		BaseURL:    server.URL,
		AuthToken:  "test-token",
		RetryDelay: time.Millisecond,
	})
	return client, server
}

func TestPortfolioDetails(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/portfolio/details", r.URL.Path)
		assert.Equal(t, "1y", r.URL.Query().Get("range"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{
			"holdings": map[string]any{
				"AAPL": map[string]any{
					"symbol":                 "AAPL",
					"name":                   "Apple Inc.",
					"allocationInPercentage": 0.42,
					"value":                  10500.0,
				},
			},
		})
	})

	details, err := client.PortfolioDetails(context.Background(), "1y")
	require.NoError(t, err)
	require.Contains(t, details.Holdings, "AAPL")
	assert.Equal(t, "Apple Inc.", details.Holdings["AAPL"].Name)
	assert.InDelta(t, 0.42, details.Holdings["AAPL"].AllocationInPercentage, 1e-9)
}

func TestPerformanceDefaultRange(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v2/portfolio/performance", r.URL.Path)
		assert.Equal(t, "max", r.URL.Query().Get("range"))
		json.NewEncoder(w).Encode(map[string]any{
			"performance": map[string]any{
				"currentValue":             25000.0,
				"currency":                 "USD",
				"netPerformancePercentage": 0.153,
			},
		})
	})

	perf, err := client.Performance(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "USD", perf.Performance.Currency)
	assert.InDelta(t, 0.153, perf.Performance.NetPerformancePercentage, 1e-9)
}

func TestTransactionsParams(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/order", r.URL.Path)
		assert.Equal(t, "50", r.URL.Query().Get("take"))
		assert.Equal(t, "acct-1", r.URL.Query().Get("accounts"))
		json.NewEncoder(w).Encode(map[string]any{
			"activities": []map[string]any{
				{
					"id": "o1", "type": "BUY", "quantity": 10.0, "unitPrice": 150.0,
					"SymbolProfile": map[string]any{"symbol": "AAPL", "currency": "USD"},
				},
			},
		})
	})

	acts, err := client.Transactions(context.Background(), TransactionParams{Accounts: "acct-1", Take: 50})
	require.NoError(t, err)
	require.Len(t, acts.Activities, 1)
	assert.Equal(t, "AAPL", acts.Activities[0].DisplaySymbol())
	assert.Equal(t, "USD", acts.Activities[0].DisplayCurrency())
}

func TestCreateOrder(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/order", r.URL.Path)

		var order OrderRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&order))
		assert.Equal(t, "AAPL", order.Symbol)
		assert.Equal(t, "BUY", order.Type)

		json.NewEncoder(w).Encode(map[string]any{"id": "order-123", "type": "BUY"})
	})

	created, err := client.CreateOrder(context.Background(), &OrderRequest{
		Symbol: "AAPL", Type: "BUY", Quantity: 5, UnitPrice: 180, Currency: "USD", DataSource: "YAHOO",
	})
	require.NoError(t, err)
	assert.Equal(t, "order-123", created.ID)
}

func TestDeleteOrderEmptyBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/v1/order/order-9", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	deleted, err := client.DeleteOrder(context.Background(), "order-9")
	require.NoError(t, err)
	assert.Empty(t, deleted.ID)
}

func TestNotFoundError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Not Found", http.StatusNotFound)
	})

	_, err := client.SymbolProfile(context.Background(), "YAHOO", "XYZNOTREAL")
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsNotFound())
}

func TestRetryOnServerError(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"accounts": []map[string]any{{"name": "Broker"}}})
	})

	accounts, err := client.Accounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), calls.Load())
	require.Len(t, accounts.Accounts, 1)
	assert.Equal(t, "Broker", accounts.Accounts[0].Name)
}

func TestResolveSymbolExact(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/symbol/YAHOO/AAPL", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{"symbol": "AAPL", "name": "Apple Inc.", "marketPrice": 182.5})
	})

	res, err := client.ResolveSymbol(context.Background(), "YAHOO", "aapl")
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, "AAPL", res.Symbol)
	require.NotNil(t, res.Profile)
	assert.InDelta(t, 182.5, res.Profile.MarketPrice, 1e-9)
}

func TestResolveSymbolFallbackToSearch(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/v1/symbol/YAHOO/VT" {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		assert.Equal(t, "/api/v1/symbol/lookup", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"items": []map[string]any{
				{"symbol": "VT", "name": "Vanguard Total World", "dataSource": "YAHOO"},
			},
		})
	})

	res, err := client.ResolveSymbol(context.Background(), "YAHOO", "VT")
	require.NoError(t, err)
	assert.True(t, res.Found)
	assert.Equal(t, "VT", res.Symbol)
}

func TestResolveSymbolNotFoundWithSuggestions(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/symbol/lookup" {
			http.Error(w, "Not Found", http.StatusNotFound)
			return
		}
		items := make([]map[string]any, 0, 8)
		for _, s := range []string{"APLE", "AAPL", "APLS", "APLD", "APLT", "APM", "APP", "APPS"} {
			items = append(items, map[string]any{"symbol": s, "name": s + " Corp"})
		}
		json.NewEncoder(w).Encode(map[string]any{"items": items})
	})

	res, err := client.ResolveSymbol(context.Background(), "YAHOO", "XYZNOTREAL")
	require.NoError(t, err)
	assert.False(t, res.Found)
	assert.Len(t, res.Suggestions, 5)
	assert.Contains(t, res.SuggestionText(), "APLE (APLE Corp)")
}
