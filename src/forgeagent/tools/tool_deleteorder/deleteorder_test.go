package tool_deleteorder

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/agentforge/agentforge/src/agent"
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

func TestDeleteOrderIsWriteKind(t *testing.T) {
	client := ghostfolio.NewClient(ghostfolio.Config{BaseURL: "http://localhost"})
	tool, err := Tool(client)
	require.NoError(t, err)
	assert.Equal(t, agent.KindWrite, tool.GetKind())
}

func TestDeleteOrderSuccess(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/v1/order/order-123", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"id":       "order-123",
			"type":     "BUY",
			"quantity": 5,
			"SymbolProfile": map[string]any{
				"symbol": "AAPL",
			},
		})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := ghostfolio.NewClient(ghostfolio.Config{BaseURL: server.URL})
	resp := execute(t, client, `{"order_id":"order-123"}`)

	require.False(t, resp.IsError)
	content := string(resp.Content)

	assert.Contains(t, content, "Order deleted successfully.")
	assert.Contains(t, content, "| Order ID | order-123 |")
	assert.Contains(t, content, "| Type | BUY |")
	assert.Contains(t, content, "| Symbol | AAPL |")
	assert.Contains(t, content, "| Quantity | 5 |")
}

func TestDeleteOrderEmptyBody(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/v1/order/order-456", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := ghostfolio.NewClient(ghostfolio.Config{BaseURL: server.URL})
	resp := execute(t, client, `{"order_id":"order-456"}`)

	require.False(t, resp.IsError)
	assert.Contains(t, string(resp.Content), "Order `order-456` deleted successfully.")
}

func TestDeleteOrderNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /api/v1/order/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := ghostfolio.NewClient(ghostfolio.Config{BaseURL: server.URL})
	resp := execute(t, client, `{"order_id":"missing"}`)

	assert.True(t, resp.IsError)
	assert.Equal(t, aisdk.ResponseNotFound, resp.Type)
	assert.Contains(t, string(resp.Content), `order "missing" not found`)
}

func TestDeleteOrderMissingID(t *testing.T) {
	client := ghostfolio.NewClient(ghostfolio.Config{BaseURL: "http://localhost"})
	resp := execute(t, client, `{}`)

	assert.True(t, resp.IsError)
	assert.Contains(t, string(resp.Content), "required field 'order_id' is missing")
}
