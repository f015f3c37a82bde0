package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/agentforge/agentforge/src/agent"
	"github.com/agentforge/agentforge/src/aisdk"
	"github.com/agentforge/agentforge/src/executor"
	"github.com/agentforge/agentforge/src/observability"
	"github.com/agentforge/agentforge/src/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedModel struct {
	answer    string
	responses []*aisdk.ChatCompletionResponse
	calls     int
	seen      []aisdk.ChatCompletionRequest
}

func (m *scriptedModel) CreateChatCompletion(ctx context.Context, req *aisdk.ChatCompletionRequest) (*aisdk.ChatCompletionResponse, error) {
	m.calls++
	m.seen = append(m.seen, *req)
	if len(m.responses) > 0 {
		next := m.responses[0]
		if len(m.responses) > 1 {
			m.responses = m.responses[1:]
		}
		return next, nil
	}
	return &aisdk.ChatCompletionResponse{
		Choices: []aisdk.Choice{{
			Message:      aisdk.Message{Role: aisdk.RoleAssistant, Content: m.answer},
			FinishReason: "stop",
		}},
		Usage: aisdk.Usage{PromptTokens: 100, CompletionTokens: 50, TotalTokens: 150},
	}, nil
}

func (m *scriptedModel) ModelName() string { return "gpt-4o" }

func newTestServer(t *testing.T, model aisdk.ModelClient) (*Server, *storage.DB) {
	t.Helper()

	db, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	srv := NewServer(Config{
		Model:   model,
		Service: executor.NewService(executor.ServiceConfig{SystemPrompt: "You are a portfolio assistant."}),
		Store:   db,
		Pricing: observability.DefaultPricing(),
		Toolbox: func(authToken string) (*agent.DefaultToolbox, error) {
			return agent.NewToolbox[agent.Tool](), nil
		},
	})
	return srv, db
}

func postJSON(t *testing.T, handler http.Handler, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv, _ := newTestServer(t, &scriptedModel{answer: "hi"})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestChatRequiresAuth(t *testing.T) {
	srv, _ := newTestServer(t, &scriptedModel{answer: "hi"})

	rec := postJSON(t, srv.Handler(), "/chat", "", `{"message":"hello"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestChatRejectsEmptyMessage(t *testing.T) {
	srv, _ := newTestServer(t, &scriptedModel{answer: "hi"})

	rec := postJSON(t, srv.Handler(), "/chat", "token-1", `{"message":"   "}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChatHappyPath(t *testing.T) {
	model := &scriptedModel{answer: "Your portfolio summary is ready."}
	srv, db := newTestServer(t, model)

	rec := postJSON(t, srv.Handler(), "/chat", "token-1", `{"message":"How is my portfolio doing?"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.Equal(t, "agent", resp.Role)
	assert.True(t, strings.HasPrefix(resp.Content, model.answer))
	assert.NotEmpty(t, resp.RunID)

	require.NotNil(t, resp.Metrics)
	assert.Equal(t, "done", resp.Metrics.Outcome)
	assert.Equal(t, 150, resp.Metrics.TotalTokens)
	assert.NotEmpty(t, resp.Metrics.Verification)
	assert.Greater(t, resp.Metrics.Cost.TotalCostUSD, 0.0)

	// The turn and the run record are persisted.
	userKey := storage.DeriveUserKey("token-1")
	messages, err := storage.GetChatHistory(context.Background(), db.DB(), userKey)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, aisdk.RoleUser, messages[0].Role)
	assert.Equal(t, aisdk.RoleAssistant, messages[1].Role)

	run, err := storage.GetRunByID(context.Background(), db.DB(), resp.RunID)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, userKey, run.UserKey)
	assert.Contains(t, run.Metrics, `"outcome":"done"`)
}

func TestChatIncludesPersistedHistory(t *testing.T) {
	model := &scriptedModel{answer: "Noted."}
	srv, _ := newTestServer(t, model)
	handler := srv.Handler()

	postJSON(t, handler, "/chat", "token-1", `{"message":"first question"}`)
	postJSON(t, handler, "/chat", "token-1", `{"message":"second question"}`)

	require.Equal(t, 2, model.calls)
	second := model.seen[1]

	// System prompt, two persisted turns, then the incoming message.
	require.Len(t, second.Messages, 4)
	assert.Equal(t, aisdk.RoleSystem, second.Messages[0].Role)
	assert.Equal(t, "first question", second.Messages[1].Content)
	assert.Equal(t, aisdk.RoleAssistant, second.Messages[2].Role)
	assert.Equal(t, "second question", second.Messages[3].Content)
}

func TestChatConfirmedWriteExecutes(t *testing.T) {
	db, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	executed := false
	writeTool, err := agent.NewWriteTool("remove_holding", "Removes a holding by order id.",
		func(ctx context.Context, input struct {
			OrderID string `json:"order_id"`
		}) (string, error) {
			executed = true
			return "Holding removed.", nil
		})
	require.NoError(t, err)

	model := &scriptedModel{responses: []*aisdk.ChatCompletionResponse{
		{
			Choices: []aisdk.Choice{{
				Message: aisdk.Message{
					Role: aisdk.RoleAssistant,
					ToolCalls: []aisdk.ToolCall{{
						ID:   "call-1",
						Type: "function",
						Function: aisdk.FunctionCall{
							Name:      "remove_holding",
							Arguments: json.RawMessage(`{"order_id":"order-1"}`),
						},
					}},
				},
			}},
			Usage: aisdk.Usage{PromptTokens: 100, CompletionTokens: 20, TotalTokens: 120},
		},
		{
			Choices: []aisdk.Choice{{
				Message:      aisdk.Message{Role: aisdk.RoleAssistant, Content: "Done. Order order-1 was removed."},
				FinishReason: "stop",
			}},
			Usage: aisdk.Usage{PromptTokens: 150, CompletionTokens: 30, TotalTokens: 180},
		},
	}}

	srv := NewServer(Config{
		Model:   model,
		Service: executor.NewService(executor.ServiceConfig{SystemPrompt: "You are a portfolio assistant."}),
		Store:   db,
		Pricing: observability.DefaultPricing(),
		Toolbox: func(string) (*agent.DefaultToolbox, error) {
			tb := agent.NewToolbox[agent.Tool]()
			if err := tb.RegisterTool(writeTool); err != nil {
				return nil, err
			}
			return tb, nil
		},
	})

	// A stateless client carries its own transcript: the assistant asked
	// for confirmation in the previous turn, and the user replies "yes".
	body := `{
		"message": "yes",
		"session_id": "sess-1",
		"history": [
			{"role": "user", "content": "remove my order-1 holding"},
			{"role": "agent", "content": "I will delete order order-1. Please confirm to proceed."}
		]
	}`
	rec := postJSON(t, srv.Handler(), "/chat", "token-1", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, executed, "confirmed write tool must execute")
	assert.True(t, strings.HasPrefix(resp.Content, "Done."))
	assert.Equal(t, "done", resp.Metrics.Outcome)

	// Client history is folded into the model's view of the conversation.
	require.NotEmpty(t, model.seen)
	first := model.seen[0].Messages
	require.Len(t, first, 4)
	assert.Equal(t, aisdk.RoleSystem, first[0].Role)
	assert.Equal(t, "remove my order-1 holding", first[1].Content)
	assert.Equal(t, aisdk.RoleAssistant, first[2].Role)
	assert.Equal(t, "yes", first[3].Content)

	run, err := storage.GetRunByID(context.Background(), db.DB(), resp.RunID)
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, "sess-1", run.SessionID)
}

func TestChatRateLimited(t *testing.T) {
	db, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	srv := NewServer(Config{
		Model:   &scriptedModel{answer: "hi"},
		Service: executor.NewService(executor.ServiceConfig{}),
		Store:   db,
		Pricing: observability.DefaultPricing(),
		Toolbox: func(string) (*agent.DefaultToolbox, error) {
			return agent.NewToolbox[agent.Tool](), nil
		},
		RateLimitRPS:   0.001,
		RateLimitBurst: 1,
	})
	handler := srv.Handler()

	first := postJSON(t, handler, "/chat", "token-1", `{"message":"hello"}`)
	assert.Equal(t, http.StatusOK, first.Code)

	second := postJSON(t, handler, "/chat", "token-1", `{"message":"hello again"}`)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)

	// A different user has their own bucket.
	other := postJSON(t, handler, "/chat", "token-2", `{"message":"hello"}`)
	assert.Equal(t, http.StatusOK, other.Code)
}

func TestFeedback(t *testing.T) {
	model := &scriptedModel{answer: "done"}
	srv, db := newTestServer(t, model)
	handler := srv.Handler()

	rec := postJSON(t, handler, "/feedback", "", `{"run_id":"missing-run","score":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = postJSON(t, handler, "/feedback", "", `{"score":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postJSON(t, handler, "/feedback", "", `{"run_id":"some-run","score":5}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "score must be between 0.0 and 1.0")

	chat := postJSON(t, handler, "/chat", "token-1", `{"message":"hello"}`)
	var resp ChatResponse
	require.NoError(t, json.Unmarshal(chat.Body.Bytes(), &resp))

	rec = postJSON(t, handler, "/feedback", "", `{"run_id":"`+resp.RunID+`","score":1,"comment":"helpful"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	run, err := storage.GetRunByID(context.Background(), db.DB(), resp.RunID)
	require.NoError(t, err)
	require.NotNil(t, run)
}

func TestBearerToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/chat", nil)
	req.Header.Set("Authorization", "Bearer  abc ")
	assert.Equal(t, "abc", bearerToken(req))

	req.Header.Del("Authorization")
	assert.Equal(t, "", bearerToken(req))
}
