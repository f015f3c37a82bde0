// Package server exposes the assistant over HTTP: one chat endpoint, a
// feedback endpoint, and a health probe. It stays thin; all reasoning
// lives in the executor and all policy in the verification pipeline.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/agentforge/agentforge/src/agent"
	"github.com/agentforge/agentforge/src/aisdk"
	"github.com/agentforge/agentforge/src/executor"
	"github.com/agentforge/agentforge/src/history"
	"github.com/agentforge/agentforge/src/observability"
	"github.com/agentforge/agentforge/src/storage"
	"github.com/agentforge/agentforge/src/verify"
)

// Config holds the server's collaborators.
type Config struct {
	Model   aisdk.ModelClient
	Service *executor.Service
	Store   *storage.DB
	Pricing observability.ModelPricing

	// Toolbox builds the per-request tool catalog from the caller's
	// bearer token.
	Toolbox func(authToken string) (*agent.DefaultToolbox, error)

	// RateLimitRPS / RateLimitBurst bound requests per user key.
	RateLimitRPS   float64
	RateLimitBurst int

	Logger *slog.Logger
}

// Server is the HTTP ingress.
type Server struct {
	cfg     Config
	limiter *RateLimiter
	logger  *slog.Logger
}

// NewServer creates the HTTP ingress from its collaborators.
func NewServer(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		cfg:     cfg,
		limiter: NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		logger:  logger.With("component", "server"),
	}
}

// Handler returns the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat", s.handleChat)
	mux.HandleFunc("POST /feedback", s.handleFeedback)
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

// ChatRequest is the POST /chat payload. History lets a stateless client
// carry its own transcript; it is folded in after the persisted turns.
type ChatRequest struct {
	Message   string     `json:"message"`
	History   []ChatTurn `json:"history,omitempty"`
	SessionID string     `json:"session_id,omitempty"`
}

// ChatTurn is one client-supplied prior turn.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResponse is the POST /chat reply.
type ChatResponse struct {
	Role    string                 `json:"role"`
	Content string                 `json:"content"`
	RunID   string                 `json:"run_id,omitempty"`
	Metrics *observability.Metrics `json:"metrics,omitempty"`
}

// FeedbackRequest is the POST /feedback payload. Score is 0.0 to 1.0,
// where 1.0 is positive.
type FeedbackRequest struct {
	RunID   string  `json:"run_id"`
	Score   float64 `json:"score"`
	Comment string  `json:"comment,omitempty"`
}

type errorResponse struct {
	Error         string `json:"error"`
	CorrelationID string `json:"correlation_id,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "Missing auth token"})
		return
	}
	userKey := storage.DeriveUserKey(token)

	if !s.limiter.Allow(userKey) {
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "Too many requests. Please slow down."})
		return
	}

	var body ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Message) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "A non-empty message is required"})
		return
	}

	ctx := r.Context()
	logger := s.logger.With("user_key", userKey)
	if body.SessionID != "" {
		logger = logger.With("session_id", body.SessionID)
	}

	persisted, err := storage.GetChatHistory(ctx, s.cfg.Store.DB(), userKey)
	if err != nil {
		logger.Error("loading chat history failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal error. Please try again."})
		return
	}

	prior := append(chatMessagesToWindow(persisted), clientTurnsToWindow(body.History)...)
	incoming := aisdk.Message{Role: aisdk.RoleUser, Content: body.Message}
	window, dropped := history.Assemble(prior, incoming, history.DefaultWindowLimit)
	if dropped > 0 {
		logger.Debug("trimmed conversation window", "dropped", dropped)
	}

	// The confirmation flag is derived here, from the transcript, and
	// nowhere else. Tools never decide for themselves.
	confirmed := executor.DetectConfirmation(window, body.Message)
	ctx = agent.WithUserKey(ctx, userKey)
	ctx = agent.WithConfirmation(ctx, confirmed)

	toolbox, err := s.cfg.Toolbox(token)
	if err != nil {
		logger.Error("building toolbox failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal error. Please try again."})
		return
	}

	start := time.Now()
	result, err := s.cfg.Service.Run(ctx, &executor.RunRequest{
		Model:   s.cfg.Model,
		Toolbox: toolbox,
		Window:  window,
	})
	if err != nil {
		logger.Error("run failed to start", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal error. Please try again."})
		return
	}
	latency := time.Since(start).Seconds()

	trace := result.Trace
	answer := result.Answer

	metrics := observability.Summarize(trace, latency, s.cfg.Pricing)
	metrics.Outcome = result.Outcome.String()

	// Canned failure and step-limit messages carry no data to verify.
	if result.Outcome == executor.OutcomeDone {
		verification := verify.Verify(answer, verify.Input{
			ToolsUsed:   trace.ToolsUsed(),
			ToolOutputs: trace.ToolOutputs(),
		}, logger)
		answer = verification.Answer
		metrics.Verification = verification.Checks
	}

	s.persistTurn(r, logger, userKey, body.SessionID, body.Message, answer, trace, &metrics)

	logger.Info("chat completed",
		"run_id", trace.RunID,
		"outcome", metrics.Outcome,
		"latency_seconds", metrics.LatencySeconds,
		"total_tokens", metrics.TotalTokens,
		"tool_call_count", metrics.ToolCallCount,
	)

	writeJSON(w, http.StatusOK, ChatResponse{
		Role:    "agent",
		Content: answer,
		RunID:   trace.RunID,
		Metrics: &metrics,
	})
}

// persistTurn stores the transcript and run record. Persistence failures
// are logged, not surfaced; the user already has their answer.
func (s *Server) persistTurn(r *http.Request, logger *slog.Logger, userKey, sessionID, userMessage, answer string, trace *executor.RunTrace, metrics *observability.Metrics) {
	ctx := r.Context()

	if err := storage.AppendChatMessage(ctx, s.cfg.Store.DB(), &storage.ChatMessage{
		UserKey: userKey,
		Role:    aisdk.RoleUser,
		Content: userMessage,
	}); err != nil {
		logger.Error("persisting user message failed", "error", err)
	}
	if err := storage.AppendChatMessage(ctx, s.cfg.Store.DB(), &storage.ChatMessage{
		UserKey: userKey,
		Role:    aisdk.RoleAssistant,
		Content: answer,
	}); err != nil {
		logger.Error("persisting assistant message failed", "error", err)
	}

	metricsJSON, err := json.Marshal(metrics)
	if err != nil {
		logger.Error("marshaling metrics failed", "error", err)
		return
	}
	if err := storage.CreateRun(ctx, s.cfg.Store.DB(), &storage.Run{
		RunID:     trace.RunID,
		UserKey:   userKey,
		SessionID: sessionID,
		Model:     trace.Model,
		Metrics:   string(metricsJSON),
	}); err != nil {
		logger.Error("persisting run failed", "error", err)
	}
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	var body FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.RunID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "run_id is required"})
		return
	}
	if body.Score < 0 || body.Score > 1 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "score must be between 0.0 and 1.0"})
		return
	}

	ctx := r.Context()
	run, err := storage.GetRunByID(ctx, s.cfg.Store.DB(), body.RunID)
	if err != nil {
		s.logger.Error("looking up run failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal error. Please try again."})
		return
	}
	if run == nil {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "Unknown run_id"})
		return
	}

	if err := storage.CreateFeedback(ctx, s.cfg.Store.DB(), &storage.Feedback{
		RunID:   body.RunID,
		Score:   body.Score,
		Comment: body.Comment,
	}); err != nil {
		s.logger.Error("persisting feedback failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal error. Please try again."})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "run_id": body.RunID})
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	token := strings.TrimPrefix(auth, "Bearer ")
	return strings.TrimSpace(token)
}

// clientTurnsToWindow converts client-supplied history into the wire message
// form. Assistant turns may be labeled "agent" or "assistant"; any other
// role is dropped.
func clientTurnsToWindow(turns []ChatTurn) []aisdk.Message {
	var out []aisdk.Message
	for _, turn := range turns {
		switch turn.Role {
		case "user":
			out = append(out, aisdk.Message{Role: aisdk.RoleUser, Content: turn.Content})
		case "agent", "assistant":
			out = append(out, aisdk.Message{Role: aisdk.RoleAssistant, Content: turn.Content})
		}
	}
	return out
}

// chatMessagesToWindow converts persisted rows into the wire message form.
func chatMessagesToWindow(messages []storage.ChatMessage) []aisdk.Message {
	out := make([]aisdk.Message, 0, len(messages))
	for _, m := range messages {
		out = append(out, aisdk.Message{
			Role:      m.Role,
			Content:   m.Content,
			CreatedAt: m.CreatedAt,
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
