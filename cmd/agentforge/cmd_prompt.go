package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/agentforge/agentforge/src/agent"
	"github.com/agentforge/agentforge/src/aisdk"
	"github.com/agentforge/agentforge/src/app"
	"github.com/agentforge/agentforge/src/executor"
	"github.com/agentforge/agentforge/src/history"
	"github.com/agentforge/agentforge/src/observability"
	"github.com/agentforge/agentforge/src/storage"
	"github.com/agentforge/agentforge/src/verify"
	"github.com/alecthomas/kong"
)

// PromptCmd sends one message through the full reasoning loop and prints
// the answer. Useful for smoke-testing a deployment from the terminal.
type PromptCmd struct {
	Text    []string `arg:"" help:"The message to send"`
	Token   string   `env:"GHOSTFOLIO_TOKEN" help:"Ghostfolio bearer token"`
	Metrics bool     `help:"Print run metrics as JSON after the answer"`
	Confirm bool     `help:"Treat the message as a confirmation of a pending write"`
}

// Run executes the prompt command
func (p *PromptCmd) Run(kctx *kong.Context, cli *CLI) error {
	cfg, err := loadConfig(cli)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.Logging)

	appInstance, err := app.New(cfg, logger)
	if err != nil {
		return err
	}
	defer appInstance.Close()

	text := strings.TrimSpace(strings.Join(p.Text, " "))
	if text == "" {
		return fmt.Errorf("a non-empty message is required")
	}
	if p.Token == "" {
		return fmt.Errorf("a Ghostfolio bearer token is required (set GHOSTFOLIO_TOKEN)")
	}

	toolbox, err := appInstance.NewToolbox(p.Token)
	if err != nil {
		return err
	}

	incoming := aisdk.Message{Role: aisdk.RoleUser, Content: text}
	window, _ := history.Assemble(nil, incoming, history.DefaultWindowLimit)

	ctx := context.Background()
	ctx = agent.WithUserKey(ctx, storage.DeriveUserKey(p.Token))
	ctx = agent.WithConfirmation(ctx, p.Confirm || executor.DetectConfirmation(window, text))

	start := time.Now()
	result, err := appInstance.Service.Run(ctx, &executor.RunRequest{
		Model:   appInstance.Model,
		Toolbox: toolbox,
		Window:  window,
	})
	if err != nil {
		return err
	}

	answer := result.Answer
	metrics := observability.Summarize(result.Trace, time.Since(start).Seconds(), appInstance.Pricing)
	metrics.Outcome = result.Outcome.String()

	if result.Outcome == executor.OutcomeDone {
		verification := verify.Verify(answer, verify.Input{
			ToolsUsed:   result.Trace.ToolsUsed(),
			ToolOutputs: result.Trace.ToolOutputs(),
		}, logger)
		answer = verification.Answer
		metrics.Verification = verification.Checks
	}

	fmt.Println(answer)

	if p.Metrics {
		enc := json.NewEncoder(os.Stderr)
		enc.SetIndent("", "  ")
		if err := enc.Encode(metrics); err != nil {
			return err
		}
	}
	return nil
}
