// Package app wires configuration, storage, the model client and the
// reasoning loop into one object the server and CLI share.
package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/agentforge/agentforge/src/agent"
	"github.com/agentforge/agentforge/src/config"
	"github.com/agentforge/agentforge/src/executor"
	"github.com/agentforge/agentforge/src/forgeagent"
	"github.com/agentforge/agentforge/src/forgeagent/tools/tool_congresstrades"
	"github.com/agentforge/agentforge/src/forgeagent/tools/tool_marketnews"
	"github.com/agentforge/agentforge/src/ghostfolio"
	"github.com/agentforge/agentforge/src/observability"
	"github.com/agentforge/agentforge/src/orclient"
	"github.com/agentforge/agentforge/src/storage"
	"github.com/spf13/afero"
)

// App represents the main application with all services
type App struct {
	Config  *config.Config
	Store   *storage.DB
	Model   *orclient.BreakerClient
	Service *executor.Service
	Pricing observability.ModelPricing
	Logger  *slog.Logger
}

// New creates a new App instance with all services initialized
func New(cfg *config.Config, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	dbPath := cfg.Storage.DatabasePath
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create storage directory: %w", err)
		}
	}
	store, err := storage.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	client := orclient.NewClient(orclient.Config{
		APIKey:  cfg.Model.APIKey,
		BaseURL: cfg.Model.BaseURL,
		Model:   cfg.Model.Name,
		Logger:  logger,
	})
	model := orclient.NewBreakerClient(client, logger)

	service := executor.NewService(executor.ServiceConfig{
		SystemPrompt: forgeagent.SystemPrompt,
		MaxSteps:     cfg.Model.MaxSteps,
		Logger:       logger,
	})

	return &App{
		Config:  cfg,
		Store:   store,
		Model:   model,
		Service: service,
		Pricing: pricing(cfg),
		Logger:  logger,
	}, nil
}

// NewToolbox builds the tool catalog for one request. The Ghostfolio client
// carries the caller's bearer token, so a toolbox never outlives its request.
func (a *App) NewToolbox(authToken string) (*agent.DefaultToolbox, error) {
	congress := tool_congresstrades.Config{
		AuthToken: a.Config.Congress.AuthToken,
		BaseURL:   a.Config.Congress.BaseURL,
	}
	if a.Config.Congress.MockFixture != "" {
		congress.MockFS = afero.NewOsFs()
		congress.MockPath = a.Config.Congress.MockFixture
	}

	return forgeagent.NewToolbox(forgeagent.Config{
		Ghostfolio: ghostfolio.NewClient(ghostfolio.Config{
			BaseURL:   a.Config.Ghostfolio.BaseURL,
			AuthToken: authToken,
			Logger:    a.Logger,
		}),
		DB: a.Store,
		News: tool_marketnews.Config{
			APIKey:  a.Config.News.APIKey,
			BaseURL: a.Config.News.BaseURL,
		},
		Congress: congress,
		Logger:   a.Logger,
	})
}

// Close closes all resources held by the app
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// pricing converts configured per-model rates into the pricing table used
// by the metrics summarizer.
func pricing(cfg *config.Config) observability.ModelPricing {
	p := observability.DefaultPricing()
	for model, rate := range cfg.Pricing {
		p.Rates[model] = observability.ModelRate{
			InputPerMillion:  rate.InputPerMillion,
			OutputPerMillion: rate.OutputPerMillion,
		}
	}
	if _, ok := p.Rates[cfg.Model.Name]; ok {
		p.DefaultModel = cfg.Model.Name
	}
	return p
}
