package forgeagent

import (
	"fmt"
	"log/slog"

	"github.com/agentforge/agentforge/src/agent"
	"github.com/agentforge/agentforge/src/forgeagent/tools"
	"github.com/agentforge/agentforge/src/forgeagent/tools/tool_congresstrades"
	"github.com/agentforge/agentforge/src/forgeagent/tools/tool_marketnews"
	"github.com/agentforge/agentforge/src/forgeagent/toolsutil"
	"github.com/agentforge/agentforge/src/ghostfolio"
	"github.com/agentforge/agentforge/src/storage"
)

// Config holds the dependencies of the default toolbox.
type Config struct {
	// Ghostfolio is the portfolio backend client, scoped to one user's
	// bearer token.
	Ghostfolio *ghostfolio.Client

	// DB backs the preference tools.
	DB *storage.DB

	// News configures the market news feed.
	News tool_marketnews.Config

	// Congress configures the congressional trading feed.
	Congress tool_congresstrades.Config

	// Logger for tool execution logging.
	Logger *slog.Logger
}

// NewToolbox builds the full financial toolbox: portfolio analytics, market
// data feeds, the write-gated order tools and the preference store tools.
func NewToolbox(cfg Config) (*agent.DefaultToolbox, error) {
	if cfg.Ghostfolio == nil {
		return nil, fmt.Errorf("ghostfolio client is required")
	}
	if cfg.DB == nil {
		return nil, fmt.Errorf("storage is required")
	}

	if cfg.Logger != nil {
		toolsutil.SetLogger(cfg.Logger)
	}

	toolbox := agent.NewToolbox[agent.Tool]()
	if cfg.Logger != nil {
		toolbox.RegisterMiddleware(agent.LoggingMiddleware(cfg.Logger))
	}

	constructors := []func() (agent.Tool, error){
		func() (agent.Tool, error) { return tools.PortfolioAnalysisTool(cfg.Ghostfolio) },
		func() (agent.Tool, error) { return tools.TransactionHistoryTool(cfg.Ghostfolio) },
		func() (agent.Tool, error) { return tools.MarketDataTool(cfg.Ghostfolio) },
		func() (agent.Tool, error) { return tools.RiskAssessmentTool(cfg.Ghostfolio) },
		func() (agent.Tool, error) { return tools.BenchmarkComparisonTool(cfg.Ghostfolio) },
		func() (agent.Tool, error) { return tools.DividendAnalysisTool(cfg.Ghostfolio) },
		func() (agent.Tool, error) { return tools.AccountSummaryTool(cfg.Ghostfolio) },
		func() (agent.Tool, error) { return tools.CreateOrderTool(cfg.Ghostfolio) },
		func() (agent.Tool, error) { return tools.DeleteOrderTool(cfg.Ghostfolio) },
		func() (agent.Tool, error) { return tools.MarketNewsTool(cfg.News) },
		func() (agent.Tool, error) { return tools.CongressionalTradesTool(cfg.Congress) },
		func() (agent.Tool, error) { return tools.GetUserPreferencesTool(cfg.DB) },
		func() (agent.Tool, error) { return tools.SaveUserPreferenceTool(cfg.DB) },
		func() (agent.Tool, error) { return tools.DeleteUserPreferenceTool(cfg.DB) },
	}

	for _, construct := range constructors {
		tool, err := construct()
		if err != nil {
			return nil, fmt.Errorf("building toolbox: %w", err)
		}
		if err := toolbox.RegisterTool(tool); err != nil {
			return nil, fmt.Errorf("building toolbox: %w", err)
		}
	}

	return toolbox, nil
}
