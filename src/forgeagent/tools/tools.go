package tools

// This file provides barrel-style re-exports for all tools, making them
// accessible from the main tools package.

import (
	"github.com/agentforge/agentforge/src/agent"
	tool_accounts "github.com/agentforge/agentforge/src/forgeagent/tools/tool_accounts"
	tool_benchmark "github.com/agentforge/agentforge/src/forgeagent/tools/tool_benchmark"
	tool_congresstrades "github.com/agentforge/agentforge/src/forgeagent/tools/tool_congresstrades"
	tool_createorder "github.com/agentforge/agentforge/src/forgeagent/tools/tool_createorder"
	tool_deleteorder "github.com/agentforge/agentforge/src/forgeagent/tools/tool_deleteorder"
	tool_dividends "github.com/agentforge/agentforge/src/forgeagent/tools/tool_dividends"
	tool_marketdata "github.com/agentforge/agentforge/src/forgeagent/tools/tool_marketdata"
	tool_marketnews "github.com/agentforge/agentforge/src/forgeagent/tools/tool_marketnews"
	tool_portfolio "github.com/agentforge/agentforge/src/forgeagent/tools/tool_portfolio"
	tool_preferences "github.com/agentforge/agentforge/src/forgeagent/tools/tool_preferences"
	tool_risk "github.com/agentforge/agentforge/src/forgeagent/tools/tool_risk"
	tool_transactions "github.com/agentforge/agentforge/src/forgeagent/tools/tool_transactions"
	"github.com/agentforge/agentforge/src/ghostfolio"
	"github.com/agentforge/agentforge/src/storage"
)

// Tool name constants - re-exported from individual packages
const (
	PortfolioAnalysisName    = tool_portfolio.Name
	TransactionHistoryName   = tool_transactions.Name
	MarketDataName           = tool_marketdata.Name
	MarketNewsName           = tool_marketnews.Name
	RiskAssessmentName       = tool_risk.Name
	BenchmarkComparisonName  = tool_benchmark.Name
	DividendAnalysisName     = tool_dividends.Name
	AccountSummaryName       = tool_accounts.Name
	CongressionalTradesName  = tool_congresstrades.Name
	CreateOrderName          = tool_createorder.Name
	DeleteOrderName          = tool_deleteorder.Name
	GetUserPreferencesName   = tool_preferences.GetName
	SaveUserPreferenceName   = tool_preferences.SaveName
	DeleteUserPreferenceName = tool_preferences.DeleteName
)

// Ghostfolio-backed tools
func PortfolioAnalysisTool(c *ghostfolio.Client) (agent.Tool, error)   { return tool_portfolio.Tool(c) }
func TransactionHistoryTool(c *ghostfolio.Client) (agent.Tool, error)  { return tool_transactions.Tool(c) }
func MarketDataTool(c *ghostfolio.Client) (agent.Tool, error)          { return tool_marketdata.Tool(c) }
func RiskAssessmentTool(c *ghostfolio.Client) (agent.Tool, error)      { return tool_risk.Tool(c) }
func BenchmarkComparisonTool(c *ghostfolio.Client) (agent.Tool, error) { return tool_benchmark.Tool(c) }
func DividendAnalysisTool(c *ghostfolio.Client) (agent.Tool, error)    { return tool_dividends.Tool(c) }
func AccountSummaryTool(c *ghostfolio.Client) (agent.Tool, error)      { return tool_accounts.Tool(c) }
func CreateOrderTool(c *ghostfolio.Client) (agent.Tool, error)         { return tool_createorder.Tool(c) }
func DeleteOrderTool(c *ghostfolio.Client) (agent.Tool, error)         { return tool_deleteorder.Tool(c) }

// External data feed tools
func MarketNewsTool(cfg tool_marketnews.Config) (agent.Tool, error) { return tool_marketnews.Tool(cfg) }
func CongressionalTradesTool(cfg tool_congresstrades.Config) (agent.Tool, error) {
	return tool_congresstrades.Tool(cfg)
}

// Preference store tools
func GetUserPreferencesTool(db *storage.DB) (agent.Tool, error)   { return tool_preferences.GetTool(db) }
func SaveUserPreferenceTool(db *storage.DB) (agent.Tool, error)   { return tool_preferences.SaveTool(db) }
func DeleteUserPreferenceTool(db *storage.DB) (agent.Tool, error) { return tool_preferences.DeleteTool(db) }
