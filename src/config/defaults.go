package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// DefaultConfig returns the baseline configuration before any file or
// environment overrides are applied.
func DefaultConfig() *Config {
	return &Config{
		Version: "1.0",
		Server: ServerConfig{
			Addr:           ":8080",
			RateLimitRPS:   1,
			RateLimitBurst: 5,
		},
		Model: ModelConfig{
			Name:     "gpt-4o",
			MaxSteps: 25,
		},
		Ghostfolio: GhostfolioConfig{
			BaseURL: "http://localhost:3333",
		},
		Storage: StorageConfig{
			DatabasePath: DefaultDatabasePath(),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Pricing: map[string]PricingConfig{
			"gpt-4o":      {InputPerMillion: 2.50, OutputPerMillion: 10.00},
			"gpt-4o-mini": {InputPerMillion: 0.15, OutputPerMillion: 0.60},
		},
	}
}

// DefaultConfigPath returns the user config file location following the XDG
// base directory specification.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "agentforge", "config.json")
}

// DefaultDatabasePath returns the sqlite file location. State data lives
// under XDG_STATE_HOME.
func DefaultDatabasePath() string {
	return filepath.Join(xdg.StateHome, "agentforge", "agentforge.db")
}
