package config

// Config represents the complete configuration for agentforge
type Config struct {
	// Version of the configuration format
	Version string `json:"version"`

	// Server configuration for the HTTP ingress
	Server ServerConfig `json:"server"`

	// Model configuration for the reasoning engine
	Model ModelConfig `json:"model"`

	// Ghostfolio backend configuration
	Ghostfolio GhostfolioConfig `json:"ghostfolio"`

	// News feed configuration
	News NewsConfig `json:"news,omitempty"`

	// Congress trading feed configuration
	Congress CongressConfig `json:"congress,omitempty"`

	// Storage configuration
	Storage StorageConfig `json:"storage"`

	// Logging configuration
	Logging LoggingConfig `json:"logging"`

	// Pricing overrides per model, in USD per million tokens
	Pricing map[string]PricingConfig `json:"pricing,omitempty" validate:"dive"`
}

// ServerConfig defines the HTTP listener and per-user rate limits
type ServerConfig struct {
	// Addr is the listen address, e.g. ":8080"
	Addr string `json:"addr"`

	// RateLimitRPS is the sustained request rate allowed per user key
	RateLimitRPS float64 `json:"rate_limit_rps" validate:"gte=0"`

	// RateLimitBurst is the burst size allowed per user key
	RateLimitBurst int `json:"rate_limit_burst" validate:"gte=0"`
}

// ModelConfig defines the reasoning engine connection
type ModelConfig struct {
	// APIKey authenticates against the model provider
	APIKey string `json:"api_key,omitempty"`

	// BaseURL overrides the provider endpoint
	BaseURL string `json:"base_url,omitempty" validate:"omitempty,url"`

	// Name is the model identifier, e.g. "gpt-4o"
	Name string `json:"name"`

	// MaxSteps caps reasoning iterations per run
	MaxSteps int `json:"max_steps,omitempty" validate:"gte=0,lte=100"`

	// Temperature for completions, if set
	Temperature *float64 `json:"temperature,omitempty" validate:"omitempty,gte=0,lte=2"`
}

// GhostfolioConfig defines the portfolio backend
type GhostfolioConfig struct {
	// BaseURL of the Ghostfolio instance
	BaseURL string `json:"base_url" validate:"omitempty,url"`
}

// NewsConfig defines the market news feed credentials
type NewsConfig struct {
	APIKey  string `json:"api_key,omitempty"`
	BaseURL string `json:"base_url,omitempty" validate:"omitempty,url"`
}

// CongressConfig defines the congressional trading feed
type CongressConfig struct {
	AuthToken string `json:"auth_token,omitempty"`
	BaseURL   string `json:"base_url,omitempty" validate:"omitempty,url"`

	// MockFixture points at a JSON file of trades used instead of the
	// live API. Intended for local development.
	MockFixture string `json:"mock_fixture,omitempty"`
}

// StorageConfig defines the sqlite database location
type StorageConfig struct {
	// DatabasePath is the sqlite file path, ":memory:" for ephemeral
	DatabasePath string `json:"database_path"`
}

// LoggingConfig defines log output
type LoggingConfig struct {
	// Level is one of: debug, info, warn, error
	Level string `json:"level" validate:"omitempty,log_level"`

	// Format is one of: text, json
	Format string `json:"format" validate:"omitempty,log_format"`
}

// PricingConfig is a per-model price override in USD per million tokens
type PricingConfig struct {
	InputPerMillion  float64 `json:"input_per_million" validate:"gte=0"`
	OutputPerMillion float64 `json:"output_per_million" validate:"gte=0"`
}
