package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/afero"
)

// Loader loads configuration from defaults, an optional JSON file, and
// environment overrides, in that order of precedence.
type Loader struct {
	fs        afero.Fs
	validator *Validator
}

// NewLoader creates a new configuration loader backed by the OS filesystem.
func NewLoader() *Loader {
	return NewLoaderWithFs(afero.NewOsFs())
}

// NewLoaderWithFs creates a loader reading from the given filesystem.
func NewLoaderWithFs(fs afero.Fs) *Loader {
	return &Loader{
		fs:        fs,
		validator: NewValidator(),
	}
}

// Load loads configuration from the given file path. A missing file is not
// an error; defaults plus environment overrides apply.
func (l *Loader) Load(path string) (*Config, error) {
	config := DefaultConfig()

	if path != "" {
		if cfg, err := l.loadFile(path); err == nil {
			config = l.mergeConfigs(config, cfg)
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	}

	l.applyEnvironmentOverrides(config)

	if err := l.validator.Validate(config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

func (l *Loader) loadFile(path string) (*Config, error) {
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, err
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return &config, nil
}

// SaveFile saves configuration to a file
func (l *Loader) SaveFile(config *Config, path string) error {
	if err := l.validator.Validate(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := afero.WriteFile(l.fs, path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// mergeConfigs merges two configurations with the second taking precedence
func (l *Loader) mergeConfigs(base, override *Config) *Config {
	result := *base

	if override.Version != "" {
		result.Version = override.Version
	}
	if override.Server.Addr != "" {
		result.Server.Addr = override.Server.Addr
	}
	if override.Server.RateLimitRPS != 0 {
		result.Server.RateLimitRPS = override.Server.RateLimitRPS
	}
	if override.Server.RateLimitBurst != 0 {
		result.Server.RateLimitBurst = override.Server.RateLimitBurst
	}
	if override.Model.APIKey != "" {
		result.Model.APIKey = override.Model.APIKey
	}
	if override.Model.BaseURL != "" {
		result.Model.BaseURL = override.Model.BaseURL
	}
	if override.Model.Name != "" {
		result.Model.Name = override.Model.Name
	}
	if override.Model.MaxSteps != 0 {
		result.Model.MaxSteps = override.Model.MaxSteps
	}
	if override.Model.Temperature != nil {
		result.Model.Temperature = override.Model.Temperature
	}
	if override.Ghostfolio.BaseURL != "" {
		result.Ghostfolio.BaseURL = override.Ghostfolio.BaseURL
	}
	if override.News.APIKey != "" {
		result.News.APIKey = override.News.APIKey
	}
	if override.News.BaseURL != "" {
		result.News.BaseURL = override.News.BaseURL
	}
	if override.Congress.AuthToken != "" {
		result.Congress.AuthToken = override.Congress.AuthToken
	}
	if override.Congress.BaseURL != "" {
		result.Congress.BaseURL = override.Congress.BaseURL
	}
	if override.Congress.MockFixture != "" {
		result.Congress.MockFixture = override.Congress.MockFixture
	}
	if override.Storage.DatabasePath != "" {
		result.Storage.DatabasePath = override.Storage.DatabasePath
	}
	if override.Logging.Level != "" {
		result.Logging.Level = override.Logging.Level
	}
	if override.Logging.Format != "" {
		result.Logging.Format = override.Logging.Format
	}
	if len(override.Pricing) > 0 {
		if result.Pricing == nil {
			result.Pricing = make(map[string]PricingConfig, len(override.Pricing))
		}
		for model, rate := range override.Pricing {
			result.Pricing[model] = rate
		}
	}

	return &result
}

// applyEnvironmentOverrides applies environment variables on top of the
// merged configuration. Provider credentials keep their conventional names;
// everything else uses the AGENTFORGE_ prefix.
func (l *Loader) applyEnvironmentOverrides(config *Config) {
	if v := os.Getenv("OPENROUTER_API_KEY"); v != "" {
		config.Model.APIKey = v
	}
	if v := os.Getenv("OPENROUTER_BASE_URL"); v != "" {
		config.Model.BaseURL = v
	}
	if v := os.Getenv("ALPHA_VANTAGE_API_KEY"); v != "" {
		config.News.APIKey = v
	}
	if v := os.Getenv("QUIVER_AUTHORIZATION_TOKEN"); v != "" {
		config.Congress.AuthToken = v
	}
	if v := os.Getenv("AGENTFORGE_MODEL"); v != "" {
		config.Model.Name = v
	}
	if v := os.Getenv("AGENTFORGE_ADDR"); v != "" {
		config.Server.Addr = v
	}
	if v := os.Getenv("AGENTFORGE_GHOSTFOLIO_URL"); v != "" {
		config.Ghostfolio.BaseURL = v
	}
	if v := os.Getenv("AGENTFORGE_DB_PATH"); v != "" {
		config.Storage.DatabasePath = v
	}
	if v := os.Getenv("AGENTFORGE_CONGRESS_FIXTURE"); v != "" {
		config.Congress.MockFixture = v
	}
	if v := os.Getenv("AGENTFORGE_LOG_LEVEL"); v != "" {
		config.Logging.Level = v
	}
	if v := os.Getenv("AGENTFORGE_LOG_FORMAT"); v != "" {
		config.Logging.Format = v
	}
	if v := os.Getenv("AGENTFORGE_MAX_STEPS"); v != "" {
		if steps, err := strconv.Atoi(v); err == nil {
			config.Model.MaxSteps = steps
		}
	}
}
