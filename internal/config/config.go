// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/assessment-recommender/internal/llm"
	"github.com/jonathan/assessment-recommender/internal/recommend"
)

// EnvAPIKey names the environment variable holding the Gemini API key.
const EnvAPIKey = "GEMINI_API_KEY"

// DefaultPort is the HTTP port used by `serve` when none is configured.
const DefaultPort = 8000

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Input
	QueryFile string `json:"query_file,omitempty"` // Path to job description text file
	JobURL    string `json:"job_url,omitempty"`    // URL to fetch job description from

	// Model
	APIKey string `json:"api_key,omitempty"` // Gemini API key
	Model  string `json:"model,omitempty"`   // Overrides the model used for recommendations
	Tier   string `json:"tier,omitempty"`    // lite, standard or advanced

	// Filters
	TestTypes   []string `json:"test_types,omitempty"`   // Keep only these test types
	MaxDuration *int     `json:"max_duration,omitempty"` // Maximum assessment duration in minutes

	// Server
	Port int `json:"port,omitempty"`

	// Behavior
	Parallel   int  `json:"parallel,omitempty"`    // Concurrent queries for batch runs
	UseBrowser bool `json:"use_browser,omitempty"` // Use headless browser for SPA sites
	Verbose    bool `json:"verbose,omitempty"`     // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.QueryFile != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'query_file' and 'job_url' are mutually exclusive")
	}

	if c.MaxDuration != nil && (*c.MaxDuration < 0 || *c.MaxDuration > recommend.MaxDurationLimit) {
		return fmt.Errorf("config error: 'max_duration' must be between 0 and %d", recommend.MaxDurationLimit)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.Parallel < 0 {
		return fmt.Errorf("config error: 'parallel' must be non-negative")
	}

	switch llm.ModelTier(c.Tier) {
	case "", llm.TierLite, llm.TierStandard, llm.TierAdvanced:
	default:
		return fmt.Errorf("config error: unknown tier %q", c.Tier)
	}

	if c.QueryFile != "" {
		if _, err := os.Stat(c.QueryFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: query file not found: %s", c.QueryFile)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.QueryFile == "" {
		result.QueryFile = defaults.QueryFile
	}
	if result.JobURL == "" {
		result.JobURL = defaults.JobURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.Model == "" {
		result.Model = defaults.Model
	}
	if result.Tier == "" {
		result.Tier = defaults.Tier
	}
	if len(result.TestTypes) == 0 {
		result.TestTypes = defaults.TestTypes
	}
	if result.MaxDuration == nil {
		result.MaxDuration = defaults.MaxDuration
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}
	if result.Parallel == 0 {
		result.Parallel = defaults.Parallel
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ResolveAPIKey returns the configured API key, falling back to GEMINI_API_KEY.
func (c *Config) ResolveAPIKey() string {
	if c.APIKey != "" {
		return c.APIKey
	}
	return os.Getenv(EnvAPIKey)
}

// ModelTier returns the configured tier, defaulting to the advanced tier.
func (c *Config) ModelTier() llm.ModelTier {
	if c.Tier == "" {
		return llm.TierAdvanced
	}
	return llm.ModelTier(c.Tier)
}

// LLMConfig builds the completion client configuration, applying the model
// override to the selected tier.
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.DefaultConfig()
	if c.Model != "" {
		cfg = cfg.WithModel(c.ModelTier(), c.Model)
	}
	return cfg
}
