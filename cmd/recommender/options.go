package main

import (
	"fmt"

	"github.com/jonathan/assessment-recommender/internal/config"
	"github.com/jonathan/assessment-recommender/internal/fetch"
	"github.com/jonathan/assessment-recommender/internal/ingestion"
	"github.com/jonathan/assessment-recommender/internal/llm"
	"github.com/jonathan/assessment-recommender/internal/recommend"
	"github.com/spf13/cobra"
)

// Flags shared by every command.
var (
	configPath string
	apiKey     string
	model      string
	tier       string
	useBrowser bool
	verbose    bool
)

// clientFactory builds completion clients; tests replace it.
var clientFactory llm.Factory = llm.NewClient

// defaultParallel bounds concurrent completion calls in batch runs.
const defaultParallel = 4

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
	flags.StringVar(&apiKey, "api-key", "", "Gemini API key (defaults to GEMINI_API_KEY env var)")
	flags.StringVar(&model, "model", "", "Override the Gemini model used for recommendations")
	flags.StringVar(&tier, "tier", "", "Model tier: lite, standard or advanced (default advanced)")
	flags.BoolVar(&useBrowser, "use-browser", false, "Render job pages in headless Chrome when static content is too short")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Print detailed debug information")
}

// loadConfig reads --config when given and applies the shared flags that
// were explicitly set. Command-specific overrides are applied by the caller
// before finalizeConfig.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	flags := cmd.Flags()
	if flags.Changed("api-key") {
		cfg.APIKey = apiKey
	}
	if flags.Changed("model") {
		cfg.Model = model
	}
	if flags.Changed("tier") {
		cfg.Tier = tier
	}
	if flags.Changed("use-browser") {
		cfg.UseBrowser = useBrowser
	}
	if flags.Changed("verbose") {
		cfg.Verbose = verbose
	}
	return cfg, nil
}

// finalizeConfig fills unset values with defaults and validates the result.
func finalizeConfig(cfg config.Config) (config.Config, error) {
	defaultDuration := recommend.DefaultMaxDuration
	cfg = cfg.MergeWithDefaults(config.Config{
		Port:        config.DefaultPort,
		MaxDuration: &defaultDuration,
		Parallel:    defaultParallel,
	})
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	cfg.APIKey = cfg.ResolveAPIKey()
	return cfg, nil
}

func newRecommender(cfg config.Config) *recommend.Recommender {
	return recommend.New(cfg.APIKey, cfg.LLMConfig(),
		recommend.WithTier(cfg.ModelTier()),
		recommend.WithClientFactory(clientFactory),
		recommend.WithVerbose(cfg.Verbose),
	)
}

func pageOptions(cfg config.Config) ingestion.PageOptions {
	opts := ingestion.PageOptions{Verbose: cfg.Verbose}
	if cfg.UseBrowser {
		opts.Render = fetch.BrowserRenderer(fetch.DefaultBrowserTimeout, cfg.Verbose)
	}
	return opts
}

func filterOptions(cfg config.Config) recommend.FilterOptions {
	opts := recommend.DefaultFilterOptions()
	opts.TestTypes = cfg.TestTypes
	if cfg.MaxDuration != nil {
		opts.MaxDuration = *cfg.MaxDuration
	}
	return opts
}
