package main

import (
	"fmt"
	"log"

	"github.com/jonathan/assessment-recommender/internal/config"
	"github.com/jonathan/assessment-recommender/internal/server"
	"github.com/spf13/cobra"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server exposing GET /health, POST /recommend and POST /scrape.

The Gemini API key is read at request time, so the server starts without one and
answers /recommend with a 500 until it is configured.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", config.DefaultPort, "Port to listen on")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
	}
	if cfg, err = finalizeConfig(cfg); err != nil {
		return err
	}

	if cfg.APIKey == "" {
		log.Printf("Warning: %s is not set; /recommend will fail until it is", config.EnvAPIKey)
	}

	srv, err := server.New(server.Config{
		Port:          cfg.Port,
		APIKey:        cfg.APIKey,
		LLM:           cfg.LLMConfig(),
		Tier:          cfg.ModelTier(),
		Verbose:       cfg.Verbose,
		UseBrowser:    cfg.UseBrowser,
		ClientFactory: clientFactory,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
