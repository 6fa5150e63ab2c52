package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-roadmap/internal/server"
)

var (
	servePort        int
	serveRequireAuth bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for generating career roadmaps.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8080, "Port to listen on")
	serveCmd.Flags().BoolVar(&serveRequireAuth, "auth", false, "Require a JWT bearer token on API routes (needs JWT_SECRET)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	cfg := server.Config{
		Port:         servePort,
		APIKey:       apiKey,
		SearchAPIKey: os.Getenv("GOOGLE_SEARCH_API_KEY"),
		SearchCX:     os.Getenv("GOOGLE_SEARCH_CX"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RequireAuth:  serveRequireAuth,
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
