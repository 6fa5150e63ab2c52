// Package main provides the entry point for the career roadmap agent.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "career_agent",
	Short: "Career roadmap generation agent",
	Long:  "career_agent turns a description of your current skills and target role into a personalized, market-grounded career roadmap using a three-stage LLM pipeline.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
