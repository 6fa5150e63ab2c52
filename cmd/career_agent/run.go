package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/career-roadmap/internal/config"
	"github.com/jonathan/career-roadmap/internal/pipeline"
	"github.com/jonathan/career-roadmap/internal/profiler"
)

var runCommand = &cobra.Command{
	Use:   "run",
	Short: "Generate a career roadmap end-to-end",
	Long: `Runs the full roadmap pipeline: profiling -> market analysis -> strategy.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
	RunE: runPipelineCmd,
}

var (
	runConfigPath     string
	runSkills         []string
	runTargetRole     string
	runYears          int
	runTimeBudget     string
	runLearningBudget string
	runNotes          string
	runAPIKey         string
	runSearchAPIKey   string
	runSearchCX       string
	runDatabaseURL    string
	runVerbose        bool
)

func init() {
	// Config file flag (processed first)
	runCommand.Flags().StringVar(&runConfigPath, "config", "", "Path to config.json file (values can be overridden by other flags)")

	runCommand.Flags().StringSliceVarP(&runSkills, "skills", "s", nil, "Current skills (comma-separated or repeated)")
	runCommand.Flags().StringVarP(&runTargetRole, "target-role", "r", "", "Job title you are aiming for")
	runCommand.Flags().IntVarP(&runYears, "years", "y", 0, "Years of professional experience")
	runCommand.Flags().StringVar(&runTimeBudget, "time-budget", "", "Time available for the transition (e.g. \"6 months\")")
	runCommand.Flags().StringVar(&runLearningBudget, "learning-budget", "", "Money available for learning (e.g. \"$500\")")
	runCommand.Flags().StringVar(&runNotes, "notes", "", "Anything else the agent should know")
	runCommand.Flags().BoolVarP(&runVerbose, "verbose", "v", false, "Print intermediate stage outputs")

	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	runCommand.Flags().StringVar(&runAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")

	// Live market data is optional; without credentials the analysis runs degraded
	runCommand.Flags().StringVar(&runSearchAPIKey, "search-api-key", "", "Google Custom Search API key (optional, defaults to GOOGLE_SEARCH_API_KEY env var)")
	runCommand.Flags().StringVar(&runSearchCX, "search-cx", "", "Google Custom Search engine ID (optional, defaults to GOOGLE_SEARCH_CX env var)")

	// Database URL for artifact persistence
	runCommand.Flags().StringVar(&runDatabaseURL, "db-url", "", "PostgreSQL connection URL (optional, defaults to DATABASE_URL env var)")

	rootCmd.AddCommand(runCommand)
}

func runPipelineCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	// Step 1: Load config file if provided
	var cfg config.Config
	if runConfigPath != "" {
		loadedCfg, err := config.LoadConfig(runConfigPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := loadedCfg.Validate(); err != nil {
			return err
		}
		cfg = *loadedCfg
		if runVerbose {
			_, _ = fmt.Fprintf(os.Stdout, "Loaded config from: %s\n", runConfigPath)
		}
	}

	// Step 2: Apply CLI overrides (command-line args take priority)
	if cmd.Flags().Changed("skills") {
		cfg.Skills = runSkills
	}
	if cmd.Flags().Changed("target-role") {
		cfg.TargetRole = runTargetRole
	}
	if cmd.Flags().Changed("years") {
		cfg.Years = runYears
	}
	if cmd.Flags().Changed("time-budget") {
		cfg.TimeBudget = runTimeBudget
	}
	if cmd.Flags().Changed("learning-budget") {
		cfg.LearningBudget = runLearningBudget
	}
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = runAPIKey
	}
	if cmd.Flags().Changed("search-api-key") {
		cfg.SearchAPIKey = runSearchAPIKey
	}
	if cmd.Flags().Changed("search-cx") {
		cfg.SearchCX = runSearchCX
	}
	if cmd.Flags().Changed("db-url") {
		cfg.DatabaseURL = runDatabaseURL
	}
	if cmd.Flags().Changed("verbose") {
		cfg.Verbose = runVerbose
	}

	// Step 3: Defaults for unset values. A plan needs a horizon even when
	// the user does not give one.
	cfg = cfg.MergeWithDefaults(config.Config{
		TimeBudget: "12 months",
	})

	// Environment fallbacks
	if cfg.APIKey == "" {
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if cfg.SearchAPIKey == "" {
		cfg.SearchAPIKey = os.Getenv("GOOGLE_SEARCH_API_KEY")
	}
	if cfg.SearchCX == "" {
		cfg.SearchCX = os.Getenv("GOOGLE_SEARCH_CX")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}

	// Validate required fields. Configuration problems abort before
	// any stage runs.
	if err := cfg.Validate(); err != nil {
		return err
	}
	if len(cfg.Skills) == 0 {
		return fmt.Errorf("at least one skill is required (via --skills or config)")
	}
	if cfg.TargetRole == "" {
		return fmt.Errorf("--target-role is required (via flag or config)")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required")
	}

	session := profiler.SeedSession(profiler.SeedInputs{
		Skills:         cfg.Skills,
		TargetRole:     cfg.TargetRole,
		Years:          cfg.Years,
		TimeBudget:     cfg.TimeBudget,
		LearningBudget: cfg.LearningBudget,
		Notes:          runNotes,
	})

	_, err := pipeline.RunPipeline(ctx, pipeline.RunOptions{
		Session:      session,
		APIKey:       cfg.APIKey,
		SearchAPIKey: cfg.SearchAPIKey,
		SearchCX:     cfg.SearchCX,
		DatabaseURL:  cfg.DatabaseURL,
		Verbose:      cfg.Verbose,
		Out:          cmd.OutOrStdout(),
	})
	return err
}
