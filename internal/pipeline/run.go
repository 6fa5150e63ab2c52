// Package pipeline provides the high-level orchestration for the career
// roadmap generation process: Profiler, Market Analyst, and Strategist run
// strictly in sequence, each consuming the validated output of the previous
// stage. There is no branching, no retry, and no back-edge.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/jonathan/career-roadmap/internal/analysis"
	"github.com/jonathan/career-roadmap/internal/db"
	"github.com/jonathan/career-roadmap/internal/knowledge"
	"github.com/jonathan/career-roadmap/internal/llm"
	"github.com/jonathan/career-roadmap/internal/observability"
	"github.com/jonathan/career-roadmap/internal/profiler"
	"github.com/jonathan/career-roadmap/internal/search"
	"github.com/jonathan/career-roadmap/internal/strategy"
	"github.com/jonathan/career-roadmap/internal/types"
)

// State identifies where the linear pipeline currently is.
type State string

// Pipeline states, in execution order.
const (
	StateStart        State = "START"
	StateProfiling    State = "PROFILING"
	StateAnalyzing    State = "ANALYZING"
	StateStrategizing State = "STRATEGIZING"
	StateDone         State = "DONE"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	State    State  `json:"state"`
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	Session *profiler.Session // Required: the elicitation conversation

	APIKey       string
	SearchAPIKey string
	SearchCX     string
	DatabaseURL  string
	Verbose      bool

	// Out receives the rendered report; defaults to os.Stdout.
	Out io.Writer

	// Client and Searcher override the default collaborators (tests,
	// serve mode reuse). When nil they are built from the keys above.
	Client   llm.Client
	Searcher search.Searcher

	OnProgress ProgressCallback
}

// emitProgress calls the progress callback if configured
func emitProgress(opts *RunOptions, state State, step, category, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			State:    state,
			Step:     step,
			Category: category,
			Message:  message,
			Content:  content,
		})
	}
}

// RunPipeline orchestrates the full roadmap generation pipeline and returns
// the final report after printing it to opts.Out.
func RunPipeline(ctx context.Context, opts RunOptions) (*types.RoadmapReport, error) {
	if opts.Session == nil {
		return nil, fmt.Errorf("a profiling session is required")
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	printer := observability.NewPrinter(out)

	client := opts.Client
	if client == nil {
		geminiClient, err := llm.NewClient(ctx, llm.DefaultConfig(), opts.APIKey)
		if err != nil {
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer func() { _ = geminiClient.Close() }()
		client = geminiClient
	}

	searcher := opts.Searcher
	if searcher == nil && opts.SearchAPIKey != "" && opts.SearchCX != "" {
		googleSearcher, err := search.NewGoogleSearcher(ctx, opts.SearchAPIKey, opts.SearchCX)
		if err != nil {
			// Missing live data is a soft condition end to end
			fmt.Fprintf(out, "Warning: failed to initialize searcher: %v\n", err)
			fmt.Fprintf(out, "Continuing without live market data...\n")
		} else {
			searcher = googleSearcher
		}
	}

	// Initialize database connection if configured
	var database *db.DB
	var runID uuid.UUID
	if opts.DatabaseURL != "" {
		var err error
		database, err = db.Connect(ctx, opts.DatabaseURL)
		if err != nil {
			fmt.Fprintf(out, "Warning: failed to connect to database: %v\n", err)
			fmt.Fprintf(out, "Continuing without artifact persistence...\n")
			database = nil
		} else {
			defer database.Close()
		}
	}

	failRun := func(cause error) error {
		if database != nil && runID != uuid.Nil {
			_ = database.CompleteRun(ctx, runID, db.StatusFailed)
		}
		return cause
	}

	emitProgress(&opts, StateStart, "", "", "Pipeline starting", nil)

	// Stage 1: Profiler
	fmt.Fprintf(out, "Step 1/3: Structuring user profile from session %s...\n", opts.Session.ID)
	emitProgress(&opts, StateProfiling, db.StepUserProfile, db.CategoryProfiling, "Profiling session", nil)

	profile, err := profiler.BuildProfile(ctx, opts.Session, client)
	if err != nil {
		return nil, fmt.Errorf("profiler stage failed: %w", err)
	}
	if opts.Verbose {
		printer.PrintUserProfile(profile)
	}

	if database != nil {
		runID, err = database.CreateRun(ctx, opts.Session.ID, profile.TargetRole)
		if err != nil {
			fmt.Fprintf(out, "Warning: failed to create database run: %v\n", err)
		} else {
			_ = database.SaveArtifact(ctx, runID, db.StepUserProfile, db.CategoryProfiling, profile)
		}
	}

	// Stage 2: Market Analyst
	fmt.Fprintf(out, "Step 2/3: Analyzing market for %q...\n", profile.TargetRole)
	emitProgress(&opts, StateAnalyzing, db.StepMarketAnalysis, db.CategoryAnalysis,
		fmt.Sprintf("Analyzing market for %s", profile.TargetRole), profile)

	analyst := analysis.NewAnalyst(client, searcher)
	marketAnalysis, err := analyst.Analyze(ctx, profile)
	if err != nil {
		return nil, failRun(fmt.Errorf("analyst stage failed: %w", err))
	}
	if marketAnalysis.Degraded {
		fmt.Fprintf(out, "Warning: no live market data; analysis is based on general market knowledge.\n")
	}
	if opts.Verbose {
		printer.PrintMarketAnalysis(marketAnalysis)
	}
	if database != nil && runID != uuid.Nil {
		_ = database.SaveArtifact(ctx, runID, db.StepMarketAnalysis, db.CategoryAnalysis, marketAnalysis)
	}

	// Stage 3: Strategist
	fmt.Fprintf(out, "Step 3/3: Synthesizing career roadmap...\n")
	emitProgress(&opts, StateStrategizing, db.StepRoadmapReport, db.CategoryStrategy,
		"Synthesizing roadmap", marketAnalysis)

	strategist := strategy.NewStrategist(client, knowledge.MustLoad())
	report, err := strategist.BuildRoadmap(ctx, profile, marketAnalysis)
	if err != nil {
		return nil, failRun(fmt.Errorf("strategist stage failed: %w", err))
	}

	rendered := report.Markdown()
	if database != nil && runID != uuid.Nil {
		_ = database.SaveArtifact(ctx, runID, db.StepRoadmapReport, db.CategoryStrategy, report)
		_ = database.SaveTextArtifact(ctx, runID, db.StepRoadmapReport+"_md", db.CategoryStrategy, rendered)
		_ = database.CompleteRun(ctx, runID, db.StatusCompleted)
	}

	fmt.Fprintf(out, "\n%s\n", rendered)
	emitProgress(&opts, StateDone, "", "", "Pipeline complete", report)

	return report, nil
}
