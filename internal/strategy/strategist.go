// Package strategy implements the terminal pipeline stage: synthesizing the
// profile, the market analysis, and the resource catalog into a career
// roadmap report.
package strategy

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/career-roadmap/internal/knowledge"
	"github.com/jonathan/career-roadmap/internal/llm"
	"github.com/jonathan/career-roadmap/internal/prompts"
	"github.com/jonathan/career-roadmap/internal/types"
)

// APICallError represents a provider error from the Gemini API. The
// Strategist has no degraded mode: a failed narrative call is fatal.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ParseError represents an unusable narrative response.
type ParseError struct {
	Message string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Strategist runs the roadmap synthesis stage.
type Strategist struct {
	client  llm.Client
	catalog *knowledge.Catalog
}

// NewStrategist creates a Strategist over the given client and catalog.
func NewStrategist(client llm.Client, catalog *knowledge.Catalog) *Strategist {
	return &Strategist{client: client, catalog: catalog}
}

// narrative is the JSON shape requested from the model for the prose
// sections of the report.
type narrative struct {
	ExecutiveSummary string `json:"executive_summary"`
	GapAnalysis      string `json:"gap_analysis"`
	ActionPlan       []struct {
		Title    string   `json:"title"`
		Duration string   `json:"duration"`
		Steps    []string `json:"steps"`
	} `json:"action_plan"`
}

// BuildRoadmap synthesizes the final report. Both inputs have already passed
// their handoff validation; this stage only consumes them.
func (s *Strategist) BuildRoadmap(ctx context.Context, profile *types.UserProfile, analysis *types.MarketAnalysis) (*types.RoadmapReport, error) {
	resources := s.matchResources(analysis.CriticalSkillGaps)

	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return nil, &ParseError{Message: "failed to marshal profile", Cause: err}
	}
	analysisJSON, err := json.Marshal(analysis)
	if err != nil {
		return nil, &ParseError{Message: "failed to marshal analysis", Cause: err}
	}

	template := prompts.MustGet("strategy.json", "roadmap-sections")
	prompt := prompts.Format(template, map[string]string{
		"ProfileJSON":  string(profileJSON),
		"AnalysisJSON": string(analysisJSON),
		"Resources":    formatResources(resources),
	})

	responseText, err := s.client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, &APICallError{Message: "failed to generate roadmap narrative", Cause: err}
	}

	var sections narrative
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(responseText)), &sections); err != nil {
		return nil, &ParseError{Message: "failed to parse roadmap narrative JSON", Cause: err}
	}
	if strings.TrimSpace(sections.ExecutiveSummary) == "" || len(sections.ActionPlan) == 0 {
		return nil, &ParseError{Message: "roadmap narrative is missing required sections"}
	}

	report := &types.RoadmapReport{
		Profile:          profile,
		Analysis:         analysis,
		ExecutiveSummary: sections.ExecutiveSummary,
		GapAnalysis:      sections.GapAnalysis,
		Resources:        resources,
		GeneratedAt:      time.Now(),
	}
	for i, phase := range sections.ActionPlan {
		report.ActionPlan = append(report.ActionPlan, types.RoadmapPhase{
			Ordinal:  i + 1,
			Title:    phase.Title,
			Duration: phase.Duration,
			Steps:    phase.Steps,
		})
	}

	return report, nil
}

// matchResources looks up catalog resources for each gap, deduplicating by
// resource name.
func (s *Strategist) matchResources(gaps []string) []types.ResourceRecommendation {
	var recommendations []types.ResourceRecommendation
	seen := make(map[string]bool)
	for _, gap := range gaps {
		for _, resource := range s.catalog.Lookup(gap) {
			if seen[resource.Name] {
				continue
			}
			seen[resource.Name] = true
			recommendations = append(recommendations, types.ResourceRecommendation{
				SkillGap: gap,
				Name:     resource.Name,
				Kind:     resource.Kind,
			})
		}
	}
	return recommendations
}

func formatResources(resources []types.ResourceRecommendation) string {
	if len(resources) == 0 {
		return "(no catalog resources matched; recommend well-known public alternatives)"
	}
	var sb strings.Builder
	for _, res := range resources {
		sb.WriteString(fmt.Sprintf("- %s: %s (%s)\n", res.SkillGap, res.Name, res.Kind))
	}
	return sb.String()
}
