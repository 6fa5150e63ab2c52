//nolint:revive // types is a standard Go package name pattern
package types

import (
	"fmt"
	"strings"
	"time"
)

// RoadmapReport is the terminal artifact of the pipeline: a career roadmap
// synthesized by the Strategist from the profile, the market analysis, and
// the resource knowledge base. It is rendered as Markdown and not further
// schema-validated.
type RoadmapReport struct {
	Profile          *UserProfile             `json:"profile"`
	Analysis         *MarketAnalysis          `json:"analysis"`
	ExecutiveSummary string                   `json:"executive_summary"`
	GapAnalysis      string                   `json:"gap_analysis"`
	ActionPlan       []RoadmapPhase           `json:"action_plan"`
	Resources        []ResourceRecommendation `json:"resources"`
	GeneratedAt      time.Time                `json:"generated_at"`
}

// RoadmapPhase is one phase of the learning plan.
type RoadmapPhase struct {
	Ordinal  int      `json:"ordinal"`
	Title    string   `json:"title"`
	Duration string   `json:"duration,omitempty"`
	Steps    []string `json:"steps"`
}

// ResourceRecommendation maps a critical skill gap to a catalog resource.
type ResourceRecommendation struct {
	SkillGap string `json:"skill_gap"`
	Name     string `json:"name"`
	Kind     string `json:"kind"` // course, certification, book
}

// Markdown renders the report as a formatted Markdown document with the
// fixed section layout expected by the CLI output.
func (r *RoadmapReport) Markdown() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Career Roadmap: %s\n\n", r.Profile.TargetRole))

	sb.WriteString("## I. Executive Summary\n\n")
	sb.WriteString(strings.TrimSpace(r.ExecutiveSummary))
	sb.WriteString("\n\n")

	sb.WriteString("## II. Skill Gap Analysis\n\n")
	sb.WriteString(strings.TrimSpace(r.GapAnalysis))
	sb.WriteString("\n\n")
	if len(r.Analysis.CriticalSkillGaps) > 0 {
		sb.WriteString("Critical gaps:\n")
		for _, gap := range r.Analysis.CriticalSkillGaps {
			sb.WriteString(fmt.Sprintf("- %s\n", gap))
		}
		sb.WriteString("\n")
	}
	if r.Analysis.AverageSalaryRange != "" {
		sb.WriteString(fmt.Sprintf("Typical salary range: %s\n\n", r.Analysis.AverageSalaryRange))
	}
	if r.Analysis.Degraded {
		sb.WriteString("_Note: live market data was unavailable; this analysis is based on general market knowledge._\n\n")
	}

	sb.WriteString("## III. Action Plan\n\n")
	for _, phase := range r.ActionPlan {
		title := phase.Title
		if phase.Duration != "" {
			title = fmt.Sprintf("%s (%s)", title, phase.Duration)
		}
		sb.WriteString(fmt.Sprintf("### Phase %d: %s\n\n", phase.Ordinal, title))
		for _, step := range phase.Steps {
			sb.WriteString(fmt.Sprintf("- %s\n", step))
		}
		sb.WriteString("\n")
	}

	sb.WriteString("## IV. Resource Recommendations\n\n")
	if len(r.Resources) == 0 {
		sb.WriteString("No catalog resources matched the identified gaps.\n")
	}
	for _, res := range r.Resources {
		sb.WriteString(fmt.Sprintf("- **%s**: %s (%s)\n", res.SkillGap, res.Name, res.Kind))
	}
	sb.WriteString("\n")

	if len(r.Analysis.MarketSources) > 0 {
		sb.WriteString("## Sources\n\n")
		for _, src := range r.Analysis.MarketSources {
			sb.WriteString(fmt.Sprintf("- %s\n", src))
		}
	}

	return sb.String()
}
