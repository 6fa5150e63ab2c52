//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func testReport() *RoadmapReport {
	return &RoadmapReport{
		Profile: &UserProfile{
			CurrentSkills:     []string{"python basics"},
			TargetRole:        "Data Scientist",
			YearsOfExperience: 1,
		},
		Analysis: &MarketAnalysis{
			RequiredSkillsFound: []string{"sql", "statistics", "python"},
			CriticalSkillGaps:   []string{"sql", "statistics"},
			AverageSalaryRange:  "$95,000 - $130,000",
			MarketSources:       []string{"https://example.com/market"},
		},
		ExecutiveSummary: "INVEST: the target role is reachable within the stated time budget.",
		GapAnalysis:      "The market demands SQL and statistics beyond the current skill set.",
		ActionPlan: []RoadmapPhase{
			{Ordinal: 1, Title: "Foundations", Duration: "2 months", Steps: []string{"Complete an advanced SQL course", "Daily query practice"}},
			{Ordinal: 2, Title: "Applied statistics", Duration: "3 months", Steps: []string{"Work through an inference course"}},
		},
		Resources: []ResourceRecommendation{
			{SkillGap: "sql", Name: "Advanced SQL Mastery for Data Science", Kind: "certification"},
		},
		GeneratedAt: time.Now(),
	}
}

func TestRoadmapReport_Markdown(t *testing.T) {
	md := testReport().Markdown()

	assert.Contains(t, md, "# Career Roadmap: Data Scientist")
	assert.Contains(t, md, "## I. Executive Summary")
	assert.Contains(t, md, "## II. Skill Gap Analysis")
	assert.Contains(t, md, "## III. Action Plan")
	assert.Contains(t, md, "## IV. Resource Recommendations")
	assert.Contains(t, md, "- sql")
	assert.Contains(t, md, "- statistics")
	assert.Contains(t, md, "### Phase 1: Foundations (2 months)")
	assert.Contains(t, md, "### Phase 2: Applied statistics (3 months)")
	assert.Contains(t, md, "Advanced SQL Mastery for Data Science")
	assert.Contains(t, md, "Typical salary range: $95,000 - $130,000")
	assert.Contains(t, md, "## Sources")
	assert.NotContains(t, md, "live market data was unavailable")
}

func TestRoadmapReport_Markdown_Degraded(t *testing.T) {
	report := testReport()
	report.Analysis.Degraded = true
	report.Analysis.MarketSources = nil
	report.Resources = nil

	md := report.Markdown()

	assert.Contains(t, md, "live market data was unavailable")
	assert.Contains(t, md, "No catalog resources matched")
	assert.NotContains(t, md, "## Sources")
}
