// Package analysis implements the second pipeline stage: comparing a
// UserProfile against current market requirements, optionally backed by the
// external search collaborator, to produce a validated MarketAnalysis.
package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/career-roadmap/internal/fetch"
	"github.com/jonathan/career-roadmap/internal/llm"
	"github.com/jonathan/career-roadmap/internal/prompts"
	"github.com/jonathan/career-roadmap/internal/schemas"
	"github.com/jonathan/career-roadmap/internal/search"
	"github.com/jonathan/career-roadmap/internal/types"
)

const (
	// maxPageFetches bounds how many search result pages are fetched for
	// evidence enrichment.
	maxPageFetches = 3
	// maxPageTextChars truncates extracted page text before prompting.
	maxPageTextChars = 4000
)

// marketSensitiveTerms marks target roles whose requirements shift quickly
// enough that live postings beat model knowledge.
var marketSensitiveTerms = []string{
	"data", "engineer", "developer", "analyst", "scientist",
	"devops", "cloud", "security", "designer", "machine learning", "ai",
}

// NeedsMarketData is the pure predicate guarding the search call. Keeping
// the decision out of the LLM makes it inspectable and testable on its own.
func NeedsMarketData(profile *types.UserProfile) bool {
	role := strings.ToLower(profile.TargetRole)
	for _, term := range marketSensitiveTerms {
		if strings.Contains(role, term) {
			return true
		}
	}
	return false
}

// PageFetcher retrieves readable text for a search result page. Injectable
// for tests; the default fetches over HTTP and extracts the main content.
type PageFetcher func(ctx context.Context, url string) (string, error)

func defaultPageFetcher(ctx context.Context, url string) (string, error) {
	result, err := fetch.URL(ctx, url, nil)
	if err != nil {
		return "", err
	}
	return fetch.ExtractMainText(result.HTML, fetch.MarketPageSelectors())
}

// Analyst runs the market analysis stage.
type Analyst struct {
	client    llm.Client
	searcher  search.Searcher // nil disables live market data
	fetchPage PageFetcher
}

// NewAnalyst creates an Analyst. searcher may be nil, in which case every
// analysis is produced in degraded mode from model knowledge alone.
func NewAnalyst(client llm.Client, searcher search.Searcher) *Analyst {
	return &Analyst{
		client:    client,
		searcher:  searcher,
		fetchPage: defaultPageFetcher,
	}
}

// marketEvidence is the search-derived material fed into the analysis prompt.
type marketEvidence struct {
	text    string
	sources []string
}

// Analyze produces a validated MarketAnalysis for the profile. Missing or
// empty search results are a soft condition: the analysis proceeds from
// model knowledge with Degraded set, never an error.
func (a *Analyst) Analyze(ctx context.Context, profile *types.UserProfile) (*types.MarketAnalysis, error) {
	evidence := a.gatherEvidence(ctx, profile)

	marketBlock := "No live market data is available for this role; rely on general market knowledge."
	if evidence != nil {
		preamble := prompts.MustGet("analysis.json", "market-data-preamble")
		marketBlock = preamble + "\n" + evidence.text
	}

	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return nil, &ParseError{Message: "failed to marshal profile", Cause: err}
	}

	template := prompts.MustGet("analysis.json", "market-analysis")
	prompt := prompts.Format(template, map[string]string{
		"ProfileJSON": string(profileJSON),
		"MarketData":  marketBlock,
	})

	responseText, err := a.client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &APICallError{Message: "failed to generate market analysis", Cause: err}
	}

	var result types.MarketAnalysis
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(responseText)), &result); err != nil {
		return nil, &ParseError{Message: "failed to parse market analysis JSON", Cause: err}
	}

	result.Degraded = evidence == nil
	if evidence != nil {
		result.MarketSources = evidence.sources
	}

	// The model occasionally lists gaps the user already covers, or none at
	// all. Enforce the invariant here: gaps exclude current skills and are
	// never empty.
	result.CriticalSkillGaps = filterKnownSkills(result.CriticalSkillGaps, profile)
	if len(result.CriticalSkillGaps) == 0 {
		result.CriticalSkillGaps = fallbackGaps(&result, profile)
	}

	if err := result.Validate(); err != nil {
		return nil, &ValidationError{Message: "market analysis incomplete", Cause: err}
	}
	if err := schemas.ValidateRecord(schemas.MarketAnalysisSchema, &result); err != nil {
		return nil, &ValidationError{Message: "market analysis failed schema validation", Cause: err}
	}

	return &result, nil
}

// gatherEvidence queries the search collaborator and enriches the top hits
// with fetched page text. Returns nil when no usable evidence exists; every
// failure on this path is soft.
func (a *Analyst) gatherEvidence(ctx context.Context, profile *types.UserProfile) *marketEvidence {
	if a.searcher == nil || !NeedsMarketData(profile) {
		return nil
	}

	query := fmt.Sprintf("%s required skills salary range", profile.TargetRole)
	snippets, err := a.searcher.Search(ctx, query)
	if err != nil || len(snippets) == 0 {
		return nil
	}

	var sb strings.Builder
	sources := make([]string, 0, len(snippets))
	for _, snippet := range snippets {
		sb.WriteString(fmt.Sprintf("- %s: %s\n", snippet.Title, snippet.Summary))
		if snippet.Link != "" {
			sources = append(sources, snippet.Link)
		}
	}

	for _, text := range a.fetchPages(ctx, snippets) {
		sb.WriteString("\n")
		sb.WriteString(text)
		sb.WriteString("\n")
	}

	return &marketEvidence{text: sb.String(), sources: sources}
}

// fetchPages retrieves result pages concurrently. Individual page failures
// are skipped; ordering follows the snippet order.
func (a *Analyst) fetchPages(ctx context.Context, snippets []search.Snippet) []string {
	n := len(snippets)
	if n > maxPageFetches {
		n = maxPageFetches
	}

	texts := make([]string, n)
	g, gCtx := errgroup.WithContext(ctx)
	for i := 0; i < n; i++ {
		link := snippets[i].Link
		if link == "" {
			continue
		}
		g.Go(func() error {
			text, err := a.fetchPage(gCtx, link)
			if err != nil {
				return nil // soft failure, snippet summary still covers this hit
			}
			if len(text) > maxPageTextChars {
				text = text[:maxPageTextChars]
			}
			texts[i] = text
			return nil
		})
	}
	_ = g.Wait()

	filled := make([]string, 0, n)
	for _, text := range texts {
		if text != "" {
			filled = append(filled, text)
		}
	}
	return filled
}

// filterKnownSkills drops gaps the profile already covers.
func filterKnownSkills(gaps []string, profile *types.UserProfile) []string {
	filtered := make([]string, 0, len(gaps))
	for _, gap := range gaps {
		g := strings.TrimSpace(gap)
		if g == "" || profile.HasSkill(g) {
			continue
		}
		filtered = append(filtered, g)
	}
	return filtered
}

// fallbackGaps derives gaps from the required-skill list when the model
// returned none, keeping the non-empty invariant without a second API call.
func fallbackGaps(result *types.MarketAnalysis, profile *types.UserProfile) []string {
	gaps := filterKnownSkills(result.RequiredSkillsFound, profile)
	if len(gaps) > 3 {
		gaps = gaps[:3]
	}
	if len(gaps) == 0 {
		gaps = []string{fmt.Sprintf("deeper specialization for %s roles", profile.TargetRole)}
	}
	return gaps
}
