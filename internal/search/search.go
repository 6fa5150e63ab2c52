// Package search provides the external market-search collaborator used by
// the Analyst stage. The Analyst depends on the Searcher interface; the
// Google Custom Search implementation is wired in by the orchestrator when
// API keys are configured.
package search

import (
	"context"
	"fmt"

	"google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// Snippet is one search result handed to the Analyst.
type Snippet struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Summary string `json:"summary"`
}

// Searcher is the search collaborator contract. An empty result list is a
// valid response, never an error.
type Searcher interface {
	Search(ctx context.Context, query string) ([]Snippet, error)
}

// GoogleSearcher implements Searcher over the Google Custom Search API.
type GoogleSearcher struct {
	svc        *customsearch.Service
	cx         string
	maxResults int64
}

// NewGoogleSearcher creates a searcher backed by a Custom Search engine.
func NewGoogleSearcher(ctx context.Context, apiKey, cx string) (*GoogleSearcher, error) {
	if apiKey == "" || cx == "" {
		return nil, fmt.Errorf("search API key and engine ID are required")
	}

	svc, err := customsearch.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create customsearch service: %w", err)
	}

	return &GoogleSearcher{svc: svc, cx: cx, maxResults: 5}, nil
}

// Search runs a single query and returns the top result snippets.
func (s *GoogleSearcher) Search(ctx context.Context, query string) ([]Snippet, error) {
	resp, err := s.svc.Cse.List().Context(ctx).Cx(s.cx).Q(query).Num(s.maxResults).Do()
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}

	snippets := make([]Snippet, 0, len(resp.Items))
	for _, item := range resp.Items {
		snippets = append(snippets, Snippet{
			Title:   item.Title,
			Link:    item.Link,
			Summary: item.Snippet,
		})
	}
	return snippets, nil
}
