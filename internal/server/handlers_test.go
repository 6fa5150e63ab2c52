package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-roadmap/internal/pipeline"
	"github.com/jonathan/career-roadmap/internal/profiler"
	"github.com/jonathan/career-roadmap/internal/types"
)

func sampleReport() *types.RoadmapReport {
	return &types.RoadmapReport{
		Profile: &types.UserProfile{
			CurrentSkills:     []string{"python basics"},
			TargetRole:        "Data Scientist",
			YearsOfExperience: 1,
		},
		Analysis: &types.MarketAnalysis{
			RequiredSkillsFound: []string{"sql", "python"},
			CriticalSkillGaps:   []string{"sql"},
		},
		ExecutiveSummary: "Close the SQL gap first.",
		GapAnalysis:      "SQL is the blocking gap.",
		ActionPlan: []types.RoadmapPhase{
			{Ordinal: 1, Title: "SQL foundations", Duration: "2 months", Steps: []string{"Course"}},
		},
	}
}

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	if cfg.APIKey == "" {
		cfg.APIKey = "test-key"
	}
	s, err := New(cfg)
	require.NoError(t, err)
	s.runPipeline = func(_ context.Context, opts pipeline.RunOptions) (*types.RoadmapReport, error) {
		return sampleReport(), nil
	}
	return s
}

func postRoadmap(s *Server, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/v1/roadmaps", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t, Config{Port: 8080})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status": "ok"}`, rec.Body.String())
}

func TestHandleCreateRoadmap(t *testing.T) {
	s := newTestServer(t, Config{Port: 8080})

	rec := postRoadmap(s, `{
		"skills": ["python basics"],
		"target_role": "Data Scientist",
		"years": 1,
		"time_budget": "6 months"
	}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp roadmapResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Data Scientist", resp.Report.Profile.TargetRole)
	assert.Contains(t, resp.Markdown, "# Career Roadmap: Data Scientist")
	assert.Nil(t, resp.RunID)
}

func TestHandleCreateRoadmap_SeedsSession(t *testing.T) {
	s := newTestServer(t, Config{Port: 8080})

	var gotSession *profiler.Session
	s.runPipeline = func(_ context.Context, opts pipeline.RunOptions) (*types.RoadmapReport, error) {
		gotSession = opts.Session
		return sampleReport(), nil
	}

	rec := postRoadmap(s, `{"skills": ["go"], "target_role": "SRE", "years": 3}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, gotSession)
	assert.Contains(t, gotSession.Transcript(), "SRE")
}

func TestHandleCreateRoadmap_Validation(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed JSON", body: `{not json`},
		{name: "missing skills", body: `{"target_role": "Data Scientist", "years": 1}`},
		{name: "missing target role", body: `{"skills": ["python"], "years": 1}`},
		{name: "negative years", body: `{"skills": ["python"], "target_role": "Data Scientist", "years": -1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, Config{Port: 8080})
			rec := postRoadmap(s, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandleCreateRoadmap_PipelineError(t *testing.T) {
	s := newTestServer(t, Config{Port: 8080})
	s.runPipeline = func(context.Context, pipeline.RunOptions) (*types.RoadmapReport, error) {
		return nil, fmt.Errorf("profiler stage failed: %w",
			&profiler.APICallError{Message: "provider unavailable"})
	}

	rec := postRoadmap(s, `{"skills": ["python"], "target_role": "Data Scientist", "years": 1}`)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestHandleCreateRoadmap_ProfileValidationError(t *testing.T) {
	s := newTestServer(t, Config{Port: 8080})
	s.runPipeline = func(context.Context, pipeline.RunOptions) (*types.RoadmapReport, error) {
		return nil, fmt.Errorf("profiler stage failed: %w",
			&profiler.ValidationError{Message: "target role missing"})
	}

	rec := postRoadmap(s, `{"skills": ["python"], "target_role": "Data Scientist", "years": 1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleGetArtifact_NoDatabase(t *testing.T) {
	s := newTestServer(t, Config{Port: 8080})

	req := httptest.NewRequest(http.MethodGet,
		"/v1/runs/6f1b26a6-7f80-4c1e-b7a3-67f5c2a1a111/artifacts/user_profile", nil)
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandleGetArtifact_BadRunID(t *testing.T) {
	s := newTestServer(t, Config{Port: 8080})
	s.db = nil

	req := httptest.NewRequest(http.MethodGet, "/v1/runs/not-a-uuid/artifacts/user_profile", nil)
	rec := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(rec, req)

	// No database configured wins over the malformed ID
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRateLimit_RoadmapEndpoint(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_ROADMAP_LIMIT", "")

	s, err := New(Config{Port: 8080, APIKey: "test-key"})
	require.NoError(t, err)
	s.runPipeline = func(context.Context, pipeline.RunOptions) (*types.RoadmapReport, error) {
		return sampleReport(), nil
	}

	body := `{"skills": ["python"], "target_role": "Data Scientist", "years": 1}`
	// Default burst for roadmap creation is 2
	assert.Equal(t, http.StatusCreated, postRoadmap(s, body).Code)
	assert.Equal(t, http.StatusCreated, postRoadmap(s, body).Code)

	rec := postRoadmap(s, body)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
}
