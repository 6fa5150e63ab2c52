package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/jonathan/career-roadmap/internal/db"
	"github.com/jonathan/career-roadmap/internal/pipeline"
	"github.com/jonathan/career-roadmap/internal/profiler"
	"github.com/jonathan/career-roadmap/internal/types"
)

// roadmapRequest is the body of POST /v1/roadmaps.
type roadmapRequest struct {
	Skills         []string `json:"skills" validate:"required,min=1,dive,min=1"`
	TargetRole     string   `json:"target_role" validate:"required,min=2"`
	Years          int      `json:"years" validate:"gte=0,lte=60"`
	TimeBudget     string   `json:"time_budget"`
	LearningBudget string   `json:"learning_budget"`
	Notes          string   `json:"notes"`
}

// roadmapResponse is the body of a successful POST /v1/roadmaps.
type roadmapResponse struct {
	SessionID uuid.UUID            `json:"session_id"`
	RunID     *uuid.UUID           `json:"run_id,omitempty"`
	Report    *types.RoadmapReport `json:"report"`
	Markdown  string               `json:"markdown"`
}

// handleCreateRoadmap runs the full pipeline for the submitted inputs and
// returns the report. This is a synchronous, long-running endpoint.
func (s *Server) handleCreateRoadmap(w http.ResponseWriter, r *http.Request) {
	var req roadmapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		var invalid validator.ValidationErrors
		if errors.As(err, &invalid) && len(invalid) > 0 {
			field := invalid[0]
			s.errorResponse(w, http.StatusBadRequest,
				(&ErrValidation{Field: field.Field(), Message: field.Tag()}).Error())
			return
		}
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	session := profiler.SeedSession(profiler.SeedInputs{
		Skills:         req.Skills,
		TargetRole:     req.TargetRole,
		Years:          req.Years,
		TimeBudget:     req.TimeBudget,
		LearningBudget: req.LearningBudget,
		Notes:          req.Notes,
	})

	report, err := s.runPipeline(r.Context(), pipeline.RunOptions{
		Session:      session,
		APIKey:       s.apiKey,
		SearchAPIKey: s.searchAPIKey,
		SearchCX:     s.searchCX,
		DatabaseURL:  s.databaseURL,
		Out:          io.Discard,
	})
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	resp := roadmapResponse{
		SessionID: session.ID,
		Report:    report,
		Markdown:  report.Markdown(),
	}
	if s.db != nil {
		if runID, err := s.db.GetRunIDBySession(r.Context(), session.ID); err == nil && runID != uuid.Nil {
			resp.RunID = &runID
		}
	}

	s.jsonResponse(w, http.StatusCreated, resp)
}

// handleGetArtifact returns a persisted stage artifact for a run.
func (s *Server) handleGetArtifact(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusNotFound, "artifact persistence is not configured")
		return
	}

	runID, err := uuid.Parse(r.PathValue("run_id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid run ID")
		return
	}
	step := r.PathValue("step")
	switch step {
	case db.StepUserProfile, db.StepMarketAnalysis, db.StepRoadmapReport:
	default:
		s.errorResponse(w, http.StatusBadRequest, fmt.Sprintf("unknown step %q", step))
		return
	}

	content, err := s.db.GetArtifact(r.Context(), runID, step)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if content == nil {
		s.errorResponse(w, http.StatusNotFound, "artifact not found")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(content)
}

// handleGetReport returns the rendered Markdown report for a run.
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		s.errorResponse(w, http.StatusNotFound, "artifact persistence is not configured")
		return
	}

	runID, err := uuid.Parse(r.PathValue("run_id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid run ID")
		return
	}

	text, err := s.db.GetTextArtifact(r.Context(), runID, db.StepRoadmapReport+"_md")
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	if text == "" {
		s.errorResponse(w, http.StatusNotFound, "report not found")
		return
	}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}
