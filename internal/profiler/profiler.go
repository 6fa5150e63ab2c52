// Package profiler implements the first pipeline stage: structuring a
// conversational session into a validated UserProfile.
package profiler

import (
	"context"
	"encoding/json"

	"github.com/jonathan/career-roadmap/internal/llm"
	"github.com/jonathan/career-roadmap/internal/prompts"
	"github.com/jonathan/career-roadmap/internal/schemas"
	"github.com/jonathan/career-roadmap/internal/types"
)

// BuildProfile structures the session transcript into a UserProfile. The
// returned profile has passed both struct and JSON-schema validation; on any
// failure the error describes why and no profile is returned.
func BuildProfile(ctx context.Context, session *Session, client llm.Client) (*types.UserProfile, error) {
	if session == nil || session.Len() == 0 {
		return nil, &ValidationError{Message: "session has no conversational turns to profile"}
	}

	template := prompts.MustGet("profiler.json", "build-user-profile")
	prompt := prompts.Format(template, map[string]string{
		"Conversation": session.Transcript(),
	})

	responseText, err := client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &APICallError{Message: "failed to structure user profile", Cause: err}
	}

	var profile types.UserProfile
	if err := json.Unmarshal([]byte(llm.CleanJSONBlock(responseText)), &profile); err != nil {
		return nil, &ParseError{Message: "failed to parse user profile JSON", Cause: err}
	}

	profile.NormalizeSkills()

	// Producer-side handoff contract: validate before the record leaves this
	// stage. A partially-populated profile must not reach the Analyst.
	if err := profile.Validate(); err != nil {
		return nil, &ValidationError{Message: "required profile fields could not be elicited", Cause: err}
	}
	if err := schemas.ValidateRecord(schemas.UserProfileSchema, &profile); err != nil {
		return nil, &ValidationError{Message: "profile failed schema validation", Cause: err}
	}

	return &profile, nil
}
