// Package types provides type definitions for the structured records handed
// between pipeline stages.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// UserProfile represents the user's current status and goals as structured by
// the Profiler stage. It is immutable once emitted; both downstream stages
// consume it read-only.
type UserProfile struct {
	CurrentSkills     []string            `json:"current_skills" validate:"required,min=1,dive,min=1"`
	TargetRole        string              `json:"target_role" validate:"required,min=2"`
	YearsOfExperience int                 `json:"years_of_experience" validate:"gte=0,lte=60"`
	Constraints       *ProfileConstraints `json:"constraints,omitempty"`
	Notes             string              `json:"notes,omitempty"`
}

// ProfileConstraints captures the user's practical limits on the roadmap.
type ProfileConstraints struct {
	TimeBudget     string `json:"time_budget,omitempty"`     // e.g., "6 months"
	LearningBudget string `json:"learning_budget,omitempty"` // e.g., "$500", "free only"
}

// Validate checks the profile against its struct constraints.
func (p *UserProfile) Validate() error {
	validate := validator.New()
	return validate.Struct(p)
}

// NormalizeSkills lowercases, trims, and deduplicates the skill list in place.
func (p *UserProfile) NormalizeSkills() {
	normalized := make([]string, 0, len(p.CurrentSkills))
	seen := make(map[string]bool)
	for _, skill := range p.CurrentSkills {
		s := strings.ToLower(strings.TrimSpace(skill))
		if s != "" && !seen[s] {
			normalized = append(normalized, s)
			seen[s] = true
		}
	}
	p.CurrentSkills = normalized
}

// HasSkill reports whether the profile lists a skill, ignoring case.
func (p *UserProfile) HasSkill(skill string) bool {
	skill = strings.ToLower(strings.TrimSpace(skill))
	for _, s := range p.CurrentSkills {
		if strings.ToLower(strings.TrimSpace(s)) == skill {
			return true
		}
	}
	return false
}
