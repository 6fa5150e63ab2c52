//nolint:revive // types is a standard Go package name pattern
package types

import (
	"github.com/go-playground/validator/v10"
)

// MarketAnalysis represents the market gap found by the Analyst stage for a
// single UserProfile. It is immutable once emitted.
type MarketAnalysis struct {
	RequiredSkillsFound []string `json:"required_skills_found" validate:"required,min=1,dive,min=1"`
	CriticalSkillGaps   []string `json:"critical_skill_gaps" validate:"required,min=1,dive,min=1"`
	AverageSalaryRange  string   `json:"average_salary_range,omitempty"`
	MarketSources       []string `json:"market_sources,omitempty"`

	// Degraded marks an analysis produced without live market data (search
	// returned nothing or was unavailable). Soft condition, never an error.
	Degraded bool `json:"degraded,omitempty"`
}

// Validate checks the analysis against its struct constraints.
// CriticalSkillGaps must be non-empty regardless of search availability.
func (a *MarketAnalysis) Validate() error {
	validate := validator.New()
	return validate.Struct(a)
}
