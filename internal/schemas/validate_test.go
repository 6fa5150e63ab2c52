package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-roadmap/internal/types"
)

func TestNames(t *testing.T) {
	names := Names()
	assert.Contains(t, names, UserProfileSchema)
	assert.Contains(t, names, MarketAnalysisSchema)
}

func TestGet_UnknownSchema(t *testing.T) {
	_, err := Get("no_such_schema")
	assert.Error(t, err)
}

func TestValidateJSONString_Valid(t *testing.T) {
	schema := MustGet(UserProfileSchema)
	doc := `{
		"current_skills": ["python", "sql"],
		"target_role": "Data Analyst",
		"years_of_experience": 2
	}`

	err := ValidateJSONString(schema, doc)
	assert.NoError(t, err)
}

func TestValidateJSONString_FieldErrors(t *testing.T) {
	schema := MustGet(UserProfileSchema)
	doc := `{
		"current_skills": [],
		"years_of_experience": -3
	}`

	err := ValidateJSONString(schema, doc)
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.NotEmpty(t, validationErr.Errors)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestValidateJSONString_RejectsUnknownFields(t *testing.T) {
	schema := MustGet(MarketAnalysisSchema)
	doc := `{
		"required_skills_found": ["sql"],
		"critical_skill_gaps": ["sql"],
		"surprise_field": true
	}`

	err := ValidateJSONString(schema, doc)
	assert.Error(t, err)
}

func TestValidateJSONString_BadSchema(t *testing.T) {
	err := ValidateJSONString(`{"type": "nonsense"}`, `{}`)
	require.Error(t, err)

	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}

func TestValidateRecord_UserProfile(t *testing.T) {
	profile := &types.UserProfile{
		CurrentSkills:     []string{"python basics"},
		TargetRole:        "Data Scientist",
		YearsOfExperience: 1,
	}
	assert.NoError(t, ValidateRecord(UserProfileSchema, profile))

	profile.TargetRole = ""
	assert.Error(t, ValidateRecord(UserProfileSchema, profile))
}

func TestValidateRecord_MarketAnalysis(t *testing.T) {
	analysis := &types.MarketAnalysis{
		RequiredSkillsFound: []string{"sql", "statistics"},
		CriticalSkillGaps:   []string{"sql"},
		Degraded:            true,
	}
	assert.NoError(t, ValidateRecord(MarketAnalysisSchema, analysis))

	analysis.CriticalSkillGaps = nil
	assert.Error(t, ValidateRecord(MarketAnalysisSchema, analysis))
}

func TestValidateRecord_UnknownSchema(t *testing.T) {
	err := ValidateRecord("missing", map[string]string{})
	var loadErr *SchemaLoadError
	assert.ErrorAs(t, err, &loadErr)
}
