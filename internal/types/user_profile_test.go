//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserProfile_JSONMarshaling(t *testing.T) {
	profile := UserProfile{
		CurrentSkills:     []string{"python", "sql basics", "communication"},
		TargetRole:        "Junior Data Analyst",
		YearsOfExperience: 2,
		Constraints: &ProfileConstraints{
			TimeBudget:     "6 months",
			LearningBudget: "$500",
		},
		Notes: "Prefers evening study",
	}

	jsonBytes, err := json.MarshalIndent(profile, "", "  ")
	require.NoError(t, err)
	assert.Contains(t, string(jsonBytes), `"current_skills"`)
	assert.Contains(t, string(jsonBytes), `"target_role": "Junior Data Analyst"`)
	assert.Contains(t, string(jsonBytes), `"years_of_experience": 2`)
	assert.Contains(t, string(jsonBytes), `"time_budget": "6 months"`)

	var unmarshaled UserProfile
	err = json.Unmarshal(jsonBytes, &unmarshaled)
	require.NoError(t, err)
	assert.Equal(t, profile, unmarshaled)
}

func TestUserProfile_Validate(t *testing.T) {
	tests := []struct {
		name    string
		profile UserProfile
		wantErr bool
	}{
		{
			name: "valid profile",
			profile: UserProfile{
				CurrentSkills:     []string{"python"},
				TargetRole:        "Data Scientist",
				YearsOfExperience: 3,
			},
			wantErr: false,
		},
		{
			name: "missing skills",
			profile: UserProfile{
				TargetRole:        "Data Scientist",
				YearsOfExperience: 3,
			},
			wantErr: true,
		},
		{
			name: "empty skill entry",
			profile: UserProfile{
				CurrentSkills:     []string{"python", ""},
				TargetRole:        "Data Scientist",
				YearsOfExperience: 3,
			},
			wantErr: true,
		},
		{
			name: "missing target role",
			profile: UserProfile{
				CurrentSkills:     []string{"python"},
				YearsOfExperience: 3,
			},
			wantErr: true,
		},
		{
			name: "negative experience",
			profile: UserProfile{
				CurrentSkills:     []string{"python"},
				TargetRole:        "Data Scientist",
				YearsOfExperience: -1,
			},
			wantErr: true,
		},
		{
			name: "implausible experience",
			profile: UserProfile{
				CurrentSkills:     []string{"python"},
				TargetRole:        "Data Scientist",
				YearsOfExperience: 75,
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.profile.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUserProfile_NormalizeSkills(t *testing.T) {
	profile := UserProfile{
		CurrentSkills: []string{"  Python ", "SQL", "python", "", "Tableau"},
	}

	profile.NormalizeSkills()

	assert.Equal(t, []string{"python", "sql", "tableau"}, profile.CurrentSkills)
}

func TestUserProfile_HasSkill(t *testing.T) {
	profile := UserProfile{
		CurrentSkills: []string{"Python", "advanced sql"},
	}

	assert.True(t, profile.HasSkill("python"))
	assert.True(t, profile.HasSkill("  Advanced SQL "))
	assert.False(t, profile.HasSkill("tableau"))
}
