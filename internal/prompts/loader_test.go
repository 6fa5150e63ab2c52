package prompts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_ExistingPrompts(t *testing.T) {
	tests := []struct {
		filename string
		key      string
	}{
		{"profiler.json", "build-user-profile"},
		{"analysis.json", "market-analysis"},
		{"analysis.json", "market-data-preamble"},
		{"strategy.json", "roadmap-sections"},
	}

	for _, tt := range tests {
		t.Run(tt.filename+"/"+tt.key, func(t *testing.T) {
			prompt, err := Get(tt.filename, tt.key)
			require.NoError(t, err)
			assert.NotEmpty(t, prompt)
		})
	}
}

func TestGet_MissingKey(t *testing.T) {
	_, err := Get("profiler.json", "no-such-key")
	assert.Error(t, err)
}

func TestGet_MissingFile(t *testing.T) {
	_, err := Get("missing.json", "any")
	assert.Error(t, err)
}

func TestMustGet_PanicsOnMissing(t *testing.T) {
	assert.Panics(t, func() {
		MustGet("profiler.json", "no-such-key")
	})
}

func TestFormat_ReplacesPlaceholders(t *testing.T) {
	template := "Role: {{.Role}}, Years: {{.Years}}"
	result := Format(template, map[string]string{
		"Role":  "Data Analyst",
		"Years": "2",
	})
	assert.Equal(t, "Role: Data Analyst, Years: 2", result)
}

func TestFormat_LeavesUnknownPlaceholders(t *testing.T) {
	template := "Hello {{.Name}}"
	result := Format(template, map[string]string{"Other": "x"})
	assert.Equal(t, "Hello {{.Name}}", result)
}

func TestProfilerPrompt_ContainsTranscriptPlaceholder(t *testing.T) {
	ClearCache()
	prompt := MustGet("profiler.json", "build-user-profile")
	assert.True(t, strings.Contains(prompt, "{{.Conversation}}"))
}
