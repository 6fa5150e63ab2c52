package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetFlags restores all flags on cmd and its subcommands to their defaults
// so that values set by one test do not leak into the next Execute call.
func resetFlags(cmd *cobra.Command) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if sv, ok := f.Value.(pflag.SliceValue); ok {
			_ = sv.Replace(nil)
		} else {
			_ = f.Value.Set(f.DefValue)
		}
		f.Changed = false
	})
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

// executeCommand runs the root command with the given args and captures output.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return buf.String(), err
}

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("GOOGLE_SEARCH_API_KEY", "")
	t.Setenv("GOOGLE_SEARCH_CX", "")
	t.Setenv("DATABASE_URL", "")
}

func TestRunCommand_RequiresSkills(t *testing.T) {
	clearEnv(t)
	_, err := executeCommand(t, "run", "--target-role", "Data Scientist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "skill")
}

func TestRunCommand_RequiresTargetRole(t *testing.T) {
	clearEnv(t)
	_, err := executeCommand(t, "run", "--skills", "python", "--target-role", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "target-role")
}

func TestRunCommand_RequiresAPIKey(t *testing.T) {
	clearEnv(t)
	_, err := executeCommand(t, "run", "--skills", "python", "--target-role", "Data Scientist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestRunCommand_BadConfigPath(t *testing.T) {
	clearEnv(t)
	_, err := executeCommand(t, "run", "--config", filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load config")
}

func TestRunCommand_SearchCredentialsMustPair(t *testing.T) {
	clearEnv(t)
	_, err := executeCommand(t, "run",
		"--skills", "python",
		"--target-role", "Data Scientist",
		"--api-key", "test-key",
		"--search-api-key", "only-half",
		"--search-cx", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "search")
}

func TestValidateCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"current_skills": ["python"],
		"target_role": "Data Scientist",
		"years_of_experience": 2
	}`), 0o600))

	out, err := executeCommand(t, "validate", path, "--schema", "user_profile")
	require.NoError(t, err)
	assert.Contains(t, out, "is valid")
}

func TestValidateCommand_InvalidDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"current_skills": []}`), 0o600))

	_, err := executeCommand(t, "validate", path, "--schema", "user_profile")
	assert.Error(t, err)
}

func TestValidateCommand_UnknownSchema(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o600))

	_, err := executeCommand(t, "validate", path, "--schema", "nope")
	assert.Error(t, err)
}

func TestTokenCommand(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRATION_HOURS", "1")

	out, err := executeCommand(t, "token", "--subject", "tester")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestTokenCommand_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := executeCommand(t, "token")
	assert.Error(t, err)
}
