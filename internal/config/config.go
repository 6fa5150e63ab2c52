// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config represents the CLI configuration that can be loaded from a JSON
// file. All fields are optional; missing values use defaults or must be
// provided via CLI flags.
type Config struct {
	// Profile seed
	Skills         []string `json:"skills,omitempty"`          // Current skills, free-form
	TargetRole     string   `json:"target_role,omitempty"`     // Job title the user is aiming for
	Years          int      `json:"years,omitempty"`           // Years of professional experience
	TimeBudget     string   `json:"time_budget,omitempty"`     // e.g., "6 months"
	LearningBudget string   `json:"learning_budget,omitempty"` // e.g., "$500"

	// Credentials and endpoints
	APIKey       string `json:"api_key,omitempty"`        // Gemini API key
	SearchAPIKey string `json:"search_api_key,omitempty"` // Google Custom Search API key
	SearchCX     string `json:"search_cx,omitempty"`      // Custom Search engine ID
	DatabaseURL  string `json:"database_url,omitempty"`   // PostgreSQL connection URL

	// Behavior
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// MergeWithDefaults fills unset fields from the given defaults. Slices and
// credentials are never defaulted.
func (c Config) MergeWithDefaults(defaults Config) Config {
	if c.TargetRole == "" {
		c.TargetRole = defaults.TargetRole
	}
	if c.Years == 0 {
		c.Years = defaults.Years
	}
	if c.TimeBudget == "" {
		c.TimeBudget = defaults.TimeBudget
	}
	if c.LearningBudget == "" {
		c.LearningBudget = defaults.LearningBudget
	}
	return c
}

// Validate checks that the configuration has valid values. Required fields
// are checked later, after CLI flag merging.
func (c *Config) Validate() error {
	if c.Years < 0 {
		return fmt.Errorf("config error: 'years' must be non-negative")
	}
	for i, skill := range c.Skills {
		if strings.TrimSpace(skill) == "" {
			return fmt.Errorf("config error: 'skills[%d]' is empty", i)
		}
	}
	// The search collaborator needs both halves of the credential
	if (c.SearchAPIKey == "") != (c.SearchCX == "") {
		return fmt.Errorf("config error: 'search_api_key' and 'search_cx' must be set together")
	}
	return nil
}
