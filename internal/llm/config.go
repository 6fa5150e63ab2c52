// Package llm provides the Gemini client abstraction used by all pipeline
// stages. Stages depend on the Client interface so tests can substitute
// deterministic fakes.
package llm

// ModelTier represents the reasoning level required by a call
type ModelTier string

const (
	// TierLite is for simple extraction and classification
	TierLite ModelTier = "lite"
	// TierStandard is for structured JSON output (profiling, analysis)
	TierStandard ModelTier = "standard"
	// TierAdvanced is for synthesis and long-form writing (strategy)
	TierAdvanced ModelTier = "advanced"
)

// Config holds the model configuration for the agent
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the default Gemini model mapping
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel returns the model name for a tier, falling back to standard then
// lite when the requested tier is not configured
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}

// WithModel returns a copy of the config with one tier overridden
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	next := &Config{Models: make(map[ModelTier]string, len(c.Models))}
	for k, v := range c.Models {
		next.Models[k] = v
	}
	next.Models[tier] = model
	return next
}
