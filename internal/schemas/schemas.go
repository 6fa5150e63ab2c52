// Package schemas provides JSON Schema validation for the structured records
// handed between pipeline stages. Schemas are embedded at compile time so
// stage producers can enforce the handoff contract without filesystem access.
package schemas

import (
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// Schema names for the inter-stage records.
const (
	UserProfileSchema    = "user_profile"
	MarketAnalysisSchema = "market_analysis"
)

// Get returns the embedded schema content for a name (e.g., "user_profile").
func Get(name string) (string, error) {
	data, err := schemaFiles.ReadFile(name + ".schema.json")
	if err != nil {
		return "", fmt.Errorf("unknown schema %q", name)
	}
	return string(data), nil
}

// MustGet returns the embedded schema content, panicking if not found.
// Use for schemas that are required at initialization time.
func MustGet(name string) string {
	content, err := Get(name)
	if err != nil {
		panic(fmt.Sprintf("failed to load schema: %v", err))
	}
	return content
}

// Names returns the available schema names in sorted order.
func Names() []string {
	entries, err := schemaFiles.ReadDir(".")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), ".schema.json"))
	}
	sort.Strings(names)
	return names
}
