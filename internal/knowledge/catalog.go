// Package knowledge provides the static, read-only resource catalog used by
// the Strategist stage to recommend courses and certifications for skill gaps.
package knowledge

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed catalog.json
var catalogData []byte

// Resource is one recommendable learning resource.
type Resource struct {
	Name string `json:"name"`
	Kind string `json:"kind"` // course, certification, book
}

// Catalog is a lookup table from normalized skill keys to resources.
type Catalog struct {
	entries map[string][]Resource
}

// Load parses the embedded catalog.
func Load() (*Catalog, error) {
	var entries map[string][]Resource
	if err := json.Unmarshal(catalogData, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse resource catalog: %w", err)
	}
	return &Catalog{entries: entries}, nil
}

// MustLoad parses the embedded catalog, panicking on failure. The catalog is
// compiled in, so a failure here is a build defect.
func MustLoad() *Catalog {
	catalog, err := Load()
	if err != nil {
		panic(err)
	}
	return catalog
}

// Lookup returns the resources for a skill-gap key. Matching is
// case-insensitive and tolerant of qualifiers: "Advanced SQL" matches the
// "sql" entry. Returns nil when nothing matches.
func (c *Catalog) Lookup(skill string) []Resource {
	key := normalizeKey(skill)
	if key == "" {
		return nil
	}

	if resources, ok := c.entries[key]; ok {
		return resources
	}

	// Fall back to whole-word containment in either direction
	for entry, resources := range c.entries {
		if containsWord(key, entry) || containsWord(entry, key) {
			return resources
		}
	}
	return nil
}

// Keys returns the number of distinct skill keys in the catalog.
func (c *Catalog) Keys() int {
	return len(c.entries)
}

func normalizeKey(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}

// containsWord reports whether haystack contains needle as a whole
// space-delimited word.
func containsWord(haystack, needle string) bool {
	for _, word := range strings.Fields(haystack) {
		if word == needle {
			return true
		}
	}
	return false
}
