// Package paints holds the static paint lookup table used by painting
// recipe front-matter. The table is bundled with the binary and built
// once at startup; callers receive an immutable Table value instead of
// reaching for package-level state.
package paints

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed paints.yaml
var rawTable []byte

// Paint is one entry in the paint table.
type Paint struct {
	Name  string `yaml:"name"`
	Brand string `yaml:"brand"`
	Range string `yaml:"range,omitempty"`
	Color string `yaml:"color,omitempty"`
}

// Table maps paint keys (as used in front-matter) to paint data.
type Table map[string]Paint

// Load parses the bundled paint data file.
func Load() (Table, error) {
	var table Table
	if err := yaml.Unmarshal(rawTable, &table); err != nil {
		return nil, fmt.Errorf("failed to parse bundled paint table: %w", err)
	}
	return table, nil
}

// Resolve maps paint keys to paints, silently dropping unknown keys the
// way the gallery renderer does.
func (t Table) Resolve(keys []string) []Paint {
	var resolved []Paint
	for _, key := range keys {
		if paint, ok := t[key]; ok {
			resolved = append(resolved, paint)
		}
	}
	return resolved
}

// UnknownKeys returns the keys that do not resolve to any paint, so the
// mapping stage can warn about typos before they reach the site.
func (t Table) UnknownKeys(keys []string) []string {
	var unknown []string
	for _, key := range keys {
		if _, ok := t[key]; !ok {
			unknown = append(unknown, key)
		}
	}
	return unknown
}
