package moderation

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed skills.toml
var embeddedSkills []byte

// Category is one supported skill category
type Category struct {
	ID       string   `toml:"id" json:"id"`
	Name     string   `toml:"name" json:"name"`
	Examples []string `toml:"examples" json:"examples,omitempty"`
}

// Taxonomy is the fixed enumerated list of skill categories offered to the classifier
type Taxonomy struct {
	Version    int        `toml:"version" json:"version"`
	Categories []Category `toml:"category" json:"categories"`
}

// LoadTaxonomy parses the embedded skills.toml
func LoadTaxonomy() (*Taxonomy, error) {
	return ParseTaxonomy(embeddedSkills)
}

// LoadTaxonomyFile parses a TOML taxonomy from path; empty path falls back to the embedded one
func LoadTaxonomyFile(path string) (*Taxonomy, error) {
	if strings.TrimSpace(path) == "" {
		return LoadTaxonomy()
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("taxonomy: read %s: %w", path, err)
	}
	return ParseTaxonomy(b)
}

// ParseTaxonomy decodes and validates a TOML taxonomy
// ids must be non empty, lowercase and unique; order is preserved
func ParseTaxonomy(b []byte) (*Taxonomy, error) {
	var t Taxonomy
	if err := toml.Unmarshal(b, &t); err != nil {
		return nil, fmt.Errorf("taxonomy: decode: %w", err)
	}
	if len(t.Categories) == 0 {
		return nil, fmt.Errorf("taxonomy: no categories")
	}
	seen := make(map[string]struct{}, len(t.Categories))
	for i, c := range t.Categories {
		id := strings.TrimSpace(c.ID)
		if id == "" {
			return nil, fmt.Errorf("taxonomy: category %d has empty id", i)
		}
		if id != strings.ToLower(id) {
			return nil, fmt.Errorf("taxonomy: category id %q must be lowercase", id)
		}
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("taxonomy: duplicate category id %q", id)
		}
		seen[id] = struct{}{}
		t.Categories[i].ID = id
		if strings.TrimSpace(c.Name) == "" {
			t.Categories[i].Name = id
		}
	}
	return &t, nil
}

// IDs returns category ids in file order
func (t *Taxonomy) IDs() []string {
	out := make([]string, 0, len(t.Categories))
	for _, c := range t.Categories {
		out = append(out, c.ID)
	}
	return out
}

// Contains reports whether id is a known category (case insensitive)
func (t *Taxonomy) Contains(id string) bool {
	id = strings.ToLower(strings.TrimSpace(id))
	for _, c := range t.Categories {
		if c.ID == id {
			return true
		}
	}
	return false
}
