// Package template loads the pre-authored style catalog that maps layout
// names to placeholder slots. The catalog contributes only geometry and
// styling; slides are always created fresh by the synthesizer.
package template

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"deckgen/schema"
)

// Role is the declared type of a placeholder slot.
type Role string

const (
	RoleTitle   Role = "title"
	RoleBody    Role = "body"
	RolePicture Role = "picture"
	RoleTable   Role = "table"
	RoleChart   Role = "chart"
)

// Box positions a placeholder on the slide, in inches.
type Box struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// FontStyle is the default styling a placeholder applies to its text.
type FontStyle struct {
	Size   int    `json:"size,omitempty"`
	Bold   bool   `json:"bold,omitempty"`
	Color  string `json:"color,omitempty"` // ARGB, e.g. FF1E40AF
	Center bool   `json:"center,omitempty"`
}

// Placeholder is one typed insertion point on a layout.
type Placeholder struct {
	Role Role       `json:"role"`
	Box  Box        `json:"box"`
	Font *FontStyle `json:"font,omitempty"`
}

// Layout is a named, pre-styled arrangement of placeholders.
type Layout struct {
	DisplayName  string        `json:"display_name"`
	Placeholders []Placeholder `json:"placeholders"`
}

// Template is the opened catalog. It is read-only after Load.
type Template struct {
	layouts map[string]Layout
}

//go:embed catalog.json
var defaultCatalog []byte

// MissingLayoutError reports a lookup for a layout the catalog does not
// provide. Available carries the catalog's layout names for diagnostics.
type MissingLayoutError struct {
	Name      string
	Available []string
}

func (e *MissingLayoutError) Error() string {
	return fmt.Sprintf("layout %q not found in template (available: %v)", e.Name, e.Available)
}

// Load parses a catalog from raw JSON.
func Load(data []byte) (*Template, error) {
	var layouts map[string]Layout
	if err := json.Unmarshal(data, &layouts); err != nil {
		return nil, fmt.Errorf("failed to parse template catalog: %w", err)
	}
	if len(layouts) == 0 {
		return nil, fmt.Errorf("template catalog defines no layouts")
	}
	for name, l := range layouts {
		if l.DisplayName == "" {
			return nil, fmt.Errorf("layout %q has no display name", name)
		}
	}
	return &Template{layouts: layouts}, nil
}

// LoadFile parses a catalog from disk.
func LoadFile(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read template %s: %w", path, err)
	}
	return Load(data)
}

// LoadDefault opens the embedded catalog shipped with the binary.
func LoadDefault() (*Template, error) {
	return Load(defaultCatalog)
}

// Open loads the catalog at path, or the embedded default when path is empty.
func Open(path string) (*Template, error) {
	if path == "" {
		return LoadDefault()
	}
	return LoadFile(path)
}

// Layout looks up a layout by exact catalog name. A miss is a configuration
// error carrying the available names.
func (t *Template) Layout(name schema.LayoutName) (*Layout, error) {
	l, ok := t.layouts[string(name)]
	if !ok {
		return nil, &MissingLayoutError{Name: string(name), Available: t.LayoutNames()}
	}
	return &l, nil
}

// LayoutNames returns the catalog's layout names, sorted.
func (t *Template) LayoutNames() []string {
	names := make([]string, 0, len(t.layouts))
	for name := range t.layouts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
