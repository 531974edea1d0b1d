package check

import (
	_ "embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v2"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Catalog maps a notebook identifier to the ordered error signatures its
// execution is expected to raise. A Catalog is immutable once built.
type Catalog struct {
	entries map[string][]string
}

// NewCatalog builds a Catalog from the supplied entries. The map is copied.
func NewCatalog(entries map[string][]string) (*Catalog, error) {
	copied := make(map[string][]string, len(entries))
	for name, expected := range entries {
		if name == "" {
			return nil, fmt.Errorf("catalog entry with empty notebook name")
		}
		copied[name] = append([]string{}, expected...)
	}
	return &Catalog{entries: copied}, nil
}

// ParseCatalog decodes a YAML document mapping notebook names to lists of
// expected error signatures.
func ParseCatalog(data []byte) (*Catalog, error) {
	var entries map[string][]string
	if err := yaml.UnmarshalStrict(data, &entries); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return NewCatalog(entries)
}

var loadDefault = sync.OnceValue(func() *Catalog {
	catalog, err := ParseCatalog(defaultCatalogYAML)
	if err != nil {
		panic(fmt.Sprintf("compiled-in catalog: %v", err))
	}
	return catalog
})

// DefaultCatalog returns the course's compiled-in expectation table.
func DefaultCatalog() *Catalog {
	return loadDefault()
}

// Lookup returns the expected signatures for name. Unknown names yield an
// error wrapping ErrUnknownNotebook.
func (c *Catalog) Lookup(name string) ([]string, error) {
	expected, ok := c.entries[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNotebook, name)
	}
	return append([]string{}, expected...), nil
}

// Names returns every notebook in the catalog, sorted lexicographically.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.entries))
	for name := range c.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len reports the number of notebooks in the catalog.
func (c *Catalog) Len() int {
	return len(c.entries)
}
