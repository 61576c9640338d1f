package catalog

import (
	"fmt"
	"os"

	"GearValue/internal/domain/models"

	"gopkg.in/yaml.v3"
)

// Catalog is the ordered set of named items being priced.
type Catalog struct {
	name  string
	items []models.Item
	index map[string]int
}

// New builds a catalog from items, keeping their order.
func New(name string, items []models.Item) (*Catalog, error) {
	c := &Catalog{name: name, items: items, index: make(map[string]int, len(items))}
	for i, it := range items {
		if _, dup := c.index[it.Name]; dup {
			return nil, fmt.Errorf("duplicate item %q", it.Name)
		}
		for _, id := range it.IDs {
			if id <= 0 {
				return nil, fmt.Errorf("item %q: invalid id %d", it.Name, id)
			}
		}
		c.index[it.Name] = i
	}
	return c, nil
}

// Load reads an items file: a JSON or YAML mapping of item name to id list.
func Load(path, name string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read items: %w", err)
	}
	c, err := Parse(b, name)
	if err != nil {
		return nil, fmt.Errorf("parse items %s: %w", path, err)
	}
	return c, nil
}

// Parse decodes an items document. The document is walked as a yaml.Node so
// that mapping order (and thus response order) follows the file.
func Parse(b []byte, name string) (*Catalog, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(b, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return New(name, nil)
	}

	m := root.Content[0]
	if m.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping of item name to ids", m.Line)
	}

	items := make([]models.Item, 0, len(m.Content)/2)
	for i := 0; i+1 < len(m.Content); i += 2 {
		key, val := m.Content[i], m.Content[i+1]
		var ids []int
		if err := val.Decode(&ids); err != nil {
			return nil, fmt.Errorf("item %q: %w", key.Value, err)
		}
		items = append(items, models.Item{Name: key.Value, IDs: ids})
	}
	return New(name, items)
}

// Name returns the catalog name.
func (c *Catalog) Name() string { return c.name }

// Items returns the items in file order.
func (c *Catalog) Items() []models.Item { return c.items }

// Find looks up an item by name.
func (c *Catalog) Find(name string) (models.Item, bool) {
	i, ok := c.index[name]
	if !ok {
		return models.Item{}, false
	}
	return c.items[i], true
}

// IDs returns every id occurrence across items, in order. Repeated ids are kept.
func IDs(items []models.Item) []int {
	var out []int
	for _, it := range items {
		out = append(out, it.IDs...)
	}
	return out
}

// UniqueIDs returns the distinct ids across items in first-seen order.
func UniqueIDs(items []models.Item) []int {
	seen := make(map[int]struct{})
	var out []int
	for _, it := range items {
		for _, id := range it.IDs {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			out = append(out, id)
		}
	}
	return out
}
