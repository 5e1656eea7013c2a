package wardrobe

import (
	"context"
	"fmt"
	"strings"
)

// ByCategory returns the items in the given category, in catalog order.
// Category comparison is case-insensitive.
func (c *Catalog) ByCategory(category string) []Item {
	var items []Item
	for _, it := range c.Items {
		if strings.EqualFold(it.Category, category) {
			items = append(items, it)
		}
	}
	return items
}

// Categories returns the distinct categories in first-seen order.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var cats []string
	for _, it := range c.Items {
		if it.Category == "" || seen[it.Category] {
			continue
		}
		seen[it.Category] = true
		cats = append(cats, it.Category)
	}
	return cats
}

// Find returns the item with the given ID.
func (c *Catalog) Find(id string) (Item, bool) {
	for _, it := range c.Items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// FindByType returns the first item whose type equals garmentType exactly.
func (c *Catalog) FindByType(garmentType string) (Item, bool) {
	for _, it := range c.Items {
		if it.Type == garmentType {
			return it, true
		}
	}
	return Item{}, false
}

// FindByTypeAndColor returns the first item matching both type and color exactly.
func (c *Catalog) FindByTypeAndColor(garmentType, color string) (Item, bool) {
	for _, it := range c.Items {
		if it.Type == garmentType && it.Color == color {
			return it, true
		}
	}
	return Item{}, false
}

// Selection builds a Selection from the named categories, in argument order.
// Categories with no items are kept empty so generation can skip them.
func (c *Catalog) Selection(categories ...string) *Selection {
	sel := NewSelection()
	for _, cat := range categories {
		sel.Add(cat, c.ByCategory(cat)...)
	}
	return sel
}

// Validate checks that item IDs are present and unique.
func (c *Catalog) Validate() error {
	seen := make(map[string]bool, len(c.Items))
	for i, it := range c.Items {
		if it.ID == "" {
			return fmt.Errorf("item %d: missing id", i)
		}
		if seen[it.ID] {
			return fmt.Errorf("item %d: duplicate id %q", i, it.ID)
		}
		seen[it.ID] = true
	}
	return nil
}

// MemoryLookup serves exact type lookups from in-memory catalogs keyed by ID.
// It satisfies recipe.Lookup for the CLI and tests.
type MemoryLookup map[string]*Catalog

func (m MemoryLookup) catalog(catalogID string) (*Catalog, error) {
	c, ok := m[catalogID]
	if !ok {
		return nil, fmt.Errorf("catalog %q not found", catalogID)
	}
	return c, nil
}

// FindByType implements recipe.Lookup.
func (m MemoryLookup) FindByType(ctx context.Context, catalogID, garmentType string) (*Item, error) {
	c, err := m.catalog(catalogID)
	if err != nil {
		return nil, err
	}
	if it, ok := c.FindByType(garmentType); ok {
		return &it, nil
	}
	return nil, nil
}

// FindByTypeAndColor implements recipe.Lookup.
func (m MemoryLookup) FindByTypeAndColor(ctx context.Context, catalogID, garmentType, color string) (*Item, error) {
	c, err := m.catalog(catalogID)
	if err != nil {
		return nil, err
	}
	if it, ok := c.FindByTypeAndColor(garmentType, color); ok {
		return &it, nil
	}
	return nil, nil
}
