package wardrobe

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ParseCatalog decodes and validates a catalog document.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("unmarshaling catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid catalog %q: %w", c.ID, err)
	}
	return &c, nil
}

// LoadCatalog reads a catalog from disk.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return ParseCatalog(data)
}

// SaveCatalog writes a catalog to disk as JSON.
func SaveCatalog(path string, c *Catalog) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating directory for catalog: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling catalog: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}

	return nil
}

// LoadSelection reads a category -> items selection from disk.
func LoadSelection(path string) (*Selection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading selection: %w", err)
	}

	sel := NewSelection()
	if err := json.Unmarshal(data, sel); err != nil {
		return nil, fmt.Errorf("unmarshaling selection: %w", err)
	}

	return sel, nil
}
