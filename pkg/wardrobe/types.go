// Package wardrobe defines the garment data model shared by every Outfitscope
// engine: items, catalogs and ordered category selections.
// Items are immutable once handed to an engine.
package wardrobe

import (
	"strings"
	"time"
)

// Formality is the dress code an item was tagged with.
type Formality string

const (
	FormalityCasual     Formality = "Casual"
	FormalitySemiFormal Formality = "Semi-Formal"
	FormalityFormal     Formality = "Formal"
)

// ParseFormality maps a free-form label onto a Formality.
// Unknown labels are returned unchanged so callers can still compare them.
func ParseFormality(s string) Formality {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "casual":
		return FormalityCasual
	case "semi-formal", "semi formal", "semiformal":
		return FormalitySemiFormal
	case "formal":
		return FormalityFormal
	default:
		return Formality(strings.TrimSpace(s))
	}
}

// UnmarshalText normalizes formality labels while decoding JSON or YAML.
func (f *Formality) UnmarshalText(text []byte) error {
	*f = ParseFormality(string(text))
	return nil
}

// Item is a single garment owned by a user.
type Item struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`        // box/slot: "Shirts", "Shoes"
	Type      string    `json:"type,omitempty"`  // garment type: "Shalwar-Kameez", "Sandals"
	Color     string    `json:"color,omitempty"` // may carry a Light/Dark qualifier
	Material  string    `json:"material,omitempty"`
	Formality Formality `json:"formality,omitempty"`
	ImageRef  string    `json:"image_ref,omitempty"`
}

// Label returns a short human-readable description of the item.
func (it Item) Label() string {
	name := it.Type
	if name == "" {
		name = it.Category
	}
	if it.Color == "" {
		return name
	}
	return it.Color + " " + name
}

// Catalog is the set of items in one wardrobe.
type Catalog struct {
	ID        string    `json:"id"`
	Owner     string    `json:"owner,omitempty"`
	Name      string    `json:"name,omitempty"`
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// CategoryItems pairs a category with the items selected for it.
type CategoryItems struct {
	Category string
	Items    []Item
}
