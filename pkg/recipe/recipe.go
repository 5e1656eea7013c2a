// Package recipe assembles fixed event outfits from exact garment-type
// lookups, adding a waistcoat when the temperature is mild.
package recipe

import (
	"context"

	"github.com/outfitscope/outfitscope/pkg/wardrobe"
)

// Lookup finds owned items by exact garment type. Implementations return a
// nil item and nil error when nothing matches.
type Lookup interface {
	FindByType(ctx context.Context, catalogID, garmentType string) (*wardrobe.Item, error)
	FindByTypeAndColor(ctx context.Context, catalogID, garmentType, color string) (*wardrobe.Item, error)
}

// Pairing is one dress + shoes outfit of a recipe, with the waistcoat color
// it takes in mild weather.
type Pairing struct {
	Name           string `yaml:"name" json:"name" validate:"required"`
	DressType      string `yaml:"dress_type" json:"dress_type" validate:"required"`
	ShoeType       string `yaml:"shoe_type" json:"shoe_type" validate:"required"`
	WaistcoatColor string `yaml:"waistcoat_color" json:"waistcoat_color"`
}

// Band is an inclusive temperature range in degrees Celsius.
type Band struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max" validate:"gtefield=Min"`
}

// Contains reports whether t lies within the band, bounds included.
func (b Band) Contains(t float64) bool {
	return t >= b.Min && t <= b.Max
}

// Recipe describes the outfits assembled for one event.
type Recipe struct {
	Event         string    `yaml:"event" json:"event" validate:"required"`
	Weather       string    `yaml:"weather" json:"weather"`
	FallbackColor string    `yaml:"fallback_color" json:"fallback_color"`
	WaistcoatType string    `yaml:"waistcoat_type" json:"waistcoat_type"`
	WaistcoatBand Band      `yaml:"waistcoat_band" json:"waistcoat_band"`
	Pairings      []Pairing `yaml:"pairings" json:"pairings" validate:"min=1,dive"`
}

// Default returns the Aqiqa recipe.
func Default() Recipe {
	return Recipe{
		Event:         "Aqiqa",
		Weather:       "Warm",
		FallbackColor: "White",
		WaistcoatType: "Waistcoat",
		WaistcoatBand: Band{Min: 21, Max: 30},
		Pairings: []Pairing{
			{Name: "Outfit recommendation 1", DressType: "Shalwar-Kameez", ShoeType: "Peshawari Chappal", WaistcoatColor: "Light Brown"},
			{Name: "Outfit recommendation 2", DressType: "Jubbah", ShoeType: "Sandals", WaistcoatColor: "Black"},
		},
	}
}

// Outfit is an assembled recipe outfit.
type Outfit struct {
	Name           string         `json:"outfit_name"`
	Occasion       string         `json:"occasion"`
	Weather        string         `json:"weather_suitability"`
	DressItem      string         `json:"dress_item"`
	DressColor     string         `json:"dress_color"`
	ShoeItem       string         `json:"shoe_item"`
	ShoeColor      string         `json:"shoe_color"`
	WaistcoatItem  string         `json:"waistcoat_item,omitempty"`
	WaistcoatColor string         `json:"waistcoat_color,omitempty"`
	Dress          wardrobe.Item  `json:"dress"`
	Shoes          wardrobe.Item  `json:"shoes"`
	Waistcoat      *wardrobe.Item `json:"waistcoat,omitempty"`
}
