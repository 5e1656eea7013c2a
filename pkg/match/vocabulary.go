// Package match reconciles free-text outfit recommendations with the items a
// user actually owns, by keyword overlap on color, garment type and formality.
package match

import "strings"

// Slot is a position in a recommended outfit.
type Slot string

const (
	SlotDress       Slot = "dress"
	SlotShoes       Slot = "shoes"
	SlotUpperLayer  Slot = "upper_layer"
	SlotAccessories Slot = "accessories"
)

// Slots lists every slot in outfit order.
var Slots = []Slot{SlotDress, SlotShoes, SlotUpperLayer, SlotAccessories}

// FormalityKeyword maps a keyword found in text to the formality it implies.
type FormalityKeyword struct {
	Keyword   string `yaml:"keyword" json:"keyword"`
	Formality string `yaml:"formality" json:"formality"`
}

// Vocabulary is the keyword table used for extraction. Lists are ordered;
// the first keyword contained in the text wins, so longer or more specific
// keywords must come first.
type Vocabulary struct {
	Version   string             `yaml:"version" json:"version"`
	Colors    []string           `yaml:"colors" json:"colors"`
	Types     map[Slot][]string  `yaml:"types" json:"types"`
	Formality []FormalityKeyword `yaml:"formality" json:"formality"`
}

// DefaultVocabulary returns the stock keyword table.
func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		Version: "2024.1",
		Colors: []string{
			"white", "black", "brown", "blue", "red", "green",
			"yellow", "pink", "purple", "orange", "gray", "grey",
		},
		Types: map[Slot][]string{
			SlotDress: {"shalwar-kameez", "shalwar kameez", "jubbahs", "kurta", "shirt"},
			SlotShoes: {"sandals", "peshawari chappal", "chappal", "shoes"},
		},
		Formality: []FormalityKeyword{
			{Keyword: "formal", Formality: "Formal"},
			{Keyword: "casual", Formality: "Casual"},
		},
	}
}

// Keywords are the attributes extracted from one recommendation text.
// Empty fields were not found.
type Keywords struct {
	Color     string `json:"color,omitempty"`
	Type      string `json:"type,omitempty"`
	Formality string `json:"formality,omitempty"`
}

// Extract pulls the first matching color, slot type and formality keyword
// out of text. Matching is a case-insensitive substring test.
func (v Vocabulary) Extract(text string, slot Slot) Keywords {
	var k Keywords
	if text == "" {
		return k
	}
	lower := strings.ToLower(text)
	k.Color = firstContained(lower, v.Colors)
	k.Type = firstContained(lower, v.Types[slot])
	for _, f := range v.Formality {
		if strings.Contains(lower, strings.ToLower(f.Keyword)) {
			k.Formality = f.Formality
			break
		}
	}
	return k
}

func firstContained(lower string, keywords []string) string {
	for _, kw := range keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return kw
		}
	}
	return ""
}
