package match

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/outfitscope/outfitscope/pkg/wardrobe"
)

// Recommendation is one outfit suggested by an external recommender, each
// slot a short free-text description.
type Recommendation struct {
	ID          string `json:"id,omitempty"`
	Dress       string `json:"dress,omitempty"`
	Shoes       string `json:"shoes,omitempty"`
	UpperLayer  string `json:"upper_layer,omitempty"`
	Accessories string `json:"accessories,omitempty"`
}

// Text returns the description for a slot.
func (r Recommendation) Text(slot Slot) string {
	switch slot {
	case SlotDress:
		return r.Dress
	case SlotShoes:
		return r.Shoes
	case SlotUpperLayer:
		return r.UpperLayer
	case SlotAccessories:
		return r.Accessories
	}
	return ""
}

// MatchedItems holds the owned item chosen for each slot, nil when absent.
type MatchedItems struct {
	Dress       *wardrobe.Item `json:"dress"`
	Shoes       *wardrobe.Item `json:"shoes"`
	UpperLayer  *wardrobe.Item `json:"upper_layer"`
	Accessories *wardrobe.Item `json:"accessories"`
}

func (m *MatchedItems) set(slot Slot, it *wardrobe.Item) {
	switch slot {
	case SlotDress:
		m.Dress = it
	case SlotShoes:
		m.Shoes = it
	case SlotUpperLayer:
		m.UpperLayer = it
	case SlotAccessories:
		m.Accessories = it
	}
}

// Get returns the item matched for a slot.
func (m MatchedItems) Get(slot Slot) *wardrobe.Item {
	switch slot {
	case SlotDress:
		return m.Dress
	case SlotShoes:
		return m.Shoes
	case SlotUpperLayer:
		return m.UpperLayer
	case SlotAccessories:
		return m.Accessories
	}
	return nil
}

// MatchedOutfit is a recommendation paired with the owned items that fit it.
type MatchedOutfit struct {
	ID         string         `json:"id"`
	Original   Recommendation `json:"original"`
	Items      MatchedItems   `json:"items"`
	HasMatches bool           `json:"has_matches"`
}

// Weights are the points awarded per attribute overlap.
type Weights struct {
	Color     float64
	Type      float64
	Formality float64
	Baseline  float64 // awarded when nothing overlaps
}

// DefaultWeights returns the stock attribute weights.
func DefaultWeights() Weights {
	return Weights{Color: 3, Type: 2, Formality: 1, Baseline: 0.5}
}

// Matcher scores owned items against recommendation text.
type Matcher struct {
	vocab   Vocabulary
	weights Weights
}

// NewMatcher creates a matcher with the given vocabulary and weights.
func NewMatcher(v Vocabulary, w Weights) *Matcher {
	return &Matcher{vocab: v, weights: w}
}

// DefaultMatcher returns a matcher with the stock vocabulary and weights.
func DefaultMatcher() *Matcher {
	return NewMatcher(DefaultVocabulary(), DefaultWeights())
}

// Vocabulary returns the matcher's keyword table.
func (m *Matcher) Vocabulary() Vocabulary { return m.vocab }

// Score returns the points an item earns against extracted keywords.
func (m *Matcher) Score(k Keywords, it wardrobe.Item) float64 {
	var score float64
	if k.Color != "" && it.Color != "" && overlaps(k.Color, it.Color) {
		score += m.weights.Color
	}
	if k.Type != "" && it.Type != "" && overlaps(k.Type, it.Type) {
		score += m.weights.Type
	}
	if k.Formality != "" && it.Formality != "" && strings.EqualFold(k.Formality, string(it.Formality)) {
		score += m.weights.Formality
	}
	if score == 0 {
		score = m.weights.Baseline
	}
	return score
}

// BestMatch picks the owned item that best fits text for a slot. Ties keep
// the earliest item. It reports false only when items is empty.
func (m *Matcher) BestMatch(text string, items []wardrobe.Item, slot Slot) (wardrobe.Item, bool) {
	k := m.vocab.Extract(text, slot)

	var (
		best      wardrobe.Item
		bestScore float64
		found     bool
	)
	for _, it := range items {
		if s := m.Score(k, it); s > bestScore {
			best, bestScore, found = it, s, true
		}
	}
	return best, found
}

// MatchRecommendations matches every recommendation against the items
// grouped by slot. Output order follows recs. Slots with empty text are left
// unmatched.
func (m *Matcher) MatchRecommendations(recs []Recommendation, catalog map[Slot][]wardrobe.Item) []MatchedOutfit {
	out := make([]MatchedOutfit, 0, len(recs))
	for i, rec := range recs {
		mo := MatchedOutfit{
			ID:       rec.ID,
			Original: rec,
		}
		if mo.ID == "" {
			mo.ID = derivedID(i, rec)
		}
		for _, slot := range Slots {
			text := rec.Text(slot)
			if text == "" {
				continue
			}
			if it, ok := m.BestMatch(text, catalog[slot], slot); ok {
				mo.Items.set(slot, &it)
				mo.HasMatches = true
			}
		}
		out = append(out, mo)
	}
	return out
}

// derivedID names an anonymous recommendation by its content and position so
// repeated runs produce the same ID.
func derivedID(index int, rec Recommendation) string {
	name := fmt.Sprintf("%d\x00%s\x00%s\x00%s\x00%s", index, rec.Dress, rec.Shoes, rec.UpperLayer, rec.Accessories)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}

// overlaps reports whether either string contains the other, ignoring case.
func overlaps(a, b string) bool {
	a, b = strings.ToLower(a), strings.ToLower(b)
	return strings.Contains(a, b) || strings.Contains(b, a)
}
