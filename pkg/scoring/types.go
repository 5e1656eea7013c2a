// Package scoring implements the Outfitscope combination engine.
// It expands a category selection into outfit combinations, scores each one
// for color harmony and psychological balance, and keeps the best few.
package scoring

import (
	"strconv"
	"strings"

	"github.com/outfitscope/outfitscope/pkg/color"
	"github.com/outfitscope/outfitscope/pkg/wardrobe"
)

// Combination is one item from each participating category, in selection order.
type Combination []wardrobe.Item

var keyEscaper = strings.NewReplacer(`\`, `\\`, "|", `\|`)

// Key joins the item IDs with "|". Backslashes and pipes inside an ID are
// escaped, so distinct ID sequences never share a key.
func (c Combination) Key() string {
	ids := make([]string, len(c))
	for i, it := range c {
		ids[i] = keyEscaper.Replace(it.ID)
	}
	return strings.Join(ids, "|")
}

// identity is what Rank dedupes on: the key when every item has an ID,
// otherwise the generation index, since ID-less items cannot be told apart.
// Keys of two or more items always hold an unescaped "|", so the two forms
// never collide.
func (c Combination) identity(index int) string {
	for _, it := range c {
		if it.ID == "" {
			return "#" + strconv.Itoa(index)
		}
	}
	return c.Key()
}

// Candidate is a scored combination.
type Candidate struct {
	Key   string          `json:"key"`
	Items []wardrobe.Item `json:"items"`
	Score float64         `json:"score"` // >= 0, rounded to 2 decimals

	identity string // set by the engine; Rank falls back to Key
}

// Result is the complete output of ranking one selection.
// Immutable once computed.
type Result struct {
	Categories []string    `json:"categories"`
	Generated  int         `json:"generated"`           // combinations scored
	Truncated  bool        `json:"truncated,omitempty"` // generation stopped at the cap
	Candidates []Candidate `json:"candidates"`
	Breakdowns []Breakdown `json:"breakdowns,omitempty"` // parallel to Candidates when explained
}

// Breakdown explains how a combination's score was reached.
type Breakdown struct {
	Harmony         float64        `json:"harmony"`
	Energy          float64        `json:"energy"`
	Calm            float64        `json:"calm"`
	Professionalism float64        `json:"professionalism"`
	Mood            float64        `json:"mood"`
	ProfFactor      float64        `json:"prof_factor"`
	Raw             float64        `json:"raw"`
	Score           float64        `json:"score"`
	Pairs           []PairEvidence `json:"pairs"`
}

// PairEvidence is a single color pair that contributed to the harmony term.
type PairEvidence struct {
	From     int            `json:"from"` // item index
	To       int            `json:"to"`
	ColorA   string         `json:"color_a"`
	ColorB   string         `json:"color_b"`
	Relation color.Relation `json:"relation"`
	Harmony  float64        `json:"harmony"`
	Weight   float64        `json:"weight"`
}

// Rating maps a score onto a short label for display.
func Rating(score float64) string {
	switch {
	case score >= 20:
		return "excellent"
	case score >= 10:
		return "strong"
	case score >= 5:
		return "good"
	case score > 0:
		return "fair"
	default:
		return "poor"
	}
}
