package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/outfitscope/outfitscope/pkg/color"
	"github.com/outfitscope/outfitscope/pkg/wardrobe"
)

func items(colors ...string) []wardrobe.Item {
	out := make([]wardrobe.Item, len(colors))
	for i, c := range colors {
		out[i] = wardrobe.Item{ID: c, Color: c}
	}
	return out
}

func TestScoreLiterals(t *testing.T) {
	s := DefaultScorer()
	tests := []struct {
		colors []string
		want   float64
	}{
		{[]string{"White", "Dark Blue"}, 3.11},
		{[]string{"Red", "Green"}, 5.64},
		{[]string{"White", "Dark Blue", "Black"}, 9.8},
		{[]string{"Red", "Green", "Black"}, 12.78},
		{[]string{"White", "Dark Blue", "Black", "Brown"}, 25.94},
		{[]string{"Red", "Green", "Blue", "Orange"}, 31.1},
		{[]string{"White", "Red", "Green", "Blue", "Orange"}, 34.09},
		{[]string{"Magenta", "Teal"}, 2.41},
		{[]string{"", ""}, 3.62},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, s.Score(items(tc.colors...)), "%v", tc.colors)
	}
}

func TestScoreTooFewItems(t *testing.T) {
	s := DefaultScorer()
	assert.Zero(t, s.Score(nil))
	assert.Zero(t, s.Score(items("Red")))
}

func TestScoreNonNegative(t *testing.T) {
	// Weights that drive the mood term negative must still clamp to zero.
	w := Defaults()
	w.MoodBase = -5
	s := NewScorer(color.DefaultPalette(), w)
	assert.Equal(t, 0.0, s.Score(items("Red", "Green")))

	b := s.Explain(items("Red", "Green"))
	assert.Less(t, b.Raw, 0.0)
	assert.Equal(t, 0.0, b.Score)
}

func TestScoreDeterministic(t *testing.T) {
	s := DefaultScorer()
	in := items("Light Blue", "Charcoal", "Tan", "Navy")
	first := s.Score(in)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, s.Score(in))
	}
}

func TestExplainFourItemWeights(t *testing.T) {
	b := DefaultScorer().Explain(items("White", "Dark Blue", "Black", "Brown"))

	assert.Len(t, b.Pairs, 4)
	assert.Equal(t, PairEvidence{From: 0, To: 1, ColorA: "White", ColorB: "Dark Blue", Relation: color.RelationNeutral, Harmony: 1.0, Weight: 3.0}, b.Pairs[0])
	assert.Equal(t, 3, b.Pairs[3].From)
	assert.Equal(t, 1, b.Pairs[3].To)
	assert.Equal(t, 1.5, b.Pairs[3].Weight)
	assert.Equal(t, 25.94, b.Score)
	assert.InDelta(t, 3.0+2.0+2.0+1.5, b.Harmony, 1e-9)
}

func TestExplainPairwise(t *testing.T) {
	b := DefaultScorer().Explain(items("Red", "Green", "Black"))
	assert.Len(t, b.Pairs, 3)
	assert.Equal(t, color.RelationComplementary, b.Pairs[0].Relation)
	assert.InDelta(t, 2.5+1.0+1.0, b.Harmony, 1e-9)
	assert.InDelta(t, 1.2, b.ProfFactor, 1e-9)
}

func TestRound2(t *testing.T) {
	assert.Equal(t, 3.11, round2(3.105))
	assert.Equal(t, 0.0, round2(0.004))
	assert.Equal(t, 0.01, round2(0.005))
	assert.Equal(t, 12.78, round2(12.78))
}

func TestRating(t *testing.T) {
	assert.Equal(t, "poor", Rating(0))
	assert.Equal(t, "fair", Rating(3.11))
	assert.Equal(t, "good", Rating(9.8))
	assert.Equal(t, "strong", Rating(12.78))
	assert.Equal(t, "excellent", Rating(25.94))
}
