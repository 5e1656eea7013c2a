package scoring

import (
	"math"

	"github.com/outfitscope/outfitscope/pkg/color"
	"github.com/outfitscope/outfitscope/pkg/wardrobe"
)

// Scorer computes the composite score of a combination.
// It holds no mutable state and is safe for concurrent use.
type Scorer struct {
	palette color.Palette
	weights Weights
}

// NewScorer creates a scorer over the given palette and weights.
func NewScorer(p color.Palette, w Weights) *Scorer {
	return &Scorer{palette: p, weights: w}
}

// DefaultScorer returns a scorer with the stock palette and weights.
func DefaultScorer() *Scorer {
	return NewScorer(color.DefaultPalette(), Defaults())
}

// Palette returns the palette the scorer was built with.
func (s *Scorer) Palette() color.Palette { return s.palette }

// Score returns the composite score of items, rounded to 2 decimals.
// Fewer than two items score 0.
func (s *Scorer) Score(items []wardrobe.Item) float64 {
	return s.compute(items, nil).Score
}

// Explain returns the full breakdown behind Score.
func (s *Scorer) Explain(items []wardrobe.Item) Breakdown {
	var pairs []PairEvidence
	b := s.compute(items, &pairs)
	b.Pairs = pairs
	return b
}

func (s *Scorer) compute(items []wardrobe.Item, evidence *[]PairEvidence) Breakdown {
	var b Breakdown
	if len(items) < 2 {
		return b
	}

	pair := func(i, j int, weight float64) float64 {
		rel := s.palette.Classify(items[i].Color, items[j].Color)
		h := s.palette.Scores.Score(rel)
		if evidence != nil {
			*evidence = append(*evidence, PairEvidence{
				From:     i,
				To:       j,
				ColorA:   items[i].Color,
				ColorB:   items[j].Color,
				Relation: rel,
				Harmony:  h,
				Weight:   weight,
			})
		}
		return h
	}

	// Every product is converted explicitly so the compiler cannot fuse it
	// into the following addition; scores must match bit for bit.
	var harmony float64
	if len(items) == 4 && len(s.weights.FourItemPairs) > 0 {
		for _, wp := range s.weights.FourItemPairs {
			harmony += float64(wp.Weight * pair(wp.From, wp.To, wp.Weight))
		}
	} else {
		for i := 0; i < len(items); i++ {
			for j := i + 1; j < len(items); j++ {
				harmony += pair(i, j, 1)
			}
		}
	}

	var energy, calm, prof float64
	for _, it := range items {
		v := s.palette.Psychology(it.Color)
		energy += v.Energy
		calm += v.Calm
		prof += v.Professionalism
	}
	n := float64(len(items))
	energy /= n
	calm /= n
	prof /= n

	w := s.weights
	mood := w.MoodBase - math.Abs(energy-w.EnergyTarget) - math.Abs(calm-w.CalmTarget)
	profFactor := prof * w.ProfessionalismFactor
	raw := float64(harmony*mood) * profFactor

	b.Harmony = harmony
	b.Energy = energy
	b.Calm = calm
	b.Professionalism = prof
	b.Mood = mood
	b.ProfFactor = profFactor
	b.Raw = raw
	b.Score = round2(math.Max(0, raw))
	return b
}

// round2 rounds half up to 2 decimals.
func round2(x float64) float64 {
	return math.Floor(float64(x*100)+0.5) / 100
}
