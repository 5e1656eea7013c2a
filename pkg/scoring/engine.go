package scoring

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/outfitscope/outfitscope/pkg/wardrobe"
)

// Engine generates, scores and ranks combinations for a selection.
// It keeps no state between calls.
type Engine struct {
	scorer *Scorer
	opts   Options
}

// NewEngine creates an engine around scorer.
func NewEngine(scorer *Scorer, opts Options) *Engine {
	if scorer == nil {
		scorer = DefaultScorer()
	}
	return &Engine{scorer: scorer, opts: opts}
}

// Scorer returns the engine's scorer.
func (e *Engine) Scorer() *Scorer { return e.scorer }

// Options returns the engine's options.
func (e *Engine) Options() Options { return e.opts }

// GenerateAndRank expands sel, scores every combination and returns the top
// MaxResults candidates. A selection with fewer than two non-empty categories
// produces an empty result, not an error.
func (e *Engine) GenerateAndRank(ctx context.Context, sel *wardrobe.Selection) (*Result, error) {
	return e.run(ctx, sel, false)
}

// Explain is GenerateAndRank with a score breakdown for each kept candidate.
func (e *Engine) Explain(ctx context.Context, sel *wardrobe.Selection) (*Result, error) {
	return e.run(ctx, sel, true)
}

func (e *Engine) run(ctx context.Context, sel *wardrobe.Selection, explain bool) (*Result, error) {
	if sel == nil {
		return nil, fmt.Errorf("selection is nil")
	}

	combos, truncated := Generate(sel, e.opts.MaxCombinations)
	result := &Result{
		Generated:  len(combos),
		Truncated:  truncated,
		Candidates: []Candidate{},
	}
	for _, ci := range sel.NonEmpty() {
		result.Categories = append(result.Categories, ci.Category)
	}
	if len(combos) == 0 {
		return result, nil
	}

	cands, err := e.scoreAll(ctx, combos)
	if err != nil {
		return nil, err
	}

	result.Candidates = Rank(cands, e.opts.MaxResults)
	if explain {
		for _, c := range result.Candidates {
			result.Breakdowns = append(result.Breakdowns, e.scorer.Explain(c.Items))
		}
	}
	return result, nil
}

// scoreAll scores combos, writing each result at its own index so the output
// order is generation order however the work is scheduled.
func (e *Engine) scoreAll(ctx context.Context, combos []Combination) ([]Candidate, error) {
	cands := make([]Candidate, len(combos))
	score := func(i int) {
		c := combos[i]
		cands[i] = Candidate{Key: c.Key(), Items: c, Score: e.scorer.Score(c), identity: c.identity(i)}
	}

	if e.opts.Workers <= 1 || len(combos) < 2 {
		for i := range combos {
			if i%1024 == 0 {
				if err := ctx.Err(); err != nil {
					return nil, err
				}
			}
			score(i)
		}
		return cands, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.opts.Workers)
	chunk := (len(combos) + e.opts.Workers - 1) / e.opts.Workers
	for start := 0; start < len(combos); start += chunk {
		lo, hi := start, min(start+chunk, len(combos))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				score(i)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scoring combinations: %w", err)
	}
	return cands, nil
}
