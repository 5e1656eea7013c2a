package scoring

import "github.com/outfitscope/outfitscope/pkg/wardrobe"

// maxPrealloc bounds the initial capacity of Generate's result.
const maxPrealloc = 1 << 16

// Generate expands a selection into combinations, one item per non-empty
// category. The first category varies slowest. Fewer than two non-empty
// categories yields nothing.
//
// When limit > 0 expansion stops after limit combinations; the result is then
// a prefix of the unbounded sequence. The second return value reports whether
// that happened.
func Generate(sel *wardrobe.Selection, limit int) ([]Combination, bool) {
	cats := sel.NonEmpty()
	if len(cats) < 2 {
		return nil, false
	}

	total := sel.Size()
	truncated := limit > 0 && total > limit
	if truncated {
		total = limit
	}

	out := make([]Combination, 0, min(total, maxPrealloc))
	idx := make([]int, len(cats))
	for {
		combo := make(Combination, len(cats))
		for i, ci := range cats {
			combo[i] = ci.Items[idx[i]]
		}
		out = append(out, combo)
		if limit > 0 && len(out) == limit {
			return out, truncated
		}

		// Advance the odometer from the last category; a full wrap ends it.
		i := len(cats) - 1
		for ; i >= 0; i-- {
			idx[i]++
			if idx[i] < len(cats[i].Items) {
				break
			}
			idx[i] = 0
		}
		if i < 0 {
			return out, truncated
		}
	}
}
