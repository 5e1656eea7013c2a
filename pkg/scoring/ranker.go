package scoring

import "sort"

// Rank orders candidates by descending score, keeping generation order among
// equal scores, drops repeated combinations (first occurrence wins) and
// truncates to limit. Candidates from the engine are compared by item
// identity, others by Key. limit <= 0 keeps everything. The input slice is
// not modified.
func Rank(cands []Candidate, limit int) []Candidate {
	sorted := make([]Candidate, len(cands))
	copy(sorted, cands)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	seen := make(map[string]bool, len(sorted))
	out := make([]Candidate, 0, len(sorted))
	for _, c := range sorted {
		id := c.identity
		if id == "" {
			id = c.Key
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, c)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
