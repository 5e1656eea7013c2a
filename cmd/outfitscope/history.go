package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/outfitscope/outfitscope/pkg/config"
	"github.com/outfitscope/outfitscope/pkg/scoring"
)

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List ranking results saved with rank --save",
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := resolveProject(cmd)
			if err != nil {
				return err
			}
			return runHistory(cmd.OutOrStdout(), config.ResultDir(project), limit)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of results to list (0 = all)")
	return cmd
}

// historyEntry summarizes one saved result.
type historyEntry struct {
	ID         string
	RankedAt   string
	Categories []string
	Generated  int
	Best       *scoring.Candidate
}

func loadHistory(dir string) ([]historyEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading result dir: %w", err)
	}

	var out []historyEntry
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			continue
		}
		var saved struct {
			scoring.Result
			ID       string `json:"id"`
			RankedAt string `json:"ranked_at"`
		}
		if err := json.Unmarshal(data, &saved); err != nil {
			continue
		}
		he := historyEntry{
			ID:         saved.ID,
			RankedAt:   saved.RankedAt,
			Categories: saved.Categories,
			Generated:  saved.Generated,
		}
		if len(saved.Candidates) > 0 {
			best := saved.Candidates[0]
			he.Best = &best
		}
		out = append(out, he)
	}

	// RFC3339 UTC timestamps sort lexically.
	sort.SliceStable(out, func(i, j int) bool { return out[i].RankedAt > out[j].RankedAt })
	return out, nil
}

func runHistory(w io.Writer, dir string, limit int) error {
	entries, err := loadHistory(dir)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, "No saved results. Run `outfitscope rank --save` first.")
		return nil
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}

	for _, e := range entries {
		best := "-"
		if e.Best != nil {
			best = fmt.Sprintf("%.2f %s", e.Best.Score, e.Best.Key)
		}
		fmt.Fprintf(w, "%s  %s  [%s]  %d scored  best: %s\n",
			e.RankedAt, e.ID[:min(8, len(e.ID))], strings.Join(e.Categories, ", "), e.Generated, best)
	}
	return nil
}
