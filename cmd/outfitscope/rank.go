package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/outfitscope/outfitscope/pkg/config"
	"github.com/outfitscope/outfitscope/pkg/filter"
	"github.com/outfitscope/outfitscope/pkg/scoring"
	"github.com/outfitscope/outfitscope/pkg/surface"
	"github.com/outfitscope/outfitscope/pkg/wardrobe"
)

func newRankCmd() *cobra.Command {
	var opts rankOpts

	cmd := &cobra.Command{
		Use:   "rank",
		Short: "Rank outfit combinations across categories",
		Long: `Expands one item per category into every combination, scores each for
color harmony and psychological balance, and prints the best few.

Items come from a selection file (category -> items, in order) or from a
catalog plus a list of categories.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := resolveProject(cmd)
			if err != nil {
				return err
			}
			opts.project = project
			return runRank(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.selection, "selection", "", "Path to a selection JSON file")
	cmd.Flags().StringVar(&opts.catalog, "catalog", "", "Path to a catalog JSON file")
	cmd.Flags().StringSliceVar(&opts.categories, "categories", nil, "Catalog categories to combine, in order")
	cmd.Flags().StringVar(&opts.where, "where", "", `CEL item filter, e.g. 'formality == "Formal"'`)
	cmd.Flags().StringVar(&opts.outputFmt, "output", "text", "Output format: text, json or markdown")
	cmd.Flags().BoolVar(&opts.explain, "explain", false, "Include a score breakdown per candidate")
	cmd.Flags().BoolVar(&opts.save, "save", false, "Save the result for the history command")
	cmd.MarkFlagsMutuallyExclusive("selection", "catalog")
	cmd.MarkFlagsRequiredTogether("catalog", "categories")

	return cmd
}

type rankOpts struct {
	project    string
	selection  string
	catalog    string
	categories []string
	where      string
	outputFmt  string
	explain    bool
	save       bool
}

func runRank(ctx context.Context, stdout, stderr io.Writer, opts rankOpts) error {
	renderer, err := surface.ForFormat(opts.outputFmt)
	if err != nil {
		return err
	}
	cfg := loadConfig(stderr, opts.project)

	sel, err := loadRankSelection(opts)
	if err != nil {
		return err
	}
	if opts.where != "" {
		f, err := filter.Compile(opts.where)
		if err != nil {
			return err
		}
		sel = f.Selection(sel)
	}

	fmt.Fprintf(stderr, "Ranking: %d categories, %d items\n", sel.Len(), sel.ItemCount())

	engine := cfg.Engine()
	var res *scoring.Result
	if opts.explain {
		res, err = engine.Explain(ctx, sel)
	} else {
		res, err = engine.GenerateAndRank(ctx, sel)
	}
	if err != nil {
		return fmt.Errorf("ranking: %w", err)
	}
	fmt.Fprintf(stderr, "  Scored %d combinations\n", res.Generated)
	if res.Truncated {
		fmt.Fprintf(stderr, "  Warning: stopped at %d combinations (scoring.max_combinations)\n", res.Generated)
	}

	if opts.save {
		saveRankResult(stderr, opts.project, res)
	}

	if err := renderer.Render(stdout, &surface.Report{Ranking: res}); err != nil {
		return fmt.Errorf("rendering: %w", err)
	}
	return nil
}

func loadRankSelection(opts rankOpts) (*wardrobe.Selection, error) {
	switch {
	case opts.selection != "":
		return wardrobe.LoadSelection(opts.selection)
	case opts.catalog != "":
		c, err := wardrobe.LoadCatalog(opts.catalog)
		if err != nil {
			return nil, err
		}
		return c.Selection(opts.categories...), nil
	default:
		return nil, fmt.Errorf("either --selection or --catalog with --categories is required")
	}
}

// savedResult is a ranking result with the metadata history lists.
type savedResult struct {
	*scoring.Result
	ID       string `json:"id"`
	RankedAt string `json:"ranked_at"`
}

// saveRankResult persists a ranking result to the project's result directory.
func saveRankResult(stderr io.Writer, project string, res *scoring.Result) {
	resultDir := config.ResultDir(project)
	if err := os.MkdirAll(resultDir, 0o755); err != nil {
		fmt.Fprintf(stderr, "Warning: failed to create result dir: %v\n", err)
		return
	}

	wrapped := savedResult{
		Result:   res,
		ID:       uuid.NewString(),
		RankedAt: time.Now().UTC().Format(time.RFC3339),
	}
	data, err := json.MarshalIndent(wrapped, "", "  ")
	if err != nil {
		fmt.Fprintf(stderr, "Warning: failed to marshal result: %v\n", err)
		return
	}

	path := filepath.Join(resultDir, wrapped.ID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		fmt.Fprintf(stderr, "Warning: failed to save result: %v\n", err)
		return
	}
	fmt.Fprintf(stderr, "Result saved: %s\n", path)
}
