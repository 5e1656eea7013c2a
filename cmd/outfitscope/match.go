package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/outfitscope/outfitscope/pkg/match"
	"github.com/outfitscope/outfitscope/pkg/surface"
	"github.com/outfitscope/outfitscope/pkg/wardrobe"
)

func newMatchCmd() *cobra.Command {
	var opts matchOpts

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match free-text recommendations to owned items",
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := resolveProject(cmd)
			if err != nil {
				return err
			}
			opts.project = project
			return runMatch(cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.catalog, "catalog", "", "Path to a catalog JSON file (required)")
	cmd.Flags().StringVar(&opts.recommendations, "recommendations", "", "Path to a recommendations JSON file (required)")
	cmd.Flags().StringVar(&opts.outputFmt, "output", "text", "Output format: text, json or markdown")
	_ = cmd.MarkFlagRequired("catalog")
	_ = cmd.MarkFlagRequired("recommendations")

	return cmd
}

type matchOpts struct {
	project         string
	catalog         string
	recommendations string
	outputFmt       string
}

func runMatch(stdout, stderr io.Writer, opts matchOpts) error {
	renderer, err := surface.ForFormat(opts.outputFmt)
	if err != nil {
		return err
	}
	cfg := loadConfig(stderr, opts.project)

	c, err := wardrobe.LoadCatalog(opts.catalog)
	if err != nil {
		return err
	}
	recs, err := match.LoadRecommendations(opts.recommendations)
	if err != nil {
		return err
	}

	fmt.Fprintf(stderr, "Matching %d recommendations against %d items\n", len(recs), len(c.Items))
	matches := cfg.Matcher().MatchRecommendations(recs, match.SlotCatalog(c, cfg.Boxes()))

	if err := renderer.Render(stdout, &surface.Report{Matches: matches}); err != nil {
		return fmt.Errorf("rendering: %w", err)
	}
	return nil
}
