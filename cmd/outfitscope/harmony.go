package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/outfitscope/outfitscope/pkg/color"
)

func newHarmonyCmd() *cobra.Command {
	var outputFmt string

	cmd := &cobra.Command{
		Use:   "harmony COLOR_A COLOR_B",
		Short: "Show how two colors relate and their harmony score",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := resolveProject(cmd)
			if err != nil {
				return err
			}
			palette := loadConfig(cmd.ErrOrStderr(), project).ColorPalette()
			return runHarmony(cmd.OutOrStdout(), palette, args[0], args[1], outputFmt)
		},
	}

	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")
	return cmd
}

type harmonyResult struct {
	ColorA   string         `json:"color_a"`
	ColorB   string         `json:"color_b"`
	Relation color.Relation `json:"relation"`
	Score    float64        `json:"score"`
	VectorA  color.Vector   `json:"vector_a"`
	VectorB  color.Vector   `json:"vector_b"`
}

func runHarmony(w io.Writer, p color.Palette, a, b, outputFmt string) error {
	res := harmonyResult{
		ColorA:   a,
		ColorB:   b,
		Relation: p.Classify(a, b),
		Score:    p.Harmony(a, b),
		VectorA:  p.Psychology(a),
		VectorB:  p.Psychology(b),
	}

	switch outputFmt {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	case "", "text":
		fmt.Fprintf(w, "%s + %s: %s (%.2f)\n", a, b, res.Relation, res.Score)
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want text or json)", outputFmt)
	}
}
