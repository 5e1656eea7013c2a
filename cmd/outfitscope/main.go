// Package main provides the outfitscope CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "outfitscope",
		Short: "Outfit compatibility scoring and recommendation",
		Long: `Outfitscope ranks outfit combinations from a wardrobe catalog by color
harmony and psychological balance, reconciles free-text recommendations
with owned items, and assembles event outfits from fixed recipes.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("project", "", "Directory to search for .outfitscope/config.yaml (default: cwd)")

	rootCmd.AddCommand(
		newRankCmd(),
		newMatchCmd(),
		newRecipeCmd(),
		newHarmonyCmd(),
		newHistoryCmd(),
	)
	return rootCmd
}
