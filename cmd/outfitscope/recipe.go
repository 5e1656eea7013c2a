package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/outfitscope/outfitscope/internal/logging"
	"github.com/outfitscope/outfitscope/pkg/recipe"
	"github.com/outfitscope/outfitscope/pkg/surface"
	"github.com/outfitscope/outfitscope/pkg/wardrobe"
)

func newRecipeCmd() *cobra.Command {
	var opts recipeOpts

	cmd := &cobra.Command{
		Use:   "recipe",
		Short: "Assemble the configured event outfits from a catalog",
		Long: `Looks up each recipe pairing in the catalog by garment type. A temperature
inside the waistcoat band adds a matching waistcoat.

--temperature is passed through as is. --forecast applies the app convention
instead: above the band means no waistcoat, below it the recipe does not apply.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			project, err := resolveProject(cmd)
			if err != nil {
				return err
			}
			opts.project = project
			if cmd.Flags().Changed("temperature") {
				t := opts.temperatureVal
				opts.temperature = &t
			}
			if cmd.Flags().Changed("forecast") {
				f := opts.forecastVal
				opts.forecast = &f
			}
			return runRecipe(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.catalog, "catalog", "", "Path to a catalog JSON file (required)")
	cmd.Flags().Float64Var(&opts.temperatureVal, "temperature", 0, "Temperature in °C passed to the matcher")
	cmd.Flags().Float64Var(&opts.forecastVal, "forecast", 0, "Forecast temperature in °C, mapped by the app convention")
	cmd.Flags().StringVar(&opts.outputFmt, "output", "text", "Output format: text, json or markdown")
	cmd.MarkFlagsMutuallyExclusive("temperature", "forecast")
	_ = cmd.MarkFlagRequired("catalog")

	return cmd
}

type recipeOpts struct {
	project        string
	catalog        string
	temperatureVal float64
	forecastVal    float64
	temperature    *float64
	forecast       *float64
	outputFmt      string
}

func runRecipe(ctx context.Context, stdout, stderr io.Writer, opts recipeOpts) error {
	renderer, err := surface.ForFormat(opts.outputFmt)
	if err != nil {
		return err
	}
	cfg := loadConfig(stderr, opts.project)
	log, closer := newLogger(stderr, cfg)
	defer closer.Close()

	c, err := wardrobe.LoadCatalog(opts.catalog)
	if err != nil {
		return err
	}

	temperature := opts.temperature
	if opts.forecast != nil {
		var ok bool
		temperature, ok = recipe.CallerTemperature(cfg.Recipe.WaistcoatBand, *opts.forecast)
		if !ok {
			report := &surface.Report{Notice: fmt.Sprintf("The %s recipe does not apply at %.1f°C.", cfg.Recipe.Event, *opts.forecast)}
			return renderer.Render(stdout, report)
		}
	}

	m := recipe.NewMatcher(cfg.Recipe, wardrobe.MemoryLookup{c.ID: c}, logging.Component(log, "recipe"))
	outfits, err := m.Assemble(ctx, c.ID, temperature)
	if err != nil {
		return fmt.Errorf("assembling outfits: %w", err)
	}

	report := &surface.Report{Outfits: outfits}
	if len(outfits) == 0 {
		report.Notice = fmt.Sprintf("No %s outfits could be assembled from %s.", cfg.Recipe.Event, firstNonEmpty(c.Name, c.ID))
	}
	if err := renderer.Render(stdout, report); err != nil {
		return fmt.Errorf("rendering: %w", err)
	}
	return nil
}
