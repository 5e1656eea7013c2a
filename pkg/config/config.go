// Package config handles loading and managing Outfitscope configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/outfitscope/outfitscope/pkg/color"
	"github.com/outfitscope/outfitscope/pkg/match"
	"github.com/outfitscope/outfitscope/pkg/recipe"
	"github.com/outfitscope/outfitscope/pkg/scoring"
)

// Config is the top-level configuration for Outfitscope.
type Config struct {
	Scoring  ScoringConfig  `yaml:"scoring"`
	Palette  PaletteConfig  `yaml:"palette"`
	Matching MatchingConfig `yaml:"matching"`
	Recipe   recipe.Recipe  `yaml:"recipe"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ScoringConfig controls combination generation and ranking.
type ScoringConfig struct {
	MaxResults      int            `yaml:"max_results" validate:"gte=1"`
	MaxAccepted     int            `yaml:"max_accepted" validate:"gte=1"`
	MaxCombinations int            `yaml:"max_combinations" validate:"gte=0"` // 0 = unbounded
	Workers         int            `yaml:"workers" validate:"gte=0,lte=256"`
	Weights         *WeightsConfig `yaml:"weights"`
}

// WeightsConfig overrides individual score coefficients. Unset fields keep
// their defaults.
type WeightsConfig struct {
	MoodBase              *float64       `yaml:"mood_base"`
	EnergyTarget          *float64       `yaml:"energy_target"`
	CalmTarget            *float64       `yaml:"calm_target"`
	ProfessionalismFactor *float64       `yaml:"professionalism_factor" validate:"omitempty,gt=0"`
	FourItemPairs         []WeightedPair `yaml:"four_item_pairs" validate:"omitempty,dive"`
}

// WeightedPair is the YAML form of scoring.WeightedPair.
type WeightedPair struct {
	From   int     `yaml:"from" validate:"gte=0,lte=3"`
	To     int     `yaml:"to" validate:"gte=0,lte=3,nefield=From"`
	Weight float64 `yaml:"weight" validate:"gte=0"`
}

// PaletteConfig extends the built-in color tables.
type PaletteConfig struct {
	Psychology map[string]color.Vector `yaml:"psychology"`
	Families   [][]string              `yaml:"families" validate:"dive,min=2"`
	Harmony    *color.HarmonyScores    `yaml:"harmony"`
}

// MatchingConfig controls the attribute matcher.
type MatchingConfig struct {
	Boxes       map[string]string `yaml:"boxes"` // slot -> catalog category
	ExtraColors []string          `yaml:"extra_colors"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level      string `yaml:"level" validate:"omitempty,oneof=trace debug info warn error"`
	Format     string `yaml:"format" validate:"omitempty,oneof=console json"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `yaml:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `yaml:"max_age_days" validate:"gte=0"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	opts := scoring.DefaultOptions()
	return &Config{
		Scoring: ScoringConfig{
			MaxResults:      opts.MaxResults,
			MaxAccepted:     opts.MaxAccepted,
			MaxCombinations: opts.MaxCombinations,
			Workers:         opts.Workers,
		},
		Matching: MatchingConfig{
			Boxes: map[string]string{},
		},
		Recipe: recipe.Default(),
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// Load reads a config file from the given path.
// If the file does not exist, it returns the default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	for slot := range c.Matching.Boxes {
		if !knownSlot(slot) {
			return fmt.Errorf("invalid config: unknown matching slot %q", slot)
		}
	}
	return nil
}

func knownSlot(s string) bool {
	for _, slot := range match.Slots {
		if string(slot) == s {
			return true
		}
	}
	return false
}

// ColorPalette returns the default palette extended by the config.
func (c *Config) ColorPalette() color.Palette {
	p := color.DefaultPalette().With(c.Palette.Psychology, c.Palette.Families)
	if c.Palette.Harmony != nil {
		p.Scores = *c.Palette.Harmony
	}
	return p
}

// Weights returns the default score weights with config overrides applied.
func (c *Config) Weights() scoring.Weights {
	w := scoring.Defaults()
	o := c.Scoring.Weights
	if o == nil {
		return w
	}
	if o.MoodBase != nil {
		w.MoodBase = *o.MoodBase
	}
	if o.EnergyTarget != nil {
		w.EnergyTarget = *o.EnergyTarget
	}
	if o.CalmTarget != nil {
		w.CalmTarget = *o.CalmTarget
	}
	if o.ProfessionalismFactor != nil {
		w.ProfessionalismFactor = *o.ProfessionalismFactor
	}
	if len(o.FourItemPairs) > 0 {
		w.FourItemPairs = make([]scoring.WeightedPair, len(o.FourItemPairs))
		for i, p := range o.FourItemPairs {
			w.FourItemPairs[i] = scoring.WeightedPair{From: p.From, To: p.To, Weight: p.Weight}
		}
	}
	return w
}

// Options returns the engine options.
func (c *Config) Options() scoring.Options {
	return scoring.Options{
		MaxResults:      c.Scoring.MaxResults,
		MaxAccepted:     c.Scoring.MaxAccepted,
		MaxCombinations: c.Scoring.MaxCombinations,
		Workers:         c.Scoring.Workers,
	}
}

// Engine builds a scoring engine from the config.
func (c *Config) Engine() *scoring.Engine {
	return scoring.NewEngine(scoring.NewScorer(c.ColorPalette(), c.Weights()), c.Options())
}

// Matcher builds an attribute matcher from the config.
func (c *Config) Matcher() *match.Matcher {
	v := match.DefaultVocabulary()
	v.Colors = append(v.Colors, c.Matching.ExtraColors...)
	return match.NewMatcher(v, match.DefaultWeights())
}

// Boxes returns the slot -> category mapping with config overrides applied.
func (c *Config) Boxes() map[match.Slot]string {
	boxes := match.DefaultBoxes()
	for slot, category := range c.Matching.Boxes {
		boxes[match.Slot(slot)] = category
	}
	return boxes
}

// FindConfigFile looks for .outfitscope/config.yaml in the given directory
// and its parents, returning the path if found, or "" if not.
func FindConfigFile(dir string) string {
	for {
		candidate := filepath.Join(dir, ".outfitscope", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}

// CacheDir returns the cache directory for a project directory.
// Uses ~/.cache/outfitscope/<slug>/ to keep results out of the project.
func CacheDir(projectPath string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to temp dir if HOME isn't available
		home = os.TempDir()
	}
	return filepath.Join(home, ".cache", "outfitscope", projectSlug(projectPath))
}

// ResultDir returns the ranking result storage directory for a project.
func ResultDir(projectPath string) string {
	return filepath.Join(CacheDir(projectPath), "results")
}

// projectSlug creates a filesystem-safe identifier from a project path.
// Uses the last two path components (e.g., "user_closet" from "/home/user/closet").
func projectSlug(projectPath string) string {
	abs, err := filepath.Abs(projectPath)
	if err != nil {
		abs = projectPath
	}
	dir := filepath.Base(filepath.Dir(abs))
	base := filepath.Base(abs)
	return dir + "_" + base
}
