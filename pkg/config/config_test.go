package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/outfitscope/outfitscope/pkg/color"
	"github.com/outfitscope/outfitscope/pkg/match"
	"github.com/outfitscope/outfitscope/pkg/wardrobe"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Scoring.MaxResults != 4 {
		t.Errorf("expected default max_results 4, got %d", cfg.Scoring.MaxResults)
	}
	if cfg.Scoring.MaxAccepted != 5 {
		t.Errorf("expected default max_accepted 5, got %d", cfg.Scoring.MaxAccepted)
	}
	if cfg.Scoring.MaxCombinations != 5000 {
		t.Errorf("expected default max_combinations 5000, got %d", cfg.Scoring.MaxCombinations)
	}
	if cfg.Recipe.Event != "Aqiqa" {
		t.Errorf("expected default recipe Aqiqa, got %q", cfg.Recipe.Event)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "valid YAML overrides defaults",
			yaml: `
scoring:
  max_results: 6
  workers: 4
  weights:
    professionalism_factor: 2.0
palette:
  psychology:
    Teal: {energy: 0.5, calm: 0.8, professionalism: 0.8}
  families:
    - [Teal, Navy]
matching:
  boxes:
    dress: Kurtas
  extra_colors: [teal]
recipe:
  event: Nikah
  waistcoat_band: {min: 18, max: 26}
  pairings:
    - name: Groom
      dress_type: Sherwani
      shoe_type: Khussa
`,
			check: func(t *testing.T, cfg *Config) {
				if cfg.Scoring.MaxResults != 6 {
					t.Errorf("expected max_results 6, got %d", cfg.Scoring.MaxResults)
				}
				if cfg.Scoring.MaxCombinations != 5000 {
					t.Errorf("unset max_combinations should keep default, got %d", cfg.Scoring.MaxCombinations)
				}
				if cfg.Options().Workers != 4 {
					t.Errorf("expected 4 workers, got %d", cfg.Options().Workers)
				}
				w := cfg.Weights()
				if w.ProfessionalismFactor != 2.0 || w.MoodBase != 2.5 {
					t.Errorf("unexpected weights %+v", w)
				}
				p := cfg.ColorPalette()
				if p.Psychology("Dark Teal") != (color.Vector{Energy: 0.5, Calm: 0.8, Professionalism: 0.8}) {
					t.Errorf("expected Teal psychology entry, got %+v", p.Psychology("Teal"))
				}
				if p.Classify("Teal", "Navy") != color.RelationAnalogous {
					t.Error("expected Teal/Navy family")
				}
				if cfg.Boxes()[match.SlotDress] != "Kurtas" || cfg.Boxes()[match.SlotShoes] != "Shoes" {
					t.Errorf("unexpected boxes %v", cfg.Boxes())
				}
				if got := cfg.Matcher().Vocabulary().Extract("teal kurta", match.SlotDress).Color; got != "teal" {
					t.Errorf("expected extra color teal, got %q", got)
				}
				if cfg.Recipe.Event != "Nikah" || len(cfg.Recipe.Pairings) != 1 {
					t.Errorf("unexpected recipe %+v", cfg.Recipe)
				}
				if !cfg.Recipe.WaistcoatBand.Contains(18) || cfg.Recipe.WaistcoatBand.Contains(27) {
					t.Errorf("unexpected band %+v", cfg.Recipe.WaistcoatBand)
				}
			},
		},
		{
			name: "weights change engine scores",
			yaml: `
scoring:
  weights:
    mood_base: 0
    energy_target: 0.5
    calm_target: 0.7
`,
			check: func(t *testing.T, cfg *Config) {
				items := []wardrobe.Item{{ID: "a", Color: "White"}, {ID: "b", Color: "Dark Blue"}}
				if got := cfg.Engine().Scorer().Score(items); got != 0 {
					t.Errorf("expected clamped score 0, got %v", got)
				}
			},
		},
		{
			name:    "invalid YAML returns error",
			yaml:    "{{invalid yaml",
			wantErr: true,
		},
		{
			name:    "zero max_results rejected",
			yaml:    "scoring:\n  max_results: 0\n",
			wantErr: true,
		},
		{
			name:    "inverted band rejected",
			yaml:    "recipe:\n  waistcoat_band: {min: 30, max: 21}\n",
			wantErr: true,
		},
		{
			name:    "unknown slot rejected",
			yaml:    "matching:\n  boxes:\n    hat: Hats\n",
			wantErr: true,
		},
		{
			name:    "bad log level rejected",
			yaml:    "logging:\n  level: loud\n",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")

			if err := os.WriteFile(path, []byte(tc.yaml), 0o644); err != nil {
				t.Fatalf("write test config: %v", err)
			}

			cfg, err := Load(path)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.check != nil {
				tc.check(t, cfg)
			}
		})
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Scoring.MaxResults != 4 {
		t.Errorf("expected default max_results, got %d", cfg.Scoring.MaxResults)
	}
}

func TestResultDir(t *testing.T) {
	project := "/home/alice/closets/summer"
	dir := ResultDir(project)

	slug := "closets_summer"
	if !strings.Contains(dir, slug) {
		t.Errorf("ResultDir should contain slug %q, got %q", slug, dir)
	}
	if !strings.HasSuffix(dir, filepath.Join(slug, "results")) {
		t.Errorf("ResultDir should end with %q, got %q", filepath.Join(slug, "results"), dir)
	}
}

func TestProjectSlug(t *testing.T) {
	tests := []struct {
		name string
		path string
		want string
	}{
		{
			name: "normal path",
			path: "/home/user/closets/winter",
			want: "closets_winter",
		},
		{
			name: "short path",
			path: "/winter",
			want: "/_winter",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := projectSlug(tc.path)
			if got != tc.want {
				t.Errorf("projectSlug(%q) = %q, want %q", tc.path, got, tc.want)
			}
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	writeConfig := func(t *testing.T, root string) string {
		t.Helper()
		configDir := filepath.Join(root, ".outfitscope")
		if err := os.MkdirAll(configDir, 0o755); err != nil {
			t.Fatalf("create config dir: %v", err)
		}
		configPath := filepath.Join(configDir, "config.yaml")
		if err := os.WriteFile(configPath, []byte("{}"), 0o644); err != nil {
			t.Fatalf("write config: %v", err)
		}
		return configPath
	}

	t.Run("found in current directory", func(t *testing.T) {
		root := t.TempDir()
		configPath := writeConfig(t, root)

		if got := FindConfigFile(root); got != configPath {
			t.Errorf("FindConfigFile = %q, want %q", got, configPath)
		}
	})

	t.Run("found in parent directory", func(t *testing.T) {
		root := t.TempDir()
		configPath := writeConfig(t, root)

		sub := filepath.Join(root, "a", "b", "c")
		if err := os.MkdirAll(sub, 0o755); err != nil {
			t.Fatalf("create sub: %v", err)
		}

		if got := FindConfigFile(sub); got != configPath {
			t.Errorf("FindConfigFile = %q, want %q", got, configPath)
		}
	})

	t.Run("not found", func(t *testing.T) {
		if got := FindConfigFile(t.TempDir()); got != "" {
			t.Errorf("FindConfigFile = %q, want empty", got)
		}
	})
}
