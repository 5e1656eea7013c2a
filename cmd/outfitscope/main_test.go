package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/outfitscope/outfitscope/pkg/color"
	"github.com/outfitscope/outfitscope/pkg/scoring"
)

func testdataPath(name string) string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "..", "..", "testdata", name)
}

func TestRankCmdFlags(t *testing.T) {
	cmd := newRankCmd()
	f := cmd.Flags()

	outputFmt, _ := f.GetString("output")
	if outputFmt != "text" {
		t.Errorf("default output = %q, want text", outputFmt)
	}

	for _, flag := range []string{"selection", "catalog", "categories", "where", "output", "explain", "save"} {
		if f.Lookup(flag) == nil {
			t.Errorf("missing flag: %s", flag)
		}
	}
}

func TestRecipeCmdFlags(t *testing.T) {
	cmd := newRecipeCmd()
	f := cmd.Flags()

	for _, flag := range []string{"catalog", "temperature", "forecast", "output"} {
		if f.Lookup(flag) == nil {
			t.Errorf("missing flag: %s", flag)
		}
	}
}

func TestHistoryCmdFlags(t *testing.T) {
	limit, _ := newHistoryCmd().Flags().GetInt("limit")
	if limit != 20 {
		t.Errorf("default limit = %d, want 20", limit)
	}
}

func TestFirstNonEmpty(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"a", "b", "c"}, "a"},
		{[]string{"", "b", "c"}, "b"},
		{[]string{"", "", "c"}, "c"},
		{[]string{"", "", ""}, ""},
	}

	for _, tt := range tests {
		got := firstNonEmpty(tt.args...)
		if got != tt.want {
			t.Errorf("firstNonEmpty(%v) = %q, want %q", tt.args, got, tt.want)
		}
	}
}

func TestRunRankJSON(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := runRank(context.Background(), &stdout, &stderr, rankOpts{
		project:   t.TempDir(),
		selection: testdataPath("selection.json"),
		outputFmt: "json",
	})
	if err != nil {
		t.Fatalf("runRank: %v", err)
	}

	var report struct {
		Ranking scoring.Result `json:"ranking"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &report); err != nil {
		t.Fatalf("decoding output: %v\n%s", err, stdout.String())
	}
	if len(report.Ranking.Candidates) != 4 {
		t.Fatalf("got %d candidates, want 4", len(report.Ranking.Candidates))
	}
	if got := report.Ranking.Candidates[0].Score; got != 12.78 {
		t.Errorf("top score = %v, want 12.78", got)
	}
	if !strings.Contains(stderr.String(), "Ranking: 4 categories, 5 items") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestRunRankCatalogWithFilter(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := runRank(context.Background(), &stdout, &stderr, rankOpts{
		project:    t.TempDir(),
		catalog:    testdataPath("catalog.json"),
		categories: []string{"Shirts", "Pants"},
		where:      `base_color == "Blue" || color == "White"`,
		outputFmt:  "json",
	})
	if err != nil {
		t.Fatalf("runRank: %v", err)
	}
	if !strings.Contains(stdout.String(), `"shirt-white|pant-navy"`) {
		t.Errorf("expected white/navy candidate, got:\n%s", stdout.String())
	}
}

func TestRunRankErrors(t *testing.T) {
	tests := []struct {
		name string
		opts rankOpts
	}{
		{"no input", rankOpts{outputFmt: "text"}},
		{"bad format", rankOpts{selection: testdataPath("selection.json"), outputFmt: "yaml"}},
		{"bad filter", rankOpts{selection: testdataPath("selection.json"), where: "color ==", outputFmt: "text"}},
		{"missing file", rankOpts{selection: "does-not-exist.json", outputFmt: "text"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.opts.project = t.TempDir()
			var stdout, stderr bytes.Buffer
			if err := runRank(context.Background(), &stdout, &stderr, tc.opts); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestRankSaveAndHistory(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	project := t.TempDir()

	var stdout, stderr bytes.Buffer
	err := runRank(context.Background(), &stdout, &stderr, rankOpts{
		project:   project,
		selection: testdataPath("selection.json"),
		outputFmt: "text",
		save:      true,
	})
	if err != nil {
		t.Fatalf("runRank: %v", err)
	}
	if !strings.Contains(stderr.String(), "Result saved:") {
		t.Errorf("stderr = %q", stderr.String())
	}

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"history", "--project", project})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out.String(), "best: 12.78 shirt-red|pant-green|shoe-black") {
		t.Errorf("history output = %q", out.String())
	}
}

func TestHistoryEmpty(t *testing.T) {
	var out bytes.Buffer
	if err := runHistory(&out, filepath.Join(t.TempDir(), "missing"), 0); err != nil {
		t.Fatalf("runHistory: %v", err)
	}
	if !strings.Contains(out.String(), "No saved results") {
		t.Errorf("output = %q", out.String())
	}
}

func TestRunMatch(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := runMatch(&stdout, &stderr, matchOpts{
		project:         t.TempDir(),
		catalog:         testdataPath("catalog.json"),
		recommendations: testdataPath("recommendations.json"),
		outputFmt:       "json",
	})
	if err != nil {
		t.Fatalf("runMatch: %v", err)
	}
	if !strings.Contains(stdout.String(), `"sk-white"`) {
		t.Errorf("expected sk-white in output:\n%s", stdout.String())
	}
}

func TestRunRecipe(t *testing.T) {
	warm, cold := 25.0, 5.0
	tests := []struct {
		name       string
		opts       recipeOpts
		wantSubstr string
	}{
		{"in band", recipeOpts{temperature: &warm}, `"wc-brown"`},
		{"forecast below band", recipeOpts{forecast: &cold}, "does not apply"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			tc.opts.project = t.TempDir()
			tc.opts.catalog = testdataPath("catalog.json")
			tc.opts.outputFmt = "json"
			var stdout, stderr bytes.Buffer
			if err := runRecipe(context.Background(), &stdout, &stderr, tc.opts); err != nil {
				t.Fatalf("runRecipe: %v", err)
			}
			if !strings.Contains(stdout.String(), tc.wantSubstr) {
				t.Errorf("output missing %s:\n%s", tc.wantSubstr, stdout.String())
			}
		})
	}
}

func TestRunHarmony(t *testing.T) {
	var out bytes.Buffer
	if err := runHarmony(&out, color.DefaultPalette(), "Red", "Green", "text"); err != nil {
		t.Fatalf("runHarmony: %v", err)
	}
	if got := out.String(); got != "Red + Green: complementary (2.50)\n" {
		t.Errorf("output = %q", got)
	}

	if err := runHarmony(&out, color.DefaultPalette(), "Red", "Green", "xml"); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestConfigFromProject(t *testing.T) {
	project := t.TempDir()
	if err := os.MkdirAll(filepath.Join(project, ".outfitscope"), 0o755); err != nil {
		t.Fatal(err)
	}
	yaml := "scoring:\n  max_results: 1\n"
	if err := os.WriteFile(filepath.Join(project, ".outfitscope", "config.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	err := runRank(context.Background(), &stdout, &stderr, rankOpts{
		project:   project,
		selection: testdataPath("selection.json"),
		outputFmt: "json",
	})
	if err != nil {
		t.Fatalf("runRank: %v", err)
	}
	var report struct {
		Ranking scoring.Result `json:"ranking"`
	}
	if err := json.Unmarshal(stdout.Bytes(), &report); err != nil {
		t.Fatalf("decoding output: %v", err)
	}
	if len(report.Ranking.Candidates) != 1 {
		t.Errorf("got %d candidates, want 1 (max_results from config)", len(report.Ranking.Candidates))
	}
}
