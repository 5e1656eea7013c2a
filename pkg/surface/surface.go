// Package surface defines output rendering for Outfitscope results.
// Implementations handle different output targets: terminal, JSON, Markdown.
package surface

import (
	"fmt"
	"io"
	"strings"

	"github.com/outfitscope/outfitscope/pkg/match"
	"github.com/outfitscope/outfitscope/pkg/recipe"
	"github.com/outfitscope/outfitscope/pkg/scoring"
)

// Report is everything a command may print. Unset sections are skipped.
type Report struct {
	Ranking *scoring.Result       `json:"ranking,omitempty"`
	Outfits []recipe.Outfit       `json:"outfits,omitempty"`
	Matches []match.MatchedOutfit `json:"matches,omitempty"`

	// Notice is a one-line message shown instead of empty sections,
	// e.g. when a recipe does not apply.
	Notice string `json:"notice,omitempty"`
}

// Renderer produces formatted output from a Report.
type Renderer interface {
	// Render writes the formatted report to the writer.
	Render(w io.Writer, report *Report) error
}

// ForFormat returns the renderer for an output format name.
func ForFormat(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "", "text", "terminal":
		return &TerminalRenderer{}, nil
	case "json":
		return &JSONRenderer{}, nil
	case "markdown", "md":
		return &MarkdownRenderer{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (want text, json or markdown)", format)
	}
}
