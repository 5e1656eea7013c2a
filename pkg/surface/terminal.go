package surface

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/outfitscope/outfitscope/pkg/match"
	"github.com/outfitscope/outfitscope/pkg/scoring"
	"github.com/outfitscope/outfitscope/pkg/wardrobe"
)

// TerminalRenderer renders a Report as colored terminal output.
type TerminalRenderer struct{}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

func ratingColor(rating string) string {
	if noColor() {
		return ""
	}
	switch rating {
	case "excellent", "strong":
		return colorGreen
	case "good":
		return colorYellow
	default:
		return colorRed
	}
}

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func bold(s string) string {
	if noColor() {
		return s
	}
	return colorBold + s + colorReset
}

func dim(s string) string {
	if noColor() {
		return s
	}
	return colorDim + s + colorReset
}

func colored(s, color string) string {
	if noColor() || color == "" {
		return s
	}
	return color + s + colorReset
}

func (r *TerminalRenderer) Render(w io.Writer, report *Report) error {
	if report.Ranking != nil {
		renderRanking(w, report.Ranking)
	}
	if report.Outfits != nil {
		renderOutfits(w, report)
	}
	if report.Matches != nil {
		renderMatches(w, report.Matches)
	}
	if report.Notice != "" {
		fmt.Fprintln(w, report.Notice)
	}
	return nil
}

func renderRanking(w io.Writer, res *scoring.Result) {
	fmt.Fprintf(w, "%s\n", bold(fmt.Sprintf("Outfitscope: %d combinations from %d categories", res.Generated, len(res.Categories))))
	if len(res.Categories) > 0 {
		fmt.Fprintf(w, "%s\n", dim(strings.Join(res.Categories, " / ")))
	}
	if res.Truncated {
		fmt.Fprintf(w, "%s\n", colored("Generation stopped at the combination cap; results cover a prefix only.", colorYellow))
	}
	fmt.Fprintln(w)

	if len(res.Candidates) == 0 {
		fmt.Fprintln(w, "No combinations. Select items from at least two categories.")
		fmt.Fprintln(w)
		return
	}

	for i, c := range res.Candidates {
		rating := scoring.Rating(c.Score)
		fmt.Fprintf(w, "  %d. %6.2f %-9s %s\n", i+1, c.Score, colored(rating, ratingColor(rating)), itemsLine(c.Items))
		if i < len(res.Breakdowns) {
			b := res.Breakdowns[i]
			fmt.Fprintf(w, "         %s\n", dim(fmt.Sprintf("harmony %.2f · mood %.2f · prof %.2f", b.Harmony, b.Mood, b.ProfFactor)))
			for _, p := range b.Pairs {
				fmt.Fprintf(w, "         %s\n", dim(fmt.Sprintf("%s / %s: %s (%.1f x%.1f)",
					orDash(p.ColorA), orDash(p.ColorB), p.Relation, p.Harmony, p.Weight)))
			}
		}
	}
	fmt.Fprintln(w)
}

func renderOutfits(w io.Writer, report *Report) {
	if len(report.Outfits) == 0 {
		if report.Notice == "" {
			fmt.Fprintln(w, "No recipe outfits: required items are missing from the catalog.")
			fmt.Fprintln(w)
		}
		return
	}
	for _, o := range report.Outfits {
		fmt.Fprintf(w, "%s %s\n", bold(o.Name), dim(fmt.Sprintf("(%s, %s)", o.Occasion, o.Weather)))
		fmt.Fprintf(w, "  dress:     %s %s\n", o.DressColor, o.DressItem)
		fmt.Fprintf(w, "  shoes:     %s %s\n", o.ShoeColor, o.ShoeItem)
		if o.Waistcoat != nil {
			fmt.Fprintf(w, "  waistcoat: %s %s\n", o.WaistcoatColor, o.WaistcoatItem)
		}
		fmt.Fprintln(w)
	}
}

func renderMatches(w io.Writer, matches []match.MatchedOutfit) {
	for _, m := range matches {
		status := colored("matched", colorGreen)
		if !m.HasMatches {
			status = colored("no matches", colorRed)
		}
		fmt.Fprintf(w, "%s %s\n", bold("Recommendation "+m.ID), status)
		for _, slot := range match.Slots {
			text := m.Original.Text(slot)
			if text == "" {
				continue
			}
			got := dim("no match")
			if it := m.Items.Get(slot); it != nil {
				got = fmt.Sprintf("%s [%s]", it.Label(), it.ID)
			}
			fmt.Fprintf(w, "  %-12s %q -> %s\n", string(slot)+":", text, got)
		}
		fmt.Fprintln(w)
	}
}

func itemsLine(items []wardrobe.Item) string {
	labels := make([]string, len(items))
	for i, it := range items {
		labels[i] = it.Label()
	}
	return strings.Join(labels, " + ")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
