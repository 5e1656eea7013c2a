package surface

import (
	"fmt"
	"io"
	"strings"

	"github.com/outfitscope/outfitscope/pkg/match"
	"github.com/outfitscope/outfitscope/pkg/scoring"
)

// MarkdownRenderer renders a Report as a Markdown document, suitable for
// saved reports and chat or issue comments.
type MarkdownRenderer struct{}

func (r *MarkdownRenderer) Render(w io.Writer, report *Report) error {
	_, err := io.WriteString(w, BuildMarkdown(report))
	return err
}

// BuildMarkdown returns the Markdown form of a report.
func BuildMarkdown(report *Report) string {
	var sb strings.Builder

	if res := report.Ranking; res != nil {
		sb.WriteString(fmt.Sprintf("## Outfitscope: top %d of %d combinations\n\n", len(res.Candidates), res.Generated))
		if len(res.Categories) > 0 {
			sb.WriteString(fmt.Sprintf("Categories: %s\n\n", strings.Join(res.Categories, ", ")))
		}
		if len(res.Candidates) == 0 {
			sb.WriteString("_No combinations._\n\n")
		} else {
			sb.WriteString("| # | Score | Rating | Items |\n|---|-------|--------|-------|\n")
			for i, c := range res.Candidates {
				sb.WriteString(fmt.Sprintf("| %d | %.2f | %s | %s |\n", i+1, c.Score, scoring.Rating(c.Score), itemsLine(c.Items)))
			}
			sb.WriteString("\n")
		}
		for i, b := range res.Breakdowns {
			sb.WriteString(fmt.Sprintf("<details><summary>#%d breakdown</summary>\n\n", i+1))
			sb.WriteString(fmt.Sprintf("- harmony %.2f, mood %.2f, professionalism %.2f\n", b.Harmony, b.Mood, b.ProfFactor))
			for _, p := range b.Pairs {
				sb.WriteString(fmt.Sprintf("- %s / %s: %s (%.1f × %.1f)\n", orDash(p.ColorA), orDash(p.ColorB), p.Relation, p.Harmony, p.Weight))
			}
			sb.WriteString("\n</details>\n\n")
		}
	}

	if len(report.Outfits) > 0 {
		sb.WriteString("## Recipe outfits\n\n")
		for _, o := range report.Outfits {
			sb.WriteString(fmt.Sprintf("### %s\n\n", o.Name))
			sb.WriteString(fmt.Sprintf("- Occasion: %s (%s)\n", o.Occasion, o.Weather))
			sb.WriteString(fmt.Sprintf("- Dress: %s %s\n", o.DressColor, o.DressItem))
			sb.WriteString(fmt.Sprintf("- Shoes: %s %s\n", o.ShoeColor, o.ShoeItem))
			if o.Waistcoat != nil {
				sb.WriteString(fmt.Sprintf("- Waistcoat: %s %s\n", o.WaistcoatColor, o.WaistcoatItem))
			}
			sb.WriteString("\n")
		}
	}

	if len(report.Matches) > 0 {
		sb.WriteString("## Matched recommendations\n\n")
		for _, m := range report.Matches {
			sb.WriteString(fmt.Sprintf("### %s\n\n", m.ID))
			for _, slot := range match.Slots {
				text := m.Original.Text(slot)
				if text == "" {
					continue
				}
				got := "_no match_"
				if it := m.Items.Get(slot); it != nil {
					got = fmt.Sprintf("%s (`%s`)", it.Label(), it.ID)
				}
				sb.WriteString(fmt.Sprintf("- **%s**: %s → %s\n", slot, text, got))
			}
			sb.WriteString("\n")
		}
	}

	if report.Notice != "" {
		sb.WriteString(fmt.Sprintf("_%s_\n", report.Notice))
	}

	return sb.String()
}
