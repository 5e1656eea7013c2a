// Package color models garment colors: base-color normalization, the
// psychological profile of each base color, and pairwise harmony.
//
// A Palette is a plain value. Engines receive one explicitly; there is no
// package-level table to mutate.
package color

import (
	"regexp"
	"strings"
)

// Vector is the psychological profile of a color.
type Vector struct {
	Energy          float64 `json:"energy" yaml:"energy"`
	Calm            float64 `json:"calm" yaml:"calm"`
	Professionalism float64 `json:"professionalism" yaml:"professionalism"`
}

// Neutral is returned for colors absent from the psychology table.
var Neutral = Vector{Energy: 0.5, Calm: 0.5, Professionalism: 0.7}

// HarmonyScores are the pairwise scores for each Relation.
type HarmonyScores struct {
	Complementary   float64 `json:"complementary" yaml:"complementary"`
	Analogous       float64 `json:"analogous" yaml:"analogous"`
	Monochromatic   float64 `json:"monochromatic" yaml:"monochromatic"`
	LightDark       float64 `json:"light_dark" yaml:"light_dark"`
	NeutralRelation float64 `json:"neutral" yaml:"neutral"`
}

// DefaultHarmonyScores returns the stock harmony scores.
func DefaultHarmonyScores() HarmonyScores {
	return HarmonyScores{
		Complementary:   2.5,
		Analogous:       2.0,
		Monochromatic:   1.5,
		LightDark:       1.7,
		NeutralRelation: 1.0,
	}
}

// Palette bundles everything needed to score colors.
type Palette struct {
	Profiles    map[string]Vector
	Families    [][]string
	Complements map[string]string
	Scores      HarmonyScores
}

// DefaultPalette returns a fresh copy of the stock palette.
func DefaultPalette() Palette {
	return Palette{
		Profiles: map[string]Vector{
			"Blue":         {0.6, 0.8, 0.9},
			"Light Blue":   {0.5, 0.9, 0.8},
			"Dark Blue":    {0.7, 0.7, 1.0},
			"Navy":         {0.7, 0.7, 1.0},
			"White":        {0.5, 0.9, 0.9},
			"Light Gray":   {0.4, 0.9, 0.8},
			"Dark Gray":    {0.3, 0.7, 1.0},
			"Charcoal":     {0.3, 0.7, 1.0},
			"Pink":         {0.7, 0.7, 0.6},
			"Light Pink":   {0.6, 0.8, 0.5},
			"Yellow":       {0.9, 0.5, 0.5},
			"Light Yellow": {0.8, 0.7, 0.6},
			"Dark Brown":   {0.4, 0.8, 0.8},
			"Black":        {0.2, 0.7, 1.0},
			"Brown":        {0.4, 0.8, 0.7},
			"Beige":        {0.4, 0.9, 0.7},
			"Light Beige":  {0.3, 1.0, 0.6},
			"Dark Beige":   {0.4, 0.8, 0.8},
			"Gray":         {0.3, 0.8, 0.9},
			"Tan":          {0.5, 0.8, 0.7},
			"Red":          {0.9, 0.3, 0.7},
			"Green":        {0.5, 0.8, 0.7},
			"Light Green":  {0.4, 0.9, 0.6},
			"Dark Green":   {0.6, 0.7, 0.8},
			"Orange":       {0.8, 0.5, 0.6},
			"Purple":       {0.7, 0.6, 0.8},
		},
		Families: [][]string{
			{"Blue", "Light Blue", "Dark Blue", "Navy"},
			{"Gray", "Light Gray", "Dark Gray", "Charcoal"},
			{"Brown", "Dark Brown", "Black", "Beige", "Tan"},
			{"Red", "Pink", "Light Pink"},
			{"Green", "Light Green", "Dark Green"},
			{"Yellow", "Light Yellow"},
		},
		Complements: map[string]string{
			"Red":    "Green",
			"Green":  "Red",
			"Blue":   "Orange",
			"Orange": "Blue",
			"Yellow": "Purple",
			"Purple": "Yellow",
		},
		Scores: DefaultHarmonyScores(),
	}
}

// With returns a copy of p extended with extra psychology entries and
// families. Entries in extra override existing ones with the same name.
func (p Palette) With(extra map[string]Vector, families [][]string) Palette {
	out := Palette{
		Profiles:    make(map[string]Vector, len(p.Profiles)+len(extra)),
		Families:    make([][]string, 0, len(p.Families)+len(families)),
		Complements: make(map[string]string, len(p.Complements)),
		Scores:      p.Scores,
	}
	for k, v := range p.Profiles {
		out.Profiles[k] = v
	}
	for k, v := range extra {
		out.Profiles[k] = v
	}
	for _, f := range p.Families {
		out.Families = append(out.Families, append([]string(nil), f...))
	}
	for _, f := range families {
		out.Families = append(out.Families, append([]string(nil), f...))
	}
	for k, v := range p.Complements {
		out.Complements[k] = v
	}
	return out
}

var qualifierRe = regexp.MustCompile(`(?i)^(light|dark)\s+`)

// BaseColor strips a leading Light/Dark qualifier and surrounding whitespace.
//
//	BaseColor("Dark Blue")  == "Blue"
//	BaseColor("light gray") == "gray"
//	BaseColor("Lightblue")  == "Lightblue"
func BaseColor(name string) string {
	if name == "" {
		return ""
	}
	return strings.TrimSpace(qualifierRe.ReplaceAllString(name, ""))
}

// IsLightVariant reports whether name mentions "light" anywhere.
func IsLightVariant(name string) bool {
	return strings.Contains(strings.ToLower(name), "light")
}

// IsDarkVariant reports whether name mentions "dark" anywhere.
func IsDarkVariant(name string) bool {
	return strings.Contains(strings.ToLower(name), "dark")
}

// Psychology returns the profile of name's base color. Lookup is exact and
// case-sensitive on the base color; unknown colors get Neutral.
func (p Palette) Psychology(name string) Vector {
	if v, ok := p.Profiles[BaseColor(name)]; ok {
		return v
	}
	return Neutral
}
