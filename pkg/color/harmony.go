package color

// Relation classifies how two colors relate.
type Relation string

const (
	RelationComplementary Relation = "complementary"
	RelationAnalogous     Relation = "analogous"
	RelationMonochromatic Relation = "monochromatic"
	RelationLightDark     Relation = "light_dark"
	RelationNeutral       Relation = "neutral"
)

// Classify returns the relation between two colors. Rules are tried in
// order and the first match wins:
//
//  1. complementary base colors (red/green, blue/orange, yellow/purple)
//  2. both base colors in one family
//  3. identical base colors
//  4. one light and one dark variant
//  5. neutral
func (p Palette) Classify(a, b string) Relation {
	baseA, baseB := BaseColor(a), BaseColor(b)

	if c, ok := p.Complements[baseA]; ok && c == baseB {
		return RelationComplementary
	}
	if c, ok := p.Complements[baseB]; ok && c == baseA {
		return RelationComplementary
	}
	if p.sameFamily(baseA, baseB) {
		return RelationAnalogous
	}
	if baseA == baseB {
		return RelationMonochromatic
	}
	if (IsLightVariant(a) && IsDarkVariant(b)) || (IsDarkVariant(a) && IsLightVariant(b)) {
		return RelationLightDark
	}
	return RelationNeutral
}

func (p Palette) sameFamily(a, b string) bool {
	for _, family := range p.Families {
		var hasA, hasB bool
		for _, name := range family {
			if name == a {
				hasA = true
			}
			if name == b {
				hasB = true
			}
		}
		if hasA && hasB {
			return true
		}
	}
	return false
}

// Score returns the harmony score assigned to a relation.
func (s HarmonyScores) Score(r Relation) float64 {
	switch r {
	case RelationComplementary:
		return s.Complementary
	case RelationAnalogous:
		return s.Analogous
	case RelationMonochromatic:
		return s.Monochromatic
	case RelationLightDark:
		return s.LightDark
	default:
		return s.NeutralRelation
	}
}

// Harmony scores a color pair. The result is symmetric in its arguments.
func (p Palette) Harmony(a, b string) float64 {
	return p.Scores.Score(p.Classify(a, b))
}
