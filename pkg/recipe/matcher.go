package recipe

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/outfitscope/outfitscope/pkg/wardrobe"
)

// Matcher assembles recipe outfits from a catalog.
type Matcher struct {
	recipe Recipe
	lookup Lookup
	log    zerolog.Logger
}

// NewMatcher creates a matcher for one recipe.
func NewMatcher(r Recipe, lookup Lookup, log zerolog.Logger) *Matcher {
	return &Matcher{
		recipe: r,
		lookup: lookup,
		log:    log.With().Str("component", "recipe").Str("event", r.Event).Logger(),
	}
}

// Recipe returns the recipe the matcher assembles.
func (m *Matcher) Recipe() Recipe { return m.recipe }

type found struct {
	dress, shoes, waistcoat *wardrobe.Item
}

// Assemble builds the recipe outfits available in a catalog. Each pairing
// needs both its dress and shoes; it also gets its waistcoat when temperature
// is set, inside the waistcoat band, and the waistcoat exists. Pairings with
// missing items are skipped, so the result may be empty.
//
// Lookup errors are logged and treated as missing items. Assemble only fails
// when it has no lookup or ctx is done.
func (m *Matcher) Assemble(ctx context.Context, catalogID string, temperature *float64) ([]Outfit, error) {
	if m.lookup == nil {
		return nil, fmt.Errorf("recipe %s: no item lookup configured", m.recipe.Event)
	}

	results := make([]found, len(m.recipe.Pairings))
	var g errgroup.Group
	for i, p := range m.recipe.Pairings {
		g.Go(func() error {
			results[i].dress = m.byType(ctx, catalogID, p.DressType)
			return nil
		})
		g.Go(func() error {
			results[i].shoes = m.byType(ctx, catalogID, p.ShoeType)
			return nil
		})
		if p.WaistcoatColor != "" && m.recipe.WaistcoatType != "" {
			g.Go(func() error {
				results[i].waistcoat = m.byTypeAndColor(ctx, catalogID, m.recipe.WaistcoatType, p.WaistcoatColor)
				return nil
			})
		}
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mild := temperature != nil && m.recipe.WaistcoatBand.Contains(*temperature)

	outfits := []Outfit{}
	for i, p := range m.recipe.Pairings {
		r := results[i]
		if r.dress == nil || r.shoes == nil {
			m.log.Debug().
				Str("pairing", p.Name).
				Bool("dress_found", r.dress != nil).
				Bool("shoes_found", r.shoes != nil).
				Msg("skipping pairing with missing items")
			continue
		}

		dress := *r.dress
		if dress.Color == "" {
			dress.Color = m.recipe.FallbackColor
		}
		o := Outfit{
			Name:       p.Name,
			Occasion:   m.recipe.Event,
			Weather:    m.recipe.Weather,
			DressItem:  dress.Type,
			DressColor: dress.Color,
			ShoeItem:   r.shoes.Type,
			ShoeColor:  r.shoes.Color,
			Dress:      dress,
			Shoes:      *r.shoes,
		}
		if mild && r.waistcoat != nil {
			wc := *r.waistcoat
			o.WaistcoatItem = wc.Type
			o.WaistcoatColor = wc.Color
			o.Waistcoat = &wc
		}
		outfits = append(outfits, o)
	}

	m.log.Debug().
		Str("catalog_id", catalogID).
		Bool("waistcoat_weather", mild).
		Int("outfits", len(outfits)).
		Msg("assembled recipe outfits")
	return outfits, nil
}

func (m *Matcher) byType(ctx context.Context, catalogID, garmentType string) *wardrobe.Item {
	it, err := m.lookup.FindByType(ctx, catalogID, garmentType)
	if err != nil {
		m.log.Warn().Err(err).Str("type", garmentType).Msg("item lookup failed")
		return nil
	}
	if it == nil {
		m.log.Debug().Str("type", garmentType).Msg("no item found")
	}
	return it
}

func (m *Matcher) byTypeAndColor(ctx context.Context, catalogID, garmentType, color string) *wardrobe.Item {
	it, err := m.lookup.FindByTypeAndColor(ctx, catalogID, garmentType, color)
	if err != nil {
		m.log.Warn().Err(err).Str("type", garmentType).Str("color", color).Msg("item lookup failed")
		return nil
	}
	return it
}
