package recipe

import (
	"context"
	"errors"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/outfitscope/outfitscope/pkg/wardrobe"
)

const catalogID = "c0ffee00-0000-4000-8000-000000000001"

func fixtureLookup(t *testing.T) wardrobe.MemoryLookup {
	t.Helper()
	_, filename, _, _ := runtime.Caller(0)
	c, err := wardrobe.LoadCatalog(filepath.Join(filepath.Dir(filename), "..", "..", "testdata", "catalog.json"))
	require.NoError(t, err)
	return wardrobe.MemoryLookup{c.ID: c}
}

func temp(v float64) *float64 { return &v }

func TestAssembleWaistcoatBand(t *testing.T) {
	m := NewMatcher(Default(), fixtureLookup(t), zerolog.Nop())

	tests := []struct {
		name          string
		temperature   *float64
		wantWaistcoat bool
	}{
		{"lower bound", temp(21), true},
		{"upper bound", temp(30), true},
		{"mid band", temp(25.5), true},
		{"just below", temp(20.9), false},
		{"just above", temp(30.1), false},
		{"omitted", nil, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			outfits, err := m.Assemble(context.Background(), catalogID, tc.temperature)
			require.NoError(t, err)
			require.Len(t, outfits, 2)

			for _, o := range outfits {
				assert.Equal(t, tc.wantWaistcoat, o.Waistcoat != nil, o.Name)
			}
			if tc.wantWaistcoat {
				assert.Equal(t, "wc-brown", outfits[0].Waistcoat.ID)
				assert.Equal(t, "Light Brown", outfits[0].WaistcoatColor)
				assert.Equal(t, "wc-black", outfits[1].Waistcoat.ID)
			}
		})
	}
}

func TestAssembleOutfitFields(t *testing.T) {
	m := NewMatcher(Default(), fixtureLookup(t), zerolog.Nop())
	outfits, err := m.Assemble(context.Background(), catalogID, nil)
	require.NoError(t, err)
	require.Len(t, outfits, 2)

	first := outfits[0]
	assert.Equal(t, "Outfit recommendation 1", first.Name)
	assert.Equal(t, "Aqiqa", first.Occasion)
	assert.Equal(t, "Warm", first.Weather)
	assert.Equal(t, "Shalwar-Kameez", first.DressItem)
	assert.Equal(t, "White", first.DressColor, "missing dress color falls back")
	assert.Equal(t, "Peshawari Chappal", first.ShoeItem)
	assert.Equal(t, "Brown", first.ShoeColor)

	second := outfits[1]
	assert.Equal(t, "Outfit recommendation 2", second.Name)
	assert.Equal(t, "jubbah-cream", second.Dress.ID)
	assert.Equal(t, "Beige", second.DressColor)
	assert.Equal(t, "sandal-tan", second.Shoes.ID)
}

func TestAssembleDoesNotMutateCatalog(t *testing.T) {
	lookup := fixtureLookup(t)
	m := NewMatcher(Default(), lookup, zerolog.Nop())
	_, err := m.Assemble(context.Background(), catalogID, nil)
	require.NoError(t, err)

	it, ok := lookup[catalogID].Find("sk-white")
	require.True(t, ok)
	assert.Empty(t, it.Color)
}

func TestAssembleMissingItems(t *testing.T) {
	c := &wardrobe.Catalog{ID: "c", Items: []wardrobe.Item{
		{ID: "j", Type: "Jubbah"},
		{ID: "s", Type: "Sandals"},
		{ID: "pc", Type: "Peshawari Chappal"},
	}}
	m := NewMatcher(Default(), wardrobe.MemoryLookup{"c": c}, zerolog.Nop())

	outfits, err := m.Assemble(context.Background(), "c", temp(25))
	require.NoError(t, err)
	require.Len(t, outfits, 1)
	assert.Equal(t, "Outfit recommendation 2", outfits[0].Name)
	assert.Nil(t, outfits[0].Waistcoat, "no black waistcoat in catalog")

	empty := NewMatcher(Default(), wardrobe.MemoryLookup{"e": &wardrobe.Catalog{ID: "e"}}, zerolog.Nop())
	outfits, err = empty.Assemble(context.Background(), "e", temp(25))
	require.NoError(t, err)
	assert.NotNil(t, outfits)
	assert.Empty(t, outfits)
}

type failingLookup struct{}

func (failingLookup) FindByType(context.Context, string, string) (*wardrobe.Item, error) {
	return nil, errors.New("connection refused")
}

func (failingLookup) FindByTypeAndColor(context.Context, string, string, string) (*wardrobe.Item, error) {
	return nil, errors.New("connection refused")
}

func TestAssembleLookupErrorsAreMissingItems(t *testing.T) {
	m := NewMatcher(Default(), failingLookup{}, zerolog.Nop())
	outfits, err := m.Assemble(context.Background(), "any", temp(25))
	require.NoError(t, err)
	assert.Empty(t, outfits)

	// Unknown catalogs surface as lookup errors from MemoryLookup.
	m = NewMatcher(Default(), fixtureLookup(t), zerolog.Nop())
	outfits, err = m.Assemble(context.Background(), "missing", nil)
	require.NoError(t, err)
	assert.Empty(t, outfits)
}

func TestAssembleNoLookup(t *testing.T) {
	_, err := NewMatcher(Default(), nil, zerolog.Nop()).Assemble(context.Background(), "c", nil)
	assert.Error(t, err)
}

func TestAssembleCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewMatcher(Default(), fixtureLookup(t), zerolog.Nop()).Assemble(ctx, catalogID, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCallerTemperature(t *testing.T) {
	band := Default().WaistcoatBand
	tests := []struct {
		forecast float64
		wantTemp bool
		wantOK   bool
	}{
		{21, true, true},
		{30, true, true},
		{25, true, true},
		{30.1, false, true},
		{38, false, true},
		{20.9, false, false},
		{5, false, false},
	}
	for _, tc := range tests {
		got, ok := CallerTemperature(band, tc.forecast)
		assert.Equal(t, tc.wantOK, ok, "forecast %v", tc.forecast)
		assert.Equal(t, tc.wantTemp, got != nil, "forecast %v", tc.forecast)
		if got != nil {
			assert.Equal(t, tc.forecast, *got)
		}
	}
}
