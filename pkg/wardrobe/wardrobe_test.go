package wardrobe

import (
	"context"
	"encoding/json"
	"math"
	"path/filepath"
	"runtime"
	"testing"
)

func testdataPath(name string) string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "..", "..", "testdata", name)
}

func TestLoadCatalog_Testdata(t *testing.T) {
	c, err := LoadCatalog(testdataPath("catalog.json"))
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}

	if len(c.Items) != 13 {
		t.Errorf("len(Items) = %d, want 13", len(c.Items))
	}

	cats := c.Categories()
	want := []string{"Shirts", "Pants", "Shoes", "Shalwar Kameez", "Jackets", "Accessories"}
	if len(cats) != len(want) {
		t.Fatalf("Categories() = %v, want %v", cats, want)
	}
	for i := range want {
		if cats[i] != want[i] {
			t.Errorf("Categories()[%d] = %q, want %q", i, cats[i], want[i])
		}
	}

	if got := len(c.ByCategory("shoes")); got != 3 {
		t.Errorf("ByCategory(shoes) = %d items, want 3", got)
	}
}

func TestCatalogFindByType(t *testing.T) {
	c, err := LoadCatalog(testdataPath("catalog.json"))
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}

	it, ok := c.FindByType("Sandals")
	if !ok || it.ID != "sandal-tan" {
		t.Errorf("FindByType(Sandals) = %v, %v; want sandal-tan", it.ID, ok)
	}

	if _, ok := c.FindByType("sandals"); ok {
		t.Error("FindByType should be case-sensitive")
	}

	it, ok = c.FindByTypeAndColor("Waistcoat", "Black")
	if !ok || it.ID != "wc-black" {
		t.Errorf("FindByTypeAndColor(Waistcoat, Black) = %v, %v; want wc-black", it.ID, ok)
	}

	if _, ok := c.FindByTypeAndColor("Waistcoat", "Red"); ok {
		t.Error("expected no red waistcoat")
	}
}

func TestCatalogValidate(t *testing.T) {
	tests := []struct {
		name    string
		items   []Item
		wantErr bool
	}{
		{"empty", nil, false},
		{"unique", []Item{{ID: "a"}, {ID: "b"}}, false},
		{"missing id", []Item{{ID: "a"}, {}}, true},
		{"duplicate", []Item{{ID: "a"}, {ID: "a"}}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := &Catalog{ID: "c", Items: tc.items}
			err := c.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestParseCatalog_RejectsDuplicates(t *testing.T) {
	_, err := ParseCatalog([]byte(`{"id":"c","items":[{"id":"x"},{"id":"x"}]}`))
	if err == nil {
		t.Error("expected error for duplicate item ids")
	}
}

func TestSaveLoadCatalog_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "catalog.json")
	c := &Catalog{ID: "c1", Items: []Item{{ID: "a", Category: "Shirts", Color: "Blue", Formality: FormalityCasual}}}

	if err := SaveCatalog(path, c); err != nil {
		t.Fatalf("SaveCatalog: %v", err)
	}
	got, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if got.ID != "c1" || len(got.Items) != 1 || got.Items[0].Color != "Blue" {
		t.Errorf("round trip mismatch: %+v", got)
	}
}

func TestFormalityDecoding(t *testing.T) {
	var it Item
	if err := json.Unmarshal([]byte(`{"id":"a","formality":"semi formal"}`), &it); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if it.Formality != FormalitySemiFormal {
		t.Errorf("Formality = %q, want %q", it.Formality, FormalitySemiFormal)
	}
	if ParseFormality("FORMAL") != FormalityFormal {
		t.Error("ParseFormality should be case-insensitive")
	}
	if ParseFormality(" Smart ") != Formality("Smart") {
		t.Error("unknown formality should pass through trimmed")
	}
}

func TestLoadSelection_PreservesOrder(t *testing.T) {
	sel, err := LoadSelection(testdataPath("selection.json"))
	if err != nil {
		t.Fatalf("LoadSelection: %v", err)
	}

	cats := sel.Categories()
	want := []string{"Shirts", "Pants", "Shoes", "Jackets"}
	if len(cats) != len(want) {
		t.Fatalf("got %d categories, want %d", len(cats), len(want))
	}
	for i, w := range want {
		if cats[i].Category != w {
			t.Errorf("category %d = %q, want %q", i, cats[i].Category, w)
		}
	}

	if n := len(sel.NonEmpty()); n != 3 {
		t.Errorf("NonEmpty() = %d categories, want 3", n)
	}
	if sel.Size() != 4 {
		t.Errorf("Size() = %d, want 4", sel.Size())
	}
}

func TestSelectionJSONRoundTrip(t *testing.T) {
	sel := NewSelection()
	sel.Add("Zeta", Item{ID: "z"})
	sel.Add("Alpha", Item{ID: "a"})
	sel.Add("Zeta", Item{ID: "z2"})

	data, err := json.Marshal(sel)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got Selection
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	cats := got.Categories()
	if len(cats) != 2 || cats[0].Category != "Zeta" || cats[1].Category != "Alpha" {
		t.Fatalf("order not preserved: %+v", cats)
	}
	if len(cats[0].Items) != 2 {
		t.Errorf("Zeta items = %d, want 2", len(cats[0].Items))
	}
}

func TestSelectionSize(t *testing.T) {
	var nilSel *Selection
	if nilSel.Size() != 0 || nilSel.Len() != 0 {
		t.Error("nil selection should be empty")
	}

	sel := NewSelection()
	sel.Add("Shirts", Item{ID: "a"}, Item{ID: "b"})
	if sel.Size() != 0 {
		t.Errorf("single category Size() = %d, want 0", sel.Size())
	}
	sel.Add("Pants", Item{ID: "c"}, Item{ID: "d"}, Item{ID: "e"})
	sel.Set("Shoes", nil)
	if sel.Size() != 6 {
		t.Errorf("Size() = %d, want 6", sel.Size())
	}
	if sel.ItemCount() != 5 {
		t.Errorf("ItemCount() = %d, want 5", sel.ItemCount())
	}
}

func TestSelectionSizeSaturates(t *testing.T) {
	tests := []struct {
		perCategory int
		want        int
	}{
		{65536, math.MaxInt}, // 2^64 wraps to 0 unchecked
		{60000, math.MaxInt}, // wraps negative unchecked
		{100, 100 * 100 * 100 * 100},
	}
	for _, tt := range tests {
		items := make([]Item, tt.perCategory)
		sel := NewSelection()
		for _, cat := range []string{"A", "B", "C", "D"} {
			sel.Set(cat, items)
		}
		if got := sel.Size(); got != tt.want {
			t.Errorf("4 x %d: Size() = %d, want %d", tt.perCategory, got, tt.want)
		}
	}
}

func TestCatalogSelection(t *testing.T) {
	c, err := LoadCatalog(testdataPath("catalog.json"))
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	sel := c.Selection("Pants", "Shirts", "Hats")
	cats := sel.Categories()
	if len(cats) != 3 || cats[0].Category != "Pants" || cats[2].Category != "Hats" {
		t.Fatalf("unexpected categories: %+v", cats)
	}
	if len(cats[2].Items) != 0 {
		t.Error("unknown category should be empty")
	}
}

func TestMemoryLookup(t *testing.T) {
	c, err := LoadCatalog(testdataPath("catalog.json"))
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	lookup := MemoryLookup{c.ID: c}
	ctx := context.Background()

	it, err := lookup.FindByType(ctx, c.ID, "Jubbah")
	if err != nil || it == nil || it.ID != "jubbah-cream" {
		t.Errorf("FindByType(Jubbah) = %v, %v", it, err)
	}

	it, err = lookup.FindByType(ctx, c.ID, "Sherwani")
	if err != nil || it != nil {
		t.Errorf("FindByType(Sherwani) = %v, %v; want nil, nil", it, err)
	}

	if _, err := lookup.FindByType(ctx, "missing", "Jubbah"); err == nil {
		t.Error("expected error for unknown catalog")
	}
}

func TestItemLabel(t *testing.T) {
	if got := (Item{Category: "Shirts"}).Label(); got != "Shirts" {
		t.Errorf("Label() = %q", got)
	}
	if got := (Item{Type: "Kurta", Color: "Light Blue"}).Label(); got != "Light Blue Kurta" {
		t.Errorf("Label() = %q", got)
	}
}
