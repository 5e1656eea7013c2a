package match

import "github.com/outfitscope/outfitscope/pkg/wardrobe"

// DefaultBoxes maps each slot to the catalog category that feeds it.
func DefaultBoxes() map[Slot]string {
	return map[Slot]string{
		SlotDress:       "Shalwar Kameez",
		SlotShoes:       "Shoes",
		SlotUpperLayer:  "Jackets",
		SlotAccessories: "Accessories",
	}
}

// SlotCatalog groups a catalog's items by slot. A nil boxes map uses
// DefaultBoxes. Slots whose category is absent get no items.
func SlotCatalog(c *wardrobe.Catalog, boxes map[Slot]string) map[Slot][]wardrobe.Item {
	if boxes == nil {
		boxes = DefaultBoxes()
	}
	out := make(map[Slot][]wardrobe.Item, len(boxes))
	if c == nil {
		return out
	}
	for slot, category := range boxes {
		out[slot] = c.ByCategory(category)
	}
	return out
}
