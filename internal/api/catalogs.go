package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/outfitscope/outfitscope/pkg/wardrobe"
)

type catalogResponse struct {
	ID         string          `json:"id"`
	Owner      string          `json:"owner,omitempty"`
	Name       string          `json:"name,omitempty"`
	Categories []string        `json:"categories"`
	ItemCount  int             `json:"item_count"`
	Items      []wardrobe.Item `json:"items"`
}

func (h *Handler) handleGetCatalog(w http.ResponseWriter, r *http.Request) {
	c, err := h.loadCatalog(r.Context(), chi.URLParam(r, "catalogID"))
	if err != nil {
		h.writeStoreError(w, r, "catalog", err)
		return
	}

	writeJSON(w, http.StatusOK, catalogResponse{
		ID:         c.ID,
		Owner:      c.Owner,
		Name:       c.Name,
		Categories: c.Categories(),
		ItemCount:  len(c.Items),
		Items:      c.Items,
	})
}
