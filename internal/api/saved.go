package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/outfitscope/outfitscope/pkg/scoring"
	"github.com/outfitscope/outfitscope/pkg/wardrobe"
)

type saveRequest struct {
	Combinations []saveCombination `json:"combinations" validate:"required,min=1,dive"`
}

type saveCombination struct {
	ItemIDs []string `json:"item_ids" validate:"required,min=2,dive,required"`
}

func (h *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	catalogID := chi.URLParam(r, "catalogID")

	var req saveRequest
	if err := decode(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}
	if limit := h.engine.Options().MaxAccepted; len(req.Combinations) > limit {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("at most %d combinations can be saved at once", limit))
		return
	}

	c, err := h.loadCatalog(r.Context(), catalogID)
	if err != nil {
		h.writeStoreError(w, r, "catalog", err)
		return
	}

	scorer := h.engine.Scorer()
	cands := make([]scoring.Candidate, 0, len(req.Combinations))
	for _, sc := range req.Combinations {
		combo := make(scoring.Combination, 0, len(sc.ItemIDs))
		for _, id := range sc.ItemIDs {
			it, ok := c.Find(id)
			if !ok {
				writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown item %q", id))
				return
			}
			combo = append(combo, it)
		}
		cands = append(cands, scoring.Candidate{
			Key:   combo.Key(),
			Items: []wardrobe.Item(combo),
			Score: scorer.Score(combo),
		})
	}

	saved, err := h.store.SaveCombinations(r.Context(), catalogID, cands)
	if err != nil {
		h.writeStoreError(w, r, "saved combinations", err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}

func (h *Handler) handleListSaved(w http.ResponseWriter, r *http.Request) {
	saved, err := h.store.ListSaved(r.Context(), chi.URLParam(r, "catalogID"))
	if err != nil {
		h.writeStoreError(w, r, "saved combinations", err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}
