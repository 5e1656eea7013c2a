package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/outfitscope/outfitscope/pkg/match"
)

type matchRequest struct {
	Recommendations []match.Recommendation `json:"recommendations" validate:"required,min=1,max=50"`
}

type matchResponse struct {
	Matches []match.MatchedOutfit `json:"matches"`
}

func (h *Handler) handleMatch(w http.ResponseWriter, r *http.Request) {
	var req matchRequest
	if err := decode(r, &req); err != nil {
		writeDecodeError(w, err)
		return
	}

	c, err := h.loadCatalog(r.Context(), chi.URLParam(r, "catalogID"))
	if err != nil {
		h.writeStoreError(w, r, "catalog", err)
		return
	}

	matches := h.matcher.MatchRecommendations(req.Recommendations, match.SlotCatalog(c, h.boxes))
	writeJSON(w, http.StatusOK, matchResponse{Matches: matches})
}
