package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/outfitscope/outfitscope/internal/logging"
	"github.com/outfitscope/outfitscope/pkg/recipe"
)

// recipeRequest carries either a temperature passed straight to the matcher
// or a forecast that goes through the caller convention first.
type recipeRequest struct {
	Temperature *float64 `json:"temperature,omitempty" validate:"excluded_with=Forecast"`
	Forecast    *float64 `json:"forecast,omitempty"`
}

type recipeResponse struct {
	Event       string          `json:"event"`
	Applies     bool            `json:"applies"`
	Temperature *float64        `json:"temperature,omitempty"`
	Outfits     []recipe.Outfit `json:"outfits"`
}

func (h *Handler) handleRecipes(w http.ResponseWriter, r *http.Request) {
	catalogID := chi.URLParam(r, "catalogID")

	var req recipeRequest
	if r.ContentLength != 0 {
		if err := decode(r, &req); err != nil {
			writeDecodeError(w, err)
			return
		}
	}

	if _, err := h.loadCatalog(r.Context(), catalogID); err != nil {
		h.writeStoreError(w, r, "catalog", err)
		return
	}

	resp := recipeResponse{Event: h.recipe.Event, Applies: true, Temperature: req.Temperature, Outfits: []recipe.Outfit{}}
	if req.Forecast != nil {
		resp.Temperature, resp.Applies = recipe.CallerTemperature(h.recipe.WaistcoatBand, *req.Forecast)
		if !resp.Applies {
			writeJSON(w, http.StatusOK, resp)
			return
		}
	}

	m := recipe.NewMatcher(h.recipe, h.store, logging.Component(h.log, "recipe"))
	outfits, err := m.Assemble(r.Context(), catalogID, resp.Temperature)
	if err != nil {
		h.writeStoreError(w, r, "outfits", err)
		return
	}
	resp.Outfits = outfits
	writeJSON(w, http.StatusOK, resp)
}
