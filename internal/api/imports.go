package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/outfitscope/outfitscope/internal/closet"
	"github.com/outfitscope/outfitscope/internal/storage"
)

type importResponse struct {
	Import *closet.ImportRow `json:"import"`
	Error  string            `json:"error,omitempty"`
}

func (h *Handler) handleImport(w http.ResponseWriter, r *http.Request) {
	if h.importer == nil {
		writeError(w, http.StatusNotImplemented, "catalog import is not configured")
		return
	}
	catalogID := chi.URLParam(r, "catalogID")

	row, err := h.importer.Import(r.Context(), catalogID)
	switch {
	case err == nil:
		h.cache.Invalidate(catalogID)
		writeJSON(w, http.StatusOK, importResponse{Import: row})
	case row == nil:
		h.writeStoreError(w, r, "import", err)
	case errors.Is(err, storage.ErrNotFound):
		writeJSON(w, http.StatusNotFound, importResponse{Import: row, Error: "catalog export not found"})
	default:
		writeJSON(w, http.StatusUnprocessableEntity, importResponse{Import: row, Error: err.Error()})
	}
}

func (h *Handler) handleGetImport(w http.ResponseWriter, r *http.Request) {
	row, err := h.store.GetImport(r.Context(), chi.URLParam(r, "importID"))
	if err != nil {
		h.writeStoreError(w, r, "import", err)
		return
	}
	writeJSON(w, http.StatusOK, row)
}
